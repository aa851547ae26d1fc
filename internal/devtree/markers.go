// SPDX-License-Identifier: MPL-2.0

package devtree

import "io/fs"

// Well-known marker names referenced by name elsewhere in the scan.
const (
	productsMakefile = "AndroidProducts.mk"
	boardConfigFile  = "BoardConfig.mk"
	deviceMakefile   = "device.mk"
)

// KeyFiles lists the files a conforming device tree is expected to carry
// at its root.
var KeyFiles = []string{
	productsMakefile,
	boardConfigFile,
	deviceMakefile,
	"system.prop",
	"vendorsetup.sh",
	"extract-files.sh",
	"setup-makefiles.sh",
}

// KeyDirs lists the directories a conforming device tree is expected to
// carry at its root.
var KeyDirs = []string{
	"overlay",
	"proprietary",
	"proprietary-files.txt",
	"configs",
	"rootdir",
	"recovery",
	"prebuilt",
}

// PresenceMap records, for every marker name in a marker set, whether the
// marker was found at the tree root. The key set always equals the full
// marker set: markers that were not found are present with a false value.
type PresenceMap map[string]bool

// FoundCount returns how many markers were found.
func (m PresenceMap) FoundCount() int {
	n := 0
	for _, found := range m {
		if found {
			n++
		}
	}
	return n
}

// matchMarkers checks the root directory entries against the expected file
// and directory sets. A name counts only when its kind matches: a file
// named like an expected directory (or vice versa) is ignored.
func matchMarkers(entries []fs.DirEntry, fileSet, dirSet []string) (files, dirs PresenceMap) {
	files = make(PresenceMap, len(fileSet))
	for _, name := range fileSet {
		files[name] = false
	}
	dirs = make(PresenceMap, len(dirSet))
	for _, name := range dirSet {
		dirs[name] = false
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if _, ok := dirs[name]; ok {
				dirs[name] = true
			}
		} else if entry.Type().IsRegular() {
			if _, ok := files[name]; ok {
				files[name] = true
			}
		}
	}

	return files, dirs
}
