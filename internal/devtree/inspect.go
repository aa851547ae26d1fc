// SPDX-License-Identifier: MPL-2.0

package devtree

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/charmbracelet/log"
)

// Options configures an Inspector beyond its filesystem and root path.
type Options struct {
	// ExtraKeyFiles are appended to the built-in expected-file set.
	// They participate in presence maps like the built-ins but never
	// affect structure validity.
	ExtraKeyFiles []string
	// ExtraKeyDirs are appended to the built-in expected-directory set.
	ExtraKeyDirs []string
	// Logger receives debug-level scan progress. Nil discards it.
	Logger *log.Logger
}

// Inspector runs the device-tree scan against an abstract filesystem
// rooted at the tree. Production callers pass os.DirFS; tests pass
// fstest.MapFS. The scan is single-threaded and runs to completion.
type Inspector struct {
	fsys    fs.FS
	root    string
	fileSet []string
	dirSet  []string
	logger  *log.Logger
}

// New creates an Inspector for the tree rooted at fsys. root is the
// original path string, used only to derive device identity from the
// vendor/device path convention.
func New(fsys fs.FS, root string, opts Options) *Inspector {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	fileSet := append(append([]string{}, KeyFiles...), opts.ExtraKeyFiles...)
	dirSet := append(append([]string{}, KeyDirs...), opts.ExtraKeyDirs...)

	return &Inspector{
		fsys:    fsys,
		root:    root,
		fileSet: fileSet,
		dirSet:  dirSet,
		logger:  logger,
	}
}

// Inspect scans the tree and builds the report. It fails only when the
// tree root itself cannot be read; unreadable entries deeper in the tree
// are skipped so partial results survive.
func (in *Inspector) Inspect() (*Report, error) {
	entries, err := fs.ReadDir(in.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read device tree root: %w", err)
	}

	in.logger.Debug("matching markers", "root", in.root, "entries", len(entries))
	files, dirs := matchMarkers(entries, in.fileSet, in.dirSet)

	info := extractDeviceInfo(in.fsys, in.root, files[productsMakefile])

	drivers := make(CategoryMap)
	in.logger.Debug("scanning device tree sources")
	scanDeviceTreeSources(in.fsys, drivers)
	in.logger.Debug("scanning board config")
	scanBoardConfig(in.fsys, drivers)
	in.logger.Debug("scanning product makefile")
	scanProductMakefile(in.fsys, drivers)
	in.logger.Debug("scanning prebuilt modules")
	scanPrebuiltModules(in.fsys, drivers)

	report := &Report{
		DeviceInfo: info,
		KeyFiles:   files,
		KeyDirs:    dirs,
		Drivers:    drivers,
	}
	report.StructureValid = report.hasMakefileMarker() && report.hasBoardConfig()

	in.logger.Debug("inspection complete",
		"verdict", report.Verdict().String(),
		"categories", len(drivers))

	return report, nil
}
