// SPDX-License-Identifier: MPL-2.0

package devtree

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"dtinspect/internal/plist"
)

// Top-level plist keys of the exported hardware report. The order is part
// of the report format and fixed; inner dictionaries are sorted by key.
const (
	plistKeyDeviceInfo     = "DeviceInformation"
	plistKeyStructureValid = "StructureValid"
	plistKeyFiles          = "KeyFiles"
	plistKeyDirs           = "KeyDirectories"
	plistKeyDrivers        = "DeviceDrivers"
)

// plistDocument builds the property-list representation of the report.
func (r *Report) plistDocument() *plist.Dict {
	info := plist.NewDict()
	for _, key := range slices.Sorted(maps.Keys(r.DeviceInfo)) {
		info.Set(key, plist.String(r.DeviceInfo[key]))
	}

	files := plist.NewDict()
	for _, name := range slices.Sorted(maps.Keys(r.KeyFiles)) {
		files.Set(name, plist.Bool(r.KeyFiles[name]))
	}

	dirs := plist.NewDict()
	for _, name := range slices.Sorted(maps.Keys(r.KeyDirs)) {
		dirs.Set(name, plist.Bool(r.KeyDirs[name]))
	}

	drivers := plist.NewDict()
	for _, category := range r.Drivers.Categories() {
		refs := r.Drivers.References(category)
		arr := make(plist.Array, len(refs))
		for i, ref := range refs {
			arr[i] = plist.String(ref)
		}
		drivers.Set(category, arr)
	}

	root := plist.NewDict()
	root.Set(plistKeyDeviceInfo, info)
	root.Set(plistKeyStructureValid, plist.Bool(r.StructureValid))
	root.Set(plistKeyFiles, files)
	root.Set(plistKeyDirs, dirs)
	root.Set(plistKeyDrivers, drivers)
	return root
}

// EncodePlist writes the report as an XML property list to w.
func (r *Report) EncodePlist(w io.Writer) error {
	return plist.Encode(w, r.plistDocument())
}

// ExportPlist writes the report as an XML property list to path. A
// half-written file is left in place on failure.
func (r *Report) ExportPlist(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := r.EncodePlist(f); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}
