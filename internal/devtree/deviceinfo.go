// SPDX-License-Identifier: MPL-2.0

package devtree

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// DeviceInfo holds identity attributes derived from the tree. Attributes
// are populated opportunistically; the map may be empty.
type DeviceInfo map[string]string

// extractDeviceInfo derives device identity two ways: from the tree path,
// assuming the conventional vendor/device directory layout, and from a
// PRODUCT_NAME declaration in AndroidProducts.mk when that marker was
// found. Both are naming-convention heuristics and may be wrong for
// non-conforming layouts.
func extractDeviceInfo(fsys fs.FS, root string, hasProductsMakefile bool) DeviceInfo {
	info := make(DeviceInfo)

	parts := strings.Split(filepath.ToSlash(filepath.Clean(root)), "/")
	if len(parts) >= 2 {
		info["vendor"] = parts[len(parts)-2]
		info["device"] = parts[len(parts)-1]
	}

	if hasProductsMakefile {
		if data, err := fs.ReadFile(fsys, productsMakefile); err == nil {
			for _, line := range strings.Split(string(data), "\n") {
				if !strings.Contains(line, "PRODUCT_NAME") {
					continue
				}
				// Last declaration wins.
				if _, value, ok := strings.Cut(line, "="); ok {
					info["product_name"] = strings.TrimSpace(value)
				}
			}
		}
	}

	return info
}
