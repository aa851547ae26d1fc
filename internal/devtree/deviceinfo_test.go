// SPDX-License-Identifier: MPL-2.0

package devtree

import (
	"testing"
	"testing/fstest"
)

func TestExtractDeviceInfoFromPath(t *testing.T) {
	info := extractDeviceInfo(fstest.MapFS{}, "/src/android/device/oneplus/cheeseburger", false)

	if got := info["vendor"]; got != "oneplus" {
		t.Errorf("vendor = %q, want %q", got, "oneplus")
	}
	if got := info["device"]; got != "cheeseburger" {
		t.Errorf("device = %q, want %q", got, "cheeseburger")
	}
}

func TestExtractDeviceInfoSingleSegmentPath(t *testing.T) {
	info := extractDeviceInfo(fstest.MapFS{}, "cheeseburger", false)

	if len(info) != 0 {
		t.Errorf("expected empty info for single-segment path, got %v", info)
	}
}

func TestExtractDeviceInfoProductName(t *testing.T) {
	fsys := fstest.MapFS{
		"AndroidProducts.mk": &fstest.MapFile{Data: []byte(
			"PRODUCT_MAKEFILES := $(LOCAL_DIR)/lineage_cheeseburger.mk\n" +
				"PRODUCT_NAME := stale_name\n" +
				"PRODUCT_NAME := lineage_cheeseburger\n",
		)},
	}

	info := extractDeviceInfo(fsys, "device/oneplus/cheeseburger", true)

	// Last declaration wins.
	if got := info["product_name"]; got != "lineage_cheeseburger" {
		t.Errorf("product_name = %q, want %q", got, "lineage_cheeseburger")
	}
	if got := info["vendor"]; got != "oneplus" {
		t.Errorf("vendor = %q, want %q", got, "oneplus")
	}
}

func TestExtractDeviceInfoProductNameFirstEqualsOnly(t *testing.T) {
	// The value is everything after the first "=", not the first field.
	fsys := fstest.MapFS{
		"AndroidProducts.mk": &fstest.MapFile{Data: []byte(
			"PRODUCT_NAME = a=b\n",
		)},
	}

	info := extractDeviceInfo(fsys, "v/d", true)

	if got := info["product_name"]; got != "a=b" {
		t.Errorf("product_name = %q, want %q", got, "a=b")
	}
}

func TestExtractDeviceInfoIgnoresLinesWithoutAssignment(t *testing.T) {
	fsys := fstest.MapFS{
		"AndroidProducts.mk": &fstest.MapFile{Data: []byte(
			"PRODUCT_NAME := lineage_cheeseburger\n" +
				"# see PRODUCT_NAME above\n",
		)},
	}

	info := extractDeviceInfo(fsys, "v/d", true)

	if got := info["product_name"]; got != "lineage_cheeseburger" {
		t.Errorf("product_name = %q, want %q", got, "lineage_cheeseburger")
	}
}

func TestExtractDeviceInfoSkipsUnfoundMakefile(t *testing.T) {
	fsys := fstest.MapFS{
		"AndroidProducts.mk": &fstest.MapFile{Data: []byte("PRODUCT_NAME := x\n")},
	}

	// Marker not found at the root: content scan must not run.
	info := extractDeviceInfo(fsys, "v/d", false)

	if _, ok := info["product_name"]; ok {
		t.Error("product_name extracted although the marker was not found")
	}
}
