// SPDX-License-Identifier: MPL-2.0

package devtree

import (
	"slices"
	"testing"
	"testing/fstest"
)

func TestFirstQuoted(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   string
		wantOK bool
	}{
		{"single pair", `compatible = "qcom,msm8996";`, "qcom,msm8996", true},
		{"takes first of several", `compatible = "qcom,msm8996", "qcom,other";`, "qcom,msm8996", true},
		{"no quotes", `compatible = bare;`, "", false},
		{"unterminated", `compatible = "qcom,msm8996`, "", false},
		{"empty pair", `compatible = ""`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := firstQuoted(tt.line)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("firstQuoted(%q) = (%q, %t), want (%q, %t)", tt.line, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestScanDeviceTreeSources(t *testing.T) {
	fsys := fstest.MapFS{
		"arch/foo.dts": &fstest.MapFile{Data: []byte(
			"/ {\n" +
				"\tcompatible = \"qcom,msm8996\", \"qcom,other\";\n" +
				"\tmodel = \"OnePlus 3\";\n" +
				"};\n",
		)},
		"arch/include/shared.dtsi": &fstest.MapFile{Data: []byte(
			"wifi: wifi@18800000 {\n" +
				"\tcompatible = \"qcom,wcn3990-wifi\";\n" +
				"};\n",
		)},
		"notes/foo.txt": &fstest.MapFile{Data: []byte(
			"compatible = \"not,a-dts-file\";\n",
		)},
	}

	drivers := make(CategoryMap)
	scanDeviceTreeSources(fsys, drivers)

	got := drivers.References(CategoryDTBindings)
	want := []string{
		"qcom,msm8996 (foo.dts)",
		"qcom,wcn3990-wifi (shared.dtsi)",
	}
	if !slices.Equal(got, want) {
		t.Errorf("References(%q) = %v, want %v", CategoryDTBindings, got, want)
	}
}

func TestKernelModuleTokens(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"filters non-ko tokens", "BOARD_VENDOR_KERNEL_MODULES := a.ko b.ko c.txt", []string{"a.ko", "b.ko"}},
		{"no assignment", "BOARD_VENDOR_KERNEL_MODULES a.ko", nil},
		{"no ko tokens", "KERNEL_MODULES := readme.txt", nil},
		{"empty value", "KERNEL_MODULES :=", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kernelModuleTokens(tt.line)
			if !slices.Equal(got, tt.want) {
				t.Errorf("kernelModuleTokens(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestAssignmentValue(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"colon equals", "BOARD_WLAN_DEVICE := qcwcn", []string{"qcwcn"}},
		{"plain equals", "WPA_SUPPLICANT_VERSION = VER_0_8_X", []string{"VER_0_8_X"}},
		{"prefers colon equals", "X = a := b", []string{"b"}},
		{"remainder after first equals", "PRODUCT_NAME = a=b", []string{"a=b"}},
		{"empty value skipped", "BOARD_HAVE_BLUETOOTH :=", nil},
		{"no assignment", "TARGET_BOARD_PLATFORM", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := assignmentValue(tt.line)
			if !slices.Equal(got, tt.want) {
				t.Errorf("assignmentValue(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestHalPackageName(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"mid-line", "PRODUCT_PACKAGES += android.hardware.audio@2.0-impl \\", []string{"android.hardware.audio@2.0-impl"}},
		{"end of line", "PRODUCT_PACKAGES += android.hardware.camera.provider@2.4-service", []string{"android.hardware.camera.provider@2.4-service"}},
		{"absent", "PRODUCT_PACKAGES += libfoo", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := halPackageName(tt.line)
			if !slices.Equal(got, tt.want) {
				t.Errorf("halPackageName(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestScanBoardConfig(t *testing.T) {
	fsys := fstest.MapFS{
		"BoardConfig.mk": &fstest.MapFile{Data: []byte(
			"TARGET_BOARD_PLATFORM := msm8996\n" +
				"BOARD_VENDOR_KERNEL_MODULES := wlan.ko audio.ko notes.txt\n" +
				"BOARD_WLAN_DEVICE := qcwcn\n" +
				"WPA_SUPPLICANT_VERSION := VER_0_8_X\n" +
				"BOARD_HAVE_BLUETOOTH := true\n" +
				"BOARD_HAVE_BLUETOOTH_QCOM := true\n" +
				"# BOARD_WLAN_DEVICE is set above\n",
		)},
	}

	drivers := make(CategoryMap)
	scanBoardConfig(fsys, drivers)

	cases := map[string][]string{
		CategoryGPU:           {"msm8996"},
		CategoryKernelModules: {"audio.ko", "wlan.ko"},
		CategoryWiFi:          {"VER_0_8_X", "qcwcn"},
		CategoryBluetooth:     {"true"},
	}
	for category, want := range cases {
		if got := drivers.References(category); !slices.Equal(got, want) {
			t.Errorf("References(%q) = %v, want %v", category, got, want)
		}
	}
}

func TestScanBoardConfigMissingFile(t *testing.T) {
	drivers := make(CategoryMap)
	scanBoardConfig(fstest.MapFS{}, drivers)

	if len(drivers) != 0 {
		t.Errorf("expected no drivers without BoardConfig.mk, got %v", drivers)
	}
}

func TestScanProductMakefileIndependentRules(t *testing.T) {
	// One line can land in several categories: the camera HAL package line
	// matches both the HAL rule and the camera rule.
	fsys := fstest.MapFS{
		"device.mk": &fstest.MapFile{Data: []byte(
			"PRODUCT_PACKAGES += android.hardware.camera.provider@2.4-impl\n" +
				"    audio.primary.msm8996\n" +
				"AUDIO_FEATURE_ENABLED := true\n" +
				"CAMERA_DAEMON := enabled\n",
		)},
	}

	drivers := make(CategoryMap)
	scanProductMakefile(fsys, drivers)

	if got := drivers.References(CategoryHAL); !slices.Equal(got, []string{"android.hardware.camera.provider@2.4-impl"}) {
		t.Errorf("References(%q) = %v", CategoryHAL, got)
	}
	// The HAL line also matches the camera rule, whose extractor takes the
	// assignment value after the "=" of "+=". Both categories record it.
	if got := drivers.References(CategoryCamera); !slices.Equal(got, []string{"android.hardware.camera.provider@2.4-impl", "enabled"}) {
		t.Errorf("References(%q) = %v", CategoryCamera, got)
	}
	// The bare continuation line has no assignment, so it yields nothing.
	if got := drivers.References(CategoryAudio); !slices.Equal(got, []string{"true"}) {
		t.Errorf("References(%q) = %v", CategoryAudio, got)
	}
}

func TestScanPrebuiltModules(t *testing.T) {
	fsys := fstest.MapFS{
		"prebuilt/wlan.ko":          &fstest.MapFile{Data: []byte{1}},
		"prebuilt/firmware/fw.bin":  &fstest.MapFile{Data: []byte{2}},
		"proprietary/lib/audio.ko":  &fstest.MapFile{Data: []byte{3}},
		"vendor/deep/nested/cam.ko": &fstest.MapFile{Data: []byte{4}},
		"other/ignored.ko":          &fstest.MapFile{Data: []byte{5}},
	}

	drivers := make(CategoryMap)
	scanPrebuiltModules(fsys, drivers)

	got := drivers.References(CategoryPrebuiltModules)
	want := []string{"audio.ko", "cam.ko", "wlan.ko"}
	if !slices.Equal(got, want) {
		t.Errorf("References(%q) = %v, want %v", CategoryPrebuiltModules, got, want)
	}
}

func TestCategoryMapReferencesDedup(t *testing.T) {
	m := make(CategoryMap)
	m.add("cat", "x")
	m.add("cat", "x")
	m.add("cat", "y")

	got := m.References("cat")
	want := []string{"x", "y"}
	if !slices.Equal(got, want) {
		t.Errorf("References() = %v, want %v", got, want)
	}
	// Raw entries are untouched.
	if len(m["cat"]) != 3 {
		t.Errorf("raw entry count = %d, want 3", len(m["cat"]))
	}
}

func TestCategoryMapCategoriesSorted(t *testing.T) {
	m := make(CategoryMap)
	m.add("WiFi Driver", "a")
	m.add("Audio Driver", "b")
	m.add("Kernel Modules", "c")

	got := m.Categories()
	want := []string{"Audio Driver", "Kernel Modules", "WiFi Driver"}
	if !slices.Equal(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}
