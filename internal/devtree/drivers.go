// SPDX-License-Identifier: MPL-2.0

package devtree

import (
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"
	"unicode"
)

// Driver reference categories. The set is open: categories are created
// lazily on first match, and a category with zero matches never appears.
const (
	CategoryDTBindings      = "Device Tree Bindings"
	CategoryKernelModules   = "Kernel Modules"
	CategoryWiFi            = "WiFi Driver"
	CategoryBluetooth       = "Bluetooth Driver"
	CategoryGPU             = "GPU/Platform"
	CategoryHAL             = "HAL (Hardware Abstraction Layer)"
	CategoryAudio           = "Audio Driver"
	CategoryCamera          = "Camera Driver"
	CategoryPrebuiltModules = "Prebuilt Kernel Modules"
)

const kernelModuleExt = ".ko"

// prebuiltDirs are the tree-root subdirectories searched for prebuilt
// kernel modules.
var prebuiltDirs = []string{"prebuilt", "proprietary", "vendor"}

// CategoryMap accumulates driver references grouped by category. Raw
// entries may repeat across scans; References deduplicates on read.
type CategoryMap map[string][]string

func (m CategoryMap) add(category, ref string) {
	m[category] = append(m[category], ref)
}

// Categories returns the category names in sorted order.
func (m CategoryMap) Categories() []string {
	return slices.Sorted(maps.Keys(m))
}

// References returns the deduplicated references for a category in
// lexicographic order. Dedup is case-sensitive exact-string.
func (m CategoryMap) References(category string) []string {
	refs := slices.Clone(m[category])
	slices.Sort(refs)
	return slices.Compact(refs)
}

// lineRule classifies one trimmed line of a build-configuration file.
type lineRule struct {
	category string
	match    func(line string) bool
	extract  func(line string) []string
}

// boardConfigRules classifies BoardConfig.mk lines. The conditions are
// mutually exclusive by construction of the source patterns, so evaluating
// every rule per line never double-records.
var boardConfigRules = []lineRule{
	{
		category: CategoryKernelModules,
		match:    containsAny("BOARD_VENDOR_KERNEL_MODULES", "KERNEL_MODULES"),
		extract:  kernelModuleTokens,
	},
	{
		category: CategoryWiFi,
		match:    hasPrefixAny("BOARD_WLAN_DEVICE", "WPA_SUPPLICANT_VERSION"),
		extract:  assignmentValue,
	},
	{
		category: CategoryBluetooth,
		match:    hasPrefixAny("BOARD_HAVE_BLUETOOTH", "BOARD_BLUETOOTH_BDROID_BUILDCFG"),
		extract:  assignmentValue,
	},
	{
		category: CategoryGPU,
		match:    hasPrefixAny("TARGET_BOARD_PLATFORM"),
		extract:  assignmentValue,
	},
}

// productMakefileRules classifies device.mk lines. Unlike the board-config
// rules these are not mutually exclusive: a line may be recorded under
// several categories.
var productMakefileRules = []lineRule{
	{
		category: CategoryHAL,
		match: func(line string) bool {
			return strings.Contains(line, "PRODUCT_PACKAGES") &&
				strings.Contains(line, "android.hardware.")
		},
		extract: halPackageName,
	},
	{
		category: CategoryAudio,
		match:    containsAny("audio.", "AUDIO_"),
		extract:  assignmentValue,
	},
	{
		category: CategoryCamera,
		match:    containsAny("camera.", "CAMERA_"),
		extract:  assignmentValue,
	},
}

func containsAny(substrs ...string) func(string) bool {
	return func(line string) bool {
		for _, s := range substrs {
			if strings.Contains(line, s) {
				return true
			}
		}
		return false
	}
}

func hasPrefixAny(prefixes ...string) func(string) bool {
	return func(line string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(line, p) {
				return true
			}
		}
		return false
	}
}

// classifyLines runs every rule against every trimmed line of content and
// records the extracted references.
func classifyLines(content string, rules []lineRule, drivers CategoryMap) {
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		for _, rule := range rules {
			if !rule.match(line) {
				continue
			}
			for _, ref := range rule.extract(line) {
				drivers.add(rule.category, ref)
			}
		}
	}
}

// kernelModuleTokens extracts module names from lines like
// "BOARD_VENDOR_KERNEL_MODULES := wlan.ko audio.ko". Only the
// whitespace-delimited tokens after ":=" that end in ".ko" count.
func kernelModuleTokens(line string) []string {
	_, after, ok := strings.Cut(line, ":=")
	if !ok {
		return nil
	}
	var modules []string
	for _, tok := range strings.Fields(after) {
		if strings.HasSuffix(tok, kernelModuleExt) {
			modules = append(modules, tok)
		}
	}
	return modules
}

// assignmentValue extracts the value from "VAR := value" or "VAR = value":
// the trimmed text after the first ":=", falling back to the first "=".
// Empty values yield no reference.
func assignmentValue(line string) []string {
	var value string
	if _, after, ok := strings.Cut(line, ":="); ok {
		value = after
	} else if _, after, ok := strings.Cut(line, "="); ok {
		value = after
	} else {
		return nil
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return []string{value}
}

// halPackageName extracts a HAL package reference like
// "android.hardware.audio@2.0-impl": the substring from "android.hardware."
// up to the next whitespace character or end of line.
func halPackageName(line string) []string {
	start := strings.Index(line, "android.hardware.")
	if start < 0 {
		return nil
	}
	name := line[start:]
	if end := strings.IndexFunc(name, unicode.IsSpace); end >= 0 {
		name = name[:end]
	}
	return []string{name}
}

// firstQuoted returns the text between the first pair of double quotes on
// the line. Lines without a well-formed quoted substring yield nothing.
func firstQuoted(line string) (string, bool) {
	start := strings.IndexByte(line, '"')
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(line[start+1:], '"')
	if end < 0 {
		return "", false
	}
	return line[start+1 : start+1+end], true
}

// scanDeviceTreeSources walks the entire tree for .dts/.dtsi files and
// records the compatible strings they declare. Compatible strings identify
// which driver binding a hardware node matches; only the first quoted
// value of each declaration is taken.
func scanDeviceTreeSources(fsys fs.FS, drivers CategoryMap) {
	_ = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !strings.HasSuffix(name, ".dts") && !strings.HasSuffix(name, ".dtsi") {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil
		}
		for _, raw := range strings.Split(string(data), "\n") {
			line := strings.TrimSpace(raw)
			if !strings.HasPrefix(line, "compatible") {
				continue
			}
			if compat, ok := firstQuoted(line); ok {
				drivers.add(CategoryDTBindings, fmt.Sprintf("%s (%s)", compat, name))
			}
		}
		return nil
	})
}

// scanBoardConfig classifies the root BoardConfig.mk, if present.
func scanBoardConfig(fsys fs.FS, drivers CategoryMap) {
	data, err := fs.ReadFile(fsys, boardConfigFile)
	if err != nil {
		return
	}
	classifyLines(string(data), boardConfigRules, drivers)
}

// scanProductMakefile classifies the root device.mk, if present.
func scanProductMakefile(fsys fs.FS, drivers CategoryMap) {
	data, err := fs.ReadFile(fsys, deviceMakefile)
	if err != nil {
		return
	}
	classifyLines(string(data), productMakefileRules, drivers)
}

// scanPrebuiltModules records every .ko file under the well-known prebuilt
// subdirectories by base name. A .ko file is a compiled loadable kernel
// module shipped as a proprietary blob.
func scanPrebuiltModules(fsys fs.FS, drivers CategoryMap) {
	for _, dir := range prebuiltDirs {
		info, err := fs.Stat(fsys, dir)
		if err != nil || !info.IsDir() {
			continue
		}
		_ = fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if strings.HasSuffix(d.Name(), kernelModuleExt) {
				drivers.add(CategoryPrebuiltModules, d.Name())
			}
			return nil
		})
	}
}
