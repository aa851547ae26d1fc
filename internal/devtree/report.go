// SPDX-License-Identifier: MPL-2.0

package devtree

// Verdict classifies the overall structure of a tree for display. It is a
// three-valued refinement of Report.StructureValid.
type Verdict int

const (
	// VerdictInvalid means neither a product makefile nor a board config
	// was found.
	VerdictInvalid Verdict = iota
	// VerdictPartial means exactly one of the two critical marker groups
	// was found.
	VerdictPartial
	// VerdictValid means both a product makefile and a board config were
	// found.
	VerdictValid
)

// String returns a human-readable verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictValid:
		return "valid"
	case VerdictPartial:
		return "partial"
	default:
		return "invalid"
	}
}

// Report is the aggregate outcome of one inspection. It is constructed
// once per run and not mutated afterwards; the console summary and the
// plist exporter only read it.
type Report struct {
	// DeviceInfo holds identity attributes ("vendor", "device",
	// "product_name") derived from the tree. May be empty.
	DeviceInfo DeviceInfo
	// KeyFiles maps every expected file marker to whether it was found.
	KeyFiles PresenceMap
	// KeyDirs maps every expected directory marker to whether it was found.
	KeyDirs PresenceMap
	// Drivers holds the categorized driver/HAL/kernel-module references.
	Drivers CategoryMap
	// StructureValid is true when the tree carries a makefile marker
	// (AndroidProducts.mk or device.mk) and BoardConfig.mk.
	StructureValid bool
}

// hasMakefileMarker reports whether either makefile marker was found.
func (r *Report) hasMakefileMarker() bool {
	return r.KeyFiles[productsMakefile] || r.KeyFiles[deviceMakefile]
}

// hasBoardConfig reports whether the board-config marker was found.
func (r *Report) hasBoardConfig() bool {
	return r.KeyFiles[boardConfigFile]
}

// Verdict returns the display verdict for the tree structure.
func (r *Report) Verdict() Verdict {
	switch {
	case r.hasMakefileMarker() && r.hasBoardConfig():
		return VerdictValid
	case r.hasMakefileMarker() || r.hasBoardConfig():
		return VerdictPartial
	default:
		return VerdictInvalid
	}
}
