// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"dtinspect/internal/devtree"
)

// renderSummary prints the human-facing inspection summary. The wording is
// not a stable contract; the plist export is.
func renderSummary(w io.Writer, root string, r *devtree.Report) {
	fmt.Fprintln(w, TitleStyle.Render("Device Tree Inspection"))
	fmt.Fprintln(w, SubtitleStyle.Render(root))
	fmt.Fprintln(w)

	renderDeviceInfo(w, r.DeviceInfo)
	renderPresence(w, "Key Files", r.KeyFiles)
	fmt.Fprintln(w)
	renderPresence(w, "Key Directories", r.KeyDirs)
	fmt.Fprintln(w)
	renderVerdict(w, r.Verdict())
	fmt.Fprintln(w)
	renderDrivers(w, r.Drivers)
}

func renderDeviceInfo(w io.Writer, info devtree.DeviceInfo) {
	if len(info) == 0 {
		return
	}
	fmt.Fprintln(w, TitleStyle.Render("Device Information"))
	// Known attributes first, in a stable order.
	for _, attr := range [][2]string{
		{"vendor", "Vendor"},
		{"device", "Device"},
		{"product_name", "Product name"},
	} {
		if value, ok := info[attr[0]]; ok {
			fmt.Fprintf(w, "  %s: %s\n", KeyStyle.Render(attr[1]), value)
		}
	}
	fmt.Fprintln(w)
}

func renderPresence(w io.Writer, title string, markers devtree.PresenceMap) {
	fmt.Fprintf(w, "%s (%d/%d):\n", TitleStyle.Render(title), markers.FoundCount(), len(markers))
	for _, name := range slices.Sorted(maps.Keys(markers)) {
		if markers[name] {
			fmt.Fprintf(w, "  %s %s\n", SuccessStyle.Render("✓"), name)
		} else {
			fmt.Fprintf(w, "  %s %s %s\n", ErrorStyle.Render("✗"), name, SubtitleStyle.Render("(missing)"))
		}
	}
}

func renderVerdict(w io.Writer, v devtree.Verdict) {
	var status string
	switch v {
	case devtree.VerdictValid:
		status = SuccessStyle.Render("✓ Valid Android device tree structure")
	case devtree.VerdictPartial:
		status = WarningStyle.Render("⚠ Partial device tree structure (missing critical files)")
	default:
		status = ErrorStyle.Render("✗ Does not appear to be a valid Android device tree")
	}
	fmt.Fprintf(w, "%s: %s\n", TitleStyle.Render("Structure"), status)
}

func renderDrivers(w io.Writer, drivers devtree.CategoryMap) {
	fmt.Fprintln(w, TitleStyle.Render("Device Drivers"))
	if len(drivers) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("  No device drivers found in the tree."))
		return
	}
	for _, category := range drivers.Categories() {
		fmt.Fprintf(w, "\n%s:\n", KeyStyle.Render(category))
		for _, ref := range drivers.References(category) {
			fmt.Fprintf(w, "  • %s\n", ref)
		}
	}
	fmt.Fprintf(w, "\nTotal driver categories: %d\n", len(drivers))
}
