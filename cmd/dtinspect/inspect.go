// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"dtinspect/internal/config"
	"dtinspect/internal/devtree"
	"dtinspect/internal/issue"
	"dtinspect/pkg/fspath"

	"github.com/spf13/cobra"
)

var exportPlistPath string

var inspectCmd = &cobra.Command{
	Use:   "inspect <tree-path>",
	Short: "Scan a device tree and report its hardware inventory",
	Long: `Scan a directory that claims to be an Android device tree.

The scan checks the tree root for well-known marker files and directories,
derives the device identity from the path layout and AndroidProducts.mk,
and extracts driver, HAL, and kernel-module references from device-tree
sources and build-configuration files. Results are printed as a summary
and can optionally be exported as an XML property list.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0], exportPlistPath)
	},
}

func init() {
	inspectCmd.Flags().StringVar(&exportPlistPath, "export-plist", "",
		"write the hardware report as an XML property list to this path")
}

func runInspect(treePath, exportPath string) error {
	root, err := resolveTreeRoot(treePath)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	report, err := inspectTree(root, activeConfig())
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	renderSummary(os.Stdout, root, report)

	if exportPath != "" {
		dst, err := fspath.Normalize(exportPath)
		if err != nil {
			dst = exportPath
		}
		logger.Debug("exporting hardware report", "path", dst)
		if err := report.ExportPlist(dst); err != nil {
			return &ExitError{Code: 1, Err: issue.NewErrorContext().
				WithOperation("export hardware report").
				WithResource(dst).
				WithSuggestion("Check that the destination directory exists and is writable").
				Wrap(err).
				Build()}
		}
		fmt.Println()
		fmt.Println(SuccessStyle.Render("✓") + " Hardware report exported to: " + dst)
	}

	return nil
}

// resolveTreeRoot normalizes the operator-supplied path and verifies it is
// an existing directory. Failures here abort the run before any scanning.
func resolveTreeRoot(treePath string) (string, error) {
	root, err := fspath.Normalize(treePath)
	if err != nil {
		return "", issue.NewErrorContext().
			WithOperation("resolve device tree path").
			WithResource(treePath).
			Wrap(err).
			Build()
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", issue.NewErrorContext().
			WithOperation("inspect device tree").
			WithResource(treePath).
			WithSuggestion("Check that the path exists").
			WithSuggestion("Point dtinspect at the device tree root, e.g. device/<vendor>/<device>").
			Wrap(err).
			Build()
	}
	if !info.IsDir() {
		return "", issue.NewErrorContext().
			WithOperation("inspect device tree").
			WithResource(treePath).
			WithSuggestion("Pass the device tree directory, not a file inside it").
			Wrap(fmt.Errorf("not a directory")).
			Build()
	}

	return root, nil
}

// inspectTree runs the scan with the configured extra markers.
func inspectTree(root string, cfg *config.Config) (*devtree.Report, error) {
	inspector := devtree.New(os.DirFS(root), root, devtree.Options{
		ExtraKeyFiles: cfg.Markers.ExtraFiles,
		ExtraKeyDirs:  cfg.Markers.ExtraDirs,
		Logger:        logger,
	})
	return inspector.Inspect()
}
