// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"dtinspect/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage dtinspect configuration",
	Long: `Manage dtinspect configuration.

Configuration is stored in:
  - Linux: ~/.config/dtinspect/config.toml
  - macOS: ~/Library/Application Support/dtinspect/config.toml
  - Windows: %APPDATA%\dtinspect\config.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault()
			if err != nil {
				return err
			}
			fmt.Println(SuccessStyle.Render("✓") + " Created " + path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := config.Dump(activeConfig())
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	})
}

func showConfig() error {
	cfg := activeConfig()

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	path, err := config.DefaultPath()
	if err == nil && fileExists(path) {
		fmt.Printf("%s: %s\n", KeyStyle.Render("Config file"), path)
	} else {
		fmt.Printf("%s: %s\n", KeyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", KeyStyle.Render("ui.verbose"), SuccessStyle.Render(fmt.Sprintf("%t", cfg.UI.Verbose)))
	fmt.Printf("%s: %s\n", KeyStyle.Render("ui.color_scheme"), SuccessStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Printf("%s: %s\n", KeyStyle.Render("markers.extra_files"), SuccessStyle.Render(formatList(cfg.Markers.ExtraFiles)))
	fmt.Printf("%s: %s\n", KeyStyle.Render("markers.extra_dirs"), SuccessStyle.Render(formatList(cfg.Markers.ExtraDirs)))

	return nil
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	return "[" + strings.Join(items, ", ") + "]"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
