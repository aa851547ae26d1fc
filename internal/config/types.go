// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not
	// recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidMarkerName is returned when a configured extra marker is
	// empty or contains a path separator.
	ErrInvalidMarkerName = errors.New("invalid marker name")
)

type (
	// ColorScheme selects the console color scheme.
	ColorScheme string

	// Config is the tool configuration, loaded from the TOML config file
	// with environment overrides.
	Config struct {
		UI      UIConfig      `mapstructure:"ui" toml:"ui"`
		Markers MarkersConfig `mapstructure:"markers" toml:"markers"`
	}

	// UIConfig holds console output settings.
	UIConfig struct {
		// Verbose enables debug logging, as if --verbose was passed.
		Verbose bool `mapstructure:"verbose" toml:"verbose"`
		// ColorScheme selects the console color scheme.
		ColorScheme ColorScheme `mapstructure:"color_scheme" toml:"color_scheme"`
	}

	// MarkersConfig extends the built-in marker sets for site-specific
	// device-tree layouts. Extra markers participate in presence maps but
	// never affect structure validity.
	MarkersConfig struct {
		// ExtraFiles are appended to the expected-file marker set.
		ExtraFiles []string `mapstructure:"extra_files" toml:"extra_files"`
		// ExtraDirs are appended to the expected-directory marker set.
		ExtraDirs []string `mapstructure:"extra_dirs" toml:"extra_dirs"`
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
		Markers: MarkersConfig{
			ExtraFiles: []string{},
			ExtraDirs:  []string{},
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.UI.ColorScheme {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
	default:
		return fmt.Errorf("%w: %q (want auto, dark, or light)", ErrInvalidColorScheme, c.UI.ColorScheme)
	}

	for _, name := range c.Markers.ExtraFiles {
		if err := validateMarkerName(name); err != nil {
			return err
		}
	}
	for _, name := range c.Markers.ExtraDirs {
		if err := validateMarkerName(name); err != nil {
			return err
		}
	}
	return nil
}

// validateMarkerName rejects names that cannot match a single directory
// entry. Markers are matched against immediate children of the tree root,
// so path separators can never match.
func validateMarkerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidMarkerName)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidMarkerName, name)
	}
	return nil
}
