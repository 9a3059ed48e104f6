package config

import (
	"fmt"
	"strings"
)

// NotFoundPolicy selects what strict conversions do when no converter applies
// or the converter fails.
type NotFoundPolicy int

const (
	// PolicyError returns an error.
	PolicyError NotFoundPolicy = iota

	// PolicyDefault returns the zero value of the target type.
	PolicyDefault
)

// String returns the policy name as used in configuration files.
func (p NotFoundPolicy) String() string {
	switch p {
	case PolicyError:
		return "error"
	case PolicyDefault:
		return "default"
	default:
		return "unknown"
	}
}

// ParsePolicy parses "error" or "default" (case-insensitive).
func ParsePolicy(s string) (NotFoundPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "strict", "":
		return PolicyError, nil
	case "default", "lenient":
		return PolicyDefault, nil
	}
	return PolicyError, fmt.Errorf("unknown not-found policy %q", s)
}

// Configuration keys read by SettingsFrom.
const (
	KeyNotFound  = "typeconv.not_found"
	KeyCulture   = "typeconv.culture"
	KeyAutoReset = "typeconv.auto_reset"
)

// Settings is the global policy handed to registries and converters.
type Settings struct {
	// NotFound controls strict conversions when resolution or invocation fails.
	NotFound NotFoundPolicy

	// Culture is the BCP 47 tag of the numeric formatting provider used by
	// the built-in converters. Empty selects the invariant provider.
	Culture string

	// AutoReset makes newly constructed registries clear themselves and
	// seed the built-in converters.
	AutoReset bool
}

// DefaultSettings returns strict, invariant, auto-resetting settings.
func DefaultSettings() Settings {
	return Settings{
		NotFound:  PolicyError,
		AutoReset: true,
	}
}

// Lenient reports whether failures fall back to zero values.
func (s Settings) Lenient() bool {
	return s.NotFound == PolicyDefault
}

// SettingsFrom extracts Settings from a Config, starting from DefaultSettings.
func SettingsFrom(c Config) (Settings, error) {
	s := DefaultSettings()
	if c.Has(KeyNotFound) {
		p, err := ParsePolicy(c.String(KeyNotFound, ""))
		if err != nil {
			return s, err
		}
		s.NotFound = p
	}
	s.Culture = c.String(KeyCulture, s.Culture)
	s.AutoReset = c.Bool(KeyAutoReset, s.AutoReset)
	return s, nil
}

// Load reads Settings from a YAML, JSON or TOML file.
func Load(path string) (Settings, error) {
	c, err := FromFile(path)
	if err != nil {
		return Settings{}, err
	}
	return SettingsFrom(c)
}
