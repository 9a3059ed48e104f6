/*
Package config provides the configuration surface of typeconv.

# Overview

Config wraps a map[string]any and provides typed accessor methods that
handle missing keys and type mismatches gracefully by returning default
values. Dotted keys address nested maps, so the same keys work for flat and
sectioned files.

Settings is the policy object passed to registries and converters:

	settings, err := config.Load("typeconv.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	conv := typeconv.New(reg, typeconv.WithSettings(settings))

# File Format

	typeconv:
	  not_found: default   # or "error"
	  culture: de-DE       # numeric formatting for built-in converters
	  auto_reset: true     # seed built-ins in new registries

YAML, JSON and TOML files are accepted; the format is chosen by extension.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
