// Package config loads, normalizes, and validates transcribe configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs, so flag handling can layer overrides on top of a sanitized
// baseline.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical engine/task/format values, and clear validation
// errors.
package config
