// Package config loads, normalizes, and validates Bilrost CLI configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks such as BILROST_PORT. The
// Config type centralizes the knobs the CLI needs to locate, launch, and talk
// to the backend service.
//
// Always obtain settings through this package so callers receive expanded
// paths and clear validation errors.
package config
