// Package config loads and validates the TOML configuration that drives the
// chartkit CLI: library and export locations plus logging preferences. A
// missing config file falls back to repository defaults so the tools work out
// of the box.
package config
