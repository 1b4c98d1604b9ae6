// Package config loads, normalizes, and validates segcheck configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours SEGCHECK_* environment overrides.
// The Config type centralizes every knob the analysis commands need: where the
// enriched segments and validations live, the consensus threshold, the
// discrepancy comment gate, the heuristic keyword lists, and report options.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
