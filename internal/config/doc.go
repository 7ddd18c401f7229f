// Package config loads, normalizes, and validates foldfeat configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// FOLDFEAT_OUTPUT_DIR, optionally sourced from a local .env file. The Config
// type centralizes every knob the CLI, the extractor, and the batch runner
// need, so output locations and traversal options are resolved in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
