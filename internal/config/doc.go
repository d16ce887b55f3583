// Package config loads, normalizes, and validates storyshort configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides for the
// composition frame rate and placeholder duration. The placeholder duration
// and fps are ordinary settings rather than constants baked into playback.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
