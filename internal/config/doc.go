// Package config loads, normalizes, and validates NSSK configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, accepts the flat config.yml layout used by
// earlier releases, and honours the SONARR_API_KEY environment fallback. The
// Config value is passed explicitly to every component; nothing reads
// configuration from global state.
package config
