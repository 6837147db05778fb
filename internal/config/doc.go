// Package config provides configuration structures and utilities for scuwl.
// It defines the crawl settings (seeds, depth, word filters, HTTP client
// options) and loads optional per-host overrides from a YAML config file.
package config
