// Package config loads and validates the process-wide handler settings
// (destination bucket, default instance, ambient region, log level).
//
// Settings come from environment variables, optionally overlaid on a YAML
// file for local runs. The resulting Config is immutable and injected into
// the handler at construction.
package config
