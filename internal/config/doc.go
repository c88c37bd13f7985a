// Package config manages the goradius daemon configuration using
// koanf/v2.
//
// Supports YAML files and RADIUSD_-prefixed environment variable overrides.
package config
