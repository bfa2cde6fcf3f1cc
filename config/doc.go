// Package config provides file-based runtime configuration for the
// orchestration engine. Settings load from a YAML document layered over the
// defaults, so a config file only needs to state what it changes.
package config
