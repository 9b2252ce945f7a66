// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Mode selects the command the configuration is loaded for.
type Mode int

const (
	// ModeBatch is a single recommendation run that prints JSON and exits.
	ModeBatch Mode = iota
	// ModeServe is the long-running HTTP server.
	ModeServe
)

// DefaultConfigPaths lists the config files searched, in order, when no path
// is given explicitly.
var DefaultConfigPaths = []string{
	"ratecast.yaml",
	"ratecast.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "RATECAST_CONFIG"

// Load builds the configuration from defaults, the config file, the
// environment and the flags explicitly set on fs (fs may be nil), then
// validates it.
func Load(fs *flag.FlagSet, mode Mode) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(mode), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath, err := findConfigFile(fs)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	// RATECAST_DATA -> data.path, HTTP_PORT -> server.port
	if err := k.Load(env.ProviderWithValue("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Layer 4: flags set on the command line
	if err := applyFlags(k, fs); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the config file to load, or "" for none.
// A path named by -config or RATECAST_CONFIG must exist; the default paths
// are only used when present.
func findConfigFile(fs *flag.FlagSet) (string, error) {
	explicit := os.Getenv(ConfigPathEnvVar)
	if fs != nil {
		fs.Visit(func(f *flag.Flag) {
			if f.Name == FlagConfig {
				explicit = f.Value.String()
			}
		})
	}

	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config file %s: %w", path, err)
		}
	}

	return "", nil
}

// envMappings maps lowercased environment variable names to koanf paths.
// Variables not listed are ignored.
var envMappings = map[string]string{
	"ratecast_data":                  "data.path",
	"ratecast_loader":                "data.loader",
	"ratecast_user":                  "recommend.user",
	"ratecast_top":                   "recommend.top_n",
	"ratecast_max_k":                 "recommend.max_k",
	"ratecast_fallback":              "recommend.fallback",
	"ratecast_include_seen":          "recommend.include_seen",
	"ratecast_precompute_similarity": "recommend.precompute_similarity",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"rate_limit_requests":   "server.rate_limit_requests",
	"rate_limit_window":     "server.rate_limit_window",
	"response_cache_size":   "server.cache_size",
	"response_cache_ttl":    "server.cache_ttl",

	"ratecast_metrics_file": "metrics.textfile",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - RATECAST_DATA -> data.path
//   - RATECAST_TOP -> recommend.top_n
//   - LOG_LEVEL -> logging.level
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// envTransform skips empty variables so that VAR= behaves like an unset VAR.
func envTransform(key, value string) (string, interface{}) {
	if value == "" {
		return "", nil
	}
	return envTransformFunc(key), value
}
