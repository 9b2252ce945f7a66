// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/ratecast/internal/recommend"
)

// Config holds all application configuration.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
	Server    ServerConfig    `koanf:"server"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// DataConfig selects the interactions file and how it is read.
type DataConfig struct {
	// Path is the interactions CSV file.
	Path string `koanf:"path" validate:"required"`

	// Loader is csv or duckdb.
	// Default: csv
	Loader string `koanf:"loader" validate:"oneof=csv duckdb"`
}

// RecommendConfig holds request defaults and engine tuning.
type RecommendConfig struct {
	// User is the target user for a batch run. Empty selects the popularity
	// fallback when Fallback is set.
	User string `koanf:"user"`

	// TopN is the number of items returned.
	// Default: 5
	TopN int `koanf:"top_n" validate:"min=1"`

	// MaxK caps TopN and the API's k parameter.
	// Default: 1000
	MaxK int `koanf:"max_k" validate:"min=1"`

	// Fallback returns popular items when no user is given.
	Fallback bool `koanf:"fallback"`

	// IncludeSeen keeps items the user already rated.
	IncludeSeen bool `koanf:"include_seen"`

	// PrecomputeSimilarity builds the full similarity matrix once.
	PrecomputeSimilarity bool `koanf:"precompute_similarity"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	// Level is the minimum log level.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// ServerConfig holds the HTTP listener settings for serve mode.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	// RateLimitReqs is the per-IP request budget per window. 0 disables limiting.
	RateLimitReqs   int           `koanf:"rate_limit_requests" validate:"min=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"gt=0"`

	// CacheSize is the number of responses kept in memory. 0 disables the cache.
	CacheSize int           `koanf:"cache_size" validate:"min=0"`
	CacheTTL  time.Duration `koanf:"cache_ttl" validate:"gt=0"`
}

// Addr returns host:port for http.Server.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// MetricsConfig holds batch metrics output settings.
type MetricsConfig struct {
	// Textfile receives all metrics in Prometheus text format after a batch
	// run, for node_exporter's textfile collector. Empty disables it.
	Textfile string `koanf:"textfile"`
}

// defaultConfig returns a Config with every default applied.
// Serve mode precomputes the similarity matrix since it answers many users.
func defaultConfig(mode Mode) *Config {
	return &Config{
		Data: DataConfig{
			Loader: "csv",
		},
		Recommend: RecommendConfig{
			TopN:                 5,
			MaxK:                 1000,
			PrecomputeSimilarity: mode == ModeServe,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CacheSize:       1024,
			CacheTTL:        5 * time.Minute,
		},
	}
}

// EngineConfig derives the recommendation engine settings.
func (c *Config) EngineConfig() *recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.Limits.DefaultK = c.Recommend.TopN
	cfg.Limits.MaxK = c.Recommend.MaxK
	cfg.ExcludeSeen = !c.Recommend.IncludeSeen
	cfg.PrecomputeSimilarity = c.Recommend.PrecomputeSimilarity
	return cfg
}
