// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// parseFlags builds a flag set for mode and parses args.
func parseFlags(t *testing.T, mode Mode, args ...string) *flag.FlagSet {
	t.Helper()
	fs := flag.NewFlagSet("ratecast", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	RegisterFlags(fs, mode)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return fs
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ratecast.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RATECAST_DATA", "ratings.csv")

	cfg, err := Load(nil, ModeBatch)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Data.Path != "ratings.csv" {
		t.Errorf("Data.Path = %q, want ratings.csv", cfg.Data.Path)
	}
	if cfg.Data.Loader != "csv" {
		t.Errorf("Data.Loader = %q, want csv", cfg.Data.Loader)
	}
	if cfg.Recommend.TopN != 5 {
		t.Errorf("Recommend.TopN = %d, want 5", cfg.Recommend.TopN)
	}
	if cfg.Recommend.Fallback || cfg.Recommend.IncludeSeen {
		t.Errorf("Recommend flags = %+v, want false", cfg.Recommend)
	}
	if cfg.Recommend.PrecomputeSimilarity {
		t.Error("batch mode should not precompute similarity by default")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}
	if cfg.Server.Addr() != "127.0.0.1:8080" {
		t.Errorf("Server.Addr() = %q, want 127.0.0.1:8080", cfg.Server.Addr())
	}
	if cfg.Server.RateLimitWindow != time.Minute {
		t.Errorf("Server.RateLimitWindow = %v, want 1m", cfg.Server.RateLimitWindow)
	}
	if cfg.Server.CacheSize != 1024 || cfg.Server.CacheTTL != 5*time.Minute {
		t.Errorf("Server cache = %d/%v, want 1024/5m", cfg.Server.CacheSize, cfg.Server.CacheTTL)
	}
}

func TestLoad_ServeDefaults(t *testing.T) {
	t.Setenv("RATECAST_DATA", "ratings.csv")

	cfg, err := Load(nil, ModeServe)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Recommend.PrecomputeSimilarity {
		t.Error("serve mode should precompute similarity by default")
	}
}

func TestLoad_MissingData(t *testing.T) {
	t.Setenv("RATECAST_DATA", "")

	_, err := Load(nil, ModeBatch)
	if err == nil {
		t.Fatal("Load() = nil error, want data.path required")
	}
	if !strings.Contains(err.Error(), "data.path is required") {
		t.Errorf("error = %q, want mention of data.path", err.Error())
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("RATECAST_DATA", "/data/ratings.csv")
	t.Setenv("RATECAST_LOADER", "duckdb")
	t.Setenv("RATECAST_USER", "u3")
	t.Setenv("RATECAST_TOP", "7")
	t.Setenv("RATECAST_INCLUDE_SEEN", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("RESPONSE_CACHE_SIZE", "0")
	t.Setenv("RATECAST_METRICS_FILE", "/tmp/ratecast.prom")

	cfg, err := Load(nil, ModeBatch)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Data.Path != "/data/ratings.csv" || cfg.Data.Loader != "duckdb" {
		t.Errorf("Data = %+v", cfg.Data)
	}
	if cfg.Recommend.User != "u3" || cfg.Recommend.TopN != 7 || !cfg.Recommend.IncludeSeen {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Server.RateLimitWindow != 30*time.Second {
		t.Errorf("Server.RateLimitWindow = %v, want 30s", cfg.Server.RateLimitWindow)
	}
	if cfg.Server.CacheSize != 0 {
		t.Errorf("Server.CacheSize = %d, want 0", cfg.Server.CacheSize)
	}
	if cfg.Metrics.Textfile != "/tmp/ratecast.prom" {
		t.Errorf("Metrics.Textfile = %q", cfg.Metrics.Textfile)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := writeYAML(t, `
data:
  path: from-file.csv
recommend:
  top_n: 10
  fallback: true
server:
  read_timeout: 5s
`)
	t.Setenv("RATECAST_DATA", "")
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("RATECAST_TOP", "12")

	cfg, err := Load(nil, ModeBatch)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Data.Path != "from-file.csv" {
		t.Errorf("Data.Path = %q, want from-file.csv", cfg.Data.Path)
	}
	// Environment beats the file.
	if cfg.Recommend.TopN != 12 {
		t.Errorf("Recommend.TopN = %d, want 12", cfg.Recommend.TopN)
	}
	if !cfg.Recommend.Fallback {
		t.Error("Recommend.Fallback = false, want true from file")
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	path := writeYAML(t, "data:\n  path: from-file.csv\nrecommend:\n  top_n: 10\n")
	t.Setenv("RATECAST_DATA", "")
	t.Setenv("RATECAST_TOP", "7")

	fs := parseFlags(t, ModeBatch,
		"-config", path,
		"-data", "from-flag.csv",
		"-top", "3",
		"-fallback",
		"-log-level", "warn",
	)

	cfg, err := Load(fs, ModeBatch)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Data.Path != "from-flag.csv" {
		t.Errorf("Data.Path = %q, want from-flag.csv", cfg.Data.Path)
	}
	if cfg.Recommend.TopN != 3 {
		t.Errorf("Recommend.TopN = %d, want 3", cfg.Recommend.TopN)
	}
	if !cfg.Recommend.Fallback {
		t.Error("Recommend.Fallback = false, want true")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoad_UnsetFlagsKeepLowerLayers(t *testing.T) {
	t.Setenv("RATECAST_DATA", "env.csv")
	t.Setenv("RATECAST_TOP", "7")

	cfg, err := Load(parseFlags(t, ModeBatch), ModeBatch)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Data.Path != "env.csv" || cfg.Recommend.TopN != 7 {
		t.Errorf("got data=%q top=%d, want env.csv and 7", cfg.Data.Path, cfg.Recommend.TopN)
	}
}

func TestLoad_ServeAddrFlag(t *testing.T) {
	t.Setenv("RATECAST_DATA", "ratings.csv")

	fs := parseFlags(t, ModeServe, "-addr", "0.0.0.0:9090", "-max-k", "50")
	cfg, err := Load(fs, ModeServe)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9090 {
		t.Errorf("Server = %s, want 0.0.0.0:9090", cfg.Server.Addr())
	}
	if cfg.Recommend.MaxK != 50 {
		t.Errorf("Recommend.MaxK = %d, want 50", cfg.Recommend.MaxK)
	}

	fs = parseFlags(t, ModeServe, "-addr", "no-port")
	if _, err := Load(fs, ModeServe); err == nil {
		t.Error("Load() with bad -addr = nil error")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantMsg string
	}{
		{
			name:    "unknown loader",
			env:     map[string]string{"RATECAST_LOADER": "parquet"},
			wantMsg: "data.loader must be one of",
		},
		{
			name:    "zero top",
			env:     map[string]string{"RATECAST_TOP": "0"},
			wantMsg: "recommend.top_n must be at least 1",
		},
		{
			name:    "top above max_k",
			env:     map[string]string{"RATECAST_TOP": "20", "RATECAST_MAX_K": "10"},
			wantMsg: "recommend.top_n must be <= recommend.max_k",
		},
		{
			name:    "bad log level",
			env:     map[string]string{"LOG_LEVEL": "loud"},
			wantMsg: "logging.level",
		},
		{
			name:    "port out of range",
			env:     map[string]string{"HTTP_PORT": "70000"},
			wantMsg: "server.port must be at most 65535",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RATECAST_DATA", "ratings.csv")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(nil, ModeBatch)
			if err == nil {
				t.Fatal("Load() = nil error, want validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	t.Setenv("RATECAST_DATA", "ratings.csv")
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load(nil, ModeBatch)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestEngineConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig(ModeServe)
	cfg.Recommend.TopN = 8
	cfg.Recommend.MaxK = 40
	cfg.Recommend.IncludeSeen = true

	engineCfg := cfg.EngineConfig()
	if engineCfg.Limits.DefaultK != 8 || engineCfg.Limits.MaxK != 40 {
		t.Errorf("Limits = %+v, want 8/40", engineCfg.Limits)
	}
	if engineCfg.ExcludeSeen {
		t.Error("ExcludeSeen = true, want false when IncludeSeen is set")
	}
	if !engineCfg.PrecomputeSimilarity {
		t.Error("PrecomputeSimilarity = false, want true in serve mode")
	}
	if err := engineCfg.Validate(); err != nil {
		t.Errorf("EngineConfig().Validate() = %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"RATECAST_DATA", "data.path"},
		{"RATECAST_TOP", "recommend.top_n"},
		{"RATECAST_INCLUDE_SEEN", "recommend.include_seen"},
		{"LOG_LEVEL", "logging.level"},
		{"HTTP_PORT", "server.port"},
		{"RATECAST_METRICS_FILE", "metrics.textfile"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.input); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEnvTransform_SkipsEmpty(t *testing.T) {
	t.Parallel()

	if key, _ := envTransform("RATECAST_DATA", ""); key != "" {
		t.Errorf("envTransform(empty) key = %q, want skipped", key)
	}
	key, value := envTransform("RATECAST_DATA", "x.csv")
	if key != "data.path" || value != "x.csv" {
		t.Errorf("envTransform() = (%q, %v), want (data.path, x.csv)", key, value)
	}
}
