// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package config

import (
	"flag"
	"fmt"
	"net"
	"strconv"

	"github.com/knadh/koanf/v2"
)

// Flag names shared by the batch and serve commands.
const (
	FlagConfig      = "config"
	FlagData        = "data"
	FlagLoader      = "loader"
	FlagUser        = "user"
	FlagTop         = "top"
	FlagMaxK        = "max-k"
	FlagFallback    = "fallback"
	FlagIncludeSeen = "include-seen"
	FlagMetricsFile = "metrics-file"
	FlagLogLevel    = "log-level"
	FlagLogFormat   = "log-format"
	FlagAddr        = "addr"
)

// flagKeys maps flag names to koanf paths. FlagConfig and FlagAddr are
// handled separately.
var flagKeys = map[string]string{
	FlagData:        "data.path",
	FlagLoader:      "data.loader",
	FlagUser:        "recommend.user",
	FlagTop:         "recommend.top_n",
	FlagMaxK:        "recommend.max_k",
	FlagFallback:    "recommend.fallback",
	FlagIncludeSeen: "recommend.include_seen",
	FlagMetricsFile: "metrics.textfile",
	FlagLogLevel:    "logging.level",
	FlagLogFormat:   "logging.format",
}

// RegisterFlags defines the flags of the given command on fs. Flag defaults
// are for -help output only; unset flags never override other sources.
func RegisterFlags(fs *flag.FlagSet, mode Mode) {
	def := defaultConfig(mode)

	fs.String(FlagConfig, "", "path to a YAML config file (default ratecast.yaml if present)")
	fs.String(FlagData, "", "path to CSV with columns user_id,item_id[,rating]")
	fs.String(FlagLoader, def.Data.Loader, "CSV loader: csv or duckdb")
	fs.Int(FlagTop, def.Recommend.TopN, "number of items to return")
	fs.Bool(FlagIncludeSeen, false, "keep items the user already rated")
	fs.String(FlagLogLevel, def.Logging.Level, "log level: trace, debug, info, warn, error")
	fs.String(FlagLogFormat, def.Logging.Format, "log format: json or console")

	switch mode {
	case ModeServe:
		fs.String(FlagAddr, def.Server.Addr(), "HTTP listen address host:port")
		fs.Int(FlagMaxK, def.Recommend.MaxK, "largest k accepted per request")
	default:
		fs.String(FlagUser, "", "target user_id to recommend for")
		fs.Bool(FlagFallback, false, "return popular items if no user is provided")
		fs.String(FlagMetricsFile, "", "write Prometheus metrics to this file after the run")
	}
}

// applyFlags copies the flags explicitly set on fs into k.
func applyFlags(k *koanf.Koanf, fs *flag.FlagSet) error {
	if fs == nil {
		return nil
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}

		switch f.Name {
		case FlagConfig:
			return
		case FlagAddr:
			err = setAddr(k, f.Value.String())
			return
		}

		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}

		var value interface{} = f.Value.String()
		if getter, ok := f.Value.(flag.Getter); ok {
			value = getter.Get()
		}
		if setErr := k.Set(key, value); setErr != nil {
			err = fmt.Errorf("failed to set %s from -%s: %w", key, f.Name, setErr)
		}
	})

	return err
}

// setAddr splits a host:port flag into server.host and server.port.
func setAddr(k *koanf.Koanf, addr string) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid -%s %q: %w", FlagAddr, addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid -%s port %q: %w", FlagAddr, portStr, err)
	}

	if err := k.Set("server.host", host); err != nil {
		return err
	}
	return k.Set("server.port", port)
}
