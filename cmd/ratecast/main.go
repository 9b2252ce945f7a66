// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/ratecast/internal/config"
	"github.com/tomtom215/ratecast/internal/interactions"
	"github.com/tomtom215/ratecast/internal/logging"
	"github.com/tomtom215/ratecast/internal/metrics"
	"github.com/tomtom215/ratecast/internal/recommend"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches to the batch or serve command and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Bootstrap logger for errors raised before the configuration is loaded.
	bootstrap := logging.DefaultConfig()
	bootstrap.Output = stderr
	logging.Init(bootstrap)

	var err error
	if len(args) > 0 && args[0] == "serve" {
		err = runServe(ctx, args[1:], stderr)
	} else {
		err = runBatch(ctx, args, stdout, stderr)
	}

	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		return exitUsage
	default:
		logging.Error().Err(err).Msg("ratecast failed")
		return exitError
	}
}

// errUsage marks command-line parse failures. The flag package has already
// printed the details.
var errUsage = errors.New("invalid usage")

// parseFlags registers the flags for mode on a new FlagSet and parses args.
func parseFlags(name string, mode config.Mode, args []string, stderr io.Writer) (*flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	config.RegisterFlags(fs, mode)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return nil, errUsage
	}
	return fs, nil
}

// setup loads the configuration, initializes logging and returns an engine
// over the configured interactions file.
func setup(ctx context.Context, fs *flag.FlagSet, mode config.Mode, stderr io.Writer) (*config.Config, *recommend.Engine, error) {
	cfg, err := config.Load(fs, mode)
	if err != nil {
		return nil, nil, err
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    stderr,
	})

	records, err := loadInteractions(ctx, cfg)
	if err != nil {
		return cfg, nil, err
	}

	engine, err := recommend.NewEngine(records, cfg.EngineConfig(), logging.CtxWith(ctx).Logger())
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to create engine: %w", err)
	}
	engine.SetObserver(metrics.EngineObserver{})

	return cfg, engine, nil
}

// loadInteractions reads the data file with the configured loader.
func loadInteractions(ctx context.Context, cfg *config.Config) ([]recommend.Interaction, error) {
	loader, err := interactions.New(cfg.Data.Loader)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	records, err := loader.Load(ctx, cfg.Data.Path)
	metrics.RecordLoad(loader.Name(), len(records), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}

	logging.Ctx(ctx).Info().
		Str("path", cfg.Data.Path).
		Str("loader", loader.Name()).
		Int("interactions", len(records)).
		Dur("duration", time.Since(start)).
		Msg("loaded interactions")

	return records, nil
}
