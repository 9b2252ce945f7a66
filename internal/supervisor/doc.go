// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

/*
Package supervisor runs the long-lived parts of `ratecast serve` under suture v4.

# Overview

The tree has two layers so the HTTP server keeps answering health checks while
the engine is still building its matrix:

	RootSupervisor ("ratecast")
	├── EngineSupervisor ("engine-layer")
	│   └── WarmupService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events (restarts, backoff, timeouts) are logged through
thejerf/sutureslog, fed by a slog.Logger that writes into zerolog:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddEngineService(services.NewWarmupService(engine, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

Canceling the context stops every service, waiting at most ShutdownTimeout for
each one.
*/
package supervisor
