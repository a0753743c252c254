// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

// Package main is the entry point for the Roomatlas server.
//
// Roomatlas mirrors the occupancy of a residential building from an
// upstream tenancy-management (AMS) API into a local document store and
// serves the reconciled building layout over HTTP.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Store: Open the BadgerDB document store and seed the tag catalog
//  3. Sync pipeline: AMS client with circuit breaker, fetcher, aggregator, reconciler
//  4. Supervisor tree: periodic reconciliation service plus the HTTP API service
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file (config.yaml),
// built-in defaults. Required settings:
//
//	export SOURCE_BASE_URL=https://ams.example.com
//	export AMS_TOKEN=...        # _ams_token session cookie
//	export COMMON_TOKEN=...     # _common_token session cookie
//	./roomatlas
//
// Instead of fixed tokens, AUTH_TOKEN_FILE may point at a cookie export
// that is re-read whenever the upstream session expires.
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: the
// supervisor tree stops its services, in-flight requests get a 10s
// drain window, and the store is closed last.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/roomatlas/roomatlas/internal/api"
	"github.com/roomatlas/roomatlas/internal/auth"
	"github.com/roomatlas/roomatlas/internal/config"
	"github.com/roomatlas/roomatlas/internal/layout"
	"github.com/roomatlas/roomatlas/internal/logging"
	"github.com/roomatlas/roomatlas/internal/roomid"
	"github.com/roomatlas/roomatlas/internal/store"
	"github.com/roomatlas/roomatlas/internal/supervisor"
	"github.com/roomatlas/roomatlas/internal/supervisor/services"
	"github.com/roomatlas/roomatlas/internal/sync"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("source_url", cfg.Source.BaseURL).
		Str("db_path", cfg.Database.Path).
		Bool("sync_enabled", cfg.Sync.Enabled).
		Msg("Starting Roomatlas")

	creds, err := auth.FromConfig(cfg.Auth.AMSToken, cfg.Auth.CommonToken, cfg.Auth.TokenFile)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load upstream credentials")
	}

	s, err := store.Open(cfg.Database, cfg.Sync.DefaultTag)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open document store")
	}
	defer func() {
		if err := s.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing document store")
		}
	}()
	logging.Info().Msg("Document store opened")

	// Sync pipeline: circuit-broken AMS client feeding the reconciler.
	amsClient := sync.NewAMSClient(&cfg.Source, creds.Current())
	breaker := sync.NewCircuitBreakerClient(amsClient)
	fetcher := sync.NewFetcher(breaker, creds, &cfg.Source)

	buildingLayout := layout.New(cfg.Layout)
	parser := roomid.NewParser(cfg.Layout.HouseNamePrefix)
	manager := sync.NewManager(
		fetcher,
		sync.NewAggregator(parser),
		sync.NewReconciler(buildingLayout),
		buildingLayout,
		s,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	if cfg.Sync.Enabled {
		tree.AddSyncService(services.NewRefreshService(manager, cfg.Sync.Interval, cfg.Sync.OnStartup))
		logging.Info().
			Dur("interval", cfg.Sync.Interval).
			Bool("on_startup", cfg.Sync.OnStartup).
			Msg("Reconciliation service added to supervisor tree")
	} else {
		logging.Info().Msg("Periodic reconciliation disabled, cycles run on demand only")
	}

	router := api.NewRouter(
		api.NewHandler(s, manager),
		api.NewMiddleware(&api.MiddlewareConfig{
			CORSAllowedOrigins: cfg.Server.CORSOrigins,
			RateLimitRequests:  cfg.Server.RateLimitReqs,
			RateLimitWindow:    cfg.Server.RateLimitWindow,
		}),
	)
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Roomatlas stopped")
}
