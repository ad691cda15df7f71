// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/api"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/config"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/logging"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/signals"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/supervisor"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/supervisor/services"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}
}

//nolint:gocyclo // sequential wiring of the supervisor tree
func runServe(ctx context.Context, cfg *config.Config) error {
	logging.Info().
		Str("db_driver", cfg.Database.Driver).
		Str("cache_backend", cfg.Cache.Backend).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Bool("signals_enabled", cfg.Signals.Enabled).
		Str("signals_transport", cfg.Signals.Transport).
		Msg("Starting recommendation service with supervisor tree")

	st, err := openStack(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer closeQuietly(st, "store")

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLoggerFor("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	var sink signals.Sink = signals.NewDirect(st.service)
	var router *services.SignalRouterService
	if cfg.Signals.Enabled {
		bus, err := signals.NewBus(&cfg.Signals, logging.NewWatermillLogger())
		if err != nil {
			return err
		}
		defer closeQuietly(bus, "signal bus")
		bus.SetFallback(st.service)

		router = services.NewSignalRouterService(func() (services.SignalConsumer, error) {
			c, err := signals.NewConsumer(bus, st.service, &cfg.Signals, st.logger)
			if err != nil {
				return nil, err
			}
			return c, nil
		}, st.logger)
		tree.AddMessagingService(router)
		sink = bus
		logging.Info().Str("transport", bus.Transport()).Str("topic", bus.Topic()).Msg("Signal bus ready")
	} else {
		logging.Info().Msg("Signal bus disabled; signals are applied synchronously")
	}

	if cfg.Server.TrendingWarmInterval > 0 && st.cache != nil {
		tree.AddDataService(services.NewTrendingWarmer(st.service, services.TrendingWarmerConfig{
			Interval:    cfg.Server.TrendingWarmInterval,
			Limit:       cfg.Recommend.DefaultLimit,
			WarmOnStart: true,
		}, st.logger))
	}

	handler := api.NewHandler(st.service, sink, api.HandlerConfig{
		DefaultLimit:   cfg.Recommend.DefaultLimit,
		MaxLimit:       cfg.Recommend.MaxLimit,
		RequestTimeout: cfg.Server.Timeout,
	})
	handler.AddReadinessCheck("store", st.store.Ping)
	if router != nil {
		handler.AddReadinessCheck("signals", func(context.Context) error {
			if !router.IsRunning() {
				return errors.New("signal router is not running")
			}
			return nil
		})
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	chiMW := api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security))

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           api.NewRouter(handler, chiMW).SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", srv.Addr).Msg("HTTP server listening")

	err = tree.Serve(ctx)

	if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within the shutdown timeout")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logging.Info().Msg("Server stopped")
	return nil
}
