package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/recipebox/dbgate/internal/config"
	"github.com/recipebox/dbgate/internal/database"
	"github.com/recipebox/dbgate/internal/gate"
	"github.com/recipebox/dbgate/internal/observability"
	"github.com/recipebox/dbgate/internal/probe"
	"golang.org/x/sync/errgroup"
)

// buildProbes assembles the named probe set from config. The database is
// always probed under the name "default"; kafka joins the set only when
// brokers are configured.
func buildProbes(cfg *config.Config) []probe.Prober {
	probes := []probe.Prober{probe.NewPostgres("default", cfg.DatabaseURL)}
	if len(cfg.KafkaBrokers) > 0 {
		probes = append(probes, probe.NewKafka("kafka", cfg.KafkaBrokers))
	}
	return probes
}

// runGate waits for every configured backend, optionally applying migrations
// afterwards. When a status address is configured, the operational endpoints
// are served for the duration of the wait.
func runGate(ctx context.Context, cfg *config.Config, out io.Writer, migrateAfter bool) error {
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	status := gate.NewStatus()
	g := gate.New(cfg.WaitInterval, out, logger, metrics)
	probes := buildProbes(cfg)

	var srv *http.Server
	var eg errgroup.Group
	if cfg.StatusAddr != "" {
		srv = &http.Server{
			Addr:              cfg.StatusAddr,
			Handler:           observability.NewStatusRouter(metrics, status),
			ReadHeaderTimeout: 5 * time.Second,
		}
		eg.Go(func() error {
			logger.Info("status server started", "addr", cfg.StatusAddr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	gateErr := g.WaitAll(ctx, probes)
	if gateErr == nil && migrateAfter {
		start := time.Now()
		gateErr = database.RunMigrations(cfg.DatabaseURL, logger)
		metrics.MigrationsDuration.Observe(time.Since(start).Seconds())
	}
	if gateErr == nil {
		status.MarkReady()
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("status server shutdown", "error", err)
		}
		if err := eg.Wait(); err != nil {
			logger.Error("status server", "error", err)
			if gateErr == nil {
				gateErr = err
			}
		}
	}

	return gateErr
}
