// Package gate blocks process startup until backing services accept
// connections. Containerized deployments start the application alongside its
// database; the gate is the synchronization point that keeps migrations and
// the server from racing the database's own startup.
package gate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/recipebox/dbgate/internal/observability"
	"github.com/recipebox/dbgate/internal/probe"
)

// DefaultInterval is the fixed delay between failed probe attempts.
const DefaultInterval = time.Second

// Gate polls a readiness probe until it succeeds. Retries are unbounded with
// a fixed interval and no backoff: the expected wait is seconds, and anything
// longer is for the orchestrator to kill.
type Gate struct {
	interval time.Duration
	out      io.Writer
	logger   *slog.Logger
	metrics  *observability.Metrics

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

// New returns a gate that writes one progress line per failed attempt to out.
func New(interval time.Duration, out io.Writer, logger *slog.Logger, metrics *observability.Metrics) *Gate {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Gate{
		interval: interval,
		out:      out,
		logger:   logger,
		metrics:  metrics,
		sleep:    time.Sleep,
	}
}

// Wait blocks until p reports ready. Transient failures (probe.ErrUnavailable)
// are retried indefinitely after the fixed interval; any other error aborts
// immediately and is returned to the caller. On success it returns without
// probing again.
func (g *Gate) Wait(ctx context.Context, p probe.Prober) error {
	start := time.Now()
	attempts := 0

	for {
		err := p.Check(ctx)
		if err == nil {
			g.metrics.GateReady.WithLabelValues(p.Name()).Set(1)
			g.metrics.GateWaitDuration.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())
			g.logger.Info("backend ready", "target", p.Name(), "failed_attempts", attempts)
			return nil
		}
		if !probe.IsTransient(err) {
			return fmt.Errorf("check %s: %w", p.Name(), err)
		}

		attempts++
		g.metrics.GateAttemptsTotal.WithLabelValues(p.Name()).Inc()
		fmt.Fprintf(g.out, "Database unavailable, waiting %s...\n", formatInterval(g.interval))
		g.logger.Debug("backend unavailable", "target", p.Name(), "attempt", attempts, "error", err)
		g.sleep(g.interval)
	}
}

// WaitAll waits for every probe in order. Targets are checked sequentially;
// the gate assumes it is the only caller during process startup.
func (g *Gate) WaitAll(ctx context.Context, probes []probe.Prober) error {
	for _, p := range probes {
		if err := g.Wait(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func formatInterval(d time.Duration) string {
	if d == time.Second {
		return "1 second"
	}
	if d%time.Second == 0 {
		return fmt.Sprintf("%d seconds", d/time.Second)
	}
	return d.String()
}
