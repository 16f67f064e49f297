package cleanup

import (
	"context"
	"log/slog"
	"time"

	"resume-optimizer/internal/storage"
)

const (
	DefaultInterval   = 10 * time.Second
	DefaultSweepEvery = time.Hour
	DefaultOrphanTTL  = 24 * time.Hour
)

type JanitorConfig struct {
	Interval   time.Duration
	SweepEvery time.Duration
	// OrphanTTL is the age after which an exported file that was never
	// downloaded is removed. Zero disables the sweep.
	OrphanTTL time.Duration
}

// Janitor removes scheduled files from a store when they fall due.
type Janitor struct {
	store    storage.Store
	registry Registry
	cfg      JanitorConfig
	now      func() time.Time
}

func NewJanitor(store storage.Store, registry Registry, cfg JanitorConfig) *Janitor {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.SweepEvery <= 0 {
		cfg.SweepEvery = DefaultSweepEvery
	}
	return &Janitor{store: store, registry: registry, cfg: cfg, now: time.Now}
}

// Run blocks until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	slog.Info("cleanup janitor started", "interval", j.cfg.Interval, "orphanTTL", j.cfg.OrphanTTL)
	tick := time.NewTicker(j.cfg.Interval)
	defer tick.Stop()
	sweep := time.NewTicker(j.cfg.SweepEvery)
	defer sweep.Stop()

	j.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup janitor stopped")
			return
		case <-tick.C:
			j.RunOnce(ctx)
		case <-sweep.C:
			j.Sweep(ctx)
		}
	}
}

// RunOnce deletes every file that is due and returns how many were removed.
// Failed deletions stay scheduled and are retried on the next pass.
func (j *Janitor) RunOnce(ctx context.Context) int {
	due, err := j.registry.Due(ctx, j.now())
	if err != nil {
		slog.Error("cleanup: list due files", "error", err)
		return 0
	}
	removed := 0
	for _, name := range due {
		if err := j.store.Remove(ctx, name); err != nil {
			slog.Warn("cleanup: remove failed", "file", name, "error", err)
			continue
		}
		if err := j.registry.Done(ctx, name); err != nil {
			slog.Warn("cleanup: unschedule failed", "file", name, "error", err)
		}
		removed++
	}
	if removed > 0 {
		slog.Info("cleanup: removed downloaded exports", "count", removed)
	}
	return removed
}

// Sweep removes orphaned exports when the store supports it.
func (j *Janitor) Sweep(ctx context.Context) int {
	sw, ok := j.store.(storage.Sweeper)
	if !ok || j.cfg.OrphanTTL <= 0 {
		return 0
	}
	n, err := sw.Sweep(ctx, j.cfg.OrphanTTL)
	if err != nil {
		slog.Warn("cleanup: orphan sweep failed", "error", err)
	}
	if n > 0 {
		slog.Info("cleanup: removed orphaned exports", "count", n)
	}
	return n
}
