package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StatusSweeper periodically re-derives the status of every open document of
// every active tenant, so overdue flags land even when nobody reads them.
type StatusSweeper struct {
	tenants  TenantService
	docs     DocumentService
	interval time.Duration
	log      *zap.Logger
}

// NewStatusSweeper creates a new StatusSweeper.
func NewStatusSweeper(tenants TenantService, docs DocumentService, interval time.Duration, log *zap.Logger) *StatusSweeper {
	return &StatusSweeper{tenants: tenants, docs: docs, interval: interval, log: log}
}

// Start sweeps once immediately and then on every tick until ctx is
// canceled.
func (w *StatusSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("status sweeper started", zap.Duration("interval", w.interval))
	w.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			w.log.Info("status sweeper stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs one pass and returns the number of statuses changed.
func (w *StatusSweeper) Sweep(ctx context.Context) int {
	tenants, err := w.tenants.ListActive(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error("status sweep: listing tenants failed", zap.Error(err))
		}
		return 0
	}

	total := 0
	for _, t := range tenants {
		if ctx.Err() != nil {
			break
		}
		n, err := w.docs.RefreshStatuses(ctx, t.ID)
		if err != nil {
			w.log.Warn("status sweep failed", zap.String("tenant_id", t.ID.String()), zap.Error(err))
			continue
		}
		total += n
	}
	if total > 0 {
		w.log.Info("status sweep finished", zap.Int("tenants", len(tenants)), zap.Int("changed", total))
	}
	return total
}
