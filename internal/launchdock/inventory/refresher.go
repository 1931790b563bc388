package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bdobrica/launchdock/common/retry"
	"github.com/bdobrica/launchdock/internal/launchdock/runtime"
)

// RefresherConfig configures snapshot refreshes.
type RefresherConfig struct {
	// Interval is how often Run refreshes in the background. Defaults to 30s.
	Interval time.Duration
	// Retry controls retries of a failed listing.
	Retry retry.Config
	// Icon is the base icon name assigned to entities.
	Icon string
	// OnRefresh, when set, is called with the entity count after each
	// successful refresh.
	OnRefresh func(count int)
}

// Refresher lists containers from the runtime and replaces the Store snapshot.
type Refresher struct {
	lister runtime.Lister
	store  *Store
	cfg    RefresherConfig
}

// NewRefresher creates a new Refresher.
func NewRefresher(l runtime.Lister, s *Store, cfg RefresherConfig) *Refresher {
	if cfg.Interval == 0 {
		cfg.Interval = 30 * time.Second
	}
	return &Refresher{lister: l, store: s, cfg: cfg}
}

// Refresh runs a single list-and-replace pass. On failure the previous
// snapshot is left untouched.
func (r *Refresher) Refresh(ctx context.Context) error {
	var rows []runtime.Summary
	err := retry.Do(ctx, r.cfg.Retry, func() error {
		var err error
		rows, err = r.lister.List(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("refresh containers: %w", err)
	}

	entities := FromSummaries(rows, r.cfg.Icon)
	r.store.Replace(entities)
	if r.cfg.OnRefresh != nil {
		r.cfg.OnRefresh(len(entities))
	}
	slog.Debug("inventory: refreshed", "containers", len(entities))
	return nil
}

// Run refreshes on a ticker. Blocks until ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	slog.Info("inventory: background refresh starting", "interval", r.cfg.Interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("inventory: background refresh stopping")
			return
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil {
				slog.Warn("inventory: background refresh failed", "err", err)
			}
		}
	}
}
