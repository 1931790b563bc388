// Package app wires the launcher plugin together and serves one session.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bdobrica/launchdock/common/retry"
	"github.com/bdobrica/launchdock/internal/launchdock/audit"
	"github.com/bdobrica/launchdock/internal/launchdock/config"
	"github.com/bdobrica/launchdock/internal/launchdock/inventory"
	"github.com/bdobrica/launchdock/internal/launchdock/metrics"
	"github.com/bdobrica/launchdock/internal/launchdock/plugin"
	"github.com/bdobrica/launchdock/internal/launchdock/protocol"
	"github.com/bdobrica/launchdock/internal/launchdock/runtime"
	"github.com/bdobrica/launchdock/internal/launchdock/runtime/docker"
)

// App is one running plugin instance.
type App struct {
	cfg       *config.Config
	rt        runtime.Runtime
	closeRT   func() error
	store     *inventory.Store
	refresher *inventory.Refresher
	audit     *audit.Store
	metrics   *metrics.Metrics
	out       *protocol.Writer
	plugin    *plugin.Plugin
}

// New connects to the Docker engine and builds the plugin. Responses are
// written to out.
func New(cfg *config.Config, out io.Writer) (*App, error) {
	adapter, err := docker.New(docker.Config{
		Host:        cfg.DockerHost,
		StopTimeout: cfg.StopTimeout,
		Terminal:    cfg.Terminal,
	})
	if err != nil {
		return nil, err
	}
	a, err := newWithRuntime(cfg, adapter, out)
	if err != nil {
		adapter.Close()
		return nil, err
	}
	a.closeRT = adapter.Close
	return a, nil
}

func newWithRuntime(cfg *config.Config, rt runtime.Runtime, out io.Writer) (*App, error) {
	a := &App{
		cfg:   cfg,
		rt:    rt,
		store: inventory.NewStore(),
		out:   protocol.NewWriter(out),
	}

	if cfg.Metrics.Addr != "" {
		a.metrics = metrics.New()
	}

	a.refresher = inventory.NewRefresher(rt, a.store, inventory.RefresherConfig{
		Interval: cfg.Refresh.Interval,
		Retry: retry.Config{
			Name:         "container list",
			MaxAttempts:  cfg.Refresh.Attempts,
			InitialDelay: cfg.Refresh.InitialDelay,
			MaxDelay:     retry.DefaultConfig.MaxDelay,
		},
		Icon:      cfg.Icon,
		OnRefresh: a.metrics.SetEntities,
	})

	deps := plugin.Deps{
		Store:     a.store,
		Output:    a.out,
		Executor:  rt,
		Refresher: a.refresher,
		Metrics:   a.metrics,
	}
	if cfg.Audit.Path != "" {
		st, err := audit.New(cfg.Audit.Path)
		if err != nil {
			return nil, fmt.Errorf("open audit store: %w", err)
		}
		a.audit = st
		deps.Auditor = st
	}

	a.plugin = plugin.New(plugin.Config{
		Command:   cfg.Command,
		AllSuffix: cfg.AllSuffix,
		Icon:      cfg.Icon,
	}, deps)
	return a, nil
}

// Run serves launcher requests read from in until EOF, Exit or ctx is
// cancelled. Background refresh and the metrics listener stop with it.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.metrics != nil {
		go func() {
			if err := a.metrics.Serve(ctx, a.cfg.Metrics.Addr); err != nil {
				slog.Warn("metrics server failed; continuing without it", "err", err)
			}
		}()
	}

	if a.cfg.Refresh.Interval > 0 {
		go a.refresher.Run(ctx)
	}

	slog.Info("launchdock serving", "command", a.cfg.Command, "all", a.cfg.Command+a.cfg.AllSuffix)
	err := protocol.Serve(ctx, in, a.plugin)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Stop releases the runtime client and the audit store.
func (a *App) Stop() {
	if a.audit != nil {
		if err := a.audit.Close(); err != nil {
			slog.Warn("closing audit store", "err", err)
		}
	}
	if a.closeRT != nil {
		if err := a.closeRT(); err != nil {
			slog.Warn("closing docker client", "err", err)
		}
	}
}
