// Package plugin answers launcher queries with the container inventory and
// resolves activations of the resulting rows into container actions.
package plugin

import (
	"context"
	"errors"
	"strings"

	"github.com/bdobrica/launchdock/internal/launchdock/audit"
	"github.com/bdobrica/launchdock/internal/launchdock/index"
	"github.com/bdobrica/launchdock/internal/launchdock/inventory"
	"github.com/bdobrica/launchdock/internal/launchdock/lifecycle"
	"github.com/bdobrica/launchdock/internal/launchdock/metrics"
	"github.com/bdobrica/launchdock/internal/launchdock/runtime"
)

var (
	// ErrResultNotFound means the result id is not in the current index,
	// typically because a newer query replaced it.
	ErrResultNotFound = errors.New("could not find result")
	// ErrContextNotFound means the result has no context menu, or the
	// menu has no entry with the requested id.
	ErrContextNotFound = errors.New("could not find context entry")
	// ErrNoEntity means a result with actions is not bound to a container.
	// This is a bug in index construction, never a user error.
	ErrNoEntity = errors.New("result is not bound to a container")
)

// Output is the response channel to the launcher.
type Output interface {
	index.Emitter
	Fill(text string) error
	Context(id uint32, opts []index.ContextOption) error
	Finished() error
	// Close asks the launcher to hide its window.
	Close() error
}

// Refresher reloads the inventory snapshot.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Auditor records dispatched actions.
type Auditor interface {
	Record(ctx context.Context, e audit.Entry) error
}

// Config holds the plugin's behaviour settings.
type Config struct {
	// Command is the bare listing command, e.g. "dps".
	Command string
	// AllSuffix turns Command into the list-everything command. Defaults to "-all".
	AllSuffix string
	// Icon is shown on notice rows.
	Icon string
}

// AllCommand returns the list-everything command ("dps-all").
func (c Config) AllCommand() string {
	return c.Command + c.AllSuffix
}

// Deps are the plugin's collaborators. Store, Output and Executor are
// required; the rest may be nil.
type Deps struct {
	Store     *inventory.Store
	Output    Output
	Executor  runtime.Executor
	Refresher Refresher
	Auditor   Auditor
	Metrics   *metrics.Metrics
}

// Plugin serves one launcher session.
type Plugin struct {
	cfg     Config
	store   *inventory.Store
	results *index.Results
	builder *index.Builder
	out     Output
	exec    runtime.Executor
	refresh Refresher
	audit   Auditor
	metrics *metrics.Metrics
}

// New creates a Plugin with an empty result index.
func New(cfg Config, deps Deps) *Plugin {
	if cfg.Command == "" {
		cfg.Command = "dps"
	}
	if cfg.AllSuffix == "" {
		cfg.AllSuffix = "-all"
	}
	results := index.NewResults()
	return &Plugin{
		cfg:     cfg,
		store:   deps.Store,
		results: results,
		builder: index.NewBuilder(deps.Store, results, deps.Output),
		out:     deps.Output,
		exec:    deps.Executor,
		refresh: deps.Refresher,
		audit:   deps.Auditor,
		metrics: deps.Metrics,
	}
}

// Results exposes the result index, mainly for tests.
func (p *Plugin) Results() *index.Results {
	return p.results
}

// selectFilter maps a query to the state filter it lists and a label for logs.
//
//	"dps"         default filter
//	"dps-all"     every state
//	"dps <more>"  Paused, Exited and Dead only
func (p *Plugin) selectFilter(query string) (lifecycle.Filter, string) {
	fields := strings.Fields(query)
	switch {
	case len(fields) > 1:
		return lifecycle.FilterNonDefault(), "non-default"
	case len(fields) == 1 && fields[0] == p.cfg.AllCommand():
		return lifecycle.FilterAll(), "all"
	default:
		return lifecycle.FilterDefault(), "default"
	}
}
