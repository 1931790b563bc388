// Package runtime defines the container runtime collaborators the launcher
// talks to: something that lists containers and something that runs
// actions against them.
package runtime

import (
	"context"

	"github.com/bdobrica/launchdock/internal/launchdock/lifecycle"
)

// Lister returns a point-in-time listing of every container the runtime
// knows about, stopped ones included.
type Lister interface {
	List(ctx context.Context) ([]Summary, error)
}

// Executor performs one action against one container.
type Executor interface {
	// Execute runs action against the container with the given full ID.
	// opts carries optional action arguments; nil means defaults.
	Execute(ctx context.Context, containerID string, action lifecycle.Action, opts *Options) error
}

// Runtime is the combined backend used by the plugin binary.
type Runtime interface {
	Lister
	Executor
}
