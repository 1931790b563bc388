// Package index maintains the per-query result index: the mapping from the
// numeric IDs shown to the launcher to the container each row refers to and
// the context menu of actions legal for it.
package index

import (
	"github.com/bdobrica/launchdock/internal/launchdock/lifecycle"
)

// NoticeID is reserved for system notices and never assigned to a container.
const NoticeID uint32 = 0

// Primary is what activating a result does.
type Primary int

const (
	// PrimaryNone means activation has nothing to do.
	PrimaryNone Primary = iota
	// PrimaryComplete replaces the query with the result's completion text.
	PrimaryComplete
	// PrimaryShowContext opens the result's context menu.
	PrimaryShowContext
)

func (p Primary) String() string {
	switch p {
	case PrimaryComplete:
		return "complete"
	case PrimaryShowContext:
		return "context"
	default:
		return "none"
	}
}

// Payload is the row sent to the launcher.
type Payload struct {
	ID          uint32
	Name        string
	Description string
	Icon        string
}

// ActionRef names an action bound to a container. It holds identifiers only,
// never live state, and is resolved against an executor at activation time.
type ActionRef struct {
	EntityID string
	Action   lifecycle.Action
}

// Result is one wrapped row of the result index.
type Result struct {
	Payload Payload
	Primary Primary
	// Completion is the fill text for PrimaryComplete; empty means none.
	Completion string
	// EntityID is the full container ID; empty for notices.
	EntityID string
	// Context is the row's action menu; nil when no action is legal.
	Context *ContextIndex
}

// HasCompletion reports whether the result carries fill text.
func (r Result) HasCompletion() bool {
	return r.Completion != ""
}
