// Package inventory holds the latest snapshot of containers known to the
// runtime. The snapshot is replaced wholesale on every refresh.
package inventory

import (
	"log/slog"
	"strings"

	"github.com/bdobrica/launchdock/internal/launchdock/lifecycle"
	"github.com/bdobrica/launchdock/internal/launchdock/runtime"
)

// PlaceholderName is used for containers the runtime reports without a name.
const PlaceholderName = "Error"

// Entity is one observed container.
type Entity struct {
	// ID is the full runtime-assigned ID.
	ID string
	// Name is the display name without the leading "/".
	Name string
	// Image is the image reference.
	Image string
	// State is the parsed lifecycle state.
	State lifecycle.State
	// Icon is the icon name hint for the result row.
	Icon string
}

// ShortID returns the 12 character form of the ID.
func (e Entity) ShortID() string {
	return runtime.ShortID(e.ID)
}

// FromSummary converts a runtime listing row into an Entity. Missing names
// and unknown states are defaulted so one bad row never blocks the rest.
func FromSummary(s runtime.Summary, icon string) Entity {
	name := PlaceholderName
	if len(s.Names) > 0 && strings.TrimPrefix(s.Names[0], "/") != "" {
		name = strings.TrimPrefix(s.Names[0], "/")
	} else {
		slog.Warn("inventory: container has no name", "id", runtime.ShortID(s.ID))
	}

	state, ok := lifecycle.ParseState(s.State)
	if !ok {
		slog.Warn("inventory: unknown container state, assuming dead",
			"id", runtime.ShortID(s.ID), "state", s.State)
	}

	return Entity{
		ID:    s.ID,
		Name:  name,
		Image: s.Image,
		State: state,
		Icon:  state.Icon(icon),
	}
}

// FromSummaries converts a full listing. Rows without an ID are dropped.
func FromSummaries(rows []runtime.Summary, icon string) []Entity {
	out := make([]Entity, 0, len(rows))
	for _, r := range rows {
		if r.ID == "" {
			slog.Warn("inventory: skipping container without id", "names", r.Names)
			continue
		}
		out = append(out, FromSummary(r, icon))
	}
	return out
}
