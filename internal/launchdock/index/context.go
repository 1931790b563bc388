package index

import (
	"sync"

	"github.com/bdobrica/launchdock/internal/launchdock/lifecycle"
)

// ContextEntry is one line of a context menu.
type ContextEntry struct {
	Label string
	// Action is nil for informational entries.
	Action *ActionRef
}

// ContextOption is the (id, label) pair sent to the launcher.
type ContextOption struct {
	ID    uint32
	Label string
}

// ContextIndex maps dense 0-based context IDs to entries.
type ContextIndex struct {
	mu      sync.Mutex
	entries []ContextEntry
}

// NewContextIndex builds the menu for a container in the order given by
// actions, which is the lifecycle table order. It returns nil for an empty
// action list so a result never carries an empty menu.
func NewContextIndex(entityID string, actions []lifecycle.Action) *ContextIndex {
	if len(actions) == 0 {
		return nil
	}
	c := &ContextIndex{entries: make([]ContextEntry, 0, len(actions))}
	for _, a := range actions {
		c.entries = append(c.entries, ContextEntry{
			Label:  a.String(),
			Action: &ActionRef{EntityID: entityID, Action: a},
		})
	}
	return c
}

// Get returns the entry with the given context ID.
func (c *ContextIndex) Get(id uint32) (ContextEntry, bool) {
	if c == nil {
		return ContextEntry{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if int(id) >= len(c.entries) {
		return ContextEntry{}, false
	}
	return c.entries[id], true
}

// Options lists the menu as (id, label) pairs in ID order.
func (c *ContextIndex) Options() []ContextOption {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ContextOption, len(c.entries))
	for i, e := range c.entries {
		out[i] = ContextOption{ID: uint32(i), Label: e.Label}
	}
	return out
}

// Len returns the number of entries.
func (c *ContextIndex) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
