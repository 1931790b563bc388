// Package lifecycle holds the fixed table that maps a container lifecycle
// state to the actions that are legal in it, plus the glyph and icon shown
// next to a container in that state.
package lifecycle

import "strings"

// State mirrors the docker container states.
type State int

const (
	Created State = iota
	Restarting
	Running
	Removing
	Paused
	Exited
	Dead
)

// States lists every state in declaration order.
var States = []State{Created, Restarting, Running, Removing, Paused, Exited, Dead}

var stateNames = [...]string{
	Created:    "Created",
	Restarting: "Restarting",
	Running:    "Running",
	Removing:   "Removing",
	Paused:     "Paused",
	Exited:     "Exited",
	Dead:       "Dead",
}

// String returns the display name of the state ("Running").
func (s State) String() string {
	if s < Created || s > Dead {
		return "Unknown"
	}
	return stateNames[s]
}

// ParseState matches s case-insensitively against the state names.
// The second return value is false when nothing matched.
func ParseState(s string) (State, bool) {
	s = strings.TrimSpace(s)
	for _, st := range States {
		if strings.EqualFold(s, stateNames[st]) {
			return st, true
		}
	}
	return Dead, false
}

// ParseStateOrDead parses s and falls back to Dead for anything unknown.
func ParseStateOrDead(s string) State {
	st, _ := ParseState(s)
	return st
}

// Actions returns the ordered list of actions that are legal in state s.
// A nil slice means no interactive action is legal right now; this is the
// case for the transitional states Restarting and Removing.
//
// The returned slice is a fresh copy and may be modified by the caller.
func (s State) Actions() []Action {
	var table []Action
	switch s {
	case Created:
		table = []Action{Attach, Start, Remove}
	case Running:
		table = []Action{Attach, Stop, Kill, Restart, Pause, Unpause, Remove, Inspect, Exec, Logs}
	case Paused:
		table = []Action{Unpause, Remove}
	case Exited, Dead:
		table = []Action{Start, Remove}
	default:
		return nil
	}
	return table
}

// Glyph is the unicode symbol prefixed to a container name in results.
func (s State) Glyph() string {
	switch s {
	case Created:
		return "✔"
	case Restarting:
		return "⌛"
	case Running:
		return "\U0001F197"
	case Removing:
		return "♻"
	case Paused:
		return "⏸"
	case Exited:
		return "\U0001F5D1"
	default:
		return "☠"
	}
}

// DefaultIcon is the icon name used when no per-state icon is configured.
const DefaultIcon = "docker"

// Icon returns the icon name for the state. Every state currently shares
// base; the hook exists so themes can split them later.
func (s State) Icon(base string) string {
	if base == "" {
		return DefaultIcon
	}
	return base
}
