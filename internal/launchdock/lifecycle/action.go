package lifecycle

import "strings"

// Action is one operation a container can be asked to perform.
type Action int

const (
	Attach Action = iota
	Start
	Stop
	Kill
	Restart
	Pause
	Unpause
	Remove
	Inspect
	Exec
	Logs
)

var actionNames = [...]string{
	Attach:  "Attach",
	Start:   "Start",
	Stop:    "Stop",
	Kill:    "Kill",
	Restart: "Restart",
	Pause:   "Pause",
	Unpause: "Unpause",
	Remove:  "Remove",
	Inspect: "Inspect",
	Exec:    "Exec",
	Logs:    "Logs",
}

// String returns the label shown in a context menu.
func (a Action) String() string {
	if a < Attach || a > Logs {
		return "Unknown"
	}
	return actionNames[a]
}

// Interactive reports whether the action needs a terminal rather than a
// single engine API call.
func (a Action) Interactive() bool {
	switch a {
	case Attach, Exec, Logs:
		return true
	}
	return false
}

// ParseAction matches s case-insensitively against the action names.
func ParseAction(s string) (Action, bool) {
	for a := Attach; a <= Logs; a++ {
		if strings.EqualFold(s, actionNames[a]) {
			return a, true
		}
	}
	return 0, false
}
