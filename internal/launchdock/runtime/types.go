package runtime

import "time"

// Summary is the subset of a container listing the launcher consumes.
type Summary struct {
	// ID is the full runtime-assigned container ID.
	ID string
	// Names as reported by the engine, usually with a leading "/".
	Names []string
	// Image reference the container was created from.
	Image string
	// State is the raw state string ("running", "exited", ...).
	State string
}

// Options tweak how an action is executed.
type Options struct {
	// StopTimeout overrides the graceful stop window for Stop and Restart.
	StopTimeout time.Duration
	// Signal overrides the signal sent by Kill.
	Signal string
	// Command overrides the shell started by Exec.
	Command []string
}

// DefaultStopTimeout is how long Stop waits before the engine sends SIGKILL.
const DefaultStopTimeout = 10 * time.Second

// ShortID returns the first 12 characters of a container ID, the form the
// docker CLI prints.
func ShortID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:12]
}
