package lifecycle

import "strings"

// Filter is a set of states a search is restricted to.
type Filter map[State]struct{}

// NewFilter builds a Filter from the given states.
func NewFilter(states ...State) Filter {
	f := make(Filter, len(states))
	for _, s := range states {
		f[s] = struct{}{}
	}
	return f
}

// Contains reports whether s passes the filter.
func (f Filter) Contains(s State) bool {
	_, ok := f[s]
	return ok
}

// String renders the filter in state order, e.g. "Created,Running".
func (f Filter) String() string {
	names := make([]string, 0, len(f))
	for _, s := range States {
		if f.Contains(s) {
			names = append(names, s.String())
		}
	}
	return strings.Join(names, ",")
}

// FilterAll passes every state.
func FilterAll() Filter {
	return NewFilter(States...)
}

// FilterDefault passes the states a bare listing shows: everything except
// Paused, Exited and Dead.
func FilterDefault() Filter {
	return NewFilter(Created, Restarting, Running, Removing)
}

// FilterNonDefault passes only Paused, Exited and Dead.
func FilterNonDefault() Filter {
	return NewFilter(Paused, Exited, Dead)
}
