package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionsTable(t *testing.T) {
	cases := []struct {
		state State
		want  []Action
	}{
		{Created, []Action{Attach, Start, Remove}},
		{Restarting, nil},
		{Running, []Action{Attach, Stop, Kill, Restart, Pause, Unpause, Remove, Inspect, Exec, Logs}},
		{Removing, nil},
		{Paused, []Action{Unpause, Remove}},
		{Exited, []Action{Start, Remove}},
		{Dead, []Action{Start, Remove}},
	}
	require.Len(t, cases, len(States))

	for _, tc := range cases {
		t.Run(tc.state.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.state.Actions())
		})
	}
}

func TestActionsReturnsCopy(t *testing.T) {
	a := Running.Actions()
	a[0] = Kill
	assert.Equal(t, Attach, Running.Actions()[0])
}

func TestParseState(t *testing.T) {
	cases := []struct {
		input string
		want  State
		ok    bool
	}{
		{"running", Running, true},
		{"RUNNING", Running, true},
		{"Paused", Paused, true},
		{" exited ", Exited, true},
		{"created", Created, true},
		{"restarting", Restarting, true},
		{"removing", Removing, true},
		{"dead", Dead, true},
		{"", Dead, false},
		{"stopped", Dead, false},
	}
	for _, tc := range cases {
		got, ok := ParseState(tc.input)
		assert.Equal(t, tc.want, got, "ParseState(%q)", tc.input)
		assert.Equal(t, tc.ok, ok, "ParseState(%q) ok", tc.input)
	}
	assert.Equal(t, Dead, ParseStateOrDead("garbage"))
}

func TestFilters(t *testing.T) {
	def := FilterDefault()
	for _, s := range []State{Paused, Exited, Dead} {
		assert.False(t, def.Contains(s), "default filter must exclude %s", s)
		assert.True(t, FilterNonDefault().Contains(s))
	}
	for _, s := range []State{Created, Restarting, Running, Removing} {
		assert.True(t, def.Contains(s))
		assert.False(t, FilterNonDefault().Contains(s))
	}
	assert.Len(t, FilterAll(), len(States))
	assert.Equal(t, "Paused,Exited,Dead", FilterNonDefault().String())
}

func TestGlyphsDistinct(t *testing.T) {
	seen := map[string]State{}
	for _, s := range States {
		g := s.Glyph()
		require.NotEmpty(t, g)
		if prev, dup := seen[g]; dup {
			t.Fatalf("glyph %q shared by %s and %s", g, prev, s)
		}
		seen[g] = s
	}
}

func TestParseAction(t *testing.T) {
	a, ok := ParseAction("unpause")
	require.True(t, ok)
	assert.Equal(t, Unpause, a)
	_, ok = ParseAction("explode")
	assert.False(t, ok)
	assert.True(t, Exec.Interactive())
	assert.False(t, Stop.Interactive())
}
