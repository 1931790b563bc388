package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdobrica/launchdock/internal/launchdock/lifecycle"
)

func TestResults_InsertAndReset(t *testing.T) {
	r := NewResults()
	gen := r.Reset()
	require.True(t, r.Insert(gen, 1, Result{EntityID: "a"}))

	res, ok := r.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a", res.EntityID)

	next := r.Reset()
	assert.Equal(t, gen+1, next)
	_, ok = r.Get(1)
	assert.False(t, ok)
	assert.False(t, r.Insert(gen, 1, Result{}), "insert for old generation accepted")
	assert.Equal(t, next, r.Generation())
}

func TestResults_DuplicateInsertPanics(t *testing.T) {
	r := NewResults()
	gen := r.Reset()
	r.Insert(gen, 3, Result{})
	assert.Panics(t, func() { r.Insert(gen, 3, Result{}) })
}

func TestResults_PutNotice(t *testing.T) {
	r := NewResults()
	gen := r.Reset()
	require.True(t, r.PutNotice(gen, Result{Payload: Payload{ID: 99, Name: "first"}, Primary: PrimaryComplete, Completion: "dps-all"}))
	require.True(t, r.PutNotice(gen, Result{Payload: Payload{Name: "second"}, Primary: PrimaryComplete, Completion: "dps-all"}))
	assert.False(t, r.PutNotice(gen-1, Result{Payload: Payload{Name: "stale"}}))

	res, ok := r.Get(NoticeID)
	require.True(t, ok)
	assert.Equal(t, NoticeID, res.Payload.ID)
	assert.Equal(t, "second", res.Payload.Name)
	assert.True(t, res.HasCompletion())
	assert.Equal(t, 1, r.Len())
}

func TestContextIndex(t *testing.T) {
	assert.Nil(t, NewContextIndex("x", nil))
	assert.Nil(t, NewContextIndex("x", lifecycle.Restarting.Actions()))

	var nilIdx *ContextIndex
	_, ok := nilIdx.Get(0)
	assert.False(t, ok)
	assert.Zero(t, nilIdx.Len())
	assert.Nil(t, nilIdx.Options())

	c := NewContextIndex("id", lifecycle.Exited.Actions())
	assert.Equal(t, []ContextOption{{0, "Start"}, {1, "Remove"}}, c.Options())
}

func TestPrimaryString(t *testing.T) {
	assert.Equal(t, "context", PrimaryShowContext.String())
	assert.Equal(t, "complete", PrimaryComplete.String())
	assert.Equal(t, "none", PrimaryNone.String())
}
