package protocol

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler logs every call; searches for "slow" block until cancelled.
type recordingHandler struct {
	mu    sync.Mutex
	calls []string
}

func (h *recordingHandler) add(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, s)
}

func (h *recordingHandler) snapshot() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.calls...)
}

func (h *recordingHandler) Search(ctx context.Context, q string) {
	if q == "slow" {
		h.add("search-started:" + q)
		<-ctx.Done()
		h.add("search-cancelled:" + q)
		return
	}
	h.add("search:" + q)
}

func (h *recordingHandler) Activate(_ context.Context, id uint32) { h.add(fmt.Sprintf("activate:%d", id)) }
func (h *recordingHandler) ActivateContext(_ context.Context, id, c uint32) {
	h.add(fmt.Sprintf("activate-context:%d:%d", id, c))
}
func (h *recordingHandler) Complete(_ context.Context, id uint32) { h.add(fmt.Sprintf("complete:%d", id)) }
func (h *recordingHandler) Context(_ context.Context, id uint32)  { h.add(fmt.Sprintf("context:%d", id)) }
func (h *recordingHandler) Interrupt()                            { h.add("interrupt") }

func TestServe_DispatchesUntilEOF(t *testing.T) {
	h := &recordingHandler{}
	in := strings.Join([]string{
		`{"Search":"dps"}`,
		`garbage`,
		`{"Context":1}`,
		`{"ActivateContext":{"id":1,"context":2}}`,
		`{"Complete":0}`,
		`{"Activate":0}`,
		`{"Quit":1}`,
	}, "\n")

	require.NoError(t, Serve(context.Background(), strings.NewReader(in), h))

	calls := h.snapshot()
	assert.Equal(t, "interrupt", calls[0])
	assert.Contains(t, calls, "search:dps")
	assert.Contains(t, calls, "context:1")
	assert.Contains(t, calls, "activate-context:1:2")
	assert.Contains(t, calls, "complete:0")
	assert.Contains(t, calls, "activate:0")
}

func TestServe_SearchIsCancelledBeforeInterrupt(t *testing.T) {
	h := &recordingHandler{}
	pr, pw := io.Pipe()
	done := make(chan error, 1)
	go func() { done <- Serve(context.Background(), pr, h) }()

	fmt.Fprintln(pw, `{"Search":"slow"}`)
	fmt.Fprintln(pw, `"Interrupt"`)
	fmt.Fprintln(pw, `{"Search":"dps"}`)
	fmt.Fprintln(pw, `"Exit"`)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not exit")
	}
	pw.Close()

	calls := h.snapshot()
	require.GreaterOrEqual(t, len(calls), 4)
	// The slow search must have joined before the interrupt that superseded it.
	cancelled := indexOf(calls, "search-cancelled:slow")
	require.NotEqual(t, -1, cancelled)
	assert.Equal(t, "interrupt", calls[cancelled+1])
	assert.Equal(t, "interrupt", calls[len(calls)-1])
}

func TestServe_ContextCancel(t *testing.T) {
	h := &recordingHandler{}
	pr, pw := io.Pipe()
	defer pw.Close()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, pr, h) }()

	fmt.Fprintln(pw, `{"Search":"slow"}`)
	require.Eventually(t, func() bool {
		return indexOf(h.snapshot(), "search-started:slow") >= 0
	}, 2*time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return on cancel")
	}
	assert.Contains(t, h.snapshot(), "search-cancelled:slow")
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
