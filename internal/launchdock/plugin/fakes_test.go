package plugin

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/bdobrica/launchdock/internal/launchdock/audit"
	"github.com/bdobrica/launchdock/internal/launchdock/index"
	"github.com/bdobrica/launchdock/internal/launchdock/inventory"
	"github.com/bdobrica/launchdock/internal/launchdock/lifecycle"
	"github.com/bdobrica/launchdock/internal/launchdock/metrics"
	"github.com/bdobrica/launchdock/internal/launchdock/runtime"
)

type menu struct {
	id   uint32
	opts []index.ContextOption
}

// fakeOutput records every response in arrival order.
type fakeOutput struct {
	mu       sync.Mutex
	appends  []index.Payload
	fills    []string
	menus    []menu
	finished int
	order    []string
	block    chan struct{}
}

func (o *fakeOutput) Append(ctx context.Context, p index.Payload) error {
	if o.block != nil {
		select {
		case <-o.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.appends = append(o.appends, p)
	o.order = append(o.order, "append")
	return nil
}

func (o *fakeOutput) Fill(text string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fills = append(o.fills, text)
	o.order = append(o.order, "fill")
	return nil
}

func (o *fakeOutput) Context(id uint32, opts []index.ContextOption) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.menus = append(o.menus, menu{id: id, opts: opts})
	o.order = append(o.order, "context")
	return nil
}

func (o *fakeOutput) Finished() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished++
	o.order = append(o.order, "finished")
	return nil
}

func (o *fakeOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.order = append(o.order, "close")
	return nil
}

// rows returns the appended payloads sorted by id.
func (o *fakeOutput) rows() []index.Payload {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := append([]index.Payload(nil), o.appends...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (o *fakeOutput) reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.appends, o.fills, o.menus, o.order, o.finished = nil, nil, nil, nil, 0
}

type execCall struct {
	id     string
	action lifecycle.Action
}

type fakeExecutor struct {
	mu    sync.Mutex
	calls []execCall
	err   error
}

func (e *fakeExecutor) Execute(_ context.Context, id string, a lifecycle.Action, _ *runtime.Options) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, execCall{id: id, action: a})
	return e.err
}

type fakeAuditor struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (a *fakeAuditor) Record(_ context.Context, e audit.Entry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
	return nil
}

type failingRefresher struct{ calls int }

func (r *failingRefresher) Refresh(context.Context) error {
	r.calls++
	return errors.New("cannot connect to the docker daemon")
}

type fixture struct {
	plugin  *Plugin
	store   *inventory.Store
	out     *fakeOutput
	exec    *fakeExecutor
	auditor *fakeAuditor
	metrics *metrics.Metrics
}

func newFixture(summaries ...runtime.Summary) *fixture {
	f := &fixture{
		store:   inventory.NewStore(),
		out:     &fakeOutput{},
		exec:    &fakeExecutor{},
		auditor: &fakeAuditor{},
		metrics: metrics.New(),
	}
	f.store.Replace(inventory.FromSummaries(summaries, "docker"))
	f.plugin = New(Config{Command: "dps", Icon: "docker"}, Deps{
		Store:    f.store,
		Output:   f.out,
		Executor: f.exec,
		Auditor:  f.auditor,
		Metrics:  f.metrics,
	})
	return f
}

func container(id, name, state string) runtime.Summary {
	return runtime.Summary{ID: id, Names: []string{"/" + name}, Image: name + ":latest", State: state}
}
