package docker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdobrica/launchdock/internal/launchdock/lifecycle"
	"github.com/bdobrica/launchdock/internal/launchdock/runtime"
)

type notFoundErr struct{}

func (notFoundErr) Error() string { return "No such container" }
func (notFoundErr) NotFound()     {}

// fakeEngine records every call made by the adapter.
type fakeEngine struct {
	containers []types.Container
	calls      []string
	stopOpts   container.StopOptions
	killSignal string
	removeOpts container.RemoveOptions
	err        error
	closed     bool
}

func (f *fakeEngine) record(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeEngine) ContainerList(_ context.Context, o container.ListOptions) ([]types.Container, error) {
	if !o.All {
		return nil, errors.New("expected All=true")
	}
	return f.containers, f.record("list")
}

func (f *fakeEngine) ContainerStart(_ context.Context, _ string, _ container.StartOptions) error {
	return f.record("start")
}

func (f *fakeEngine) ContainerStop(_ context.Context, _ string, o container.StopOptions) error {
	f.stopOpts = o
	return f.record("stop")
}

func (f *fakeEngine) ContainerKill(_ context.Context, _ string, signal string) error {
	f.killSignal = signal
	return f.record("kill")
}

func (f *fakeEngine) ContainerRestart(_ context.Context, _ string, o container.StopOptions) error {
	f.stopOpts = o
	return f.record("restart")
}

func (f *fakeEngine) ContainerPause(context.Context, string) error   { return f.record("pause") }
func (f *fakeEngine) ContainerUnpause(context.Context, string) error { return f.record("unpause") }

func (f *fakeEngine) ContainerRemove(_ context.Context, _ string, o container.RemoveOptions) error {
	f.removeOpts = o
	return f.record("remove")
}

func (f *fakeEngine) ContainerInspect(_ context.Context, id string) (types.ContainerJSON, error) {
	return types.ContainerJSON{
		ContainerJSONBase: &types.ContainerJSONBase{
			ID:    id,
			Name:  "/web",
			State: &types.ContainerState{Status: "running"},
		},
		Config: &container.Config{Image: "nginx:latest"},
	}, f.record("inspect")
}

func (f *fakeEngine) Close() error {
	f.closed = true
	return nil
}

type fakeLauncher struct {
	argv []string
}

func (l *fakeLauncher) Launch(_ context.Context, argv []string) error {
	l.argv = argv
	return nil
}

const fullID = "abc123def4567890abcdef"

func TestList(t *testing.T) {
	eng := &fakeEngine{containers: []types.Container{
		{ID: fullID, Names: []string{"/web"}, Image: "nginx", State: "running"},
		{ID: "ffff", Image: "redis", State: "exited"},
	}}
	a := newAdapter(eng, Config{}, &fakeLauncher{})

	got, err := a.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, runtime.Summary{ID: fullID, Names: []string{"/web"}, Image: "nginx", State: "running"}, got[0])
	assert.Empty(t, got[1].Names)
}

func TestExecute_APIActions(t *testing.T) {
	cases := []struct {
		action lifecycle.Action
		call   string
	}{
		{lifecycle.Start, "start"},
		{lifecycle.Stop, "stop"},
		{lifecycle.Kill, "kill"},
		{lifecycle.Restart, "restart"},
		{lifecycle.Pause, "pause"},
		{lifecycle.Unpause, "unpause"},
		{lifecycle.Remove, "remove"},
		{lifecycle.Inspect, "inspect"},
	}
	for _, tc := range cases {
		t.Run(tc.action.String(), func(t *testing.T) {
			eng := &fakeEngine{}
			a := newAdapter(eng, Config{}, &fakeLauncher{})
			require.NoError(t, a.Execute(context.Background(), fullID, tc.action, nil))
			assert.Equal(t, []string{tc.call}, eng.calls)
		})
	}
}

func TestExecute_StopTimeout(t *testing.T) {
	eng := &fakeEngine{}
	a := newAdapter(eng, Config{StopTimeout: 3 * time.Second}, &fakeLauncher{})

	require.NoError(t, a.Execute(context.Background(), fullID, lifecycle.Stop, nil))
	require.NotNil(t, eng.stopOpts.Timeout)
	assert.Equal(t, 3, *eng.stopOpts.Timeout)

	require.NoError(t, a.Execute(context.Background(), fullID, lifecycle.Restart, &runtime.Options{StopTimeout: time.Minute}))
	assert.Equal(t, 60, *eng.stopOpts.Timeout)
}

func TestExecute_RemoveIsForced(t *testing.T) {
	eng := &fakeEngine{}
	a := newAdapter(eng, Config{}, &fakeLauncher{})
	require.NoError(t, a.Execute(context.Background(), fullID, lifecycle.Remove, nil))
	assert.True(t, eng.removeOpts.Force)
}

func TestExecute_KillSignal(t *testing.T) {
	eng := &fakeEngine{}
	a := newAdapter(eng, Config{}, &fakeLauncher{})
	require.NoError(t, a.Execute(context.Background(), fullID, lifecycle.Kill, &runtime.Options{Signal: "SIGTERM"}))
	assert.Equal(t, "SIGTERM", eng.killSignal)
}

func TestExecute_NotFoundMapsToErrContainerGone(t *testing.T) {
	eng := &fakeEngine{err: notFoundErr{}}
	a := newAdapter(eng, Config{}, &fakeLauncher{})
	err := a.Execute(context.Background(), fullID, lifecycle.Start, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, runtime.ErrContainerGone)
	assert.Contains(t, err.Error(), "abc123def456")
}

func TestExecute_Interactive(t *testing.T) {
	term := []string{"foot", "-e"}
	cases := []struct {
		action lifecycle.Action
		opts   *runtime.Options
		want   []string
	}{
		{lifecycle.Attach, nil, []string{"foot", "-e", "docker", "attach", fullID}},
		{lifecycle.Logs, nil, []string{"foot", "-e", "docker", "logs", "-f", fullID}},
		{lifecycle.Exec, nil, []string{"foot", "-e", "docker", "exec", "-it", fullID, "sh"}},
		{lifecycle.Exec, &runtime.Options{Command: []string{"bash", "-l"}}, []string{"foot", "-e", "docker", "exec", "-it", fullID, "bash", "-l"}},
	}
	for _, tc := range cases {
		eng := &fakeEngine{}
		l := &fakeLauncher{}
		a := newAdapter(eng, Config{Terminal: term}, l)
		require.NoError(t, a.Execute(context.Background(), fullID, tc.action, tc.opts))
		assert.Equal(t, tc.want, l.argv)
		assert.Empty(t, eng.calls, "interactive actions must not hit the engine API")
	}
}

func TestExecute_InteractiveWithoutTerminal(t *testing.T) {
	a := newAdapter(&fakeEngine{}, Config{}, &fakeLauncher{})
	err := a.Execute(context.Background(), fullID, lifecycle.Attach, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal")
}

func TestClose(t *testing.T) {
	eng := &fakeEngine{}
	a := newAdapter(eng, Config{}, &fakeLauncher{})
	require.NoError(t, a.Close())
	assert.True(t, eng.closed)
}
