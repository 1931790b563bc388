// Package docker provides a Docker Engine runtime adapter for listing
// containers and running launcher actions against them.
package docker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	dockerclient "github.com/docker/docker/client"

	"github.com/bdobrica/launchdock/internal/launchdock/lifecycle"
	"github.com/bdobrica/launchdock/internal/launchdock/runtime"
)

// engineAPI is the part of the Docker client the adapter uses.
type engineAPI interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error
	ContainerKill(ctx context.Context, containerID, signal string) error
	ContainerRestart(ctx context.Context, containerID string, options container.StopOptions) error
	ContainerPause(ctx context.Context, containerID string) error
	ContainerUnpause(ctx context.Context, containerID string) error
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
	ContainerInspect(ctx context.Context, containerID string) (types.ContainerJSON, error)
	Close() error
}

// Config configures the adapter.
type Config struct {
	// Host overrides DOCKER_HOST when non-empty (e.g. "unix:///var/run/docker.sock").
	Host string
	// StopTimeout is the graceful stop window for Stop and Restart.
	StopTimeout time.Duration
	// CLI is the docker CLI binary used for interactive actions. Defaults to "docker".
	CLI string
	// Terminal is the argv prefix that opens a terminal running a command,
	// e.g. ["x-terminal-emulator", "-e"].
	Terminal []string
}

// Adapter implements runtime.Runtime using the Docker Engine API.
type Adapter struct {
	client   engineAPI
	cfg      Config
	launcher Launcher
}

// New creates a new Docker runtime adapter.
// Uses the DOCKER_HOST env var or the default socket path unless cfg.Host is set.
func New(cfg Config) (*Adapter, error) {
	opts := []dockerclient.Opt{
		dockerclient.FromEnv,
		dockerclient.WithAPIVersionNegotiation(),
	}
	if cfg.Host != "" {
		opts = append(opts, dockerclient.WithHost(cfg.Host))
	}
	cli, err := dockerclient.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("docker client: %w", err)
	}
	return newAdapter(cli, cfg, ExecLauncher{}), nil
}

func newAdapter(api engineAPI, cfg Config, l Launcher) *Adapter {
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = runtime.DefaultStopTimeout
	}
	if cfg.CLI == "" {
		cfg.CLI = "docker"
	}
	return &Adapter{client: api, cfg: cfg, launcher: l}
}

// Close releases the underlying client connection.
func (a *Adapter) Close() error {
	return a.client.Close()
}

// List returns every container, stopped ones included.
func (a *Adapter) List(ctx context.Context) ([]runtime.Summary, error) {
	containers, err := a.client.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}

	out := make([]runtime.Summary, 0, len(containers))
	for _, c := range containers {
		out = append(out, runtime.Summary{
			ID:    c.ID,
			Names: c.Names,
			Image: c.Image,
			State: c.State,
		})
	}
	return out, nil
}

// Execute runs action against the container id.
func (a *Adapter) Execute(ctx context.Context, id string, action lifecycle.Action, opts *runtime.Options) error {
	if opts == nil {
		opts = &runtime.Options{}
	}
	if action.Interactive() {
		argv, err := a.terminalCommand(id, action, opts)
		if err != nil {
			return err
		}
		if err := a.launcher.Launch(ctx, argv); err != nil {
			return fmt.Errorf("%s container %s: %w", action, runtime.ShortID(id), err)
		}
		return nil
	}

	var err error
	switch action {
	case lifecycle.Start:
		err = a.client.ContainerStart(ctx, id, container.StartOptions{})
	case lifecycle.Stop:
		err = a.client.ContainerStop(ctx, id, a.stopOptions(opts))
	case lifecycle.Kill:
		err = a.client.ContainerKill(ctx, id, opts.Signal)
	case lifecycle.Restart:
		err = a.client.ContainerRestart(ctx, id, a.stopOptions(opts))
	case lifecycle.Pause:
		err = a.client.ContainerPause(ctx, id)
	case lifecycle.Unpause:
		err = a.client.ContainerUnpause(ctx, id)
	case lifecycle.Remove:
		err = a.client.ContainerRemove(ctx, id, container.RemoveOptions{Force: true})
	case lifecycle.Inspect:
		err = a.inspect(ctx, id)
	default:
		return fmt.Errorf("unsupported action %s", action)
	}
	if err != nil {
		if dockerclient.IsErrNotFound(err) {
			return fmt.Errorf("%s container %s: %w", action, runtime.ShortID(id), runtime.ErrContainerGone)
		}
		return fmt.Errorf("%s container %s: %w", action, runtime.ShortID(id), err)
	}
	return nil
}

func (a *Adapter) stopOptions(opts *runtime.Options) container.StopOptions {
	d := a.cfg.StopTimeout
	if opts.StopTimeout > 0 {
		d = opts.StopTimeout
	}
	timeout := int(d.Seconds())
	return container.StopOptions{Timeout: &timeout}
}

func (a *Adapter) inspect(ctx context.Context, id string) error {
	inspect, err := a.client.ContainerInspect(ctx, id)
	if err != nil {
		return err
	}
	if inspect.ContainerJSONBase == nil {
		return fmt.Errorf("inspect returned no container data")
	}
	attrs := []any{"id", runtime.ShortID(inspect.ID), "name", inspect.Name}
	if inspect.State != nil {
		attrs = append(attrs,
			"status", inspect.State.Status,
			"started_at", inspect.State.StartedAt,
			"exit_code", inspect.State.ExitCode)
	}
	if inspect.Config != nil {
		attrs = append(attrs, "image", inspect.Config.Image)
	}
	slog.Info("docker: inspect", attrs...)
	return nil
}

// --- helpers ---

func (a *Adapter) terminalCommand(id string, action lifecycle.Action, opts *runtime.Options) ([]string, error) {
	if len(a.cfg.Terminal) == 0 {
		return nil, fmt.Errorf("%s needs a terminal but none is configured", action)
	}
	argv := append([]string{}, a.cfg.Terminal...)
	argv = append(argv, a.cfg.CLI)

	switch action {
	case lifecycle.Attach:
		argv = append(argv, "attach", id)
	case lifecycle.Exec:
		cmd := opts.Command
		if len(cmd) == 0 {
			cmd = []string{"sh"}
		}
		argv = append(argv, "exec", "-it", id)
		argv = append(argv, cmd...)
	case lifecycle.Logs:
		argv = append(argv, "logs", "-f", id)
	default:
		return nil, fmt.Errorf("%s is not an interactive action", action)
	}
	return argv, nil
}
