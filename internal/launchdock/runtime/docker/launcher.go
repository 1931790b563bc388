package docker

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
)

// Launcher starts a detached process, typically a terminal emulator.
type Launcher interface {
	Launch(ctx context.Context, argv []string) error
}

// ExecLauncher starts argv with os/exec and reaps it in the background.
type ExecLauncher struct{}

// Launch starts argv and returns once the process is running. The context
// only bounds the start, not the lifetime of the terminal.
func (ExecLauncher) Launch(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", argv[0], err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Debug("docker: terminal exited", "cmd", argv[0], "err", err)
		}
	}()
	return nil
}
