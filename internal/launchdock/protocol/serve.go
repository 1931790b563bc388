package protocol

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Handler serves decoded requests. Search may block until the query is
// fully answered; Serve runs it on its own goroutine and cancels its
// context when the query is superseded. All other methods run on the
// driver goroutine, one at a time.
type Handler interface {
	Search(ctx context.Context, query string)
	Activate(ctx context.Context, id uint32)
	ActivateContext(ctx context.Context, id, context uint32)
	Complete(ctx context.Context, id uint32)
	Context(ctx context.Context, id uint32)
	// Interrupt is called after the in-flight search, if any, has been
	// cancelled and joined.
	Interrupt()
}

// maxLine bounds a single request line.
const maxLine = 1 << 20

type inflight struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Serve reads requests from r until EOF, an Exit request, or ctx is done.
// Malformed lines are logged and skipped.
func Serve(ctx context.Context, r io.Reader, h Handler) error {
	lines := make(chan []byte)
	readErr := make(chan error, 1)
	readCtx, stopReader := context.WithCancel(ctx)
	defer stopReader()

	go func() {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 4096), maxLine)
		for sc.Scan() {
			line := append([]byte(nil), sc.Bytes()...)
			select {
			case lines <- line:
			case <-readCtx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	var current *inflight
	stop := func() {
		if current == nil {
			return
		}
		current.cancel()
		<-current.done
		current = nil
	}
	defer stop()

	for {
		var line []byte
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("read requests: %w", err)
			}
			slog.Debug("protocol: input closed")
			return nil
		case line = <-lines:
		}

		req, err := DecodeRequest(line)
		if err != nil {
			slog.Warn("protocol: skipping malformed request", "err", err)
			continue
		}
		slog.Debug("protocol: request", "kind", req.Kind, "id", req.ID)

		switch req.Kind {
		case KindSearch:
			stop()
			h.Interrupt()
			qctx, cancel := context.WithCancel(ctx)
			current = &inflight{cancel: cancel, done: make(chan struct{})}
			go func(f *inflight, query string) {
				defer close(f.done)
				defer cancel()
				h.Search(qctx, query)
			}(current, req.Query)
		case KindInterrupt:
			stop()
			h.Interrupt()
		case KindActivate:
			h.Activate(ctx, req.ID)
		case KindActivateContext:
			h.ActivateContext(ctx, req.ID, req.Context)
		case KindComplete:
			h.Complete(ctx, req.ID)
		case KindContext:
			h.Context(ctx, req.ID)
		case KindQuit:
			slog.Info("protocol: quit is not supported, ignoring", "id", req.ID)
		case KindExit:
			stop()
			h.Interrupt()
			return nil
		}
	}
}
