package plugin

import (
	"context"
	"errors"
	"fmt"

	"github.com/bdobrica/launchdock/common/trace"
	"github.com/bdobrica/launchdock/internal/launchdock/audit"
	"github.com/bdobrica/launchdock/internal/launchdock/index"
	"github.com/bdobrica/launchdock/internal/launchdock/observability"
)

// Activation outcomes, used in logs and metrics.
const (
	outcomeOK       = "ok"
	outcomeNoop     = "noop"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// errNoop marks an activation that legitimately had nothing to do. It is
// never surfaced as a failure.
var errNoop = errors.New("nothing to do")

func noop(reason string) error {
	return fmt.Errorf("%s: %w", reason, errNoop)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, errNoop):
		return outcomeNoop
	case errors.Is(err, ErrResultNotFound), errors.Is(err, ErrContextNotFound):
		return outcomeNotFound
	default:
		return outcomeError
	}
}

// report logs and counts the end of one activation request.
func (p *Plugin) report(ctx context.Context, kind string, id uint32, err error) {
	outcome := outcomeOf(err)
	p.metrics.ObserveActivation(kind, outcome)
	log := observability.WithTrace(ctx)
	switch outcome {
	case outcomeNoop:
		log.Info("activation has nothing to do", "kind", kind, "id", id, "outcome", outcome, "reason", err)
	case outcomeNotFound:
		log.Warn("activation failed", "kind", kind, "id", id, "outcome", outcome, "err", err)
	case outcomeError:
		log.Error("activation failed", "kind", kind, "id", id, "outcome", outcome, "err", err)
	}
}

// Activate handles a primary activation of result id.
func (p *Plugin) Activate(ctx context.Context, id uint32) {
	ctx = trace.New(ctx)
	p.report(ctx, "primary", id, p.activate(id))
}

func (p *Plugin) activate(id uint32) error {
	res, ok := p.results.Get(id)
	if !ok {
		return fmt.Errorf("result %d: %w", id, ErrResultNotFound)
	}

	switch res.Primary {
	case index.PrimaryComplete:
		if !res.HasCompletion() {
			return noop("no completion text")
		}
		return p.out.Fill(res.Completion)
	case index.PrimaryShowContext:
		if res.Context.Len() == 0 {
			return fmt.Errorf("result %d: %w", id, ErrContextNotFound)
		}
		return p.out.Context(id, res.Context.Options())
	default:
		return noop("no action is legal in this state")
	}
}

// ActivateContext runs context entry cid of result id.
func (p *Plugin) ActivateContext(ctx context.Context, id, cid uint32) {
	ctx = trace.New(ctx)
	p.report(ctx, "context", id, p.activateContext(ctx, id, cid))
}

func (p *Plugin) activateContext(ctx context.Context, id, cid uint32) error {
	res, ok := p.results.Get(id)
	if !ok {
		return fmt.Errorf("result %d: %w", id, ErrResultNotFound)
	}
	entry, ok := res.Context.Get(cid)
	if !ok {
		return fmt.Errorf("result %d context %d: %w", id, cid, ErrContextNotFound)
	}
	if res.EntityID == "" {
		return fmt.Errorf("result %d: %w", id, ErrNoEntity)
	}
	if entry.Action == nil {
		return noop("entry has no action")
	}
	if entry.Action.EntityID != res.EntityID {
		return fmt.Errorf("result %d context %d bound to %s, result is %s: %w",
			id, cid, entry.Action.EntityID, res.EntityID, ErrNoEntity)
	}

	action := entry.Action.Action
	log := observability.WithTrace(ctx)
	log.Info("executing action", "action", action, "container", res.EntityID)

	err := p.exec.Execute(ctx, entry.Action.EntityID, action, nil)
	p.metrics.ObserveAction(action.String(), outcomeOf(err))
	p.record(ctx, res.EntityID, action.String(), err)
	if err != nil {
		return fmt.Errorf("execute %s: %w", action, err)
	}
	// A terminal now owns the interaction.
	if action.Interactive() {
		if err := p.out.Close(); err != nil {
			log.Warn("close launcher failed", "err", err)
		}
	}
	return nil
}

func (p *Plugin) record(ctx context.Context, entityID, action string, execErr error) {
	if p.audit == nil {
		return
	}
	e := audit.Entry{
		TraceID:  trace.FromContext(ctx),
		EntityID: entityID,
		Action:   action,
		Result:   audit.ResultOK,
	}
	if execErr != nil {
		e.Result = audit.ResultError
		e.Error = execErr.Error()
	}
	if err := p.audit.Record(ctx, e); err != nil {
		observability.WithTrace(ctx).Warn("audit: record failed", "err", err)
	}
}

// Complete answers a completion request for result id with its fill text.
func (p *Plugin) Complete(ctx context.Context, id uint32) {
	ctx = trace.New(ctx)
	p.report(ctx, "complete", id, p.complete(id))
}

func (p *Plugin) complete(id uint32) error {
	res, ok := p.results.Get(id)
	if !ok {
		return fmt.Errorf("result %d: %w", id, ErrResultNotFound)
	}
	if !res.HasCompletion() {
		return noop("no completion")
	}
	return p.out.Fill(res.Completion)
}

// Context sends the context menu of result id.
func (p *Plugin) Context(ctx context.Context, id uint32) {
	ctx = trace.New(ctx)
	p.report(ctx, "menu", id, p.showContext(id))
}

func (p *Plugin) showContext(id uint32) error {
	res, ok := p.results.Get(id)
	if !ok {
		return fmt.Errorf("result %d: %w", id, ErrResultNotFound)
	}
	if res.Context.Len() == 0 {
		return fmt.Errorf("result %d: %w", id, ErrContextNotFound)
	}
	return p.out.Context(id, res.Context.Options())
}
