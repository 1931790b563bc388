package plugin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bdobrica/launchdock/common/trace"
	"github.com/bdobrica/launchdock/internal/launchdock/index"
	"github.com/bdobrica/launchdock/internal/launchdock/observability"
)

const (
	noticeEmptyName   = "No active containers"
	noticeEmptyDesc   = "Nothing matches this listing. Show all containers?"
	noticeHiddenName  = "Some containers are not visible"
	noticeHiddenDescF = "%d of %d containers are hidden by this filter. Show all containers?"
)

// Search answers one query: it refreshes the inventory, rebuilds the result
// index, adds a notice row when containers were filtered away, and always
// ends with Finished.
func (p *Plugin) Search(ctx context.Context, query string) {
	ctx = trace.New(ctx)
	log := observability.WithTrace(ctx)

	gen := p.results.Reset()
	filter, label := p.selectFilter(query)
	log.Info("search", "query", query, "filter", label)

	defer func() {
		if err := p.out.Finished(); err != nil {
			log.Error("search: finish failed", "err", err)
		}
	}()

	if p.refresh != nil {
		if err := p.refresh.Refresh(ctx); err != nil {
			log.Warn("search: refresh failed, using previous snapshot", "err", err)
		}
	}

	stats, err := p.builder.Build(ctx, gen, filter)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Debug("search: superseded", "query", query)
			return
		}
		log.Error("search: build failed", "err", err)
		return
	}
	p.metrics.ObserveSearch(label, int(stats.Last))
	p.metrics.SetEntities(stats.Total)

	// Notices are decided only after every build unit has joined.
	notice, ok := p.notice(stats)
	if !ok {
		return
	}
	if !p.results.PutNotice(gen, notice) {
		log.Debug("search: notice dropped, index was reset")
		return
	}
	if err := p.out.Append(ctx, notice.Payload); err != nil {
		log.Error("search: emit notice failed", "err", err)
	}
}

// notice returns the id 0 row to show after a build, if any.
func (p *Plugin) notice(stats index.Stats) (index.Result, bool) {
	var name, desc string
	switch {
	case stats.Last == 0:
		name, desc = noticeEmptyName, noticeEmptyDesc
	case int(stats.Last) < stats.Total:
		name = noticeHiddenName
		desc = fmt.Sprintf(noticeHiddenDescF, stats.Total-int(stats.Last), stats.Total)
	default:
		return index.Result{}, false
	}
	return index.Result{
		Payload: index.Payload{
			ID:          index.NoticeID,
			Name:        name,
			Description: desc,
			Icon:        p.cfg.Icon,
		},
		Primary:    index.PrimaryComplete,
		Completion: p.cfg.AllCommand(),
	}, true
}

// Interrupt drops the current result index so no activation can resolve
// against rows of a superseded query.
func (p *Plugin) Interrupt() {
	gen := p.results.Reset()
	slog.Debug("interrupt: result index cleared", "gen", gen)
}
