package index

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/bdobrica/launchdock/internal/launchdock/inventory"
	"github.com/bdobrica/launchdock/internal/launchdock/lifecycle"
)

// Emitter delivers a result row to the launcher.
type Emitter interface {
	Append(ctx context.Context, p Payload) error
}

// Builder turns the current inventory snapshot into result rows.
type Builder struct {
	store   *inventory.Store
	results *Results
	out     Emitter
}

// NewBuilder creates a Builder that reads store, fills results and emits
// rows on out.
func NewBuilder(store *inventory.Store, results *Results, out Emitter) *Builder {
	return &Builder{store: store, results: results, out: out}
}

// Stats summarises one build.
type Stats struct {
	// Last is the last id assigned; 0 means no container passed the filter.
	Last uint32
	// Total is the number of containers in the snapshot the build read.
	Total int
}

// Build emits one row per container whose state passes filter and inserts
// the matching Result under the same id into generation gen of the result
// index. Ids are assigned densely from 1 in snapshot order.
//
// Emission and insertion for each container run as independent units and
// all of them have joined when Build returns. When ctx is cancelled the
// remaining units are skipped and ctx's error is returned.
func (b *Builder) Build(ctx context.Context, gen uint64, filter lifecycle.Filter) (Stats, error) {
	g, gctx := errgroup.WithContext(ctx)

	snapshot := b.store.Snapshot()
	var last uint32
	for _, e := range snapshot {
		if !filter.Contains(e.State) {
			continue
		}
		last++
		res := wrap(last, e)

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := b.out.Append(gctx, res.Payload); err != nil {
				return fmt.Errorf("emit result %d: %w", res.Payload.ID, err)
			}
			return nil
		})
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if !b.results.Insert(gen, res.Payload.ID, res) {
				slog.Debug("index: dropped insert from superseded build", "id", res.Payload.ID, "gen", gen)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	// errgroup does not surface a parent cancellation that raced the last unit.
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	return Stats{Last: last, Total: len(snapshot)}, nil
}

// wrap builds the Result for entity e under id.
func wrap(id uint32, e inventory.Entity) Result {
	res := Result{
		Payload: Payload{
			ID:          id,
			Name:        e.State.Glyph() + " " + e.Name,
			Description: Describe(e),
			Icon:        e.Icon,
		},
		EntityID: e.ID,
		Primary:  PrimaryNone,
	}
	if menu := NewContextIndex(e.ID, e.State.Actions()); menu != nil {
		res.Primary = PrimaryShowContext
		res.Context = menu
	}
	return res
}

// Describe renders the row description: state, image and short id.
func Describe(e inventory.Entity) string {
	return fmt.Sprintf("%s, image: %s, id: %s", e.State, e.Image, e.ShortID())
}
