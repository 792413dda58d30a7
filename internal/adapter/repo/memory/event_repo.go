package memory

import (
	"context"

	"robogrid/internal/app/ports"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(ctx context.Context, runID string, events []ports.RunEvent) error {
	return r.store.write(ctx, func() error {
		for _, e := range events {
			e.RunID = runID
			r.store.events[runID] = append(r.store.events[runID], e)
		}
		return nil
	})
}

// ListByRunID returns the most recent matching events, oldest first.
func (r EventRepo) ListByRunID(ctx context.Context, runID string, filter ports.EventFilter) ([]ports.RunEvent, error) {
	var out []ports.RunEvent
	r.store.read(ctx, func() {
		all := r.store.events[runID]
		for i := len(all) - 1; i >= 0; i-- {
			if filter.Kind != "" && all[i].Event.Kind != filter.Kind {
				continue
			}
			out = append(out, all[i])
			if filter.Limit > 0 && len(out) >= filter.Limit {
				break
			}
		}
	})
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
