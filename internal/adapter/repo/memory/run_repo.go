package memory

import (
	"context"

	"robogrid/internal/app/ports"
)

type RunRepo struct {
	store *Store
}

func NewRunRepo(store *Store) RunRepo {
	return RunRepo{store: store}
}

func (r RunRepo) Save(ctx context.Context, run ports.RunRecord) error {
	return r.store.write(ctx, func() error {
		if _, ok := r.store.runs[run.RunID]; !ok {
			r.store.order = append(r.store.order, run.RunID)
		}
		r.store.runs[run.RunID] = run
		return nil
	})
}

func (r RunRepo) Get(ctx context.Context, runID string) (ports.RunRecord, error) {
	var (
		run ports.RunRecord
		ok  bool
	)
	r.store.read(ctx, func() {
		run, ok = r.store.runs[runID]
	})
	if !ok {
		return ports.RunRecord{}, ports.ErrNotFound
	}
	return run, nil
}

// List returns runs newest first.
func (r RunRepo) List(ctx context.Context, limit int) ([]ports.RunRecord, error) {
	var out []ports.RunRecord
	r.store.read(ctx, func() {
		for i := len(r.store.order) - 1; i >= 0; i-- {
			out = append(out, r.store.runs[r.store.order[i]])
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	})
	return out, nil
}
