package memory

import (
	"context"
	"sync"

	"robogrid/internal/app/ports"
)

type Store struct {
	mu     sync.RWMutex
	runs   map[string]ports.RunRecord
	order  []string
	events map[string][]ports.RunEvent
}

func NewStore() *Store {
	return &Store{
		runs:   make(map[string]ports.RunRecord),
		events: make(map[string][]ports.RunEvent),
	}
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// read runs fn under the read lock unless the caller already holds the store
// through RunInTx.
func (s *Store) read(ctx context.Context, fn func()) {
	if inTx(ctx) {
		fn()
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	if inTx(ctx) {
		return fn()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}
