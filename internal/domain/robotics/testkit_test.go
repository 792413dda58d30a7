package robotics

import (
	"context"
	"testing"

	"robogrid/internal/domain/world"
)

// gridWorld parses glyph rows. Overlay glyphs are placed over grass.
func gridWorld(t *testing.T, robot world.Position, rows ...string) world.World {
	t.Helper()
	grid := make([][]world.Tile, len(rows))
	for r, line := range rows {
		grid[r] = make([]world.Tile, len(line))
		for c := 0; c < len(line); c++ {
			tt, ok := world.TileTypeForGlyph(line[c])
			if !ok {
				t.Fatalf("unknown glyph %q at (%d,%d)", line[c], r, c)
			}
			if tt.Props().Overlay {
				grid[r][c] = world.Over(tt, world.TileGrass)
				continue
			}
			grid[r][c] = world.Plain(tt)
		}
	}
	return world.New(grid, robot)
}

func newTestWorld(t *testing.T, w world.World, cfg Config) *PrivateWorld {
	t.Helper()
	pw, err := NewPrivateWorld(w, cfg)
	if err != nil {
		t.Fatalf("new private world: %v", err)
	}
	return pw
}

func issue(t *testing.T, pw *PrivateWorld) BasicInterface {
	t.Helper()
	b, err := pw.IssueBasicInterface()
	if err != nil {
		t.Fatalf("issue basic interface: %v", err)
	}
	return b
}

type generatorFunc func() (world.World, error)

func (f generatorFunc) Generate() (world.World, error) { return f() }

type robotFunc func(Energy)

func (f robotFunc) ProcessTick(e Energy) { f(e) }

type recordingSink struct {
	ticks  []uint64
	events []Event
	err    error
}

func (s *recordingSink) Record(_ context.Context, tick uint64, events []Event) error {
	if s.err != nil {
		return s.err
	}
	s.ticks = append(s.ticks, tick)
	s.events = append(s.events, events...)
	return nil
}

func (s *recordingSink) kinds() []EventKind {
	out := make([]EventKind, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Kind)
	}
	return out
}
