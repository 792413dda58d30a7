package robotics

import (
	"fmt"

	"robogrid/internal/domain/world"
)

type Destroy struct {
	basic BasicInterface
	uses  *useCounter
}

func (b BasicInterface) Destroy() Destroy {
	return Destroy{basic: b, uses: b.uses(func(l UseLimits) int { return l.Destroy })}
}

func (d Destroy) Basic() BasicInterface {
	return d.basic
}

// Destroy strips the overlay from the neighbouring cell in dir, reverting it
// to its base terrain, and returns the resulting tile.
func (d Destroy) Destroy(energy Energy, dir world.Direction) (world.Tile, error) {
	w, err := d.basic.target(dir)
	if err != nil {
		return world.Tile{}, err
	}
	var after world.Tile
	err = w.exec(energy, operation{
		cost: w.costs.Destroy,
		uses: d.uses,
		check: func(s *worldState) error {
			target := s.Robot.Step(dir)
			if !s.InBounds(target) {
				return &OutOfBoundsError{Target: target}
			}
			if !s.At(target).Destructible() {
				return fmt.Errorf("%w at %s", ErrNothingToDestroy, target)
			}
			return nil
		},
		commit: func(s *worldState) []Event {
			target := s.Robot.Step(dir)
			before := s.At(target)
			after = before.Reverted()
			s.Grid[target.Row][target.Col] = after
			return []Event{{
				Kind:     EventTileDestroyed,
				Position: positionRef(target),
				Tile:     tileRef(after),
				Detail:   string(before.Type),
			}}
		},
	})
	if err != nil {
		return world.Tile{}, err
	}
	return after, nil
}
