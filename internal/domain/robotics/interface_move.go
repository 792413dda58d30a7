package robotics

import "robogrid/internal/domain/world"

type Move struct {
	basic BasicInterface
	uses  *useCounter
}

func (b BasicInterface) Move() Move {
	return Move{basic: b, uses: b.uses(func(l UseLimits) int { return l.Move })}
}

func (m Move) Basic() BasicInterface {
	return m.basic
}

// MoveMe steps the robot one cell in dir and returns its new position.
func (m Move) MoveMe(energy Energy, dir world.Direction) (world.Position, error) {
	w, err := m.basic.target(dir)
	if err != nil {
		return world.Position{}, err
	}
	var moved world.Position
	err = w.exec(energy, operation{
		cost: w.costs.Move,
		uses: m.uses,
		check: func(s *worldState) error {
			target := s.Robot.Step(dir)
			if !s.InBounds(target) {
				return &OutOfBoundsError{Target: target}
			}
			if tile := s.At(target); !tile.Walkable() {
				return &BlockedError{Target: target, Tile: tile}
			}
			return nil
		},
		commit: func(s *worldState) []Event {
			s.Robot = s.Robot.Step(dir)
			moved = s.Robot
			return []Event{{
				Kind:     EventMoved,
				Position: positionRef(moved),
				Tile:     tileRef(s.At(moved)),
				Detail:   string(dir),
			}}
		},
	})
	if err != nil {
		return world.Position{}, err
	}
	return moved, nil
}
