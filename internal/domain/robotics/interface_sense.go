package robotics

import "robogrid/internal/domain/world"

// View is the 3x3 neighbourhood around the robot, robot in the centre. Cells
// outside the grid are nil.
type View [3][3]*world.Tile

// Sky is what the robot sees looking up: the current tick and how long the
// current phase of the day lasts.
type Sky struct {
	Tick      uint64      `json:"tick"`
	Phase     world.Phase `json:"phase"`
	TicksLeft int         `json:"ticks_left"`
}

type Sense struct {
	basic BasicInterface
	uses  *useCounter
}

func (b BasicInterface) Sense() Sense {
	return Sense{basic: b, uses: b.uses(func(l UseLimits) int { return l.Sense })}
}

func (s Sense) Basic() BasicInterface {
	return s.basic
}

// LookAround reveals the neighbourhood and marks it discovered.
func (s Sense) LookAround(energy Energy) (View, error) {
	w := s.basic.w
	if w == nil {
		return View{}, ErrInvalidInterface
	}
	var view View
	err := w.exec(energy, operation{
		cost: w.costs.Sense,
		uses: s.uses,
		commit: func(st *worldState) []Event {
			revealed := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					p := world.Position{Row: st.Robot.Row + dr, Col: st.Robot.Col + dc}
					if !st.InBounds(p) {
						continue
					}
					view[dr+1][dc+1] = tileRef(st.At(p))
					if !st.discovered.Has(p) {
						st.discovered.Put(p)
						revealed++
					}
				}
			}
			return []Event{{Kind: EventSensed, Position: positionRef(st.Robot), Amount: revealed}}
		},
	})
	if err != nil {
		return View{}, err
	}
	return view, nil
}

// WhereAmI is free: the robot always knows its own coordinates.
func (s Sense) WhereAmI() (world.Position, error) {
	w := s.basic.w
	if w == nil {
		return world.Position{}, ErrInvalidInterface
	}
	return w.robotPosition(), nil
}

// Discovered reports how many cells the robot has revealed so far.
func (s Sense) Discovered() (int, error) {
	if s.basic.w == nil {
		return 0, ErrInvalidInterface
	}
	return s.basic.w.discoveredCount(), nil
}

// KnownMap returns the grid as the robot knows it: discovered cells hold a
// copy of their tile, the rest are nil.
func (s Sense) KnownMap() ([][]*world.Tile, error) {
	if s.basic.w == nil {
		return nil, ErrInvalidInterface
	}
	return s.basic.w.knownMap(), nil
}

func (s Sense) LookAtSky() (Sky, error) {
	if s.basic.w == nil {
		return Sky{}, ErrInvalidInterface
	}
	return s.basic.w.sky(), nil
}
