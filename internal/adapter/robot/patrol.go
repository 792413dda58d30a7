// Package robot holds the built-in robot behaviours driven by the runner.
package robot

import (
	"errors"

	"robogrid/internal/domain/robotics"
	"robogrid/internal/domain/world"
)

// Patrol walks in a straight line, clearing destructible obstacles when it can
// afford to and turning clockwise otherwise. It senses once per tick.
type Patrol struct {
	MaxSteps int

	move    robotics.Move
	destroy robotics.Destroy
	sense   robotics.Sense
	heading world.Direction
	moved   int
	cleared int
}

func NewPatrol(maxSteps int) robotics.RobotBuilder {
	return func(is robotics.Issuer) (robotics.Robot, error) {
		b, err := is.IssueBasicInterface()
		if err != nil {
			return nil, err
		}
		if maxSteps <= 0 {
			maxSteps = 3
		}
		return &Patrol{
			MaxSteps: maxSteps,
			move:     b.Move(),
			destroy:  b.Destroy(),
			sense:    b.Sense(),
			heading:  world.DirectionRight,
		}, nil
	}
}

func (p *Patrol) ProcessTick(energy robotics.Energy) {
	view, err := p.sense.LookAround(energy)
	if err != nil {
		return
	}
	steps, turns := 0, 0
	for steps < p.MaxSteps && turns < len(world.AllDirections()) {
		_, err := p.move.MoveMe(energy, p.heading)
		switch {
		case err == nil:
			steps++
			turns = 0
			continue
		case errors.Is(err, robotics.ErrInsufficientEnergy), errors.Is(err, robotics.ErrHandleSpent):
			return
		case errors.Is(err, robotics.ErrBlocked) && steps == 0 && ahead(view, p.heading).Destructible():
			if _, derr := p.destroy.Destroy(energy, p.heading); derr == nil {
				continue
			}
		}
		p.heading = clockwise(p.heading)
		turns++
	}
}

func (p *Patrol) HandleEvent(ev robotics.Event) {
	switch ev.Kind {
	case robotics.EventMoved:
		p.moved++
	case robotics.EventTileDestroyed:
		p.cleared++
	}
}

func (p *Patrol) Stats() (moved, cleared int) {
	return p.moved, p.cleared
}

// ahead returns the tile next to the robot in dir as seen in view. The view is
// only fresh before the first step of a tick.
func ahead(view robotics.View, dir world.Direction) world.Tile {
	dr, dc := dir.Delta()
	t := view[1+dr][1+dc]
	if t == nil {
		return world.Tile{}
	}
	return *t
}

func clockwise(d world.Direction) world.Direction {
	dirs := world.AllDirections()
	for i, x := range dirs {
		if x == d {
			return dirs[(i+1)%len(dirs)]
		}
	}
	return world.DirectionRight
}
