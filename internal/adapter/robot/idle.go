package robot

import "robogrid/internal/domain/robotics"

// Idle holds its allotment and never acts.
type Idle struct {
	ticks int
}

func NewIdle() robotics.RobotBuilder {
	return func(robotics.Issuer) (robotics.Robot, error) {
		return &Idle{}, nil
	}
}

func (i *Idle) ProcessTick(robotics.Energy) {
	i.ticks++
}
