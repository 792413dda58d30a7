package robot

import (
	"fmt"

	"robogrid/internal/domain/robotics"
)

func Names() []string {
	return []string{"patrol", "idle"}
}

func New(name string, maxSteps int) (robotics.RobotBuilder, error) {
	switch name {
	case "patrol", "":
		return NewPatrol(maxSteps), nil
	case "idle":
		return NewIdle(), nil
	default:
		return nil, fmt.Errorf("unknown robot %q", name)
	}
}
