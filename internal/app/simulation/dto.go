package simulation

import (
	"robogrid/internal/app/ports"
	"robogrid/internal/domain/robotics"
	"robogrid/internal/domain/world"
)

type Request struct {
	RunID         string
	RobotName     string
	GeneratorName string
	Seed          int64
	Generator     world.Generator
	Robot         robotics.RobotBuilder
	Runner        robotics.RunnerConfig
}

type Response struct {
	Run     ports.RunRecord
	Summary robotics.Summary
}
