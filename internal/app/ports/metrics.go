package ports

import "robogrid/internal/domain/robotics"

type SimulationMetrics interface {
	RecordTick(events []robotics.Event)
	RecordRun(summary robotics.Summary)
	RecordFailure()
}
