package ports

import (
	"context"
	"time"

	"robogrid/internal/domain/robotics"
)

// RunEvent is one committed simulation event as journaled for a run.
type RunEvent struct {
	EventID    string
	RunID      string
	Seq        int64
	Event      robotics.Event
	OccurredAt time.Time
}

type EventFilter struct {
	Limit int
	Kind  robotics.EventKind
}

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

type RunRecord struct {
	RunID      string
	Robot      string
	Generator  string
	Seed       int64
	Status     RunStatus
	Summary    robotics.Summary
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

type EventRepository interface {
	Append(ctx context.Context, runID string, events []RunEvent) error
	ListByRunID(ctx context.Context, runID string, filter EventFilter) ([]RunEvent, error)
}

type RunRepository interface {
	Save(ctx context.Context, run RunRecord) error
	Get(ctx context.Context, runID string) (RunRecord, error)
	List(ctx context.Context, limit int) ([]RunRecord, error)
}
