package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"robogrid/internal/app/ports"
	"robogrid/internal/domain/robotics"
)

var ErrInvalidRequest = errors.New("invalid simulation request")

// UseCase runs one robot to completion, journaling every tick.
type UseCase struct {
	TxManager   ports.TxManager
	Runs        ports.RunRepository
	Events      ports.EventRepository
	Metrics     ports.SimulationMetrics
	OpenTickLog func(runID string) (ports.TickLogger, error)
	Now         func() time.Time
	NewRunID    func() string
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.Generator == nil || req.Robot == nil {
		return Response{}, ErrInvalidRequest
	}
	now := u.now
	runID := req.RunID
	if runID == "" {
		runID = u.newRunID()
	}
	run := ports.RunRecord{
		RunID:     runID,
		Robot:     req.RobotName,
		Generator: req.GeneratorName,
		Seed:      req.Seed,
		Status:    ports.RunStatusRunning,
		StartedAt: now(),
	}
	if err := u.Runs.Save(ctx, run); err != nil {
		return Response{}, fmt.Errorf("save run: %w", err)
	}

	sink := &journalSink{runID: runID, uc: u}
	if u.OpenTickLog != nil {
		tl, err := u.OpenTickLog(runID)
		if err != nil {
			return Response{}, u.fail(ctx, run, fmt.Errorf("open tick log: %w", err))
		}
		sink.tickLog = tl
	}

	runner, err := robotics.NewRunner(req.Runner, req.Generator, req.Robot, robotics.WithEventSink(sink))
	if err != nil {
		return Response{}, u.fail(ctx, run, errors.Join(err, sink.close()))
	}
	summary, runErr := runner.Run(ctx)
	if err := sink.close(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("close tick log: %w", err))
	}

	run.Summary = summary
	run.FinishedAt = now()
	if runErr != nil {
		return Response{Run: run, Summary: summary}, u.fail(ctx, run, runErr)
	}
	run.Status = ports.RunStatusCompleted
	if err := u.Runs.Save(context.WithoutCancel(ctx), run); err != nil {
		return Response{}, fmt.Errorf("save run: %w", err)
	}
	if u.Metrics != nil {
		u.Metrics.RecordRun(summary)
	}
	return Response{Run: run, Summary: summary}, nil
}

func (u UseCase) fail(ctx context.Context, run ports.RunRecord, cause error) error {
	if u.Metrics != nil {
		u.Metrics.RecordFailure()
	}
	run.Status = ports.RunStatusFailed
	run.Error = cause.Error()
	if run.FinishedAt.IsZero() {
		run.FinishedAt = u.now()
	}
	if err := u.Runs.Save(context.WithoutCancel(ctx), run); err != nil {
		return errors.Join(cause, fmt.Errorf("save failed run: %w", err))
	}
	return cause
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u UseCase) newRunID() string {
	if u.NewRunID != nil {
		return u.NewRunID()
	}
	return uuid.NewString()
}

// journalSink persists each tick's events in one transaction, then feeds the
// tick log and metrics.
type journalSink struct {
	runID   string
	uc      UseCase
	tickLog ports.TickLogger
	seq     int64
}

func (s *journalSink) close() error {
	if s.tickLog == nil {
		return nil
	}
	tl := s.tickLog
	s.tickLog = nil
	return tl.Close()
}

func (s *journalSink) Record(ctx context.Context, tick uint64, events []robotics.Event) error {
	at := s.uc.now()
	rows := make([]ports.RunEvent, 0, len(events))
	for _, ev := range events {
		s.seq++
		rows = append(rows, ports.RunEvent{
			EventID:    ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()).String(),
			RunID:      s.runID,
			Seq:        s.seq,
			Event:      ev,
			OccurredAt: at,
		})
	}
	err := s.uc.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		return s.uc.Events.Append(txCtx, s.runID, rows)
	})
	if err != nil {
		return fmt.Errorf("append events: %w", err)
	}
	if s.uc.Metrics != nil {
		s.uc.Metrics.RecordTick(events)
	}
	if s.tickLog != nil {
		entry := ports.TickLogEntry{RunID: s.runID, Tick: tick, At: at, Events: events}
		if err := s.tickLog.WriteTick(entry); err != nil {
			return fmt.Errorf("write tick log: %w", err)
		}
	}
	return nil
}
