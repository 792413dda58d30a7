package simulation

import (
	"context"
	"errors"
	"testing"
	"time"

	"robogrid/internal/adapter/metrics/inmemory"
	"robogrid/internal/adapter/repo/memory"
	"robogrid/internal/adapter/robot"
	"robogrid/internal/adapter/world/generator"
	worldmock "robogrid/internal/adapter/world/mock"
	"robogrid/internal/app/ports"
	"robogrid/internal/domain/robotics"
)

type fakeTickLog struct {
	entries  []ports.TickLogEntry
	closed   bool
	closeErr error
}

func (f *fakeTickLog) WriteTick(e ports.TickLogEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeTickLog) Close() error {
	f.closed = true
	return f.closeErr
}

type failingEventRepo struct{}

func (failingEventRepo) Append(context.Context, string, []ports.RunEvent) error {
	return errors.New("db down")
}

func (failingEventRepo) ListByRunID(context.Context, string, ports.EventFilter) ([]ports.RunEvent, error) {
	return nil, nil
}

func newUseCase(store *memory.Store) UseCase {
	return UseCase{
		TxManager: memory.NewTxManager(store),
		Runs:      memory.NewRunRepo(store),
		Events:    memory.NewEventRepo(store),
		Metrics:   inmemory.NewRecorder(),
		Now:       func() time.Time { return time.Unix(1700, 0).UTC() },
		NewRunID:  func() string { return "run-fixed" },
	}
}

func TestUseCase_RunsAndJournals(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	tl := &fakeTickLog{}
	uc.OpenTickLog = func(string) (ports.TickLogger, error) { return tl, nil }

	resp, err := uc.Execute(context.Background(), Request{
		RobotName:     "patrol",
		GeneratorName: "rows",
		Generator:     generator.Rows{Lines: []string{"R...."}},
		Robot:         robot.NewPatrol(2),
		Runner:        robotics.RunnerConfig{Ticks: 2, EnergyPerTick: 100},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.Run.RunID != "run-fixed" || resp.Run.Status != ports.RunStatusCompleted {
		t.Fatalf("unexpected run %+v", resp.Run)
	}
	if resp.Summary.Moves != 4 || resp.Summary.Ticks != 2 {
		t.Fatalf("unexpected summary %+v", resp.Summary)
	}

	saved, err := memory.NewRunRepo(store).Get(context.Background(), "run-fixed")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if saved.Status != ports.RunStatusCompleted || saved.Summary.Moves != 4 {
		t.Fatalf("unexpected saved run %+v", saved)
	}

	events, err := memory.NewEventRepo(store).ListByRunID(context.Background(), "run-fixed", ports.EventFilter{})
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != resp.Summary.Events {
		t.Fatalf("expected %d journaled events, got %d", resp.Summary.Events, len(events))
	}
	for i, e := range events {
		if e.Seq != int64(i+1) || e.EventID == "" {
			t.Fatalf("event %d has seq=%d id=%q", i, e.Seq, e.EventID)
		}
	}
	if events[0].EventID == events[1].EventID {
		t.Fatalf("event ids must be unique")
	}
	// two ticks plus the terminating flush
	if !tl.closed || len(tl.entries) != 3 {
		t.Fatalf("expected 3 tick log entries and closed log, got %d closed=%v", len(tl.entries), tl.closed)
	}
	snap := uc.Metrics.(*inmemory.Recorder).Snapshot()
	if snap.RunsCompleted != 1 || snap.TicksTotal != 2 {
		t.Fatalf("unexpected metrics %+v", snap)
	}
}

func TestUseCase_GeneratorFailureMarksRunFailed(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	genErr := errors.New("no terrain")

	_, err := uc.Execute(context.Background(), Request{
		Generator: worldmock.Generator{Err: genErr},
		Robot:     robot.NewIdle(),
	})
	if !errors.Is(err, genErr) {
		t.Fatalf("expected generator error, got %v", err)
	}
	saved, err := memory.NewRunRepo(store).Get(context.Background(), "run-fixed")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if saved.Status != ports.RunStatusFailed || saved.Error == "" {
		t.Fatalf("expected failed run with error, got %+v", saved)
	}
	if uc.Metrics.(*inmemory.Recorder).Snapshot().RunsFailed != 1 {
		t.Fatalf("expected failure metric")
	}
}

func TestUseCase_JournalFailureStopsRun(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	uc.Events = failingEventRepo{}

	resp, err := uc.Execute(context.Background(), Request{
		Generator: worldmock.Generator{},
		Robot:     robot.NewIdle(),
		Runner:    robotics.RunnerConfig{Ticks: 3},
	})
	if err == nil {
		t.Fatalf("expected journal error")
	}
	if resp.Summary.Ticks != 1 {
		t.Fatalf("expected run to stop after first tick, got %d", resp.Summary.Ticks)
	}
}

func TestUseCase_RejectsIncompleteRequest(t *testing.T) {
	uc := newUseCase(memory.NewStore())
	if _, err := uc.Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUseCase_TickLogCloseFailureMarksRunFailed(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	flushErr := errors.New("disk full")
	tl := &fakeTickLog{closeErr: flushErr}
	uc.OpenTickLog = func(string) (ports.TickLogger, error) { return tl, nil }

	_, err := uc.Execute(context.Background(), Request{
		Generator: worldmock.Generator{},
		Robot:     robot.NewIdle(),
		Runner:    robotics.RunnerConfig{Ticks: 2},
	})
	if !errors.Is(err, flushErr) {
		t.Fatalf("expected tick log close error, got %v", err)
	}
	if !tl.closed {
		t.Fatalf("expected tick log to be closed")
	}
	saved, err := memory.NewRunRepo(store).Get(context.Background(), "run-fixed")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if saved.Status != ports.RunStatusFailed || saved.Error == "" {
		t.Fatalf("expected failed run, got %+v", saved)
	}
	if uc.Metrics.(*inmemory.Recorder).Snapshot().RunsCompleted != 0 {
		t.Fatalf("run with a lost tick log must not count as completed")
	}
}

func TestUseCase_ClosesTickLogWhenRunnerCannotStart(t *testing.T) {
	uc := newUseCase(memory.NewStore())
	tl := &fakeTickLog{}
	uc.OpenTickLog = func(string) (ports.TickLogger, error) { return tl, nil }

	if _, err := uc.Execute(context.Background(), Request{
		Generator: worldmock.Generator{Err: errors.New("no terrain")},
		Robot:     robot.NewIdle(),
	}); err == nil {
		t.Fatalf("expected generator error")
	}
	if !tl.closed {
		t.Fatalf("expected tick log to be closed")
	}
}
