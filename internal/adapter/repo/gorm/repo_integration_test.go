package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	schema "robogrid/db"
	"robogrid/internal/app/ports"
	"robogrid/internal/domain/robotics"
	"robogrid/internal/domain/world"

	"gorm.io/gorm"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("ROBOGRID_DB_DSN")
	if dsn == "" {
		t.Skip("ROBOGRID_DB_DSN is required for integration test")
	}
	return dsn
}

func openMigrated(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenPostgres(requireDSN(t))
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	migrations, err := schema.Migrations()
	if err != nil {
		t.Fatalf("load migrations: %v", err)
	}
	if err := ApplyMigrationsFS(context.Background(), db, migrations); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func TestRunRepo_SaveUpsertAndGet(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	runID := "it-run-upsert"
	_ = db.Exec("DELETE FROM runs WHERE run_id = ?", runID).Error

	repo := NewRunRepo(db)
	started := time.Unix(1000, 0).UTC()
	if err := repo.Save(ctx, ports.RunRecord{
		RunID:     runID,
		Robot:     "patrol",
		Generator: "flat",
		Status:    ports.RunStatusRunning,
		StartedAt: started,
	}); err != nil {
		t.Fatalf("save running: %v", err)
	}
	if err := repo.Save(ctx, ports.RunRecord{
		RunID:      runID,
		Robot:      "patrol",
		Generator:  "flat",
		Status:     ports.RunStatusCompleted,
		Summary:    robotics.Summary{Ticks: 5, Moves: 3, Final: world.Position{Row: 1, Col: 2}},
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
	}); err != nil {
		t.Fatalf("save completed: %v", err)
	}

	got, err := repo.Get(ctx, runID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != ports.RunStatusCompleted || got.Summary.Moves != 3 || got.Summary.Final.Col != 2 {
		t.Fatalf("unexpected run: %+v", got)
	}
	if !got.FinishedAt.Equal(started.Add(time.Second)) {
		t.Fatalf("unexpected finished_at %v", got.FinishedAt)
	}
	if _, err := repo.Get(ctx, runID+"-missing"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventRepo_AppendAndListByRunID(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	runID := "it-run-events"
	_ = db.Exec("DELETE FROM run_events WHERE run_id = ?", runID).Error
	_ = db.Exec("DELETE FROM runs WHERE run_id = ?", runID).Error

	if err := NewRunRepo(db).Save(ctx, ports.RunRecord{RunID: runID, Status: ports.RunStatusRunning, StartedAt: time.Now()}); err != nil {
		t.Fatalf("seed run: %v", err)
	}
	repo := NewEventRepo(db)
	pos := world.Position{Row: 0, Col: 1}
	events := []ports.RunEvent{
		{EventID: runID + "-1", Seq: 1, Event: robotics.Event{Kind: robotics.EventTickStarted, Tick: 1}, OccurredAt: time.Now()},
		{EventID: runID + "-2", Seq: 2, Event: robotics.Event{Kind: robotics.EventMoved, Tick: 1, Position: &pos}, OccurredAt: time.Now()},
	}
	if err := repo.Append(ctx, runID, events); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Append(ctx, runID, events[:1]); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected conflict on duplicate append, got %v", err)
	}

	got, err := repo.ListByRunID(ctx, runID, ports.EventFilter{Kind: robotics.EventMoved})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Event.Position == nil || *got[0].Event.Position != pos {
		t.Fatalf("unexpected events: %+v", got)
	}
}

func TestTxManager_RunInTxCommitAndRollback(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	runID := "it-tx-manager"
	_ = db.Exec("DELETE FROM runs WHERE run_id IN (?, ?)", runID, runID+"-rb").Error

	txManager := NewTxManager(db)
	runRepo := NewRunRepo(db)

	commitErr := txManager.RunInTx(ctx, func(txCtx context.Context) error {
		return runRepo.Save(txCtx, ports.RunRecord{RunID: runID, Status: ports.RunStatusRunning, StartedAt: time.Now()})
	})
	if commitErr != nil {
		t.Fatalf("commit tx failed: %v", commitErr)
	}
	if _, err := runRepo.Get(ctx, runID); err != nil {
		t.Fatalf("expected committed run exists, got err=%v", err)
	}

	rollbackErr := txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := runRepo.Save(txCtx, ports.RunRecord{RunID: runID + "-rb", Status: ports.RunStatusRunning, StartedAt: time.Now()}); err != nil {
			return err
		}
		return errors.New("force rollback")
	})
	if rollbackErr == nil {
		t.Fatalf("expected rollback error")
	}
	if _, err := runRepo.Get(ctx, runID+"-rb"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected rollback to remove run, got err=%v", err)
	}
}
