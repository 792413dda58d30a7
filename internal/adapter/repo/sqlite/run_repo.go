package sqliterepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"robogrid/internal/app/ports"
	"robogrid/internal/domain/robotics"
)

type RunRepo struct {
	db *sql.DB
}

func NewRunRepo(db *sql.DB) RunRepo {
	return RunRepo{db: db}
}

func (r RunRepo) Save(ctx context.Context, run ports.RunRecord) error {
	summary, err := json.Marshal(run.Summary)
	if err != nil {
		return err
	}
	var finished sql.NullInt64
	if !run.FinishedAt.IsZero() {
		finished = sql.NullInt64{Int64: run.FinishedAt.UnixNano(), Valid: true}
	}
	_, err = getQuerier(ctx, r.db).ExecContext(ctx, `
INSERT INTO runs(run_id, robot, generator, seed, status, summary, error, started_at, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(run_id) DO UPDATE SET
  status = excluded.status,
  summary = excluded.summary,
  error = excluded.error,
  finished_at = excluded.finished_at`,
		run.RunID, run.Robot, run.Generator, run.Seed, string(run.Status), string(summary), run.Error,
		run.StartedAt.UnixNano(), finished,
	)
	return err
}

const selectRun = `SELECT run_id, robot, generator, seed, status, summary, error, started_at, finished_at FROM runs`

func (r RunRepo) Get(ctx context.Context, runID string) (ports.RunRecord, error) {
	row := getQuerier(ctx, r.db).QueryRowContext(ctx, selectRun+` WHERE run_id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RunRecord{}, ports.ErrNotFound
	}
	return run, err
}

func (r RunRepo) List(ctx context.Context, limit int) ([]ports.RunRecord, error) {
	query := selectRun + ` ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := getQuerier(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ports.RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (ports.RunRecord, error) {
	var (
		run      ports.RunRecord
		status   string
		summary  string
		started  int64
		finished sql.NullInt64
	)
	if err := s.Scan(&run.RunID, &run.Robot, &run.Generator, &run.Seed, &status, &summary, &run.Error, &started, &finished); err != nil {
		return ports.RunRecord{}, err
	}
	var sum robotics.Summary
	if err := json.Unmarshal([]byte(summary), &sum); err != nil {
		return ports.RunRecord{}, err
	}
	run.Status = ports.RunStatus(status)
	run.Summary = sum
	run.StartedAt = time.Unix(0, started).UTC()
	if finished.Valid {
		run.FinishedAt = time.Unix(0, finished.Int64).UTC()
	}
	return run, nil
}
