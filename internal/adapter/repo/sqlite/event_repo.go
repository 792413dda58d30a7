package sqliterepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"robogrid/internal/app/ports"
	"robogrid/internal/domain/robotics"
)

type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, runID string, events []ports.RunEvent) error {
	q := getQuerier(ctx, r.db)
	for _, e := range events {
		b, err := json.Marshal(e.Event)
		if err != nil {
			return fmt.Errorf("encode event %s: %w", e.EventID, err)
		}
		_, err = q.ExecContext(ctx,
			`INSERT INTO run_events(event_id, run_id, seq, tick, kind, payload, occurred_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.EventID, runID, e.Seq, int64(e.Event.Tick), string(e.Event.Kind), string(b), e.OccurredAt.UnixNano(),
		)
		if err != nil {
			if isConstraint(err) {
				return ports.ErrConflict
			}
			return err
		}
	}
	return nil
}

func (r EventRepo) ListByRunID(ctx context.Context, runID string, filter ports.EventFilter) ([]ports.RunEvent, error) {
	query := `SELECT event_id, run_id, seq, payload, occurred_at FROM run_events WHERE run_id = ?`
	args := []any{runID}
	if filter.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(filter.Kind))
	}
	query += ` ORDER BY seq DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := getQuerier(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ports.RunEvent
	for rows.Next() {
		var (
			e       ports.RunEvent
			payload string
			at      int64
		)
		if err := rows.Scan(&e.EventID, &e.RunID, &e.Seq, &payload, &at); err != nil {
			return nil, err
		}
		var ev robotics.Event
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return nil, fmt.Errorf("decode event %s: %w", e.EventID, err)
		}
		e.Event = ev
		e.OccurredAt = time.Unix(0, at).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func isConstraint(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "constraint failed")
}
