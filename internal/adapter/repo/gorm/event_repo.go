package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"robogrid/internal/adapter/repo/gorm/model"
	"robogrid/internal/app/ports"
	"robogrid/internal/domain/robotics"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, runID string, events []ports.RunEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.RunEvent, 0, len(events))
	for _, e := range events {
		b, err := json.Marshal(e.Event)
		if err != nil {
			return fmt.Errorf("encode event %s: %w", e.EventID, err)
		}
		rows = append(rows, model.RunEvent{
			EventID:    e.EventID,
			RunID:      runID,
			Seq:        e.Seq,
			Tick:       int64(e.Event.Tick),
			Kind:       string(e.Event.Kind),
			Payload:    b,
			OccurredAt: e.OccurredAt,
		})
	}
	if err := getDBFromCtx(ctx, r.db).Create(&rows).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r EventRepo) ListByRunID(ctx context.Context, runID string, filter ports.EventFilter) ([]ports.RunEvent, error) {
	rows := []model.RunEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.RunEvent{RunID: runID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "seq"}, Desc: true}},
		})
	if filter.Kind != "" {
		query = query.Where("kind = ?", string(filter.Kind))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ports.RunEvent, len(rows))
	for i, row := range rows {
		var ev robotics.Event
		if err := json.Unmarshal(row.Payload, &ev); err != nil {
			return nil, fmt.Errorf("decode event %s: %w", row.EventID, err)
		}
		out[len(rows)-1-i] = ports.RunEvent{
			EventID:    row.EventID,
			RunID:      row.RunID,
			Seq:        row.Seq,
			Event:      ev,
			OccurredAt: row.OccurredAt,
		}
	}
	return out, nil
}
