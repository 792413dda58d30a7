package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"robogrid/internal/adapter/repo/gorm/model"
	"robogrid/internal/app/ports"
	"robogrid/internal/domain/robotics"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RunRepo struct {
	db *gorm.DB
}

func NewRunRepo(db *gorm.DB) RunRepo {
	return RunRepo{db: db}
}

func (r RunRepo) Save(ctx context.Context, run ports.RunRecord) error {
	summary, err := json.Marshal(run.Summary)
	if err != nil {
		return err
	}
	m := model.Run{
		RunID:     run.RunID,
		Robot:     run.Robot,
		Generator: run.Generator,
		Seed:      run.Seed,
		Status:    string(run.Status),
		Summary:   summary,
		Error:     run.Error,
		StartedAt: run.StartedAt,
	}
	if !run.FinishedAt.IsZero() {
		finished := run.FinishedAt
		m.FinishedAt = &finished
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "run_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "summary", "error", "finished_at"}),
	}).Create(&m).Error
}

func (r RunRepo) Get(ctx context.Context, runID string) (ports.RunRecord, error) {
	var m model.Run
	if err := getDBFromCtx(ctx, r.db).Where("run_id = ?", runID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.RunRecord{}, ports.ErrNotFound
		}
		return ports.RunRecord{}, err
	}
	return decodeRun(m)
}

func (r RunRepo) List(ctx context.Context, limit int) ([]ports.RunRecord, error) {
	rows := []model.Run{}
	query := getDBFromCtx(ctx, r.db).Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.RunRecord, 0, len(rows))
	for _, row := range rows {
		run, err := decodeRun(row)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, nil
}

func decodeRun(m model.Run) (ports.RunRecord, error) {
	var summary robotics.Summary
	if len(m.Summary) > 0 {
		if err := json.Unmarshal(m.Summary, &summary); err != nil {
			return ports.RunRecord{}, err
		}
	}
	out := ports.RunRecord{
		RunID:     m.RunID,
		Robot:     m.Robot,
		Generator: m.Generator,
		Seed:      m.Seed,
		Status:    ports.RunStatus(m.Status),
		Summary:   summary,
		Error:     m.Error,
		StartedAt: m.StartedAt,
	}
	if m.FinishedAt != nil {
		out.FinishedAt = *m.FinishedAt
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
