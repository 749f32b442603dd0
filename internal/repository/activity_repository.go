package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"leaguehub/internal/domain/activity"
)

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, tx *gorm.DB, e *activity.Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	execDB := tx
	if execDB == nil {
		execDB = r.db
	}
	return execDB.WithContext(ctx).Create(e).Error
}

func (r *activityRepository) ListByLeague(ctx context.Context, leagueID uuid.UUID, limit int) ([]activity.Entry, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var entries []activity.Entry
	err := r.db.WithContext(ctx).
		Where("league_id = ?", leagueID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
