package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"leaguehub/internal/domain/league"
	league_errors "leaguehub/pkg/errors"
)

type leagueRepository struct {
	db *gorm.DB
}

func NewLeagueRepository(db *gorm.DB) LeagueRepository {
	return &leagueRepository{db: db}
}

func (r *leagueRepository) Create(ctx context.Context, l *league.League) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *leagueRepository) GetByID(ctx context.Context, id uuid.UUID) (league.League, error) {
	var l league.League
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if isNotFound(err) {
		return league.League{}, fmt.Errorf("league %s: %w", id, league_errors.ErrNotFound)
	}
	return l, err
}

func (r *leagueRepository) ListByGuild(ctx context.Context, guildID string) ([]league.League, error) {
	var leagues []league.League
	err := r.db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		Order("created_at ASC").
		Find(&leagues).Error
	return leagues, err
}
