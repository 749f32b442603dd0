package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"leaguehub/internal/domain/player"
	league_errors "leaguehub/pkg/errors"
)

type playerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *playerRepository) Create(ctx context.Context, p *player.Player) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("player %s: %w", p.DiscordUserID, league_errors.ErrAlreadyExists)
		}
		return err
	}
	return nil
}

func (r *playerRepository) GetByID(ctx context.Context, id uuid.UUID) (player.Player, error) {
	var p player.Player
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if isNotFound(err) {
		return player.Player{}, fmt.Errorf("player %s: %w", id, league_errors.ErrNotFound)
	}
	return p, err
}

func (r *playerRepository) GetByDiscordUserID(ctx context.Context, discordUserID string) (player.Player, error) {
	var p player.Player
	err := r.db.WithContext(ctx).First(&p, "discord_user_id = ?", discordUserID).Error
	if isNotFound(err) {
		return player.Player{}, fmt.Errorf("player %s: %w", discordUserID, league_errors.ErrNotFound)
	}
	return p, err
}

func (r *playerRepository) StampCooldown(ctx context.Context, tx *gorm.DB, playerID, leagueID uuid.UUID, at time.Time) error {
	return r.handle(tx).WithContext(ctx).Model(&player.Player{}).
		Where("id = ?", playerID).
		Updates(map[string]interface{}{
			"last_left_league_at": at,
			"last_left_league_id": leagueID,
			"updated_at":          time.Now(),
		}).Error
}

func (r *playerRepository) GetTrackers(ctx context.Context, playerID uuid.UUID) ([]player.Tracker, error) {
	var trackers []player.Tracker
	err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("updated_at DESC").
		Find(&trackers).Error
	return trackers, err
}
