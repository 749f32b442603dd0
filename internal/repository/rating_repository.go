package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"leaguehub/internal/domain/rating"
	league_errors "leaguehub/pkg/errors"
)

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, tx *gorm.DB, lr *rating.LeagueRating) error {
	if lr.ID == uuid.Nil {
		lr.ID = uuid.New()
	}
	execDB := tx
	if execDB == nil {
		execDB = r.db
	}
	if err := execDB.WithContext(ctx).Create(lr).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("rating for player %s in league %s: %w", lr.PlayerID, lr.LeagueID, league_errors.ErrAlreadyExists)
		}
		return err
	}
	return nil
}

func (r *ratingRepository) GetByLeagueAndPlayer(ctx context.Context, leagueID, playerID uuid.UUID) (rating.LeagueRating, error) {
	var lr rating.LeagueRating
	err := r.db.WithContext(ctx).
		First(&lr, "league_id = ? AND player_id = ?", leagueID, playerID).Error
	if isNotFound(err) {
		return rating.LeagueRating{}, fmt.Errorf("rating: %w", league_errors.ErrNotFound)
	}
	return lr, err
}
