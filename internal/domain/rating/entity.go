package rating

import (
	"time"

	"github.com/google/uuid"
)

// DefaultInitialRating seeds members whose tracker exposes no usable MMR.
const DefaultInitialRating = 1000

// LeagueRating represents the league_ratings table, one row per active member.
// The row is bootstrapped best-effort when a membership becomes ACTIVE and is
// recalculated by match results afterwards.
type LeagueRating struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LeagueID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_league_ratings_league_player"`
	PlayerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_league_ratings_league_player"`
	Rating   float64   `gorm:"not null"`
	Games    int       `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (LeagueRating) TableName() string {
	return "league_ratings"
}
