package player

import (
	"time"

	"github.com/google/uuid"
)

// Status is the player's global standing across the platform.
type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusBanned Status = "BANNED"
)

// Player represents the players table.
type Player struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DiscordUserID string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	DisplayName   string    `gorm:"type:varchar(100)"`
	Status        Status    `gorm:"type:varchar(20);not null;default:'ACTIVE'"`

	// Cooldown bookkeeping, stamped when the player leaves a league whose
	// settings configure a cooldown.
	LastLeftLeagueAt *time.Time
	LastLeftLeagueID uuid.NullUUID `gorm:"type:uuid"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Player) TableName() string {
	return "players"
}

// Tracker links a player to an external skill-tracking account.
type Tracker struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PlayerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Platform string    `gorm:"type:varchar(30);not null"`
	Handle   string    `gorm:"type:varchar(100);not null"`

	// Most recent recorded season, denormalized for cheap eligibility reads.
	LatestSeason *TrackerSeason `gorm:"embedded;embeddedPrefix:latest_"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Tracker) TableName() string {
	return "player_trackers"
}

// TrackerSeason holds the metrics recorded for one competitive season.
type TrackerSeason struct {
	Season int      `gorm:"column:season"`
	MMR    *float64 `gorm:"column:mmr"`
	Rank   *float64 `gorm:"column:rank"`
}
