package member

import (
	"time"

	"github.com/google/uuid"
)

// Status represents a membership's place in its lifecycle.
type Status string

const (
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusActive          Status = "ACTIVE"
	StatusInactive        Status = "INACTIVE"
	StatusSuspended       Status = "SUSPENDED"
	StatusBanned          Status = "BANNED"
)

// IsTerminal reports whether the status blocks any self-service transition.
// SUSPENDED and BANNED are only ever changed by administrative action.
func (s Status) IsTerminal() bool {
	return s == StatusSuspended || s == StatusBanned
}

// LeagueMember represents the league_members table. At most one row exists per
// (player_id, league_id); leaving is a soft delete via LeftAt.
type LeagueMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PlayerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_league_members_player_league"`
	LeagueID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_league_members_player_league"`
	Status   Status    `gorm:"type:varchar(20);not null;index"`
	Role     string    `gorm:"type:varchar(20);not null;default:'MEMBER'"`

	JoinedAt   time.Time `gorm:"not null;default:now()"`
	LeftAt     *time.Time
	ApprovedBy uuid.NullUUID `gorm:"type:uuid"`
	ApprovedAt *time.Time
	Notes      string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (LeagueMember) TableName() string {
	return "league_members"
}
