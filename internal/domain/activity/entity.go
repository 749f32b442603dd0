package activity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Action tags one activity-log entry.
type Action string

const (
	ActionJoined      Action = "JOINED"
	ActionApproved    Action = "APPROVED"
	ActionRejected    Action = "REJECTED"
	ActionLeft        Action = "LEFT"
	ActionReactivated Action = "REACTIVATED"
)

// Entry represents the league_activity_log table. Entries are written in the
// same transaction as the membership change they describe.
type Entry struct {
	ID       uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LeagueID uuid.UUID      `gorm:"type:uuid;not null;index"`
	PlayerID uuid.UUID      `gorm:"type:uuid;not null;index"`
	ActorID  uuid.NullUUID  `gorm:"type:uuid"`
	Action   Action         `gorm:"type:varchar(20);not null"`
	Details  datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (Entry) TableName() string {
	return "league_activity_log"
}
