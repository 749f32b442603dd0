package outbox

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Status represents the processing state of an outbox event
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// IsTerminal reports whether no further transition is permitted from s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransitionTo enforces the PENDING -> PROCESSING -> {COMPLETED | PENDING | FAILED}
// state machine. Reactivating a terminal event is a programming error and is
// always rejected.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusCompleted || next == StatusFailed || next == StatusPending
	default:
		return false
	}
}

// OutboxEvent stores domain events waiting to be delivered. Rows are written in
// the same transaction as the state change they announce and are never deleted.
type OutboxEvent struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SourceType  string         `gorm:"type:varchar(50);not null"`
	SourceID    string         `gorm:"type:varchar(64);not null"`
	EventType   string         `gorm:"type:varchar(50);not null"`
	Payload     datatypes.JSON `gorm:"type:jsonb;not null"`
	Status      Status         `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	RetryCount  int            `gorm:"default:0"`
	Error       string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"not null;default:now();index"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()"`
	ProcessedAt *time.Time
}

// TableName returns the database table name
func (OutboxEvent) TableName() string {
	return "outbox_events"
}
