package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType tags the semantic kind of a domain event. The set is closed:
// adding a kind means adding a decoder entry and a router handler.
type EventType string

const (
	EventMemberJoined      EventType = "member.joined"
	EventMemberApproved    EventType = "member.approved"
	EventMemberRejected    EventType = "member.rejected"
	EventMemberLeft        EventType = "member.left"
	EventMemberReactivated EventType = "member.reactivated"
)

// Retired event types from decommissioned features. Rows carrying them may
// still sit in the outbox table; they drain as logged no-ops instead of
// poisoning the retry loop.
const (
	EventMemberXPGained    EventType = "member.xp_gained"
	EventLeagueSeasonReset EventType = "league.season_reset"
)

// Event is a decoded domain event ready for routing.
type Event interface {
	Kind() EventType
}

// BaseEvent carries the fields shared by all membership events.
type BaseEvent struct {
	LeagueID uuid.UUID `json:"league_id"`
	PlayerID uuid.UUID `json:"player_id"`
	MemberID uuid.UUID `json:"member_id"`
	At       time.Time `json:"at"`
}

type MemberJoinedEvent struct {
	BaseEvent
	Status string `json:"status"` // ACTIVE or PENDING_APPROVAL at creation
}

func (MemberJoinedEvent) Kind() EventType { return EventMemberJoined }

type MemberApprovedEvent struct {
	BaseEvent
	ApprovedBy uuid.UUID `json:"approved_by"`
}

func (MemberApprovedEvent) Kind() EventType { return EventMemberApproved }

type MemberRejectedEvent struct {
	BaseEvent
	RejectedBy uuid.UUID `json:"rejected_by"`
}

func (MemberRejectedEvent) Kind() EventType { return EventMemberRejected }

type MemberLeftEvent struct {
	BaseEvent
	CooldownDays int `json:"cooldown_days,omitempty"`
}

func (MemberLeftEvent) Kind() EventType { return EventMemberLeft }

type MemberReactivatedEvent struct {
	BaseEvent
}

func (MemberReactivatedEvent) Kind() EventType { return EventMemberReactivated }

// decoders is the closed dispatch table from wire tag to concrete type.
var decoders = map[EventType]func() Event{
	EventMemberJoined:      func() Event { return &MemberJoinedEvent{} },
	EventMemberApproved:    func() Event { return &MemberApprovedEvent{} },
	EventMemberRejected:    func() Event { return &MemberRejectedEvent{} },
	EventMemberLeft:        func() Event { return &MemberLeftEvent{} },
	EventMemberReactivated: func() Event { return &MemberReactivatedEvent{} },
}

// Decode unmarshals payload into the concrete event struct for eventType.
// Unknown tags return an error; the caller decides whether that is fatal.
func Decode(eventType EventType, payload []byte) (Event, error) {
	factory, ok := decoders[eventType]
	if !ok {
		return nil, fmt.Errorf("unknown event type %q", eventType)
	}
	e := factory()
	if err := json.Unmarshal(payload, e); err != nil {
		return nil, fmt.Errorf("decode %s: %w", eventType, err)
	}
	return e, nil
}

// IsRetired reports whether eventType belongs to a decommissioned feature.
func IsRetired(eventType EventType) bool {
	switch eventType {
	case EventMemberXPGained, EventLeagueSeasonReset:
		return true
	}
	return false
}
