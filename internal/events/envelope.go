package events

import (
	"encoding/json"
	"time"
)

// Envelope is the wire format published to Redis channels.
type Envelope struct {
	EventType  string          `json:"event_type"`
	SourceType string          `json:"source_type"`
	SourceID   string          `json:"source_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}
