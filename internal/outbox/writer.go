package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "leaguehub/internal/domain/outbox"
	"leaguehub/internal/events"
	"leaguehub/internal/repository"
)

// Writer appends domain events to the outbox table. Append must be called with
// the transaction that performs the domain mutation, so the event and the state
// change commit or abort together. It never dispatches synchronously.
type Writer struct {
	repo repository.OutboxRepository
}

func NewWriter(repo repository.OutboxRepository) *Writer {
	return &Writer{repo: repo}
}

func (w *Writer) Append(ctx context.Context, tx *gorm.DB, sourceType, sourceID string, eventType events.EventType, payload interface{}) (*domain.OutboxEvent, error) {
	data := []byte("{}")
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal outbox payload: %w", err)
		}
		data = raw
	}

	event := &domain.OutboxEvent{
		ID:         uuid.New(),
		SourceType: sourceType,
		SourceID:   sourceID,
		EventType:  string(eventType),
		Payload:    data,
		Status:     domain.StatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := w.repo.Create(ctx, tx, event); err != nil {
		return nil, err
	}
	return event, nil
}
