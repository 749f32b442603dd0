package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"leaguehub/internal/domain/outbox"
)

type outboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *outboxRepository) Create(ctx context.Context, tx *gorm.DB, event *outbox.OutboxEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Status == "" {
		event.Status = outbox.StatusPending
	}
	return r.handle(tx).WithContext(ctx).Create(event).Error
}

func (r *outboxRepository) GetPending(ctx context.Context, limit int) ([]outbox.OutboxEvent, error) {
	var events []outbox.OutboxEvent
	err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// MarkProcessing claims the event. The WHERE status = 'PENDING' condition makes
// the claim atomic: when a second dispatcher instance races on the same row,
// exactly one caller sees RowsAffected = 1.
func (r *outboxRepository) MarkProcessing(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&outbox.OutboxEvent{}).
		Where("id = ? AND status = ?", id, outbox.StatusPending).
		Updates(map[string]interface{}{
			"status":     outbox.StatusProcessing,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *outboxRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&outbox.OutboxEvent{}).
		Where("id = ? AND status = ?", id, outbox.StatusProcessing).
		Updates(map[string]interface{}{
			"status":       outbox.StatusCompleted,
			"processed_at": &now,
			"updated_at":   now,
		}).Error
}

func (r *outboxRepository) MarkRetry(ctx context.Context, id uuid.UUID, errorMsg string) error {
	return r.db.WithContext(ctx).Model(&outbox.OutboxEvent{}).
		Where("id = ? AND status = ?", id, outbox.StatusProcessing).
		Updates(map[string]interface{}{
			"status":      outbox.StatusPending,
			"retry_count": gorm.Expr("retry_count + 1"),
			"error":       errorMsg,
			"updated_at":  time.Now(),
		}).Error
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, errorMsg string) error {
	return r.db.WithContext(ctx).Model(&outbox.OutboxEvent{}).
		Where("id = ? AND status = ?", id, outbox.StatusProcessing).
		Updates(map[string]interface{}{
			"status":     outbox.StatusFailed,
			"error":      errorMsg,
			"updated_at": time.Now(),
		}).Error
}

func (r *outboxRepository) ListFailed(ctx context.Context, limit int) ([]outbox.OutboxEvent, error) {
	var events []outbox.OutboxEvent
	err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusFailed).
		Order("updated_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
