package outbox

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "leaguehub/internal/domain/outbox"
)

type failureCall struct {
	id  uuid.UUID
	msg string
}

// outboxRepoMock records every repository call so tests can assert the exact
// status writes a scenario produced.
type outboxRepoMock struct {
	mu sync.Mutex

	pending    []domain.OutboxEvent
	pendingErr error
	claimLost  map[uuid.UUID]bool

	created         []*domain.OutboxEvent
	createdTx       []*gorm.DB
	getPendingCalls int
	claimed         []uuid.UUID
	completed       []uuid.UUID
	retried         []failureCall
	failed          []failureCall
}

func newOutboxRepoMock() *outboxRepoMock {
	return &outboxRepoMock{claimLost: make(map[uuid.UUID]bool)}
}

func (m *outboxRepoMock) Create(ctx context.Context, tx *gorm.DB, event *domain.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, event)
	m.createdTx = append(m.createdTx, tx)
	return nil
}

func (m *outboxRepoMock) GetPending(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getPendingCalls++
	if m.pendingErr != nil {
		return nil, m.pendingErr
	}
	if len(m.pending) > limit {
		return m.pending[:limit], nil
	}
	return m.pending, nil
}

func (m *outboxRepoMock) MarkProcessing(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claimLost[id] {
		return false, nil
	}
	m.claimed = append(m.claimed, id)
	return true, nil
}

func (m *outboxRepoMock) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed = append(m.completed, id)
	return nil
}

func (m *outboxRepoMock) MarkRetry(ctx context.Context, id uuid.UUID, errorMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retried = append(m.retried, failureCall{id: id, msg: errorMsg})
	return nil
}

func (m *outboxRepoMock) MarkFailed(ctx context.Context, id uuid.UUID, errorMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = append(m.failed, failureCall{id: id, msg: errorMsg})
	return nil
}

func (m *outboxRepoMock) ListFailed(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	return nil, nil
}
