package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "leaguehub/internal/domain/outbox"
	"leaguehub/internal/events"
	"leaguehub/pkg/logger"
)

func newTestDispatcher(repo *outboxRepoMock, router *Router, opts Options) *Dispatcher {
	return NewDispatcher(repo, router, logger.NewNop(), opts)
}

func okRouter() *Router {
	r := NewRouter(logger.NewNop())
	handle := func(ctx context.Context, env events.Envelope, evt events.Event) error { return nil }
	r.Handle(events.EventMemberJoined, handle)
	r.Handle(events.EventMemberLeft, handle)
	return r
}

func pendingEvent(retryCount int) domain.OutboxEvent {
	return domain.OutboxEvent{
		ID:         uuid.New(),
		SourceType: "League",
		SourceID:   uuid.NewString(),
		EventType:  string(events.EventMemberJoined),
		Payload:    []byte(`{}`),
		Status:     domain.StatusPending,
		RetryCount: retryCount,
	}
}

func TestRunCycleCompletesHealthyEvent(t *testing.T) {
	repo := newOutboxRepoMock()
	e := pendingEvent(0)
	repo.pending = []domain.OutboxEvent{e}

	d := newTestDispatcher(repo, okRouter(), Options{})
	d.runCycle(context.Background())

	assert.Equal(t, []uuid.UUID{e.ID}, repo.claimed)
	assert.Equal(t, []uuid.UUID{e.ID}, repo.completed)
	assert.Empty(t, repo.retried)
	assert.Empty(t, repo.failed)
}

func TestRunCycleRetriesBelowCeiling(t *testing.T) {
	repo := newOutboxRepoMock()
	e := pendingEvent(0)
	e.EventType = "member.promoted" // no handler registered
	repo.pending = []domain.OutboxEvent{e}

	d := newTestDispatcher(repo, okRouter(), Options{MaxRetries: 3})
	d.runCycle(context.Background())

	require.Len(t, repo.retried, 1)
	assert.Equal(t, e.ID, repo.retried[0].id)
	assert.Contains(t, repo.retried[0].msg, "No handler implemented")
	assert.Empty(t, repo.failed)
	assert.Empty(t, repo.completed)
}

func TestRunCycleFailsAtCeiling(t *testing.T) {
	repo := newOutboxRepoMock()
	e := pendingEvent(3)
	e.EventType = "member.promoted"
	repo.pending = []domain.OutboxEvent{e}

	d := newTestDispatcher(repo, okRouter(), Options{MaxRetries: 3})
	d.runCycle(context.Background())

	require.Len(t, repo.failed, 1)
	assert.Equal(t, e.ID, repo.failed[0].id)
	assert.Contains(t, repo.failed[0].msg, "No handler implemented")
	assert.Empty(t, repo.retried)
}

// An always-failing event is returned to PENDING exactly MaxRetries times and
// then frozen as FAILED, never dropped.
func TestFailingEventExhaustsRetriesThenFreezes(t *testing.T) {
	repo := newOutboxRepoMock()
	router := NewRouter(logger.NewNop())
	router.Handle(events.EventMemberJoined, func(ctx context.Context, env events.Envelope, evt events.Event) error {
		return errors.New("broker unavailable")
	})

	const maxRetries = 3
	d := newTestDispatcher(repo, router, Options{MaxRetries: maxRetries})

	e := pendingEvent(0)
	for attempt := 0; attempt <= maxRetries; attempt++ {
		e.RetryCount = attempt
		repo.pending = []domain.OutboxEvent{e}
		d.runCycle(context.Background())
	}

	assert.Len(t, repo.retried, maxRetries)
	require.Len(t, repo.failed, 1)
	assert.Equal(t, e.ID, repo.failed[0].id)
	assert.Equal(t, "broker unavailable", repo.failed[0].msg)
	assert.Empty(t, repo.completed)
}

func TestRunCycleOneBadEventDoesNotAbortBatch(t *testing.T) {
	repo := newOutboxRepoMock()
	bad := pendingEvent(0)
	bad.EventType = "member.promoted"
	good := pendingEvent(0)
	repo.pending = []domain.OutboxEvent{bad, good}

	d := newTestDispatcher(repo, okRouter(), Options{})
	d.runCycle(context.Background())

	assert.Equal(t, []uuid.UUID{good.ID}, repo.completed)
	require.Len(t, repo.retried, 1)
	assert.Equal(t, bad.ID, repo.retried[0].id)
}

func TestRunCycleSkipsLostClaim(t *testing.T) {
	repo := newOutboxRepoMock()
	e := pendingEvent(0)
	repo.pending = []domain.OutboxEvent{e}
	repo.claimLost[e.ID] = true

	d := newTestDispatcher(repo, okRouter(), Options{})
	d.runCycle(context.Background())

	assert.Empty(t, repo.completed)
	assert.Empty(t, repo.retried)
	assert.Empty(t, repo.failed)
}

func TestRunCycleSkipsWhenAlreadyInFlight(t *testing.T) {
	repo := newOutboxRepoMock()
	repo.pending = []domain.OutboxEvent{pendingEvent(0)}

	d := newTestDispatcher(repo, okRouter(), Options{})
	d.inFlight.Store(true)
	d.runCycle(context.Background())

	assert.Zero(t, repo.getPendingCalls)
	assert.True(t, d.inFlight.Load(), "skipped cycle must not clear the guard it does not own")
}

func TestStartStopDrainsCleanly(t *testing.T) {
	repo := newOutboxRepoMock()
	d := newTestDispatcher(repo, okRouter(), Options{Interval: 10 * time.Millisecond})

	d.Start()
	time.Sleep(50 * time.Millisecond)
	d.Stop()

	assert.GreaterOrEqual(t, repo.getPendingCalls, 1)
	after := repo.getPendingCalls
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, repo.getPendingCalls, "no polls after Stop")
}

func TestStopAbandonsStuckCycleAfterDrainTimeout(t *testing.T) {
	repo := newOutboxRepoMock()
	d := newTestDispatcher(repo, okRouter(), Options{DrainTimeout: 50 * time.Millisecond})

	// Simulate a cycle that never finishes.
	d.inFlight.Store(true)
	d.Start()

	start := time.Now()
	d.Stop()
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
	assert.False(t, d.inFlight.Load())
}

func TestStopIsIdempotent(t *testing.T) {
	repo := newOutboxRepoMock()
	d := newTestDispatcher(repo, okRouter(), Options{Interval: time.Hour})

	d.Start()
	d.Stop()
	d.Stop()
}
