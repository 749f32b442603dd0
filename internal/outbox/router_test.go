package outbox

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "leaguehub/internal/domain/outbox"
	"leaguehub/internal/events"
	"leaguehub/pkg/logger"
)

func joinedOutboxEvent(t *testing.T) domain.OutboxEvent {
	t.Helper()
	return domain.OutboxEvent{
		ID:         uuid.New(),
		SourceType: "League",
		SourceID:   uuid.NewString(),
		EventType:  string(events.EventMemberJoined),
		Payload:    []byte(`{"league_id":"` + uuid.NewString() + `","player_id":"` + uuid.NewString() + `","status":"ACTIVE"}`),
		Status:     domain.StatusProcessing,
		CreatedAt:  time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestRouterDispatchesTypedEvent(t *testing.T) {
	r := NewRouter(logger.NewNop())

	var gotEnv events.Envelope
	var gotEvt events.Event
	r.Handle(events.EventMemberJoined, func(ctx context.Context, env events.Envelope, evt events.Event) error {
		gotEnv = env
		gotEvt = evt
		return nil
	})

	e := joinedOutboxEvent(t)
	require.NoError(t, r.Route(context.Background(), e))

	joined, ok := gotEvt.(*events.MemberJoinedEvent)
	require.True(t, ok)
	assert.Equal(t, "ACTIVE", joined.Status)
	assert.Equal(t, e.SourceID, gotEnv.SourceID)
	assert.Equal(t, "League", gotEnv.SourceType)
	assert.Equal(t, string(events.EventMemberJoined), gotEnv.EventType)
	assert.Equal(t, e.CreatedAt.UTC(), gotEnv.OccurredAt)
}

func TestRouterRetiredTypeIsNoOp(t *testing.T) {
	r := NewRouter(logger.NewNop())

	for _, retired := range []events.EventType{events.EventMemberXPGained, events.EventLeagueSeasonReset} {
		e := domain.OutboxEvent{
			ID:        uuid.New(),
			EventType: string(retired),
			Payload:   []byte(`{"legacy":true}`),
		}
		assert.NoError(t, r.Route(context.Background(), e), retired)
	}
}

func TestRouterUnknownTypeFailsHard(t *testing.T) {
	r := NewRouter(logger.NewNop())

	e := domain.OutboxEvent{
		ID:        uuid.New(),
		EventType: "member.promoted",
		Payload:   []byte(`{}`),
	}
	err := r.Route(context.Background(), e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `No handler implemented for event type "member.promoted"`)
}

func TestRouterDecodeFailure(t *testing.T) {
	r := NewRouter(logger.NewNop())
	r.Handle(events.EventMemberJoined, func(ctx context.Context, env events.Envelope, evt events.Event) error {
		t.Fatal("handler must not run on decode failure")
		return nil
	})

	e := domain.OutboxEvent{
		ID:        uuid.New(),
		EventType: string(events.EventMemberJoined),
		Payload:   []byte(`{not json`),
	}
	require.Error(t, r.Route(context.Background(), e))
}

func TestPublishRouterCoversAllLiveKinds(t *testing.T) {
	pub := &publisherMock{}
	r := NewPublishRouter(pub, logger.NewNop())

	kinds := []events.EventType{
		events.EventMemberJoined,
		events.EventMemberApproved,
		events.EventMemberRejected,
		events.EventMemberLeft,
		events.EventMemberReactivated,
	}
	for _, kind := range kinds {
		e := domain.OutboxEvent{
			ID:         uuid.New(),
			SourceType: "League",
			SourceID:   uuid.NewString(),
			EventType:  string(kind),
			Payload:    []byte(`{}`),
		}
		require.NoError(t, r.Route(context.Background(), e), kind)
	}
	assert.Len(t, pub.published, len(kinds))
	for _, p := range pub.published {
		assert.Contains(t, p.channel, "channel:league:")
	}
}

type publishedMsg struct {
	channel string
	payload []byte
}

type publisherMock struct {
	published []publishedMsg
	err       error
}

func (m *publisherMock) Publish(ctx context.Context, channel string, payload []byte) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, publishedMsg{channel: channel, payload: payload})
	return nil
}
