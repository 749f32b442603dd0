package outbox

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "leaguehub/internal/domain/outbox"
	"leaguehub/internal/events"
)

func TestWriterAppendCreatesPendingEvent(t *testing.T) {
	repo := newOutboxRepoMock()
	w := NewWriter(repo)

	leagueID := uuid.New()
	payload := events.MemberJoinedEvent{Status: "ACTIVE"}
	e, err := w.Append(context.Background(), nil, "League", leagueID.String(), events.EventMemberJoined, payload)
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Same(t, e, repo.created[0])
	assert.Equal(t, domain.StatusPending, e.Status)
	assert.Equal(t, "League", e.SourceType)
	assert.Equal(t, leagueID.String(), e.SourceID)
	assert.Equal(t, string(events.EventMemberJoined), e.EventType)
	assert.Zero(t, e.RetryCount)
	assert.Nil(t, e.ProcessedAt)

	var decoded events.MemberJoinedEvent
	require.NoError(t, json.Unmarshal(e.Payload, &decoded))
	assert.Equal(t, "ACTIVE", decoded.Status)
}

func TestWriterAppendUsesCallerTx(t *testing.T) {
	repo := newOutboxRepoMock()
	w := NewWriter(repo)

	tx := &gorm.DB{}
	_, err := w.Append(context.Background(), tx, "League", uuid.NewString(), events.EventMemberJoined, nil)
	require.NoError(t, err)
	require.Len(t, repo.createdTx, 1)
	assert.Same(t, tx, repo.createdTx[0])
}

func TestWriterAppendNilPayload(t *testing.T) {
	repo := newOutboxRepoMock()
	w := NewWriter(repo)

	e, err := w.Append(context.Background(), nil, "Player", uuid.NewString(), events.EventMemberLeft, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(e.Payload))
}
