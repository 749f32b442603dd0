package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaguehub/internal/domain/league"
	league_errors "leaguehub/pkg/errors"
)

func TestCheckCapacityUnlimited(t *testing.T) {
	l := &league.League{Name: "Open Ladder"}
	assert.NoError(t, CheckCapacity(l, 1_000_000))
}

func TestCheckCapacityHasRoom(t *testing.T) {
	l := &league.League{Name: "Weekly Cup", MaxPlayers: intPtr(10)}
	assert.NoError(t, CheckCapacity(l, 9))
}

func TestCheckCapacityFull(t *testing.T) {
	l := &league.League{Name: "Weekly Cup", MaxPlayers: intPtr(5)}

	err := CheckCapacity(l, 5)
	require.Error(t, err)
	assert.True(t, league_errors.IsValidation(err))
	assert.Contains(t, err.Error(), "full (5/5 players)")
}

func TestCheckCapacityFullAndAutoClosed(t *testing.T) {
	l := &league.League{Name: "Weekly Cup", MaxPlayers: intPtr(5), AutoCloseOnFull: true}

	err := CheckCapacity(l, 5)
	require.Error(t, err)
	assert.True(t, league_errors.IsValidation(err))
	assert.Contains(t, err.Error(), "full and registration has been closed")
	assert.NotContains(t, err.Error(), "5/5")
}

func intPtr(v int) *int { return &v }

func f64Ptr(v float64) *float64 { return &v }
