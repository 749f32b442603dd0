package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaguehub/internal/domain/league"
	league_errors "leaguehub/pkg/errors"
)

func TestCheckRegistrationWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	t.Run("open with no dates", func(t *testing.T) {
		l := &league.League{Name: "Spring Split", RegistrationOpen: true}
		assert.NoError(t, CheckRegistrationWindow(l, now))
	})

	t.Run("closed flag wins", func(t *testing.T) {
		l := &league.League{Name: "Spring Split", RegistrationOpen: false}
		err := CheckRegistrationWindow(l, now)
		require.Error(t, err)
		assert.True(t, league_errors.IsValidation(err))
		assert.Contains(t, err.Error(), "registration is closed")
	})

	t.Run("before start date", func(t *testing.T) {
		l := &league.League{Name: "Spring Split", RegistrationOpen: true, RegistrationStartDate: &future}
		err := CheckRegistrationWindow(l, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "opens at")
	})

	t.Run("after end date", func(t *testing.T) {
		l := &league.League{Name: "Spring Split", RegistrationOpen: true, RegistrationEndDate: &past}
		err := CheckRegistrationWindow(l, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ended at")
	})

	t.Run("inside window", func(t *testing.T) {
		l := &league.League{
			Name:                  "Spring Split",
			RegistrationOpen:      true,
			RegistrationStartDate: &past,
			RegistrationEndDate:   &future,
		}
		assert.NoError(t, CheckRegistrationWindow(l, now))
	})
}
