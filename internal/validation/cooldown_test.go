package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaguehub/internal/domain/league"
	"leaguehub/internal/domain/player"
	league_errors "leaguehub/pkg/errors"
)

func TestCheckCooldown(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	sevenDays := intPtr(7)

	t.Run("no cooldown configured", func(t *testing.T) {
		left := now.Add(-time.Hour)
		l := &league.League{Name: "Ladder"}
		p := &player.Player{LastLeftLeagueAt: &left}
		assert.NoError(t, CheckCooldown(l, p, now))
	})

	t.Run("player never left a league", func(t *testing.T) {
		l := &league.League{Name: "Ladder", CooldownAfterLeave: sevenDays}
		assert.NoError(t, CheckCooldown(l, &player.Player{}, now))
	})

	t.Run("elapsed just past the window passes", func(t *testing.T) {
		left := now.Add(-(7*24*time.Hour + time.Second))
		l := &league.League{Name: "Ladder", CooldownAfterLeave: sevenDays}
		p := &player.Player{LastLeftLeagueAt: &left}
		assert.NoError(t, CheckCooldown(l, p, now))
	})

	t.Run("exactly at the boundary fails", func(t *testing.T) {
		left := now.Add(-7 * 24 * time.Hour)
		l := &league.League{Name: "Ladder", CooldownAfterLeave: sevenDays}
		p := &player.Player{LastLeftLeagueAt: &left}

		err := CheckCooldown(l, p, now)
		require.Error(t, err)
		assert.True(t, league_errors.IsValidation(err))
	})

	t.Run("one hour short reports one remaining day", func(t *testing.T) {
		left := now.Add(-(6*24*time.Hour + 23*time.Hour))
		l := &league.League{Name: "Ladder", CooldownAfterLeave: sevenDays}
		p := &player.Player{LastLeftLeagueAt: &left}

		err := CheckCooldown(l, p, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "wait 1 more day(s)")
		assert.Contains(t, err.Error(), "7-day cooldown")
	})

	t.Run("just left reports full window remaining", func(t *testing.T) {
		left := now.Add(-time.Minute)
		l := &league.League{Name: "Ladder", CooldownAfterLeave: sevenDays}
		p := &player.Player{LastLeftLeagueAt: &left}

		err := CheckCooldown(l, p, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "wait 7 more day(s)")
	})
}
