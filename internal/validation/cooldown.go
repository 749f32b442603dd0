package validation

import (
	"math"
	"time"

	"leaguehub/internal/domain/league"
	"leaguehub/internal/domain/player"
	league_errors "leaguehub/pkg/errors"
)

// CheckCooldown verifies the player's wait after leaving their previous league
// has fully elapsed. The elapsed time must exceed the configured window, so a
// join exactly at the boundary still fails.
func CheckCooldown(l *league.League, p *player.Player, now time.Time) error {
	if l.CooldownAfterLeave == nil || p.LastLeftLeagueAt == nil {
		return nil
	}

	cooldown := time.Duration(*l.CooldownAfterLeave) * 24 * time.Hour
	elapsed := now.Sub(*p.LastLeftLeagueAt)
	if elapsed > cooldown {
		return nil
	}

	remaining := cooldown - elapsed
	days := int(math.Ceil(remaining.Hours() / 24))
	if days < 1 {
		days = 1
	}
	return league_errors.NewValidationError(
		"you must wait %d more day(s) before joining: %d-day cooldown after leaving a league",
		days, *l.CooldownAfterLeave)
}
