package validation

import (
	"leaguehub/internal/domain/league"
	"leaguehub/internal/domain/player"
	league_errors "leaguehub/pkg/errors"
)

// BestTracker picks the tracker whose most recent season carries the highest
// MMR. Returns nil when no tracker has season data at all.
func BestTracker(trackers []player.Tracker) *player.Tracker {
	var best *player.Tracker
	for i := range trackers {
		t := &trackers[i]
		if t.LatestSeason == nil {
			continue
		}
		if best == nil {
			best = t
			continue
		}
		if mmrOf(t) > mmrOf(best) {
			best = t
		}
	}
	return best
}

func mmrOf(t *player.Tracker) float64 {
	if t.LatestSeason == nil || t.LatestSeason.MMR == nil {
		return 0
	}
	return *t.LatestSeason.MMR
}

// CheckSkillRequirement resolves the configured metric from the player's best
// tracker and verifies it against the league's [min, max] bounds. A metric that
// cannot be resolved is an eligibility failure, not a system error. ELO and
// CUSTOM are unimplemented and fail closed.
func CheckSkillRequirement(l *league.League, trackers []player.Tracker) error {
	if !l.HasSkillRequirement() {
		return nil
	}

	best := BestTracker(trackers)
	if best == nil {
		return league_errors.NewValidationError(
			"league %q requires a %s check but none of your trackers has recorded season data", l.Name, l.SkillMetric)
	}

	var value *float64
	switch l.SkillMetric {
	case league.MetricMMR:
		value = best.LatestSeason.MMR
	case league.MetricRank:
		value = best.LatestSeason.Rank
	case league.MetricElo, league.MetricCustom:
		return league_errors.NewValidationError(
			"skill metric %s is not supported for league requirements", l.SkillMetric)
	default:
		return league_errors.NewValidationError(
			"unrecognized skill metric %q configured for league %q", l.SkillMetric, l.Name)
	}

	if value == nil {
		return league_errors.NewValidationError(
			"your tracker %s has no %s recorded for the most recent season", best.Handle, l.SkillMetric)
	}

	if l.SkillMin != nil && *value < *l.SkillMin {
		return league_errors.NewValidationError(
			"your %s %.0f is below the required minimum of %.0f", l.SkillMetric, *value, *l.SkillMin)
	}
	if l.SkillMax != nil && *value > *l.SkillMax {
		return league_errors.NewValidationError(
			"your %s %.0f is above the allowed maximum of %.0f", l.SkillMetric, *value, *l.SkillMax)
	}
	return nil
}
