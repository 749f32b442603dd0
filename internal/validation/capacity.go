package validation

import (
	"leaguehub/internal/domain/league"
	league_errors "leaguehub/pkg/errors"
)

// CheckCapacity verifies the league has a free slot. The two full messages are
// deliberately distinct: "full and closed" means an admin has to reopen
// registration, while the numeric shortfall means the state is transient.
func CheckCapacity(l *league.League, activeCount int64) error {
	if l.MaxPlayers == nil {
		return nil
	}
	if activeCount < int64(*l.MaxPlayers) {
		return nil
	}
	if l.AutoCloseOnFull {
		return league_errors.NewValidationError("league %q is full and registration has been closed", l.Name)
	}
	return league_errors.NewValidationError("league %q is full (%d/%d players)", l.Name, activeCount, *l.MaxPlayers)
}
