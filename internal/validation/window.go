package validation

import (
	"time"

	"leaguehub/internal/domain/league"
	league_errors "leaguehub/pkg/errors"
)

// CheckRegistrationWindow verifies the league is accepting registrations at
// now. Stateless; the caller supplies the settings and the clock.
func CheckRegistrationWindow(l *league.League, now time.Time) error {
	if !l.RegistrationOpen {
		return league_errors.NewValidationError("registration is closed for league %q", l.Name)
	}
	if l.RegistrationStartDate != nil && now.Before(*l.RegistrationStartDate) {
		return league_errors.NewValidationError("registration for league %q opens at %s",
			l.Name, l.RegistrationStartDate.Format(time.RFC1123))
	}
	if l.RegistrationEndDate != nil && now.After(*l.RegistrationEndDate) {
		return league_errors.NewValidationError("registration for league %q ended at %s",
			l.Name, l.RegistrationEndDate.Format(time.RFC1123))
	}
	return nil
}
