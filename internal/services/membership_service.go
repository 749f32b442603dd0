package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"leaguehub/internal/domain/activity"
	"leaguehub/internal/domain/league"
	"leaguehub/internal/domain/member"
	"leaguehub/internal/domain/rating"
	"leaguehub/internal/events"
	"leaguehub/internal/outbox"
	"leaguehub/internal/repository"
	"leaguehub/internal/validation"
	league_errors "leaguehub/pkg/errors"
	"leaguehub/pkg/logger"
)

// JoinValidator vets a player's eligibility before any membership row is
// touched. Implemented by validation.JoinValidator.
type JoinValidator interface {
	ValidateJoin(ctx context.Context, playerID, leagueID uuid.UUID) error
}

// RatingBootstrapResult reports the best-effort rating initialization that
// follows an ACTIVE transition. A failed bootstrap is logged and swallowed;
// this type exists so the swallow is visible to callers and tests instead of
// incidental.
type RatingBootstrapResult struct {
	Attempted bool
	Err       error
}

// Swallowed reports whether a bootstrap attempt failed without affecting the
// membership transaction.
func (r RatingBootstrapResult) Swallowed() bool {
	return r.Attempted && r.Err != nil
}

// MembershipResult is the outcome of a join or approve call.
type MembershipResult struct {
	Member          member.LeagueMember
	RatingBootstrap RatingBootstrapResult
}

// MembershipService owns the league-membership state machine and wraps each
// transition's multi-table writes (membership row, activity log, outbox event)
// in one transaction.
type MembershipService struct {
	tx         repository.TxRunner
	members    repository.MemberRepository
	players    repository.PlayerRepository
	leagues    repository.LeagueRepository
	activities repository.ActivityRepository
	ratings    repository.RatingRepository
	outbox     *outbox.Writer
	validator  JoinValidator
	log        *logger.Logger
	clock      func() time.Time
}

func NewMembershipService(
	tx repository.TxRunner,
	members repository.MemberRepository,
	players repository.PlayerRepository,
	leagues repository.LeagueRepository,
	activities repository.ActivityRepository,
	ratings repository.RatingRepository,
	writer *outbox.Writer,
	validator JoinValidator,
	log *logger.Logger,
) *MembershipService {
	return &MembershipService{
		tx:         tx,
		members:    members,
		players:    players,
		leagues:    leagues,
		activities: activities,
		ratings:    ratings,
		outbox:     writer,
		validator:  validator,
		log:        log,
		clock:      time.Now,
	}
}

// Join handles a self-service join or rejoin request.
func (s *MembershipService) Join(ctx context.Context, playerID, leagueID uuid.UUID) (MembershipResult, error) {
	l, err := s.leagues.GetByID(ctx, leagueID)
	if err != nil {
		return MembershipResult{}, err
	}

	existing, err := s.members.GetByPlayerAndLeague(ctx, nil, playerID, leagueID)
	switch {
	case err == nil:
		switch existing.Status {
		case member.StatusActive:
			return MembershipResult{}, fmt.Errorf("already a member of league %q: %w", l.Name, league_errors.ErrAlreadyExists)
		case member.StatusPendingApproval:
			return MembershipResult{}, fmt.Errorf("join request for league %q is already awaiting approval: %w", l.Name, league_errors.ErrConflict)
		case member.StatusSuspended, member.StatusBanned:
			return MembershipResult{}, fmt.Errorf("membership in league %q is %s: %w", l.Name, existing.Status, league_errors.ErrInvalidTransition)
		case member.StatusInactive:
			if err := s.validator.ValidateJoin(ctx, playerID, leagueID); err != nil {
				return MembershipResult{}, err
			}
			return s.reactivate(ctx, &l, existing)
		default:
			return MembershipResult{}, fmt.Errorf("membership in unexpected status %s: %w", existing.Status, league_errors.ErrInvalidTransition)
		}
	case !errors.Is(err, league_errors.ErrNotFound):
		return MembershipResult{}, err
	}

	if err := s.validator.ValidateJoin(ctx, playerID, leagueID); err != nil {
		return MembershipResult{}, err
	}
	return s.create(ctx, &l, playerID)
}

// create inserts a fresh membership. The existence check is repeated inside
// the transaction because the validate-then-write gap admits a concurrent
// join; the unique constraint on (player_id, league_id) is the final arbiter
// and its violation surfaces as ErrAlreadyExists.
func (s *MembershipService) create(ctx context.Context, l *league.League, playerID uuid.UUID) (MembershipResult, error) {
	status := member.StatusActive
	if l.RequiresApproval {
		status = member.StatusPendingApproval
	}
	now := s.clock()

	m := member.LeagueMember{
		ID:       uuid.New(),
		PlayerID: playerID,
		LeagueID: l.ID,
		Status:   status,
		Role:     "MEMBER",
		JoinedAt: now,
	}

	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.members.GetByPlayerAndLeague(ctx, tx, playerID, l.ID); err == nil {
			return fmt.Errorf("membership in league %q: %w", l.Name, league_errors.ErrAlreadyExists)
		} else if !errors.Is(err, league_errors.ErrNotFound) {
			return err
		}

		if err := s.members.Create(ctx, tx, &m); err != nil {
			return err
		}
		if err := s.logActivity(ctx, tx, l.ID, playerID, uuid.NullUUID{}, activity.ActionJoined,
			fmt.Sprintf(`{"status":%q}`, status)); err != nil {
			return err
		}
		_, err := s.outbox.Append(ctx, tx, "League", l.ID.String(), events.EventMemberJoined, events.MemberJoinedEvent{
			BaseEvent: s.baseEvent(l.ID, playerID, m.ID, now),
			Status:    string(status),
		})
		return err
	})
	if err != nil {
		return MembershipResult{}, err
	}

	result := MembershipResult{Member: m}
	if status == member.StatusActive {
		result.RatingBootstrap = s.bootstrapRating(ctx, l.ID, playerID)
	}
	return result, nil
}

// reactivate flips an INACTIVE membership back to ACTIVE, clearing LeftAt.
func (s *MembershipService) reactivate(ctx context.Context, l *league.League, m member.LeagueMember) (MembershipResult, error) {
	now := s.clock()
	m.Status = member.StatusActive
	m.LeftAt = nil
	m.UpdatedAt = now

	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.members.Update(ctx, tx, m); err != nil {
			return err
		}
		if err := s.logActivity(ctx, tx, l.ID, m.PlayerID, uuid.NullUUID{}, activity.ActionReactivated, ""); err != nil {
			return err
		}
		_, err := s.outbox.Append(ctx, tx, "League", l.ID.String(), events.EventMemberReactivated, events.MemberReactivatedEvent{
			BaseEvent: s.baseEvent(l.ID, m.PlayerID, m.ID, now),
		})
		return err
	})
	if err != nil {
		return MembershipResult{}, err
	}

	return MembershipResult{
		Member:          m,
		RatingBootstrap: s.bootstrapRating(ctx, l.ID, m.PlayerID),
	}, nil
}

// Approve moves a PENDING_APPROVAL membership to ACTIVE.
func (s *MembershipService) Approve(ctx context.Context, memberID, approverID uuid.UUID) (MembershipResult, error) {
	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return MembershipResult{}, err
	}
	if m.Status != member.StatusPendingApproval {
		return MembershipResult{}, fmt.Errorf("cannot approve membership in status %s: %w", m.Status, league_errors.ErrInvalidTransition)
	}

	now := s.clock()
	m.Status = member.StatusActive
	m.ApprovedBy = uuid.NullUUID{UUID: approverID, Valid: true}
	m.ApprovedAt = &now
	m.UpdatedAt = now

	err = s.tx.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.members.Update(ctx, tx, m); err != nil {
			return err
		}
		actor := uuid.NullUUID{UUID: approverID, Valid: true}
		if err := s.logActivity(ctx, tx, m.LeagueID, m.PlayerID, actor, activity.ActionApproved, ""); err != nil {
			return err
		}
		_, err := s.outbox.Append(ctx, tx, "League", m.LeagueID.String(), events.EventMemberApproved, events.MemberApprovedEvent{
			BaseEvent:  s.baseEvent(m.LeagueID, m.PlayerID, m.ID, now),
			ApprovedBy: approverID,
		})
		return err
	})
	if err != nil {
		return MembershipResult{}, err
	}

	return MembershipResult{
		Member:          m,
		RatingBootstrap: s.bootstrapRating(ctx, m.LeagueID, m.PlayerID),
	}, nil
}

// Reject removes a PENDING_APPROVAL membership. Unlike leave, rejection of a
// never-approved request is a hard delete.
func (s *MembershipService) Reject(ctx context.Context, memberID, actorID uuid.UUID) error {
	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return err
	}
	if m.Status != member.StatusPendingApproval {
		return fmt.Errorf("cannot reject membership in status %s: %w", m.Status, league_errors.ErrInvalidTransition)
	}

	now := s.clock()
	return s.tx.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.members.Delete(ctx, tx, m.ID); err != nil {
			return err
		}
		actor := uuid.NullUUID{UUID: actorID, Valid: true}
		if err := s.logActivity(ctx, tx, m.LeagueID, m.PlayerID, actor, activity.ActionRejected, ""); err != nil {
			return err
		}
		_, err := s.outbox.Append(ctx, tx, "League", m.LeagueID.String(), events.EventMemberRejected, events.MemberRejectedEvent{
			BaseEvent:  s.baseEvent(m.LeagueID, m.PlayerID, m.ID, now),
			RejectedBy: actorID,
		})
		return err
	})
}

// Leave soft-deletes an ACTIVE membership. When the league configures a
// cooldown, the player's cooldown fields are stamped in the same transaction
// so both commit or neither does.
func (s *MembershipService) Leave(ctx context.Context, playerID, leagueID uuid.UUID) (member.LeagueMember, error) {
	l, err := s.leagues.GetByID(ctx, leagueID)
	if err != nil {
		return member.LeagueMember{}, err
	}
	m, err := s.members.GetByPlayerAndLeague(ctx, nil, playerID, leagueID)
	if err != nil {
		return member.LeagueMember{}, err
	}
	if m.Status != member.StatusActive {
		return member.LeagueMember{}, fmt.Errorf("cannot leave league %q from status %s: %w", l.Name, m.Status, league_errors.ErrInvalidTransition)
	}

	now := s.clock()
	m.Status = member.StatusInactive
	m.LeftAt = &now
	m.UpdatedAt = now

	cooldownDays := 0
	if l.CooldownAfterLeave != nil {
		cooldownDays = *l.CooldownAfterLeave
	}

	err = s.tx.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.members.Update(ctx, tx, m); err != nil {
			return err
		}
		if cooldownDays > 0 {
			if err := s.players.StampCooldown(ctx, tx, playerID, leagueID, now); err != nil {
				return err
			}
		}
		if err := s.logActivity(ctx, tx, leagueID, playerID, uuid.NullUUID{}, activity.ActionLeft, ""); err != nil {
			return err
		}
		_, err := s.outbox.Append(ctx, tx, "League", leagueID.String(), events.EventMemberLeft, events.MemberLeftEvent{
			BaseEvent:    s.baseEvent(leagueID, playerID, m.ID, now),
			CooldownDays: cooldownDays,
		})
		return err
	})
	if err != nil {
		return member.LeagueMember{}, err
	}
	return m, nil
}

// bootstrapRating seeds the member's league rating from their best tracker.
// Runs after the membership transaction commits: the membership is the
// guaranteed invariant, the rating row is a convenience that self-heals when
// the first match result arrives.
func (s *MembershipService) bootstrapRating(ctx context.Context, leagueID, playerID uuid.UUID) RatingBootstrapResult {
	result := RatingBootstrapResult{Attempted: true}

	initial := float64(rating.DefaultInitialRating)
	if trackers, err := s.players.GetTrackers(ctx, playerID); err == nil {
		if best := validation.BestTracker(trackers); best != nil && best.LatestSeason.MMR != nil {
			initial = *best.LatestSeason.MMR
		}
	}

	err := s.ratings.Create(ctx, nil, &rating.LeagueRating{
		ID:       uuid.New(),
		LeagueID: leagueID,
		PlayerID: playerID,
		Rating:   initial,
	})
	if err != nil && !errors.Is(err, league_errors.ErrAlreadyExists) {
		result.Err = err
		s.log.Warnf("rating bootstrap for player %s in league %s failed (swallowed): %v", playerID, leagueID, err)
	}
	return result
}

func (s *MembershipService) logActivity(ctx context.Context, tx *gorm.DB, leagueID, playerID uuid.UUID, actor uuid.NullUUID, action activity.Action, details string) error {
	entry := &activity.Entry{
		ID:       uuid.New(),
		LeagueID: leagueID,
		PlayerID: playerID,
		ActorID:  actor,
		Action:   action,
	}
	if details != "" {
		entry.Details = []byte(details)
	}
	return s.activities.Create(ctx, tx, entry)
}

func (s *MembershipService) baseEvent(leagueID, playerID, memberID uuid.UUID, at time.Time) events.BaseEvent {
	return events.BaseEvent{
		LeagueID: leagueID,
		PlayerID: playerID,
		MemberID: memberID,
		At:       at,
	}
}
