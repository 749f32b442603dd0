package validation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"leaguehub/internal/domain/league"
	"leaguehub/internal/domain/player"
	"leaguehub/internal/repository"
	league_errors "leaguehub/pkg/errors"
)

// GuildMembershipChecker answers whether a Discord user belongs to a guild.
// Backed by the gateway's presence data; treated as a black box here.
type GuildMembershipChecker interface {
	IsMember(ctx context.Context, guildID, discordUserID string) (bool, error)
}

// JoinValidator sequences the eligibility rules for a join or rejoin,
// short-circuiting on the first violated rule.
type JoinValidator struct {
	leagues repository.LeagueRepository
	players repository.PlayerRepository
	members repository.MemberRepository
	guilds  GuildMembershipChecker
	clock   func() time.Time
}

func NewJoinValidator(
	leagues repository.LeagueRepository,
	players repository.PlayerRepository,
	members repository.MemberRepository,
	guilds GuildMembershipChecker,
) *JoinValidator {
	return &JoinValidator{
		leagues: leagues,
		players: players,
		members: members,
		guilds:  guilds,
		clock:   time.Now,
	}
}

// ValidateJoin returns nil iff the player may join or rejoin the league.
// Failures are ValidationErrors with a player-facing reason; anything else is
// a system error. League-level gates (window, capacity) run before the
// cross-league exclusivity check.
func (v *JoinValidator) ValidateJoin(ctx context.Context, playerID, leagueID uuid.UUID) error {
	l, err := v.leagues.GetByID(ctx, leagueID)
	if err != nil {
		return err
	}
	p, err := v.players.GetByID(ctx, playerID)
	if err != nil {
		return err
	}
	now := v.clock()

	if err := v.checkGuildMembership(ctx, &l, &p); err != nil {
		return err
	}
	if err := checkPlayerStatus(&l, &p); err != nil {
		return err
	}
	if err := v.checkTrackerAndSkill(ctx, &l, &p); err != nil {
		return err
	}
	if err := CheckRegistrationWindow(&l, now); err != nil {
		return err
	}
	if err := v.checkCapacity(ctx, &l); err != nil {
		return err
	}
	if err := v.checkExclusivity(ctx, &l, playerID); err != nil {
		return err
	}
	if err := CheckCooldown(&l, &p, now); err != nil {
		return err
	}
	return checkJoinMethod(&l)
}

func (v *JoinValidator) checkGuildMembership(ctx context.Context, l *league.League, p *player.Player) error {
	if !l.RequireGuildMembership {
		return nil
	}
	isMember, err := v.guilds.IsMember(ctx, l.GuildID, p.DiscordUserID)
	if err != nil {
		return fmt.Errorf("guild membership lookup: %w", err)
	}
	if !isMember {
		return league_errors.NewValidationError("you must be a member of the league's Discord server to join %q", l.Name)
	}
	return nil
}

func checkPlayerStatus(l *league.League, p *player.Player) error {
	if !l.RequireActivePlayer {
		return nil
	}
	if p.Status != player.StatusActive {
		return league_errors.NewValidationError("your account status (%s) does not allow joining leagues", p.Status)
	}
	return nil
}

func (v *JoinValidator) checkTrackerAndSkill(ctx context.Context, l *league.League, p *player.Player) error {
	if !l.RequireTracker && !l.HasSkillRequirement() {
		return nil
	}
	trackers, err := v.players.GetTrackers(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("tracker lookup: %w", err)
	}
	if l.RequireTracker && len(trackers) == 0 {
		return league_errors.NewValidationError("league %q requires a linked skill tracker", l.Name)
	}
	return CheckSkillRequirement(l, trackers)
}

func (v *JoinValidator) checkCapacity(ctx context.Context, l *league.League) error {
	if l.MaxPlayers == nil {
		return nil
	}
	activeCount, err := v.members.CountActive(ctx, l.ID)
	if err != nil {
		return fmt.Errorf("capacity count: %w", err)
	}
	return CheckCapacity(l, activeCount)
}

func (v *JoinValidator) checkExclusivity(ctx context.Context, l *league.League, playerID uuid.UUID) error {
	if l.AllowMultipleLeagues {
		return nil
	}
	others, err := v.members.CountOtherActive(ctx, playerID, l.ID)
	if err != nil {
		return fmt.Errorf("exclusivity count: %w", err)
	}
	if others > 0 {
		return league_errors.NewValidationError("league %q does not allow members of other leagues; leave your current league first", l.Name)
	}
	return nil
}

func checkJoinMethod(l *league.League) error {
	if l.JoinMethod == league.JoinMethodOpen || l.AllowSelfRegistration {
		return nil
	}
	switch l.JoinMethod {
	case league.JoinMethodInviteOnly:
		return league_errors.NewValidationError("league %q is invite-only", l.Name)
	case league.JoinMethodApplication:
		return league_errors.NewValidationError("league %q only accepts joins through an application", l.Name)
	}
	return nil
}
