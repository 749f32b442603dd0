package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"leaguehub/internal/domain/activity"
	"leaguehub/internal/domain/league"
	"leaguehub/internal/domain/member"
	"leaguehub/internal/domain/outbox"
	"leaguehub/internal/domain/player"
	"leaguehub/internal/domain/rating"
)

// Write methods take an optional tx so multi-table changes can share one
// transaction; a nil tx falls back to the repository's own handle.

type OutboxRepository interface {
	Create(ctx context.Context, tx *gorm.DB, event *outbox.OutboxEvent) error
	GetPending(ctx context.Context, limit int) ([]outbox.OutboxEvent, error)
	// MarkProcessing claims the event with a conditional update and reports
	// whether this caller won the claim.
	MarkProcessing(ctx context.Context, id uuid.UUID) (bool, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) error
	// MarkRetry returns the event to PENDING with the failure recorded and the
	// retry count incremented.
	MarkRetry(ctx context.Context, id uuid.UUID, errorMsg string) error
	MarkFailed(ctx context.Context, id uuid.UUID, errorMsg string) error
	ListFailed(ctx context.Context, limit int) ([]outbox.OutboxEvent, error)
}

type LeagueRepository interface {
	Create(ctx context.Context, l *league.League) error
	GetByID(ctx context.Context, id uuid.UUID) (league.League, error)
	ListByGuild(ctx context.Context, guildID string) ([]league.League, error)
}

type MemberRepository interface {
	Create(ctx context.Context, tx *gorm.DB, m *member.LeagueMember) error
	GetByID(ctx context.Context, id uuid.UUID) (member.LeagueMember, error)
	GetByPlayerAndLeague(ctx context.Context, tx *gorm.DB, playerID, leagueID uuid.UUID) (member.LeagueMember, error)
	Update(ctx context.Context, tx *gorm.DB, m member.LeagueMember) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	CountActive(ctx context.Context, leagueID uuid.UUID) (int64, error)
	CountOtherActive(ctx context.Context, playerID, excludeLeagueID uuid.UUID) (int64, error)
	ListByLeague(ctx context.Context, leagueID uuid.UUID, status member.Status, page, limit int) ([]member.LeagueMember, int64, error)
}

type PlayerRepository interface {
	Create(ctx context.Context, p *player.Player) error
	GetByID(ctx context.Context, id uuid.UUID) (player.Player, error)
	GetByDiscordUserID(ctx context.Context, discordUserID string) (player.Player, error)
	// StampCooldown records when and where the player last left a league, in
	// the caller's transaction.
	StampCooldown(ctx context.Context, tx *gorm.DB, playerID, leagueID uuid.UUID, at time.Time) error
	GetTrackers(ctx context.Context, playerID uuid.UUID) ([]player.Tracker, error)
}

type ActivityRepository interface {
	Create(ctx context.Context, tx *gorm.DB, e *activity.Entry) error
	ListByLeague(ctx context.Context, leagueID uuid.UUID, limit int) ([]activity.Entry, error)
}

type RatingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, r *rating.LeagueRating) error
	GetByLeagueAndPlayer(ctx context.Context, leagueID, playerID uuid.UUID) (rating.LeagueRating, error)
}
