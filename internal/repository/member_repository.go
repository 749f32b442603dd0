package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"leaguehub/internal/domain/member"
	league_errors "leaguehub/pkg/errors"
)

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create translates a unique-constraint violation on (player_id, league_id)
// into ErrAlreadyExists so a concurrent-join race surfaces as a domain
// conflict, not an infrastructure failure.
func (r *memberRepository) Create(ctx context.Context, tx *gorm.DB, m *member.LeagueMember) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := r.handle(tx).WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("membership for player %s in league %s: %w", m.PlayerID, m.LeagueID, league_errors.ErrAlreadyExists)
		}
		return err
	}
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id uuid.UUID) (member.LeagueMember, error) {
	var m member.LeagueMember
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if isNotFound(err) {
		return member.LeagueMember{}, fmt.Errorf("member %s: %w", id, league_errors.ErrNotFound)
	}
	return m, err
}

func (r *memberRepository) GetByPlayerAndLeague(ctx context.Context, tx *gorm.DB, playerID, leagueID uuid.UUID) (member.LeagueMember, error) {
	var m member.LeagueMember
	err := r.handle(tx).WithContext(ctx).
		First(&m, "player_id = ? AND league_id = ?", playerID, leagueID).Error
	if isNotFound(err) {
		return member.LeagueMember{}, fmt.Errorf("membership: %w", league_errors.ErrNotFound)
	}
	return m, err
}

func (r *memberRepository) Update(ctx context.Context, tx *gorm.DB, m member.LeagueMember) error {
	return r.handle(tx).WithContext(ctx).Save(&m).Error
}

func (r *memberRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.handle(tx).WithContext(ctx).Delete(&member.LeagueMember{}, "id = ?", id).Error
}

func (r *memberRepository) CountActive(ctx context.Context, leagueID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&member.LeagueMember{}).
		Where("league_id = ? AND status = ?", leagueID, member.StatusActive).
		Count(&count).Error
	return count, err
}

func (r *memberRepository) CountOtherActive(ctx context.Context, playerID, excludeLeagueID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&member.LeagueMember{}).
		Where("player_id = ? AND league_id <> ? AND status = ?", playerID, excludeLeagueID, member.StatusActive).
		Count(&count).Error
	return count, err
}

func (r *memberRepository) ListByLeague(ctx context.Context, leagueID uuid.UUID, status member.Status, page, limit int) ([]member.LeagueMember, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	query := r.db.WithContext(ctx).Model(&member.LeagueMember{}).Where("league_id = ?", leagueID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []member.LeagueMember
	err := query.Order("joined_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&members).Error
	return members, total, err
}
