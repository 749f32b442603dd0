package league

import (
	"time"

	"github.com/google/uuid"
)

// JoinMethod controls how players get into a league.
type JoinMethod string

const (
	JoinMethodOpen        JoinMethod = "OPEN"
	JoinMethodApplication JoinMethod = "APPLICATION"
	JoinMethodInviteOnly  JoinMethod = "INVITE_ONLY"
)

// SkillMetric identifies which tracker statistic a league gates on.
type SkillMetric string

const (
	MetricMMR    SkillMetric = "MMR"
	MetricRank   SkillMetric = "RANK"
	MetricElo    SkillMetric = "ELO"
	MetricCustom SkillMetric = "CUSTOM"
)

// League represents the leagues table. The settings columns drive the join
// eligibility rules; the rest is display metadata.
type League struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	GuildID string    `gorm:"type:varchar(32);not null;index"`
	Name    string    `gorm:"type:varchar(100);not null"`
	Game    string    `gorm:"type:varchar(50)"`

	RegistrationOpen      bool `gorm:"not null;default:true"`
	RegistrationStartDate *time.Time
	RegistrationEndDate   *time.Time
	MaxPlayers            *int
	AutoCloseOnFull       bool `gorm:"not null;default:false"`
	AllowMultipleLeagues  bool `gorm:"not null;default:true"`
	CooldownAfterLeave    *int // days

	RequireGuildMembership bool       `gorm:"not null;default:true"`
	RequireActivePlayer    bool       `gorm:"not null;default:true"`
	RequiresApproval       bool       `gorm:"not null;default:false"`
	JoinMethod             JoinMethod `gorm:"type:varchar(20);not null;default:'OPEN'"`
	AllowSelfRegistration  bool       `gorm:"not null;default:true"`

	RequireTracker bool        `gorm:"not null;default:false"`
	SkillMetric    SkillMetric `gorm:"type:varchar(20)"`
	SkillMin       *float64
	SkillMax       *float64

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (League) TableName() string {
	return "leagues"
}

// HasSkillRequirement reports whether a skill gate is configured at all.
func (l *League) HasSkillRequirement() bool {
	return l.SkillMetric != "" && (l.SkillMin != nil || l.SkillMax != nil)
}
