package httpdto

import (
	"time"

	"leaguehub/internal/domain/league"
	"leaguehub/internal/domain/outbox"
)

type LeagueView struct {
	ID               string    `json:"id"`
	GuildID          string    `json:"guild_id"`
	Name             string    `json:"name"`
	Game             string    `json:"game,omitempty"`
	RegistrationOpen bool      `json:"registration_open"`
	MaxPlayers       *int      `json:"max_players,omitempty"`
	JoinMethod       string    `json:"join_method"`
	RequiresApproval bool      `json:"requires_approval"`
	CreatedAt        time.Time `json:"created_at"`
}

func FromLeague(l league.League) LeagueView {
	return LeagueView{
		ID:               l.ID.String(),
		GuildID:          l.GuildID,
		Name:             l.Name,
		Game:             l.Game,
		RegistrationOpen: l.RegistrationOpen,
		MaxPlayers:       l.MaxPlayers,
		JoinMethod:       string(l.JoinMethod),
		RequiresApproval: l.RequiresApproval,
		CreatedAt:        l.CreatedAt,
	}
}

func FromLeagueSlice(leagues []league.League) []LeagueView {
	views := make([]LeagueView, 0, len(leagues))
	for _, l := range leagues {
		views = append(views, FromLeague(l))
	}
	return views
}

type OutboxEventView struct {
	ID         string    `json:"id"`
	SourceType string    `json:"source_type"`
	SourceID   string    `json:"source_id"`
	EventType  string    `json:"event_type"`
	Status     string    `json:"status"`
	RetryCount int       `json:"retry_count"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromOutboxEvent(e outbox.OutboxEvent) OutboxEventView {
	return OutboxEventView{
		ID:         e.ID.String(),
		SourceType: e.SourceType,
		SourceID:   e.SourceID,
		EventType:  e.EventType,
		Status:     string(e.Status),
		RetryCount: e.RetryCount,
		Error:      e.Error,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func FromOutboxEventSlice(events []outbox.OutboxEvent) []OutboxEventView {
	views := make([]OutboxEventView, 0, len(events))
	for _, e := range events {
		views = append(views, FromOutboxEvent(e))
	}
	return views
}
