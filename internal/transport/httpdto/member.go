package httpdto

import (
	"time"

	"leaguehub/internal/domain/member"
)

type JoinLeagueRequest struct {
	PlayerID string `json:"player_id" binding:"required,uuid"`
}

type LeaveLeagueRequest struct {
	PlayerID string `json:"player_id" binding:"required,uuid"`
}

type MemberView struct {
	ID         string     `json:"id"`
	PlayerID   string     `json:"player_id"`
	LeagueID   string     `json:"league_id"`
	Status     string     `json:"status"`
	Role       string     `json:"role"`
	JoinedAt   time.Time  `json:"joined_at"`
	LeftAt     *time.Time `json:"left_at,omitempty"`
	ApprovedBy string     `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}

func FromMember(m member.LeagueMember) MemberView {
	view := MemberView{
		ID:         m.ID.String(),
		PlayerID:   m.PlayerID.String(),
		LeagueID:   m.LeagueID.String(),
		Status:     string(m.Status),
		Role:       m.Role,
		JoinedAt:   m.JoinedAt,
		LeftAt:     m.LeftAt,
		ApprovedAt: m.ApprovedAt,
	}
	if m.ApprovedBy.Valid {
		view.ApprovedBy = m.ApprovedBy.UUID.String()
	}
	return view
}

func FromMemberSlice(members []member.LeagueMember) []MemberView {
	views := make([]MemberView, 0, len(members))
	for _, m := range members {
		views = append(views, FromMember(m))
	}
	return views
}

type ListMembersResponse struct {
	Members []MemberView `json:"members"`
	Total   int64        `json:"total"`
}
