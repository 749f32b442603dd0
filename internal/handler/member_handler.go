package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leaguehub/internal/domain/member"
	"leaguehub/internal/middleware"
	"leaguehub/internal/repository"
	"leaguehub/internal/services"
	"leaguehub/internal/transport/httpdto"
	"leaguehub/pkg/logger"
)

type MemberHandler struct {
	service *services.MembershipService
	members repository.MemberRepository
	log     *logger.Logger
}

func NewMemberHandler(service *services.MembershipService, members repository.MemberRepository, log *logger.Logger) *MemberHandler {
	return &MemberHandler{service: service, members: members, log: log}
}

// Join handles POST /leagues/:id/members
func (h *MemberHandler) Join(c *gin.Context) {
	leagueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid league id", "INVALID_REQUEST"))
		return
	}

	var req httpdto.JoinLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	playerID, err := uuid.Parse(req.PlayerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid player id", "INVALID_REQUEST"))
		return
	}

	result, err := h.service.Join(c.Request.Context(), playerID, leagueID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromMember(result.Member)))
}

// Leave handles POST /leagues/:id/leave
func (h *MemberHandler) Leave(c *gin.Context) {
	leagueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid league id", "INVALID_REQUEST"))
		return
	}

	var req httpdto.LeaveLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	playerID, err := uuid.Parse(req.PlayerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid player id", "INVALID_REQUEST"))
		return
	}

	m, err := h.service.Leave(c.Request.Context(), playerID, leagueID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromMember(m)))
}

// Approve handles POST /members/:id/approve (admin)
func (h *MemberHandler) Approve(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid member id", "INVALID_REQUEST"))
		return
	}
	approverID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	result, err := h.service.Approve(c.Request.Context(), memberID, approverID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromMember(result.Member)))
}

// Reject handles POST /members/:id/reject (admin)
func (h *MemberHandler) Reject(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid member id", "INVALID_REQUEST"))
		return
	}
	actorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	if err := h.service.Reject(c.Request.Context(), memberID, actorID); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"rejected": true}))
}

// Get handles GET /members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid member id", "INVALID_REQUEST"))
		return
	}
	m, err := h.members.GetByID(c.Request.Context(), memberID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromMember(m)))
}

// List handles GET /leagues/:id/members
func (h *MemberHandler) List(c *gin.Context) {
	leagueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid league id", "INVALID_REQUEST"))
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	status := member.Status(c.Query("status"))

	items, total, err := h.members.ListByLeague(c.Request.Context(), leagueID, status, page, limit)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListMembersResponse{
		Members: httpdto.FromMemberSlice(items),
		Total:   total,
	}))
}
