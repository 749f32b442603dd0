package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leaguehub/internal/repository"
	"leaguehub/internal/transport/httpdto"
	"leaguehub/pkg/logger"
)

type LeagueHandler struct {
	leagues repository.LeagueRepository
	log     *logger.Logger
}

func NewLeagueHandler(leagues repository.LeagueRepository, log *logger.Logger) *LeagueHandler {
	return &LeagueHandler{leagues: leagues, log: log}
}

// GetByID handles GET /leagues/:id
func (h *LeagueHandler) GetByID(c *gin.Context) {
	leagueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid league id", "INVALID_REQUEST"))
		return
	}
	l, err := h.leagues.GetByID(c.Request.Context(), leagueID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromLeague(l)))
}

// ListByGuild handles GET /guilds/:guildId/leagues
func (h *LeagueHandler) ListByGuild(c *gin.Context) {
	guildID := c.Param("guildId")
	if guildID == "" {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid guild id", "INVALID_REQUEST"))
		return
	}
	leagues, err := h.leagues.ListByGuild(c.Request.Context(), guildID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromLeagueSlice(leagues)))
}
