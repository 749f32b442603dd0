package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leaguehub/internal/middleware"
)

// NewRouter wires all HTTP routes. Everything except the health check sits
// behind bearer auth; approve/reject and outbox triage additionally require
// the admin claim.
func NewRouter(
	jwtSecret string,
	leagues *LeagueHandler,
	members *MemberHandler,
	outbox *OutboxHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtSecret))
	{
		api.GET("/leagues/:id", leagues.GetByID)
		api.GET("/guilds/:guildId/leagues", leagues.ListByGuild)

		api.POST("/leagues/:id/members", members.Join)
		api.POST("/leagues/:id/leave", members.Leave)
		api.GET("/leagues/:id/members", members.List)
		api.GET("/members/:id", members.Get)
	}

	admin := api.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/members/:id/approve", members.Approve)
		admin.POST("/members/:id/reject", members.Reject)
		admin.GET("/admin/outbox/failed", outbox.ListFailed)
	}

	return r
}
