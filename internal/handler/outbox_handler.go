package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"leaguehub/internal/repository"
	"leaguehub/internal/transport/httpdto"
	"leaguehub/pkg/logger"
)

// OutboxHandler exposes the failed-event list so operators can triage events
// frozen at the retry ceiling.
type OutboxHandler struct {
	outbox repository.OutboxRepository
	log    *logger.Logger
}

func NewOutboxHandler(outbox repository.OutboxRepository, log *logger.Logger) *OutboxHandler {
	return &OutboxHandler{outbox: outbox, log: log}
}

// ListFailed handles GET /admin/outbox/failed
func (h *OutboxHandler) ListFailed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	events, err := h.outbox.ListFailed(c.Request.Context(), limit)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromOutboxEventSlice(events)))
}
