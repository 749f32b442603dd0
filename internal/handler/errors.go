package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"leaguehub/internal/transport/httpdto"
	league_errors "leaguehub/pkg/errors"
	"leaguehub/pkg/logger"
)

// writeError maps the error taxonomy onto HTTP responses. Expected classes
// keep their specific message; anything else is logged with context and
// reported as a generic internal error.
func writeError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case league_errors.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, httpdto.NewErrorResponse(err.Error(), "VALIDATION_FAILED"))
	case errors.Is(err, league_errors.ErrNotFound):
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse(err.Error(), "NOT_FOUND"))
	case errors.Is(err, league_errors.ErrAlreadyExists), errors.Is(err, league_errors.ErrConflict):
		c.JSON(http.StatusConflict, httpdto.NewErrorResponse(err.Error(), "CONFLICT"))
	case errors.Is(err, league_errors.ErrInvalidTransition):
		c.JSON(http.StatusConflict, httpdto.NewErrorResponse(err.Error(), "INVALID_TRANSITION"))
	case errors.Is(err, league_errors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(err.Error(), "INVALID_REQUEST"))
	case errors.Is(err, league_errors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
	case errors.Is(err, league_errors.ErrForbidden):
		c.JSON(http.StatusForbidden, httpdto.NewErrorResponse("forbidden", "FORBIDDEN"))
	default:
		log.Errorf("unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("internal error", "INTERNAL_ERROR"))
	}
}
