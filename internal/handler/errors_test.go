package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	league_errors "leaguehub/pkg/errors"
	"leaguehub/pkg/logger"
)

func statusFor(t *testing.T, err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/test", nil)
	writeError(c, logger.NewNop(), err)
	return w.Code
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{league_errors.NewValidationError("league %q is full", "Cup"), http.StatusUnprocessableEntity},
		{fmt.Errorf("league: %w", league_errors.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("member: %w", league_errors.ErrAlreadyExists), http.StatusConflict},
		{fmt.Errorf("request: %w", league_errors.ErrConflict), http.StatusConflict},
		{fmt.Errorf("status: %w", league_errors.ErrInvalidTransition), http.StatusConflict},
		{fmt.Errorf("body: %w", league_errors.ErrInvalidInput), http.StatusBadRequest},
		{league_errors.ErrUnauthorized, http.StatusUnauthorized},
		{league_errors.ErrForbidden, http.StatusForbidden},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		assert.Equal(t, c.code, statusFor(t, c.err), "%v", c.err)
	}
}

func TestWriteErrorKeepsValidationMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/test", nil)

	writeError(c, logger.NewNop(), league_errors.NewValidationError("you must wait 3 more day(s) before joining"))

	assert.Contains(t, w.Body.String(), "you must wait 3 more day(s) before joining")
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	writeError(c, logger.NewNop(), errors.New("pq: connection refused at 10.0.0.3"))

	assert.NotContains(t, w.Body.String(), "10.0.0.3")
	assert.Contains(t, w.Body.String(), "internal error")
}
