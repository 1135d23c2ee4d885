package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
)

// errorResponse is the body of every failed API call.
type errorResponse struct {
	Error string `json:"error"`
	Op    string `json:"op"`
}

func statusFor(err error) int {
	switch {
	case domain.IsPersistence(err):
		return http.StatusInternalServerError
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case domain.IsNotFound(err):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// writeError reports err under op. A persistence failure reports its own op.
func writeError(c *gin.Context, op string, err error) {
	var perr *domain.PersistenceError
	if errors.As(err, &perr) {
		op = perr.Op
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(statusFor(err), errorResponse{Error: err.Error(), Op: op})
}
