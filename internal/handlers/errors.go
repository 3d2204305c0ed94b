package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/SscSPs/movement_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError writes err with its mapped status. Server errors are logged
// at error level and their detail is never sent to the client.
func respondError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromContext(c)
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()))
	} else {
		logger.Warn(msg, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, middleware.NewErrorResponse(err))
}

// respondBindError reports a request that failed binding or validation.
func respondBindError(c *gin.Context, err error) {
	respondError(c, apperrors.NewBadRequestError("Invalid request: "+err.Error()), "Failed to bind request")
}

// callerOrAbort returns the caller resolved by middleware.RequireCaller.
func callerOrAbort(c *gin.Context) (domain.Caller, bool) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		middleware.AbortWithError(c, apperrors.NewUnauthorizedError("Unauthorized"))
		return domain.Caller{}, false
	}
	return caller, true
}
