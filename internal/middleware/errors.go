package middleware

import (
	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every error returned to clients.
type ErrorResponse struct {
	Error string         `json:"error"`
	Kind  apperrors.Kind `json:"kind"`
}

// NewErrorResponse builds the client body for err.
func NewErrorResponse(err error) ErrorResponse {
	return ErrorResponse{Error: apperrors.Message(err), Kind: apperrors.KindOf(err)}
}

// AbortWithError stops the chain and writes err as JSON with its mapped status.
func AbortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperrors.HTTPStatus(err), NewErrorResponse(err))
}
