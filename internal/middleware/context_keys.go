package middleware

import (
	"context"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID.
const userIDKey = contextKey("userID")

// callerKey holds the resolved domain.Caller.
const callerKey = contextKey("caller")

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// WithCaller stores the resolved caller in ctx.
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// CallerFromCtx returns the caller stored by RequireCaller.
func CallerFromCtx(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(domain.Caller)
	return caller, ok
}

// GetCallerFromContext returns the caller resolved for this request.
func GetCallerFromContext(c *gin.Context) (domain.Caller, bool) {
	return CallerFromCtx(c.Request.Context())
}
