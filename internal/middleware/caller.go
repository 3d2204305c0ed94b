package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// UserLoader is the part of the user service the caller middleware needs.
type UserLoader interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// WithUserID stores the authenticated user id in ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// RequireCaller loads the authenticated user and stores the resulting
// domain.Caller. Deleted or unknown users are treated as unauthenticated.
// It must run after AuthMiddleware.
func RequireCaller(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			AbortWithError(c, apperrors.NewUnauthorizedError("Unauthorized"))
			return
		}

		user, err := users.GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				GetLoggerFromCtx(ctx).Warn("Token subject does not match a live user")
				AbortWithError(c, apperrors.NewUnauthorizedError("Unauthorized"))
				return
			}
			GetLoggerFromCtx(ctx).Error("Failed to load caller", slog.String("error", err.Error()))
			AbortWithError(c, err)
			return
		}
		if user.DeletedAt != nil {
			AbortWithError(c, apperrors.NewUnauthorizedError("Unauthorized"))
			return
		}

		c.Request = c.Request.WithContext(WithCaller(ctx, domain.CallerFromUser(user)))
		c.Next()
	}
}

// RequireVerified rejects callers whose email is not verified.
func RequireVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := GetCallerFromContext(c)
		if !ok {
			AbortWithError(c, apperrors.NewUnauthorizedError("Unauthorized"))
			return
		}
		if !caller.EmailVerified {
			AbortWithError(c, apperrors.NewAppError(http.StatusForbidden, "email_not_verified", apperrors.ErrEmailNotVerified))
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects callers that are not global administrators.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := GetCallerFromContext(c)
		if !ok {
			AbortWithError(c, apperrors.NewUnauthorizedError("Unauthorized"))
			return
		}
		if !caller.IsAdmin {
			AbortWithError(c, apperrors.NewForbiddenError("administrator access required"))
			return
		}
		c.Next()
	}
}
