package services

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/movement_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.AuthorizationSvc
	Events     portssvc.EventSink
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// RequireVerified fails with Forbidden when the caller's email is not verified.
func (s *BaseService) RequireVerified(caller domain.Caller) error {
	if caller.UserID == "" {
		return apperrors.NewUnauthorizedError("authentication required")
	}
	if !caller.EmailVerified {
		return apperrors.NewAppError(http.StatusForbidden, "email_not_verified", apperrors.ErrEmailNotVerified)
	}
	return nil
}

// RequireAdmin fails with Forbidden when the caller is not a global admin.
func (s *BaseService) RequireAdmin(caller domain.Caller) error {
	if err := s.RequireVerified(caller); err != nil {
		return err
	}
	if !caller.IsAdmin {
		return apperrors.NewForbiddenError("administrator access required")
	}
	return nil
}

// Emit publishes events after a commit. Failures are logged and dropped.
func (s *BaseService) Emit(ctx context.Context, events ...domain.MovementEvent) {
	if s.Events == nil {
		return
	}
	for _, event := range events {
		if err := s.Events.Publish(ctx, event); err != nil {
			s.LogError(ctx, err, "Failed to publish movement event",
				slog.String("event", string(event.Type)),
				slog.String("movement_id", event.MovementID))
		}
	}
}

// WithTx runs fn inside a transaction, committing when it returns nil.
func (s *BaseService) WithTx(ctx context.Context, tm portsrepo.TransactionManager, fn func(tx pgx.Tx) error) error {
	tx, err := tm.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction")
		return err
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tm.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to rollback transaction")
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tm.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit transaction")
		return err
	}
	committed = true
	return nil
}

// now is the clock used for audit stamps.
func now() time.Time {
	return time.Now().UTC()
}

// dateOnly truncates t to its calendar day in UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dedupe collapses repeated ids, keeping first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
