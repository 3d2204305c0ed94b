package services

import (
	"context"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User          UserSvcFacade
	Token         TokenSvcFacade
	GoogleOAuth   GoogleOAuthHandlerSvcFacade
	Authorization AuthorizationSvc
	Area          AreaSvcFacade
	BankAccount   BankAccountSvc
	Movement      MovementSvcFacade
	Draft         DraftSvcFacade
	Reporting     ReportingService
	Attachment    AttachmentSvc
}

// EventSink receives lifecycle events after they are committed.
// Publishing is fire-and-forget for callers: errors are logged, never returned to clients.
type EventSink interface {
	Publish(ctx context.Context, event domain.MovementEvent) error
}
