package services

import (
	portsrepo "github.com/SscSPs/movement_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// events may be nil, in which case lifecycle events are dropped.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, store portsrepo.FileStore, events portssvc.EventSink) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The authorizer is shared, every other service depends on it
	container.Authorization = NewAuthorizationService(repos.AreaRepo)
	authorizer := container.Authorization

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	container.Area = NewAreaService(repos.AreaRepo, repos.UserRepo, authorizer)
	container.BankAccount = NewBankAccountService(repos.BankAccountRepo, authorizer)

	container.Movement = NewMovementService(
		repos.MovementRepo,
		repos.ApprovalRepo,
		repos.AreaRepo,
		authorizer,
		WithMovementEventSink(events),
		WithBankAccountRepository(repos.BankAccountRepo),
	)
	container.Draft = NewDraftService(
		repos.MovementRepo,
		repos.ApprovalRepo,
		repos.AreaRepo,
		authorizer,
		WithDraftEventSink(events),
		WithDraftBankAccountRepository(repos.BankAccountRepo),
		WithDefaultCurrency(cfg.DefaultCurrency),
	)

	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		repos.AreaRepo,
		authorizer,
		WithReportCurrency(cfg.DefaultCurrency),
	)
	container.Attachment = NewAttachmentService(repos.AttachmentRepo, repos.MovementRepo, store, authorizer)

	return container
}
