package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo        UserRepositoryFacade
	AreaRepo        AreaRepositoryFacade
	BankAccountRepo BankAccountRepositoryFacade
	MovementRepo    MovementRepositoryWithTx
	ApprovalRepo    ApprovalRepository
	AttachmentRepo  AttachmentRepositoryFacade
	ReportingRepo   ReportingRepository
}
