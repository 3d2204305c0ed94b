package pgsql

import (
	portsrepo "github.com/SscSPs/movement_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(dbPool),
		AreaRepo:        newPgxAreaRepository(dbPool),
		BankAccountRepo: newPgxBankAccountRepository(dbPool),
		MovementRepo:    newPgxMovementRepository(dbPool),
		ApprovalRepo:    newPgxApprovalRepository(dbPool),
		AttachmentRepo:  newPgxAttachmentRepository(dbPool),
		ReportingRepo:   newReportingRepository(dbPool),
	}
}
