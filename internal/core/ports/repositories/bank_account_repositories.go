package repositories

import (
	"context"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
)

// BankAccountRepositoryFacade stores the bank accounts of each area.
type BankAccountRepositoryFacade interface {
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccountsByArea(ctx context.Context, areaID string) ([]domain.BankAccount, error)
}
