package services

import (
	"context"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/SscSPs/movement_tracker/internal/dto"
)

// AreaReaderSvc defines read operations for areas and departments.
type AreaReaderSvc interface {
	GetArea(ctx context.Context, caller domain.Caller, areaID string) (*domain.Area, error)
	// ListAreas returns the areas visible to the caller.
	ListAreas(ctx context.Context, caller domain.Caller) ([]domain.Area, error)
	ListDepartments(ctx context.Context, caller domain.Caller, areaID string) ([]domain.Department, error)
	// ListMyMemberships returns the caller's own area roles.
	ListMyMemberships(ctx context.Context, caller domain.Caller) ([]domain.UserArea, error)
}

// AreaAdminSvc defines administrative operations. All of them require a global admin.
type AreaAdminSvc interface {
	CreateArea(ctx context.Context, caller domain.Caller, req dto.CreateAreaRequest) (*domain.Area, error)
	CreateDepartment(ctx context.Context, caller domain.Caller, areaID string, req dto.CreateDepartmentRequest) (*domain.Department, error)
	SetUserAreaRole(ctx context.Context, caller domain.Caller, areaID string, req dto.SetAreaRoleRequest) (*domain.UserArea, error)
	RemoveUserFromArea(ctx context.Context, caller domain.Caller, areaID, userID string) error
}

// AreaSvcFacade combines all area-related service interfaces
type AreaSvcFacade interface {
	AreaReaderSvc
	AreaAdminSvc
}

// BankAccountSvc manages the bank accounts of an area.
type BankAccountSvc interface {
	// CreateBankAccount requires the caller to manage the area.
	CreateBankAccount(ctx context.Context, caller domain.Caller, areaID string, req dto.CreateBankAccountRequest) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, caller domain.Caller, areaID string) ([]domain.BankAccount, error)
}
