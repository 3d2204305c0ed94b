package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/movement_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/dto"
	"github.com/google/uuid"
)

// areaService implements the AreaSvcFacade interface
type areaService struct {
	BaseService
	areaRepo portsrepo.AreaRepositoryFacade
	userRepo portsrepo.UserReader
}

// NewAreaService creates a new area service with the provided dependencies
func NewAreaService(
	areaRepo portsrepo.AreaRepositoryFacade,
	userRepo portsrepo.UserReader,
	authorizer portssvc.AuthorizationSvc,
) portssvc.AreaSvcFacade {
	return &areaService{
		BaseService: BaseService{Authorizer: authorizer},
		areaRepo:    areaRepo,
		userRepo:    userRepo,
	}
}

// Ensure areaService implements the AreaSvcFacade interface
var _ portssvc.AreaSvcFacade = (*areaService)(nil)

// GetArea retrieves an area the caller can see
func (s *areaService) GetArea(ctx context.Context, caller domain.Caller, areaID string) (*domain.Area, error) {
	if _, err := s.Authorizer.RequireAreaAccess(ctx, caller, areaID); err != nil {
		return nil, err
	}
	area, err := s.areaRepo.FindAreaByID(ctx, areaID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("area not found")
		}
		s.LogError(ctx, err, "Failed to find area by ID", slog.String("area_id", areaID))
		return nil, err
	}
	return area, nil
}

// ListAreas retrieves every area visible to the caller
func (s *areaService) ListAreas(ctx context.Context, caller domain.Caller) ([]domain.Area, error) {
	scope, err := s.Authorizer.AccessibleScope(ctx, caller)
	if err != nil {
		return nil, err
	}
	if scope.IsEmpty() {
		return []domain.Area{}, nil
	}
	areas, err := s.areaRepo.ListAreas(ctx, scope)
	if err != nil {
		s.LogError(ctx, err, "Failed to list areas", slog.String("user_id", caller.UserID))
		return nil, err
	}
	if areas == nil {
		return []domain.Area{}, nil
	}

	s.LogDebug(ctx, "Areas listed successfully",
		slog.Int("count", len(areas)),
		slog.String("user_id", caller.UserID))
	return areas, nil
}

func (s *areaService) ListDepartments(ctx context.Context, caller domain.Caller, areaID string) ([]domain.Department, error) {
	if _, err := s.Authorizer.RequireAreaAccess(ctx, caller, areaID); err != nil {
		return nil, err
	}
	departments, err := s.areaRepo.ListDepartmentsByArea(ctx, areaID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list departments", slog.String("area_id", areaID))
		return nil, err
	}
	if departments == nil {
		return []domain.Department{}, nil
	}
	return departments, nil
}

func (s *areaService) ListMyMemberships(ctx context.Context, caller domain.Caller) ([]domain.UserArea, error) {
	memberships, err := s.areaRepo.ListUserAreas(ctx, caller.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list memberships", slog.String("user_id", caller.UserID))
		return nil, err
	}
	if memberships == nil {
		return []domain.UserArea{}, nil
	}
	return memberships, nil
}

// CreateArea creates a new area
func (s *areaService) CreateArea(ctx context.Context, caller domain.Caller, req dto.CreateAreaRequest) (*domain.Area, error) {
	if err := s.RequireAdmin(caller); err != nil {
		return nil, err
	}

	area := domain.Area{
		AreaID:      uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
		AuditFields: domain.NewAuditFields(caller.UserID, now()),
	}
	if err := s.areaRepo.SaveArea(ctx, area); err != nil {
		s.LogError(ctx, err, "Failed to save area", slog.String("area_id", area.AreaID))
		return nil, err
	}

	s.LogInfo(ctx, "Area created successfully",
		slog.String("area_id", area.AreaID),
		slog.String("creator_id", caller.UserID))
	return &area, nil
}

// CreateDepartment adds a department to an area. Codes are unique per area.
func (s *areaService) CreateDepartment(ctx context.Context, caller domain.Caller, areaID string, req dto.CreateDepartmentRequest) (*domain.Department, error) {
	if err := s.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if _, err := s.Authorizer.RequireAreaAccess(ctx, caller, areaID); err != nil {
		return nil, err
	}

	department := domain.Department{
		DepartmentID: uuid.NewString(),
		AreaID:       areaID,
		Code:         strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:         strings.TrimSpace(req.Name),
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(caller.UserID, now()),
	}
	if err := s.areaRepo.SaveDepartment(ctx, department); err != nil {
		if apperrors.KindOf(err) == apperrors.KindConflict {
			return nil, apperrors.NewConflictError("department code already exists in this area")
		}
		s.LogError(ctx, err, "Failed to save department", slog.String("area_id", areaID))
		return nil, err
	}

	s.LogInfo(ctx, "Department created",
		slog.String("department_id", department.DepartmentID),
		slog.String("area_id", areaID))
	return &department, nil
}

// SetUserAreaRole adds a user to an area or changes their role there
func (s *areaService) SetUserAreaRole(ctx context.Context, caller domain.Caller, areaID string, req dto.SetAreaRoleRequest) (*domain.UserArea, error) {
	if err := s.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if !req.Role.IsValid() {
		return nil, apperrors.NewBadRequestError("invalid area role")
	}
	if _, err := s.Authorizer.RequireAreaAccess(ctx, caller, areaID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindUserByID(ctx, req.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewBadRequestError("user not found")
		}
		return nil, err
	}

	membership := domain.UserArea{
		UserID:   req.UserID,
		AreaID:   areaID,
		Role:     req.Role,
		JoinedAt: now(),
	}
	if err := s.areaRepo.SetUserAreaRole(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to set area role",
			slog.String("area_id", areaID),
			slog.String("user_id", req.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "Area role set",
		slog.String("area_id", areaID),
		slog.String("user_id", req.UserID),
		slog.String("role", string(req.Role)))
	return &membership, nil
}

func (s *areaService) RemoveUserFromArea(ctx context.Context, caller domain.Caller, areaID, userID string) error {
	if err := s.RequireAdmin(caller); err != nil {
		return err
	}
	if err := s.areaRepo.RemoveUserFromArea(ctx, userID, areaID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("membership not found")
		}
		s.LogError(ctx, err, "Failed to remove user from area",
			slog.String("area_id", areaID),
			slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "User removed from area",
		slog.String("area_id", areaID),
		slog.String("user_id", userID))
	return nil
}

// bankAccountService implements the BankAccountSvc interface
type bankAccountService struct {
	BaseService
	bankRepo portsrepo.BankAccountRepositoryFacade
}

// NewBankAccountService creates the bank account service
func NewBankAccountService(bankRepo portsrepo.BankAccountRepositoryFacade, authorizer portssvc.AuthorizationSvc) portssvc.BankAccountSvc {
	return &bankAccountService{
		BaseService: BaseService{Authorizer: authorizer},
		bankRepo:    bankRepo,
	}
}

var _ portssvc.BankAccountSvc = (*bankAccountService)(nil)

func (s *bankAccountService) CreateBankAccount(ctx context.Context, caller domain.Caller, areaID string, req dto.CreateBankAccountRequest) (*domain.BankAccount, error) {
	if err := s.RequireVerified(caller); err != nil {
		return nil, err
	}
	if err := s.Authorizer.RequireAreaManager(ctx, caller, areaID); err != nil {
		return nil, err
	}

	account := domain.BankAccount{
		BankAccountID: uuid.NewString(),
		AreaID:        areaID,
		Name:          strings.TrimSpace(req.Name),
		BankName:      strings.TrimSpace(req.BankName),
		AccountNumber: strings.ReplaceAll(req.AccountNumber, " ", ""),
		CurrencyCode:  strings.ToUpper(req.CurrencyCode),
		IsActive:      true,
		AuditFields:   domain.NewAuditFields(caller.UserID, now()),
	}
	if err := s.bankRepo.SaveBankAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save bank account", slog.String("area_id", areaID))
		return nil, err
	}
	s.LogInfo(ctx, "Bank account created",
		slog.String("bank_account_id", account.BankAccountID),
		slog.String("area_id", areaID))
	return &account, nil
}

func (s *bankAccountService) ListBankAccounts(ctx context.Context, caller domain.Caller, areaID string) ([]domain.BankAccount, error) {
	if _, err := s.Authorizer.RequireAreaAccess(ctx, caller, areaID); err != nil {
		return nil, err
	}
	accounts, err := s.bankRepo.ListBankAccountsByArea(ctx, areaID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank accounts", slog.String("area_id", areaID))
		return nil, err
	}
	if accounts == nil {
		return []domain.BankAccount{}, nil
	}
	return accounts, nil
}
