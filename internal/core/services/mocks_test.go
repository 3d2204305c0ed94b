package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/movement_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock MovementRepository ---
type MockMovementRepository struct {
	mock.Mock
}

var _ portsrepo.MovementRepositoryWithTx = (*MockMovementRepository)(nil)

func (m *MockMovementRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockMovementRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockMovementRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	args := m.Called(ctx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}

func (m *MockMovementRepository) FindMovementsByIDsForUpdate(ctx context.Context, tx pgx.Tx, movementIDs []string) ([]domain.Movement, error) {
	args := m.Called(ctx, tx, movementIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockMovementRepository) ListMovements(ctx context.Context, filter domain.MovementFilter, limit int, nextToken *string) ([]domain.Movement, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		token := args.Get(1).(string)
		next = &token
	}
	return args.Get(0).([]domain.Movement), next, args.Error(2)
}

func (m *MockMovementRepository) GetDraftStats(ctx context.Context, scope domain.AreaScope) (*domain.DraftStats, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftStats), args.Error(1)
}

func (m *MockMovementRepository) SaveMovement(ctx context.Context, movement domain.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) SaveMovementsTx(ctx context.Context, tx pgx.Tx, movements []domain.Movement) error {
	args := m.Called(ctx, tx, movements)
	return args.Error(0)
}

func (m *MockMovementRepository) UpdateMovementTx(ctx context.Context, tx pgx.Tx, movement domain.Movement, expected domain.MovementStatus) (bool, error) {
	args := m.Called(ctx, tx, movement, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockMovementRepository) ApplyReviewTx(ctx context.Context, tx pgx.Tx, movementIDs []string, review domain.Review) (int64, error) {
	args := m.Called(ctx, tx, movementIDs, review)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMovementRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, movementIDs []string, from, to domain.MovementStatus, userID string, at time.Time) (int64, error) {
	args := m.Called(ctx, tx, movementIDs, from, to, userID, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMovementRepository) SoftDeleteTx(ctx context.Context, tx pgx.Tx, movementIDs []string, onlyStatus *domain.MovementStatus, userID string, at time.Time) (int64, error) {
	args := m.Called(ctx, tx, movementIDs, onlyStatus, userID, at)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock ApprovalRepository ---
type MockApprovalRepository struct {
	mock.Mock
}

var _ portsrepo.ApprovalRepository = (*MockApprovalRepository)(nil)

func (m *MockApprovalRepository) SaveApproval(ctx context.Context, approval domain.MovementApproval) error {
	args := m.Called(ctx, approval)
	return args.Error(0)
}

func (m *MockApprovalRepository) SaveApprovalsTx(ctx context.Context, tx pgx.Tx, approvals []domain.MovementApproval) error {
	args := m.Called(ctx, tx, approvals)
	return args.Error(0)
}

func (m *MockApprovalRepository) ListApprovalsByMovementID(ctx context.Context, movementID string) ([]domain.MovementApproval, error) {
	args := m.Called(ctx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MovementApproval), args.Error(1)
}

// --- Mock AreaRepository ---
type MockAreaRepository struct {
	mock.Mock
}

var _ portsrepo.AreaRepositoryFacade = (*MockAreaRepository)(nil)

func (m *MockAreaRepository) FindAreaByID(ctx context.Context, areaID string) (*domain.Area, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Area), args.Error(1)
}

func (m *MockAreaRepository) ListAreas(ctx context.Context, scope domain.AreaScope) ([]domain.Area, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Area), args.Error(1)
}

func (m *MockAreaRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockAreaRepository) ListDepartmentsByArea(ctx context.Context, areaID string) ([]domain.Department, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Department), args.Error(1)
}

func (m *MockAreaRepository) SaveArea(ctx context.Context, area domain.Area) error {
	args := m.Called(ctx, area)
	return args.Error(0)
}

func (m *MockAreaRepository) SaveDepartment(ctx context.Context, department domain.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *MockAreaRepository) SetUserAreaRole(ctx context.Context, membership domain.UserArea) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockAreaRepository) FindUserAreaRole(ctx context.Context, userID, areaID string) (*domain.UserArea, error) {
	args := m.Called(ctx, userID, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserArea), args.Error(1)
}

func (m *MockAreaRepository) ListUserAreas(ctx context.Context, userID string) ([]domain.UserArea, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserArea), args.Error(1)
}

func (m *MockAreaRepository) RemoveUserFromArea(ctx context.Context, userID, areaID string) error {
	args := m.Called(ctx, userID, areaID)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetBalance(ctx context.Context, filter domain.ReportFilter) (*domain.Balance, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockReportingRepository) SumByGroup(ctx context.Context, filter domain.ReportFilter, grouping portsrepo.ReportGrouping) ([]domain.GroupTotal, error) {
	args := m.Called(ctx, filter, grouping)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GroupTotal), args.Error(1)
}

func (m *MockReportingRepository) MonthlyTotals(ctx context.Context, filter domain.ReportFilter) ([]domain.MonthlyTotal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyTotal), args.Error(1)
}

func (m *MockReportingRepository) CountByStatus(ctx context.Context, scope domain.AreaScope) (domain.StatusCounts, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.StatusCounts), args.Error(1)
}

func (m *MockReportingRepository) GetDraftStats(ctx context.Context, scope domain.AreaScope) (*domain.DraftStats, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftStats), args.Error(1)
}

func (m *MockReportingRepository) ListApprovedMovements(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.Movement, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

// --- Mock EventSink ---
type MockEventSink struct {
	mock.Mock
}

func (m *MockEventSink) Publish(ctx context.Context, event domain.MovementEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// expectTx wires Begin/Commit/Rollback for one transaction. committed
// selects whether Commit or Rollback is expected.
func expectTx(repo *MockMovementRepository, committed bool) {
	repo.On("Begin", mock.Anything).Return(nil, nil).Once()
	if committed {
		repo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
	} else {
		repo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Once()
	}
}

func strPtr(s string) *string {
	return &s
}
