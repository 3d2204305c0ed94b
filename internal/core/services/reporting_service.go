package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/movement_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/dto"
	"github.com/SscSPs/movement_tracker/internal/utils/spreadsheet"
)

// defaultExportLimit caps the rows written to one workbook.
const defaultExportLimit = 10000

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	memberships   portsrepo.AreaMembershipManager
	exportLimit   int
	currency      string
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithExportLimit caps the movements written by ExportMovementsXLSX.
func WithExportLimit(limit int) ReportingServiceOption {
	return func(s *reportingService) {
		if limit > 0 {
			s.exportLimit = limit
		}
	}
}

// WithReportCurrency sets the currency totals are formatted in.
func WithReportCurrency(code string) ReportingServiceOption {
	return func(s *reportingService) {
		s.currency = code
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(
	repo portsrepo.ReportingRepository,
	memberships portsrepo.AreaMembershipManager,
	authorizer portssvc.AuthorizationSvc,
	options ...ReportingServiceOption,
) portssvc.ReportingService {
	svc := &reportingService{
		BaseService:   BaseService{Authorizer: authorizer},
		reportingRepo: repo,
		memberships:   memberships,
		exportLimit:   defaultExportLimit,
		currency:      "USD",
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// scopedFilter restricts params to the caller's areas. ok is false when the
// caller can see no area, in which case every report is empty.
func (s *reportingService) scopedFilter(ctx context.Context, caller domain.Caller, params dto.ReportParams) (filter domain.ReportFilter, ok bool, err error) {
	filter = params.ToFilter()
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return filter, false, apperrors.NewBadRequestError("dateFrom must not be after dateTo")
	}
	scope, err := s.Authorizer.AccessibleScope(ctx, caller)
	if err != nil {
		return filter, false, err
	}
	if filter.AreaID != nil && !scope.Contains(*filter.AreaID) {
		return filter, false, apperrors.NewNotFoundError("area not found")
	}
	filter.Scope = scope
	return filter, !scope.IsEmpty(), nil
}

// GetBalance sums approved movements in the caller's areas
func (s *reportingService) GetBalance(ctx context.Context, caller domain.Caller, params dto.ReportParams) (*domain.Balance, error) {
	filter, ok, err := s.scopedFilter(ctx, caller, params)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &domain.Balance{}, nil
	}

	balance, err := s.reportingRepo.GetBalance(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance")
		return nil, fmt.Errorf("failed to retrieve balance: %w", err)
	}
	return balance, nil
}

func (s *reportingService) SummaryByArea(ctx context.Context, caller domain.Caller, params dto.ReportParams) ([]domain.GroupTotal, error) {
	return s.summary(ctx, caller, params, portsrepo.GroupByArea)
}

func (s *reportingService) SummaryByDepartment(ctx context.Context, caller domain.Caller, params dto.ReportParams) ([]domain.GroupTotal, error) {
	return s.summary(ctx, caller, params, portsrepo.GroupByDepartment)
}

func (s *reportingService) SummaryByCategory(ctx context.Context, caller domain.Caller, params dto.ReportParams) ([]domain.GroupTotal, error) {
	return s.summary(ctx, caller, params, portsrepo.GroupByCategory)
}

func (s *reportingService) summary(ctx context.Context, caller domain.Caller, params dto.ReportParams, grouping portsrepo.ReportGrouping) ([]domain.GroupTotal, error) {
	filter, ok, err := s.scopedFilter(ctx, caller, params)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.GroupTotal{}, nil
	}

	groups, err := s.reportingRepo.SumByGroup(ctx, filter, grouping)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve summary", slog.String("group_by", string(grouping)))
		return nil, fmt.Errorf("failed to retrieve %s summary: %w", grouping, err)
	}
	if groups == nil {
		groups = []domain.GroupTotal{}
	}
	domain.ApplyExpenseShare(groups)

	s.LogDebug(ctx, "Summary report generated",
		slog.String("group_by", string(grouping)),
		slog.Int("group_count", len(groups)))
	return groups, nil
}

// MonthlyTrend returns per-month totals, oldest first
func (s *reportingService) MonthlyTrend(ctx context.Context, caller domain.Caller, params dto.ReportParams) ([]domain.MonthlyTotal, error) {
	filter, ok, err := s.scopedFilter(ctx, caller, params)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.MonthlyTotal{}, nil
	}

	months, err := s.reportingRepo.MonthlyTotals(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve monthly totals")
		return nil, fmt.Errorf("failed to retrieve monthly totals: %w", err)
	}
	if months == nil {
		months = []domain.MonthlyTotal{}
	}
	for i := range months {
		months[i].Balance = months[i].Income - months[i].Expenses
	}
	return months, nil
}

// GetDashboard summarizes what needs the caller's attention
func (s *reportingService) GetDashboard(ctx context.Context, caller domain.Caller) (*domain.Dashboard, error) {
	scope, err := s.Authorizer.AccessibleScope(ctx, caller)
	if err != nil {
		return nil, err
	}
	dashboard := &domain.Dashboard{StatusCounts: domain.StatusCounts{}}
	if scope.IsEmpty() {
		return dashboard, nil
	}

	balance, err := s.reportingRepo.GetBalance(ctx, domain.ReportFilter{Scope: scope})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve dashboard balance")
		return nil, err
	}
	counts, err := s.reportingRepo.CountByStatus(ctx, scope)
	if err != nil {
		s.LogError(ctx, err, "Failed to count movements by status")
		return nil, err
	}

	managed, err := s.managedScope(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !managed.IsEmpty() {
		managedCounts, err := s.reportingRepo.CountByStatus(ctx, managed)
		if err != nil {
			s.LogError(ctx, err, "Failed to count managed movements")
			return nil, err
		}
		dashboard.AwaitingMyApproval = managedCounts[domain.StatusPending]
	}

	drafts, err := s.reportingRepo.GetDraftStats(ctx, scope)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve draft stats")
		return nil, err
	}

	dashboard.Balance = *balance
	dashboard.StatusCounts = counts
	dashboard.PendingCount = counts[domain.StatusPending]
	dashboard.DraftCount = counts[domain.StatusDraft]
	dashboard.UncategorizedDrafts = drafts.Uncategorized
	return dashboard, nil
}

// managedScope is the set of areas where the caller may review movements.
func (s *reportingService) managedScope(ctx context.Context, caller domain.Caller) (domain.AreaScope, error) {
	if caller.IsAdmin {
		return domain.AreaScope{All: true}, nil
	}
	memberships, err := s.memberships.ListUserAreas(ctx, caller.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list memberships", slog.String("user_id", caller.UserID))
		return domain.AreaScope{}, err
	}
	var scope domain.AreaScope
	for i := range memberships {
		if domain.ResolveCapabilities(caller, &memberships[i]).IsManager {
			scope.AreaIDs = append(scope.AreaIDs, memberships[i].AreaID)
		}
	}
	return scope, nil
}

// ExportMovementsXLSX writes the approved movements behind GetBalance as a
// workbook. The totals row is summed from the exported rows.
func (s *reportingService) ExportMovementsXLSX(ctx context.Context, caller domain.Caller, params dto.ReportParams, w io.Writer) error {
	filter, ok, err := s.scopedFilter(ctx, caller, params)
	if err != nil {
		return err
	}

	movements := []domain.Movement{}
	balance := domain.Balance{}
	if ok {
		movements, err = s.reportingRepo.ListApprovedMovements(ctx, filter, s.exportLimit+1)
		if err != nil {
			s.LogError(ctx, err, "Failed to list movements for export")
			return err
		}
		if len(movements) > s.exportLimit {
			return apperrors.NewBadRequestError(fmt.Sprintf("export exceeds %d movements, narrow the filter", s.exportLimit))
		}
		balance = domain.ComputeBalance(movements)
	}

	if err := spreadsheet.WriteMovementsReport(w, movements, balance, s.currency); err != nil {
		s.LogError(ctx, err, "Failed to write export workbook")
		return err
	}
	s.LogInfo(ctx, "Movements exported", slog.Int("count", len(movements)))
	return nil
}
