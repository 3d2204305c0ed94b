package repositories

import (
	"context"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
)

// ReportGrouping selects the dimension totals are grouped by.
type ReportGrouping string

const (
	GroupByArea       ReportGrouping = "area"
	GroupByDepartment ReportGrouping = "department"
	GroupByCategory   ReportGrouping = "category"
)

// ReportingRepository defines read-only aggregation queries over movements.
// Only APPROVED, live, non internal-transfer movements are summed.
type ReportingRepository interface {
	// GetBalance sums income, expenses, transfers and distributions.
	GetBalance(ctx context.Context, filter domain.ReportFilter) (*domain.Balance, error)

	// SumByGroup totals income and expenses per grouping key.
	SumByGroup(ctx context.Context, filter domain.ReportFilter, grouping ReportGrouping) ([]domain.GroupTotal, error)

	// MonthlyTotals totals income and expenses per calendar month, oldest first.
	MonthlyTotals(ctx context.Context, filter domain.ReportFilter) ([]domain.MonthlyTotal, error)

	// CountByStatus counts live movements per status within scope.
	CountByStatus(ctx context.Context, scope domain.AreaScope) (domain.StatusCounts, error)
	// GetDraftStats counts drafts within scope.
	GetDraftStats(ctx context.Context, scope domain.AreaScope) (*domain.DraftStats, error)

	// ListApprovedMovements returns countable movements for export, oldest first, up to limit rows.
	ListApprovedMovements(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.Movement, error)
}
