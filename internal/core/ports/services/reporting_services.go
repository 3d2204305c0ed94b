package services

import (
	"context"
	"io"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/SscSPs/movement_tracker/internal/dto"
)

// ReportingService defines read-only aggregations. Nothing here mutates state.
type ReportingService interface {
	GetBalance(ctx context.Context, caller domain.Caller, params dto.ReportParams) (*domain.Balance, error)
	SummaryByArea(ctx context.Context, caller domain.Caller, params dto.ReportParams) ([]domain.GroupTotal, error)
	SummaryByDepartment(ctx context.Context, caller domain.Caller, params dto.ReportParams) ([]domain.GroupTotal, error)
	SummaryByCategory(ctx context.Context, caller domain.Caller, params dto.ReportParams) ([]domain.GroupTotal, error)
	MonthlyTrend(ctx context.Context, caller domain.Caller, params dto.ReportParams) ([]domain.MonthlyTotal, error)
	GetDashboard(ctx context.Context, caller domain.Caller) (*domain.Dashboard, error)
	// ExportMovementsXLSX writes approved movements and a totals row as a workbook.
	ExportMovementsXLSX(ctx context.Context, caller domain.Caller, params dto.ReportParams, w io.Writer) error
}
