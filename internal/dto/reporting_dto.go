package dto

import (
	"time"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
)

// ReportParams defines query parameters shared by report endpoints.
type ReportParams struct {
	AreaID       *string    `form:"areaID"`
	DepartmentID *string    `form:"departmentID"`
	DateFrom     *time.Time `form:"dateFrom" time_format:"2006-01-02" time_utc:"1"`
	DateTo       *time.Time `form:"dateTo" time_format:"2006-01-02" time_utc:"1"`
}

// ToFilter converts the params to a domain report filter. The area scope is
// filled in by the service.
func (p ReportParams) ToFilter() domain.ReportFilter {
	return domain.ReportFilter{
		AreaID:       p.AreaID,
		DepartmentID: p.DepartmentID,
		DateFrom:     p.DateFrom,
		DateTo:       p.DateTo,
	}
}

// BalanceResponse wraps a balance with formatted major-unit strings.
type BalanceResponse struct {
	domain.Balance
	CurrencyCode string `json:"currencyCode,omitempty"`
	Formatted    struct {
		Income   string `json:"income"`
		Expenses string `json:"expenses"`
		Balance  string `json:"balance"`
	} `json:"formatted"`
}

// GroupTotalsResponse lists totals for one grouping dimension.
type GroupTotalsResponse struct {
	GroupBy string              `json:"groupBy"`
	Groups  []domain.GroupTotal `json:"groups"`
}

// MonthlyTrendResponse lists per-month totals.
type MonthlyTrendResponse struct {
	Months []domain.MonthlyTotal `json:"months"`
}
