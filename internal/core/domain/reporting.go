package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance summarizes approved, non internal-transfer movements in minor units.
type Balance struct {
	Income        int64 `json:"income"`
	Expenses      int64 `json:"expenses"`
	Transfers     int64 `json:"transfers"`
	Distributions int64 `json:"distributions"`
	Balance       int64 `json:"balance"`
}

// Countable reports whether a movement contributes to balance totals.
func Countable(m Movement) bool {
	return m.Status == StatusApproved && !m.IsInternalTransfer && !m.IsDeleted()
}

// ComputeBalance aggregates movements in memory using the same rules as the
// reporting queries. Non countable movements are skipped.
func ComputeBalance(movements []Movement) Balance {
	var b Balance
	for _, m := range movements {
		if !Countable(m) {
			continue
		}
		switch m.Type {
		case MovementIncome:
			b.Income += m.Amount
		case MovementExpense:
			b.Expenses += m.Amount
		case MovementTransfer:
			b.Transfers += m.Amount
		case MovementDistribution:
			b.Distributions += m.Amount
		}
	}
	b.Balance = b.Income - b.Expenses
	return b
}

// NewBalance builds a Balance from raw income and expense sums.
func NewBalance(income, expenses, transfers, distributions int64) Balance {
	return Balance{
		Income:        income,
		Expenses:      expenses,
		Transfers:     transfers,
		Distributions: distributions,
		Balance:       income - expenses,
	}
}

// GroupTotal is the sum for one group key (area, department or category).
type GroupTotal struct {
	Key        string          `json:"key" db:"group_key"`
	Label      string          `json:"label" db:"group_label"`
	Income     int64           `json:"income" db:"income"`
	Expenses   int64           `json:"expenses" db:"expenses"`
	Count      int64           `json:"count" db:"movement_count"`
	Percentage decimal.Decimal `json:"percentage" db:"-"`
}

// MonthlyTotal is the income/expense sum for a calendar month.
type MonthlyTotal struct {
	Month    time.Time `json:"month" db:"month"`
	Income   int64     `json:"income" db:"income"`
	Expenses int64     `json:"expenses" db:"expenses"`
	Balance  int64     `json:"balance" db:"-"`
}

// Percentage returns part/total*100 rounded to two places, or zero when total is zero.
func Percentage(part, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(2)
}

// ApplyExpenseShare sets each group's percentage of the summed expenses.
func ApplyExpenseShare(groups []GroupTotal) {
	var total int64
	for _, g := range groups {
		total += g.Expenses
	}
	for i := range groups {
		groups[i].Percentage = Percentage(groups[i].Expenses, total)
	}
}

// ReportFilter narrows reporting queries.
type ReportFilter struct {
	Scope        AreaScope
	AreaID       *string
	DepartmentID *string
	DateFrom     *time.Time
	DateTo       *time.Time
}

// StatusCounts maps each status to the number of live movements in it.
type StatusCounts map[MovementStatus]int64

// Dashboard is the landing page summary for a caller.
type Dashboard struct {
	Balance             Balance      `json:"balance"`
	PendingCount        int64        `json:"pendingCount"`
	DraftCount          int64        `json:"draftCount"`
	UncategorizedDrafts int64        `json:"uncategorizedDrafts"`
	AwaitingMyApproval  int64        `json:"awaitingMyApproval"`
	StatusCounts        StatusCounts `json:"statusCounts"`
}
