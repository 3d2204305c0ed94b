package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/movement_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// countableWhere builds the filter shared by every aggregate: approved, live,
// not an internal transfer, plus the report filter.
func countableWhere(filter domain.ReportFilter) *whereBuilder {
	w := &whereBuilder{}
	w.add("m.status = ?", domain.StatusApproved)
	w.add("m.deleted_at IS NULL")
	w.add("m.is_internal_transfer = FALSE")
	w.scope("m.area_id", filter.Scope)
	if filter.AreaID != nil {
		w.add("m.area_id = ?", *filter.AreaID)
	}
	if filter.DepartmentID != nil {
		w.add("m.department_id = ?", *filter.DepartmentID)
	}
	if filter.DateFrom != nil {
		w.add("m.transaction_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		w.add("m.transaction_date <= ?", *filter.DateTo)
	}
	return w
}

const typeSums = `
	COALESCE(SUM(m.amount) FILTER (WHERE m.movement_type = 'INCOME'), 0),
	COALESCE(SUM(m.amount) FILTER (WHERE m.movement_type = 'EXPENSE'), 0)`

// GetBalance sums approved movements by type.
func (r *reportingRepository) GetBalance(ctx context.Context, filter domain.ReportFilter) (*domain.Balance, error) {
	w := countableWhere(filter)
	query := `
		SELECT ` + typeSums + `,
			COALESCE(SUM(m.amount) FILTER (WHERE m.movement_type = 'TRANSFER'), 0),
			COALESCE(SUM(m.amount) FILTER (WHERE m.movement_type = 'DISTRIBUTION'), 0)
		FROM movements m
		` + w.sql()

	var income, expenses, transfers, distributions int64
	if err := r.Pool.QueryRow(ctx, query, w.args...).Scan(&income, &expenses, &transfers, &distributions); err != nil {
		return nil, fmt.Errorf("error querying balance: %w", err)
	}
	balance := domain.NewBalance(income, expenses, transfers, distributions)
	return &balance, nil
}

// groupExpressions returns the key and label expressions plus any join for a grouping.
func groupExpressions(grouping portsrepo.ReportGrouping) (key, label, join string, err error) {
	switch grouping {
	case portsrepo.GroupByArea:
		return "m.area_id", "a.name", "JOIN areas a ON a.area_id = m.area_id", nil
	case portsrepo.GroupByDepartment:
		return "COALESCE(m.department_id, '')",
			"COALESCE(d.code || ' - ' || d.name, 'Uncategorized')",
			"LEFT JOIN departments d ON d.department_id = m.department_id", nil
	case portsrepo.GroupByCategory:
		return "COALESCE(m.category, '')", "COALESCE(m.category, 'Uncategorized')", "", nil
	}
	return "", "", "", fmt.Errorf("unknown report grouping %q", grouping)
}

// SumByGroup totals income and expenses per grouping key, largest expense first.
func (r *reportingRepository) SumByGroup(ctx context.Context, filter domain.ReportFilter, grouping portsrepo.ReportGrouping) ([]domain.GroupTotal, error) {
	key, label, join, err := groupExpressions(grouping)
	if err != nil {
		return nil, err
	}
	w := countableWhere(filter)
	query := `
		SELECT ` + key + ` AS group_key, ` + label + ` AS group_label,` + typeSums + `, COUNT(*)
		FROM movements m
		` + join + `
		` + w.sql() + `
		GROUP BY 1, 2
		ORDER BY 4 DESC, 2;
	`
	rows, err := r.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("error querying totals by %s: %w", grouping, err)
	}
	defer rows.Close()

	groups := []domain.GroupTotal{}
	for rows.Next() {
		var g domain.GroupTotal
		if err := rows.Scan(&g.Key, &g.Label, &g.Income, &g.Expenses, &g.Count); err != nil {
			return nil, fmt.Errorf("error scanning %s total row: %w", grouping, err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s total rows: %w", grouping, err)
	}
	return groups, nil
}

// MonthlyTotals totals income and expenses per calendar month.
func (r *reportingRepository) MonthlyTotals(ctx context.Context, filter domain.ReportFilter) ([]domain.MonthlyTotal, error) {
	w := countableWhere(filter)
	query := `
		SELECT date_trunc('month', m.transaction_date)::date AS month,` + typeSums + `
		FROM movements m
		` + w.sql() + `
		GROUP BY 1
		ORDER BY 1;
	`
	rows, err := r.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly totals: %w", err)
	}
	defer rows.Close()

	months := []domain.MonthlyTotal{}
	for rows.Next() {
		var mt domain.MonthlyTotal
		if err := rows.Scan(&mt.Month, &mt.Income, &mt.Expenses); err != nil {
			return nil, fmt.Errorf("error scanning monthly total row: %w", err)
		}
		mt.Balance = mt.Income - mt.Expenses
		months = append(months, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly total rows: %w", err)
	}
	return months, nil
}

// CountByStatus counts live movements per status. Internal transfers are included.
func (r *reportingRepository) CountByStatus(ctx context.Context, scope domain.AreaScope) (domain.StatusCounts, error) {
	w := &whereBuilder{}
	w.add("m.deleted_at IS NULL")
	w.scope("m.area_id", scope)
	query := `SELECT m.status, COUNT(*) FROM movements m ` + w.sql() + ` GROUP BY m.status;`

	rows, err := r.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("error querying status counts: %w", err)
	}
	defer rows.Close()

	counts := domain.StatusCounts{}
	for rows.Next() {
		var status domain.MovementStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("error scanning status count row: %w", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status count rows: %w", err)
	}
	return counts, nil
}

func (r *reportingRepository) GetDraftStats(ctx context.Context, scope domain.AreaScope) (*domain.DraftStats, error) {
	return queryDraftStats(ctx, r.Pool, scope)
}

// ListApprovedMovements returns countable movements oldest first.
func (r *reportingRepository) ListApprovedMovements(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.Movement, error) {
	w := countableWhere(filter)
	query := `
		SELECT ` + movementColumns + `
		FROM movements m
		` + w.sql() + `
		ORDER BY m.transaction_date, m.created_at, m.movement_id
		LIMIT ` + w.bind(limit) + `;`

	rows, err := r.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("error querying approved movements: %w", err)
	}
	return collectMovements(rows)
}
