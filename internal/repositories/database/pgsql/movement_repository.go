package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/movement_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/movement_tracker/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const movementColumns = `
	m.movement_id, m.area_id, m.department_id, m.bank_account_id, m.parent_id,
	m.movement_type, m.status, m.amount, m.currency_code, m.description,
	m.category, m.reference, m.transaction_date, m.is_internal_transfer,
	m.approved_by, m.approved_at, m.rejected_by, m.rejected_at, m.rejection_reason,
	m.created_at, m.created_by, m.last_updated_at, m.last_updated_by,
	m.deleted_at, m.deleted_by`

type PgxMovementRepository struct {
	BaseRepository
}

func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepositoryWithTx {
	return &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxMovementRepository implements portsrepo.MovementRepositoryWithTx
var _ portsrepo.MovementRepositoryWithTx = (*PgxMovementRepository)(nil)

func scanMovement(row rowScanner) (domain.Movement, error) {
	var m domain.Movement
	err := row.Scan(
		&m.MovementID,
		&m.AreaID,
		&m.DepartmentID,
		&m.BankAccountID,
		&m.ParentID,
		&m.Type,
		&m.Status,
		&m.Amount,
		&m.CurrencyCode,
		&m.Description,
		&m.Category,
		&m.Reference,
		&m.TransactionDate,
		&m.IsInternalTransfer,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.RejectedBy,
		&m.RejectedAt,
		&m.RejectionReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
		&m.DeletedBy,
	)
	return m, err
}

func collectMovements(rows pgx.Rows) ([]domain.Movement, error) {
	defer rows.Close()
	movements := []domain.Movement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movement rows: %w", err)
	}
	return movements, nil
}

const insertMovementQuery = `
	INSERT INTO movements (
		movement_id, area_id, department_id, bank_account_id, parent_id,
		movement_type, status, amount, currency_code, description,
		category, reference, transaction_date, is_internal_transfer,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
`

func insertMovementArgs(m domain.Movement) []any {
	return []any{
		m.MovementID,
		m.AreaID,
		m.DepartmentID,
		m.BankAccountID,
		m.ParentID,
		m.Type,
		m.Status,
		m.Amount,
		m.CurrencyCode,
		m.Description,
		m.Category,
		m.Reference,
		m.TransactionDate,
		m.IsInternalTransfer,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

func (r *PgxMovementRepository) SaveMovement(ctx context.Context, movement domain.Movement) error {
	if _, err := r.Pool.Exec(ctx, insertMovementQuery, insertMovementArgs(movement)...); err != nil {
		return mapWriteError(err, "failed to save movement")
	}
	return nil
}

// SaveMovementsTx queues every insert in one batch.
func (r *PgxMovementRepository) SaveMovementsTx(ctx context.Context, tx pgx.Tx, movements []domain.Movement) error {
	batch := &pgx.Batch{}
	for _, m := range movements {
		batch.Queue(insertMovementQuery, insertMovementArgs(m)...)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapWriteError(err, "failed to insert movement batch")
	}
	return nil
}

func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM movements m
		WHERE m.movement_id = $1 AND m.deleted_at IS NULL;
	`
	m, err := scanMovement(r.Pool.QueryRow(ctx, query, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find movement by ID %s: %w", movementID, err)
	}
	return &m, nil
}

// FindMovementsByIDsForUpdate locks rows in id order so concurrent batches
// cannot deadlock on each other.
func (r *PgxMovementRepository) FindMovementsByIDsForUpdate(ctx context.Context, tx pgx.Tx, movementIDs []string) ([]domain.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM movements m
		WHERE m.movement_id = ANY($1) AND m.deleted_at IS NULL
		ORDER BY m.movement_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, movementIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock movements: %w", err)
	}
	return collectMovements(rows)
}

// ListMovements pages newest first by (transaction_date, created_at, movement_id).
// Drafts are only listed when the filter asks for them.
func (r *PgxMovementRepository) ListMovements(ctx context.Context, filter domain.MovementFilter, limit int, nextToken *string) ([]domain.Movement, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	w := &whereBuilder{}
	w.add("m.deleted_at IS NULL")
	w.scope("m.area_id", filter.Scope)
	if filter.AreaID != nil {
		w.add("m.area_id = ?", *filter.AreaID)
	}
	if filter.DepartmentID != nil {
		w.add("m.department_id = ?", *filter.DepartmentID)
	}
	if filter.Status != nil {
		w.add("m.status = ?", *filter.Status)
	} else {
		w.add("m.status <> ?", domain.StatusDraft)
	}
	if filter.Type != nil {
		w.add("m.movement_type = ?", *filter.Type)
	}
	if filter.Category != nil {
		w.add("m.category = ?", *filter.Category)
	}
	if filter.CreatedBy != nil {
		w.add("m.created_by = ?", *filter.CreatedBy)
	}
	if filter.DateFrom != nil {
		w.add("m.transaction_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		w.add("m.transaction_date <= ?", *filter.DateTo)
	}
	if filter.Search != nil {
		pattern := containsPattern(*filter.Search)
		w.add(`(m.description ILIKE ? ESCAPE '\' OR m.category ILIKE ? ESCAPE '\' OR m.reference ILIKE ? ESCAPE '\')`, pattern, pattern, pattern)
	}
	if filter.UncategorizedOnly {
		w.add("m.department_id IS NULL")
	}

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", err)
		}
		w.add("(m.transaction_date, m.created_at, m.movement_id) < (?, ?, ?)", cursor.TransactionDate, cursor.CreatedAt, cursor.MovementID)
	}

	// One extra row tells whether another page exists.
	query := `SELECT ` + movementColumns + `
		FROM movements m
		` + w.sql() + `
		ORDER BY m.transaction_date DESC, m.created_at DESC, m.movement_id DESC
		LIMIT ` + w.bind(limit+1) + `;`

	rows, err := r.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query movements: %w", err)
	}
	movements, err := collectMovements(rows)
	if err != nil {
		return nil, nil, err
	}

	if len(movements) <= limit {
		return movements, nil, nil
	}
	movements = movements[:limit]
	return movements, pagination.NextToken(movements, limit, movementCursor), nil
}

func movementCursor(m domain.Movement) pagination.Cursor {
	return pagination.Cursor{TransactionDate: m.TransactionDate, CreatedAt: m.CreatedAt, MovementID: m.MovementID}
}

func (r *PgxMovementRepository) GetDraftStats(ctx context.Context, scope domain.AreaScope) (*domain.DraftStats, error) {
	return queryDraftStats(ctx, r.Pool, scope)
}

// UpdateMovementTx rewrites the mutable columns when the row is still in the expected status.
func (r *PgxMovementRepository) UpdateMovementTx(ctx context.Context, tx pgx.Tx, m domain.Movement, expected domain.MovementStatus) (bool, error) {
	query := `
		UPDATE movements SET
			area_id = $1, department_id = $2, bank_account_id = $3, movement_type = $4,
			status = $5, amount = $6, currency_code = $7, description = $8,
			category = $9, reference = $10, transaction_date = $11, is_internal_transfer = $12,
			approved_by = $13, approved_at = $14, rejected_by = $15, rejected_at = $16,
			rejection_reason = $17, last_updated_at = $18, last_updated_by = $19
		WHERE movement_id = $20 AND status = $21 AND deleted_at IS NULL;
	`
	tag, err := tx.Exec(ctx, query,
		m.AreaID,
		m.DepartmentID,
		m.BankAccountID,
		m.Type,
		m.Status,
		m.Amount,
		m.CurrencyCode,
		m.Description,
		m.Category,
		m.Reference,
		m.TransactionDate,
		m.IsInternalTransfer,
		m.ApprovedBy,
		m.ApprovedAt,
		m.RejectedBy,
		m.RejectedAt,
		m.RejectionReason,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.MovementID,
		expected,
	)
	if err != nil {
		return false, mapWriteError(err, "failed to update movement "+m.MovementID)
	}
	return tag.RowsAffected() == 1, nil
}

// ApplyReviewTx only touches rows that are still PENDING.
func (r *PgxMovementRepository) ApplyReviewTx(ctx context.Context, tx pgx.Tx, movementIDs []string, review domain.Review) (int64, error) {
	var approvedBy, rejectedBy *string
	var approvedAt, rejectedAt *time.Time
	var reason *string
	actor, at := review.ActorID, review.At
	switch review.Status {
	case domain.StatusApproved:
		approvedBy, approvedAt = &actor, &at
	case domain.StatusRejected:
		rejectedBy, rejectedAt, reason = &actor, &at, review.Reason
	default:
		return 0, fmt.Errorf("invalid review status %q", review.Status)
	}

	query := `
		UPDATE movements SET
			status = $1,
			approved_by = $2, approved_at = $3,
			rejected_by = $4, rejected_at = $5, rejection_reason = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE movement_id = ANY($9) AND status = $10 AND deleted_at IS NULL;
	`
	tag, err := tx.Exec(ctx, query,
		review.Status,
		approvedBy, approvedAt,
		rejectedBy, rejectedAt, reason,
		at, actor,
		movementIDs, domain.StatusPending,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to apply review: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PgxMovementRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, movementIDs []string, from, to domain.MovementStatus, userID string, at time.Time) (int64, error) {
	query := `
		UPDATE movements SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE movement_id = ANY($4) AND status = $5 AND deleted_at IS NULL;
	`
	tag, err := tx.Exec(ctx, query, to, at, userID, movementIDs, from)
	if err != nil {
		return 0, fmt.Errorf("failed to update movement status: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PgxMovementRepository) SoftDeleteTx(ctx context.Context, tx pgx.Tx, movementIDs []string, onlyStatus *domain.MovementStatus, userID string, at time.Time) (int64, error) {
	query := `
		UPDATE movements SET deleted_at = $1, deleted_by = $2, last_updated_at = $1, last_updated_by = $2
		WHERE movement_id = ANY($3) AND deleted_at IS NULL`
	args := []any{at, userID, movementIDs}
	if onlyStatus != nil {
		args = append(args, *onlyStatus)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}

	tag, err := tx.Exec(ctx, query+";", args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete movements: %w", err)
	}
	return tag.RowsAffected(), nil
}

// querier is the read side shared by pools and transactions.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// queryDraftStats counts live drafts per area within scope.
func queryDraftStats(ctx context.Context, q querier, scope domain.AreaScope) (*domain.DraftStats, error) {
	w := &whereBuilder{}
	w.add("status = ?", domain.StatusDraft)
	w.add("deleted_at IS NULL")
	w.scope("area_id", scope)

	query := `
		SELECT area_id, COUNT(*), COUNT(*) FILTER (WHERE department_id IS NULL)
		FROM movements
		` + w.sql() + `
		GROUP BY area_id;
	`
	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query draft stats: %w", err)
	}
	defer rows.Close()

	stats := &domain.DraftStats{ByArea: map[string]int64{}}
	for rows.Next() {
		var areaID string
		var total, uncategorized int64
		if err := rows.Scan(&areaID, &total, &uncategorized); err != nil {
			return nil, fmt.Errorf("failed to scan draft stats row: %w", err)
		}
		stats.ByArea[areaID] = total
		stats.Total += total
		stats.Uncategorized += uncategorized
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating draft stats rows: %w", err)
	}
	stats.Categorized = stats.Total - stats.Uncategorized
	return stats, nil
}
