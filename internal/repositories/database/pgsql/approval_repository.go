package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/movement_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxApprovalRepository struct {
	db *pgxpool.Pool
}

func newPgxApprovalRepository(db *pgxpool.Pool) portsrepo.ApprovalRepository {
	return &PgxApprovalRepository{db: db}
}

var _ portsrepo.ApprovalRepository = (*PgxApprovalRepository)(nil)

const insertApprovalQuery = `
	INSERT INTO movement_approvals (approval_id, movement_id, action, comment, metadata, user_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

func insertApprovalArgs(a domain.MovementApproval) []any {
	// metadata is JSONB; a nil map is stored as SQL NULL
	var metadata any
	if len(a.Metadata) > 0 {
		metadata = a.Metadata
	}
	return []any{a.ApprovalID, a.MovementID, a.Action, a.Comment, metadata, a.UserID, a.CreatedAt}
}

func (r *PgxApprovalRepository) SaveApproval(ctx context.Context, approval domain.MovementApproval) error {
	if _, err := r.db.Exec(ctx, insertApprovalQuery, insertApprovalArgs(approval)...); err != nil {
		return mapWriteError(err, "failed to save approval")
	}
	return nil
}

func (r *PgxApprovalRepository) SaveApprovalsTx(ctx context.Context, tx pgx.Tx, approvals []domain.MovementApproval) error {
	if len(approvals) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, a := range approvals {
		batch.Queue(insertApprovalQuery, insertApprovalArgs(a)...)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapWriteError(err, "failed to insert approval batch")
	}
	return nil
}

func (r *PgxApprovalRepository) ListApprovalsByMovementID(ctx context.Context, movementID string) ([]domain.MovementApproval, error) {
	query := `
		SELECT a.approval_id, a.movement_id, a.action, a.comment, a.metadata, a.user_id,
		       COALESCE(u.name, ''), a.created_at
		FROM movement_approvals a
		LEFT JOIN users u ON u.user_id = a.user_id
		WHERE a.movement_id = $1
		ORDER BY a.created_at, a.approval_id;
	`
	rows, err := r.db.Query(ctx, query, movementID)
	if err != nil {
		return nil, fmt.Errorf("failed to query approvals for movement %s: %w", movementID, err)
	}
	defer rows.Close()

	approvals := []domain.MovementApproval{}
	for rows.Next() {
		var a domain.MovementApproval
		if err := rows.Scan(
			&a.ApprovalID,
			&a.MovementID,
			&a.Action,
			&a.Comment,
			&a.Metadata,
			&a.UserID,
			&a.UserName,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan approval row: %w", err)
		}
		approvals = append(approvals, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating approval rows: %w", err)
	}
	return approvals, nil
}
