package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// MovementReader defines read operations for movements. Soft deleted rows are never returned.
type MovementReader interface {
	// FindMovementByID retrieves a live movement, or apperrors.ErrNotFound.
	FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)

	// FindMovementsByIDsForUpdate locks the live movements among ids inside tx.
	// Missing ids are simply absent from the result.
	FindMovementsByIDsForUpdate(ctx context.Context, tx pgx.Tx, movementIDs []string) ([]domain.Movement, error)

	// ListMovements pages through movements newest first.
	ListMovements(ctx context.Context, filter domain.MovementFilter, limit int, nextToken *string) ([]domain.Movement, *string, error)

	// GetDraftStats counts drafts within scope.
	GetDraftStats(ctx context.Context, scope domain.AreaScope) (*domain.DraftStats, error)
}

// MovementWriter defines write operations for movements.
type MovementWriter interface {
	// SaveMovement persists a new movement.
	SaveMovement(ctx context.Context, movement domain.Movement) error

	// SaveMovementsTx inserts many movements inside tx.
	SaveMovementsTx(ctx context.Context, tx pgx.Tx, movements []domain.Movement) error

	// UpdateMovementTx writes every mutable field of movement, guarded by the
	// status the caller last observed. It reports false when the row was
	// deleted or its status changed in the meantime.
	UpdateMovementTx(ctx context.Context, tx pgx.Tx, movement domain.Movement, expected domain.MovementStatus) (bool, error)

	// ApplyReviewTx moves PENDING movements to the review status. The status
	// guard is evaluated by the database; the count of rows changed is returned.
	ApplyReviewTx(ctx context.Context, tx pgx.Tx, movementIDs []string, review domain.Review) (int64, error)

	// UpdateStatusTx moves live movements from one status to another.
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, movementIDs []string, from, to domain.MovementStatus, userID string, at time.Time) (int64, error)

	// SoftDeleteTx marks live movements deleted. When onlyStatus is set only
	// rows in that status are touched.
	SoftDeleteTx(ctx context.Context, tx pgx.Tx, movementIDs []string, onlyStatus *domain.MovementStatus, userID string, at time.Time) (int64, error)
}

// ApprovalRepository stores the append-only approval history.
type ApprovalRepository interface {
	SaveApproval(ctx context.Context, approval domain.MovementApproval) error
	SaveApprovalsTx(ctx context.Context, tx pgx.Tx, approvals []domain.MovementApproval) error
	// ListApprovalsByMovementID returns history oldest first.
	ListApprovalsByMovementID(ctx context.Context, movementID string) ([]domain.MovementApproval, error)
}

// MovementRepositoryFacade combines all movement-related repository interfaces
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
}

// MovementRepositoryWithTx extends MovementRepositoryFacade with transaction capabilities
type MovementRepositoryWithTx interface {
	MovementRepositoryFacade
	TransactionManager
}
