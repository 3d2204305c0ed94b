package services

import (
	"context"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/SscSPs/movement_tracker/internal/dto"
)

// MovementReaderSvc defines read operations for movements.
type MovementReaderSvc interface {
	// GetMovement returns a movement visible to the caller.
	GetMovement(ctx context.Context, caller domain.Caller, movementID string) (*domain.Movement, error)
	// ListMovements pages through movements in the caller's areas.
	ListMovements(ctx context.Context, caller domain.Caller, params dto.ListMovementsParams) ([]domain.Movement, *string, error)
	// GetApprovalHistory returns history oldest first. Creator only.
	GetApprovalHistory(ctx context.Context, caller domain.Caller, movementID string) ([]domain.MovementApproval, error)
}

// MovementWriterSvc defines the creator's write operations.
type MovementWriterSvc interface {
	// CreateMovement records a PENDING movement.
	CreateMovement(ctx context.Context, caller domain.Caller, req dto.CreateMovementRequest) (*domain.Movement, error)
	// UpdateMovement edits a movement. Editing a reviewed movement sends it back to PENDING.
	UpdateMovement(ctx context.Context, caller domain.Caller, movementID string, req dto.UpdateMovementRequest) (*domain.Movement, error)
	// DeleteMovement soft deletes a movement.
	DeleteMovement(ctx context.Context, caller domain.Caller, movementID string) error
}

// MovementReviewSvc defines the manager's review operations.
type MovementReviewSvc interface {
	ApproveMovement(ctx context.Context, caller domain.Caller, movementID string, req dto.ApproveMovementRequest) (*domain.Movement, error)
	RejectMovement(ctx context.Context, caller domain.Caller, movementID string, req dto.RejectMovementRequest) (*domain.Movement, error)
	// BulkApprove approves every movement or none. It returns how many changed.
	BulkApprove(ctx context.Context, caller domain.Caller, req dto.BulkReviewRequest) (int, error)
	// BulkReject rejects every movement or none. It returns how many changed.
	BulkReject(ctx context.Context, caller domain.Caller, req dto.BulkReviewRequest) (int, error)
	AddComment(ctx context.Context, caller domain.Caller, movementID string, req dto.AddCommentRequest) (*domain.MovementApproval, error)
}

// MovementSvcFacade combines all movement-related service interfaces
type MovementSvcFacade interface {
	MovementReaderSvc
	MovementWriterSvc
	MovementReviewSvc
}
