package services

import (
	"context"
	"io"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/SscSPs/movement_tracker/internal/dto"
)

// DraftImportSvc creates DRAFT movements.
type DraftImportSvc interface {
	// ImportDrafts inserts every row as a DRAFT in one transaction.
	ImportDrafts(ctx context.Context, caller domain.Caller, req dto.ImportDraftsRequest) ([]domain.Movement, error)
	// ImportDraftsFromXLSX parses the first sheet of a workbook and imports its rows into areaID.
	ImportDraftsFromXLSX(ctx context.Context, caller domain.Caller, areaID string, workbook io.Reader) ([]domain.Movement, error)
}

// DraftCategorizationSvc reviews and categorizes drafts.
type DraftCategorizationSvc interface {
	ListDrafts(ctx context.Context, caller domain.Caller, params dto.ListDraftsParams) ([]domain.Movement, *string, error)
	GetDraftStats(ctx context.Context, caller domain.Caller) (*domain.DraftStats, error)
	UpdateDraft(ctx context.Context, caller domain.Caller, movementID string, req dto.UpdateDraftRequest) (*domain.Movement, error)
	// BulkUpdateDrafts is admin only and all-or-nothing.
	BulkUpdateDrafts(ctx context.Context, caller domain.Caller, req dto.BulkUpdateDraftsRequest) (int, error)
	// FinalizeDraft sends a categorized draft to PENDING.
	FinalizeDraft(ctx context.Context, caller domain.Caller, movementID string) (*domain.Movement, error)
	BulkFinalizeDrafts(ctx context.Context, caller domain.Caller, req dto.BulkDraftIDsRequest) (int, error)
	DeleteDraft(ctx context.Context, caller domain.Caller, movementID string) error
	BulkDeleteDrafts(ctx context.Context, caller domain.Caller, req dto.BulkDraftIDsRequest) (int, error)
}

// DraftSvcFacade combines all draft-related service interfaces
type DraftSvcFacade interface {
	DraftImportSvc
	DraftCategorizationSvc
}
