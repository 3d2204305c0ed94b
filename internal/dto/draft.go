package dto

import (
	"time"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
)

// ImportDraftRow is one line of a draft import.
type ImportDraftRow struct {
	AreaID             string              `json:"areaID" binding:"required"`
	DepartmentID       *string             `json:"departmentID"`
	BankAccountID      *string             `json:"bankAccountID"`
	Type               domain.MovementType `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER DISTRIBUTION"`
	Amount             int64               `json:"amount" binding:"required,gt=0"`
	CurrencyCode       string              `json:"currencyCode" binding:"required,iso4217"`
	Description        string              `json:"description" binding:"max=1000"`
	Category           *string             `json:"category" binding:"omitempty,max=128"`
	Reference          *string             `json:"reference" binding:"omitempty,max=255"`
	TransactionDate    time.Time           `json:"transactionDate" binding:"required"`
	IsInternalTransfer bool                `json:"isInternalTransfer"`
}

// ImportDraftsRequest creates DRAFT movements in bulk.
type ImportDraftsRequest struct {
	Rows []ImportDraftRow `json:"rows" binding:"required,min=1,max=500,dive"`
}

// ImportDraftsResponse lists the ids of the created drafts.
type ImportDraftsResponse struct {
	Count       int      `json:"count"`
	MovementIDs []string `json:"movementIDs"`
}

// ListDraftsParams defines query parameters for listing drafts.
type ListDraftsParams struct {
	AreaID            *string `form:"areaID"`
	UncategorizedOnly bool    `form:"uncategorizedOnly"`
	Search            *string `form:"search" binding:"omitempty,max=200"`
	Limit             int     `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken         *string `form:"nextToken"`
}

// UpdateDraftRequest changes the categorization of a draft.
type UpdateDraftRequest struct {
	AreaID       *string `json:"areaID"`
	DepartmentID *string `json:"departmentID"`
	Category     *string `json:"category" binding:"omitempty,max=128"`
}

// ToPatch converts the request to a domain patch.
func (r UpdateDraftRequest) ToPatch() domain.DraftPatch {
	return domain.DraftPatch{AreaID: r.AreaID, DepartmentID: r.DepartmentID, Category: r.Category}
}

// BulkUpdateDraftsRequest applies the same categorization to up to 100 drafts.
type BulkUpdateDraftsRequest struct {
	MovementIDs  []string `json:"movementIDs" binding:"required,min=1,max=100,dive,required"`
	AreaID       *string  `json:"areaID"`
	DepartmentID *string  `json:"departmentID"`
	Category     *string  `json:"category" binding:"omitempty,max=128"`
}

// ToPatch converts the request to a domain patch.
func (r BulkUpdateDraftsRequest) ToPatch() domain.DraftPatch {
	return domain.DraftPatch{AreaID: r.AreaID, DepartmentID: r.DepartmentID, Category: r.Category}
}

// BulkDraftIDsRequest names up to 100 drafts to finalize or delete.
type BulkDraftIDsRequest struct {
	MovementIDs []string `json:"movementIDs" binding:"required,min=1,max=100,dive,required"`
}
