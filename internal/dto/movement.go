package dto

import (
	"time"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
)

// CreateMovementRequest defines the data needed to record a movement directly.
type CreateMovementRequest struct {
	AreaID             string              `json:"areaID" binding:"required"`
	DepartmentID       *string             `json:"departmentID"`
	BankAccountID      *string             `json:"bankAccountID"`
	ParentID           *string             `json:"parentID"`
	Type               domain.MovementType `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER DISTRIBUTION"`
	Amount             int64               `json:"amount" binding:"required,gt=0"`
	CurrencyCode       string              `json:"currencyCode" binding:"required,iso4217"`
	Description        string              `json:"description" binding:"max=1000"`
	Category           *string             `json:"category" binding:"omitempty,notblank,max=128"`
	Reference          *string             `json:"reference" binding:"omitempty,max=255"`
	TransactionDate    time.Time           `json:"transactionDate" binding:"required"`
	IsInternalTransfer bool                `json:"isInternalTransfer"`
}

// UpdateMovementRequest defines the fields a creator may change.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateMovementRequest struct {
	AreaID             *string              `json:"areaID"`
	DepartmentID       *string              `json:"departmentID"`
	BankAccountID      *string              `json:"bankAccountID"`
	Type               *domain.MovementType `json:"type" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER DISTRIBUTION"`
	Amount             *int64               `json:"amount" binding:"omitempty,gt=0"`
	CurrencyCode       *string              `json:"currencyCode" binding:"omitempty,iso4217"`
	Description        *string              `json:"description" binding:"omitempty,max=1000"`
	Category           *string              `json:"category" binding:"omitempty,notblank,max=128"`
	Reference          *string              `json:"reference" binding:"omitempty,max=255"`
	TransactionDate    *time.Time           `json:"transactionDate"`
	IsInternalTransfer *bool                `json:"isInternalTransfer"`
	ClearCategory      bool                 `json:"clearCategory" binding:"excluded_with=Category"`
	ClearReference     bool                 `json:"clearReference" binding:"excluded_with=Reference"`
}

// IsEmpty is true when the request changes nothing.
func (r UpdateMovementRequest) IsEmpty() bool {
	return r.AreaID == nil && r.DepartmentID == nil && r.BankAccountID == nil && r.Type == nil &&
		r.Amount == nil && r.CurrencyCode == nil && r.Description == nil && r.Category == nil &&
		r.Reference == nil && r.TransactionDate == nil && r.IsInternalTransfer == nil &&
		!r.ClearCategory && !r.ClearReference
}

// ListMovementsParams defines query parameters for listing movements.
type ListMovementsParams struct {
	AreaID       *string                `form:"areaID"`
	DepartmentID *string                `form:"departmentID"`
	Status       *domain.MovementStatus `form:"status" binding:"omitempty,oneof=DRAFT PENDING APPROVED REJECTED CANCELLED"`
	Type         *domain.MovementType   `form:"type" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER DISTRIBUTION"`
	Category     *string                `form:"category"`
	Mine         bool                   `form:"mine"`
	DateFrom     *time.Time             `form:"dateFrom" time_format:"2006-01-02" time_utc:"1"`
	DateTo       *time.Time             `form:"dateTo" time_format:"2006-01-02" time_utc:"1"`
	Limit        int                    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken    *string                `form:"nextToken"`
}

// MovementResponse defines the data returned for a movement.
type MovementResponse struct {
	MovementID          string                `json:"movementID"`
	AreaID              string                `json:"areaID"`
	DepartmentID        *string               `json:"departmentID,omitempty"`
	BankAccountID       *string               `json:"bankAccountID,omitempty"`
	ParentID            *string               `json:"parentID,omitempty"`
	Type                domain.MovementType   `json:"type"`
	Status              domain.MovementStatus `json:"status"`
	Amount              int64                 `json:"amount"`
	CurrencyCode        string                `json:"currencyCode"`
	Description         string                `json:"description"`
	Category            *string               `json:"category,omitempty"`
	Reference           *string               `json:"reference,omitempty"`
	TransactionDate     time.Time             `json:"transactionDate"`
	IsInternalTransfer  bool                  `json:"isInternalTransfer"`
	NeedsCategorization bool                  `json:"needsCategorization"`
	ApprovedBy          *string               `json:"approvedBy,omitempty"`
	ApprovedAt          *time.Time            `json:"approvedAt,omitempty"`
	RejectedBy          *string               `json:"rejectedBy,omitempty"`
	RejectedAt          *time.Time            `json:"rejectedAt,omitempty"`
	RejectionReason     *string               `json:"rejectionReason,omitempty"`
	CreatedAt           time.Time             `json:"createdAt"`
	CreatedBy           string                `json:"createdBy"`
	LastUpdatedAt       time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy       string                `json:"lastUpdatedBy"`
}

// ListMovementsResponse wraps a page of movements.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ApproveMovementRequest is the optional body of an approval.
type ApproveMovementRequest struct {
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

// RejectMovementRequest is the optional body of a rejection.
type RejectMovementRequest struct {
	Reason  *string `json:"reason" binding:"omitempty,max=2000"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

// BulkReviewRequest approves or rejects up to 50 movements at once.
type BulkReviewRequest struct {
	MovementIDs []string `json:"movementIDs" binding:"required,min=1,max=50,dive,required"`
	Reason      *string  `json:"reason" binding:"omitempty,max=2000"`
	Comment     *string  `json:"comment" binding:"omitempty,max=2000"`
}

// BulkResultResponse reports how many movements a bulk call changed.
type BulkResultResponse struct {
	Count int `json:"count"`
}

// AddCommentRequest appends a COMMENT entry to a movement's history.
type AddCommentRequest struct {
	Comment string `json:"comment" binding:"required,notblank,max=2000"`
}

// ApprovalResponse defines the data returned for an approval history entry.
type ApprovalResponse struct {
	ApprovalID string                `json:"approvalID"`
	MovementID string                `json:"movementID"`
	Action     domain.ApprovalAction `json:"action"`
	Comment    *string               `json:"comment,omitempty"`
	Metadata   map[string]any        `json:"metadata,omitempty"`
	UserID     string                `json:"userID"`
	UserName   string                `json:"userName,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// ToMovementResponse converts a domain.Movement to MovementResponse DTO.
func ToMovementResponse(m *domain.Movement) MovementResponse {
	return MovementResponse{
		MovementID:          m.MovementID,
		AreaID:              m.AreaID,
		DepartmentID:        m.DepartmentID,
		BankAccountID:       m.BankAccountID,
		ParentID:            m.ParentID,
		Type:                m.Type,
		Status:              m.Status,
		Amount:              m.Amount,
		CurrencyCode:        m.CurrencyCode,
		Description:         m.Description,
		Category:            m.Category,
		Reference:           m.Reference,
		TransactionDate:     m.TransactionDate,
		IsInternalTransfer:  m.IsInternalTransfer,
		NeedsCategorization: m.NeedsCategorization(),
		ApprovedBy:          m.ApprovedBy,
		ApprovedAt:          m.ApprovedAt,
		RejectedBy:          m.RejectedBy,
		RejectedAt:          m.RejectedAt,
		RejectionReason:     m.RejectionReason,
		CreatedAt:           m.CreatedAt,
		CreatedBy:           m.CreatedBy,
		LastUpdatedAt:       m.LastUpdatedAt,
		LastUpdatedBy:       m.LastUpdatedBy,
	}
}

// ToMovementResponses converts a slice of domain.Movement to []MovementResponse.
func ToMovementResponses(movements []domain.Movement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToMovementResponse(&movements[i])
	}
	return responses
}

// ToApprovalResponse converts a domain.MovementApproval to ApprovalResponse DTO.
func ToApprovalResponse(a *domain.MovementApproval) ApprovalResponse {
	return ApprovalResponse{
		ApprovalID: a.ApprovalID,
		MovementID: a.MovementID,
		Action:     a.Action,
		Comment:    a.Comment,
		Metadata:   a.Metadata,
		UserID:     a.UserID,
		UserName:   a.UserName,
		CreatedAt:  a.CreatedAt,
	}
}

// ToApprovalResponses converts a history slice.
func ToApprovalResponses(approvals []domain.MovementApproval) []ApprovalResponse {
	responses := make([]ApprovalResponse, len(approvals))
	for i := range approvals {
		responses[i] = ToApprovalResponse(&approvals[i])
	}
	return responses
}
