package domain

import "time"

// MovementType classifies the direction of money in a movement.
type MovementType string

const (
	MovementIncome       MovementType = "INCOME"
	MovementExpense      MovementType = "EXPENSE"
	MovementTransfer     MovementType = "TRANSFER"
	MovementDistribution MovementType = "DISTRIBUTION"
)

// IsValid reports whether t is a known movement type.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementIncome, MovementExpense, MovementTransfer, MovementDistribution:
		return true
	}
	return false
}

// MovementStatus is the lifecycle state of a movement.
type MovementStatus string

const (
	StatusDraft     MovementStatus = "DRAFT"
	StatusPending   MovementStatus = "PENDING"
	StatusApproved  MovementStatus = "APPROVED"
	StatusRejected  MovementStatus = "REJECTED"
	StatusCancelled MovementStatus = "CANCELLED" // reserved, nothing transitions into it yet
)

func (s MovementStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Movement is a financial transaction recorded against an area.
// Amount is always in minor currency units.
type Movement struct {
	MovementID         string         `json:"movementID" db:"movement_id"`
	AreaID             string         `json:"areaID" db:"area_id"`
	DepartmentID       *string        `json:"departmentID,omitempty" db:"department_id"`
	BankAccountID      *string        `json:"bankAccountID,omitempty" db:"bank_account_id"`
	ParentID           *string        `json:"parentID,omitempty" db:"parent_id"`
	Type               MovementType   `json:"type" db:"movement_type"`
	Status             MovementStatus `json:"status" db:"status"`
	Amount             int64          `json:"amount" db:"amount"`
	CurrencyCode       string         `json:"currencyCode" db:"currency_code"`
	Description        string         `json:"description" db:"description"`
	Category           *string        `json:"category,omitempty" db:"category"`
	Reference          *string        `json:"reference,omitempty" db:"reference"`
	TransactionDate    time.Time      `json:"transactionDate" db:"transaction_date"`
	IsInternalTransfer bool           `json:"isInternalTransfer" db:"is_internal_transfer"`
	ApprovedBy         *string        `json:"approvedBy,omitempty" db:"approved_by"`
	ApprovedAt         *time.Time     `json:"approvedAt,omitempty" db:"approved_at"`
	RejectedBy         *string        `json:"rejectedBy,omitempty" db:"rejected_by"`
	RejectedAt         *time.Time     `json:"rejectedAt,omitempty" db:"rejected_at"`
	RejectionReason    *string        `json:"rejectionReason,omitempty" db:"rejection_reason"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
	DeletedBy *string    `json:"-" db:"deleted_by"`
}

// NeedsCategorization is true while no department has been assigned.
func (m *Movement) NeedsCategorization() bool {
	return m.DepartmentID == nil
}

// IsDeleted reports whether the movement has been soft deleted.
func (m *Movement) IsDeleted() bool {
	return m.DeletedAt != nil
}

// ClearReview drops approval and rejection metadata.
func (m *Movement) ClearReview() {
	m.ApprovedBy = nil
	m.ApprovedAt = nil
	m.RejectedBy = nil
	m.RejectedAt = nil
	m.RejectionReason = nil
}

// Review is the outcome a manager records on a pending movement.
type Review struct {
	Status  MovementStatus // APPROVED or REJECTED
	ActorID string
	At      time.Time
	Reason  *string // rejection only
}

// Apply copies the review onto the movement, replacing any previous review.
func (r Review) Apply(m *Movement) {
	m.ClearReview()
	m.Status = r.Status
	actor, at := r.ActorID, r.At
	switch r.Status {
	case StatusApproved:
		m.ApprovedBy = &actor
		m.ApprovedAt = &at
	case StatusRejected:
		m.RejectedBy = &actor
		m.RejectedAt = &at
		m.RejectionReason = r.Reason
	}
	m.Touch(actor, at)
}

// MovementFilter narrows list and report queries.
type MovementFilter struct {
	Scope             AreaScope
	AreaID            *string
	DepartmentID      *string
	Status            *MovementStatus
	Type              *MovementType
	Category          *string
	CreatedBy         *string
	DateFrom          *time.Time
	DateTo            *time.Time
	Search            *string
	UncategorizedOnly bool
}
