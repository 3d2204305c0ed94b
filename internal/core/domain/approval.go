package domain

import "time"

// ApprovalAction is the kind of entry recorded in a movement's history.
type ApprovalAction string

const (
	ApprovalApproved    ApprovalAction = "APPROVED"
	ApprovalRejected    ApprovalAction = "REJECTED"
	ApprovalEdited      ApprovalAction = "EDITED"
	ApprovalComment     ApprovalAction = "COMMENT"
	ApprovalCategorized ApprovalAction = "CATEGORIZED"
)

// MovementApproval is an append-only audit entry. It is never updated or deleted.
type MovementApproval struct {
	ApprovalID string         `json:"approvalID" db:"approval_id"`
	MovementID string         `json:"movementID" db:"movement_id"`
	Action     ApprovalAction `json:"action" db:"action"`
	Comment    *string        `json:"comment,omitempty" db:"comment"`
	Metadata   map[string]any `json:"metadata,omitempty" db:"metadata"`
	UserID     string         `json:"userID" db:"user_id"`
	UserName   string         `json:"userName,omitempty" db:"user_name"`
	CreatedAt  time.Time      `json:"createdAt" db:"created_at"`
}

// FieldChange is the before/after value of one field in EDITED or CATEGORIZED metadata.
type FieldChange struct {
	From any `json:"from"`
	To   any `json:"to"`
}
