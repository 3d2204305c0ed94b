package domain

import "time"

// MaxImportRows bounds a single draft import.
const MaxImportRows = 500

// MaxBulkReview bounds bulk approve and reject.
const MaxBulkReview = 50

// MaxBulkDraft bounds bulk draft operations.
const MaxBulkDraft = 100

// DraftRow is one imported line before it becomes a DRAFT movement.
type DraftRow struct {
	AreaID             string
	DepartmentID       *string
	BankAccountID      *string
	Type               MovementType
	Amount             int64
	CurrencyCode       string
	Description        string
	Category           *string
	Reference          *string
	TransactionDate    time.Time
	IsInternalTransfer bool
}

// DraftPatch changes categorization fields of a draft. Nil fields are left alone.
type DraftPatch struct {
	AreaID       *string
	DepartmentID *string
	Category     *string
}

// IsEmpty is true when the patch changes nothing.
func (p DraftPatch) IsEmpty() bool {
	return p.AreaID == nil && p.DepartmentID == nil && p.Category == nil
}

// ApplyTo mutates the draft and returns the changed fields. Moving a draft to
// another area clears its department unless the patch supplies one.
func (p DraftPatch) ApplyTo(m *Movement) map[string]FieldChange {
	changes := map[string]FieldChange{}
	if p.AreaID != nil && *p.AreaID != m.AreaID {
		changes["areaID"] = FieldChange{From: m.AreaID, To: *p.AreaID}
		m.AreaID = *p.AreaID
		if p.DepartmentID == nil && m.DepartmentID != nil {
			changes["departmentID"] = FieldChange{From: *m.DepartmentID, To: nil}
			m.DepartmentID = nil
		}
	}
	if p.DepartmentID != nil && !equalPtr(m.DepartmentID, p.DepartmentID) {
		changes["departmentID"] = FieldChange{From: derefOrNil(m.DepartmentID), To: *p.DepartmentID}
		dept := *p.DepartmentID
		m.DepartmentID = &dept
	}
	if p.Category != nil && !equalPtr(m.Category, p.Category) {
		changes["category"] = FieldChange{From: derefOrNil(m.Category), To: *p.Category}
		cat := *p.Category
		m.Category = &cat
	}
	return changes
}

// DraftStats counts drafts visible to a caller.
type DraftStats struct {
	Total         int64            `json:"total"`
	Uncategorized int64            `json:"uncategorized"`
	Categorized   int64            `json:"categorized"`
	ByArea        map[string]int64 `json:"byArea"`
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func derefOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
