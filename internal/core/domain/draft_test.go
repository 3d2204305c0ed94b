package domain_test

import (
	"testing"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestDraftPatchAreaChangeClearsDepartment(t *testing.T) {
	m := &domain.Movement{AreaID: "a1", DepartmentID: strPtr("d1"), Status: domain.StatusDraft}

	changes := domain.DraftPatch{AreaID: strPtr("a2")}.ApplyTo(m)

	assert.Equal(t, "a2", m.AreaID)
	assert.Nil(t, m.DepartmentID)
	assert.True(t, m.NeedsCategorization())
	assert.Equal(t, domain.FieldChange{From: "a1", To: "a2"}, changes["areaID"])
	assert.Equal(t, domain.FieldChange{From: "d1", To: nil}, changes["departmentID"])
}

func TestDraftPatchAreaChangeWithDepartmentKeepsIt(t *testing.T) {
	m := &domain.Movement{AreaID: "a1", DepartmentID: strPtr("d1")}

	changes := domain.DraftPatch{AreaID: strPtr("a2"), DepartmentID: strPtr("d9")}.ApplyTo(m)

	assert.Equal(t, "a2", m.AreaID)
	if assert.NotNil(t, m.DepartmentID) {
		assert.Equal(t, "d9", *m.DepartmentID)
	}
	assert.Equal(t, domain.FieldChange{From: "d1", To: "d9"}, changes["departmentID"])
}

func TestDraftPatchSameValuesRecordNothing(t *testing.T) {
	m := &domain.Movement{AreaID: "a1", DepartmentID: strPtr("d1"), Category: strPtr("rent")}

	changes := domain.DraftPatch{AreaID: strPtr("a1"), DepartmentID: strPtr("d1"), Category: strPtr("rent")}.ApplyTo(m)

	assert.Empty(t, changes)
	assert.Equal(t, "d1", *m.DepartmentID)
}

func TestDraftPatchCategoryFromNil(t *testing.T) {
	m := &domain.Movement{AreaID: "a1"}

	changes := domain.DraftPatch{Category: strPtr("utilities")}.ApplyTo(m)

	assert.Equal(t, domain.FieldChange{From: nil, To: "utilities"}, changes["category"])
	assert.True(t, domain.DraftPatch{}.IsEmpty())
}
