package pgsql

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/movement_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhereBuilder_NumbersPlaceholdersInOrder(t *testing.T) {
	w := &whereBuilder{}
	w.add("m.deleted_at IS NULL")
	w.add("m.area_id = ?", "area-1")
	w.add("m.transaction_date BETWEEN ? AND ?", "2024-01-01", "2024-01-31")
	limit := w.bind(20)

	assert.Equal(t, "WHERE m.deleted_at IS NULL AND m.area_id = $1 AND m.transaction_date BETWEEN $2 AND $3", w.sql())
	assert.Equal(t, "$4", limit)
	assert.Equal(t, []any{"area-1", "2024-01-01", "2024-01-31", 20}, w.args)
}

func TestWhereBuilder_Empty(t *testing.T) {
	w := &whereBuilder{}
	assert.Equal(t, "", w.sql())
	assert.Empty(t, w.args)
}

func TestWhereBuilder_Scope(t *testing.T) {
	all := &whereBuilder{}
	all.scope("m.area_id", domain.AreaScope{All: true})
	assert.Equal(t, "", all.sql())

	some := &whereBuilder{}
	some.scope("m.area_id", domain.AreaScope{AreaIDs: []string{"a", "b"}})
	assert.Equal(t, "WHERE m.area_id = ANY($1)", some.sql())
	assert.Equal(t, []any{[]string{"a", "b"}}, some.args)
}

func TestCountableWhere_AlwaysExcludesUncountedRows(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	area := "area-1"
	w := countableWhere(domain.ReportFilter{
		Scope:    domain.AreaScope{All: true},
		AreaID:   &area,
		DateFrom: &from,
	})

	sql := w.sql()
	assert.Contains(t, sql, "m.status = $1")
	assert.Contains(t, sql, "m.deleted_at IS NULL")
	assert.Contains(t, sql, "m.is_internal_transfer = FALSE")
	assert.Contains(t, sql, "m.area_id = $2")
	assert.Contains(t, sql, "m.transaction_date >= $3")
	assert.NotContains(t, sql, "ANY")
	assert.Equal(t, []any{domain.StatusApproved, area, from}, w.args)
}

func TestGroupExpressions(t *testing.T) {
	for _, g := range []portsrepo.ReportGrouping{portsrepo.GroupByArea, portsrepo.GroupByDepartment, portsrepo.GroupByCategory} {
		key, label, _, err := groupExpressions(g)
		require.NoError(t, err, g)
		assert.NotEmpty(t, key)
		assert.NotEmpty(t, label)
	}

	_, label, join, err := groupExpressions(portsrepo.GroupByDepartment)
	require.NoError(t, err)
	assert.Contains(t, label, "Uncategorized")
	assert.Contains(t, join, "LEFT JOIN departments")

	_, _, _, err = groupExpressions(portsrepo.ReportGrouping("bank"))
	assert.Error(t, err)
}

func TestMapWriteError(t *testing.T) {
	dup := mapWriteError(&pgconn.PgError{Code: pgUniqueViolation}, "save")
	assert.True(t, errors.Is(dup, apperrors.ErrDuplicate))
	assert.Equal(t, http.StatusConflict, apperrors.HTTPStatus(dup))

	fk := mapWriteError(&pgconn.PgError{Code: pgForeignKeyViolation}, "save")
	assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(fk))

	check := mapWriteError(&pgconn.PgError{Code: pgCheckViolation, ConstraintName: "chk_amount_positive"}, "save")
	assert.Contains(t, apperrors.Message(check), "chk_amount_positive")

	other := mapWriteError(errors.New("boom"), "failed to save movement")
	assert.Equal(t, http.StatusInternalServerError, apperrors.HTTPStatus(other))
	assert.Contains(t, other.Error(), "failed to save movement")
}

func TestContainsPattern_EscapesWildcards(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"rent", `%rent%`},
		{"100%", `%100\%%`},
		{"line_item", `%line\_item%`},
		{`C:\tmp`, `%C:\\tmp%`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, containsPattern(tt.term), tt.term)
	}

	w := &whereBuilder{}
	w.add(`m.description ILIKE ? ESCAPE '\'`, containsPattern("50%_off"))
	assert.Equal(t, `WHERE m.description ILIKE $1 ESCAPE '\'`, w.sql())
	assert.Equal(t, []any{`%50\%\_off%`}, w.args)
}
