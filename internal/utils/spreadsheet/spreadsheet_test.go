package spreadsheet

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := r
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf := new(bytes.Buffer)
	_, err := f.WriteTo(buf)
	require.NoError(t, err)
	return buf
}

func TestReadDraftRows(t *testing.T) {
	buf := workbook(t, [][]any{
		{"Date", "Description", "Amount", "Currency", "Type", "Category"},
		{"2024-03-01", "Office rent", "-1200.50", "", "", "rent"},
		{},
		{"2024-03-02", "Donation", "300", "EUR", "INCOME", ""},
	})

	rows, err := ReadDraftRows(buf, "area-1", "usd", 500)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "area-1", rows[0].AreaID)
	assert.Equal(t, domain.MovementExpense, rows[0].Type)
	assert.Equal(t, int64(120050), rows[0].Amount)
	assert.Equal(t, "USD", rows[0].CurrencyCode)
	require.NotNil(t, rows[0].Category)
	assert.Equal(t, "rent", *rows[0].Category)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), rows[0].TransactionDate)

	assert.Equal(t, domain.MovementIncome, rows[1].Type)
	assert.Equal(t, int64(30000), rows[1].Amount)
	assert.Equal(t, "EUR", rows[1].CurrencyCode)
	assert.Nil(t, rows[1].Category)
}

func TestReadDraftRows_Errors(t *testing.T) {
	_, err := ReadDraftRows(workbook(t, [][]any{{"Date", "Amount"}}), "a", "USD", 500)
	assert.ErrorIs(t, err, ErrNoRows)

	_, err = ReadDraftRows(workbook(t, [][]any{{"Description"}, {"x"}}), "a", "USD", 500)
	assert.ErrorContains(t, err, `missing "date" column`)

	_, err = ReadDraftRows(workbook(t, [][]any{{"Date", "Amount"}, {"2024-01-01", "abc"}}), "a", "USD", 500)
	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 2, rowErr.Row)

	_, err = ReadDraftRows(workbook(t, [][]any{{"Date", "Amount"}, {"2024-01-01", "1"}, {"2024-01-02", "2"}}), "a", "USD", 1)
	assert.ErrorContains(t, err, "more than 1 rows")

	_, err = ReadDraftRows(bytes.NewBufferString("not a workbook"), "a", "USD", 500)
	assert.Error(t, err)
}

func TestWriteMovementsReport(t *testing.T) {
	dept := "dept-1"
	movements := []domain.Movement{
		{AreaID: "area-1", DepartmentID: &dept, Type: domain.MovementIncome, Amount: 300000, CurrencyCode: "USD", TransactionDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{AreaID: "area-1", Type: domain.MovementExpense, Amount: 350000, CurrencyCode: "USD", TransactionDate: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)},
	}
	balance := domain.NewBalance(300000, 350000, 0, 0)

	buf := new(bytes.Buffer)
	require.NoError(t, WriteMovementsReport(buf, movements, balance, "USD"))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 7)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "2024-01-05", rows[1][0])
	assert.Equal(t, "dept-1", rows[1][3])
	assert.Equal(t, "3000", rows[1][8])

	last := rows[len(rows)-1]
	assert.Equal(t, []string{"Balance", "-500"}, last[len(last)-2:])
}
