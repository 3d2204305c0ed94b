package spreadsheet

import (
	"io"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/SscSPs/movement_tracker/internal/utils"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Movements"

var reportHeader = []any{"Date", "Type", "Area", "Department", "Category", "Description", "Reference", "Currency", "Amount"}

// WriteMovementsReport writes movements, one per row, followed by the
// income, expense and balance totals. Amounts are written in major units.
func WriteMovementsReport(w io.Writer, movements []domain.Movement, balance domain.Balance, currencyCode string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := setRow(f, 1, reportHeader); err != nil {
		return err
	}
	if err := f.SetRowStyle(reportSheet, 1, 1, bold); err != nil {
		return err
	}

	row := 2
	for _, m := range movements {
		values := []any{
			m.TransactionDate.Format("2006-01-02"),
			string(m.Type),
			m.AreaID,
			deref(m.DepartmentID),
			deref(m.Category),
			m.Description,
			deref(m.Reference),
			m.CurrencyCode,
			utils.ToMajorUnits(m.Amount, m.CurrencyCode).InexactFloat64(),
		}
		if err := setRow(f, row, values); err != nil {
			return err
		}
		row++
	}

	row++
	totals := [][]any{
		{"Income", utils.ToMajorUnits(balance.Income, currencyCode).InexactFloat64()},
		{"Expenses", utils.ToMajorUnits(balance.Expenses, currencyCode).InexactFloat64()},
		{"Balance", utils.ToMajorUnits(balance.Balance, currencyCode).InexactFloat64()},
	}
	for _, t := range totals {
		cell, err := excelize.CoordinatesToCellName(len(reportHeader)-1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(reportSheet, cell, &t); err != nil {
			return err
		}
		if err := f.SetCellStyle(reportSheet, cell, cell, bold); err != nil {
			return err
		}
		row++
	}

	_, err = f.WriteTo(w)
	return err
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(reportSheet, cell, &values)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
