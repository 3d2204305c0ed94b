// Package spreadsheet converts between XLSX workbooks and movements.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/SscSPs/movement_tracker/internal/utils"
	"github.com/xuri/excelize/v2"
)

// ErrNoRows is returned for a workbook without data rows.
var ErrNoRows = errors.New("workbook has no data rows")

// RowError points at the offending row, counted as a user sees it in the sheet.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// column names accepted in the header row, lower-cased
var headerAliases = map[string]string{
	"date":             "date",
	"transaction date": "date",
	"fecha":            "date",
	"description":      "description",
	"concept":          "description",
	"concepto":         "description",
	"amount":           "amount",
	"monto":            "amount",
	"importe":          "amount",
	"currency":         "currency",
	"moneda":           "currency",
	"type":             "type",
	"tipo":             "type",
	"category":         "category",
	"categoria":        "category",
	"reference":        "reference",
	"referencia":       "reference",
	"internal":         "internal",
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"01-02-06",
	"2006/01/02",
	time.RFC3339,
}

// ReadDraftRows parses the first sheet of a workbook into draft rows for
// areaID. The first row is the header; blank rows are skipped. Amounts are
// read in major units. Without a type column a negative amount is an
// EXPENSE and a positive one an INCOME.
func ReadDraftRows(r io.Reader, areaID, defaultCurrency string, maxRows int) ([]domain.DraftRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRows
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, ErrNoRows
	}

	columns := map[string]int{}
	for i, cell := range rows[0] {
		if name, ok := headerAliases[strings.ToLower(strings.TrimSpace(cell))]; ok {
			columns[name] = i
		}
	}
	for _, required := range []string{"date", "amount"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing %q column in header row", required)
		}
	}

	out := make([]domain.DraftRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		if maxRows > 0 && len(out) == maxRows {
			return nil, fmt.Errorf("workbook has more than %d rows", maxRows)
		}
		draft, err := parseRow(row, columns, areaID, defaultCurrency)
		if err != nil {
			return nil, &RowError{Row: i + 2, Err: err}
		}
		out = append(out, draft)
	}
	if len(out) == 0 {
		return nil, ErrNoRows
	}
	return out, nil
}

func parseRow(row []string, columns map[string]int, areaID, defaultCurrency string) (domain.DraftRow, error) {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	currency := strings.ToUpper(cell("currency"))
	if currency == "" {
		currency = strings.ToUpper(defaultCurrency)
	}
	if len(currency) != 3 {
		return domain.DraftRow{}, fmt.Errorf("invalid currency %q", currency)
	}

	date, err := parseDate(cell("date"))
	if err != nil {
		return domain.DraftRow{}, err
	}

	amount, err := utils.ParseMajorUnits(strings.ReplaceAll(cell("amount"), ",", ""), currency)
	if err != nil {
		return domain.DraftRow{}, fmt.Errorf("invalid amount %q", cell("amount"))
	}

	movementType := domain.MovementType(strings.ToUpper(cell("type")))
	if movementType == "" {
		movementType = domain.MovementIncome
		if amount < 0 {
			movementType = domain.MovementExpense
		}
	}
	if !movementType.IsValid() {
		return domain.DraftRow{}, fmt.Errorf("invalid type %q", movementType)
	}
	if amount < 0 {
		amount = -amount
	}
	if amount == 0 {
		return domain.DraftRow{}, errors.New("amount must be greater than zero")
	}

	internal, _ := strconv.ParseBool(cell("internal"))
	return domain.DraftRow{
		AreaID:             areaID,
		Type:               movementType,
		Amount:             amount,
		CurrencyCode:       currency,
		Description:        cell("description"),
		Category:           optional(cell("category")),
		Reference:          optional(cell("reference")),
		TransactionDate:    date,
		IsInternalTransfer: internal,
	}, nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("date is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	// Unformatted cells come through as the Excel serial number.
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
