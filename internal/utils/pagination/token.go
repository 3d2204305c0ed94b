package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// Cursor is the position after the last row of a page of movements, which are
// ordered by transaction date, creation time and id, all descending.
type Cursor struct {
	TransactionDate time.Time
	CreatedAt       time.Time
	MovementID      string
}

// EncodeToken creates a base64 encoded token from a cursor.
func EncodeToken(c Cursor) string {
	tokenStr := fmt.Sprintf("%s|%s|%s", c.TransactionDate.Format(timeFormat), c.CreatedAt.Format(timeFormat), c.MovementID)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 || parts[2] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	txDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (transaction date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return Cursor{TransactionDate: txDate, CreatedAt: createdAt, MovementID: parts[2]}, nil
}

// NextToken returns the token for the page after rows when the page is full,
// or nil when rows is the last page.
func NextToken[T any](rows []T, limit int, cursorOf func(T) Cursor) *string {
	if limit <= 0 || len(rows) < limit {
		return nil
	}
	token := EncodeToken(cursorOf(rows[len(rows)-1]))
	return &token
}
