package domain

// BankAccount is an organization account an area moves money through.
type BankAccount struct {
	BankAccountID string `json:"bankAccountID" db:"bank_account_id"`
	AreaID        string `json:"areaID" db:"area_id"`
	Name          string `json:"name" db:"name"`
	BankName      string `json:"bankName" db:"bank_name"`
	AccountNumber string `json:"accountNumber" db:"account_number"`
	CurrencyCode  string `json:"currencyCode" db:"currency_code"`
	IsActive      bool   `json:"isActive" db:"is_active"`
	AuditFields
}

// MaskedNumber hides all but the last four characters of the account number.
func (b BankAccount) MaskedNumber() string {
	n := len(b.AccountNumber)
	if n <= 4 {
		return b.AccountNumber
	}
	masked := make([]byte, n)
	for i := 0; i < n-4; i++ {
		masked[i] = '*'
	}
	copy(masked[n-4:], b.AccountNumber[n-4:])
	return string(masked)
}
