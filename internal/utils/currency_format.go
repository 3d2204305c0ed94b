package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// minorUnitExponents lists ISO 4217 currencies whose minor unit is not 1/100.
var minorUnitExponents = map[string]int32{
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0, "KMF": 0, "KRW": 0,
	"PYG": 0, "RWF": 0, "UGX": 0, "UYI": 0, "VND": 0, "VUV": 0, "XAF": 0, "XOF": 0, "XPF": 0,
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
}

// MinorUnitExponent returns the number of decimal places of a currency's minor unit.
func MinorUnitExponent(currencyCode string) int32 {
	if exp, ok := minorUnitExponents[strings.ToUpper(currencyCode)]; ok {
		return exp
	}
	return 2
}

// ToMajorUnits converts an amount in minor units to a decimal in major units.
// Example: 12345 USD returns 123.45, 12345 JPY returns 12345.
func ToMajorUnits(amount int64, currencyCode string) decimal.Decimal {
	return decimal.New(amount, -MinorUnitExponent(currencyCode))
}

// FormatMinorUnits renders an amount in minor units with the currency's precision.
// Example: -50000 USD returns "-500.00".
func FormatMinorUnits(amount int64, currencyCode string) string {
	exp := MinorUnitExponent(currencyCode)
	return decimal.New(amount, -exp).StringFixed(exp)
}

// ParseMajorUnits converts a major-unit string such as "123.45" to minor units.
// Extra precision beyond the currency's minor unit is rounded half away from zero.
func ParseMajorUnits(value string, currencyCode string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	exp := MinorUnitExponent(currencyCode)
	return d.Shift(exp).Round(0).IntPart(), nil
}
