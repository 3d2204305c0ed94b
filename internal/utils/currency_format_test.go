package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMinorUnits(t *testing.T) {
	assert.Equal(t, "123.45", FormatMinorUnits(12345, "USD"))
	assert.Equal(t, "-500.00", FormatMinorUnits(-50000, "eur"))
	assert.Equal(t, "12345", FormatMinorUnits(12345, "JPY"))
	assert.Equal(t, "1.234", FormatMinorUnits(1234, "KWD"))
	assert.Equal(t, "0.00", FormatMinorUnits(0, "USD"))
}

func TestParseMajorUnits(t *testing.T) {
	v, err := ParseMajorUnits("123.45", "USD")
	require.NoError(t, err)
	assert.Equal(t, int64(12345), v)

	v, err = ParseMajorUnits(" 10 ", "JPY")
	require.NoError(t, err)
	assert.Equal(t, int64(10), v)

	v, err = ParseMajorUnits("0.005", "USD")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	_, err = ParseMajorUnits("abc", "USD")
	assert.Error(t, err)
}
