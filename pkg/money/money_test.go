package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatterGroupsAndRounds(t *testing.T) {
	f, err := NewFormatter("USD", "en", 2)
	require.NoError(t, err)

	assert.Equal(t, "USD 1,234,567.50", f.Format(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "0.00", f.Number(decimal.Zero))
}

func TestFormatterWithoutDecimals(t *testing.T) {
	f, err := NewFormatter("COP", "en", 0)
	require.NoError(t, err)

	assert.Equal(t, "3,213", f.Number(decimal.RequireFromString("3212.6")))
	assert.Equal(t, "COP", f.Code())
	assert.True(t, decimal.NewFromInt(3213).Equal(f.Round(decimal.RequireFromString("3212.6"))))
}

func TestFormatterRejectsUnknownCurrency(t *testing.T) {
	_, err := NewFormatter("ZZZ", "en", 0)
	assert.Error(t, err)

	_, err = NewFormatter("COP", "not a locale!", 0)
	assert.Error(t, err)
}
