package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/common"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{name: "plain number", cell: "49.99", want: "49.99"},
		{name: "negative", cell: "-123.45", want: "-123.45"},
		{name: "pound prefix", cell: "£1,234.56", want: "1234.56"},
		{name: "dollar prefix", cell: "$99.00", want: "99"},
		{name: "euro prefix", cell: "€12.50", want: "12.5"},
		{name: "thousands and spaces", cell: " 1,000,000.01 ", want: "1000000.01"},
		{name: "integer", cell: "42", want: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.cell)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseAmount_Errors(t *testing.T) {
	for _, cell := range []string{"", "   ", "abc", "£"} {
		_, err := ParseAmount(cell)
		require.Error(t, err, "cell %q", cell)
		assert.ErrorIs(t, err, common.ErrAmountParse)
	}
}

func TestParseAmount_Idempotent(t *testing.T) {
	// Re-parsing a canonical rendering is stable.
	first, err := ParseAmount("£1,234.50")
	require.NoError(t, err)
	second, err := ParseAmount(first.String())
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestAmountOrZero(t *testing.T) {
	assert.True(t, AmountOrZero("").IsZero())
	assert.True(t, AmountOrZero("n/a").IsZero())
	assert.Equal(t, "15.25", AmountOrZero("£15.25").String())
}
