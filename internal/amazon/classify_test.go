package amazon

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/common"
	"tally/internal/model"
	"tally/internal/sheet"
)

func TestClassifier_LooksAmazon(t *testing.T) {
	c, err := NewClassifier(nil)
	require.NoError(t, err)

	tests := []struct {
		text string
		want bool
	}{
		{"AMAZON EU SARL LUXEMBOURG", true},
		{"AMZN Mktp US*2A1BC3", true},
		{"AMZNMKTPLACE LONDON", true},
		{"Amazon Prime*UK", true},
		{"AMZN DIGITAL DOWNLOADS", true},
		{"amazon.co.uk", true},
		{"TESCO STORES 1234", false},
		{"AMAZONIA RESTAURANT", false}, // word boundary holds
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.LooksAmazon(tt.text), "text %q", tt.text)
	}
}

func TestNewClassifier_CustomPatterns(t *testing.T) {
	c, err := NewClassifier([]string{`\bacme\b`})
	require.NoError(t, err)
	assert.True(t, c.LooksAmazon("ACME WAREHOUSE"))
	assert.False(t, c.LooksAmazon("AMAZON EU"))

	_, err = NewClassifier([]string{`(unclosed`})
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestCollectParents(t *testing.T) {
	c, err := NewClassifier(nil)
	require.NoError(t, err)

	txns := []model.Transaction{
		{MerchantRaw: "TESCO", Amount: decimal.RequireFromString("10.00")},
		{MerchantRaw: "AMAZON EU", Amount: decimal.RequireFromString("49.99")},
		{DescriptionRaw: "AMZN MKTP UK", Amount: decimal.RequireFromString("-25.00")},
	}

	parents, idx := c.CollectParents(txns)
	require.Len(t, parents, 2)
	assert.Equal(t, []int{1, 2}, idx)
	assert.Equal(t, "49.99", parents[0].Amount.String())
	// Refund amounts are matched by magnitude.
	assert.Equal(t, "25", parents[1].Amount.String())
}

func TestExtractSheetDetails(t *testing.T) {
	g := sheet.Grid{
		{"Order history export"},
		{"Order Date", "Items", "Grand Total"},
		{"10/03/2024", "USB cable", "£12.99"},
		{"", "Batteries", "8.50"}, // dateless row kept
		{"12/03/2024", "Cancelled order", ""},
		{"13/03/2024", "Refund note", "0"},
	}

	details := ExtractSheetDetails(g, "Amazon 2024")
	require.Len(t, details, 2)

	assert.Equal(t, "Amazon 2024", details[0].Sheet)
	assert.Equal(t, 1, details[0].RowIndex)
	assert.Equal(t, "12.99", details[0].Amount.String())
	assert.True(t, details[0].HasDate())

	assert.Equal(t, "8.5", details[1].Amount.String())
	assert.False(t, details[1].HasDate())
}

func TestExtractSheetDetails_NoAmountColumn(t *testing.T) {
	g := sheet.Grid{
		{"Order Date", "Items", "Notes"},
		{"10/03/2024", "USB cable", "n/a"},
	}
	assert.Empty(t, ExtractSheetDetails(g, "Amazon 2024"))
}
