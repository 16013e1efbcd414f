package normalize

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"tally/internal/common"
)

// amountCleaner strips currency symbols, thousands separators and spacing
// before decimal parsing.
var amountCleaner = strings.NewReplacer(
	"£", "",
	"$", "",
	"€", "",
	",", "",
	" ", "",
	" ", "",
)

// ParseAmount converts a raw cell value into a signed decimal. Returns
// common.ErrAmountParse for empty or unparseable input; callers that treat
// absence as "no value" use AmountOrZero instead.
func ParseAmount(cell string) (decimal.Decimal, error) {
	s := amountCleaner.Replace(strings.TrimSpace(cell))
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty cell", common.ErrAmountParse)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", common.ErrAmountParse, cell)
	}
	return d, nil
}

// AmountOrZero converts a raw cell value into a signed decimal, yielding
// zero for blank or unparseable cells.
func AmountOrZero(cell string) decimal.Decimal {
	d, err := ParseAmount(cell)
	if err != nil {
		return decimal.Zero
	}
	return d
}
