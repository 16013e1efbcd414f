package source

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"tally/internal/common"
	"tally/internal/model"
	"tally/internal/normalize"
	"tally/internal/sheet"
)

// columns holds the resolved column indexes for one mapped sheet; -1 means
// the logical field has no column in this export.
type columns struct {
	date     int
	desc     int
	merchant int
	category int
	currency int
	amount   int
	debit    int
	credit   int
}

func resolve(fields []string, s Schema) (columns, error) {
	c := columns{
		date:     ResolveColumn(fields, s.DateAliases),
		desc:     ResolveColumn(fields, s.DescriptionAliases),
		merchant: ResolveColumn(fields, s.MerchantAliases),
		category: ResolveColumn(fields, s.CategoryAliases),
		currency: ResolveColumn(fields, s.CurrencyAliases),
		amount:   ResolveColumn(fields, s.AmountAliases),
		debit:    ResolveColumn(fields, s.DebitAliases),
		credit:   ResolveColumn(fields, s.CreditAliases),
	}
	if c.date < 0 {
		return c, fmt.Errorf("%w: no date column among %v", common.ErrHeaderNotFound, fields)
	}
	if c.amount < 0 && (c.debit < 0 || c.credit < 0) {
		return c, fmt.Errorf("%w: no amount or debit/credit columns", common.ErrHeaderNotFound)
	}
	return c, nil
}

// MapRows builds canonical transactions from the body rows beneath a
// located header. Rows without a resolvable date are dropped silently
// (trailing totals, spacer rows); rows with an unparseable amount are
// logged and skipped so one bad cell cannot abort the batch.
func MapRows(g sheet.Grid, loc sheet.Location, s Schema, sheetName string) ([]model.Transaction, error) {
	cols, err := resolve(loc.Fields, s)
	if err != nil {
		return nil, err
	}

	var out []model.Transaction
	for r := loc.Row + 1; r < len(g); r++ {
		date, err := normalize.ParseDate(g.Cell(r, cols.date), s.DatePolicy)
		if err != nil {
			if strings.TrimSpace(g.Cell(r, cols.date)) != "" {
				common.LogDebug("skipping row with unparseable date", common.Fields{
					"sheet": sheetName, "row": r, "cell": g.Cell(r, cols.date),
				})
			}
			continue
		}

		amount, ok, err := rowAmount(g, r, cols, s.Sign)
		if err != nil {
			common.LogError(err, "skipping row with unparseable amount", common.Fields{
				"sheet": sheetName, "row": r,
			})
			continue
		}
		if !ok {
			continue
		}

		t := model.Transaction{
			Source:     s.Source,
			PostedDate: date,
			Amount:     amount,
			Account:    sheetName,
		}
		if cols.desc >= 0 {
			t.DescriptionRaw = strings.TrimSpace(g.Cell(r, cols.desc))
		}
		if cols.merchant >= 0 {
			t.MerchantRaw = strings.TrimSpace(g.Cell(r, cols.merchant))
		}
		if t.MerchantRaw == "" {
			t.MerchantRaw = t.DescriptionRaw
		}
		if cols.category >= 0 {
			t.CategoryRaw = strings.TrimSpace(g.Cell(r, cols.category))
		}
		if cols.currency >= 0 {
			t.Currency = strings.TrimSpace(g.Cell(r, cols.currency))
		}
		out = append(out, t)
	}
	return out, nil
}

// rowAmount resolves the canonical signed amount for one row. The second
// return is false when the row carries no amount at all (dropped).
func rowAmount(g sheet.Grid, r int, cols columns, rule SignRule) (amt decimal.Decimal, ok bool, err error) {
	if cols.amount >= 0 {
		cell := g.Cell(r, cols.amount)
		if strings.TrimSpace(cell) == "" {
			return amt, false, nil
		}
		d, perr := normalize.ParseAmount(cell)
		if perr != nil {
			return amt, false, perr
		}
		if rule == InflowPositive {
			// Bank polarity: + is money in. Canonical wants outflow positive.
			d = d.Neg()
		}
		return d, true, nil
	}

	deb := normalize.AmountOrZero(g.Cell(r, cols.debit))
	cred := normalize.AmountOrZero(g.Cell(r, cols.credit))
	switch {
	case !deb.IsZero():
		return deb, true, nil
	case !cred.IsZero():
		return cred.Neg(), true, nil
	default:
		return amt, false, nil
	}
}
