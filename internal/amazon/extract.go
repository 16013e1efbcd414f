package amazon

import (
	"tally/internal/common"
	"tally/internal/model"
	"tally/internal/normalize"
	"tally/internal/sheet"
	"tally/internal/source"
	"tally/internal/workbook"
)

// detailHeaderGroup is deliberately loose: order-history exports vary a
// lot, so any single recognizable token marks the header row.
var detailHeaderGroup = []sheet.TokenGroup{
	{Name: "any", Tokens: []string{
		"date", "order date", "transaction date", "posted",
		"description", "amount", "total", "grand total",
	}},
}

var (
	detailDateAliases = []string{
		"order date", "date", "transaction date", "payment date",
	}
	detailAmountAliases = []string{
		"grand total", "order total", "total", "amount", "gbp",
		"item total", "total charged",
	}
)

// ExtractSheetDetails reads one order-detail grid. Rows without a
// parseable amount are skipped; dates are optional and a dateless row
// simply matches at any distance later.
func ExtractSheetDetails(g sheet.Grid, sheetName string) []model.AmazonDetail {
	loc, err := sheet.Locate(g, sheet.TokenScan(detailHeaderGroup, sheet.MaxScanRows), sheet.FixedRow(0))
	if err != nil {
		return nil
	}
	dateCol := source.ResolveColumn(loc.Fields, detailDateAliases)
	amountCol := source.ResolveColumn(loc.Fields, detailAmountAliases)
	if amountCol < 0 {
		common.LogDebug("order-detail sheet has no amount column", common.Fields{
			"sheet": sheetName, "fields": loc.Fields,
		})
		return nil
	}

	var out []model.AmazonDetail
	for r := loc.Row + 1; r < len(g); r++ {
		amount := normalize.AmountOrZero(g.Cell(r, amountCol)).Abs()
		if amount.IsZero() {
			continue
		}
		d := model.AmazonDetail{
			Sheet:    sheetName,
			RowIndex: r - loc.Row,
			Amount:   amount,
		}
		if dateCol >= 0 {
			if t, err := normalize.ParseDate(g.Cell(r, dateCol), normalize.DayFirst); err == nil {
				d.DetailDate = t
			}
		}
		out = append(out, d)
	}
	return out
}

// ExtractDetails reads every Amazon order-detail sheet for the year.
func ExtractDetails(wb *workbook.Workbook, year int) ([]model.AmazonDetail, error) {
	var out []model.AmazonDetail
	for _, name := range workbook.FindAmazonSheets(wb.SheetNames(), year) {
		g, err := wb.Grid(name)
		if err != nil {
			return nil, err
		}
		out = append(out, ExtractSheetDetails(g, name)...)
	}
	return out, nil
}
