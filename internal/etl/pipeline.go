// Package etl wires the pipeline together: workbook → header location →
// row mapping → canonical transactions → rollup → truth comparison.
package etl

import (
	"fmt"

	"tally/internal/amazon"
	"tally/internal/common"
	"tally/internal/compare"
	"tally/internal/config"
	"tally/internal/model"
	"tally/internal/rollup"
	"tally/internal/sheet"
	"tally/internal/source"
	"tally/internal/truth"
	"tally/internal/workbook"
)

// Pipeline holds the configuration compiled once at startup. It carries no
// mutable state: every run reads the workbook fresh and is deterministic
// for a given input.
type Pipeline struct {
	classifier *amazon.Classifier
	cfg        config.Config
	rules      config.CompiledRules
}

// New compiles the configuration into a pipeline. Malformed patterns fail
// here, before any sheet is read.
func New(cfg config.Config) (*Pipeline, error) {
	rules, err := cfg.Compile()
	if err != nil {
		return nil, err
	}
	classifier, err := amazon.NewClassifier(cfg.AmazonPatterns)
	if err != nil {
		return nil, fmt.Errorf("amazon.patterns: %w", err)
	}
	return &Pipeline{cfg: cfg, rules: rules, classifier: classifier}, nil
}

// Classifier exposes the compiled Amazon merchant classifier.
func (p *Pipeline) Classifier() *amazon.Classifier {
	return p.classifier
}

// locate runs the standard header chain for a statement sheet: the strict
// token scan, then first-non-blank promotion for sheets whose nominal
// header row is empty, then row 0 as the documented best-guess fallback.
func locate(g sheet.Grid, s source.Schema, sheetName string) (sheet.Location, error) {
	loc, err := sheet.Locate(g,
		sheet.TokenScan(s.HeaderGroups, sheet.MaxScanRows),
		sheet.FirstNonBlank(),
		sheet.FixedRow(0),
	)
	if err != nil {
		return loc, err
	}
	if loc.Strategy != "token-scan" {
		common.LogInfo("header row located by fallback", common.Fields{
			"sheet": sheetName, "strategy": loc.Strategy, "row": loc.Row,
		})
	}
	return loc, nil
}

// loadSheet maps one statement sheet into canonical transactions.
func loadSheet(wb *workbook.Workbook, name string, s source.Schema) ([]model.Transaction, error) {
	g, err := wb.Grid(name)
	if err != nil {
		return nil, err
	}
	loc, err := locate(g, s, name)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}
	txns, err := source.MapRows(g, loc, s, name)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}
	return txns, nil
}

// LoadCards parses the year's card exports (Amex and Mastercard) into
// canonical transactions, with payment filtering and card suppression
// rules applied.
func (p *Pipeline) LoadCards(wb *workbook.Workbook, year int) ([]model.Transaction, error) {
	var out []model.Transaction

	names := wb.SheetNames()
	if name, ok := workbook.FindYearSheet(names, year, "amex"); ok {
		txns, err := loadSheet(wb, name, source.Amex)
		if err != nil {
			return nil, err
		}
		out = append(out, txns...)
	} else {
		common.LogInfo("no amex sheet for year", common.Fields{"year": year})
	}

	if name, ok := workbook.FindYearSheet(names, year, "mc", "master"); ok {
		txns, err := loadSheet(wb, name, source.MC)
		if err != nil {
			return nil, err
		}
		out = append(out, txns...)
	} else {
		common.LogInfo("no mastercard sheet for year", common.Fields{"year": year})
	}

	out = source.FilterPayments(out)
	out, dropped := source.Suppress(out, p.rules.Cards)
	if dropped > 0 {
		common.LogDebug("card rows suppressed", common.Fields{"count": dropped})
	}
	return out, nil
}

// LoadBank parses the embedded bank statement tabs. Rows outside the
// requested year are dropped, card-bill payments are filtered when the
// feature flag is on (default), and bank suppression rules applied.
func (p *Pipeline) LoadBank(wb *workbook.Workbook, year int) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, name := range workbook.FindHintSheets(wb.SheetNames(), p.cfg.BankSheetHints) {
		txns, err := loadSheet(wb, name, source.Bank)
		if err != nil {
			return nil, err
		}
		for _, t := range txns {
			if t.PostedDate.Year() == year {
				out = append(out, t)
			}
		}
	}

	if p.cfg.BankSuppressCardBills {
		out = source.FilterCardBills(out)
	}
	out, dropped := source.Suppress(out, p.rules.Bank)
	if dropped > 0 {
		common.LogDebug("bank rows suppressed", common.Fields{"count": dropped})
	}
	return out, nil
}

// LoadTransactions builds the full canonical transaction set for a year.
// With cardsOnly set the bank tabs are skipped. Category rules are applied
// last; when parent suppression is enabled, card charges matched to
// itemized Amazon detail are removed to avoid double counting.
func (p *Pipeline) LoadTransactions(wb *workbook.Workbook, year int, cardsOnly bool) ([]model.Transaction, error) {
	txns, err := p.LoadCards(wb, year)
	if err != nil {
		return nil, err
	}
	if !cardsOnly {
		bank, err := p.LoadBank(wb, year)
		if err != nil {
			return nil, err
		}
		txns = append(txns, bank...)
	}

	txns = source.ApplyCategoryRules(txns, p.cfg.CategoryRules())

	if p.cfg.AmazonSuppressParents {
		details, err := amazon.ExtractDetails(wb, year)
		if err != nil {
			return nil, err
		}
		var suppressed int
		txns, suppressed = amazon.SuppressMatched(txns, p.classifier, details, p.cfg.AmazonMatchWindowDays)
		common.LogInfo("amazon parents suppressed", common.Fields{"count": suppressed})
	}
	return txns, nil
}

// TruthOptions resolves the ledger conventions from config over defaults.
func (p *Pipeline) TruthOptions() truth.Options {
	opts := truth.DefaultOptions()
	if len(p.cfg.TruthIncomeColumns) > 0 {
		opts.IncomeColumns = p.cfg.TruthIncomeColumns
	}
	if len(p.cfg.TruthCardsOnlyCategories) > 0 {
		opts.CardsOnlyCategories = p.cfg.TruthCardsOnlyCategories
	}
	return opts
}

// Reconcile runs the full comparison for one year. A missing truth sheet
// is fatal: zeroed truth data would mask real discrepancies as passes.
func (p *Pipeline) Reconcile(wb *workbook.Workbook, year int, cardsOnly bool) ([]model.VarianceRow, error) {
	txns, err := p.LoadTransactions(wb, year, cardsOnly)
	if err != nil {
		return nil, err
	}
	ours := rollup.Monthly(year, txns)

	g, err := wb.Grid(workbook.TruthSheet)
	if err != nil {
		return nil, err
	}

	var truthTotals []model.MonthlyTotals
	if cardsOnly {
		truthTotals, err = truth.ExtractCardsOnly(g, year, p.TruthOptions())
	} else {
		truthTotals, err = truth.Extract(g, year, p.TruthOptions())
	}
	if err != nil {
		return nil, fmt.Errorf("truth sheet: %w", err)
	}

	return compare.ToTruth(ours, truthTotals), nil
}
