// Package config loads the tool configuration through viper and compiles
// it into an explicit value threaded through the pipeline. Nothing here is
// cached globally: load once at process start, pass down as a parameter.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"tally/internal/common"
	"tally/internal/source"
)

// SuppressLists holds raw suppression patterns for one source class.
type SuppressLists struct {
	ExpenseIgnore []string
	IncomeIgnore  []string
}

// Config is the full tool configuration as loaded from file, environment
// and flags.
type Config struct {
	Workbook string
	Year     int

	SuppressBank  SuppressLists
	SuppressCards SuppressLists

	CategoryExclude   []string
	CategoryNormalize map[string]string
	IncomeCategories  []string

	TruthIncomeColumns       []string
	TruthCardsOnlyCategories []string

	AmazonPatterns        []string
	AmazonMatchWindowDays int
	AmazonGroupWindowDays int
	AmazonMaxGroup        int
	// AmazonSuppressParents replaces matched aggregate charges with their
	// itemized detail. Env: TALLY_AMAZON_SUPPRESS_PARENTS.
	AmazonSuppressParents bool

	BankSheetHints []string
	// BankSuppressCardBills drops bank rows paying off card statements.
	// Default on. Env: TALLY_BANK_SUPPRESS_CARD_BILLS.
	BankSuppressCardBills bool

	// hasSuppressSection records whether the config file carried any
	// suppression rules at all; reconciliation refuses to run without it.
	hasSuppressSection bool
}

// SetDefaults registers defaults on the viper instance before reading.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("workbook", "./data/Savings.xlsx")
	v.SetDefault("amazon.match_window_days", 5)
	v.SetDefault("amazon.group_window_days", 7)
	v.SetDefault("amazon.max_group", 3)
	v.SetDefault("amazon.suppress_parents", false)
	v.SetDefault("bank.suppress_card_bills", true)
	v.SetDefault("bank.sheet_hints", []string{"account", "david", "sonya"})
}

// Load reads the configuration out of viper.
func Load(v *viper.Viper) Config {
	return Config{
		Workbook: ExpandPath(v.GetString("workbook")),
		Year:     v.GetInt("year"),

		SuppressBank: SuppressLists{
			ExpenseIgnore: v.GetStringSlice("suppress.bank.expense_ignore"),
			IncomeIgnore:  v.GetStringSlice("suppress.bank.income_ignore"),
		},
		SuppressCards: SuppressLists{
			ExpenseIgnore: v.GetStringSlice("suppress.cards.expense_ignore"),
			IncomeIgnore:  v.GetStringSlice("suppress.cards.income_ignore"),
		},

		CategoryExclude:   v.GetStringSlice("categories.exclude"),
		CategoryNormalize: v.GetStringMapString("categories.normalize"),
		IncomeCategories:  v.GetStringSlice("categories.income_categories"),

		TruthIncomeColumns:       v.GetStringSlice("truth.income_columns"),
		TruthCardsOnlyCategories: v.GetStringSlice("truth.cards_only_categories"),

		AmazonPatterns:        v.GetStringSlice("amazon.patterns"),
		AmazonMatchWindowDays: v.GetInt("amazon.match_window_days"),
		AmazonGroupWindowDays: v.GetInt("amazon.group_window_days"),
		AmazonMaxGroup:        v.GetInt("amazon.max_group"),
		AmazonSuppressParents: v.GetBool("amazon.suppress_parents"),

		BankSheetHints:        v.GetStringSlice("bank.sheet_hints"),
		BankSuppressCardBills: v.GetBool("bank.suppress_card_bills"),

		hasSuppressSection: v.IsSet("suppress"),
	}
}

// RequireSuppression verifies the suppression section exists. Running the
// reconciliation with silently-empty rules would report phantom income, so
// an absent section is fatal rather than defaulted.
func (c Config) RequireSuppression() error {
	if !c.hasSuppressSection {
		return fmt.Errorf("%w: no suppress section; reconciliation needs explicit suppression rules (use suppress: {} to opt out)", common.ErrMissingConfig)
	}
	return nil
}

// CompiledRules holds the suppression regexes compiled once at startup.
type CompiledRules struct {
	Bank  source.SuppressRules
	Cards source.SuppressRules
}

// Compile compiles every suppression pattern, failing fast on malformed
// regexes so a typo cannot silently disable a rule.
func (c Config) Compile() (CompiledRules, error) {
	var out CompiledRules
	var err error
	if out.Bank.Expense, err = common.CompilePatterns(c.SuppressBank.ExpenseIgnore); err != nil {
		return out, fmt.Errorf("suppress.bank.expense_ignore: %w", err)
	}
	if out.Bank.Income, err = common.CompilePatterns(c.SuppressBank.IncomeIgnore); err != nil {
		return out, fmt.Errorf("suppress.bank.income_ignore: %w", err)
	}
	if out.Cards.Expense, err = common.CompilePatterns(c.SuppressCards.ExpenseIgnore); err != nil {
		return out, fmt.Errorf("suppress.cards.expense_ignore: %w", err)
	}
	if out.Cards.Income, err = common.CompilePatterns(c.SuppressCards.IncomeIgnore); err != nil {
		return out, fmt.Errorf("suppress.cards.income_ignore: %w", err)
	}
	return out, nil
}

// CategoryRules returns the category normalization rules for the mapper.
func (c Config) CategoryRules() source.CategoryRules {
	return source.CategoryRules{
		Exclude:          c.CategoryExclude,
		Normalize:        c.CategoryNormalize,
		IncomeCategories: c.IncomeCategories,
	}
}
