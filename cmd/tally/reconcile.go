package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/compare"
	"tally/internal/etl"
	"tally/internal/workbook"
)

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare computed monthly totals against the ledger tab",
		Long: `Parse the year's card exports and embedded bank statements, roll them up
into monthly income/expense totals, and compare against the hand-kept
"Detail" ledger tab. A missing ledger tab is fatal: zeroed truth data
would mask real discrepancies as passes.`,
		RunE: runReconcile,
	}
	cmd.Flags().StringP("file", "f", "", "workbook path (default from config)")
	cmd.Flags().IntP("year", "y", 0, "year to reconcile (default: current year)")
	cmd.Flags().Bool("cards-only", false, "reconcile card exports against whitelisted ledger categories only")
	return cmd
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	cfg := activeConfig(cmd)
	cardsOnly, _ := cmd.Flags().GetBool("cards-only")

	if err := cfg.RequireSuppression(); err != nil {
		return err
	}
	pipeline, err := etl.New(cfg)
	if err != nil {
		return err
	}

	wb, err := workbook.Open(cfg.Workbook)
	if err != nil {
		return err
	}
	defer func() { _ = wb.Close() }()

	rows, err := pipeline.Reconcile(wb, cfg.Year, cardsOnly)
	if err != nil {
		return err
	}

	fmt.Print(compare.RenderTable(cfg.Year, rows))
	return nil
}
