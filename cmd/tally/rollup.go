package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/compare"
	"tally/internal/etl"
	"tally/internal/rollup"
	"tally/internal/workbook"
)

func rollupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rollup",
		Short: "Print computed monthly totals without comparing to the ledger",
		RunE:  runRollup,
	}
	cmd.Flags().StringP("file", "f", "", "workbook path (default from config)")
	cmd.Flags().IntP("year", "y", 0, "year to roll up (default: current year)")
	cmd.Flags().Bool("cards-only", false, "skip the embedded bank statement tabs")
	return cmd
}

func runRollup(cmd *cobra.Command, _ []string) error {
	cfg := activeConfig(cmd)
	cardsOnly, _ := cmd.Flags().GetBool("cards-only")

	pipeline, err := etl.New(cfg)
	if err != nil {
		return err
	}

	wb, err := workbook.Open(cfg.Workbook)
	if err != nil {
		return err
	}
	defer func() { _ = wb.Close() }()

	txns, err := pipeline.LoadTransactions(wb, cfg.Year, cardsOnly)
	if err != nil {
		return err
	}

	fmt.Print(compare.RenderRollup(cfg.Year, rollup.Monthly(cfg.Year, txns)))
	return nil
}
