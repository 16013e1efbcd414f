package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tally/internal/cli"
	"tally/internal/sheet"
	"tally/internal/source"
	"tally/internal/workbook"
)

func inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show header detection diagnostics for each recognized sheet",
		Long: `For every sheet tally would read, print which locator strategy found the
header row, its index, and the promoted field names. Useful when a new
export's columns refuse to resolve.`,
		RunE: runInspect,
	}
	cmd.Flags().StringP("file", "f", "", "workbook path (default from config)")
	cmd.Flags().IntP("year", "y", 0, "year of interest (default: current year)")
	return cmd
}

func runInspect(cmd *cobra.Command, _ []string) error {
	cfg := activeConfig(cmd)

	wb, err := workbook.Open(cfg.Workbook)
	if err != nil {
		return err
	}
	defer func() { _ = wb.Close() }()

	names := wb.SheetNames()
	type target struct {
		name   string
		kind   string
		groups []sheet.TokenGroup
	}
	var targets []target

	if name, ok := workbook.FindYearSheet(names, cfg.Year, "amex"); ok {
		targets = append(targets, target{name, "amex", source.Amex.HeaderGroups})
	}
	if name, ok := workbook.FindYearSheet(names, cfg.Year, "mc", "master"); ok {
		targets = append(targets, target{name, "mc", source.MC.HeaderGroups})
	}
	for _, name := range workbook.FindHintSheets(names, cfg.BankSheetHints) {
		targets = append(targets, target{name, "bank", source.Bank.HeaderGroups})
	}
	for _, name := range workbook.FindAmazonSheets(names, cfg.Year) {
		targets = append(targets, target{name, "amazon-detail", nil})
	}
	if wb.HasSheet(workbook.TruthSheet) {
		targets = append(targets, target{workbook.TruthSheet, "truth", nil})
	}

	if len(targets) == 0 {
		fmt.Println(cli.WarningStyle.Render("No recognizable sheets found."))
		return nil
	}

	for _, t := range targets {
		g, err := wb.Grid(t.name)
		if err != nil {
			return err
		}

		strategies := []sheet.Strategy{sheet.FirstNonBlank(), sheet.FixedRow(0)}
		if t.groups != nil {
			strategies = append([]sheet.Strategy{sheet.TokenScan(t.groups, sheet.MaxScanRows)}, strategies...)
		}
		loc, err := sheet.Locate(g, strategies...)
		if err != nil {
			fmt.Printf("%s %s\n", cli.BoldStyle.Render(t.name), cli.ErrorStyle.Render(err.Error()))
			continue
		}

		fmt.Printf("%s (%s)\n", cli.BoldStyle.Render(t.name), t.kind)
		fmt.Printf("  header row %d via %s\n", loc.Row, cli.SuccessStyle.Render(loc.Strategy))
		fmt.Printf("  fields: %s\n\n", cli.SubtleStyle.Render(strings.Join(loc.Fields, " | ")))
	}
	return nil
}
