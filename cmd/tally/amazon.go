package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"tally/internal/amazon"
	"tally/internal/etl"
	"tally/internal/model"
	"tally/internal/report"
	"tally/internal/workbook"
)

func amazonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amazon",
		Short: "Match Amazon card charges against itemized order detail",
		Long: `Classify card charges as Amazon purchases and match them against the
order-history detail sheets by exact amount and date proximity. Split
shipments are covered by grouped matching: up to a configured number of
detail lines summing exactly to one charge within a wider date window.`,
		RunE: runAmazon,
	}
	cmd.Flags().StringP("file", "f", "", "workbook path (default from config)")
	cmd.Flags().IntP("year", "y", 0, "year to match (default: current year)")
	cmd.Flags().String("format", "html", "report format: html, markdown or csv")
	cmd.Flags().StringP("out", "o", "", "write a report document to this path")
	cmd.Flags().Bool("grouped", true, "attempt grouped (split-shipment) matching")
	return cmd
}

func runAmazon(cmd *cobra.Command, _ []string) error {
	cfg := activeConfig(cmd)
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	grouped, _ := cmd.Flags().GetBool("grouped")

	pipeline, err := etl.New(cfg)
	if err != nil {
		return err
	}

	wb, err := workbook.Open(cfg.Workbook)
	if err != nil {
		return err
	}
	defer func() { _ = wb.Close() }()

	cards, err := pipeline.LoadCards(wb, cfg.Year)
	if err != nil {
		return err
	}
	parents, _ := pipeline.Classifier().CollectParents(cards)

	details, err := extractDetails(wb, cfg.Year)
	if err != nil {
		return err
	}

	opts := amazon.MatchOptions{
		WindowDays:      cfg.AmazonMatchWindowDays,
		GroupWindowDays: cfg.AmazonGroupWindowDays,
		MaxGroup:        cfg.AmazonMaxGroup,
	}
	var res model.MatchResult
	if grouped {
		res = amazon.MatchWithGrouping(parents, details, opts)
	} else {
		res = amazon.Match(parents, details, opts.WindowDays)
	}
	summary := report.Summarize(cfg.Year, parents, res)

	if outPath == "" {
		fmt.Print(report.RenderConsole(summary, res))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch format {
	case "html":
		err = report.RenderHTML(f, summary, res)
	case "markdown", "md":
		err = report.RenderMarkdown(f, summary, res)
	case "csv":
		err = report.RenderCSV(f, res)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Report written to %s\n", outPath)
	return nil
}

// extractDetails scans the year's order-detail sheets with a progress bar;
// the big order-history tabs are the slowest part of the run.
func extractDetails(wb *workbook.Workbook, year int) ([]model.AmazonDetail, error) {
	sheets := workbook.FindAmazonSheets(wb.SheetNames(), year)
	if len(sheets) == 0 {
		return nil, nil
	}

	bar := progressbar.NewOptions(len(sheets),
		progressbar.OptionSetDescription("Scanning order detail"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)

	var details []model.AmazonDetail
	for _, name := range sheets {
		g, err := wb.Grid(name)
		if err != nil {
			return nil, err
		}
		details = append(details, amazon.ExtractSheetDetails(g, name)...)
		_ = bar.Add(1)
	}
	return details, nil
}
