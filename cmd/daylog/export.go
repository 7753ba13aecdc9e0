// This file contains the export subcommand.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"daylog/internal/fsutil"
	"daylog/internal/reports"
	"daylog/internal/storage"

	"github.com/spf13/cobra"
)

type exportOptions struct {
	weekly bool
	format string
	output string
}

func addExport(topLevel *cobra.Command, root *rootOptions) {
	o := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export [DATE]",
		Short: "Print a report of a day or a week.",
		Long: `Generate a report of the time logged on DATE (YYYY-MM-DD, default today).
With --weekly the report covers the Sunday-to-Saturday week containing DATE.

Today's last entry runs until now; a past day ends at its last entry.`,
		Example: `
daylog export
daylog export 2026-10-16 --format json
daylog export --weekly --format table
daylog export --weekly -o week.md
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := normalizeFormat(o.format)
			if err != nil {
				return err
			}

			day := time.Now()
			if len(args) > 0 {
				if day, err = storage.ParseDay(args[0]); err != nil {
					return err
				}
			}

			cfg, store, err := root.load()
			if err != nil {
				return err
			}
			rules, err := cfg.Rules()
			if err != nil {
				return err
			}

			output, err := renderReport(reports.NewGenerator(store, rules), day, o.weekly, format)
			if err != nil {
				return err
			}

			if o.output == "" {
				fmt.Fprint(cmd.OutOrStdout(), output)
				return nil
			}
			if dir := filepath.Dir(o.output); dir != "." {
				if err := os.MkdirAll(dir, 0700); err != nil {
					return fmt.Errorf("creating output directory: %w", err)
				}
			}
			if err := fsutil.WriteFileAtomic(o.output, []byte(output), 0600); err != nil {
				return fmt.Errorf("writing to file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", o.output)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&o.weekly, "weekly", "w", false, "report the whole week")
	cmd.Flags().StringVarP(&o.format, "format", "f", "markdown", "output format: markdown, json or table")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write to file instead of stdout")

	topLevel.AddCommand(cmd)
}

func normalizeFormat(format string) (string, error) {
	switch format {
	case "markdown", "md":
		return "markdown", nil
	case "json", "table":
		return format, nil
	}
	return "", fmt.Errorf("invalid format %q: use markdown, json or table", format)
}

func renderReport(gen *reports.Generator, day time.Time, weekly bool, format string) (string, error) {
	if weekly {
		report, err := gen.GenerateWeekly(day)
		if err != nil {
			return "", fmt.Errorf("generating weekly report: %w", err)
		}
		switch format {
		case "json":
			data, err := reports.FormatWeeklyJSON(report)
			if err != nil {
				return "", fmt.Errorf("formatting JSON: %w", err)
			}
			return string(data) + "\n", nil
		case "table":
			return reports.FormatWeeklyTable(report), nil
		}
		return reports.FormatWeeklyMarkdown(report), nil
	}

	report, err := gen.GenerateDaily(day)
	if err != nil {
		return "", fmt.Errorf("generating daily report: %w", err)
	}
	switch format {
	case "json":
		data, err := reports.FormatDailyJSON(report)
		if err != nil {
			return "", fmt.Errorf("formatting JSON: %w", err)
		}
		return string(data) + "\n", nil
	case "table":
		return reports.FormatDailyTable(report), nil
	}
	return reports.FormatDailyMarkdown(report), nil
}
