// This file contains the days subcommand.
package main

import (
	"fmt"

	"daylog/internal/reports"
	"daylog/internal/storage"
	"daylog/internal/timesheet"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func addDays(topLevel *cobra.Command, root *rootOptions) {
	var limit int

	cmd := &cobra.Command{
		Use:   "days",
		Short: "List the days that have a ledger, with their totals.",
		Example: `
daylog days
daylog days --limit 7
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := root.load()
			if err != nil {
				return err
			}
			rules, err := cfg.Rules()
			if err != nil {
				return err
			}

			days, err := store.ListDays()
			if err != nil {
				return fmt.Errorf("listing days: %w", err)
			}
			if len(days) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No days logged yet.")
				return nil
			}
			if limit > 0 && len(days) > limit {
				days = days[len(days)-limit:]
			}

			gen := reports.NewGenerator(store, rules)
			bold := color.New(color.Bold).SprintFunc()

			table := uitable.New()
			table.MaxColWidth = 60
			table.AddRow(bold("DATE"), bold("DAY"), bold("ENTRIES"), bold("WORKED"), bold("PAUSE"))
			for _, day := range days {
				key := storage.DayKey(day)
				report, err := gen.GenerateDaily(day)
				if err != nil {
					// A damaged day should not hide the others.
					table.AddRow(key, day.Format("Mon"), "?", color.RedString("unreadable"), "")
					continue
				}
				pause := "-"
				if report.Pause > 0 {
					pause = timesheet.FormatDuration(report.Pause)
				}
				table.AddRow(key, day.Format("Mon"), len(report.Entries), timesheet.FormatDuration(report.Total), pause)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the most recent N days")

	topLevel.AddCommand(cmd)
}
