package reports

import (
	"fmt"
	"strings"
	"time"

	"daylog/internal/timesheet"
)

// FormatDailyMarkdown formats a daily report as Markdown.
func FormatDailyMarkdown(report *DailyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Daily Report: %s\n\n", report.Date.Format("Monday, January 2, 2006"))

	if len(report.Entries) == 0 {
		b.WriteString("_No entries logged._\n")
		return b.String()
	}

	fmt.Fprintf(&b, "**Worked:** %s  \n", timesheet.FormatDuration(report.Total))
	fmt.Fprintf(&b, "**Pause:** %s\n", formatPause(report.Pause))
	if report.Open {
		b.WriteString("\n_Day in progress; the last entry runs until now._\n")
	}

	b.WriteString("\n## By label\n\n")
	writeBucketTable(&b, report.Buckets)

	b.WriteString("\n## Ledger\n\n")
	b.WriteString("| Time | Entry | Counted as | Duration |\n")
	b.WriteString("|------|-------|------------|----------|\n")
	for i, e := range report.Entries {
		dur := timesheet.FormatDuration(e.Duration)
		if i == len(report.Entries)-1 && !report.Open {
			dur = "end"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", e.Time, escapeCell(e.Text), escapeCell(e.Group), dur)
	}

	return b.String()
}

// FormatWeeklyMarkdown formats a weekly report as Markdown.
func FormatWeeklyMarkdown(report *WeeklyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Weekly Report: %s to %s\n\n",
		report.StartDate.Format("Jan 2"), report.EndDate.Format("Jan 2, 2006"))

	fmt.Fprintf(&b, "**Worked:** %s  \n", timesheet.FormatDuration(report.Total))
	fmt.Fprintf(&b, "**Daily average:** %s  \n", timesheet.FormatDuration(report.DailyAverage))
	fmt.Fprintf(&b, "**Pause:** %s\n", formatPause(report.Pause))

	b.WriteString("\n## Days\n\n")
	b.WriteString("| Day | Date | Entries | Worked |\n")
	b.WriteString("|-----|------|---------|--------|\n")
	for _, d := range report.Days {
		worked := "-"
		if d.Entries > 0 {
			worked = timesheet.FormatDuration(d.Total)
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", d.DayOfWeek, d.Date, d.Entries, worked)
	}

	if len(report.Buckets) > 0 {
		b.WriteString("\n## By label\n\n")
		writeBucketTable(&b, report.Buckets)
	}

	return b.String()
}

func writeBucketTable(b *strings.Builder, buckets []BucketReport) {
	b.WriteString("| Label | Time | Share |\n")
	b.WriteString("|-------|------|-------|\n")
	for _, bucket := range buckets {
		label := escapeCell(bucket.Label)
		if bucket.Pause {
			label = "_" + label + "_"
		}
		fmt.Fprintf(b, "| %s | %s | %.0f%% |\n", label, bucket.Formatted, bucket.Percentage)
	}
}

// formatPause renders a pause total. No pause reads as 0:00 rather than
// the 0:01 FormatDuration gives an empty bucket.
func formatPause(d time.Duration) string {
	if d < time.Minute {
		return "0:00"
	}
	return timesheet.FormatDuration(d)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
