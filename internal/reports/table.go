package reports

import (
	"fmt"
	"strings"
	"time"

	"daylog/internal/timesheet"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

var bold = color.New(color.Bold)

// FormatDailyTable renders a daily report as aligned plain text for the
// terminal. Headers are bold when stdout is a color terminal.
func FormatDailyTable(report *DailyReport) string {
	var b strings.Builder
	fmt.Fprintln(&b, bold.Sprint(report.Date.Format("Mon 2006-01-02")))

	if len(report.Entries) == 0 {
		fmt.Fprintln(&b, "no entries")
		return b.String()
	}

	ledger := uitable.New()
	ledger.Separator = "  "
	ledger.MaxColWidth = 60
	for i, e := range report.Entries {
		dur := timesheet.FormatDuration(e.Duration)
		if i == len(report.Entries)-1 && !report.Open {
			dur = ""
		}
		ledger.AddRow(e.Time, e.Text, dur)
	}
	ledger.RightAlign(2)
	fmt.Fprintln(&b, ledger)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, bucketTable(report.Buckets, report.Total, report.Pause))
	return b.String()
}

// FormatWeeklyTable renders a weekly report as aligned plain text.
func FormatWeeklyTable(report *WeeklyReport) string {
	var b strings.Builder
	fmt.Fprintln(&b, bold.Sprintf("Week %s .. %s",
		report.StartDate.Format("2006-01-02"), report.EndDate.Format("2006-01-02")))

	days := uitable.New()
	days.Separator = "  "
	for _, d := range report.Days {
		worked := "-"
		if d.Entries > 0 {
			worked = timesheet.FormatDuration(d.Total)
		}
		days.AddRow(d.DayOfWeek, d.Date, worked)
	}
	days.RightAlign(2)
	fmt.Fprintln(&b, days)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, bucketTable(report.Buckets, report.Total, report.Pause))
	fmt.Fprintf(&b, "average %s per tracked day\n", timesheet.FormatDuration(report.DailyAverage))
	return b.String()
}

func bucketTable(buckets []BucketReport, total, pause time.Duration) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("LABEL"), bold.Sprint("TIME"), bold.Sprint("SHARE"))
	for _, bucket := range buckets {
		label := bucket.Label
		if bucket.Pause {
			label += " (pause)"
		}
		tbl.AddRow(label, bucket.Formatted, fmt.Sprintf("%.0f%%", bucket.Percentage))
	}
	tbl.AddRow(bold.Sprint("total"), timesheet.FormatDuration(total), "")
	if pause > 0 {
		tbl.AddRow("pause", formatPause(pause), "")
	}
	tbl.RightAlign(1)
	tbl.RightAlign(2)
	return tbl
}
