package reports

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"daylog/internal/storage"
	"daylog/internal/timesheet"
)

// Generator creates reports from storage data.
type Generator struct {
	store *storage.Storage
	rules *timesheet.Rules
}

// NewGenerator creates a new report generator. Nil rules mean
// timesheet.DefaultRules.
func NewGenerator(store *storage.Storage, rules *timesheet.Rules) *Generator {
	if rules == nil {
		rules = timesheet.DefaultRules
	}
	return &Generator{store: store, rules: rules}
}

// GenerateDaily generates a report for a specific date.
//
// Today's last entry runs until the storage clock. A past day is closed by
// its last entry, which therefore contributes no time. A damaged sheet is
// reported as an error and left on disk untouched.
func (g *Generator) GenerateDaily(date time.Time) (*DailyReport, error) {
	now := g.store.Now()
	day := startOfDay(date)

	points, err := g.store.ReadSheet(day)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", storage.DayKey(day), err)
	}
	return buildDaily(day, points, g.rules, now), nil
}

func buildDaily(day time.Time, points []timesheet.TimePoint, rules *timesheet.Rules, now time.Time) *DailyReport {
	report := &DailyReport{
		Date:        day,
		Entries:     []EntryReport{},
		Buckets:     []BucketReport{},
		GeneratedAt: now,
	}
	if len(points) == 0 {
		return report
	}

	points = slices.Clone(points)
	slices.SortStableFunc(points, func(a, b timesheet.TimePoint) int {
		return a.Time.Compare(b.Time)
	})

	open := storage.SameDay(day, now)
	counted := points
	var end timesheet.TimeOfDay
	if open {
		end = timesheet.Clock(now)
	} else {
		end = points[len(points)-1].Time
		counted = points[:len(points)-1]
	}
	report.Open = open

	spans := timesheet.Spans(counted, end, rules)
	for i, p := range points {
		entry := EntryReport{
			Time:  p.Time.Format(),
			Text:  p.Label(),
			Group: rules.EffectiveLabel(p.Text),
		}
		if i < len(spans) {
			entry.Duration = spans[i].Duration
		}
		report.Entries = append(report.Entries, entry)
	}

	buckets := timesheet.Group(counted, end, rules)
	report.Buckets, report.Total, report.Pause = summarize(buckets)
	return report
}

// summarize converts buckets into report rows ordered by duration and
// returns the worked and pause totals.
func summarize(buckets []timesheet.Bucket) ([]BucketReport, time.Duration, time.Duration) {
	var worked, pause time.Duration
	for _, b := range buckets {
		if b.Pause {
			pause += b.Duration
		} else {
			worked += b.Duration
		}
	}

	logged := worked + pause
	rows := make([]BucketReport, 0, len(buckets))
	for _, b := range buckets {
		pct := 0.0
		if logged > 0 {
			pct = float64(b.Duration) / float64(logged) * 100
		}
		rows = append(rows, BucketReport{
			Label:      b.Label,
			Duration:   b.Duration,
			Formatted:  timesheet.FormatDuration(b.Duration),
			Pause:      b.Pause,
			Percentage: pct,
		})
	}
	slices.SortStableFunc(rows, func(a, b BucketReport) int {
		if c := cmp.Compare(b.Duration, a.Duration); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return rows, worked, pause
}

// GenerateWeekly generates a report for the week containing startDate.
// Weeks start on Sunday. Days after today are left empty.
func (g *Generator) GenerateWeekly(startDate time.Time) (*WeeklyReport, error) {
	now := g.store.Now()
	start := startOfWeekSunday(startDate)
	end := start.AddDate(0, 0, 7)

	totals := make(map[string]timesheet.Bucket)
	report := &WeeklyReport{
		StartDate:   start,
		EndDate:     end.Add(-time.Nanosecond), // End of last day
		GeneratedAt: now,
	}

	tracked := 0
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		summary := DaySummary{
			Date:      storage.DayKey(day),
			DayOfWeek: day.Weekday().String()[:3],
		}
		if day.After(now) {
			report.Days = append(report.Days, summary)
			continue
		}

		points, err := g.store.ReadSheet(day)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", summary.Date, err)
		}
		daily := buildDaily(day, points, g.rules, now)
		summary.Entries = len(daily.Entries)
		summary.Total = daily.Total
		summary.Pause = daily.Pause
		report.Days = append(report.Days, summary)

		if summary.Entries > 0 {
			tracked++
		}
		for _, b := range daily.Buckets {
			acc := totals[b.Label]
			acc.Label = b.Label
			acc.Pause = b.Pause
			acc.Duration += b.Duration
			totals[b.Label] = acc
		}
	}

	buckets := make([]timesheet.Bucket, 0, len(totals))
	for _, b := range totals {
		buckets = append(buckets, b)
	}
	report.Buckets, report.Total, report.Pause = summarize(buckets)
	if tracked > 0 {
		report.DailyAverage = report.Total / time.Duration(tracked)
	}
	return report, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfWeekSunday(t time.Time) time.Time {
	dayStart := startOfDay(t)
	return dayStart.AddDate(0, 0, -int(dayStart.Weekday()))
}
