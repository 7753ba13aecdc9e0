// Package reports builds day and week summaries from saved sheets and
// renders them as Markdown, JSON or a plain text table.
package reports

import (
	"time"
)

// DailyReport contains the ledger and per-label totals of a single day.
type DailyReport struct {
	Date        time.Time      `json:"date"`
	Open        bool           `json:"open"` // day still running; the last entry is closed by the clock
	Entries     []EntryReport  `json:"entries"`
	Buckets     []BucketReport `json:"buckets"`
	Total       time.Duration  `json:"total"`
	Pause       time.Duration  `json:"pause"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// EntryReport is one ledger line with the time until the next one.
type EntryReport struct {
	Time     string        `json:"time"`
	Text     string        `json:"text"`
	Group    string        `json:"group"`
	Duration time.Duration `json:"duration"`
}

// BucketReport is the time spent under one effective label.
type BucketReport struct {
	Label      string        `json:"label"`
	Duration   time.Duration `json:"duration"`
	Formatted  string        `json:"formatted"`
	Pause      bool          `json:"pause"`
	Percentage float64       `json:"percentage"`
}

// WeeklyReport contains totals for seven consecutive days.
type WeeklyReport struct {
	StartDate    time.Time      `json:"start_date"`
	EndDate      time.Time      `json:"end_date"`
	Days         []DaySummary   `json:"days"`
	Buckets      []BucketReport `json:"buckets"`
	Total        time.Duration  `json:"total"`
	Pause        time.Duration  `json:"pause"`
	DailyAverage time.Duration  `json:"daily_average"`
	GeneratedAt  time.Time      `json:"generated_at"`
}

// DaySummary provides a quick overview of a single day within a week.
type DaySummary struct {
	Date      string        `json:"date"`
	DayOfWeek string        `json:"day_of_week"`
	Entries   int           `json:"entries"`
	Total     time.Duration `json:"total"`
	Pause     time.Duration `json:"pause"`
}
