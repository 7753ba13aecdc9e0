package timesheet

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// EndLabel labels the sentinel that closes the last open interval.
const EndLabel = "end"

// Bucket is the time accumulated under one effective label.
type Bucket struct {
	Label    string        `json:"label"`
	Duration time.Duration `json:"duration"`
	Pause    bool          `json:"pause"`
}

// Span is one interval between two consecutive entries.
type Span struct {
	Label    string
	Start    TimeOfDay
	Duration time.Duration
}

// Spans pairs every entry with its successor in time order; the last entry
// is closed by end. Points are sorted on a copy, so a sheet caught mid-edit
// groups the same as after its commit. No cross-midnight normalization is
// done: an end earlier than the last entry yields a negative span.
func Spans(points []TimePoint, end TimeOfDay, rules *Rules) []Span {
	if rules == nil {
		rules = DefaultRules
	}
	window := slices.Clone(points)
	slices.SortStableFunc(window, func(a, b TimePoint) int {
		return a.Time.Compare(b.Time)
	})
	window = append(window, newTimePointAt(EndLabel, end))
	spans := make([]Span, 0, len(points))
	for i := 0; i+1 < len(window); i++ {
		prev, next := window[i], window[i+1]
		spans = append(spans, Span{
			Label:    rules.EffectiveLabel(prev.Text),
			Start:    prev.Time,
			Duration: next.Time.Sub(prev.Time),
		})
	}
	return spans
}

// Group folds points into per-label buckets ordered by label.
func Group(points []TimePoint, end TimeOfDay, rules *Rules) []Bucket {
	if rules == nil {
		rules = DefaultRules
	}
	totals := make(map[string]time.Duration)
	for _, sp := range Spans(points, end, rules) {
		totals[sp.Label] += sp.Duration
	}

	buckets := make([]Bucket, 0, len(totals))
	for label, d := range totals {
		buckets = append(buckets, Bucket{Label: label, Duration: d, Pause: rules.IsPause(label)})
	}
	slices.SortFunc(buckets, func(a, b Bucket) int {
		return strings.Compare(a.Label, b.Label)
	})
	return buckets
}

// Worked sums the non-pause buckets.
func Worked(buckets []Bucket) time.Duration {
	var total time.Duration
	for _, b := range buckets {
		if !b.Pause {
			total += b.Duration
		}
	}
	return total
}

// GroupedDurations groups the sheet up to this moment. The closing time is
// read from the clock on every call.
func (s *TimeSheet) GroupedDurations() []Bucket {
	return Group(s.entries, Clock(s.now()), s.rules)
}

// TimeByTasks renders "label H:MM" pairs joined by " | ".
func (s *TimeSheet) TimeByTasks() string {
	var parts []string
	for _, b := range s.GroupedDurations() {
		if b.Pause && s.rules.HidesPause() {
			continue
		}
		parts = append(parts, b.Label+" "+FormatDuration(b.Duration))
	}
	return strings.Join(parts, " | ")
}

// Total is the worked time so far, pauses excluded.
func (s *TimeSheet) Total() time.Duration {
	return Worked(s.GroupedDurations())
}

// SumAsStr renders Total.
func (s *TimeSheet) SumAsStr() string {
	return FormatDuration(s.Total())
}

// FormatDuration renders d as H:MM. Minutes are floored at one, so an empty
// bucket shows as 0:01. d is assumed non-negative; sorted entries closed by
// a later clock never produce anything else.
func FormatDuration(d time.Duration) string {
	minutes := int64(d / time.Minute)
	hours := int64(d / time.Hour)
	return fmt.Sprintf("%d:%02d", hours, max(minutes, 1)%60)
}
