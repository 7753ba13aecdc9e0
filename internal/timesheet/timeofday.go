// Package timesheet implements the day ledger: timestamped entries, the
// commit logic that keeps them ordered, and the aggregation of elapsed time
// per activity label.
package timesheet

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const day = 24 * time.Hour

// TimeOfDay is a wall-clock time without a date, stored as the offset from
// midnight. Arithmetic wraps around midnight; differences do not.
type TimeOfDay time.Duration

// Clock returns the time-of-day part of t in t's location.
func Clock(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	d := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
	return TimeOfDay(d)
}

// At builds a TimeOfDay from hour and minute. Out-of-range values wrap.
func At(hour, minute int) TimeOfDay {
	return TimeOfDay(0).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// Add returns t+d wrapped into [00:00, 24:00).
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	v := (time.Duration(t) + d) % day
	if v < 0 {
		v += day
	}
	return TimeOfDay(v)
}

// Sub returns t-u. The result is negative when u is later in the day.
func (t TimeOfDay) Sub(u TimeOfDay) time.Duration {
	return time.Duration(t) - time.Duration(u)
}

// Hour returns the hour within the day, in the range [0, 23].
func (t TimeOfDay) Hour() int {
	return int(time.Duration(t) / time.Hour)
}

// Minute returns the minute offset within the hour, in the range [0, 59].
func (t TimeOfDay) Minute() int {
	return int(time.Duration(t)%time.Hour) / int(time.Minute)
}

// Truncate rounds t down to a multiple of d.
func (t TimeOfDay) Truncate(d time.Duration) TimeOfDay {
	return TimeOfDay(time.Duration(t).Truncate(d))
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or
// after u.
func (t TimeOfDay) Compare(u TimeOfDay) int {
	switch {
	case t < u:
		return -1
	case t > u:
		return 1
	}
	return 0
}

// Format renders the time as 24-hour zero-padded HH:MM.
func (t TimeOfDay) Format() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) String() string {
	return t.Format()
}

// On places t on the calendar day of date, in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location()).Add(time.Duration(t))
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return Clock(parsed), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

// MarshalJSON encodes the time as "HH:MM:SS".
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	s := int(time.Duration(t)%time.Minute) / int(time.Second)
	return json.Marshal(fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), s))
}

// UnmarshalJSON decodes "HH:MM:SS" or "HH:MM".
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time of day: %w", err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
