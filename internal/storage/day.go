package storage

import (
	"fmt"
	"time"
)

// DayLayout is the date format used for sheet file names and CLI arguments.
const DayLayout = "2006-01-02"

// DayKey formats the local calendar day of t.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay reads a YYYY-MM-DD date as local midnight.
func ParseDay(s string) (time.Time, error) {
	day, err := time.ParseInLocation(DayLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return day, nil
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
