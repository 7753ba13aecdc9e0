package timesheet

import (
	"strings"
	"time"
)

// TimePoint is one ledger entry: the moment an activity started and the
// text the user sees and edits. Text carries the "[HH:MM] " prefix.
type TimePoint struct {
	Text string    `json:"text"`
	Time TimeOfDay `json:"time"`
}

// NewTimePoint stamps label with the time of day of now.
func NewTimePoint(label string, now time.Time) TimePoint {
	return newTimePointAt(label, Clock(now))
}

func newTimePointAt(label string, at TimeOfDay) TimePoint {
	return TimePoint{Text: displayText(at, label), Time: at}
}

// Display returns the stored display text verbatim.
func (p TimePoint) Display() string {
	return p.Text
}

func (p TimePoint) String() string {
	return p.Text
}

// Label returns the text without its timestamp prefix.
func (p TimePoint) Label() string {
	_, label := SplitPrefix(p.Text)
	return label
}

func displayText(at TimeOfDay, label string) string {
	return "[" + at.Format() + "] " + label
}

// SplitPrefix separates a leading bracketed segment from the rest of text.
// The label is trimmed. Text without a leading "[...]" has an empty prefix.
func SplitPrefix(text string) (prefix, label string) {
	if strings.HasPrefix(text, "[") {
		if end := strings.IndexByte(text, ']'); end > 0 {
			return text[:end+1], strings.TrimSpace(text[end+1:])
		}
	}
	return "", strings.TrimSpace(text)
}

// ParsePrefix reads a "[HH:MM]" prefix from text. It reports false when the
// prefix is missing or malformed; it never returns an error.
func ParsePrefix(text string) (TimeOfDay, string, bool) {
	prefix, label := SplitPrefix(text)
	at, ok := parseStamp(prefix)
	if !ok {
		return 0, "", false
	}
	return at, label, true
}

func parseStamp(prefix string) (TimeOfDay, bool) {
	m := stampPattern.FindStringSubmatch(prefix)
	if m == nil {
		return 0, false
	}
	at, err := ParseTimeOfDay(m[1])
	if err != nil {
		return 0, false
	}
	return at, true
}
