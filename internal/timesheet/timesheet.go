package timesheet

import (
	"fmt"
	"slices"
	"time"
	"unicode/utf8"

	"daylog/internal/listedit"
)

// StartLabel is the label of the entry a fresh sheet is seeded with.
const StartLabel = "start"

// TimeSheet is the ordered ledger of one day. Entries are sorted by time
// whenever no edit is in progress, and the sheet is never empty.
type TimeSheet struct {
	entries  []TimePoint
	selected int
	register listedit.Register[TimePoint]
	rules    *Rules
	now      func() time.Time // injectable clock for deterministic tests
}

var _ listedit.List[TimePoint] = (*TimeSheet)(nil)

// New builds a sheet from previously saved entries. A nil or empty slice
// yields a sheet with a single "start" entry at the current time. Nil rules
// mean DefaultRules; a nil clock means time.Now.
func New(points []TimePoint, rules *Rules, now func() time.Time) *TimeSheet {
	if rules == nil {
		rules = DefaultRules
	}
	if now == nil {
		now = time.Now
	}
	s := &TimeSheet{
		entries: slices.Clone(points),
		rules:   rules,
		now:     now,
	}
	if len(s.entries) == 0 {
		s.seed()
	}
	s.selected = s.resort(0)
	return s
}

func (s *TimeSheet) seed() {
	s.entries = append(s.entries[:0], NewTimePoint(StartLabel, s.now()))
	s.selected = 0
}

// Rules returns the grouping rules the sheet was built with.
func (s *TimeSheet) Rules() *Rules {
	return s.rules
}

// Now returns the current time according to the sheet clock.
func (s *TimeSheet) Now() time.Time {
	return s.now()
}

// Len returns the number of entries.
func (s *TimeSheet) Len() int {
	return len(s.entries)
}

// Selected returns the index of the selected entry.
func (s *TimeSheet) Selected() int {
	return s.selected
}

// Current returns the selected entry.
func (s *TimeSheet) Current() TimePoint {
	return *s.current()
}

func (s *TimeSheet) current() *TimePoint {
	if s.selected < 0 || s.selected >= len(s.entries) {
		panic(fmt.Sprintf("timesheet: selection %d out of range [0,%d)", s.selected, len(s.entries)))
	}
	return &s.entries[s.selected]
}

// Snapshot returns a copy of the entries, safe to hand to another goroutine.
func (s *TimeSheet) Snapshot() []TimePoint {
	return slices.Clone(s.entries)
}

// Printable returns the display strings in ledger order and the selection.
func (s *TimeSheet) Printable() ([]string, int) {
	out := make([]string, len(s.entries))
	for i, p := range s.entries {
		out[i] = p.Display()
	}
	return out, s.selected
}

// ShiftCurrent moves the selected entry by minutes and snaps the result down
// to the rules' shift grid (5 minutes by default). The sheet is resorted and
// the selection follows the entry.
func (s *TimeSheet) ShiftCurrent(minutes int) {
	p := s.current()
	step := s.rules.ShiftStep()
	t := p.Time.Add(time.Duration(minutes) * time.Minute).Truncate(time.Minute)
	t = t.Add(-time.Duration(t.Minute()%step) * time.Minute)

	p.Time = t
	p.Text = displayText(t, p.Label())
	s.selected = s.resort(s.selected)
}

// Selection implements listedit.List.
func (s *TimeSheet) Selection() *int {
	return &s.selected
}

// Items implements listedit.List.
func (s *TimeSheet) Items() *[]TimePoint {
	return &s.entries
}

// Register implements listedit.List.
func (s *TimeSheet) Register() *listedit.Register[TimePoint] {
	return &s.register
}

// NewEntry returns a blank entry stamped with the current time, ready for
// the editor to insert.
func (s *TimeSheet) NewEntry() TimePoint {
	return NewTimePoint("", s.now())
}

// AppendChar implements listedit.List.
func (s *TimeSheet) AppendChar(r rune) {
	p := s.current()
	p.Text += string(r)
}

// Backspace implements listedit.List.
func (s *TimeSheet) Backspace() {
	p := s.current()
	if p.Text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(p.Text)
	p.Text = p.Text[:len(p.Text)-size]
}

// OnCommit validates the selected entry after an edit. An entry whose label
// was erased is removed. Otherwise the timestamp prefix is reparsed (a
// malformed prefix keeps the previous time), the display text is rebuilt and
// the sheet is resorted.
func (s *TimeSheet) OnCommit() {
	p := s.current()
	prefix, label := SplitPrefix(p.Text)

	if label == "" {
		s.entries = slices.Delete(s.entries, s.selected, s.selected+1)
		s.selected = max(0, s.selected-1)
		if len(s.entries) == 0 {
			s.seed()
		}
		return
	}

	if at, ok := parseStamp(prefix); ok {
		p.Time = at
	}
	p.Text = displayText(p.Time, label)
	s.selected = s.resort(s.selected)
}

// resort stable-sorts entries by time and returns the new index of the entry
// that was at follow.
func (s *TimeSheet) resort(follow int) int {
	order := make([]int, len(s.entries))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return s.entries[a].Time.Compare(s.entries[b].Time)
	})

	sorted := make([]TimePoint, len(s.entries))
	pos := 0
	for i, idx := range order {
		sorted[i] = s.entries[idx]
		if idx == follow {
			pos = i
		}
	}
	s.entries = sorted
	return pos
}
