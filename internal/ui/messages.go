package ui

import (
	"time"

	"daylog/internal/timesheet"
)

// Results of the async commands in commands.go. Storage and clipboard work
// never runs inside Update; it reports back through these.

// sheetLoadedMsg is sent when the day's entries have been read.
type sheetLoadedMsg struct {
	points   []timesheet.TimePoint
	err      error
	writable bool // false when saving would overwrite a file that could not be read
}

// sheetSavedMsg is sent when a snapshot has been written.
type sheetSavedMsg struct {
	rev   int  // edit revision the snapshot was taken at
	quit  bool // quit once the write succeeded
	count int
	err   error
}

// summaryCopiedMsg is sent when the summary was put on the clipboard.
type summaryCopiedMsg struct {
	text string
	err  error
}

// tickMsg is sent periodically so the running totals follow the clock.
type tickMsg time.Time
