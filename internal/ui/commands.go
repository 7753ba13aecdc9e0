package ui

import (
	"os"
	"time"

	"daylog/internal/storage"
	"daylog/internal/timesheet"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// tickInterval is how often the summary is re-rendered and the status line
// checked for expiry.
const tickInterval = time.Second

// loadSheetCmd returns a command that reads the entries of day.
func loadSheetCmd(store *storage.Storage, day time.Time) tea.Cmd {
	return func() tea.Msg {
		points, err := store.LoadSheet(day)
		writable := err == nil || points != nil
		if !writable {
			// A quarantined file is gone; anything still in place was not read.
			_, statErr := os.Stat(store.SheetPath(day))
			writable = os.IsNotExist(statErr)
		}
		return sheetLoadedMsg{points: points, err: err, writable: writable}
	}
}

// saveSheetCmd returns a command that writes a snapshot of the sheet. The
// snapshot is taken by the caller so the command shares no state with Update.
func saveSheetCmd(store *storage.Storage, day time.Time, points []timesheet.TimePoint, rev int, quit bool) tea.Cmd {
	return func() tea.Msg {
		err := store.SaveSheet(day, points)
		return sheetSavedMsg{rev: rev, quit: quit, count: len(points), err: err}
	}
}

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// copySummaryCmd returns a command that puts text on the system clipboard.
func copySummaryCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return summaryCopiedMsg{text: text, err: clipboardWrite(text)}
	}
}

// tickCmd returns a command that sends a tick after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
