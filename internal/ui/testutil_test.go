package ui

import (
	"testing"
	"time"

	"daylog/internal/config"
	"daylog/internal/storage"
	"daylog/internal/timesheet"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// testNow is the fixed clock of every UI test: a Monday afternoon.
var testNow = time.Date(2026, 10, 19, 17, 0, 0, 0, time.Local)

func fixedNow() time.Time { return testNow }

// setupTest prepares the test environment for deterministic rendering.
// It disables colors so views can be searched as plain text.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStorage creates a Storage instance with a temporary directory.
func createTestStorage(t *testing.T) *storage.Storage {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	store.SetNowFunc(fixedNow)
	return store
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

func testConfig(autosave bool) *AppConfig {
	return &AppConfig{
		Keys:                  &config.KeysConfig{},
		Autosave:              autosave,
		NarrowLayoutThreshold: 80,
		Now:                   fixedNow,
	}
}

// points builds entries from "HH:MM label" pairs.
func points(t *testing.T, entries ...string) []timesheet.TimePoint {
	t.Helper()
	out := make([]timesheet.TimePoint, 0, len(entries))
	for _, e := range entries {
		at, label, ok := timesheet.ParsePrefix("[" + e[:5] + "] " + e[6:])
		if !ok {
			t.Fatalf("bad test entry %q", e)
		}
		out = append(out, timesheet.NewTimePoint(label, at.On(testNow)))
	}
	return out
}

// newLoadedApp returns a 120x30 app whose sheet holds entries, already
// loaded and clean.
func newLoadedApp(t *testing.T, store *storage.Storage, cfg *AppConfig, entries ...string) *App {
	t.Helper()
	app := NewApp(store, createTestStyles(), cfg)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	if cmd := update(app, sheetLoadedMsg{points: points(t, entries...), writable: true}); cmd != nil && len(entries) > 0 {
		t.Fatal("loading a non-empty sheet should not save")
	}
	return app
}

func update(app *App, msg tea.Msg) tea.Cmd {
	_, cmd := app.Update(msg)
	return cmd
}

// runCmd executes a storage or clipboard command and feeds its result back
// into the app, returning the follow-up command.
func runCmd(t *testing.T, app *App, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	return update(app, cmd())
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends each string as one key press. Named keys are "enter", "esc",
// "backspace", "space" and "ctrl+c"; anything else is typed as runes.
func press(app *App, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		default:
			msg = keyRunes(k)
		}
		cmd = update(app, msg)
	}
	return cmd
}

// typeText types s one rune at a time.
func typeText(app *App, s string) {
	for _, r := range s {
		update(app, keyRunes(string(r)))
	}
}
