// Package ui provides the terminal interface for daylog.
// This file contains the main App model which owns the day's sheet,
// sequences saves and routes messages using the Bubble Tea architecture.
package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"daylog/internal/config"
	"daylog/internal/storage"
	"daylog/internal/timesheet"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LayoutMode determines how panes are arranged based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows the ledger and the summary side-by-side.
	LayoutWide LayoutMode = iota
	// LayoutNarrow stacks the summary below the ledger.
	LayoutNarrow
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys                  *config.KeysConfig
	Rules                 *timesheet.Rules
	Autosave              bool
	NarrowLayoutThreshold int
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// App is the main application model. It edits a single day, fixed when the
// app starts.
type App struct {
	storage     *storage.Storage
	styles      *Styles
	config      *AppConfig
	now         func() time.Time
	day         time.Time
	sheetPane   *SheetPane
	summaryPane *SummaryPane
	helpOverlay *HelpOverlay
	help        help.Model
	layoutMode  LayoutMode
	showHelp    bool
	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool

	// Save sequencing. rev counts edits, savedRev is the last edit known to
	// be on disk. Only one write is in flight at a time; edits made while it
	// runs set pendingSave and are written when it returns.
	rev         int
	savedRev    int
	saving      bool
	pendingSave bool
	pendingQuit bool
	announce    bool // report the next successful save in the status line
	readOnly    bool
	forceQuit   bool // a save failed on quit; the next quit exits regardless

	// Key bindings
	keys       GlobalKeyMap
	sheetKeys  SheetKeyMap
	insertKeys InsertKeyMap
	helpKeys   HelpKeyMap

	// Pane geometry for mouse hit testing
	sheetPaneEnd    int // first column right of the ledger (wide)
	sheetPaneBottom int // first row below the ledger (narrow)
	contentTop      int // Y coordinate where content starts
}

// NewApp creates a new application. Loading the sheet is deferred to Init()
// to keep the constructor non-blocking.
func NewApp(store *storage.Storage, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{
			Keys:                  &config.KeysConfig{},
			Autosave:              true,
			NarrowLayoutThreshold: 80,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}
	if cfg.Rules == nil {
		cfg.Rules = timesheet.DefaultRules
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	keys := NewGlobalKeyMap(cfg.Keys)
	sheetKeys := NewSheetKeyMap(cfg.Keys)
	insertKeys := NewInsertKeyMap(cfg.Keys)

	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.ShortSeparator = styles.HelpStyle
	h.Styles.Ellipsis = styles.HelpStyle

	return &App{
		storage:     store,
		styles:      styles,
		config:      cfg,
		now:         now,
		day:         now(),
		sheetPane:   NewSheetPane(styles, cfg.Keys),
		summaryPane: NewSummaryPane(styles),
		helpOverlay: NewHelpOverlay(styles, keys, sheetKeys, insertKeys),
		help:        h,
		keys:        keys,
		sheetKeys:   sheetKeys,
		insertKeys:  insertKeys,
		helpKeys:    DefaultHelpKeyMap(),
		contentTop:  1,
	}
}

// Init starts the clock and loads the day asynchronously.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		loadSheetCmd(a.storage, a.day),
	)
}

// Sheet returns the sheet being edited, or nil until it has loaded.
func (a *App) Sheet() *timesheet.TimeSheet {
	return a.sheetPane.Sheet()
}

// Dirty reports whether there are edits not yet written to disk.
func (a *App) Dirty() bool {
	return a.rev != a.savedRev
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sheetLoadedMsg:
		return a, a.handleLoaded(msg)

	case sheetSavedMsg:
		return a, a.handleSaved(msg)

	case summaryCopiedMsg:
		if msg.err != nil {
			log.Printf("copy summary: %v", msg.err)
			a.SetStatus("Copy failed: "+msg.err.Error(), true)
		} else {
			a.SetStatus("Copied: "+msg.text, false)
		}
		return a, nil

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		return a, tickCmd()

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleLoaded(msg sheetLoadedMsg) tea.Cmd {
	if a.Sheet() != nil {
		return nil
	}

	sheet := timesheet.New(msg.points, a.config.Rules, a.now)
	a.sheetPane.SetSheet(sheet)
	a.summaryPane.SetSheet(sheet)
	a.readOnly = !msg.writable

	if msg.err != nil {
		log.Printf("load %s: %v", storage.DayKey(a.day), msg.err)
		if a.readOnly {
			a.SetStatus(msg.err.Error()+" (read-only)", true)
		} else {
			a.SetStatus(msg.err.Error(), true)
		}
	}

	// A fresh sheet was seeded with a start entry that is not on disk yet.
	if len(msg.points) == 0 {
		return a.markChanged()
	}
	return nil
}

func (a *App) handleSaved(msg sheetSavedMsg) tea.Cmd {
	a.saving = false

	if msg.err != nil {
		log.Printf("save %s: %v", storage.DayKey(a.day), msg.err)
		a.pendingSave = false
		a.announce = false
		if msg.quit || a.pendingQuit {
			a.quitting = false
			a.pendingQuit = false
			a.forceQuit = true
			a.SetStatus("Save failed: "+msg.err.Error()+" (quit again to discard changes)", true)
			return nil
		}
		a.SetStatus("Save failed: "+msg.err.Error(), true)
		return nil
	}

	if msg.rev > a.savedRev {
		a.savedRev = msg.rev
	}

	if a.pendingSave {
		a.pendingSave = false
		quit := a.pendingQuit
		a.pendingQuit = false
		return a.requestSave(quit)
	}
	if msg.quit {
		return tea.Quit
	}
	if a.announce {
		a.announce = false
		a.SetStatus(fmt.Sprintf("Saved %d entries to %s", msg.count, storage.DayKey(a.day)+".json"), false)
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.quitting {
		return nil
	}

	// Help overlay takes priority
	if a.showHelp {
		if key.Matches(msg, a.helpKeys.Close) {
			a.showHelp = false
		}
		return nil
	}

	if a.Sheet() == nil {
		if key.Matches(msg, a.keys.Quit) {
			a.quitting = true
			return tea.Quit
		}
		return nil
	}

	if a.sheetPane.Editing() {
		if key.Matches(msg, a.insertKeys.Quit) {
			a.sheetPane.Commit()
			a.markChangedNoSave()
			return a.quit()
		}
		return a.apply(a.sheetPane.HandleKey(msg))
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return nil

	case key.Matches(msg, a.keys.Save):
		if a.readOnly {
			a.SetStatus("Read-only: the day's file could not be read", true)
			return nil
		}
		a.announce = true
		return a.requestSave(false)

	case key.Matches(msg, a.keys.Copy):
		return copySummaryCmd(a.Sheet().TimeByTasks())
	}

	return a.apply(a.sheetPane.HandleKey(msg))
}

// apply turns the outcome of an edit into status and save commands.
func (a *App) apply(res editResult) tea.Cmd {
	if res.notice != "" {
		a.SetStatus(res.notice, res.isErr)
	}
	if !res.changed {
		return nil
	}
	return a.markChanged()
}

// markChanged records an edit and schedules an autosave.
func (a *App) markChanged() tea.Cmd {
	a.markChangedNoSave()
	if !a.config.Autosave || a.readOnly {
		return nil
	}
	return a.requestSave(false)
}

func (a *App) markChangedNoSave() {
	a.rev++
}

// requestSave writes a snapshot of the sheet, or queues one behind the write
// in flight.
func (a *App) requestSave(quit bool) tea.Cmd {
	if a.saving {
		a.pendingSave = true
		a.pendingQuit = a.pendingQuit || quit
		return nil
	}
	a.saving = true
	return saveSheetCmd(a.storage, a.day, a.Sheet().Snapshot(), a.rev, quit)
}

// quit saves outstanding edits before exiting.
func (a *App) quit() tea.Cmd {
	a.quitting = true
	if a.forceQuit || a.readOnly || !a.Dirty() {
		return tea.Quit
	}
	return a.requestSave(true)
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if a.quitting {
		return nil
	}

	// Any click closes help
	if a.showHelp {
		if msg.Action == tea.MouseActionPress {
			a.showHelp = false
		}
		return nil
	}

	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		a.sheetPane.HandleMouse(msg)
		return nil
	}

	if msg.Action != tea.MouseActionPress || msg.Y < a.contentTop {
		return nil
	}
	switch a.layoutMode {
	case LayoutWide:
		if msg.X >= a.sheetPaneEnd {
			return nil
		}
	case LayoutNarrow:
		if msg.Y >= a.sheetPaneBottom {
			return nil
		}
	}

	localMsg := msg
	localMsg.Y = msg.Y - a.contentTop
	a.sheetPane.HandleMouse(localMsg)
	return nil
}

// updateLayout recalculates pane sizes based on terminal dimensions.
func (a *App) updateLayout() {
	// Leave room for title bar (1), help bar (1) and pane borders
	contentHeight := a.height - 4
	if contentHeight < 10 {
		contentHeight = 10
	}

	a.helpOverlay.SetSize(a.width, a.height)
	a.help.Width = a.width

	totalWidth := a.width - 4

	threshold := a.config.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 80 // Default threshold
	}

	if a.width < threshold {
		// Narrow mode: ledger on top, summary below
		a.layoutMode = LayoutNarrow

		paneWidth := a.width - 2
		if paneWidth < 20 {
			paneWidth = 20
		}
		summaryHeight := max(6, contentHeight/3)
		sheetHeight := max(6, contentHeight-summaryHeight-2)

		a.sheetPane.SetSize(paneWidth, sheetHeight)
		a.summaryPane.SetSize(paneWidth, summaryHeight)

		a.sheetPaneEnd = a.width
		a.sheetPaneBottom = a.contentTop + sheetHeight + 2
	} else {
		// Wide mode: 60/40 split
		a.layoutMode = LayoutWide

		sheetWidth := (totalWidth * 60) / 100
		summaryWidth := totalWidth - sheetWidth - 1

		a.sheetPane.SetSize(sheetWidth, contentHeight)
		a.summaryPane.SetSize(summaryWidth, contentHeight)

		// Rendered width includes the two border columns
		a.sheetPaneEnd = sheetWidth + 2
		a.sheetPaneBottom = a.height
	}
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder

	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	switch a.layoutMode {
	case LayoutNarrow:
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, a.sheetPane.View(), a.summaryPane.View()))
	default:
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, a.sheetPane.View(), " ", a.summaryPane.View()))
	}
	b.WriteString("\n")

	b.WriteString(a.renderHelpBar())

	return b.String()
}

// renderGoodbye shows the day's totals on exit.
func (a *App) renderGoodbye() string {
	var b strings.Builder
	b.WriteString("\n")
	if a.saving {
		b.WriteString("  Saving…\n")
	} else {
		b.WriteString("  See you later!\n")
	}
	b.WriteString("\n")

	if sheet := a.Sheet(); sheet != nil {
		b.WriteString(fmt.Sprintf("  Worked today: %s\n", sheet.SumAsStr()))
		if by := sheet.TimeByTasks(); by != "" {
			b.WriteString("  " + by + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" daylog ")

	mode := a.styles.ModeNormalStyle.Render(a.sheetPane.Mode().String())
	if a.sheetPane.Editing() {
		mode = a.styles.ModeInsertStyle.Render(a.sheetPane.Mode().String())
	}

	var state string
	switch {
	case a.readOnly:
		state = a.styles.ErrorStyle.Render("read-only")
	case a.Dirty():
		state = a.styles.UnsavedStyle.Render("● unsaved")
	}

	now := a.now()
	date := a.styles.DateStyle.Render(a.day.Format("Mon Jan 2") + " · " + now.Format("15:04"))

	left := title + " " + mode
	if state != "" {
		left += "  " + state
	}

	spacerWidth := a.width - lipgloss.Width(left) - lipgloss.Width(date)
	if spacerWidth < 2 {
		spacerWidth = 2
	}

	return left + strings.Repeat(" ", spacerWidth) + date
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	if a.Sheet() == nil {
		return a.styles.RenderHelp(helpKey(a.keys.Quit.Keys()), "quit")
	}
	if a.sheetPane.Editing() {
		return a.help.View(insertHelp{insert: a.insertKeys})
	}
	return a.help.View(normalHelp{global: a.keys, sheet: a.sheetKeys})
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// Run starts the Bubble Tea program with the given storage backend, styles, and config.
func Run(store *storage.Storage, styles *Styles, cfg *AppConfig) error {
	app := NewApp(store, styles, cfg)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Enable mouse support
	)
	_, err := p.Run()
	return err
}
