package ui

import (
	"fmt"
	"strings"

	"daylog/internal/config"
	"daylog/internal/listedit"
	"daylog/internal/timesheet"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// sheetHeaderRows is the number of rows above the first entry: the pane
// border, the title and the separator.
const sheetHeaderRows = 3

// editResult reports what a key did to the sheet.
type editResult struct {
	changed bool // entries changed; the sheet needs saving
	notice  string
	isErr   bool
}

// SheetPane shows the day's entries and routes editing keys to them.
type SheetPane struct {
	sheet   *timesheet.TimeSheet
	editor  *listedit.Editor[timesheet.TimePoint]
	styles  *Styles
	keys    SheetKeyMap
	insert  InsertKeyMap
	width   int
	height  int
	focused bool
}

// NewSheetPane creates an empty pane. SetSheet attaches the loaded day.
func NewSheetPane(styles *Styles, keyCfg *config.KeysConfig) *SheetPane {
	return &SheetPane{
		styles:  styles,
		keys:    NewSheetKeyMap(keyCfg),
		insert:  NewInsertKeyMap(keyCfg),
		focused: true,
	}
}

// SetSheet attaches sheet to the pane.
func (p *SheetPane) SetSheet(sheet *timesheet.TimeSheet) {
	p.sheet = sheet
	p.editor = listedit.New[timesheet.TimePoint](sheet)
}

// Sheet returns the attached sheet, or nil before loading finished.
func (p *SheetPane) Sheet() *timesheet.TimeSheet {
	return p.sheet
}

// SetSize sets the pane dimensions.
func (p *SheetPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets the focus state of the pane.
func (p *SheetPane) SetFocused(focused bool) {
	p.focused = focused
}

// Mode returns the editing mode. Without a sheet the pane is in NORMAL.
func (p *SheetPane) Mode() listedit.Mode {
	if p.editor == nil {
		return listedit.Normal
	}
	return p.editor.Mode()
}

// Editing reports whether an entry is being typed.
func (p *SheetPane) Editing() bool {
	return p.Mode() == listedit.Insert
}

// Commit leaves insert mode, committing the entry being typed. It reports
// whether there was anything to commit.
func (p *SheetPane) Commit() bool {
	if !p.Editing() {
		return false
	}
	p.editor.ExitInsert()
	return true
}

// HandleKey applies one key press to the sheet.
func (p *SheetPane) HandleKey(msg tea.KeyMsg) editResult {
	if p.editor == nil {
		return editResult{}
	}
	if p.editor.Editing() {
		return p.handleInsertKey(msg)
	}
	return p.handleNormalKey(msg)
}

func (p *SheetPane) handleInsertKey(msg tea.KeyMsg) editResult {
	switch {
	case key.Matches(msg, p.insert.Commit):
		p.editor.ExitInsert()
		return editResult{changed: true}

	case key.Matches(msg, p.insert.Erase):
		p.editor.Erase()
		return editResult{}
	}

	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			p.editor.Type(r)
		}
	case tea.KeySpace:
		p.editor.Type(' ')
	}
	return editResult{}
}

func (p *SheetPane) handleNormalKey(msg tea.KeyMsg) editResult {
	switch {
	case key.Matches(msg, p.keys.Up):
		p.editor.MoveUp()

	case key.Matches(msg, p.keys.Down):
		p.editor.MoveDown()

	case key.Matches(msg, p.keys.Top):
		p.editor.Top()

	case key.Matches(msg, p.keys.Bottom):
		p.editor.Bottom()

	case key.Matches(msg, p.keys.Edit):
		p.editor.EnterInsert()

	case key.Matches(msg, p.keys.New):
		p.editor.Insert(p.sheet.NewEntry())

	case key.Matches(msg, p.keys.Cut):
		if !p.editor.Cut() {
			return editResult{notice: "Cannot cut the only entry", isErr: true}
		}
		return editResult{changed: true}

	case key.Matches(msg, p.keys.Paste):
		if !p.editor.Paste() {
			return editResult{notice: "Nothing to paste"}
		}
		return editResult{changed: true}

	case key.Matches(msg, p.keys.Earlier):
		p.sheet.ShiftCurrent(-p.sheet.Rules().ShiftStep())
		return editResult{changed: true}

	case key.Matches(msg, p.keys.Later):
		p.sheet.ShiftCurrent(p.sheet.Rules().ShiftStep())
		return editResult{changed: true}
	}
	return editResult{}
}

// visibleRows is how many entries fit in the pane.
func (p *SheetPane) visibleRows() int {
	rows := p.height - 6 // border, title, separator, blank, footer
	if rows < 3 {
		rows = 5
	}
	return rows
}

// window returns the index of the first visible entry.
func (p *SheetPane) window() int {
	rows := p.visibleRows()
	if sel := p.sheet.Selected(); sel >= rows {
		return sel - rows + 1
	}
	return 0
}

// HandleMouse moves the selection with the wheel or a click. Y is relative
// to the top of the pane. Mouse input is ignored while typing.
func (p *SheetPane) HandleMouse(msg tea.MouseMsg) {
	if p.editor == nil || p.editor.Editing() {
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.editor.MoveUp()

	case tea.MouseButtonWheelDown:
		p.editor.MoveDown()

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return
		}
		row := msg.Y - sheetHeaderRows
		if row < 0 || row >= p.visibleRows() {
			return
		}
		idx := p.window() + row
		if idx >= p.sheet.Len() {
			return
		}
		*p.sheet.Selection() = idx
	}
}

// View renders the pane.
func (p *SheetPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("LEDGER"))
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	if p.sheet == nil {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  Loading…"))
		b.WriteString("\n")
	} else {
		p.renderEntries(&b)
	}

	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(b.String())
}

func (p *SheetPane) renderEntries(b *strings.Builder) {
	lines, selected := p.sheet.Printable()
	rows := p.visibleRows()
	start := p.window()
	editing := p.editor.Editing()

	// marker, space and the insert cursor
	textWidth := p.width - 4 - 3
	if textWidth < 5 {
		textWidth = 5
	}

	for i, text := range lines {
		if i < start || i >= start+rows {
			continue
		}
		switch {
		case i == selected && editing:
			// Keep the tail visible so the cursor stays on screen.
			shown := text
			if runewidth.StringWidth(shown) > textWidth {
				shown = runewidth.TruncateLeft(shown, runewidth.StringWidth(shown)-textWidth+1, "…")
			}
			b.WriteString(p.styles.EntryEditingStyle.Render(p.styles.SelectMarker+" "+shown) + p.styles.Cursor)
		case i == selected:
			shown := runewidth.Truncate(text, textWidth, "..")
			b.WriteString(p.styles.EntrySelectedStyle.Render(p.styles.SelectMarker + " " + shown))
		default:
			shown := runewidth.Truncate(text, textWidth, "..")
			b.WriteString("  " + p.renderEntry(shown))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString("  " + p.footer())
	b.WriteString("\n")
}

// renderEntry colors the timestamp prefix apart from the label.
func (p *SheetPane) renderEntry(text string) string {
	prefix, _ := timesheet.SplitPrefix(text)
	if prefix == "" {
		return p.styles.EntryStyle.Render(text)
	}
	return p.styles.EntryTimeStyle.Render(prefix) + p.styles.EntryStyle.Render(text[len(prefix):])
}

func (p *SheetPane) footer() string {
	if held, ok := p.sheet.Register().Peek(); ok {
		return p.styles.RegisterStyle.Render("register: " + runewidth.Truncate(held.Display(), max(p.width-16, 5), ".."))
	}
	noun := "entries"
	if p.sheet.Len() == 1 {
		noun = "entry"
	}
	return p.styles.StatLabelStyle.Render(fmt.Sprintf("%d %s", p.sheet.Len(), noun))
}
