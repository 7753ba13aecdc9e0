package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// helpSection is one titled group of bindings in the overlay.
type helpSection struct {
	title    string
	bindings []key.Binding
}

// HelpOverlay renders a help screen from the active key maps.
type HelpOverlay struct {
	width    int
	height   int
	styles   *Styles
	sections []helpSection
}

// NewHelpOverlay creates a help overlay listing the given bindings.
func NewHelpOverlay(styles *Styles, global GlobalKeyMap, sheet SheetKeyMap, insert InsertKeyMap) *HelpOverlay {
	return &HelpOverlay{
		styles: styles,
		sections: []helpSection{
			{"Navigation", []key.Binding{sheet.Up, sheet.Down, sheet.Top, sheet.Bottom}},
			{"Entries", []key.Binding{sheet.New, sheet.Edit, sheet.Cut, sheet.Paste, sheet.Earlier, sheet.Later}},
			{"Insert Mode", []key.Binding{insert.Commit, insert.Erase, insert.Quit}},
			{"Global", []key.Binding{global.Save, global.Copy, global.Help, global.Quit}},
		},
	}
}

// SetSize sets the overlay dimensions
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	overlayWidth := 60
	if h.width > 0 {
		overlayWidth = min(60, max(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorWarning).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder

	b.WriteString(titleStyle.Render("daylog - Keyboard Shortcuts"))
	b.WriteString("\n")

	for _, section := range h.sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.bindings {
			if !binding.Enabled() {
				continue
			}
			hk := binding.Help()
			b.WriteString(keyStyle.Render(hk.Key) + descStyle.Render(hk.Desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Type \"[HH:MM] label\" to set an entry's time while editing."))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("Press ? or Esc to close"))

	content := overlayStyle.Render(b.String())

	return lipgloss.Place(
		h.width,
		h.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
