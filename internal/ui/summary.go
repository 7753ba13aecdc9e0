package ui

import (
	"strings"

	"daylog/internal/timesheet"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// SummaryPane shows the time per effective label and the worked total.
type SummaryPane struct {
	sheet  *timesheet.TimeSheet
	styles *Styles
	width  int
	height int
}

// NewSummaryPane creates a summary pane with no sheet attached.
func NewSummaryPane(styles *Styles) *SummaryPane {
	return &SummaryPane{styles: styles}
}

// SetSheet attaches the sheet whose totals are shown.
func (p *SummaryPane) SetSheet(sheet *timesheet.TimeSheet) {
	p.sheet = sheet
}

// SetSize sets the pane dimensions.
func (p *SummaryPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// View renders the pane. Totals are recomputed against the clock on every
// render.
func (p *SummaryPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("SUMMARY"))
	b.WriteString("\n")

	inner := p.width - 4
	if inner < 10 {
		inner = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", inner)))
	b.WriteString("\n")

	if p.sheet != nil {
		rules := p.sheet.Rules()
		buckets := p.sheet.GroupedDurations()
		for _, bucket := range buckets {
			if bucket.Pause && rules.HidesPause() {
				continue
			}
			b.WriteString(p.row(bucket.Label, timesheet.FormatDuration(bucket.Duration), bucket.Pause, inner))
			b.WriteString("\n")
		}
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", inner)))
		b.WriteString("\n")
		b.WriteString(p.totalRow(timesheet.FormatDuration(timesheet.Worked(buckets)), inner))
		b.WriteString("\n")
	}

	return p.styles.PaneStyle.Width(p.width).Height(p.height).Render(b.String())
}

// row renders "label ....... H:MM" with the duration right-aligned.
func (p *SummaryPane) row(label, duration string, pause bool, width int) string {
	labelWidth := width - runewidth.StringWidth(duration) - 1
	if labelWidth < 4 {
		labelWidth = 4
	}
	label = runewidth.Truncate(label, labelWidth, "..")
	pad := strings.Repeat(" ", max(1, width-runewidth.StringWidth(label)-runewidth.StringWidth(duration)))

	labelStyle := p.styles.BucketStyle
	if pause {
		labelStyle = p.styles.BucketPauseStyle
	}
	return labelStyle.Render(label) + pad + p.styles.DurationStyle.Render(duration)
}

func (p *SummaryPane) totalRow(total string, width int) string {
	const label = "total"
	pad := strings.Repeat(" ", max(1, width-len(label)-runewidth.StringWidth(total)))
	return p.styles.TotalStyle.Render(label) + pad + p.styles.TotalStyle.Render(total)
}
