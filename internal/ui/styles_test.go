package ui

import (
	"strings"
	"testing"

	"daylog/internal/config"

	"github.com/charmbracelet/lipgloss"
)

func TestNewStyles_UsesThemeColors(t *testing.T) {
	theme := &config.ThemeConfig{
		Primary:    "#FF0000", // Red
		Accent:     "#00FF00", // Green
		Muted:      "#0000FF", // Blue
		Background: "#000000", // Black
		Text:       "#FFFFFF", // White
	}

	styles := NewStylesFromTheme(theme)

	if styles.ColorPrimary != lipgloss.Color("#FF0000") {
		t.Errorf("ColorPrimary = %v, want #FF0000", styles.ColorPrimary)
	}
	if styles.ColorAccent != lipgloss.Color("#00FF00") {
		t.Errorf("ColorAccent = %v, want #00FF00", styles.ColorAccent)
	}
	if styles.ColorMuted != lipgloss.Color("#0000FF") {
		t.Errorf("ColorMuted = %v, want #0000FF", styles.ColorMuted)
	}
	if styles.ColorBg != lipgloss.Color("#000000") {
		t.Errorf("ColorBg = %v, want #000000", styles.ColorBg)
	}
	if styles.ColorText != lipgloss.Color("#FFFFFF") {
		t.Errorf("ColorText = %v, want #FFFFFF", styles.ColorText)
	}
}

func TestNewStyles_UsesDefaults(t *testing.T) {
	styles := NewStylesFromTheme(&config.ThemeConfig{})

	if styles.ColorPrimary != lipgloss.Color("#7C3AED") {
		t.Errorf("ColorPrimary = %v, want default #7C3AED", styles.ColorPrimary)
	}
	if styles.ColorAccent != lipgloss.Color("#3B82F6") {
		t.Errorf("ColorAccent = %v, want default #3B82F6", styles.ColorAccent)
	}
	if styles.ColorMuted != lipgloss.Color("#6B7280") {
		t.Errorf("ColorMuted = %v, want default #6B7280", styles.ColorMuted)
	}
}

func TestNewStyles_ComponentStylesInitialized(t *testing.T) {
	styles := NewStylesFromTheme(&config.ThemeConfig{Primary: "#FF0000"})

	if styles.TitleStyle.GetBackground() != lipgloss.Color("#FF0000") {
		t.Error("TitleStyle should use Primary color for background")
	}
	if styles.PaneFocusedStyle.GetBorderTopForeground() != lipgloss.Color("#FF0000") {
		t.Error("PaneFocusedStyle should use Primary color for border")
	}
	if styles.PaneTitleStyle.GetForeground() != lipgloss.Color("#FF0000") {
		t.Error("PaneTitleStyle should use Primary color for foreground")
	}
	if styles.SelectMarker != ">" {
		t.Errorf("SelectMarker = %q, want >", styles.SelectMarker)
	}
}

func TestNewStyles_FromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Theme.Primary = "#123456"

	styles := NewStyles(cfg)

	if styles.ColorPrimary != lipgloss.Color("#123456") {
		t.Errorf("ColorPrimary = %v, want #123456", styles.ColorPrimary)
	}
}

func TestRenderHelp(t *testing.T) {
	setupTest(t)
	styles := createTestStyles()

	output := styles.RenderHelp(
		"o", "new",
		"d", "cut",
	)

	for _, want := range []string{"[o] new", "[d] cut"} {
		if !strings.Contains(output, want) {
			t.Errorf("RenderHelp() = %q, missing %q", output, want)
		}
	}
}
