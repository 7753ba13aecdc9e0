package ui

import (
	"strings"
	"testing"

	"daylog/internal/config"
)

func newTestHelpOverlay(keys *config.KeysConfig) *HelpOverlay {
	return NewHelpOverlay(createTestStyles(), NewGlobalKeyMap(keys), NewSheetKeyMap(keys), NewInsertKeyMap(keys))
}

func TestHelpOverlay_ContentStructure(t *testing.T) {
	setupTest(t)

	help := newTestHelpOverlay(&config.KeysConfig{})
	help.SetSize(100, 40)

	output := help.View()

	for _, section := range []string{"Navigation", "Entries", "Insert Mode", "Global"} {
		if !strings.Contains(output, section) {
			t.Errorf("help overlay should contain section: %s", section)
		}
	}

	for _, key := range []string{"j/down", "o/a", "d/x", "-/h", "+/=/l", "enter/esc", "backspace", "ctrl+c", "q/ctrl+c"} {
		if !strings.Contains(output, key) {
			t.Errorf("help overlay should mention key: %s", key)
		}
	}
	for _, desc := range []string{"new entry", "cut", "paste", "earlier", "later", "copy summary", "commit & quit"} {
		if !strings.Contains(output, desc) {
			t.Errorf("help overlay should describe: %s", desc)
		}
	}
}

func TestHelpOverlay_CustomKeys(t *testing.T) {
	setupTest(t)

	help := newTestHelpOverlay(&config.KeysConfig{Cut: "X,delete"})
	help.SetSize(100, 40)

	output := help.View()
	if !strings.Contains(output, "X/delete") {
		t.Error("help overlay should show configured keys")
	}
	if strings.Contains(output, "d/x") {
		t.Error("help overlay should not show replaced defaults")
	}
}

func TestHelpOverlay_SmallTerminal(t *testing.T) {
	setupTest(t)

	help := newTestHelpOverlay(&config.KeysConfig{})
	help.SetSize(30, 20)

	if output := help.View(); !strings.Contains(output, "Global") {
		t.Error("overlay should still render on a small terminal")
	}
}
