package ui

import (
	"slices"
	"testing"

	"daylog/internal/config"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name   string
		custom string
		want   []string
	}{
		{name: "empty uses defaults", custom: "", want: []string{"q", "ctrl+c"}},
		{name: "single key", custom: "x", want: []string{"x"}},
		{name: "trims spaces", custom: " x , ctrl+x ", want: []string{"x", "ctrl+x"}},
		{name: "only separators uses defaults", custom: " , ,", want: []string{"q", "ctrl+c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseKeys(tt.custom, "q", "ctrl+c"); !slices.Equal(got, tt.want) {
				t.Errorf("parseKeys(%q) = %v, want %v", tt.custom, got, tt.want)
			}
		})
	}
}

func TestSheetKeyMap_Defaults(t *testing.T) {
	keys := DefaultSheetKeyMap()

	tests := []struct {
		binding key.Binding
		msg     tea.KeyMsg
	}{
		{keys.Up, tea.KeyMsg{Type: tea.KeyUp}},
		{keys.Down, keyRunes("j")},
		{keys.Bottom, keyRunes("G")},
		{keys.Later, keyRunes("+")},
		{keys.Earlier, keyRunes("-")},
		{keys.Edit, tea.KeyMsg{Type: tea.KeyEnter}},
	}
	for _, tt := range tests {
		if !key.Matches(tt.msg, tt.binding) {
			t.Errorf("%q should match %v", tt.msg.String(), tt.binding.Keys())
		}
	}
}

func TestNewKeyMaps_Custom(t *testing.T) {
	cfg := &config.KeysConfig{Quit: "Q", Earlier: "[", Commit: "ctrl+s"}

	if !key.Matches(keyRunes("Q"), NewGlobalKeyMap(cfg).Quit) {
		t.Error("custom quit key not bound")
	}
	if key.Matches(keyRunes("q"), NewGlobalKeyMap(cfg).Quit) {
		t.Error("default quit key still bound")
	}
	if got := NewSheetKeyMap(cfg).Earlier.Help().Key; got != "[" {
		t.Errorf("Earlier help key = %q", got)
	}
	if !key.Matches(tea.KeyMsg{Type: tea.KeyCtrlS}, NewInsertKeyMap(cfg).Commit) {
		t.Error("custom commit key not bound")
	}
	if !key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, NewInsertKeyMap(nil).Quit) {
		t.Error("ctrl+c should commit and quit in insert mode")
	}
}

func TestNormalHelp(t *testing.T) {
	h := normalHelp{global: DefaultGlobalKeyMap(), sheet: DefaultSheetKeyMap()}

	if len(h.ShortHelp()) == 0 {
		t.Fatal("ShortHelp() is empty")
	}
	var n int
	for _, group := range h.FullHelp() {
		n += len(group)
	}
	if n != 14 {
		t.Errorf("FullHelp() has %d bindings, want 14", n)
	}
}
