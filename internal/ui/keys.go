// Package ui provides the terminal interface for daylog.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation and user overrides.
package ui

import (
	"strings"

	"daylog/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultKeys
	}
	return result
}

// helpKey is the label shown for a binding: its configured keys joined by "/".
func helpKey(keys []string) string {
	return strings.Join(keys, "/")
}

func binding(custom string, desc string, defaults ...string) key.Binding {
	keys := parseKeys(custom, defaults...)
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey(keys), desc),
	)
}

// =============================================================================
// Global Keys (normal mode)
// =============================================================================

// GlobalKeyMap defines keys that act on the whole day rather than one entry.
type GlobalKeyMap struct {
	Quit key.Binding
	Help key.Binding
	Save key.Binding
	Copy key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(&config.KeysConfig{})
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit: binding(cfg.Quit, "quit", "q", "ctrl+c"),
		Help: binding(cfg.Help, "help", "?"),
		Save: binding(cfg.Save, "save", "s"),
		Copy: binding(cfg.Copy, "copy summary", "y"),
	}
}

// =============================================================================
// Navigation Keys
// =============================================================================

// NavigationKeyMap defines keys for list navigation.
type NavigationKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// NewNavigationKeyMap creates navigation key bindings from config.
func NewNavigationKeyMap(cfg *config.KeysConfig) NavigationKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return NavigationKeyMap{
		Up:     binding(cfg.Up, "up", "k", "up"),
		Down:   binding(cfg.Down, "down", "j", "down"),
		Top:    binding(cfg.Top, "top", "g", "home"),
		Bottom: binding(cfg.Bottom, "bottom", "G", "end"),
	}
}

// =============================================================================
// Sheet Keys (normal mode)
// =============================================================================

// SheetKeyMap defines the entry editing keys of normal mode.
type SheetKeyMap struct {
	Edit    key.Binding
	New     key.Binding
	Cut     key.Binding
	Paste   key.Binding
	Earlier key.Binding
	Later   key.Binding
	NavigationKeyMap
}

// DefaultSheetKeyMap returns the default sheet key bindings.
func DefaultSheetKeyMap() SheetKeyMap {
	return NewSheetKeyMap(&config.KeysConfig{})
}

// NewSheetKeyMap creates sheet key bindings from config.
func NewSheetKeyMap(cfg *config.KeysConfig) SheetKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return SheetKeyMap{
		Edit:             binding(cfg.Edit, "edit", "i", "enter"),
		New:              binding(cfg.New, "new entry", "o", "a"),
		Cut:              binding(cfg.Cut, "cut", "d", "x"),
		Paste:            binding(cfg.Paste, "paste", "p"),
		Earlier:          binding(cfg.Earlier, "earlier", "-", "h"),
		Later:            binding(cfg.Later, "later", "+", "=", "l"),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// =============================================================================
// Insert Keys
// =============================================================================

// InsertKeyMap defines keys while an entry is being typed.
type InsertKeyMap struct {
	Commit key.Binding
	Erase  key.Binding
	Quit   key.Binding
}

// DefaultInsertKeyMap returns the default insert mode key bindings.
func DefaultInsertKeyMap() InsertKeyMap {
	return NewInsertKeyMap(&config.KeysConfig{})
}

// NewInsertKeyMap creates insert mode key bindings from config.
func NewInsertKeyMap(cfg *config.KeysConfig) InsertKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return InsertKeyMap{
		Commit: binding(cfg.Commit, "commit", "enter", "esc"),
		Erase:  binding("", "erase", "backspace"),
		Quit:   binding("", "commit & quit", "ctrl+c"),
	}
}

// =============================================================================
// Help bar adapters (implement help.KeyMap)
// =============================================================================

// normalHelp feeds the normal mode bindings to the help bar.
type normalHelp struct {
	global GlobalKeyMap
	sheet  SheetKeyMap
}

// ShortHelp returns the bindings shown in the bottom bar.
func (h normalHelp) ShortHelp() []key.Binding {
	return []key.Binding{
		h.sheet.New, h.sheet.Edit, h.sheet.Cut, h.sheet.Paste,
		h.sheet.Earlier, h.sheet.Later, h.global.Copy, h.global.Help, h.global.Quit,
	}
}

// FullHelp returns all normal mode bindings grouped by purpose.
func (h normalHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.sheet.Up, h.sheet.Down, h.sheet.Top, h.sheet.Bottom},
		{h.sheet.New, h.sheet.Edit, h.sheet.Cut, h.sheet.Paste, h.sheet.Earlier, h.sheet.Later},
		{h.global.Save, h.global.Copy, h.global.Help, h.global.Quit},
	}
}

// insertHelp feeds the insert mode bindings to the help bar.
type insertHelp struct {
	insert InsertKeyMap
}

// ShortHelp returns the bindings shown in the bottom bar.
func (h insertHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.insert.Commit, h.insert.Erase, h.insert.Quit}
}

// FullHelp returns all insert mode bindings.
func (h insertHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// =============================================================================
// Help Overlay Keys
// =============================================================================

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
