// Package config handles configuration loading and defaults for daylog.
// Configuration is loaded from XDG-compliant paths (typically ~/.config/daylog/config.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"daylog/internal/fsutil"
	"daylog/internal/timesheet"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.daylog)
	DataDir string `yaml:"data_dir,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// Ledger controls how entries are grouped and summed
	Ledger LedgerConfig `yaml:"ledger,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`
}

// ThemeConfig defines color and style settings.
type ThemeConfig struct {
	// Primary color for focused elements (hex, e.g., "#FF5733")
	Primary string `yaml:"primary,omitempty"`

	// Accent color for highlights (hex)
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text (hex)
	Muted string `yaml:"muted,omitempty"`

	// Background color (hex)
	Background string `yaml:"background,omitempty"`

	// Text color (hex)
	Text string `yaml:"text,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "o", "k,up"
type KeysConfig struct {
	Quit string `yaml:"quit,omitempty"` // default: "q,ctrl+c"
	Help string `yaml:"help,omitempty"` // default: "?"
	Save string `yaml:"save,omitempty"` // default: "s"
	Copy string `yaml:"copy,omitempty"` // default: "y"

	// Navigation keys
	Up     string `yaml:"up,omitempty"`     // default: "k,up"
	Down   string `yaml:"down,omitempty"`   // default: "j,down"
	Top    string `yaml:"top,omitempty"`    // default: "g,home"
	Bottom string `yaml:"bottom,omitempty"` // default: "G,end"

	// Entry keys
	Edit    string `yaml:"edit,omitempty"`    // default: "i,enter"
	New     string `yaml:"new,omitempty"`     // default: "o,a"
	Cut     string `yaml:"cut,omitempty"`     // default: "d,x"
	Paste   string `yaml:"paste,omitempty"`   // default: "p"
	Earlier string `yaml:"earlier,omitempty"` // default: "-,h"
	Later   string `yaml:"later,omitempty"`   // default: "+,=,l"

	// Insert mode keys
	Commit string `yaml:"commit,omitempty"` // default: "enter,esc"
}

// LedgerConfig defines grouping behavior.
type LedgerConfig struct {
	// OverrideOpen and OverrideClose delimit the part of a label that
	// replaces the whole label for grouping, e.g. "call with bob (ops)".
	OverrideOpen  string `yaml:"override_open,omitempty"`
	OverrideClose string `yaml:"override_close,omitempty"`

	// PauseLabel is the bucket pause synonyms collapse into
	PauseLabel string `yaml:"pause_label,omitempty"`

	// PauseSynonyms are labels counted as pause
	PauseSynonyms []string `yaml:"pause_synonyms,omitempty"`

	// ShowPause keeps the pause bucket in the per-label breakdown
	ShowPause bool `yaml:"show_pause"` // default: true

	// ShiftStep is the minute grid used when nudging an entry's time
	ShiftStep int `yaml:"shift_step,omitempty"` // default: 5
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// Autosave writes the sheet after every committed change
	Autosave bool `yaml:"autosave"` // default: true

	// NarrowLayoutThreshold is the terminal width below which panes stack
	NarrowLayoutThreshold int `yaml:"narrow_layout_threshold,omitempty"` // default: 80
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Theme: ThemeConfig{
			Primary:    "#7C3AED", // Violet
			Accent:     "#10B981", // Emerald
			Muted:      "#6B7280", // Gray
			Background: "",        // Terminal default
			Text:       "",        // Terminal default
		},
		Keys: KeysConfig{
			// Defaults are empty strings, which means use built-in defaults
		},
		Ledger: LedgerConfig{
			OverrideOpen:  timesheet.DefaultOverrideOpen,
			OverrideClose: timesheet.DefaultOverrideClose,
			PauseLabel:    timesheet.DefaultPauseLabel,
			PauseSynonyms: append([]string(nil), timesheet.DefaultPauseSynonyms...),
			ShowPause:     true,
			ShiftStep:     timesheet.DefaultShiftStep,
		},
		UX: UXConfig{
			Autosave:              true,
			NarrowLayoutThreshold: 80,
		},
	}
}

// Rules compiles the ledger settings. Call it once at startup.
func (c *Config) Rules() (*timesheet.Rules, error) {
	rules, err := timesheet.NewRules(timesheet.RulesConfig{
		OverrideOpen:  c.Ledger.OverrideOpen,
		OverrideClose: c.Ledger.OverrideClose,
		PauseLabel:    c.Ledger.PauseLabel,
		PauseSynonyms: c.Ledger.PauseSynonyms,
		HidePause:     !c.Ledger.ShowPause,
		ShiftStep:     c.Ledger.ShiftStep,
	})
	if err != nil {
		return nil, fmt.Errorf("ledger config: %w", err)
	}
	return rules, nil
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return ".daylog"
	}
	return filepath.Join(home, ".daylog")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "daylog")
	}

	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "daylog")
}

// Path returns the path to the config file, or "" when no home is known.
func Path() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults.
// If no config file exists, returns default configuration.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile is Load with an explicit path. An empty path yields defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; fall back to conservative merge if this fails

	cfg.mergeFromYAML(&userCfg, &doc)

	return cfg, nil
}

// mergeNonEmpty applies non-empty values from other to c.
// Booleans and slices need presence-aware merging and are left alone.
func (c *Config) mergeNonEmpty(other *Config) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}

	setIf(&c.Theme.Primary, other.Theme.Primary)
	setIf(&c.Theme.Accent, other.Theme.Accent)
	setIf(&c.Theme.Muted, other.Theme.Muted)
	setIf(&c.Theme.Background, other.Theme.Background)
	setIf(&c.Theme.Text, other.Theme.Text)

	setIf(&c.Keys.Quit, other.Keys.Quit)
	setIf(&c.Keys.Help, other.Keys.Help)
	setIf(&c.Keys.Save, other.Keys.Save)
	setIf(&c.Keys.Copy, other.Keys.Copy)
	setIf(&c.Keys.Up, other.Keys.Up)
	setIf(&c.Keys.Down, other.Keys.Down)
	setIf(&c.Keys.Top, other.Keys.Top)
	setIf(&c.Keys.Bottom, other.Keys.Bottom)
	setIf(&c.Keys.Edit, other.Keys.Edit)
	setIf(&c.Keys.New, other.Keys.New)
	setIf(&c.Keys.Cut, other.Keys.Cut)
	setIf(&c.Keys.Paste, other.Keys.Paste)
	setIf(&c.Keys.Earlier, other.Keys.Earlier)
	setIf(&c.Keys.Later, other.Keys.Later)
	setIf(&c.Keys.Commit, other.Keys.Commit)

	setIf(&c.Ledger.OverrideOpen, other.Ledger.OverrideOpen)
	setIf(&c.Ledger.OverrideClose, other.Ledger.OverrideClose)
	setIf(&c.Ledger.PauseLabel, other.Ledger.PauseLabel)
	if other.Ledger.ShiftStep > 0 {
		c.Ledger.ShiftStep = other.Ledger.ShiftStep
	}

	if other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	c.mergeNonEmpty(other)

	// Without a document we cannot tell a missing key from a zero value.
	if doc == nil || len(doc.Content) == 0 {
		if len(other.Ledger.PauseSynonyms) > 0 {
			c.Ledger.PauseSynonyms = other.Ledger.PauseSynonyms
		}
		return
	}

	if yamlHasPath(doc, "ledger", "pause_synonyms") {
		c.Ledger.PauseSynonyms = other.Ledger.PauseSynonyms
	}
	if yamlHasPath(doc, "ledger", "show_pause") {
		c.Ledger.ShowPause = other.Ledger.ShowPause
	}
	if yamlHasPath(doc, "ux", "autosave") {
		c.UX.Autosave = other.UX.Autosave
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			v := n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.Value == key {
				next = v
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return nil
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path, creating its directory.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path, with a leading ~
// expanded to the user's home.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	expanded, err := homedir.Expand(c.DataDir)
	if err != nil {
		return c.DataDir
	}
	return expanded
}
