package timesheet

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// stampPattern matches the "[HH:MM]" prefix of a display text.
var stampPattern = regexp.MustCompile(`^\[\s*(\d{1,2}:\d{2})\s*\]$`)

const (
	DefaultOverrideOpen  = "("
	DefaultOverrideClose = ")"
	DefaultPauseLabel    = "pause"
	DefaultShiftStep     = 5
)

// DefaultPauseSynonyms are the labels folded into the pause bucket.
var DefaultPauseSynonyms = []string{"pause", "lunch", "mittag", "break"}

// DefaultRules uses parenthesis overrides and the default pause synonyms.
var DefaultRules = MustRules(RulesConfig{})

// RulesConfig describes how labels are grouped.
type RulesConfig struct {
	OverrideOpen  string
	OverrideClose string
	PauseLabel    string
	PauseSynonyms []string
	// HidePause drops pause buckets from TimeByTasks. They are never counted
	// in the total either way.
	HidePause bool
	// ShiftStep is the grid, in minutes, that shifted times snap to. It must
	// be one of 5, 10, 15, 20, 30 or 60 so the grid lines up with the hour.
	ShiftStep int
}

// Rules is the compiled, read-only form of RulesConfig. Build it once at
// startup and share it.
type Rules struct {
	override  *regexp.Regexp
	pause     string
	synonyms  []string
	hidePause bool
	shiftStep int
}

// NewRules compiles cfg, filling empty fields with defaults.
func NewRules(cfg RulesConfig) (*Rules, error) {
	openDelim, closeDelim := cfg.OverrideOpen, cfg.OverrideClose
	if openDelim == "" {
		openDelim = DefaultOverrideOpen
	}
	if closeDelim == "" {
		closeDelim = DefaultOverrideClose
	}
	re, err := regexp.Compile(regexp.QuoteMeta(openDelim) + "(.*)" + regexp.QuoteMeta(closeDelim))
	if err != nil {
		return nil, fmt.Errorf("compile override pattern: %w", err)
	}

	pause := strings.TrimSpace(cfg.PauseLabel)
	if pause == "" {
		pause = DefaultPauseLabel
	}
	synonyms := cfg.PauseSynonyms
	if len(synonyms) == 0 {
		synonyms = DefaultPauseSynonyms
	}
	synonyms = slices.Clone(synonyms)
	if !slices.Contains(synonyms, pause) {
		synonyms = append(synonyms, pause)
	}

	step := cfg.ShiftStep
	if step <= 0 {
		step = DefaultShiftStep
	}
	if step%DefaultShiftStep != 0 || 60%step != 0 {
		return nil, fmt.Errorf("shift step %d: must be a multiple of %d that divides 60", step, DefaultShiftStep)
	}

	return &Rules{
		override:  re,
		pause:     pause,
		synonyms:  synonyms,
		hidePause: cfg.HidePause,
		shiftStep: step,
	}, nil
}

// MustRules is like NewRules but panics on error.
func MustRules(cfg RulesConfig) *Rules {
	r, err := NewRules(cfg)
	if err != nil {
		panic(err)
	}
	return r
}

// PauseLabel is the canonical label all pause synonyms collapse into.
func (r *Rules) PauseLabel() string {
	return r.pause
}

// ShiftStep returns the rounding grid in minutes.
func (r *Rules) ShiftStep() int {
	return r.shiftStep
}

// IsPause reports whether label is the canonical pause label.
func (r *Rules) IsPause(label string) bool {
	return label == r.pause
}

// EffectiveLabel is the label an entry is grouped under: the display prefix
// is dropped, an override segment replaces the whole label, and pause
// synonyms become the pause label.
func (r *Rules) EffectiveLabel(text string) string {
	_, label := SplitPrefix(text)
	if m := r.override.FindStringSubmatch(label); m != nil {
		label = m[1]
	}
	if slices.Contains(r.synonyms, label) {
		return r.pause
	}
	return label
}

// HidesPause reports whether pause buckets are left out of the breakdown.
func (r *Rules) HidesPause() bool {
	return r.hidePause
}
