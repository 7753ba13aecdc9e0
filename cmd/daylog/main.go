// Package main is the entry point for the daylog application.
// It loads configuration, initializes storage, and starts the TUI.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"daylog/internal/config"
	"daylog/internal/storage"
	"daylog/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const longHelp = `daylog - a time-point ledger for your terminal

Each line of the day's ledger records when an activity started:

    [09:00] start
    [09:30] standup
    [09:45] review (dev)
    [12:00] lunch

An entry runs until the next one; the last runs until now. Time is summed
per label. A label containing "(x)" is counted as x, and lunch, break and
pause are counted as pause, which is never part of the total.

KEYBINDINGS:
    j/k, ↓/↑     Navigate            o/a          New entry
    g/G          Top/bottom          i/Enter      Edit entry
    d/x          Cut entry           p            Paste entry
    -/+          Shift entry time    y            Copy summary
    s            Save                ?            Help
    q            Quit (saves first)

    While editing, Enter or Esc commits; type "[HH:MM] label" to set the
    time. Ctrl+C commits and quits.

DATA STORAGE:
    One JSON file per day in ~/.daylog/sheets/YYYY-MM-DD.json
    Snapshots from "daylog backup" go to ~/.daylog/backups/

CONFIGURATION:
    Optional config file: ~/.config/daylog/config.yaml
    Run "daylog config --init" to write one with the defaults.`

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	dataDir    string
	debug      bool
}

// load reads the configuration and opens storage, applying flag overrides.
func (o *rootOptions) load() (*config.Config, *storage.Storage, error) {
	path := o.configPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}

	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		return nil, nil, fmt.Errorf("initializing storage: %w", err)
	}
	return cfg, store, nil
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "daylog",
		Short:         "A time-point ledger for your terminal.",
		Long:          longHelp,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/daylog/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory (overrides data_dir from the config)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "write a debug log to daylog-debug.log")

	addExport(cmd, opts)
	addDays(cmd, opts)
	addBackup(cmd, opts)
	addRestore(cmd, opts)
	addConfig(cmd, opts)
	addVersion(cmd)

	return cmd
}

func runTUI(opts *rootOptions) error {
	if opts.debug {
		f, err := tea.LogToFile("daylog-debug.log", "daylog")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, store, err := opts.load()
	if err != nil {
		return err
	}

	rules, err := cfg.Rules()
	if err != nil {
		return err
	}

	styles := ui.NewStylesFromTheme(&cfg.Theme)

	appCfg := &ui.AppConfig{
		Keys:                  &cfg.Keys,
		Rules:                 rules,
		Autosave:              cfg.UX.Autosave,
		NarrowLayoutThreshold: cfg.UX.NarrowLayoutThreshold,
	}

	log.Printf("daylog %s starting, data in %s", version, store.GetDataDir())
	if err := ui.Run(store, styles, appCfg); err != nil {
		return fmt.Errorf("running app: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
