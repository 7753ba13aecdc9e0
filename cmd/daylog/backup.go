// This file contains the backup and restore subcommands.
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"daylog/internal/backup"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func addBackup(topLevel *cobra.Command, root *rootOptions) {
	var (
		list  bool
		prune int
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshot every day sheet, or list and prune snapshots.",
		Long: `Copies all day sheets into a timestamped snapshot under
<data_dir>/backups. Snapshots can be restored with "daylog restore".`,
		Example: `
daylog backup
daylog backup --list
daylog backup --prune 10
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := root.load()
			if err != nil {
				return err
			}
			manager := backup.NewManager(store, version)
			out := cmd.OutOrStdout()

			switch {
			case list:
				return listBackups(out, manager, store.Now())
			case cmd.Flags().Changed("prune"):
				deleted, err := manager.Prune(prune)
				if err != nil {
					return fmt.Errorf("pruning backups: %w", err)
				}
				fmt.Fprintf(out, "Removed %d backup(s), kept the newest %d.\n", deleted, prune)
				return nil
			}

			name, err := manager.Create()
			if err != nil {
				return fmt.Errorf("creating backup: %w", err)
			}
			info, err := manager.GetBackup(name)
			if err != nil {
				return fmt.Errorf("reading backup info: %w", err)
			}
			fmt.Fprintf(out, "%s Backup created: %s\n", color.GreenString("✓"), name)
			fmt.Fprintf(out, "  Days: %d, Entries: %d\n", info.Stats["days"], info.Stats["entries"])
			fmt.Fprintf(out, "  Location: %s\n", info.Path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list available backups")
	cmd.Flags().IntVar(&prune, "prune", 0, "delete all but the newest N backups")

	topLevel.AddCommand(cmd)
}

func listBackups(out io.Writer, manager *backup.Manager, now time.Time) error {
	backups, err := manager.List()
	if err != nil {
		return fmt.Errorf("listing backups: %w", err)
	}
	if len(backups) == 0 {
		fmt.Fprintln(out, "No backups available.")
		fmt.Fprintln(out, "Run 'daylog backup' to create one.")
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	table := uitable.New()
	table.AddRow(bold("NAME"), bold("AGE"), bold("DAYS"), bold("ENTRIES"))
	for _, b := range backups {
		table.AddRow(b.Name, formatAge(now.Sub(b.CreatedAt)), b.Stats["days"], b.Stats["entries"])
	}
	fmt.Fprintln(out, table)
	return nil
}

func addRestore(topLevel *cobra.Command, root *rootOptions) {
	var latest, force bool

	cmd := &cobra.Command{
		Use:   "restore [BACKUP_NAME]",
		Short: "Restore day sheets from a snapshot.",
		Long: `Copies the day sheets of a snapshot back into the data directory.
Days that are not in the snapshot are left alone. A safety snapshot of the
current data is taken first.`,
		Example: `
daylog restore 2026-10-19_170000_000
daylog restore --latest
daylog restore --latest --force
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := root.load()
			if err != nil {
				return err
			}
			manager := backup.NewManager(store, version)
			out := cmd.OutOrStdout()

			var name string
			switch {
			case latest && len(args) > 0:
				return fmt.Errorf("give a backup name or --latest, not both")
			case latest:
				backups, err := manager.List()
				if err != nil {
					return fmt.Errorf("listing backups: %w", err)
				}
				if len(backups) == 0 {
					return fmt.Errorf("no backups available")
				}
				name = backups[0].Name
			case len(args) == 1:
				name = args[0]
			default:
				return fmt.Errorf("no backup specified; run 'daylog backup --list' to see them")
			}

			info, err := manager.GetBackup(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Restoring from backup: %s\n", info.Name)
			fmt.Fprintf(out, "  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "  Days: %d, Entries: %d\n\n", info.Stats["days"], info.Stats["entries"])

			if !force {
				ok, err := confirm(cmd.InOrStdin(), out, "This will overwrite the sheets of those days. Continue? [y/N] ")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Restore cancelled.")
					return nil
				}
			}

			safety, err := manager.Restore(name)
			if err != nil {
				return fmt.Errorf("restoring backup: %w", err)
			}
			fmt.Fprintf(out, "%s Safety backup: %s\n", color.GreenString("✓"), safety)
			fmt.Fprintf(out, "%s Restored from %s\n", color.GreenString("✓"), name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&latest, "latest", false, "restore the most recent backup")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	topLevel.AddCommand(cmd)
}

// confirm asks a yes/no question; anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading input: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// formatAge renders how long ago something happened.
func formatAge(d time.Duration) string {
	plural := func(n int, unit string) string {
		if n == 1 {
			return "1 " + unit + " ago"
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	default:
		return plural(int(d.Hours()/24/7), "week")
	}
}
