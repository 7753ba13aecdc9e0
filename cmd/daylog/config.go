// This file contains the config subcommand.
package main

import (
	"fmt"
	"os"

	"daylog/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func addConfig(topLevel *cobra.Command, root *rootOptions) {
	var initFile, force bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration.",
		Example: `
daylog config
daylog config --init
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := root.load()
			if err != nil {
				return err
			}

			if initFile {
				path := config.Path()
				if root.configPath != "" {
					path = root.configPath
				}
				if path == "" {
					return fmt.Errorf("no config location: home directory unknown")
				}
				if _, err := os.Stat(path); err == nil && !force {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
				if err := cfg.SaveTo(path); err != nil {
					return fmt.Errorf("writing config: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
				return nil
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "write the effective configuration to the config file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file with --init")

	topLevel.AddCommand(cmd)
}
