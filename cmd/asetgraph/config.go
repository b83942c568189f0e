package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"asetgraph/internal/config"
)

var (
	configInitOutput string
	configInitForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the asetgraph configuration file",
	// the file being managed may not exist or validate yet
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default values",
	Long: `Write the built-in defaults to a new configuration file. Without --output the
file goes to $XDG_CONFIG_HOME/asetgraph/config.yaml (or ~/.config/asetgraph/config.yaml),
where it is found on the next start.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.WriteDefault(configInitOutput, configInitForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration without secrets",
	Args:  cobra.NoArgs,
	// runs the root loader so the output reflects file, .env and environment
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.PersistentPreRunE(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), cfg.Summary())
	},
}

func init() {
	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "", "target file (default: XDG config path)")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
