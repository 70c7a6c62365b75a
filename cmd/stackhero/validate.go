package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/stackhero/internal/catalog"
	"github.com/kingrea/stackhero/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if len(args) == 1 {
			path = args[0]
		}
		if printDefault, _ := cmd.Flags().GetBool("print-default"); printDefault {
			fmt.Fprint(cmd.OutOrStdout(), config.DefaultYAML())
			return nil
		}
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		if _, err := catalog.FromConfig(cfg.Modules); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		source := cfg.Path
		if source == "" {
			source = "built-in defaults"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "OK: %s (%d modules, cycle %s)\n",
			source, len(cfg.Modules), cfg.Timing.Chaos+cfg.Timing.Routes+cfg.Timing.Stack)
		return nil
	},
}

func init() {
	validateCmd.Flags().Bool("print-default", false, "Print the built-in configuration instead")
	rootCmd.AddCommand(validateCmd)
}
