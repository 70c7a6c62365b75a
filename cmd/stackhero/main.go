// cmd/stackhero/main.go
//
// This is the entry point for the stackhero CLI.
// Running `stackhero` with no subcommand opens the animated hero tile in the
// terminal; the subcommands print the phase timeline and the resolved
// layout, or validate a configuration file.

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/kingrea/stackhero/internal/config"
	"github.com/kingrea/stackhero/internal/logging"
	"github.com/kingrea/stackhero/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "stackhero",
	Short: "Animated chaos-to-stack hero tile for the terminal",
	Long: `stackhero cycles a set of modules through three phases: scattered chaos,
mapped routes and an ordered stack. Click a stacked module (or press its
number) to read its description.`,
	SilenceUsage: true,
	RunE:         runHero,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a stackhero YAML configuration")
	rootCmd.Flags().String("log-file", "", "Append a session log to this file")
	rootCmd.Flags().Bool("no-color", false, "Disable colours")
	rootCmd.Flags().Bool("inline", false, "Render in the current screen instead of the alternate screen")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func runHero(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logPath, _ := cmd.Flags().GetString("log-file")
	if logPath == "" {
		logPath = cfg.LogFile
	}
	logger, err := logging.New(logPath)
	if err != nil {
		return err
	}
	defer logger.Close()

	noColor, _ := cmd.Flags().GetBool("no-color")
	opts := []tui.AppOption{tui.WithLogger(logger)}
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		opts = append(opts, tui.WithMarkdownRenderer(tui.GlamourRenderer("notty")))
	}

	app, err := tui.NewApp(cfg, opts...)
	if err != nil {
		return err
	}
	defer app.Close()

	programOpts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if inline, _ := cmd.Flags().GetBool("inline"); !inline {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	// Run blocks until the user quits
	if _, err := tea.NewProgram(app, programOpts...).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
