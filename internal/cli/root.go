package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/codebuddy/internal/infrastructure/config"
)

const annotationSkipBootstrap = "codebuddy/skip-bootstrap"

var rootCmd = &cobra.Command{
	Use:   "codebuddy",
	Short: "Personal tracker for competitive-programming problems",
	Long: `codebuddy records the competitive-programming problems you solve.

Log problems with their platform, difficulty and time spent, browse and
filter them, and follow your current and longest solving streaks.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: openApp,
}

// app is shared by every command of one process, and by every line of a shell.
var app *AppContext

func Execute() {
	err := rootCmd.Execute()
	if app != nil {
		if closeErr := app.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		app = nil
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func openApp(cmd *cobra.Command, args []string) error {
	if app != nil || !needsApp(cmd) {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a, err := NewAppContext(cmd.Context(), cfg, cmd.Annotations[annotationSkipBootstrap] != "true")
	if err != nil {
		return err
	}
	app = a
	return nil
}

func needsApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion":
			return false
		}
	}
	return true
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(shellCmd)
}
