package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run database migrations",
	Long: `Run database migrations.

Without arguments, runs all pending migrations (up). Existing data is kept.
With a version number, migrates to that specific version (up or down as needed).

Examples:
  codebuddy migrate      # Run all pending migrations
  codebuddy migrate 1    # Migrate to version 1
  codebuddy migrate 0    # Rollback all migrations`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{annotationSkipBootstrap: "true"},
	RunE:        runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if err := app.Migrator.EnsureMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	current, _, err := app.Migrator.CurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	fmt.Fprintf(out, "Current version: %d\n", current)

	var applied int
	if len(args) == 0 {
		applied, err = app.Migrator.RunAll(ctx)
	} else {
		target, convErr := strconv.Atoi(args[0])
		if convErr != nil || target < 0 {
			return fmt.Errorf("invalid version number: %s", args[0])
		}
		applied, err = app.Migrator.MigrateTo(ctx, target)
	}
	if err != nil {
		return err
	}

	if applied == 0 {
		fmt.Fprintln(out, "No migrations to run")
		return nil
	}
	version, _, err := app.Migrator.CurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	fmt.Fprintf(out, "Migrated to version %d (%d migrations applied)\n", version, applied)
	return nil
}
