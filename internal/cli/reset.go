package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/codebuddy/internal/adapters/storage"
	"github.com/emiliopalmerini/codebuddy/internal/domain"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the database (drop and recreate the schema)",
	Long: `Reset the database by rolling back every migration and applying them again.

WARNING: This will delete ALL recorded problems. A gzipped JSON snapshot of
the problems is saved first unless --no-snapshot is given; see "codebuddy snapshots".

Examples:
  codebuddy reset --yes
  codebuddy reset --yes --seed   # start over with the sample problems`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationSkipBootstrap: "true"},
	RunE:        runReset,
}

// Flags
var (
	resetYes        bool
	resetSeed       bool
	resetNoSnapshot bool
)

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Confirm that all data will be deleted")
	resetCmd.Flags().BoolVar(&resetSeed, "seed", false, "Insert the sample problems after the reset")
	resetCmd.Flags().BoolVar(&resetNoSnapshot, "no-snapshot", false, "Do not save a snapshot before the reset")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetYes {
		return fmt.Errorf("refusing to delete all data without --yes")
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if !resetNoSnapshot {
		if err := snapshotBeforeReset(cmd); err != nil {
			return err
		}
	}

	if err := app.Migrator.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "Database reset complete")

	if resetSeed {
		return seedSamples(cmd)
	}
	return nil
}

// snapshotBeforeReset saves the current problems. A schema that was never
// migrated has nothing to save.
func snapshotBeforeReset(cmd *cobra.Command) error {
	ctx := cmd.Context()

	if err := app.Migrator.EnsureMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	version, _, err := app.Migrator.CurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	if version == 0 {
		return nil
	}

	problems, err := app.Problems.List(ctx, domain.Filter{})
	if err != nil {
		return err
	}
	if len(problems) == 0 {
		return nil
	}

	snapshots, err := storage.NewSnapshotStorage()
	if err != nil {
		return err
	}
	name, path, err := snapshots.Store(ctx, time.Now().Format("20060102-150405"), problems)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d problems to snapshot %s (%s)\n", len(problems), name, path)
	return nil
}
