package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/codebuddy/internal/adapters/storage"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List snapshots saved before resets",
	Long: `List the snapshots "codebuddy reset" saves before dropping the schema.

Examples:
  codebuddy snapshots
  codebuddy snapshots --delete 20240301-093000`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationSkipBootstrap: "true"},
	RunE:        runSnapshots,
}

var snapshotsDelete string

func init() {
	snapshotsCmd.Flags().StringVar(&snapshotsDelete, "delete", "", "Delete the named snapshot")
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	snapshots, err := storage.NewSnapshotStorage()
	if err != nil {
		return err
	}

	if snapshotsDelete != "" {
		ok, err := snapshots.Exists(ctx, snapshotsDelete)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(out, "Snapshot %s does not exist, nothing to delete\n", snapshotsDelete)
			return nil
		}
		if err := snapshots.Delete(ctx, snapshotsDelete); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted snapshot %s\n", snapshotsDelete)
		return nil
	}

	names, err := snapshots.List(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(out, "No snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPROBLEMS")
	for _, name := range names {
		problems, err := snapshots.Get(ctx, name)
		if err != nil {
			fmt.Fprintf(w, "%s\t(unreadable: %v)\n", name, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\n", name, len(problems))
	}
	return w.Flush()
}
