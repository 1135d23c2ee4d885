package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a recorded problem",
	Long: `Delete a recorded problem. Deleting an id that does not exist is not an error.

Examples:
  codebuddy delete 3
  codebuddy delete 3 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteYes bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if !deleteYes {
		p, err := app.Problems.Get(ctx, id)
		if domain.IsNotFound(err) {
			fmt.Fprintf(out, "Problem %d does not exist, nothing to delete\n", id)
			return nil
		}
		if err != nil {
			return err
		}

		ok, err := confirm(cmd, fmt.Sprintf("Delete problem %d (%s)?", p.ID, p.Name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Cancelled")
			return nil
		}
	}

	if err := app.Problems.Remove(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(out, "Deleted problem %d\n", id)
	return nil
}
