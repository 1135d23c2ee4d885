package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample problems",
	Long: `Insert three sample problems solved now. Existing problems are kept.

Examples:
  codebuddy seed`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return seedSamples(cmd)
	},
}

func seedSamples(cmd *cobra.Command) error {
	added, err := app.Problems.Seed(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d sample problems\n", len(added))
	return nil
}
