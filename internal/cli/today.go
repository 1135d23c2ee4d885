package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's progress",
	Long: `Show the total problem count, today's count and the current streak on one line.

Examples:
  codebuddy today`,
	Args: cobra.NoArgs,
	RunE: runToday,
}

func runToday(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	total, err := app.Repo.Count(ctx)
	if err != nil {
		return err
	}
	today, err := app.Analytics.TodayCount(ctx)
	if err != nil {
		return err
	}
	streak, err := app.Analytics.CurrentStreak(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Total Problems: %d | Today: %d | Current Streak: %d days\n", total, today, streak)
	return nil
}
