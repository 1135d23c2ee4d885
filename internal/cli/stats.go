package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
	"github.com/emiliopalmerini/codebuddy/internal/util"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show solving statistics",
	Long: `Show streaks, distributions and average solve time over every recorded problem.

Examples:
  codebuddy stats`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := app.Analytics.Summary(cmd.Context())
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), a)
	return nil
}

func printStats(out io.Writer, a *domain.Analytics) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  codebuddy Stats\n")
	fmt.Fprintf(out, "  ===============\n")
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  Total problems:    %d\n", a.TotalProblems)
	fmt.Fprintf(out, "  Solved today:      %d\n", a.TodayCount)
	fmt.Fprintf(out, "  Current streak:    %d days\n", a.CurrentStreak)
	fmt.Fprintf(out, "  Maximum streak:    %d days\n", a.MaxStreak)
	fmt.Fprintf(out, "  Average time:      %s\n", util.FormatAverage(a.AverageTimeMinutes))
	fmt.Fprintln(out)

	printDistribution(out, "By Platform", a.PlatformDistribution)
	printDistribution(out, "By Difficulty", a.DifficultyDistribution)
}

type distributionEntry struct {
	Label string
	Count int
}

// sortedDistribution orders entries by count, largest first, then by label.
func sortedDistribution(dist map[string]int) []distributionEntry {
	entries := make([]distributionEntry, 0, len(dist))
	for label, count := range dist {
		entries = append(entries, distributionEntry{Label: label, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})
	return entries
}

func printDistribution(out io.Writer, title string, dist map[string]int) {
	if len(dist) == 0 {
		return
	}
	fmt.Fprintf(out, "  %s\n", title)
	for _, e := range sortedDistribution(dist) {
		fmt.Fprintf(out, "  %-18s %d\n", e.Label, e.Count)
	}
	fmt.Fprintln(out)
}
