package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
	"github.com/emiliopalmerini/codebuddy/internal/util"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List solved problems",
	Long: `List solved problems, most recently solved first.

Examples:
  codebuddy list
  codebuddy list --platform leetcode --difficulty hard
  codebuddy list --last 10`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// Flags
var (
	listPlatform   string
	listDifficulty string
	listLast       int
)

func init() {
	listCmd.Flags().StringVarP(&listPlatform, "platform", "p", "", "Only show this platform")
	listCmd.Flags().StringVarP(&listDifficulty, "difficulty", "d", "", "Only show this difficulty")
	listCmd.Flags().IntVarP(&listLast, "last", "n", 0, "Show only the N most recent problems (0 = all)")
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := filterFromFlags(listPlatform, listDifficulty)
	if err != nil {
		return err
	}

	problems, err := app.Problems.List(cmd.Context(), filter)
	if err != nil {
		return err
	}
	if listLast > 0 && len(problems) > listLast {
		problems = problems[:listLast]
	}

	out := cmd.OutOrStdout()
	if len(problems) == 0 {
		fmt.Fprintln(out, "No problems found")
		return nil
	}
	return printProblemTable(out, problems)
}

func printProblemTable(out io.Writer, problems []*domain.Problem) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOLVED\tNAME\tPLATFORM\tDIFFICULTY\tTIME\tLINK")
	for _, p := range problems {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			util.FormatDateTime(p.SolvedAt),
			util.Truncate(p.Name, 40),
			p.Platform.DisplayName(),
			p.Difficulty.DisplayName(),
			util.FormatMinutes(p.TimeTakenMinutes),
			p.Link,
		)
	}
	return w.Flush()
}
