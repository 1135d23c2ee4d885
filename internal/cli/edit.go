package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/codebuddy/internal/problems"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a recorded problem",
	Long: `Edit a recorded problem. Only the flags you pass are changed.
The solve date cannot be edited.

Examples:
  codebuddy edit 3 --minutes 40
  codebuddy edit 3 --difficulty hard --notes "needed a hint"
  codebuddy edit 3 --interactive`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

// Flags
var (
	editName        string
	editPlatform    string
	editDifficulty  string
	editMinutes     int
	editNotes       string
	editLink        string
	editInteractive bool
)

func init() {
	editCmd.Flags().StringVarP(&editName, "name", "n", "", "Problem name")
	editCmd.Flags().StringVarP(&editPlatform, "platform", "p", "", "Platform: "+platformChoices())
	editCmd.Flags().StringVarP(&editDifficulty, "difficulty", "d", "", "Difficulty: "+difficultyChoices())
	editCmd.Flags().IntVarP(&editMinutes, "minutes", "m", 0, "Time taken in minutes")
	editCmd.Flags().StringVar(&editNotes, "notes", "", "Free-form notes")
	editCmd.Flags().StringVar(&editLink, "link", "", "Problem URL")
	editCmd.Flags().BoolVarP(&editInteractive, "interactive", "i", false, "Prompt for each field")
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	existing, err := app.Problems.Get(ctx, id)
	if err != nil {
		return err
	}

	in := problems.FromProblem(existing)
	flags := cmd.Flags()
	if flags.Changed("name") {
		in.Name = editName
	}
	if flags.Changed("platform") {
		in.Platform = editPlatform
	}
	if flags.Changed("difficulty") {
		in.Difficulty = editDifficulty
	}
	if flags.Changed("minutes") {
		in.TimeTakenMinutes = editMinutes
	}
	if flags.Changed("notes") {
		in.Notes = editNotes
	}
	if flags.Changed("link") {
		in.Link = editLink
	}

	if editInteractive {
		rl, err := openLineReader(cmd)
		if err != nil {
			return fmt.Errorf("failed to start prompt: %w", err)
		}
		defer func() { _ = rl.Close() }()

		if in, err = promptInput(rl, cmd.ErrOrStderr(), in, false); err != nil {
			return err
		}
	}

	p, err := app.Problems.Edit(ctx, id, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated problem %d: %s\n", p.ID, p.Name)
	return nil
}
