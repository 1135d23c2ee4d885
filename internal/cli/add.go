package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
	"github.com/emiliopalmerini/codebuddy/internal/problems"
	"github.com/emiliopalmerini/codebuddy/internal/util"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a solved problem",
	Long: `Record a solved problem.

Examples:
  codebuddy add --name "Two Sum" --platform leetcode --difficulty easy --minutes 15
  codebuddy add --name "Chef and Strings" -p codechef -d medium -m 25 --date 2024-01-03
  codebuddy add --interactive`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

// Flags
var (
	addName        string
	addPlatform    string
	addDifficulty  string
	addMinutes     int
	addDate        string
	addNotes       string
	addLink        string
	addInteractive bool
)

func init() {
	addCmd.Flags().StringVarP(&addName, "name", "n", "", "Problem name")
	addCmd.Flags().StringVarP(&addPlatform, "platform", "p", "LEETCODE", "Platform: "+platformChoices())
	addCmd.Flags().StringVarP(&addDifficulty, "difficulty", "d", "MEDIUM", "Difficulty: "+difficultyChoices())
	addCmd.Flags().IntVarP(&addMinutes, "minutes", "m", 0, "Time taken in minutes")
	addCmd.Flags().StringVar(&addDate, "date", "", "Solve date, YYYY-MM-DD [HH:MM] (default: now)")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Free-form notes")
	addCmd.Flags().StringVar(&addLink, "link", "", "Problem URL")
	addCmd.Flags().BoolVarP(&addInteractive, "interactive", "i", false, "Prompt for each field")
}

func runAdd(cmd *cobra.Command, args []string) error {
	in := problems.Input{
		Name:             addName,
		Platform:         addPlatform,
		Difficulty:       addDifficulty,
		TimeTakenMinutes: addMinutes,
		SolvedAt:         addDate,
		Notes:            addNotes,
		Link:             addLink,
	}

	if addInteractive {
		rl, err := openLineReader(cmd)
		if err != nil {
			return fmt.Errorf("failed to start prompt: %w", err)
		}
		defer func() { _ = rl.Close() }()

		if in, err = promptInput(rl, cmd.ErrOrStderr(), in, true); err != nil {
			return err
		}
	}

	p, err := app.Problems.Add(cmd.Context(), in)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added problem %d: %s (%s, %s, %s)\n",
		p.ID, p.Name, p.Platform.DisplayName(), p.Difficulty.DisplayName(), util.FormatMinutes(p.TimeTakenMinutes))
	return nil
}

// promptInput asks for each field, offering the current value as default.
// Fields are re-asked until they pass validation.
func promptInput(rl lineReader, out io.Writer, in problems.Input, askSolvedAt bool) (problems.Input, error) {
	var err error

	if in.Name, err = promptField(rl, out, "Name", in.Name, func(s string) error {
		if strings.TrimSpace(s) == "" {
			return &domain.ValidationError{Field: "name", Message: "problem name is required"}
		}
		return nil
	}); err != nil {
		return in, err
	}

	if in.Platform, err = promptField(rl, out, "Platform ("+platformChoices()+")", in.Platform, func(s string) error {
		if _, ok := domain.LookupPlatform(s); !ok {
			return &domain.ValidationError{Field: "platform", Message: "unknown platform " + strconv.Quote(s)}
		}
		return nil
	}); err != nil {
		return in, err
	}

	if in.Difficulty, err = promptField(rl, out, "Difficulty ("+difficultyChoices()+")", in.Difficulty, func(s string) error {
		if _, ok := domain.LookupDifficulty(s); !ok {
			return &domain.ValidationError{Field: "difficulty", Message: "unknown difficulty " + strconv.Quote(s)}
		}
		return nil
	}); err != nil {
		return in, err
	}

	minutesDefault := ""
	if in.TimeTakenMinutes > 0 {
		minutesDefault = strconv.Itoa(in.TimeTakenMinutes)
	}
	minutes, err := promptField(rl, out, "Time taken (minutes)", minutesDefault, func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n <= 0 {
			return &domain.ValidationError{Field: "time_taken_minutes", Message: "time taken must be a positive number of minutes"}
		}
		return nil
	})
	if err != nil {
		return in, err
	}
	in.TimeTakenMinutes, _ = strconv.Atoi(strings.TrimSpace(minutes))

	if askSolvedAt {
		if in.SolvedAt, err = promptField(rl, out, "Solved at (YYYY-MM-DD [HH:MM], blank for now)", in.SolvedAt, problems.CheckSolvedAt); err != nil {
			return in, err
		}
	}

	if in.Notes, err = promptField(rl, out, "Notes", in.Notes, nil); err != nil {
		return in, err
	}

	if in.Link, err = promptField(rl, out, "Link", in.Link, problems.CheckLink); err != nil {
		return in, err
	}

	return in, nil
}

var errPromptAborted = errors.New("input aborted")

func promptField(rl lineReader, out io.Writer, label, current string, check func(string) error) (string, error) {
	prompt := label + ": "
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, current)
	}

	for {
		rl.SetPrompt(prompt)
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", errPromptAborted
		}
		if err != nil {
			return "", err
		}

		value := strings.TrimSpace(line)
		if value == "" {
			value = current
		}
		if check == nil {
			return value, nil
		}
		if err := check(value); err != nil {
			fmt.Fprintln(out, " ", err)
			continue
		}
		return value, nil
	}
}
