package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const shellPrompt = "codebuddy> "

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive shell",
	Long: `Start an interactive shell that runs codebuddy commands without the
"codebuddy" prefix, sharing one database connection.

Examples:
  codebuddy shell
  codebuddy> add -n "Two Sum" -p leetcode -d easy -m 15
  codebuddy> list --last 5
  codebuddy> exit`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

// shellReader is the open shell prompt. Prompts of commands run from the
// shell borrow it instead of opening a second reader on the terminal.
var shellReader lineReader

func runShell(cmd *cobra.Command, args []string) error {
	if shellReader != nil {
		return fmt.Errorf("already inside a shell")
	}

	rl, err := newLineReader(cmd, shellPrompt, true)
	if err != nil {
		return fmt.Errorf("failed to start shell: %w", err)
	}
	shellReader = rl
	defer func() {
		shellReader = nil
		_ = rl.Close()
	}()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, `codebuddy shell. Type "help" for commands, "exit" to quit.`)

	for {
		rl.SetPrompt(shellPrompt)
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		tokens, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error: parse command failed:", err)
			continue
		}
		if err := dispatch(cmd.Root(), tokens); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		}
	}
}

// dispatch runs one shell line through the command tree.
func dispatch(root *cobra.Command, tokens []string) error {
	resetFlags(root)
	root.SetArgs(tokens)
	return root.Execute()
}

// resetFlags restores every flag to its default so values from a previous
// line do not leak into the next one.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
