package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
	"github.com/emiliopalmerini/codebuddy/internal/util"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: "id", Message: "problem id must be a positive integer, got " + strconv.Quote(arg)}
	}
	return id, nil
}

// filterFromFlags builds a listing filter from optional platform and
// difficulty names. Empty names match everything.
func filterFromFlags(platform, difficulty string) (domain.Filter, error) {
	var f domain.Filter
	if platform != "" {
		p, ok := domain.LookupPlatform(platform)
		if !ok {
			return f, &domain.ValidationError{Field: "platform", Message: "unknown platform " + strconv.Quote(platform)}
		}
		f.Platform = &p
	}
	if difficulty != "" {
		d, ok := domain.LookupDifficulty(difficulty)
		if !ok {
			return f, &domain.ValidationError{Field: "difficulty", Message: "unknown difficulty " + strconv.Quote(difficulty)}
		}
		f.Difficulty = &d
	}
	return f, nil
}

func platformChoices() string {
	names := make([]string, len(domain.Platforms))
	for i, p := range domain.Platforms {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

func difficultyChoices() string {
	names := make([]string, len(domain.Difficulties))
	for i, d := range domain.Difficulties {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}

// lineReader is the part of *readline.Instance the prompts use.
type lineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	Close() error
}

// newLineReader is replaced in tests.
var newLineReader = func(cmd *cobra.Command, prompt string, history bool) (lineReader, error) {
	cfg := &readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	}
	if history {
		if dir, err := util.GetXDGDataDir(); err == nil {
			cfg.HistoryFile = filepath.Join(dir, "shell_history")
		}
	}
	return readline.NewEx(cfg)
}

// borrowedReader lends the shell reader to a prompt and restores the shell
// prompt on Close.
type borrowedReader struct {
	lineReader
}

func (b borrowedReader) Close() error {
	b.SetPrompt(shellPrompt)
	return nil
}

// openLineReader returns a reader for a one-off prompt.
func openLineReader(cmd *cobra.Command) (lineReader, error) {
	if shellReader != nil {
		return borrowedReader{lineReader: shellReader}, nil
	}
	return newLineReader(cmd, "", false)
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	rl, err := openLineReader(cmd)
	if err != nil {
		return false, fmt.Errorf("failed to start prompt: %w", err)
	}
	defer func() { _ = rl.Close() }()

	rl.SetPrompt(question + " [y/N]: ")
	answer, err := rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
