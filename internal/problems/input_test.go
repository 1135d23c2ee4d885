package problems

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
)

func validInput() Input {
	return Input{
		Name:             "Two Sum",
		Platform:         "leetcode",
		Difficulty:       "Easy",
		TimeTakenMinutes: 15,
	}
}

func TestInput_ProblemValidates(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Input)
		wantField string
	}{
		{"valid", func(in *Input) {}, ""},
		{"blank name", func(in *Input) { in.Name = "   " }, "name"},
		{"unknown platform", func(in *Input) { in.Platform = "foo" }, "platform"},
		{"empty platform", func(in *Input) { in.Platform = "" }, "platform"},
		{"unknown difficulty", func(in *Input) { in.Difficulty = "insane" }, "difficulty"},
		{"zero minutes", func(in *Input) { in.TimeTakenMinutes = 0 }, "time_taken_minutes"},
		{"negative minutes", func(in *Input) { in.TimeTakenMinutes = -5 }, "time_taken_minutes"},
		{"bad date", func(in *Input) { in.SolvedAt = "2024-13-45" }, "solved_at"},
		{"date only", func(in *Input) { in.SolvedAt = "2024-01-03" }, ""},
		{"date and minutes", func(in *Input) { in.SolvedAt = "2024-01-03 10:30" }, ""},
		{"relative link", func(in *Input) { in.Link = "leetcode.com/problems" }, "link"},
		{"ftp link", func(in *Input) { in.Link = "ftp://example.com/x" }, "link"},
		{"https link", func(in *Input) { in.Link = "https://leetcode.com/problems/two-sum/" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := in.problem()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestInput_ProblemNormalizes(t *testing.T) {
	in := Input{
		Name:             "  Chef and Strings ",
		Platform:         "CodeChef",
		Difficulty:       "medium",
		TimeTakenMinutes: 25,
		SolvedAt:         "2024-01-03 10:30:15",
		Notes:            " strings ",
	}

	p, err := in.problem()
	require.NoError(t, err)
	assert.Equal(t, "Chef and Strings", p.Name)
	assert.Equal(t, domain.PlatformCodeChef, p.Platform)
	assert.Equal(t, domain.DifficultyMedium, p.Difficulty)
	assert.Equal(t, "strings", p.Notes)
	assert.Equal(t, time.Date(2024, 1, 3, 10, 30, 15, 0, time.Local), p.SolvedAt)
}

func TestFromProblem(t *testing.T) {
	p := &domain.Problem{
		Name:             "Two Sum",
		Platform:         domain.PlatformLeetCode,
		Difficulty:       domain.DifficultyEasy,
		TimeTakenMinutes: 15,
		SolvedAt:         time.Date(2024, 1, 3, 9, 0, 0, 0, time.Local),
		Link:             "https://leetcode.com/problems/two-sum/",
	}

	got, err := FromProblem(p).problem()
	require.NoError(t, err)
	assert.Equal(t, p, got)
}
