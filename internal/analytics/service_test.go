package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
	"github.com/emiliopalmerini/codebuddy/internal/ports"
)

func date(s string) civil.Date {
	d, err := civil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// storeOf builds a mock repository answering from an in-memory list, the way
// the SQL store would.
func storeOf(problems []*domain.Problem) *ports.MockProblemRepository {
	return &ports.MockProblemRepository{
		ListAllFunc: func(ctx context.Context) ([]*domain.Problem, error) {
			return problems, nil
		},
		CountSolvedOnFunc: func(ctx context.Context, d civil.Date) (int64, error) {
			var n int64
			for _, p := range problems {
				if domain.DateOf(p.SolvedAt) == d {
					n++
				}
			}
			return n, nil
		},
		DistinctSolvedDatesDescendingFunc: func(ctx context.Context) ([]civil.Date, error) {
			asc := domain.UniqueDates(problems)
			desc := make([]civil.Date, len(asc))
			for i, d := range asc {
				desc[len(asc)-1-i] = d
			}
			return desc, nil
		},
	}
}

func solvedOn(s string, platform domain.Platform, difficulty domain.Difficulty, minutes int) *domain.Problem {
	return &domain.Problem{
		Name:             "p",
		Platform:         platform,
		Difficulty:       difficulty,
		TimeTakenMinutes: minutes,
		SolvedAt:         date(s).In(time.Local).Add(10 * time.Hour),
	}
}

func clockAt(s string) func() time.Time {
	return func() time.Time { return date(s).In(time.Local).Add(20 * time.Hour) }
}

func TestSummary_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		dates       []string
		today       string
		wantCurrent int
		wantMax     int
	}{
		{"three consecutive days", []string{"2024-01-01", "2024-01-02", "2024-01-03"}, "2024-01-03", 3, 3},
		{"gap before today", []string{"2024-01-01", "2024-01-03"}, "2024-01-03", 1, 1},
		{"nothing today", []string{"2024-01-01", "2024-01-02"}, "2024-01-03", 0, 2},
		{"empty", nil, "2024-01-03", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var problems []*domain.Problem
			for _, d := range tt.dates {
				problems = append(problems, solvedOn(d, domain.PlatformLeetCode, domain.DifficultyEasy, 10))
			}

			svc := NewService(storeOf(problems), nil).WithClock(clockAt(tt.today))
			a, err := svc.Summary(context.Background())
			require.NoError(t, err)

			assert.Equal(t, len(tt.dates), a.TotalProblems)
			assert.Equal(t, tt.wantCurrent, a.CurrentStreak)
			assert.Equal(t, tt.wantMax, a.MaxStreak)
			assert.GreaterOrEqual(t, a.MaxStreak, a.CurrentStreak)
		})
	}
}

func TestSummary_DistributionsAndAverage(t *testing.T) {
	problems := []*domain.Problem{
		solvedOn("2024-01-03", domain.PlatformLeetCode, domain.DifficultyEasy, 10),
		solvedOn("2024-01-03", domain.PlatformCodeChef, domain.DifficultyEasy, 20),
		solvedOn("2024-01-02", domain.PlatformLeetCode, domain.DifficultyHard, 60),
	}

	svc := NewService(storeOf(problems), nil).WithClock(clockAt("2024-01-03"))
	a, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), a.TodayCount)
	assert.Equal(t, map[string]int{"Easy": 2, "Hard": 1}, a.DifficultyDistribution)
	assert.Equal(t, map[string]int{"LeetCode": 2, "CodeChef": 1}, a.PlatformDistribution)
	require.NotNil(t, a.AverageTimeMinutes)
	assert.InDelta(t, 30.0, *a.AverageTimeMinutes, 1e-9)
}

func TestSummary_EmptyHasNoAverage(t *testing.T) {
	svc := NewService(storeOf(nil), nil)
	a, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Nil(t, a.AverageTimeMinutes)
	assert.Empty(t, a.PlatformDistribution)
	assert.Equal(t, int64(0), a.TodayCount)
}

func TestTodayCount_UsesClock(t *testing.T) {
	var asked civil.Date
	repo := &ports.MockProblemRepository{
		CountSolvedOnFunc: func(ctx context.Context, d civil.Date) (int64, error) {
			asked = d
			return 4, nil
		},
	}

	n, err := NewService(repo, nil).WithClock(clockAt("2024-02-29")).TodayCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, date("2024-02-29"), asked)
}

func TestStoreErrorsPropagate(t *testing.T) {
	storeErr := &domain.PersistenceError{Op: "list solved dates", Err: errors.New("broken pipe")}
	repo := &ports.MockProblemRepository{
		DistinctSolvedDatesDescendingFunc: func(ctx context.Context) ([]civil.Date, error) {
			return nil, storeErr
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.CurrentStreak(context.Background())
	assert.ErrorIs(t, err, storeErr)

	listErr := &domain.PersistenceError{Op: "list problems", Err: errors.New("broken pipe")}
	repo.ListAllFunc = func(ctx context.Context) ([]*domain.Problem, error) {
		return nil, listErr
	}
	a, err := svc.Summary(context.Background())
	assert.Nil(t, a)
	assert.ErrorIs(t, err, listErr)
}

// A write landing between reads must not make the summary contradict itself.
func TestSummary_ReadsOneSnapshot(t *testing.T) {
	problems := []*domain.Problem{
		solvedOn("2024-01-02", domain.PlatformLeetCode, domain.DifficultyEasy, 10),
		solvedOn("2024-01-03", domain.PlatformLeetCode, domain.DifficultyEasy, 10),
	}
	repo := storeOf(problems)
	// The per-query answers describe a later state with an extra day.
	repo.DistinctSolvedDatesDescendingFunc = func(ctx context.Context) ([]civil.Date, error) {
		return []civil.Date{date("2024-01-03"), date("2024-01-02"), date("2024-01-01")}, nil
	}
	repo.CountSolvedOnFunc = func(ctx context.Context, d civil.Date) (int64, error) {
		return 9, nil
	}

	svc := NewService(repo, nil).WithClock(clockAt("2024-01-03"))
	a, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, a.TotalProblems)
	assert.Equal(t, int64(1), a.TodayCount)
	assert.Equal(t, 2, a.CurrentStreak)
	assert.Equal(t, 2, a.MaxStreak)
	assert.GreaterOrEqual(t, a.MaxStreak, a.CurrentStreak)

	streak, err := svc.CurrentStreak(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, streak, "standalone query still asks the store")
}
