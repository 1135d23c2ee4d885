package problems

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
	"github.com/emiliopalmerini/codebuddy/internal/ports"
)

var fixedNow = time.Date(2024, 1, 3, 12, 0, 0, 500, time.Local)

func newTestService(repo ports.ProblemRepository, exp ports.MetricsExporter) *Service {
	return NewService(repo, exp, nil).WithClock(func() time.Time { return fixedNow })
}

func TestService_Add(t *testing.T) {
	var inserted *domain.Problem
	repo := &ports.MockProblemRepository{
		InsertFunc: func(ctx context.Context, p *domain.Problem) (int64, error) {
			inserted = p
			p.ID = 42
			return 42, nil
		},
	}
	exp := &ports.MockMetricsExporter{}

	p, err := newTestService(repo, exp).Add(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, int64(42), p.ID)
	assert.Same(t, inserted, p)
	assert.Equal(t, time.Date(2024, 1, 3, 12, 0, 0, 0, time.Local), p.SolvedAt)
	assert.Len(t, exp.Solved, 1)
}

func TestService_AddRejectsBeforeStore(t *testing.T) {
	called := false
	repo := &ports.MockProblemRepository{
		InsertFunc: func(ctx context.Context, p *domain.Problem) (int64, error) {
			called = true
			return 0, nil
		},
	}

	in := validInput()
	in.TimeTakenMinutes = 0
	_, err := newTestService(repo, nil).Add(context.Background(), in)

	assert.True(t, domain.IsValidation(err))
	assert.False(t, called)
}

func TestService_AddPropagatesPersistenceError(t *testing.T) {
	storeErr := &domain.PersistenceError{Op: "insert problem", Err: errors.New("connection refused")}
	repo := &ports.MockProblemRepository{
		InsertFunc: func(ctx context.Context, p *domain.Problem) (int64, error) {
			return 0, storeErr
		},
	}
	exp := &ports.MockMetricsExporter{}

	p, err := newTestService(repo, exp).Add(context.Background(), validInput())
	assert.Nil(t, p)
	assert.ErrorIs(t, err, storeErr)
	assert.Empty(t, exp.Solved)
}

func TestService_AddIgnoresExporterFailure(t *testing.T) {
	exp := &ports.MockMetricsExporter{Err: errors.New("collector down")}

	p, err := newTestService(&ports.MockProblemRepository{}, exp).Add(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestService_EditKeepsSolvedAt(t *testing.T) {
	solved := time.Date(2023, 6, 1, 8, 0, 0, 0, time.Local)
	var updated *domain.Problem
	repo := &ports.MockProblemRepository{
		GetFunc: func(ctx context.Context, id int64) (*domain.Problem, error) {
			return &domain.Problem{ID: id, Name: "Old", Platform: domain.PlatformOther, Difficulty: domain.DifficultyHard, TimeTakenMinutes: 5, SolvedAt: solved}, nil
		},
		UpdateFunc: func(ctx context.Context, id int64, p *domain.Problem) error {
			updated = p
			return nil
		},
	}

	in := validInput()
	in.SolvedAt = "2024-01-01"
	p, err := newTestService(repo, nil).Edit(context.Background(), 7, in)
	require.NoError(t, err)

	assert.Same(t, updated, p)
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "Two Sum", p.Name)
	assert.Equal(t, solved, p.SolvedAt)
}

func TestService_EditMissing(t *testing.T) {
	_, err := newTestService(&ports.MockProblemRepository{}, nil).Edit(context.Background(), 99, validInput())
	assert.True(t, domain.IsNotFound(err))
}

func TestService_Remove(t *testing.T) {
	var deleted int64
	repo := &ports.MockProblemRepository{
		DeleteFunc: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	exp := &ports.MockMetricsExporter{}

	require.NoError(t, newTestService(repo, exp).Remove(context.Background(), 3))
	assert.Equal(t, int64(3), deleted)
	assert.Equal(t, []int64{3}, exp.Deleted)
}

func TestService_List(t *testing.T) {
	all := []*domain.Problem{
		{ID: 3, Platform: domain.PlatformLeetCode, Difficulty: domain.DifficultyEasy},
		{ID: 2, Platform: domain.PlatformCodeChef, Difficulty: domain.DifficultyEasy},
		{ID: 1, Platform: domain.PlatformLeetCode, Difficulty: domain.DifficultyHard},
	}
	repo := &ports.MockProblemRepository{
		ListAllFunc: func(ctx context.Context) ([]*domain.Problem, error) { return all, nil },
	}
	svc := newTestService(repo, nil)

	leetcode := domain.PlatformLeetCode
	easy := domain.DifficultyEasy

	tests := []struct {
		name   string
		filter domain.Filter
		want   []int64
	}{
		{"no filter", domain.Filter{}, []int64{3, 2, 1}},
		{"platform", domain.Filter{Platform: &leetcode}, []int64{3, 1}},
		{"difficulty", domain.Filter{Difficulty: &easy}, []int64{3, 2}},
		{"both", domain.Filter{Platform: &leetcode, Difficulty: &easy}, []int64{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(context.Background(), tt.filter)
			require.NoError(t, err)

			ids := make([]int64, len(got))
			for i, p := range got {
				ids[i] = p.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestService_Seed(t *testing.T) {
	var names []string
	repo := &ports.MockProblemRepository{
		InsertFunc: func(ctx context.Context, p *domain.Problem) (int64, error) {
			names = append(names, p.Name)
			p.ID = int64(len(names))
			return p.ID, nil
		},
	}

	added, err := newTestService(repo, nil).Seed(context.Background())
	require.NoError(t, err)
	assert.Len(t, added, 3)
	assert.Equal(t, []string{"Two Sum", "Median of Two Sorted Arrays", "Chef and Strings"}, names)
}
