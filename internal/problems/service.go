package problems

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
	"github.com/emiliopalmerini/codebuddy/internal/ports"
)

// Service validates user input and forwards it to the store.
type Service struct {
	repo     ports.ProblemRepository
	exporter ports.MetricsExporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new problem service. A nil exporter or logger
// disables that concern.
func NewService(repo ports.ProblemRepository, exporter ports.MetricsExporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for default solve times.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Add validates in and stores it as a new problem.
func (s *Service) Add(ctx context.Context, in Input) (*domain.Problem, error) {
	p, err := in.problem()
	if err != nil {
		return nil, err
	}
	if p.SolvedAt.IsZero() {
		p.SolvedAt = s.now()
	}
	p.SolvedAt = domain.TruncateToSecond(p.SolvedAt.In(time.Local))

	if _, err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Debug("problem added", zap.Int64("id", p.ID), zap.String("name", p.Name))

	if s.exporter != nil {
		if err := s.exporter.RecordSolved(ctx, p); err != nil {
			s.logger.Warn("failed to export metrics", zap.Error(err))
		}
	}
	return p, nil
}

// Edit replaces the mutable fields of problem id. The solve time is kept
// and in.SolvedAt is ignored.
func (s *Service) Edit(ctx context.Context, id int64, in Input) (*domain.Problem, error) {
	in.SolvedAt = ""
	p, err := in.problem()
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.ID = existing.ID
	p.SolvedAt = existing.SolvedAt

	if err := s.repo.Update(ctx, id, p); err != nil {
		return nil, err
	}
	s.logger.Debug("problem updated", zap.Int64("id", id))
	return p, nil
}

// Remove deletes problem id. Removing a missing id is not an error.
func (s *Service) Remove(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("problem removed", zap.Int64("id", id))

	if s.exporter != nil {
		if err := s.exporter.RecordDeleted(ctx, id); err != nil {
			s.logger.Warn("failed to export metrics", zap.Error(err))
		}
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Problem, error) {
	return s.repo.Get(ctx, id)
}

// List returns the problems matching filter, most recently solved first.
func (s *Service) List(ctx context.Context, filter domain.Filter) ([]*domain.Problem, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(all), nil
}

// SampleProblems are the entries inserted by Seed.
var SampleProblems = []Input{
	{
		Name:             "Two Sum",
		Platform:         "LEETCODE",
		Difficulty:       "EASY",
		TimeTakenMinutes: 15,
		Notes:            "Classic hashmap problem",
		Link:             "https://leetcode.com/problems/two-sum/",
	},
	{
		Name:             "Median of Two Sorted Arrays",
		Platform:         "LEETCODE",
		Difficulty:       "HARD",
		TimeTakenMinutes: 60,
		Notes:            "Binary search required",
		Link:             "https://leetcode.com/problems/median-of-two-sorted-arrays/",
	},
	{
		Name:             "Chef and Strings",
		Platform:         "CODECHEF",
		Difficulty:       "MEDIUM",
		TimeTakenMinutes: 25,
		Notes:            "String manipulation",
		Link:             "https://www.codechef.com/problems/STRINGS",
	},
}

// Seed inserts the sample problems, solved now.
func (s *Service) Seed(ctx context.Context) ([]*domain.Problem, error) {
	added := make([]*domain.Problem, 0, len(SampleProblems))
	for _, in := range SampleProblems {
		p, err := s.Add(ctx, in)
		if err != nil {
			return nil, err
		}
		added = append(added, p)
	}
	return added, nil
}
