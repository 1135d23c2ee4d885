package analytics

import (
	"context"
	"slices"
	"time"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
	"github.com/emiliopalmerini/codebuddy/internal/ports"
)

// Service computes analytics fresh from the store on every call.
type Service struct {
	repo   ports.ProblemRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new analytics service
func NewService(repo ports.ProblemRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the clock that decides which day is today.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) today() civil.Date {
	return domain.DateOf(s.now().In(time.Local))
}

// Summary returns every aggregate over the stored problems. All fields are
// computed from a single read so they agree with each other.
func (s *Service) Summary(ctx context.Context) (*domain.Analytics, error) {
	s.logger.Debug("computing analytics summary")

	problems, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	a := domain.ComputeAnalytics(problems)
	for _, p := range problems {
		if domain.DateOf(p.SolvedAt) == today {
			a.TodayCount++
		}
	}
	dates := domain.UniqueDates(problems)
	slices.Reverse(dates)
	a.CurrentStreak = domain.CurrentStreak(dates, today)
	return a, nil
}

// TodayCount returns the number of problems solved today.
func (s *Service) TodayCount(ctx context.Context) (int64, error) {
	return s.repo.CountSolvedOn(ctx, s.today())
}

// CurrentStreak returns the run of consecutive solving days ending today.
func (s *Service) CurrentStreak(ctx context.Context) (int, error) {
	dates, err := s.repo.DistinctSolvedDatesDescending(ctx)
	if err != nil {
		return 0, err
	}
	return domain.CurrentStreak(dates, s.today()), nil
}
