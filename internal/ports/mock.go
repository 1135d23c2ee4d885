package ports

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
)

// MockProblemRepository is a mock implementation of ProblemRepository for testing.
type MockProblemRepository struct {
	InsertFunc                        func(ctx context.Context, p *domain.Problem) (int64, error)
	UpdateFunc                        func(ctx context.Context, id int64, p *domain.Problem) error
	DeleteFunc                        func(ctx context.Context, id int64) error
	GetFunc                           func(ctx context.Context, id int64) (*domain.Problem, error)
	ListAllFunc                       func(ctx context.Context) ([]*domain.Problem, error)
	CountFunc                         func(ctx context.Context) (int64, error)
	CountSolvedOnFunc                 func(ctx context.Context, date civil.Date) (int64, error)
	DistinctSolvedDatesDescendingFunc func(ctx context.Context) ([]civil.Date, error)
}

func (m *MockProblemRepository) Insert(ctx context.Context, p *domain.Problem) (int64, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, p)
	}
	p.ID = 1
	return 1, nil
}

func (m *MockProblemRepository) Update(ctx context.Context, id int64, p *domain.Problem) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, p)
	}
	return nil
}

func (m *MockProblemRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockProblemRepository) Get(ctx context.Context, id int64) (*domain.Problem, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, &domain.NotFoundError{ID: id}
}

func (m *MockProblemRepository) ListAll(ctx context.Context) ([]*domain.Problem, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return []*domain.Problem{}, nil
}

func (m *MockProblemRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockProblemRepository) CountSolvedOn(ctx context.Context, date civil.Date) (int64, error) {
	if m.CountSolvedOnFunc != nil {
		return m.CountSolvedOnFunc(ctx, date)
	}
	return 0, nil
}

func (m *MockProblemRepository) DistinctSolvedDatesDescending(ctx context.Context) ([]civil.Date, error) {
	if m.DistinctSolvedDatesDescendingFunc != nil {
		return m.DistinctSolvedDatesDescendingFunc(ctx)
	}
	return []civil.Date{}, nil
}

// MockMetricsExporter records calls for assertions.
type MockMetricsExporter struct {
	Solved  []*domain.Problem
	Deleted []int64
	Err     error
}

func (m *MockMetricsExporter) RecordSolved(ctx context.Context, p *domain.Problem) error {
	m.Solved = append(m.Solved, p)
	return m.Err
}

func (m *MockMetricsExporter) RecordDeleted(ctx context.Context, id int64) error {
	m.Deleted = append(m.Deleted, id)
	return m.Err
}

func (m *MockMetricsExporter) Close(ctx context.Context) error {
	return nil
}
