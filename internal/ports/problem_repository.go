package ports

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
)

// ProblemRepository persists solved problems.
type ProblemRepository interface {
	// Insert stores a new problem, sets p.ID and returns it.
	Insert(ctx context.Context, p *domain.Problem) (int64, error)
	// Update replaces every field except ID and SolvedAt.
	// Returns *domain.NotFoundError when id does not exist.
	Update(ctx context.Context, id int64, p *domain.Problem) error
	// Delete removes a problem. Deleting a missing id is not an error.
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Problem, error)
	// ListAll returns every problem, most recently solved first.
	ListAll(ctx context.Context) ([]*domain.Problem, error)
	Count(ctx context.Context) (int64, error)
	CountSolvedOn(ctx context.Context, date civil.Date) (int64, error)
	// DistinctSolvedDatesDescending returns each date with at least one
	// solved problem, newest first, without duplicates.
	DistinctSolvedDatesDescending(ctx context.Context) ([]civil.Date, error)
}
