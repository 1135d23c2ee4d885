package ports

import (
	"context"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
)

// MetricsExporter exports problem activity to an external observability system.
type MetricsExporter interface {
	// RecordSolved records a newly stored problem.
	RecordSolved(ctx context.Context, p *domain.Problem) error
	// RecordDeleted records a problem removal.
	RecordDeleted(ctx context.Context, id int64) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}
