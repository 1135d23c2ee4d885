package otel

import (
	"context"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
)

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) RecordSolved(ctx context.Context, p *domain.Problem) error {
	return nil
}

func (e *NoOpExporter) RecordDeleted(ctx context.Context, id int64) error {
	return nil
}

func (e *NoOpExporter) Close(ctx context.Context) error {
	return nil
}
