package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
	"github.com/emiliopalmerini/codebuddy/internal/ports"
)

const (
	serviceName    = "codebuddy"
	serviceVersion = "1.0.0"
)

// Exporter exports problem metrics to an OTEL Collector.
type Exporter struct {
	provider     *sdkmetric.MeterProvider
	solvedTotal  metric.Int64Counter
	minutesHist  metric.Int64Histogram
	deletedTotal metric.Int64Counter
}

var _ ports.MetricsExporter = (*Exporter)(nil)

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	return newExporter(provider)
}

func newExporter(provider *sdkmetric.MeterProvider) (*Exporter, error) {
	meter := provider.Meter(serviceName)

	solvedTotal, err := meter.Int64Counter(
		"codebuddy_problems_solved_total",
		metric.WithDescription("Total problems recorded as solved"),
		metric.WithUnit("{problem}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating solved counter: %w", err)
	}

	minutesHist, err := meter.Int64Histogram(
		"codebuddy_problem_time_minutes",
		metric.WithDescription("Minutes spent per solved problem"),
		metric.WithUnit("min"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating time histogram: %w", err)
	}

	deletedTotal, err := meter.Int64Counter(
		"codebuddy_problems_deleted_total",
		metric.WithDescription("Total delete requests"),
		metric.WithUnit("{problem}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating deleted counter: %w", err)
	}

	return &Exporter{
		provider:     provider,
		solvedTotal:  solvedTotal,
		minutesHist:  minutesHist,
		deletedTotal: deletedTotal,
	}, nil
}

// RecordSolved records one newly added problem.
func (e *Exporter) RecordSolved(ctx context.Context, p *domain.Problem) error {
	opt := metric.WithAttributes(
		attribute.String("platform", string(p.Platform)),
		attribute.String("difficulty", string(p.Difficulty)),
	)

	e.solvedTotal.Add(ctx, 1, opt)
	e.minutesHist.Record(ctx, int64(p.TimeTakenMinutes), opt)
	return nil
}

// RecordDeleted counts a delete request.
func (e *Exporter) RecordDeleted(ctx context.Context, id int64) error {
	e.deletedTotal.Add(ctx, 1)
	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
