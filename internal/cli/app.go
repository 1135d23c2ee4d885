package cli

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/codebuddy/internal/adapters/otel"
	"github.com/emiliopalmerini/codebuddy/internal/adapters/sqlstore"
	"github.com/emiliopalmerini/codebuddy/internal/analytics"
	"github.com/emiliopalmerini/codebuddy/internal/domain"
	"github.com/emiliopalmerini/codebuddy/internal/infrastructure/config"
	"github.com/emiliopalmerini/codebuddy/internal/logging"
	"github.com/emiliopalmerini/codebuddy/internal/migrate"
	"github.com/emiliopalmerini/codebuddy/internal/ports"
	"github.com/emiliopalmerini/codebuddy/internal/problems"
)

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config    *config.Config
	Logger    *zap.Logger
	DB        *sqlstore.DB
	Repo      ports.ProblemRepository
	Exporter  ports.MetricsExporter
	Migrator  *migrate.Migrator
	Problems  *problems.Service
	Analytics *analytics.Service
}

// NewAppContext connects to the configured database and wires the services.
// With bootstrap set, pending migrations are applied first.
func NewAppContext(ctx context.Context, cfg *config.Config, bootstrap bool) (*AppContext, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver:   cfg.Database.Driver,
		Path:     cfg.Database.Path,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, &domain.PersistenceError{Op: "connect to database", Err: err}
	}

	a := newAppContext(cfg, logger, db, newExporter(ctx, cfg, logger))

	if bootstrap {
		if _, err := a.Migrator.RunAll(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to prepare schema: %w", err)
		}
	}
	return a, nil
}

func newAppContext(cfg *config.Config, logger *zap.Logger, db *sqlstore.DB, exporter ports.MetricsExporter) *AppContext {
	repo := sqlstore.NewProblemRepository(db)
	return &AppContext{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Repo:      repo,
		Exporter:  exporter,
		Migrator:  migrate.New(db, logger),
		Problems:  problems.NewService(repo, exporter, logger),
		Analytics: analytics.NewService(repo, logger),
	}
}

// newExporter falls back to a no-op exporter when OTEL is off or unreachable.
func newExporter(ctx context.Context, cfg *config.Config, logger *zap.Logger) ports.MetricsExporter {
	if !cfg.Otel.Enabled {
		return otel.NewNoOpExporter()
	}
	exp, err := otel.NewExporter(ctx, otel.FromConfig(cfg.Otel))
	if err != nil {
		logger.Warn("metrics export disabled", zap.Error(err))
		return otel.NewNoOpExporter()
	}
	return exp
}

// Close releases all resources held by the AppContext.
func (a *AppContext) Close() error {
	var errs []error
	if a.Exporter != nil {
		errs = append(errs, a.Exporter.Close(context.Background()))
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return errors.Join(errs...)
}
