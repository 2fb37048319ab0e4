// Package app wires configuration, storage, observability and the ingestion
// use case into one runnable unit shared by the lambda and CLI entrypoints.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sourcegraph/conc"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/sbathletics/gridiron-ingest/external/notify"
	"github.com/sbathletics/gridiron-ingest/internal/config"
	"github.com/sbathletics/gridiron-ingest/internal/infrastructure/objectstore"
	"github.com/sbathletics/gridiron-ingest/internal/infrastructure/repository/postgres"
	"github.com/sbathletics/gridiron-ingest/internal/observability"
	"github.com/sbathletics/gridiron-ingest/internal/platform/logging"
	"github.com/sbathletics/gridiron-ingest/internal/platform/resilience"
	"github.com/sbathletics/gridiron-ingest/internal/usecase"
)

// App holds the assembled service and everything that needs a shutdown.
type App struct {
	Config   config.Config
	Log      *logging.Logger
	DB       *sqlx.DB
	Service  *usecase.IngestionService
	notifier *notify.WebhookPublisher

	uptraceShutdown func(context.Context) error
	pyroscopeStop   func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	uptraceShutdown, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	pyroscopeStop, err := observability.InitPyroscope(cfg, slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	if err != nil {
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}

	db, err := otelsqlx.Open("postgres", cfg.DBURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	fetcher, err := objectstore.NewS3Fetcher(ctx, cfg.AWSRegion)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("build s3 fetcher: %w", err)
	}

	store := postgres.NewStore(db, cfg.DBAcquireTimeout)
	service := usecase.NewIngestionService(store, fetcher, logger)

	var notifier *notify.WebhookPublisher
	if cfg.WebhookEnabled {
		notifier = notify.NewWebhookPublisher(notify.WebhookPublisherConfig{
			URL:     cfg.WebhookURL,
			Token:   cfg.WebhookToken,
			Timeout: cfg.WebhookTimeout,
			Retries: cfg.WebhookRetries,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.WebhookCircuitEnabled,
				FailureThreshold: cfg.WebhookCircuitFailures,
				OpenTimeout:      cfg.WebhookCircuitOpenFor,
				HalfOpenMaxReq:   cfg.WebhookCircuitHalfOpenRq,
			},
		}, slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	return &App{
		Config:          cfg,
		Log:             logger,
		DB:              db,
		Service:         service,
		notifier:        notifier,
		uptraceShutdown: uptraceShutdown,
		pyroscopeStop:   pyroscopeStop,
	}, nil
}

// PublishResult delivers a run summary to the configured webhook. Ingestion
// already committed by the time this runs, so failures are logged and
// swallowed.
func (a *App) PublishResult(ctx context.Context, result usecase.Result) {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.Publish(ctx, result); err != nil {
		a.Log.WarnContext(ctx, "result webhook delivery failed", "key", result.Key, "error", err)
	}
}

// Close tears the app down; independent shutdowns run concurrently.
func (a *App) Close(ctx context.Context) error {
	var dbErr, uptraceErr, pyroscopeErr error

	var wg conc.WaitGroup
	wg.Go(func() {
		dbErr = a.DB.Close()
	})
	wg.Go(func() {
		uptraceErr = a.uptraceShutdown(ctx)
	})
	wg.Go(func() {
		pyroscopeErr = a.pyroscopeStop()
	})
	wg.Wait()

	if dbErr != nil {
		return fmt.Errorf("close database: %w", dbErr)
	}
	if uptraceErr != nil {
		return fmt.Errorf("shutdown uptrace: %w", uptraceErr)
	}
	if pyroscopeErr != nil {
		return fmt.Errorf("stop pyroscope: %w", pyroscopeErr)
	}
	return nil
}
