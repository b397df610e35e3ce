// Package init builds the category Context from the catalog configuration.
package init

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/go-arrower/catalog"
	"github.com/go-arrower/catalog/alog"
	"github.com/go-arrower/catalog/app"
	"github.com/go-arrower/catalog/contexts/category"
	"github.com/go-arrower/catalog/contexts/category/internal/application"
	"github.com/go-arrower/catalog/contexts/category/internal/interfaces/repository"
)

const contextName = "category"

var ErrInitFailed = errors.New("could not initialise category context")

// NewCategoryContext connects to the storage configured in conf and
// returns the context with all use cases instrumented.
// Missing logger or providers are replaced by noop implementations.
func NewCategoryContext(
	ctx context.Context,
	conf catalog.Config,
	logger *slog.Logger,
	traceProvider trace.TracerProvider,
	meterProvider metric.MeterProvider,
) (*CategoryContext, error) {
	if logger == nil {
		logger = alog.NewNoop()
	}

	if traceProvider == nil {
		traceProvider = tracenoop.NewTracerProvider()
	}

	if meterProvider == nil {
		meterProvider = metricnoop.NewMeterProvider()
	}

	logger = logger.WithGroup(contextName)

	store, err := openStorage(ctx, conf, traceProvider)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitFailed, err)
	}

	repo := repository.NewTracedCategoryRepository(traceProvider, store.repo)
	validate := app.NewValidator()

	cc := &CategoryContext{
		logger:   logger,
		shutdown: store.shutdown,
		app: application.App{
			CreateCategory: instrument(traceProvider, meterProvider, logger, validate, store.db,
				application.NewCreateCategoryRequestHandler(repo)),
			UpdateCategory: instrument(traceProvider, meterProvider, logger, validate, store.db,
				application.NewUpdateCategoryRequestHandler(repo)),
			DeleteCategory: instrument(traceProvider, meterProvider, logger, validate, store.db,
				application.NewDeleteCategoryCommandHandler(repo)),
			GetCategory: instrument(traceProvider, meterProvider, logger, validate, nil,
				application.NewGetCategoryQueryHandler(repo)),
			ListCategories: instrument(traceProvider, meterProvider, logger, validate, nil,
				application.NewListCategoriesQueryHandler(repo, conf.Search.PerPage)),
		},
	}

	logger.LogAttrs(ctx, alog.LevelInfo, "category context initialised",
		slog.String("storage", string(conf.Storage.Driver)),
	)

	return cc, nil
}

// CategoryContext holds the use cases of the category Context.
type CategoryContext struct {
	logger   *slog.Logger
	shutdown func(ctx context.Context) error

	app application.App
}

func (c *CategoryContext) API() category.API {
	return c.app
}

// Shutdown releases the storage. The context must not be used afterwards.
func (c *CategoryContext) Shutdown(ctx context.Context) error {
	c.logger.LogAttrs(ctx, alog.LevelInfo, "shutting down category context")

	if err := c.shutdown(ctx); err != nil {
		return fmt.Errorf("could not shutdown category context: %w", err)
	}

	return nil
}

// instrument decorates useCase. Commands against a SQL database run in a transaction,
// which starts after the input passed validation.
func instrument[In any, Out any](
	traceProvider trace.TracerProvider,
	meterProvider metric.MeterProvider,
	logger *slog.Logger,
	validate *validator.Validate,
	db *sql.DB,
	useCase app.UseCase[In, Out],
) app.UseCase[In, Out] {
	if db != nil {
		useCase = app.NewTx(db, useCase)
	}

	return app.NewInstrumented(traceProvider, meterProvider, logger, validate, useCase)
}
