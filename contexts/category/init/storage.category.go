package init

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/go-arrower/catalog"
	"github.com/go-arrower/catalog/contexts/category/internal/domain"
	"github.com/go-arrower/catalog/contexts/category/internal/interfaces/repository"
	"github.com/go-arrower/catalog/postgres"
	arepo "github.com/go-arrower/catalog/repository"
	"github.com/go-arrower/catalog/sqlite"
)

var ErrUnknownStorage = errors.New("unknown storage driver")

type storage struct {
	repo domain.Repository
	// db is set for SQL storages only.
	db       *sql.DB
	shutdown func(ctx context.Context) error
}

func openStorage(ctx context.Context, conf catalog.Config, traceProvider trace.TracerProvider) (storage, error) {
	noShutdown := func(context.Context) error { return nil }

	switch conf.Storage.Driver {
	case catalog.MemoryStorage, "":
		return storage{repo: repository.NewCategoryMemoryRepository(), shutdown: noShutdown}, nil
	case catalog.JSONStorage:
		repo := repository.NewCategoryMemoryRepository(
			arepo.WithStore(arepo.NewJSONStore(conf.Storage.JSONDir)),
			arepo.WithStoreFilename("categories.json"),
		)

		return storage{repo: repo, shutdown: noShutdown}, nil
	case catalog.SQLiteStorage:
		handler, err := sqlite.OpenAndMigrate(ctx, sqlite.Config{
			Migrations: repository.SQLiteMigrations,
			DSN:        conf.Storage.SQLite.DSN,
		})
		if err != nil {
			return storage{}, fmt.Errorf("could not open sqlite: %w", err)
		}

		return storage{
			repo:     repository.NewCategorySQLRepository(handler.DB, arepo.SQLite),
			db:       handler.DB,
			shutdown: handler.Shutdown,
		}, nil
	case catalog.PostgresStorage:
		handler, err := postgres.ConnectAndMigrate(ctx, postgres.Config{
			Migrations:     repository.PostgresMigrations,
			User:           conf.Postgres.User,
			Password:       conf.Postgres.Password,
			Database:       conf.Postgres.Database,
			SSLMode:        conf.Postgres.SSLMode,
			Host:           conf.Postgres.Host,
			Port:           conf.Postgres.Port,
			MaxConns:       conf.Postgres.MaxConns,
			ConnectTimeout: conf.Postgres.ConnectTimeout,
		}, traceProvider)
		if err != nil {
			return storage{}, fmt.Errorf("could not connect to postgres: %w", err)
		}

		return storage{
			repo:     repository.NewCategorySQLRepository(handler.DB, arepo.Postgres),
			db:       handler.DB,
			shutdown: handler.Shutdown,
		}, nil
	}

	return storage{}, fmt.Errorf("%w: %s", ErrUnknownStorage, conf.Storage.Driver)
}
