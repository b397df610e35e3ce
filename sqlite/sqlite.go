// Package sqlite opens embedded SQLite databases, e.g. for local development and fast tests of SQL repositories.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const InMemory = ":memory:"

var (
	ErrConnectionFailed = errors.New("connection failed")
	ErrMigrationFailed  = errors.New("migration failed")
)

// Config holds all values used to open a SQLite database.
type Config struct {
	// Migrations has to contain a directory called migrations with the golang-migrate files.
	Migrations fs.FS
	// DSN is a file name or InMemory.
	DSN string
}

// Open opens the database at conf.DSN.
// An in-memory database is limited to a single connection,
// as every new connection would open a different, empty database.
func Open(ctx context.Context, conf Config) (*Handler, error) {
	if conf.DSN == "" {
		conf.DSN = InMemory
	}

	db, err := sql.Open("sqlite", conf.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open: %v", ErrConnectionFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	if isInMemory(conf.DSN) {
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}

	err = db.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: could not ping db: %v", ErrConnectionFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	_, err = db.ExecContext(ctx, "PRAGMA foreign_keys = ON;")
	if err != nil {
		return nil, fmt.Errorf("%w: could not enable foreign keys: %v", ErrConnectionFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	return &Handler{DB: db, Config: conf}, nil
}

// OpenAndMigrate opens the database and
// runs all migrations to ensure that the schema is on the latest version.
func OpenAndMigrate(ctx context.Context, conf Config) (*Handler, error) {
	if conf.Migrations == nil {
		return nil, fmt.Errorf("%w: no migration files given", ErrMigrationFailed)
	}

	handler, err := Open(ctx, conf)
	if err != nil {
		return nil, err
	}

	err = migrateUp(handler.DB, conf.Migrations)
	if err != nil {
		_ = handler.DB.Close()
		return nil, err
	}

	return handler, nil
}

func migrateUp(db *sql.DB, migrationsFS fs.FS) error {
	fsDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("%w: could not create migration file driver: %v", ErrMigrationFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{}) //nolint:exhaustruct // use default config
	if err != nil {
		return fmt.Errorf("%w: could not get database driver: %v", ErrMigrationFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	m, err := migrate.NewWithInstance("iofs", fsDriver, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("%w: could not create new migration instance: %v", ErrMigrationFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: could not migrate up: %v", ErrMigrationFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	return nil
}

func isInMemory(dsn string) bool {
	return dsn == InMemory || strings.Contains(dsn, "mode=memory")
}

type Handler struct {
	DB     *sql.DB
	Config Config
}

// Shutdown closes the database. An in-memory database is gone afterwards.
func (h Handler) Shutdown(_ context.Context) error {
	if err := h.DB.Close(); err != nil {
		return fmt.Errorf("could not close sqlite: %w", err)
	}

	return nil
}
