// Package postgres connects to PostgreSQL and keeps the schema up to date.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-arrower/catalog/secret"
)

var (
	ErrConnectionFailed = errors.New("connection failed")
	ErrMigrationFailed  = errors.New("migration failed")
)

const defaultMaxConns = 10

// Config holds all values used to configure and connect to a postgres database.
type Config struct {
	// Migrations has to contain a directory called migrations with the golang-migrate files.
	Migrations fs.FS
	User       string
	Password   secret.Secret
	Database   string
	SSLMode    string
	Host       string
	Port       int
	MaxConns   int
	// ConnectTimeout is how long Connect keeps retrying to ping the database.
	// If zero, the database is pinged once.
	ConnectTimeout time.Duration
}

func (c Config) toURL() string {
	if c.MaxConns == 0 { // prevent error: pool_max_conns too small
		c.MaxConns = defaultMaxConns
	}

	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password.Secret()),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     c.Database,
		RawQuery: fmt.Sprintf("sslmode=%s&pool_max_conns=%d", c.SSLMode, c.MaxConns),
	}

	return u.String()
}

// Connect connects to a PostgreSQL database.
func Connect(ctx context.Context, pgConf Config, tracerProvider trace.TracerProvider) (*Handler, error) {
	config, err := pgxpool.ParseConfig(pgConf.toURL())
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse config: %v", ErrConnectionFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	// to list all runtime settings: SHOW ALL;
	config.ConnConfig.RuntimeParams = map[string]string{
		"application_name": "catalog",
	}
	config.ConnConfig.Tracer = &queryTracer{
		tracer: tracerProvider.Tracer("catalog.pgx"),
	}

	dbpool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%w: could not connect: %v", ErrConnectionFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	err = ping(ctx, dbpool, pgConf.ConnectTimeout)
	if err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("%w: could not ping db: %v", ErrConnectionFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	connStr := stdlib.RegisterConnConfig(config.ConnConfig)

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("%w: could not connect via the std lib registration: %v", ErrConnectionFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	db.SetMaxOpenConns(int(config.MaxConns))

	return &Handler{
		PGx:    dbpool,
		DB:     db,
		Config: pgConf,
	}, nil
}

// ping retries with an exponential backoff, e.g. while a database container is still starting up.
func ping(ctx context.Context, pool *pgxpool.Pool, timeout time.Duration) error {
	if timeout == 0 {
		return pool.Ping(ctx) //nolint:wrapcheck // wrapped by caller
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = timeout

	return backoff.Retry(func() error { //nolint:wrapcheck // wrapped by caller
		return pool.Ping(ctx)
	}, backoff.WithContext(b, ctx))
}

// ConnectAndMigrate connects to a PostgreSQL database and
// runs all migrations to ensure that the schema is on the latest version.
func ConnectAndMigrate(ctx context.Context, conf Config, tracerProvider trace.TracerProvider) (*Handler, error) {
	if conf.Migrations == nil {
		return nil, fmt.Errorf("%w: no migration files given", ErrMigrationFailed)
	}

	handler, err := Connect(ctx, conf, tracerProvider)
	if err != nil {
		return nil, err
	}

	err = migrateUp(handler.DB, conf.Database, conf.Migrations)
	if err != nil {
		_ = handler.Shutdown(ctx)
		return nil, err
	}

	return handler, nil
}

func migrateUp(db *sql.DB, dbName string, migrationsFS fs.FS) error {
	fsDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("%w: could not create migration file driver: %v", ErrMigrationFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{}) //nolint:exhaustruct // use default config
	if err != nil {
		return fmt.Errorf("%w: could not get database driver: %v", ErrMigrationFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	m, err := migrate.NewWithInstance("iofs", fsDriver, dbName, driver)
	if err != nil {
		return fmt.Errorf("%w: could not create new migration instance: %v", ErrMigrationFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: could not migrate up: %v", ErrMigrationFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	return nil
}

type Handler struct {
	PGx *pgxpool.Pool
	// DB is used by the SQL repositories, migrations, and test fixtures.
	DB     *sql.DB
	Config Config
}

// Shutdown waits for and closes all connections to PostgreSQL.
func (h Handler) Shutdown(_ context.Context) error {
	err := h.DB.Close()

	h.PGx.Close()

	if err != nil {
		return fmt.Errorf("could not close postgres: %w", err)
	}

	return nil
}
