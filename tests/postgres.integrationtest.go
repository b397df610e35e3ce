//go:build integration

package tests

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/go-testfixtures/testfixtures/v3"
	"github.com/khaiql/dbcleaner"
	"github.com/khaiql/dbcleaner/engine"
	"github.com/ory/dockertest/v3"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/go-arrower/catalog/postgres"
	"github.com/go-arrower/catalog/secret"
)

//nolint:gochecknoglobals // the variables are used on purpose for a singleton pattern.
var (
	muPostgres        = &sync.Mutex{}
	singletonPostgres *PostgresDocker
)

// PostgresOpt allows to initialise a custom postgres connection.
type PostgresOpt func(config *postgres.Config)

// WithMigrations applies the migrations in fsys, see postgres.Config.
func WithMigrations(fsys fs.FS) PostgresOpt {
	return func(c *postgres.Config) {
		c.Migrations = fsys
	}
}

// GetPostgresDockerForIntegrationTestingInstance returns a fully connected handler.
// Subsequent calls return the same handler to prevent multiple docker containers to spin up,
// if you have a lot of integration tests running in parallel.
// The options are only applied on the first call.
func GetPostgresDockerForIntegrationTestingInstance(opts ...PostgresOpt) *PostgresDocker {
	muPostgres.Lock()
	defer muPostgres.Unlock()

	if singletonPostgres != nil {
		return singletonPostgres
	}

	options := *defaultPGRunOptions
	options.Name = fmt.Sprintf("catalog-testing-postgres-%d", rand.Intn(1000)) //nolint:gosec,mnd,lll // no need for secure number, just prevent collisions

	singletonPostgres = startPostgres(&options, opts...)

	return singletonPostgres
}

// NewPostgresDockerForIntegrationTesting returns a Handler that is fully connected and has a method to clean up
// after the integration tests are done. Consider using GetPostgresDockerForIntegrationTestingInstance.
// It spins up and connects to a db instance in a new docker container.
// If called in a CI environment, the pipeline needs access to a docker socket.
// In case of an issue, it panics.
func NewPostgresDockerForIntegrationTesting(opts ...PostgresOpt) *PostgresDocker {
	return startPostgres(defaultPGRunOptions, opts...)
}

func startPostgres(runOptions *dockertest.RunOptions, opts ...PostgresOpt) *PostgresDocker {
	var pgHandler *postgres.Handler

	retryFunc := func(resource *dockertest.Resource) func() error {
		port, _ := strconv.Atoi(resource.GetPort("5432/tcp"))
		conf := defaultPGConf
		conf.Port = port

		for _, opt := range opts {
			opt(&conf)
		}

		return func() error {
			handler, err := connect(context.Background(), conf)
			if err != nil {
				return err
			}

			pgHandler = handler

			return nil
		}
	}

	cleanup, err := StartDockerContainer(runOptions, retryFunc)
	if err != nil {
		panic(err)
	}

	return &PostgresDocker{
		pg:            pgHandler,
		cleanupDocker: cleanup,
	}
}

func connect(ctx context.Context, conf postgres.Config) (*postgres.Handler, error) {
	if conf.Migrations == nil {
		return postgres.Connect(ctx, conf, noop.NewTracerProvider()) //nolint:wrapcheck // test helper
	}

	return postgres.ConnectAndMigrate(ctx, conf, noop.NewTracerProvider()) //nolint:wrapcheck // test helper
}

var (
	defaultPGConf = postgres.Config{ //nolint:gochecknoglobals,exhaustruct
		User:     "catalog",
		Password: secret.New("secret"),
		Database: "catalog_test",
		Host:     "localhost",
		Port:     5432, //nolint:mnd
		MaxConns: 10,   //nolint:mnd
	}

	defaultPGRunOptions = &dockertest.RunOptions{ //nolint:gochecknoglobals,exhaustruct // only set required configuration
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=" + defaultPGConf.User,
			"POSTGRES_PASSWORD=" + defaultPGConf.Password.Secret(),
			"POSTGRES_DB=" + defaultPGConf.Database,
			"listen_addresses = '*'",
		},
		Cmd: []string{"-c", "max_connections=1000"},
	}
)

type PostgresDocker struct {
	pg            *postgres.Handler
	cleanupDocker func() error
}

const commonFixture = "testdata/fixtures/_common.yaml"

// NewTestDatabase creates a new database, connects to it, and applies all migrations.
// Afterwards, it loads all fixtures from files.
// Use it in integration tests to create a valid database state for your test.
// If there is a file named `testdata/fixtures/_common.yaml`, it's always loaded by default.
// In case of an issue, it panics.
func (pd *PostgresDocker) NewTestDatabase(files ...string) *postgres.Handler {
	pgHandler := createAndConnectToNewRandomDatabase(pd.pg)

	loadFixtures(pgHandler, files...)

	return pgHandler
}

// PrepareDatabase prepares the existing database for testing:
// all tables except the migration history are truncated and then the fixture files are loaded.
// If there is a file named `testdata/fixtures/_common.yaml`, it's always loaded by default.
func (pd *PostgresDocker) PrepareDatabase(files ...string) {
	c := pd.pg.Config
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		c.User, c.Password.Secret(), net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.Database)

	cleaner := dbcleaner.New()
	cleaner.SetEngine(engine.NewPostgresEngine(dsn))

	var tables []string

	_ = sqlscan.Select(context.Background(), pd.pg.DB, &tables,
		`SELECT table_schema || '.' || table_name
				FROM information_schema.tables
				WHERE table_schema NOT IN ('pg_catalog', 'information_schema')
				  AND table_type = 'BASE TABLE'
				  AND table_name <> 'schema_migrations'`,
	)

	cleaner.Clean(tables...)
	_ = cleaner.Close()

	loadFixtures(pd.pg, files...)
}

func loadFixtures(pg *postgres.Handler, files ...string) {
	if _, err := os.Stat(commonFixture); errors.Is(err, nil) { // file exists
		files = append([]string{commonFixture}, files...)
	}

	if len(files) == 0 {
		return
	}

	fixtures, err := testfixtures.New(
		testfixtures.Database(pg.DB),
		testfixtures.Dialect("postgres"),
		testfixtures.FilesMultiTables(files...),
	)
	if err != nil {
		panic(err)
	}

	if err := fixtures.Load(); err != nil {
		panic(err)
	}
}

// Cleanup does shutdown the database connection, stops, and removes the docker image.
// It cannot be deferred in TestMain, if it exists with os.Exit(code), as that does not execute the defer stack.
// In case of an issue, it panics.
func (pd *PostgresDocker) Cleanup() {
	err := pd.pg.Shutdown(context.Background())
	if err != nil {
		panic(err)
	}

	err = pd.cleanupDocker()
	if err != nil {
		panic(err)
	}
}

// Handler returns the connection to the database of the container.
func (pd *PostgresDocker) Handler() *postgres.Handler {
	return pd.pg
}

func createAndConnectToNewRandomDatabase(pg *postgres.Handler) *postgres.Handler {
	newDB := randomDatabaseName()

	_, err := pg.DB.Exec(fmt.Sprintf("CREATE DATABASE %s;", newDB))
	if err != nil {
		panic(err)
	}

	newConfig := pg.Config
	newConfig.Database = newDB

	newHandler, err := connect(context.Background(), newConfig)
	if err != nil {
		panic(err)
	}

	return newHandler
}

func randomDatabaseName() string {
	validPGDatabaseLetters := []rune("abcdefghijklmnopqrstuvwxyz")

	rnd := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // used for name, not security

	const n = 16
	b := make([]rune, n)

	for i := range b {
		b[i] = validPGDatabaseLetters[rnd.Intn(len(validPGDatabaseLetters))]
	}

	return string(b) + "_test"
}
