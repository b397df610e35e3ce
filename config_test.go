package catalog_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/catalog"
)

func TestDefaultViper(t *testing.T) {
	t.Parallel()

	vip := catalog.DefaultViper()
	assert.NotEmpty(t, vip)

	// This test enforces the default values, so whenever they change,
	// make sure to also update the example config file!

	assert.Equal(t, catalog.LocalEnv, catalog.Environment(vip.GetString("environment")))

	assert.Equal(t, catalog.MemoryStorage, catalog.StorageDriver(vip.GetString("storage.driver")))
	assert.Equal(t, "data", vip.GetString("storage.json_dir"))
	assert.Equal(t, "catalog.db", vip.GetString("storage.sqlite.dsn"))

	assert.Equal(t, "catalog", vip.GetString("postgres.user"))
	assert.Equal(t, "secret", vip.GetString("postgres.password"))
	assert.Equal(t, "catalog", vip.GetString("postgres.database"))
	assert.Equal(t, "localhost", vip.GetString("postgres.host"))
	assert.Equal(t, 5432, vip.GetInt("postgres.port"))
	assert.Equal(t, "disable", vip.GetString("postgres.ssl_mode"))
	assert.Equal(t, 10, vip.GetInt("postgres.max_conns"))
	assert.Equal(t, 5*time.Second, vip.GetDuration("postgres.connect_timeout"))

	assert.Equal(t, 15, vip.GetInt("search.per_page"))
}

func TestViper_Unmarshal(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		conf := catalog.Config{}

		err := catalog.DefaultViper().Unmarshal(&conf)
		require.NoError(t, err)
		assert.Equal(t, catalog.MemoryStorage, conf.Storage.Driver)
		assert.Equal(t, "secret", conf.Postgres.Password.Secret())
		assert.Equal(t, 5*time.Second, conf.Postgres.ConnectTimeout)
	})

	t.Run("config file", func(t *testing.T) {
		t.Parallel()

		vip := catalog.DefaultViper()
		vip.SetConfigFile("./testdata/config/test-config.yaml")
		err := vip.ReadInConfig()
		require.NoError(t, err)

		conf := catalog.Config{}

		err = vip.Unmarshal(&conf)
		require.NoError(t, err)
		assert.Equal(t, catalog.TestEnv, conf.Environment)
		assert.Equal(t, catalog.Storage{
			Driver:  catalog.SQLiteStorage,
			JSONDir: "/tmp/catalog",
			SQLite:  catalog.SQLite{DSN: ":memory:"},
		}, conf.Storage)
		assert.Equal(t, "catalog_user", conf.Postgres.User)
		assert.Equal(t, "my-db-secret", conf.Postgres.Password.Secret())
		assert.Equal(t, "******", conf.Postgres.Password.String())
		assert.Equal(t, 5433, conf.Postgres.Port)
		assert.Equal(t, 30*time.Second, conf.Postgres.ConnectTimeout)
		assert.Equal(t, 25, conf.Search.PerPage)
	})

	t.Run("custom config", func(t *testing.T) {
		t.Parallel()

		type MyConfig struct {
			SomeStructField struct{ A string }
			catalog.Config  `mapstructure:",squash"`
		}

		vip := catalog.DefaultViper()
		vip.SetConfigFile("./testdata/config/test-config.yaml")
		err := vip.ReadInConfig()
		require.NoError(t, err)

		conf := MyConfig{}

		err = vip.Unmarshal(&conf)
		assert.NoError(t, err)
		assert.Equal(t, "my-db-secret", conf.Postgres.Password.Secret())
		assert.Equal(t, catalog.SQLiteStorage, conf.Storage.Driver)
	})

	tests := map[string]struct {
		file string
		msg  string
	}{
		"invalid environment": {
			"./testdata/config/invalid-config.yaml",
			"use one of: local, test, dev, prod",
		},
		"invalid storage driver": {
			"./testdata/config/invalid-storage-config.yaml",
			"use one of: memory, json, sqlite, postgres",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			vip := catalog.DefaultViper()
			vip.SetConfigFile(tt.file)
			err := vip.ReadInConfig()
			require.NoError(t, err)

			err = vip.Unmarshal(&catalog.Config{})
			assert.Error(t, err, "should fail when using unsupported enum values")
			assert.Contains(t, err.Error(), tt.msg, "error message should list out all accepted values")
		})
	}
}

func TestLoadDotEnv(t *testing.T) { //nolint:paralleltest // changes the environment of the process
	t.Cleanup(func() {
		os.Unsetenv("CATALOG_STORAGE_DRIVER")
		os.Unsetenv("CATALOG_STORAGE_JSON_DIR")
		os.Unsetenv("CATALOG_POSTGRES_PASSWORD")
	})

	err := catalog.LoadDotEnv("./testdata/config/test.env", "./testdata/config/not-existing.env")
	require.NoError(t, err)

	conf := catalog.Config{}

	err = catalog.DefaultViper().Unmarshal(&conf)
	require.NoError(t, err)
	assert.Equal(t, catalog.JSONStorage, conf.Storage.Driver)
	assert.Equal(t, "/var/lib/catalog", conf.Storage.JSONDir)
	assert.Equal(t, "env-db-secret", conf.Postgres.Password.Secret())
}
