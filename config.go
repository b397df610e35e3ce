// Package catalog holds the configuration shared by all contexts of the catalog.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/go-arrower/catalog/secret"
)

// Config is a structure used for service configuration.
// It is intended to be mapped by viper.
type Config struct {
	Environment Environment `mapstructure:"environment"`

	Storage  Storage  `mapstructure:"storage"`
	Postgres Postgres `mapstructure:"postgres"`
	Search   Search   `mapstructure:"search"`
}

const (
	LocalEnv       Environment = "local"
	TestEnv        Environment = "test"
	DevelopmentEnv Environment = "dev"
	ProductionEnv  Environment = "prod"
)

// Environments is the list of all supported environments.
func Environments() []Environment {
	return []Environment{LocalEnv, TestEnv, DevelopmentEnv, ProductionEnv}
}

type Environment string

const (
	MemoryStorage   StorageDriver = "memory"
	JSONStorage     StorageDriver = "json"
	SQLiteStorage   StorageDriver = "sqlite"
	PostgresStorage StorageDriver = "postgres"
)

// StorageDrivers is the list of all places the categories can be kept.
func StorageDrivers() []StorageDriver {
	return []StorageDriver{MemoryStorage, JSONStorage, SQLiteStorage, PostgresStorage}
}

type StorageDriver string

type (
	Storage struct {
		Driver StorageDriver `mapstructure:"driver"   json:"driver"`
		// JSONDir is the directory the json driver writes its files to.
		JSONDir string `mapstructure:"json_dir" json:"jsonDir"`
		SQLite  SQLite `mapstructure:"sqlite"   json:"sqlite"`
	}

	SQLite struct {
		DSN string `mapstructure:"dsn" json:"dsn"`
	}

	Postgres struct {
		User           string        `mapstructure:"user"            json:"user"`
		Password       secret.Secret `mapstructure:"password"        json:"-"`
		Database       string        `mapstructure:"database"        json:"database"`
		Host           string        `mapstructure:"host"            json:"host"`
		Port           int           `mapstructure:"port"            json:"port"`
		SSLMode        string        `mapstructure:"ssl_mode"        json:"sslMode"`
		MaxConns       int           `mapstructure:"max_conns"       json:"maxConns"`
		ConnectTimeout time.Duration `mapstructure:"connect_timeout" json:"connectTimeout"`
	}

	Search struct {
		PerPage int `mapstructure:"per_page" json:"perPage"`
	}
)

// DefaultViper returns a new viper instance with all default values
// from Config set.
func DefaultViper() *Viper {
	vip := viper.New()

	vip.SetDefault("environment", "local")

	vip.SetDefault("storage.driver", "memory")
	vip.SetDefault("storage.json_dir", "data")
	vip.SetDefault("storage.sqlite.dsn", "catalog.db")

	vip.SetDefault("postgres.user", "catalog")
	vip.SetDefault("postgres.password", "secret")
	vip.SetDefault("postgres.database", "catalog")
	vip.SetDefault("postgres.host", "localhost")
	vip.SetDefault("postgres.port", 5432)
	vip.SetDefault("postgres.ssl_mode", "disable")
	vip.SetDefault("postgres.max_conns", 10)
	vip.SetDefault("postgres.connect_timeout", "5s")

	vip.SetDefault("search.per_page", 15)

	vip.SetEnvPrefix("catalog")
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vip.AutomaticEnv()

	return &Viper{Viper: vip}
}

var errConfigLoadFailed = errors.New("loading configuration failed")

// LoadDotEnv sets the variables of the given .env files, e.g. CATALOG_STORAGE_DRIVER=sqlite,
// so a Viper from DefaultViper picks them up. Without files, .env is loaded.
// Variables already set in the environment are not overwritten and missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		err := godotenv.Load(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: could not load %s: %v", errConfigLoadFailed, file, err) //nolint:errorlint,lll // prevent err in api
		}
	}

	return nil
}

// Viper is a wrapper around viper.Viper for configuration loading.
// It overwrites Unmarshal, so the enums are checked and
// secret.Secret values are decoded without further setup.
type Viper struct {
	*viper.Viper
}

// Unmarshal decodes the configuration into rawVal, which is a Config or
// a struct embedding it with `mapstructure:",squash"`.
func (vip *Viper) Unmarshal(rawVal any, opts ...viper.DecoderConfigOption) error {
	opts = append([]viper.DecoderConfigOption{viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		allowedValuesHookFunc(Environments()),
		allowedValuesHookFunc(StorageDrivers()),
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))}, opts...)

	err := vip.Viper.Unmarshal(rawVal, opts...)
	if err != nil {
		return fmt.Errorf("%w: could not decode configuration into struct: %v", errConfigLoadFailed, err) //nolint:errorlint,lll // prevent err in api
	}

	return nil
}

// allowedValuesHookFunc rejects every value of the string enum T not listed in allowed.
func allowedValuesHookFunc[T ~string](allowed []T) mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(T("")) {
			return data, nil
		}

		value, ok := data.(string)
		if ok && slices.Contains(allowed, T(value)) {
			return data, nil
		}

		names := make([]string, 0, len(allowed))
		for _, a := range allowed {
			names = append(names, string(a))
		}

		return data, fmt.Errorf("%s value %v is not allowed, use one of: %s", t.Name(), data, strings.Join(names, ", ")) //nolint:err113,lll // accept dynamic error
	}
}
