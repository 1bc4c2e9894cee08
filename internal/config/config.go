package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
	StoreDriverSQLite   = "sqlite"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env         string `env:"ENV" env-required:"true"`
	StoreDriver string `env:"STORE_DRIVER" env-default:"postgres"`
	HTTP        HTTPConfig
	Postgres    PostgresConfig
	Mongo       MongoConfig
	SQLite      SQLiteConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	// EmptyListNotFound keeps the legacy "404 No tasks found" reply for an
	// empty collection instead of 200 with an empty list.
	EmptyListNotFound bool `env:"HTTP_EMPTY_LIST_NOT_FOUND" env-default:"false"`
}

type PostgresConfig struct {
	Host           string        `env:"POSTGRES_HOST" env-default:"localhost"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME"`
	Password       string        `env:"POSTGRES_PASSWORD"`
	Database       string        `env:"POSTGRES_DATABASE"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

type MongoConfig struct {
	URI            string        `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database       string        `env:"MONGO_DATABASE" env-default:"taskboard"`
	Collection     string        `env:"MONGO_COLLECTION" env-default:"tasks"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH" env-default:"taskboard.db"`
}

// ClientConfig configures the terminal client.
type ClientConfig struct {
	APIURL         string        `env:"TASKS_API_URL" env-default:"http://localhost:8080/api"`
	PageSize       int           `env:"TASKS_PAGE_SIZE" env-default:"6"`
	RequestTimeout time.Duration `env:"TASKS_REQUEST_TIMEOUT" env-default:"10s"`
	LogFile        string        `env:"LOG_FILE"`
}
