package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Catalog source selectors.
const (
	SourceSample   = "sample"
	SourcePostgres = "postgres"
)

// Config holds the application's configuration values.
// Tags like `envconfig:"APP_ENV"` specify the environment variable name and
// `default:""` the value used when the variable is unset.
type Config struct {
	AppEnv        string        `envconfig:"APP_ENV" default:"development"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	CatalogSource string        `envconfig:"CATALOG_SOURCE" default:"sample"` // sample or postgres
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	HttpServer    ServerConfig
	GrpcServer    GrpcServerConfig
	Postgres      PostgresConfig
}

// ServerConfig holds HTTP server-specific configuration.
type ServerConfig struct {
	Port         string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	TimeoutRead  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_READ" default:"15s"`
	TimeoutWrite time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_IDLE" default:"60s"`
}

// GrpcServerConfig holds gRPC server-specific configuration.
type GrpcServerConfig struct {
	Port string `envconfig:"GRPC_SERVER_PORT" default:"9090"`
}

// PostgresConfig holds the catalog database connection details. Only
// consulted when CATALOG_SOURCE is "postgres".
type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     string `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:""`
	Password string `envconfig:"POSTGRES_PASSWORD" default:""`
	DBName   string `envconfig:"POSTGRES_DBNAME" default:""`
}

// DSN constructs the Data Source Name string for connecting to PostgreSQL.
func (pc *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		pc.Host, pc.Port, pc.User, pc.Password, pc.DBName)
}

// Load initializes the configuration from environment variables. It should
// be called once during application startup.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}

	switch cfg.CatalogSource {
	case SourceSample:
	case SourcePostgres:
		if cfg.Postgres.User == "" || cfg.Postgres.DBName == "" {
			return nil, fmt.Errorf("CATALOG_SOURCE=postgres requires POSTGRES_USER and POSTGRES_DBNAME")
		}
	default:
		return nil, fmt.Errorf("invalid CATALOG_SOURCE: %q", cfg.CatalogSource)
	}

	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}

	return &cfg, nil
}
