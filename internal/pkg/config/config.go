package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, etc.)
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	DB        DBConfig
	Scraper   ScraperConfig
	Scheduler SchedulerConfig
	CORS      CORSConfig
	Log       LogConfig
	Tracing   TracingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" default:"5000"`
}

type StoreConfig struct {
	Driver     string `envconfig:"STORE_DRIVER" default:"sqlite"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"database.sqlite"`
}

// DBConfig is only read when STORE_DRIVER=postgres.
type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME" default:"garden_stock"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
}

type ScraperConfig struct {
	SourceURL string        `envconfig:"SCRAPER_SOURCE_URL" default:"https://vulcanvalues.com/grow-a-garden/stock"`
	UserAgent string        `envconfig:"SCRAPER_USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"`
	Timeout   time.Duration `envconfig:"SCRAPER_TIMEOUT" default:"10s"`
}

type SchedulerConfig struct {
	Spec       string `envconfig:"SCHEDULER_SPEC" default:"*/5 * * * *"`
	RunOnStart bool   `envconfig:"SCHEDULER_RUN_ON_START" default:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// TracingConfig: spans are only exported when an OTLP endpoint is set.
type TracingConfig struct {
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"`
	ServiceName  string `envconfig:"OTEL_SERVICE_NAME" default:"garden-stock-api"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c StoreConfig) Validate() error {
	switch c.Driver {
	case StoreDriverSQLite, StoreDriverPostgres:
		return nil
	default:
		return fmt.Errorf("unknown STORE_DRIVER=%q (expected %s|%s)", c.Driver, StoreDriverSQLite, StoreDriverPostgres)
	}
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Store.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{
			Driver:     StoreDriverSQLite,
			SQLitePath: ":memory:",
		},
		Scraper: ScraperConfig{
			SourceURL: "http://127.0.0.1/stock",
			UserAgent: "Mozilla/5.0 (test)",
			Timeout:   2 * time.Second,
		},
		Scheduler: SchedulerConfig{
			Spec:       "*/5 * * * *",
			RunOnStart: false,
		},
		CORS: CORSConfig{
			AllowOrigins:  []string{"*"},
			AllowMethods:  []string{"GET", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
			MaxAge:        12 * time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		Tracing: TracingConfig{
			ServiceName: "garden-stock-api-test",
		},
	}
}
