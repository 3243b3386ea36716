package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/storefront-api/pkg/config"
	"github.com/utafrali/storefront-api/pkg/database"
	"github.com/utafrali/storefront-api/pkg/tracing"
)

const listenHost = "0.0.0.0"

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Config holds all configuration for the storefront API.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"storefront-api"`
	Version     string `env:"SERVICE_VERSION" envDefault:"0.1.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server, always bound to all interfaces
	HTTPPort int `env:"PORT" envDefault:"8000" validate:"min=1,max=65535"`

	// Document store
	StoreDriver  string `env:"STORE_DRIVER" envDefault:"mongo" validate:"oneof=mongo postgres redis memory"`
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseName string `env:"DATABASE_NAME" envDefault:"storefront" validate:"required"`

	MongoConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"5s"`
	MongoSelectTimeout  time.Duration `env:"MONGO_SERVER_SELECTION_TIMEOUT" envDefault:"5s"`
	MongoMaxPoolSize    uint64        `env:"MONGO_MAX_POOL_SIZE" envDefault:"100"`
	SlowOperationMillis int           `env:"LOG_SLOW_QUERY_MS" envDefault:"200" validate:"gte=0"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432" validate:"min=1,max=65535"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"storefront_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"storefront"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	DBMaxConns   int32  `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns   int32  `env:"DB_MIN_CONNS" envDefault:"2"`

	// Redis
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379" validate:"hostname_port"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0" validate:"gte=0"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"storefront"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Tracing
	OTelEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTelEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTelSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0" validate:"gte=0,lte=1"`

	// CORS
	CORSAllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	CORSAllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`

	// Comma-separated CIDRs allowed to reach /debug/pprof.
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8,::1/128" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	return cfg, nil
}

// HTTPAddr is the listen address for the HTTP server.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", listenHost, c.HTTPPort)
}

// SlowOperationThreshold is the duration above which store calls are logged.
func (c *Config) SlowOperationThreshold() time.Duration {
	return time.Duration(c.SlowOperationMillis) * time.Millisecond
}

func (c *Config) Mongo() database.MongoConfig {
	return database.MongoConfig{
		URI:                    c.DatabaseURL,
		Database:               c.DatabaseName,
		AppName:                c.ServiceName,
		ConnectTimeout:         c.MongoConnectTimeout,
		ServerSelectionTimeout: c.MongoSelectTimeout,
		MaxPoolSize:            c.MongoMaxPoolSize,
	}
}

func (c *Config) Postgres() *database.PostgresConfig {
	return &database.PostgresConfig{
		Host:            c.PostgresHost,
		Port:            c.PostgresPort,
		User:            c.PostgresUser,
		Password:        c.PostgresPass,
		DBName:          c.PostgresDB,
		SSLMode:         c.PostgresSSL,
		MaxConns:        c.DBMaxConns,
		MinConns:        c.DBMinConns,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}
}

func (c *Config) Redis() (database.RedisConfig, error) {
	host, port, err := splitHostPort(c.RedisAddr)
	if err != nil {
		return database.RedisConfig{}, fmt.Errorf("parse REDIS_ADDR: %w", err)
	}
	return database.RedisConfig{Host: host, Port: port, Password: c.RedisPassword, DB: c.RedisDB}, nil
}

func (c *Config) Tracing() tracing.Config {
	return tracing.Config{
		ServiceName:    c.ServiceName,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
		OTLPEndpoint:   c.OTelEndpoint,
		SampleRate:     c.OTelSampleRate,
		Enabled:        c.OTelEnabled,
	}
}
