package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.HTTPAddr())
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "storefront", cfg.DatabaseName)
	assert.False(t, cfg.KafkaEnabled)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.CORSAllowCredentials)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowOperationThreshold())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("DATABASE_URL", "mongodb://mongo:27017")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "mongodb://mongo:27017", cfg.Mongo().URI)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_HostNotConfigurable(t *testing.T) {
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9100", cfg.HTTPAddr())
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown driver":   {"STORE_DRIVER": "sqlite"},
		"port range":       {"PORT": "70000"},
		"sample rate":      {"OTEL_SAMPLE_RATE": "1.5"},
		"port not numeric": {"PORT": "eighty"},
		"redis addr":       {"REDIS_ADDR": "no-port"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "load storefront config")
		})
	}
}

func TestConfig_StoreSettings(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "pg")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://storefront:storefront_secret@pg:5432/storefront?sslmode=disable", cfg.Postgres().DSN())

	rc, err := cfg.Redis()
	require.NoError(t, err)
	assert.Equal(t, "cache", rc.Host)
	assert.Equal(t, 6380, rc.Port)
	assert.Equal(t, 2, rc.DB)

	tc := cfg.Tracing()
	assert.Equal(t, "storefront-api", tc.ServiceName)
	assert.Equal(t, 1.0, tc.SampleRate)
}
