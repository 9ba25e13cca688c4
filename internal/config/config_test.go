package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10*time.Minute, cfg.Cache.MetadataCacheTTL)
	assert.Equal(t, 15*time.Second, cfg.Cache.ArrivalsCacheTTL)
	assert.Equal(t, "flight-telemetry-ingest", cfg.Worker.ConsumerGroup)
	assert.Equal(t, 20, cfg.Worker.MaxBatchSize)
	assert.Equal(t, 30*time.Second, cfg.Worker.ClaimMinIdle)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFrom_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "API_HOST=127.0.0.1\n" +
		"API_PORT=9090\n" +
		"DB_HOST=db\n" +
		"DB_PORT=5433\n" +
		"DB_USER=contoso\n" +
		"DB_PASSWORD=secret\n" +
		"DB_NAME=telemetry\n" +
		"REDIS_HOST=cache\n" +
		"REDIS_PORT=6380\n" +
		"ARRIVALS_CACHE_TTL=30\n" +
		"WORKER_ENABLED=true\n" +
		"WORKER_CLAIM_MIN_IDLE=5\n" +
		"LOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.GetServerAddr())
	assert.Equal(t, "cache:6380", cfg.GetRedisAddr())
	assert.Equal(t,
		"host=db port=5433 user=contoso password=secret dbname=telemetry sslmode=disable",
		cfg.GetDatabaseDSN())
	assert.Equal(t, 30*time.Second, cfg.Cache.ArrivalsCacheTTL)
	assert.True(t, cfg.Worker.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Worker.ClaimMinIdle)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFrom_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("API_PORT=9090\n"), 0o600))
	t.Setenv("API_PORT", "7070")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Config{Server: ServerConfig{AllowOrigins: " http://a.test , ,http://b.test"}}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}
