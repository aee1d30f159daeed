package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"borr/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("WORKER_COUNT", "")
	t.Setenv("BATCH_SIZE", "not-a-number")
	t.Setenv("BORR_FALLBACK_LANG", "")
	t.Setenv("NEO4J_URI", "")

	cfg := config.Load()
	require.Equal(t, "postgres://localhost:5432/borr?sslmode=disable", cfg.DatabaseURL)
	require.Equal(t, 4, cfg.WorkerCount)
	require.Equal(t, 100, cfg.BatchSize)
	require.Empty(t, cfg.FallbackLang)
	require.Equal(t, "bolt://localhost:7687", cfg.Neo4jURI)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/borr")
	t.Setenv("WORKER_COUNT", "16")
	t.Setenv("BORR_FALLBACK_LANG", "en_GB")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := config.Load()
	require.Equal(t, "postgres://db/borr", cfg.DatabaseURL)
	require.Equal(t, 16, cfg.WorkerCount)
	require.Equal(t, "en_GB", cfg.FallbackLang)
	require.Equal(t, "debug", cfg.LogLevel)
}
