package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/careerhub/internal/domain/job"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LOG_LEVEL", "LOG_FORMAT", "MCP_HOST", "PORT", "STORE_BACKEND", "SNAPSHOT_TTL", "REFRESH_INTERVAL",
		"PAGE_SIZE", "ADZUNA_APP_ID", "ADZUNA_APP_KEY", "ADZUNA_COUNTRY", "ADZUNA_QUERIES",
		"NEO4J_URI", "NEO4J_USERNAME", "NEO4J_PASSWORD", "NEO4J_DATABASE", "DATABASE_URL",
		"REDIS_URL", "FIXTURES_PATH", "GOOGLE_SHEETS_CREDENTIALS_PATH", "CONFIG_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, 6*time.Hour, cfg.RefreshInterval)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, "us", cfg.Adzuna.Country)
	assert.False(t, cfg.AdzunaEnabled())
	assert.Equal(t, []job.SearchQuery{{Query: "software engineer"}}, cfg.Queries)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "Console")
	t.Setenv("PORT", "9090")
	t.Setenv("REFRESH_INTERVAL", "30m")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("ADZUNA_APP_ID", "id")
	t.Setenv("ADZUNA_APP_KEY", "key")
	t.Setenv("ADZUNA_QUERIES", "golang, nurse ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 25, cfg.PageSize)
	assert.True(t, cfg.AdzunaEnabled())
	assert.Equal(t, []job.SearchQuery{{Query: "golang"}, {Query: "nurse"}}, cfg.Queries)
}

func TestLoadConfigFileQueries(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "careerhub.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
queries:
  - query: data analyst
    location: Austin
  - query: pharmacist
`), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("ADZUNA_QUERIES", "ignored")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []job.SearchQuery{
		{Query: "data analyst", Location: "Austin"},
		{Query: "pharmacist"},
	}, cfg.Queries)
}

func TestLoadRequiresBackendSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "neo4j")
	t.Setenv("NEO4J_URI", "neo4j://localhost:7687")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NEO4J_USERNAME, NEO4J_PASSWORD")

	t.Setenv("STORE_BACKEND", "postgres")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string][2]string{
		"backend":  {"STORE_BACKEND", "sqlite"},
		"interval": {"REFRESH_INTERVAL", "often"},
		"zero":     {"REFRESH_INTERVAL", "0s"},
		"page":     {"PAGE_SIZE", "0"},
		"port":     {"PORT", "http"},
		"level":    {"LOG_LEVEL", "loud"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
