package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/honeycarbs/careerhub/internal/domain/job"
)

// Store backends
const (
	BackendMemory   = "memory"
	BackendNeo4j    = "neo4j"
	BackendPostgres = "postgres"
)

// Config contains runtime settings for the server
type Config struct {
	LogLevel  string `validate:"oneof=debug info warn warning error fatal panic"`
	LogFormat string `validate:"oneof=json console"`
	Host     string // default 0.0.0.0
	Port     string `validate:"required,numeric"`

	StoreBackend    string        `validate:"oneof=memory neo4j postgres"`
	SnapshotTTL     time.Duration `validate:"gte=0"`
	RefreshInterval time.Duration `validate:"gt=0"`
	PageSize        int           `validate:"gte=1,lte=100"`

	Adzuna struct {
		AppID   string
		AppKey  string
		Country string
	}
	Neo4j struct {
		URI      string
		Username string
		Password string
		Database string
	}
	DatabaseURL string
	RedisURL    string

	FixturesPath    string
	SheetsCredsPath string
	Queries         []job.SearchQuery `validate:"required,min=1,dive"`
}

// fileConfig is the optional YAML file named by CONFIG_FILE
type fileConfig struct {
	Queries []job.SearchQuery `yaml:"queries"`
}

// Load populates config from environment variables, plus list settings
// from the YAML file named by CONFIG_FILE
func Load() (Config, error) {
	cfg := Config{
		LogLevel:        "info",
		LogFormat:       "json",
		Host:            "0.0.0.0",
		Port:            "8080",
		StoreBackend:    BackendMemory,
		SnapshotTTL:     6 * time.Hour,
		RefreshInterval: 6 * time.Hour,
		PageSize:        10,
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}

	if v := os.Getenv("MCP_HOST"); v != "" {
		cfg.Host = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	if v := os.Getenv("STORE_BACKEND"); v != "" {
		cfg.StoreBackend = strings.ToLower(v)
	}

	var err error
	if cfg.SnapshotTTL, err = durationEnv("SNAPSHOT_TTL", cfg.SnapshotTTL); err != nil {
		return cfg, err
	}
	if cfg.RefreshInterval, err = durationEnv("REFRESH_INTERVAL", cfg.RefreshInterval); err != nil {
		return cfg, err
	}
	if v := os.Getenv("PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("PAGE_SIZE: %w", err)
		}
		cfg.PageSize = n
	}

	cfg.Adzuna.AppID = os.Getenv("ADZUNA_APP_ID")
	cfg.Adzuna.AppKey = os.Getenv("ADZUNA_APP_KEY")
	if v := os.Getenv("ADZUNA_COUNTRY"); v != "" {
		cfg.Adzuna.Country = v
	} else {
		cfg.Adzuna.Country = "us"
	}

	cfg.Neo4j.URI = os.Getenv("NEO4J_URI")
	cfg.Neo4j.Username = os.Getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")
	cfg.Neo4j.Database = os.Getenv("NEO4J_DATABASE")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.RedisURL = os.Getenv("REDIS_URL")

	cfg.FixturesPath = os.Getenv("FIXTURES_PATH")
	cfg.SheetsCredsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")

	cfg.Queries = queriesEnv(os.Getenv("ADZUNA_QUERIES"))
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		fc, err := readFile(path)
		if err != nil {
			return cfg, err
		}
		if len(fc.Queries) > 0 {
			cfg.Queries = fc.Queries
		}
	}
	if len(cfg.Queries) == 0 {
		cfg.Queries = []job.SearchQuery{{Query: "software engineer"}}
	}

	var missingVars []string

	switch cfg.StoreBackend {
	case BackendNeo4j:
		if cfg.Neo4j.URI == "" {
			missingVars = append(missingVars, "NEO4J_URI")
		}
		if cfg.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if cfg.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			missingVars = append(missingVars, "DATABASE_URL")
		}
	}

	if len(missingVars) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Addr is the listen address
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// AdzunaEnabled reports whether Adzuna credentials are present
func (c Config) AdzunaEnabled() bool {
	return c.Adzuna.AppID != "" && c.Adzuna.AppKey != ""
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func queriesEnv(v string) []job.SearchQuery {
	var out []job.SearchQuery
	for _, q := range strings.Split(v, ",") {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, job.SearchQuery{Query: q})
		}
	}
	return out
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}
