package mcp

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/honeycarbs/careerhub/internal/config"
	"github.com/honeycarbs/careerhub/internal/domain/alerts"
	"github.com/honeycarbs/careerhub/internal/domain/filters"
	"github.com/honeycarbs/careerhub/internal/domain/job"
	adzunaprovider "github.com/honeycarbs/careerhub/internal/domain/job/providers/adzuna"
	"github.com/honeycarbs/careerhub/internal/domain/job/providers/fixture"
	"github.com/honeycarbs/careerhub/internal/mcp/tools"
	"github.com/honeycarbs/careerhub/internal/scheduler"
	"github.com/honeycarbs/careerhub/internal/storage/memory"
	storageneo4j "github.com/honeycarbs/careerhub/internal/storage/neo4j"
	storagepg "github.com/honeycarbs/careerhub/internal/storage/postgres"
	storageredis "github.com/honeycarbs/careerhub/internal/storage/redis"
	"github.com/honeycarbs/careerhub/pkg/adzuna"
	"github.com/honeycarbs/careerhub/pkg/logging"
	pkgneo4j "github.com/honeycarbs/careerhub/pkg/neo4j"
	pkgpostgres "github.com/honeycarbs/careerhub/pkg/postgres"
	pkgredis "github.com/honeycarbs/careerhub/pkg/redis"
	"github.com/honeycarbs/careerhub/pkg/sheets"
)

// provideRedis connects when REDIS_URL is set. A connect failure falls back
// to in-memory stores.
func provideRedis(ctx context.Context, cfg config.Config, logger *logging.Logger) (*goredis.Client, func()) {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, using in-memory cache and stores")
		return nil, func() {}
	}
	rdb, err := pkgredis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory cache and stores", "err", err)
		return nil, func() {}
	}
	return rdb, func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("redis close failed", "err", err)
		}
	}
}

// provideNeo4jClient connects only when neo4j is the selected backend
func provideNeo4jClient(ctx context.Context, cfg config.Config, logger *logging.Logger) (*pkgneo4j.Client, func(), error) {
	if cfg.StoreBackend != config.BackendNeo4j {
		return nil, func() {}, nil
	}
	client, err := pkgneo4j.NewClient(ctx, pkgneo4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
		Database: cfg.Neo4j.Database,
	})
	if err != nil {
		return nil, nil, err
	}
	return client, func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("neo4j close failed", "err", err)
		}
	}, nil
}

// providePostgresPool connects only when postgres is the selected backend
func providePostgresPool(ctx context.Context, cfg config.Config) (*pgxpool.Pool, func(), error) {
	if cfg.StoreBackend != config.BackendPostgres {
		return nil, func() {}, nil
	}
	pool, err := pkgpostgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return pool, pool.Close, nil
}

func provideJobRepository(ctx context.Context, cfg config.Config, nc *pkgneo4j.Client, pool *pgxpool.Pool, logger *logging.Logger) (job.Repository, error) {
	switch cfg.StoreBackend {
	case config.BackendNeo4j:
		repo := storageneo4j.NewJobRepository(nc)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	case config.BackendPostgres:
		repo := storagepg.NewJobRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	}
	logger.Info("using in-memory job repository")
	return memory.NewJobRepository(), nil
}

// provideSnapshotCache returns a nil cache without Redis; the job service
// then warms from the repository
func provideSnapshotCache(cfg config.Config, rdb *goredis.Client) job.SnapshotCache {
	if rdb == nil {
		return nil
	}
	return storageredis.NewSnapshotCache(rdb, cfg.SnapshotTTL)
}

func provideFilterStore(rdb *goredis.Client) filters.Store {
	if rdb == nil {
		return memory.NewFilterStore()
	}
	return storageredis.NewFilterStore(rdb)
}

func provideAlertStore(rdb *goredis.Client) alerts.Store {
	if rdb == nil {
		return memory.NewAlertStore()
	}
	return storageredis.NewAlertStore(rdb)
}

// provideNotifier publishes on Redis, or returns nil so alerts log matches
func provideNotifier(rdb *goredis.Client) alerts.Notifier {
	if rdb == nil {
		return nil
	}
	return storageredis.NewNotifier(rdb)
}

// provideJobProviders adds Adzuna when credentials are set and the fixture
// dataset otherwise, or whenever FIXTURES_PATH is set
func provideJobProviders(cfg config.Config, logger *logging.Logger) ([]job.Provider, error) {
	var providers []job.Provider

	if cfg.AdzunaEnabled() {
		client, err := adzuna.NewClient(adzuna.Config{
			AppID:   cfg.Adzuna.AppID,
			AppKey:  cfg.Adzuna.AppKey,
			Country: cfg.Adzuna.Country,
		})
		if err != nil {
			return nil, err
		}
		p, err := adzunaprovider.NewProvider(client)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	path := cfg.FixturesPath
	if path == "" && len(providers) == 0 {
		logger.Info("no Adzuna credentials, serving the builtin sample dataset")
		path = fixture.Builtin
	}
	if path != "" {
		p, err := fixture.Load(path)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	return providers, nil
}

func provideJobService(
	cfg config.Config,
	providers []job.Provider,
	repo job.Repository,
	cache job.SnapshotCache,
	alertSvc *alerts.Service,
	logger *logging.Logger,
) (*job.Service, error) {
	opts := []job.Option{
		job.WithProviders(providers...),
		job.WithRepository(repo),
		job.WithRefreshHooks(alertSvc),
		job.WithQueries(cfg.Queries...),
		job.WithLogger(logger),
	}
	if cache != nil {
		opts = append(opts, job.WithCache(cache))
	}
	return job.NewService(opts...)
}

func provideScheduler(cfg config.Config, jobs *job.Service, logger *logging.Logger) (*scheduler.Scheduler, error) {
	return scheduler.New(jobs, cfg.RefreshInterval, logger)
}

// provideSheetsClient returns nil when no credentials are configured,
// which leaves sheets_export unregistered
func provideSheetsClient(ctx context.Context, cfg config.Config, logger *logging.Logger) tools.SheetsClient {
	if cfg.SheetsCredsPath == "" {
		return nil
	}
	client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.SheetsCredsPath})
	if err != nil {
		logger.Warn("sheets export disabled", "err", fmt.Errorf("sheets client: %w", err))
		return nil
	}
	return newSheetsExporter(client)
}
