package job

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/careerhub/internal/domain"
	"github.com/honeycarbs/careerhub/internal/domain/jobquery"
	"github.com/honeycarbs/careerhub/pkg/logging"
)

// Snapshot is an immutable view of the collection at TakenAt
type Snapshot struct {
	Jobs    []domain.Job
	TakenAt time.Time
}

// Postings projects the snapshot as seen at now
func (s Snapshot) Postings(now time.Time) []domain.JobPosting {
	return domain.Postings(s.Jobs, now)
}

// RefreshResult summarizes one refresh
type RefreshResult struct {
	Fetched     int       `json:"fetched"`
	Stored      int       `json:"stored"`
	Sources     int       `json:"sources"`
	Failed      []string  `json:"failed,omitempty"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// Option configures Service
type Option func(*config)

type config struct {
	providers []Provider
	repo      Repository
	cache     SnapshotCache
	hooks     []RefreshHook
	queries   []SearchQuery
	clock     func() time.Time
	logger    *logging.Logger
}

// WithProviders sets job providers
func WithProviders(providers ...Provider) Option {
	return func(c *config) {
		c.providers = providers
	}
}

// WithRepository sets the repository
func WithRepository(repo Repository) Option {
	return func(c *config) {
		c.repo = repo
	}
}

// WithCache sets the snapshot cache used for warm starts
func WithCache(cache SnapshotCache) Option {
	return func(c *config) {
		c.cache = cache
	}
}

// WithRefreshHooks adds hooks run after each refresh
func WithRefreshHooks(hooks ...RefreshHook) Option {
	return func(c *config) {
		c.hooks = append(c.hooks, hooks...)
	}
}

// WithQueries sets the searches issued to every provider
func WithQueries(queries ...SearchQuery) Option {
	return func(c *config) {
		c.queries = queries
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Service owns the authoritative job collection and answers queries over it
type Service struct {
	providers []Provider
	repo      Repository
	cache     SnapshotCache
	hooks     []RefreshHook
	queries   []SearchQuery
	clock     func() time.Time
	logger    *logging.Logger

	// refreshMu serializes Load and Refresh
	refreshMu sync.Mutex

	mu     sync.RWMutex
	snap   Snapshot
	loaded bool
}

// NewService builds Service from options
func NewService(opts ...Option) (*Service, error) {
	cfg := &config{
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.repo == nil {
		return nil, fmt.Errorf("job.Service: repository is required")
	}
	if len(cfg.queries) == 0 {
		cfg.queries = []SearchQuery{{Query: "software engineer"}}
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}

	return &Service{
		providers: cfg.providers,
		repo:      cfg.repo,
		cache:     cfg.cache,
		hooks:     cfg.hooks,
		queries:   cfg.queries,
		clock:     cfg.clock,
		logger:    cfg.logger.Named("jobs"),
	}, nil
}

// Load publishes the cached snapshot, falling back to the repository and
// then to a provider refresh when both are empty. It is a no-op once loaded.
func (s *Service) Load(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	if s.isLoaded() {
		return nil
	}

	if s.cache != nil {
		jobs, ok, err := s.cache.LoadSnapshot(ctx)
		switch {
		case err != nil:
			s.logger.Warn("snapshot cache unavailable", "err", err)
		case ok:
			s.publish(jobs)
			s.logger.Info("loaded jobs from snapshot cache", "count", len(jobs))
			return nil
		}
	}

	jobs, err := s.repo.ListJobs(ctx)
	if err != nil {
		return fmt.Errorf("job.Service: list jobs: %w", err)
	}
	if len(jobs) > 0 || len(s.providers) == 0 {
		s.publish(jobs)
		s.saveCache(ctx, jobs)
		s.logger.Info("loaded jobs from repository", "count", len(jobs))
		return nil
	}

	_, err = s.refreshLocked(ctx)
	return err
}

// Refresh pulls every provider, stores the results and republishes the collection.
// A failing provider is skipped; a failing repository keeps the previous snapshot.
func (s *Service) Refresh(ctx context.Context) (RefreshResult, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	return s.refreshLocked(ctx)
}

func (s *Service) refreshLocked(ctx context.Context) (RefreshResult, error) {
	now := s.clock()
	result := RefreshResult{RefreshedAt: now}

	type key struct {
		source     string
		externalID string
	}
	dedup := make(map[key]domain.Job)
	order := make([]key, 0)

	for _, p := range s.providers {
		contributed := false
		for _, q := range s.queries {
			jobs, err := p.Search(ctx, q.Query, domain.SearchFilters{Location: q.Location})
			if err != nil {
				s.logger.Warn("provider search failed", "provider", p.Name(), "query", q.Query, "err", err)
				if !slices.Contains(result.Failed, p.Name()) {
					result.Failed = append(result.Failed, p.Name())
				}
				continue
			}
			result.Fetched += len(jobs)

			for _, j := range jobs {
				if j.Source == "" || j.ExternalID == "" {
					continue
				}
				k := key{source: j.Source, externalID: j.ExternalID}

				if j.ID == uuid.Nil {
					j.ID = StableID(j.Source, j.ExternalID)
				}
				if j.FetchedAt.IsZero() {
					j.FetchedAt = now
				}

				if _, seen := dedup[k]; !seen {
					order = append(order, k)
				}
				dedup[k] = j
				contributed = true
			}
		}
		if contributed {
			result.Sources++
		}
	}

	fresh := make([]domain.Job, 0, len(order))
	for _, k := range order {
		fresh = append(fresh, dedup[k])
	}

	if len(fresh) > 0 {
		if err := s.repo.UpsertJobs(ctx, fresh); err != nil {
			return result, fmt.Errorf("job.Service: upsert jobs: %w", err)
		}
	}

	all, err := s.repo.ListJobs(ctx)
	if err != nil {
		return result, fmt.Errorf("job.Service: list jobs: %w", err)
	}
	result.Stored = len(all)

	snap := s.publish(all)
	s.saveCache(ctx, all)

	s.logger.Info("job collection refreshed",
		"fetched", result.Fetched,
		"stored", result.Stored,
		"sources", result.Sources,
	)

	for _, h := range s.hooks {
		h.OnRefresh(ctx, snap)
	}

	return result, nil
}

// Snapshot returns the current collection
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Postings returns the current collection as listings, loading it on first use
func (s *Service) Postings(ctx context.Context) ([]domain.JobPosting, error) {
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s.Snapshot().Postings(s.clock()), nil
}

// Query runs spec against the current collection
func (s *Service) Query(ctx context.Context, spec domain.FilterSpec) (domain.QueryResult, error) {
	postings, err := s.Postings(ctx)
	if err != nil {
		return domain.QueryResult{}, err
	}
	return jobquery.Query(postings, spec), nil
}

// Jobs returns full records for ids in the order given, preferring the
// published snapshot. Unknown ids are skipped.
func (s *Service) Jobs(ctx context.Context, ids []domain.JobID) ([]domain.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	index := make(map[domain.JobID]domain.Job)
	for _, j := range s.Snapshot().Jobs {
		index[j.ID] = j
	}

	var missing []domain.JobID
	for _, id := range ids {
		if _, ok := index[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		stored, err := s.repo.FindByIDs(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("job.Service: find jobs: %w", err)
		}
		for _, j := range stored {
			index[j.ID] = j
		}
	}

	out := make([]domain.Job, 0, len(ids))
	for _, id := range ids {
		if j, ok := index[id]; ok {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *Service) isLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Service) publish(jobs []domain.Job) Snapshot {
	snap := Snapshot{Jobs: jobs, TakenAt: s.clock()}

	s.mu.Lock()
	s.snap = snap
	s.loaded = true
	s.mu.Unlock()

	return snap
}

func (s *Service) saveCache(ctx context.Context, jobs []domain.Job) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveSnapshot(ctx, jobs); err != nil {
		s.logger.Warn("failed to save snapshot cache", "err", err)
	}
}

// StableID derives the job ID from its source identity so refreshes keep it
func StableID(source, externalID string) domain.JobID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(source+":"+externalID))
}
