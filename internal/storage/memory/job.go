// Package memory holds process-local stores used when no external backend
// is configured, and in tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/honeycarbs/careerhub/internal/domain"
	"github.com/honeycarbs/careerhub/internal/domain/job"
)

var _ job.Repository = (*JobRepository)(nil)

// JobRepository keeps jobs keyed by Source + ExternalID
type JobRepository struct {
	mu   sync.RWMutex
	jobs map[string]domain.Job
}

func NewJobRepository() *JobRepository {
	return &JobRepository{jobs: make(map[string]domain.Job)}
}

func (r *JobRepository) UpsertJobs(_ context.Context, jobs []domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, j := range jobs {
		r.jobs[j.Source+"\x00"+j.ExternalID] = cloneJob(j)
	}
	return nil
}

func (r *JobRepository) ListJobs(_ context.Context) ([]domain.Job, error) {
	r.mu.RLock()
	out := make([]domain.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, cloneJob(j))
	}
	r.mu.RUnlock()

	SortNewestFirst(out)
	return out, nil
}

func (r *JobRepository) FindByIDs(_ context.Context, ids []domain.JobID) ([]domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Job, 0, len(ids))
	for _, j := range r.jobs {
		if slices.Contains(ids, j.ID) {
			out = append(out, cloneJob(j))
		}
	}
	SortNewestFirst(out)
	return out, nil
}

// SortNewestFirst orders jobs the way every repository lists them
func SortNewestFirst(jobs []domain.Job) {
	slices.SortFunc(jobs, func(a, b domain.Job) int {
		if c := b.PostedAt.Compare(a.PostedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
}

func cloneJob(j domain.Job) domain.Job {
	j.Tags = slices.Clone(j.Tags)
	return j
}
