package job

import (
	"context"

	"github.com/honeycarbs/careerhub/internal/domain"
)

// Repository persists and loads jobs from storage
type Repository interface {
	// UpsertJobs creates or updates jobs based on Source + ExternalID
	UpsertJobs(ctx context.Context, jobs []domain.Job) error

	// ListJobs loads every stored job, newest first
	ListJobs(ctx context.Context) ([]domain.Job, error)

	// FindByIDs loads full Job records for the given IDs
	FindByIDs(ctx context.Context, ids []domain.JobID) ([]domain.Job, error)
}

// SnapshotCache keeps the last published collection between restarts
type SnapshotCache interface {
	LoadSnapshot(ctx context.Context) ([]domain.Job, bool, error)
	SaveSnapshot(ctx context.Context, jobs []domain.Job) error
}

// RefreshHook is notified after every successful refresh
type RefreshHook interface {
	OnRefresh(ctx context.Context, snap Snapshot)
}
