// Package postgres implements the job repository on PostgreSQL via pgx.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/honeycarbs/careerhub/internal/domain"
	"github.com/honeycarbs/careerhub/internal/domain/job"
)

var _ job.Repository = (*JobRepository)(nil)

var schema = []string{`
CREATE TABLE IF NOT EXISTS jobs (
	id            UUID PRIMARY KEY,
	source        TEXT NOT NULL,
	external_id   TEXT NOT NULL,
	title         TEXT NOT NULL DEFAULT '',
	company_id    TEXT NOT NULL DEFAULT '',
	company_name  TEXT NOT NULL DEFAULT '',
	description   TEXT NOT NULL DEFAULT '',
	location      TEXT NOT NULL DEFAULT '',
	industry      TEXT NOT NULL DEFAULT '',
	job_type      TEXT NOT NULL DEFAULT '',
	remote        BOOLEAN NOT NULL DEFAULT FALSE,
	salary_min    DOUBLE PRECISION NOT NULL DEFAULT 0,
	salary_max    DOUBLE PRECISION NOT NULL DEFAULT 0,
	salary_text   TEXT NOT NULL DEFAULT '',
	tags          TEXT[] NOT NULL DEFAULT '{}',
	featured      BOOLEAN NOT NULL DEFAULT FALSE,
	url           TEXT NOT NULL DEFAULT '',
	posted_at     TIMESTAMPTZ NOT NULL,
	fetched_at    TIMESTAMPTZ NOT NULL,
	UNIQUE (source, external_id)
)`,
	`CREATE INDEX IF NOT EXISTS jobs_posted_at_idx ON jobs (posted_at DESC)`,
}

const selectJobs = `
SELECT id, source, external_id, title, company_id, company_name, description,
       location, industry, job_type, remote, salary_min, salary_max, salary_text,
       tags, featured, url, posted_at, fetched_at
FROM jobs`

const upsertJob = `
INSERT INTO jobs (id, source, external_id, title, company_id, company_name, description,
                  location, industry, job_type, remote, salary_min, salary_max, salary_text,
                  tags, featured, url, posted_at, fetched_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
ON CONFLICT (source, external_id)
DO UPDATE SET title = EXCLUDED.title,
              company_id = EXCLUDED.company_id,
              company_name = EXCLUDED.company_name,
              description = EXCLUDED.description,
              location = EXCLUDED.location,
              industry = EXCLUDED.industry,
              job_type = EXCLUDED.job_type,
              remote = EXCLUDED.remote,
              salary_min = EXCLUDED.salary_min,
              salary_max = EXCLUDED.salary_max,
              salary_text = EXCLUDED.salary_text,
              tags = EXCLUDED.tags,
              featured = EXCLUDED.featured,
              url = EXCLUDED.url,
              posted_at = EXCLUDED.posted_at,
              fetched_at = EXCLUDED.fetched_at`

type jobRow struct {
	ID          uuid.UUID `db:"id"`
	Source      string    `db:"source"`
	ExternalID  string    `db:"external_id"`
	Title       string    `db:"title"`
	CompanyID   string    `db:"company_id"`
	CompanyName string    `db:"company_name"`
	Description string    `db:"description"`
	Location    string    `db:"location"`
	Industry    string    `db:"industry"`
	Type        string    `db:"job_type"`
	Remote      bool      `db:"remote"`
	SalaryMin   float64   `db:"salary_min"`
	SalaryMax   float64   `db:"salary_max"`
	SalaryText  string    `db:"salary_text"`
	Tags        []string  `db:"tags"`
	Featured    bool      `db:"featured"`
	URL         string    `db:"url"`
	PostedAt    time.Time `db:"posted_at"`
	FetchedAt   time.Time `db:"fetched_at"`
}

func (r jobRow) job() domain.Job {
	return domain.Job{
		ID:          r.ID,
		Title:       r.Title,
		Company:     domain.CompanyRef{ID: r.CompanyID, Name: r.CompanyName},
		Description: r.Description,
		Location:    r.Location,
		Industry:    r.Industry,
		Type:        r.Type,
		Remote:      r.Remote,
		SalaryMin:   r.SalaryMin,
		SalaryMax:   r.SalaryMax,
		SalaryText:  r.SalaryText,
		Tags:        r.Tags,
		Featured:    r.Featured,
		URL:         r.URL,
		Source:      r.Source,
		ExternalID:  r.ExternalID,
		PostedAt:    r.PostedAt,
		FetchedAt:   r.FetchedAt,
	}
}

type JobRepository struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{db: db}
}

// EnsureSchema creates the jobs table when missing
func (r *JobRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create jobs schema: %w", err)
		}
	}
	return nil
}

// UpsertJobs inserts or updates jobs keyed on (source, external_id) in one batch
func (r *JobRepository) UpsertJobs(ctx context.Context, jobs []domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, j := range jobs {
		tags := j.Tags
		if tags == nil {
			tags = []string{}
		}
		batch.Queue(upsertJob,
			j.ID, j.Source, j.ExternalID, j.Title, j.Company.ID, j.Company.Name, j.Description,
			j.Location, j.Industry, j.Type, j.Remote, j.SalaryMin, j.SalaryMax, j.SalaryText,
			tags, j.Featured, j.URL, j.PostedAt, j.FetchedAt,
		)
	}

	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert jobs: %w", err)
	}
	return nil
}

// ListJobs loads every job, newest first
func (r *JobRepository) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return r.query(ctx, selectJobs+` ORDER BY posted_at DESC, id ASC`)
}

func (r *JobRepository) FindByIDs(ctx context.Context, ids []domain.JobID) ([]domain.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}
	return r.query(ctx, selectJobs+` WHERE id = ANY($1::uuid[]) ORDER BY posted_at DESC, id ASC`, idStrings)
}

func (r *JobRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[jobRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan jobs: %w", err)
	}

	jobs := make([]domain.Job, len(records))
	for i, rec := range records {
		jobs[i] = rec.job()
	}
	return jobs, nil
}
