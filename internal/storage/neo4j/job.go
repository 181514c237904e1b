package neo4j

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/careerhub/internal/domain"
	"github.com/honeycarbs/careerhub/internal/domain/job"

	pkgneo4j "github.com/honeycarbs/careerhub/pkg/neo4j"
)

// Ensure JobRepository implements job.Repository
var _ job.Repository = (*JobRepository)(nil)

// JobRepository stores jobs as (:Job)-[:POSTED_BY]->(:Company) with
// (:Job)-[:TAGGED]->(:Tag) edges
type JobRepository struct {
	client *pkgneo4j.Client
}

// NewJobRepository creates a JobRepository with a Neo4j client
func NewJobRepository(client *pkgneo4j.Client) *JobRepository {
	return &JobRepository{
		client: client,
	}
}

// EnsureSchema creates the indexes lookups rely on
func (r *JobRepository) EnsureSchema(ctx context.Context) error {
	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	stmts := []string{
		`CREATE INDEX job_id IF NOT EXISTS FOR (j:Job) ON (j.id)`,
		`CREATE INDEX job_identity IF NOT EXISTS FOR (j:Job) ON (j.source, j.externalId)`,
		`CREATE INDEX job_posted_at IF NOT EXISTS FOR (j:Job) ON (j.postedAt)`,
	}
	for _, stmt := range stmts {
		if _, err := session.Run(ctx, stmt, nil); err != nil {
			return fmt.Errorf("neo4j schema: %w", err)
		}
	}
	return nil
}

// UpsertJobs merges jobs on source + externalId and relinks company and tags
func (r *JobRepository) UpsertJobs(ctx context.Context, jobs []domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		UNWIND $jobs AS job
		MERGE (j:Job {source: job.source, externalId: job.externalId})
		SET j.id = job.id,
		    j.title = job.title,
		    j.description = job.description,
		    j.location = job.location,
		    j.industry = job.industry,
		    j.type = job.type,
		    j.remote = job.remote,
		    j.salaryMin = job.salaryMin,
		    j.salaryMax = job.salaryMax,
		    j.salaryText = job.salaryText,
		    j.tags = job.tags,
		    j.featured = job.featured,
		    j.url = job.url,
		    j.postedAt = datetime({epochMillis: job.postedAt}),
		    j.fetchedAt = datetime({epochMillis: job.fetchedAt})
		WITH j, job
		OPTIONAL MATCH (j)-[old:POSTED_BY|TAGGED]->()
		DELETE old
		WITH DISTINCT j, job
		MERGE (c:Company {id: job.company.id})
		SET c.name = job.company.name
		MERGE (j)-[:POSTED_BY]->(c)
		WITH j, job
		FOREACH (tag IN job.tags |
			MERGE (t:Tag {name: toLower(tag)})
			MERGE (j)-[:TAGGED]->(t)
		)
	`

	jobsData := make([]map[string]any, 0, len(jobs))
	for _, j := range jobs {
		companyID := j.Company.ID
		if companyID == "" {
			companyID = j.Company.Name
		}
		tags := j.Tags
		if tags == nil {
			tags = []string{}
		}

		jobsData = append(jobsData, map[string]any{
			"id":          j.ID.String(),
			"title":       j.Title,
			"company":     map[string]any{"id": companyID, "name": j.Company.Name},
			"description": j.Description,
			"location":    j.Location,
			"industry":    j.Industry,
			"type":        j.Type,
			"remote":      j.Remote,
			"salaryMin":   j.SalaryMin,
			"salaryMax":   j.SalaryMax,
			"salaryText":  j.SalaryText,
			"tags":        tags,
			"featured":    j.Featured,
			"url":         j.URL,
			"source":      j.Source,
			"externalId":  j.ExternalID,
			"postedAt":    j.PostedAt.UnixMilli(),
			"fetchedAt":   j.FetchedAt.UnixMilli(),
		})
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, map[string]any{"jobs": jobsData})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("neo4j upsert jobs: %w", err)
	}
	return nil
}

// ListJobs loads every job, newest first
func (r *JobRepository) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return r.readJobs(ctx, `
		MATCH (j:Job)
		OPTIONAL MATCH (j)-[:POSTED_BY]->(c:Company)
		RETURN j, c
		ORDER BY j.postedAt DESC, j.id ASC
	`, nil)
}

// FindByIDs loads jobs by ID
func (r *JobRepository) FindByIDs(ctx context.Context, ids []domain.JobID) ([]domain.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}

	return r.readJobs(ctx, `
		MATCH (j:Job)
		WHERE j.id IN $ids
		OPTIONAL MATCH (j)-[:POSTED_BY]->(c:Company)
		RETURN j, c
		ORDER BY j.postedAt DESC, j.id ASC
	`, map[string]any{"ids": idStrings})
}

func (r *JobRepository) readJobs(ctx context.Context, query string, params map[string]any) ([]domain.Job, error) {
	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}

		jobs := make([]domain.Job, 0)
		for records.Next(ctx) {
			if j, ok := jobFromRecord(records.Record()); ok {
				jobs = append(jobs, j)
			}
		}
		return jobs, records.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j read jobs: %w", err)
	}
	return out.([]domain.Job), nil
}

func jobFromRecord(record *neo4j.Record) (domain.Job, bool) {
	jobVal, ok := record.Get("j")
	if !ok {
		return domain.Job{}, false
	}
	jobNode, ok := jobVal.(neo4j.Node)
	if !ok {
		return domain.Job{}, false
	}

	props := jobNode.Props
	id, err := uuid.Parse(getStringProp(props, "id"))
	if err != nil {
		return domain.Job{}, false
	}

	var company domain.CompanyRef
	if companyVal, ok := record.Get("c"); ok {
		if companyNode, ok := companyVal.(neo4j.Node); ok {
			company = domain.CompanyRef{
				ID:   getStringProp(companyNode.Props, "id"),
				Name: getStringProp(companyNode.Props, "name"),
			}
		}
	}

	return domain.Job{
		ID:          id,
		Title:       getStringProp(props, "title"),
		Company:     company,
		Description: getStringProp(props, "description"),
		Location:    getStringProp(props, "location"),
		Industry:    getStringProp(props, "industry"),
		Type:        getStringProp(props, "type"),
		Remote:      getBoolProp(props, "remote"),
		SalaryMin:   getFloatProp(props, "salaryMin"),
		SalaryMax:   getFloatProp(props, "salaryMax"),
		SalaryText:  getStringProp(props, "salaryText"),
		Tags:        getStringsProp(props, "tags"),
		Featured:    getBoolProp(props, "featured"),
		URL:         getStringProp(props, "url"),
		Source:      getStringProp(props, "source"),
		ExternalID:  getStringProp(props, "externalId"),
		PostedAt:    getTimeProp(props, "postedAt"),
		FetchedAt:   getTimeProp(props, "fetchedAt"),
	}, true
}
