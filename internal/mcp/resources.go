package mcp

import (
	"github.com/honeycarbs/careerhub/internal/domain/alerts"
	"github.com/honeycarbs/careerhub/internal/domain/filters"
	"github.com/honeycarbs/careerhub/internal/domain/job"
	"github.com/honeycarbs/careerhub/internal/mcp/tools"
	"github.com/honeycarbs/careerhub/internal/scheduler"
	pkgneo4j "github.com/honeycarbs/careerhub/pkg/neo4j"
)

// Resources holds the services the transports expose
type Resources struct {
	Jobs      *job.Service
	Filters   *filters.Service
	Alerts    *alerts.Service
	Scheduler *scheduler.Scheduler

	// Optional; nil when not configured
	Sheets tools.SheetsClient
	Neo4j  *pkgneo4j.Client
}

func newResources(
	jobs *job.Service,
	filterSvc *filters.Service,
	alertSvc *alerts.Service,
	sched *scheduler.Scheduler,
	sheets tools.SheetsClient,
	neo4jClient *pkgneo4j.Client,
) *Resources {
	return &Resources{
		Jobs:      jobs,
		Filters:   filterSvc,
		Alerts:    alertSvc,
		Scheduler: sched,
		Sheets:    sheets,
		Neo4j:     neo4jClient,
	}
}
