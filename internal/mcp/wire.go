//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/careerhub/internal/config"
	"github.com/honeycarbs/careerhub/internal/domain/alerts"
	"github.com/honeycarbs/careerhub/internal/domain/filters"
	"github.com/honeycarbs/careerhub/pkg/logging"
)

// InitializeResources connects the configured infrastructure and builds the
// services. The returned cleanup closes every connection.
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, func(), error) {
	wire.Build(
		// Infrastructure
		provideRedis,
		provideNeo4jClient,
		providePostgresPool,

		// Storage
		provideJobRepository,
		provideSnapshotCache,
		provideFilterStore,
		provideAlertStore,
		provideNotifier,

		// Services
		filters.NewService,
		alerts.NewService,
		provideJobProviders,
		provideJobService,
		provideScheduler,

		// Tool resources
		provideSheetsClient,
		newResources,
	)

	return nil, nil, nil
}
