package adzuna

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSearchJobsIntegration(t *testing.T) {
	appID := os.Getenv("ADZUNA_APP_ID")
	appKey := os.Getenv("ADZUNA_APP_KEY")
	if appID == "" || appKey == "" {
		t.Skip("ADZUNA_APP_ID and ADZUNA_APP_KEY must be set to run this test")
	}

	client, err := NewClient(Config{
		AppID:   appID,
		AppKey:  appKey,
		Country: os.Getenv("ADZUNA_COUNTRY"),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jobs, err := client.SearchJobs(ctx, "software engineer", SearchParams{Location: "Oregon", MaxDays: 30, SortBy: SortDate}, 1)
	require.NoError(t, err)

	for i, job := range jobs {
		if i >= 5 {
			break
		}
		t.Logf("Result %d: %s @ %s (%s, %s)", i+1, job.Title, job.CompanyName, job.Location, job.Category)
	}
	t.Logf("Adzuna search returned %d jobs", len(jobs))
}
