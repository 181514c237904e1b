package alerts_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/careerhub/internal/domain"
	"github.com/honeycarbs/careerhub/internal/domain/alerts"
	"github.com/honeycarbs/careerhub/internal/domain/job"
	"github.com/honeycarbs/careerhub/internal/storage/memory"
)

type recordingNotifier struct {
	mu      sync.Mutex
	matches []alerts.Match
	err     error
}

func (n *recordingNotifier) NotifyMatches(_ context.Context, m alerts.Match) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.matches = append(n.matches, m)
	return nil
}

func postings() []domain.JobPosting {
	return []domain.JobPosting{
		{ID: "1", Title: "Senior Go Engineer", Tags: []string{"Senior Level"}, PostedAt: "2 days ago"},
		{ID: "2", Title: "Frontend Developer", Tags: []string{"Mid Level"}, PostedAt: "5 hours ago"},
		{ID: "3", Title: "Go Platform Lead", Tags: []string{"Lead"}, PostedAt: "1 week ago"},
	}
}

func newService(t *testing.T, n alerts.Notifier) *alerts.Service {
	t.Helper()
	svc, err := alerts.NewService(memory.NewAlertStore(), n, nil)
	require.NoError(t, err)
	return svc
}

func TestEvaluateNotifiesOnlyNewMatches(t *testing.T) {
	n := &recordingNotifier{}
	svc := newService(t, n)
	ctx := context.Background()

	f := domain.DefaultSavedFilters()
	f.SearchTerm = "go"
	a, err := svc.Create(ctx, "u1", "", f)
	require.NoError(t, err)
	assert.Equal(t, "go", a.Name)

	sent, err := svc.Evaluate(ctx, postings())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, n.matches, 1)
	assert.Equal(t, a.ID, n.matches[0].AlertID)

	var ids []string
	for _, p := range n.matches[0].Jobs {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"1", "3"}, ids)

	sent, err = svc.Evaluate(ctx, postings())
	require.NoError(t, err)
	assert.Zero(t, sent)

	more := append(postings(), domain.JobPosting{ID: "4", Title: "Go SRE", PostedAt: "just now"})
	sent, err = svc.Evaluate(ctx, more)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, n.matches, 2)
	require.Len(t, n.matches[1].Jobs, 1)
	assert.Equal(t, "4", n.matches[1].Jobs[0].ID)
}

func TestEvaluateNoMatches(t *testing.T) {
	n := &recordingNotifier{}
	svc := newService(t, n)
	ctx := context.Background()

	f := domain.DefaultSavedFilters()
	f.SearchTerm = "rust"
	_, err := svc.Create(ctx, "u1", "rust jobs", f)
	require.NoError(t, err)

	sent, err := svc.Evaluate(ctx, postings())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, n.matches)
}

func TestEvaluateKeepsGoingWhenNotifyFails(t *testing.T) {
	n := &recordingNotifier{err: errors.New("broker down")}
	svc := newService(t, n)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", "all", domain.DefaultSavedFilters())
	require.NoError(t, err)

	sent, err := svc.Evaluate(ctx, postings())
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestOnRefreshUsesSnapshot(t *testing.T) {
	n := &recordingNotifier{}
	svc := newService(t, n)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", "", domain.DefaultSavedFilters())
	require.NoError(t, err)

	snap := job.Snapshot{
		Jobs: []domain.Job{{
			ID:       job.StableID("test", "a"),
			Title:    "Backend Engineer",
			PostedAt: time.Now().Add(-2 * time.Hour),
		}},
		TakenAt: time.Now(),
	}
	svc.OnRefresh(ctx, snap)

	require.Len(t, n.matches, 1)
	assert.Equal(t, "All jobs", n.matches[0].Name)
	assert.Equal(t, "2 hours ago", n.matches[0].Jobs[0].PostedAt)
}

func TestCreateListDelete(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	a, err := svc.Create(ctx, "u1", "first", domain.DefaultSavedFilters())
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", "other", domain.DefaultSavedFilters())
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, uuid.New()), domain.ErrNotFound)

	list, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateValidates(t *testing.T) {
	svc := newService(t, nil)
	var vErr *domain.ValidationError

	_, err := svc.Create(context.Background(), "", "x", domain.DefaultSavedFilters())
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Create(context.Background(), "u1", "x", domain.SavedFilters{DatePosted: "yesterday"})
	assert.ErrorAs(t, err, &vErr)
}
