// Package alerts evaluates saved searches against each refreshed collection
// and notifies users about jobs they have not seen yet.
package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/careerhub/internal/domain"
	"github.com/honeycarbs/careerhub/internal/domain/job"
	"github.com/honeycarbs/careerhub/internal/domain/jobquery"
	"github.com/honeycarbs/careerhub/pkg/logging"
)

// Alert is a saved search evaluated after every refresh
type Alert struct {
	ID        uuid.UUID           `json:"id"`
	UserID    string              `json:"userId"`
	Name      string              `json:"name"`
	Filters   domain.SavedFilters `json:"filters"`
	CreatedAt time.Time           `json:"createdAt"`
}

// Match is one notification: the listings of Alert first seen in this evaluation
type Match struct {
	AlertID uuid.UUID           `json:"alertId"`
	UserID  string              `json:"userId"`
	Name    string              `json:"name"`
	Jobs    []domain.JobPosting `json:"jobs"`
	At      time.Time           `json:"at"`
}

// Store persists alerts and the job IDs each alert has already reported
type Store interface {
	CreateAlert(ctx context.Context, a Alert) error
	// ListAlerts returns the alerts of userID, or every alert for ""
	ListAlerts(ctx context.Context, userID string) ([]Alert, error)
	// DeleteAlert returns domain.ErrNotFound for unknown ids
	DeleteAlert(ctx context.Context, id uuid.UUID) error
	// MarkSeen records ids as seen and returns the ones that were not seen before
	MarkSeen(ctx context.Context, id uuid.UUID, jobIDs []string) ([]string, error)
}

// Notifier delivers matches to users
type Notifier interface {
	NotifyMatches(ctx context.Context, m Match) error
}

var _ job.RefreshHook = (*Service)(nil)

type Service struct {
	store    Store
	notifier Notifier
	clock    func() time.Time
	logger   *logging.Logger
}

func NewService(store Store, notifier Notifier, logger *logging.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("alerts.Service: store is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.Named("alerts")
	if notifier == nil {
		notifier = LogNotifier{logger: logger}
	}
	return &Service{
		store:    store,
		notifier: notifier,
		clock:    time.Now,
		logger:   logger,
	}, nil
}

// Create validates and stores a new alert
func (s *Service) Create(ctx context.Context, userID, name string, f domain.SavedFilters) (Alert, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Alert{}, &domain.ValidationError{Msg: "user id is required"}
	}
	if err := f.Validate(); err != nil {
		return Alert{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName(f)
	}

	a := Alert{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Filters:   f,
		CreatedAt: s.clock(),
	}
	if err := s.store.CreateAlert(ctx, a); err != nil {
		return Alert{}, fmt.Errorf("create alert: %w", err)
	}
	s.logger.Info("alert created", "alert_id", a.ID, "user_id", userID)
	return a, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Alert, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, &domain.ValidationError{Msg: "user id is required"}
	}
	list, err := s.store.ListAlerts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return list, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteAlert(ctx, id)
}

// Evaluate runs every alert over postings and notifies the new matches.
// It returns the number of notifications sent.
func (s *Service) Evaluate(ctx context.Context, postings []domain.JobPosting) (int, error) {
	list, err := s.store.ListAlerts(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("list alerts: %w", err)
	}

	sent := 0
	for _, a := range list {
		matches := matching(postings, a.Filters)
		if len(matches) == 0 {
			continue
		}

		ids := make([]string, len(matches))
		byID := make(map[string]domain.JobPosting, len(matches))
		for i, p := range matches {
			ids[i] = p.ID
			byID[p.ID] = p
		}

		fresh, err := s.store.MarkSeen(ctx, a.ID, ids)
		if err != nil {
			s.logger.Warn("mark seen failed", "alert_id", a.ID, "err", err)
			continue
		}
		if len(fresh) == 0 {
			continue
		}

		m := Match{AlertID: a.ID, UserID: a.UserID, Name: a.Name, At: s.clock()}
		for _, id := range fresh {
			m.Jobs = append(m.Jobs, byID[id])
		}
		if err := s.notifier.NotifyMatches(ctx, m); err != nil {
			s.logger.Warn("notify failed", "alert_id", a.ID, "err", err)
			continue
		}
		sent++
	}
	return sent, nil
}

// OnRefresh evaluates alerts against the freshly published snapshot
func (s *Service) OnRefresh(ctx context.Context, snap job.Snapshot) {
	sent, err := s.Evaluate(ctx, snap.Postings(s.clock()))
	if err != nil {
		s.logger.Error("alert evaluation failed", "err", err)
		return
	}
	if sent > 0 {
		s.logger.Info("alerts evaluated", "notified", sent)
	}
}

// matching collects every page of the alert's query, in its sort order
func matching(postings []domain.JobPosting, f domain.SavedFilters) []domain.JobPosting {
	spec := f.Spec(1, len(postings))
	if spec.PageSize < 1 {
		return nil
	}
	return jobquery.Query(postings, spec).Results
}

func defaultName(f domain.SavedFilters) string {
	if t := strings.TrimSpace(f.SearchTerm); t != "" {
		return t
	}
	return "All jobs"
}

// LogNotifier writes matches to the log
type LogNotifier struct {
	logger *logging.Logger
}

func NewLogNotifier(logger *logging.Logger) LogNotifier {
	return LogNotifier{logger: logger}
}

func (n LogNotifier) NotifyMatches(_ context.Context, m Match) error {
	n.logger.Info("new alert matches",
		"alert_id", m.AlertID,
		"user_id", m.UserID,
		"name", m.Name,
		"count", len(m.Jobs),
	)
	return nil
}
