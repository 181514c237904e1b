package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/honeycarbs/careerhub/internal/domain"
	"github.com/honeycarbs/careerhub/internal/domain/alerts"
)

var _ alerts.Store = (*AlertStore)(nil)

type AlertStore struct {
	mu     sync.Mutex
	alerts map[uuid.UUID]alerts.Alert
	seen   map[uuid.UUID]map[string]struct{}
}

func NewAlertStore() *AlertStore {
	return &AlertStore{
		alerts: make(map[uuid.UUID]alerts.Alert),
		seen:   make(map[uuid.UUID]map[string]struct{}),
	}
}

func (s *AlertStore) CreateAlert(_ context.Context, a alerts.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts[a.ID] = a
	return nil
}

// ListAlerts returns alerts oldest first
func (s *AlertStore) ListAlerts(_ context.Context, userID string) ([]alerts.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]alerts.Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		if userID == "" || a.UserID == userID {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b alerts.Alert) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return out, nil
}

func (s *AlertStore) DeleteAlert(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.alerts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.alerts, id)
	delete(s.seen, id)
	return nil
}

func (s *AlertStore) MarkSeen(_ context.Context, id uuid.UUID, jobIDs []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.seen[id]
	if !ok {
		set = make(map[string]struct{})
		s.seen[id] = set
	}

	var fresh []string
	for _, jid := range jobIDs {
		if _, dup := set[jid]; dup {
			continue
		}
		set[jid] = struct{}{}
		fresh = append(fresh, jid)
	}
	return fresh, nil
}
