package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/honeycarbs/careerhub/internal/domain"
	"github.com/honeycarbs/careerhub/internal/domain/filters"
)

var _ filters.Store = (*FilterStore)(nil)

// FilterStore keeps each user's filters as a JSON document, like browser storage
type FilterStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewFilterStore() *FilterStore {
	return &FilterStore{docs: make(map[string][]byte)}
}

func (s *FilterStore) SaveFilters(_ context.Context, userID string, f domain.SavedFilters) error {
	doc, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode filters: %w", err)
	}

	s.mu.Lock()
	s.docs[userID] = doc
	s.mu.Unlock()
	return nil
}

func (s *FilterStore) LoadFilters(_ context.Context, userID string) (domain.SavedFilters, error) {
	s.mu.RLock()
	doc, ok := s.docs[userID]
	s.mu.RUnlock()
	if !ok {
		return domain.SavedFilters{}, domain.ErrNotFound
	}

	var f domain.SavedFilters
	if err := json.Unmarshal(doc, &f); err != nil {
		return domain.SavedFilters{}, fmt.Errorf("decode filters: %w", err)
	}
	return f, nil
}

func (s *FilterStore) DeleteFilters(_ context.Context, userID string) error {
	s.mu.Lock()
	delete(s.docs, userID)
	s.mu.Unlock()
	return nil
}
