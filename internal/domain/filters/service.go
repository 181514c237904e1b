// Package filters persists each user's filter state between visits.
package filters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/honeycarbs/careerhub/internal/domain"
	"github.com/honeycarbs/careerhub/pkg/logging"
)

// Store is a key-value medium for SavedFilters. Implementations must return
// domain.ErrNotFound for unknown users and must round-trip every field.
type Store interface {
	SaveFilters(ctx context.Context, userID string, f domain.SavedFilters) error
	LoadFilters(ctx context.Context, userID string) (domain.SavedFilters, error)
	DeleteFilters(ctx context.Context, userID string) error
}

type Service struct {
	store  Store
	logger *logging.Logger
}

func NewService(store Store, logger *logging.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("filters.Service: store is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{store: store, logger: logger.Named("filters")}, nil
}

// Save validates and stores f for userID
func (s *Service) Save(ctx context.Context, userID string, f domain.SavedFilters) error {
	if err := validUser(userID); err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		return err
	}
	if f.JobTypes == nil {
		f.JobTypes = []string{}
	}
	if f.ExperienceLevels == nil {
		f.ExperienceLevels = []string{}
	}

	if err := s.store.SaveFilters(ctx, userID, f); err != nil {
		return fmt.Errorf("save filters: %w", err)
	}
	s.logger.Debug("filters saved", "user_id", userID)
	return nil
}

// Load returns the stored filters, or domain.ErrNotFound
func (s *Service) Load(ctx context.Context, userID string) (domain.SavedFilters, error) {
	if err := validUser(userID); err != nil {
		return domain.SavedFilters{}, err
	}
	f, err := s.store.LoadFilters(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.SavedFilters{}, err
		}
		return domain.SavedFilters{}, fmt.Errorf("load filters: %w", err)
	}
	return f, nil
}

// LoadOrDefault is Load with a fresh-session fallback
func (s *Service) LoadOrDefault(ctx context.Context, userID string) (domain.SavedFilters, error) {
	f, err := s.Load(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultSavedFilters(), nil
	}
	return f, err
}

// Reset forgets the stored filters
func (s *Service) Reset(ctx context.Context, userID string) error {
	if err := validUser(userID); err != nil {
		return err
	}
	if err := s.store.DeleteFilters(ctx, userID); err != nil {
		return fmt.Errorf("reset filters: %w", err)
	}
	return nil
}

func validUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return &domain.ValidationError{Msg: "user id is required"}
	}
	return nil
}
