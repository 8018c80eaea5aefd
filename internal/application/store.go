package application

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"ctabot/internal/domain"
	"ctabot/internal/domain/entities"
	"ctabot/internal/ports/output"
)

// AlertStore owns the pending alerts. Every mutation is persisted through the
// repository before it returns; a failed save leaves memory unchanged.
type AlertStore struct {
	repo output.AlertRepository

	mu     sync.Mutex
	alerts []entities.Alert
}

// NewAlertStore loads the current contents of repo.
func NewAlertStore(ctx context.Context, repo output.AlertRepository) (*AlertStore, error) {
	alerts, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load alerts: %w", err)
	}
	return &AlertStore{repo: repo, alerts: alerts}, nil
}

// Snapshot returns a copy of the pending alerts in insertion order.
func (s *AlertStore) Snapshot() []entities.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.alerts)
}

func (s *AlertStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.alerts)
}

// Append adds alert and persists the collection.
func (s *AlertStore) Append(ctx context.Context, alert entities.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(alert.Notification) >= 0 {
		return domain.ErrDuplicateAlert
	}
	next := append(slices.Clone(s.alerts), alert)
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("save alerts: %w", err)
	}
	s.alerts = next
	return nil
}

// Remove evicts the alerts bound to refs and persists once. Unknown refs are
// ignored; nothing is written when no alert matched.
func (s *AlertStore) Remove(ctx context.Context, refs ...entities.MessageRef) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := slices.DeleteFunc(slices.Clone(s.alerts), func(a entities.Alert) bool {
		return slices.Contains(refs, a.Notification)
	})
	removed := len(s.alerts) - len(next)
	if removed == 0 {
		return 0, nil
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return 0, fmt.Errorf("save alerts: %w", err)
	}
	s.alerts = next
	return removed, nil
}

func (s *AlertStore) indexOf(ref entities.MessageRef) int {
	return slices.IndexFunc(s.alerts, func(a entities.Alert) bool {
		return a.Notification == ref
	})
}
