package output

import (
	"context"

	"ctabot/internal/domain/entities"
)

// AlertRepository persists the whole pending-alert collection at once.
type AlertRepository interface {
	// Load returns the stored alerts; an absent store yields an empty slice.
	// Unreadable data is reported as domain.ErrCorruptStore.
	Load(ctx context.Context) ([]entities.Alert, error)
	// Save replaces the stored collection with alerts.
	Save(ctx context.Context, alerts []entities.Alert) error
}
