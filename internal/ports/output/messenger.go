package output

import (
	"context"

	"ctabot/internal/domain/entities"
)

// Messenger is the chat platform as seen by the alert subsystem.
type Messenger interface {
	Send(ctx context.Context, channelID string, n entities.Notification) (entities.MessageRef, error)
	// Edit rewrites a notification in place. It returns domain.ErrNotificationNotFound
	// when the message was deleted.
	Edit(ctx context.Context, ref entities.MessageRef, n entities.Notification) error
	// Delete removes a notification. A message that is already gone is not an error.
	Delete(ctx context.Context, ref entities.MessageRef) error
	// ResolveRole checks that roleID exists in the guild owning channelID.
	// It returns domain.ErrChannelNotFound or domain.ErrRoleNotFound.
	ResolveRole(ctx context.Context, channelID, roleID string) error
}
