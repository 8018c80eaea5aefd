package input

import (
	"context"

	"ctabot/internal/domain/entities"
)

// ScheduleRequest carries the raw fields of a /set cta command.
type ScheduleRequest struct {
	ChannelID   string
	TriggerTime string
	MassingTime string
	Location    string
	RoleID      string
	Message     string
	Link        string
}

type AlertUseCase interface {
	Schedule(ctx context.Context, req ScheduleRequest) (*entities.Alert, error)
	PendingAlerts() []entities.Alert
	ResumeCountdowns() int
}
