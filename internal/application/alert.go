package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"ctabot/internal/domain"
	"ctabot/internal/domain/entities"
	"ctabot/internal/ports/input"
	"ctabot/internal/ports/output"
	"ctabot/pkg/tz"
)

var _ input.AlertUseCase = (*AlertService)(nil)

type AlertService struct {
	store      *AlertStore
	messenger  output.Messenger
	countdowns *CountdownTracker
	loc        *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

func NewAlertService(
	store *AlertStore,
	messenger output.Messenger,
	countdowns *CountdownTracker,
	loc *time.Location,
	logger *zap.Logger,
) *AlertService {
	return &AlertService{
		store:      store,
		messenger:  messenger,
		countdowns: countdowns,
		loc:        loc,
		now:        time.Now,
		logger:     logger,
	}
}

// Schedule validates req, posts the confirmation notification, persists the
// alert and starts its countdown.
func (s *AlertService) Schedule(ctx context.Context, req input.ScheduleRequest) (*entities.Alert, error) {
	triggerAt, err := tz.ParseAlertTime(req.TriggerTime, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTimeFormat, err)
	}
	massingAt, err := tz.ParseAlertTime(req.MassingTime, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTimeFormat, err)
	}
	if !triggerAt.After(s.now()) {
		return nil, domain.ErrAlertInThePast
	}

	alert := entities.Alert{
		TriggerTime: strings.TrimSpace(req.TriggerTime),
		MassingTime: strings.TrimSpace(req.MassingTime),
		Location:    req.Location,
		RoleID:      req.RoleID,
		Message:     req.Message,
		Link:        strings.TrimSpace(req.Link),
	}
	ref, err := s.messenger.Send(ctx, req.ChannelID, entities.Notification{
		Kind:      entities.NotificationScheduled,
		Alert:     alert,
		TriggerAt: triggerAt,
		MassingAt: massingAt,
	})
	if err != nil {
		return nil, fmt.Errorf("send notification: %w", err)
	}
	alert.Notification = ref

	if err := s.store.Append(ctx, alert); err != nil {
		s.discardNotification(ctx, ref, err)
		return nil, err
	}
	s.countdowns.Start(alert, triggerAt, massingAt)
	s.logger.Info("cta alert scheduled",
		zap.String("message_id", ref.MessageID),
		zap.Time("trigger_at", triggerAt),
		zap.String("location", alert.Location))
	return &alert, nil
}

// discardNotification removes a notification whose alert could not be stored.
// A duplicate ref belongs to a stored alert, so its message is kept.
func (s *AlertService) discardNotification(ctx context.Context, ref entities.MessageRef, cause error) {
	log := s.logger.With(zap.String("channel_id", ref.ChannelID), zap.String("message_id", ref.MessageID))
	if errors.Is(cause, domain.ErrDuplicateAlert) {
		log.Warn("notification already bound to an alert, keeping it", zap.Error(cause))
		return
	}
	if err := s.messenger.Delete(ctx, ref); err != nil {
		log.Warn("orphaned cta notification left in channel", zap.Error(err))
	}
}

func (s *AlertService) PendingAlerts() []entities.Alert {
	return s.store.Snapshot()
}

// ResumeCountdowns restarts the countdowns of alerts loaded from the store and
// returns how many were started. Alerts already due are left to the dispatcher.
func (s *AlertService) ResumeCountdowns() int {
	now := s.now()
	started := 0
	for _, alert := range s.store.Snapshot() {
		triggerAt, err := tz.ParseAlertTime(alert.TriggerTime, s.loc)
		if err != nil {
			continue
		}
		massingAt, err := tz.ParseAlertTime(alert.MassingTime, s.loc)
		if err != nil || !now.Before(triggerAt) {
			continue
		}
		s.countdowns.Start(alert, triggerAt, massingAt)
		started++
	}
	return started
}
