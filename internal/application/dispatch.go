package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ctabot/internal/domain/entities"
	"ctabot/internal/ports/output"
	"ctabot/pkg/tz"
)

// DispatchConfig holds the dispatch loop settings.
type DispatchConfig struct {
	ChannelID   string // broadcast channel
	Interval    time.Duration
	RetryWindow time.Duration // how long past its trigger a failing alert is retried
	Location    *time.Location
}

// Dispatcher polls the store and broadcasts alerts whose trigger time has passed.
type Dispatcher struct {
	store      *AlertStore
	messenger  output.Messenger
	countdowns *CountdownTracker
	cfg        DispatchConfig
	now        func() time.Time
	logger     *zap.Logger
}

func NewDispatcher(store *AlertStore, messenger output.Messenger, countdowns *CountdownTracker, cfg DispatchConfig, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		store:      store,
		messenger:  messenger,
		countdowns: countdowns,
		cfg:        cfg,
		now:        time.Now,
		logger:     logger,
	}
}

// Run fires due alerts immediately and then every cfg.Interval until ctx is done.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()
	for {
		d.RunOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce performs a single polling cycle and returns the number of alerts broadcast.
func (d *Dispatcher) RunOnce(ctx context.Context) int {
	now := d.now()
	var evict []entities.MessageRef
	fired := 0

	for _, alert := range d.store.Snapshot() {
		log := d.logger.With(zap.String("message_id", alert.Notification.MessageID), zap.String("location", alert.Location))

		triggerAt, err := tz.ParseAlertTime(alert.TriggerTime, d.cfg.Location)
		if err != nil {
			log.Error("dropping alert with unparseable trigger time", zap.Error(err))
			evict = append(evict, alert.Notification)
			continue
		}
		massingAt, err := tz.ParseAlertTime(alert.MassingTime, d.cfg.Location)
		if err != nil {
			log.Error("dropping alert with unparseable massing time", zap.Error(err))
			evict = append(evict, alert.Notification)
			continue
		}
		if now.Before(triggerAt) {
			continue
		}

		if err := d.broadcast(ctx, alert, triggerAt, massingAt, now); err != nil {
			if now.Sub(triggerAt) < d.cfg.RetryWindow {
				log.Warn("alert broadcast failed, retrying next cycle", zap.Error(err))
				continue
			}
			log.Error("alert broadcast failed past retry window, dropping", zap.Error(err))
		} else {
			fired++
			log.Info("alert broadcast")
		}
		evict = append(evict, alert.Notification)
	}

	if len(evict) == 0 {
		return fired
	}
	for _, ref := range evict {
		d.countdowns.Stop(ref)
	}
	if _, err := d.store.Remove(ctx, evict...); err != nil {
		d.logger.Error("failed to persist alert eviction", zap.Int("count", len(evict)), zap.Error(err))
	}
	return fired
}

func (d *Dispatcher) broadcast(ctx context.Context, alert entities.Alert, triggerAt, massingAt, now time.Time) error {
	if err := d.messenger.ResolveRole(ctx, d.cfg.ChannelID, alert.RoleID); err != nil {
		return err
	}
	_, err := d.messenger.Send(ctx, d.cfg.ChannelID, entities.Notification{
		Kind:      entities.NotificationFired,
		Alert:     alert,
		TriggerAt: triggerAt,
		MassingAt: massingAt,
		TriggerIn: 0,
		MassingIn: massingAt.Sub(now).Truncate(time.Second),
	})
	return err
}
