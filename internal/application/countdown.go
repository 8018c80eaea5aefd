package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"ctabot/internal/domain"
	"ctabot/internal/domain/entities"
	"ctabot/internal/ports/output"
)

const stopTimeout = 5 * time.Second

// CountdownTracker runs one goroutine per pending alert that keeps the alert's
// notification showing the time left. Goroutines are keyed by notification.
type CountdownTracker struct {
	ctx       context.Context
	messenger output.Messenger
	interval  time.Duration
	now       func() time.Time
	logger    *zap.Logger

	mu      sync.Mutex
	runners map[entities.MessageRef]*countdownRunner
}

type countdownRunner struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewCountdownTracker creates a tracker whose goroutines end when ctx is done.
func NewCountdownTracker(ctx context.Context, messenger output.Messenger, interval time.Duration, logger *zap.Logger) *CountdownTracker {
	return &CountdownTracker{
		ctx:       ctx,
		messenger: messenger,
		interval:  interval,
		now:       time.Now,
		logger:    logger,
		runners:   make(map[entities.MessageRef]*countdownRunner),
	}
}

// Start launches the countdown for alert, replacing any countdown already bound
// to the same notification.
func (t *CountdownTracker) Start(alert entities.Alert, triggerAt, massingAt time.Time) {
	ref := alert.Notification
	t.Stop(ref)

	ctx, cancel := context.WithCancel(t.ctx)
	runner := &countdownRunner{cancel: cancel, done: make(chan struct{})}

	t.mu.Lock()
	t.runners[ref] = runner
	t.mu.Unlock()

	go func() {
		defer close(runner.done)
		defer t.forget(ref, runner)
		t.run(ctx, alert, triggerAt, massingAt)
	}()
}

// Stop cancels the countdown bound to ref and waits for it to exit.
func (t *CountdownTracker) Stop(ref entities.MessageRef) {
	t.mu.Lock()
	runner, ok := t.runners[ref]
	if ok {
		delete(t.runners, ref)
	}
	t.mu.Unlock()

	if !ok {
		return
	}
	runner.cancel()
	select {
	case <-runner.done:
	case <-time.After(stopTimeout):
		t.logger.Warn("timeout stopping countdown", zap.String("message_id", ref.MessageID))
	}
}

func (t *CountdownTracker) StopAll() {
	t.mu.Lock()
	refs := make([]entities.MessageRef, 0, len(t.runners))
	for ref := range t.runners {
		refs = append(refs, ref)
	}
	t.mu.Unlock()

	for _, ref := range refs {
		t.Stop(ref)
	}
}

// Active reports whether a countdown is running for ref.
func (t *CountdownTracker) Active(ref entities.MessageRef) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.runners[ref]
	return ok
}

func (t *CountdownTracker) forget(ref entities.MessageRef, runner *countdownRunner) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.runners[ref] == runner {
		delete(t.runners, ref)
	}
}

func (t *CountdownTracker) run(ctx context.Context, alert entities.Alert, triggerAt, massingAt time.Time) {
	ref := alert.Notification
	for {
		now := t.now()
		if !now.Before(triggerAt) {
			return
		}
		n := entities.Notification{
			Kind:      entities.NotificationCountdown,
			Alert:     alert,
			TriggerAt: triggerAt,
			MassingAt: massingAt,
			TriggerIn: triggerAt.Sub(now).Truncate(time.Second),
			MassingIn: massingAt.Sub(now).Truncate(time.Second),
		}
		err := t.messenger.Edit(ctx, ref, n)
		switch {
		case errors.Is(err, domain.ErrNotificationNotFound):
			t.logger.Info("countdown notification deleted, stopping", zap.String("message_id", ref.MessageID))
			return
		case err != nil && ctx.Err() != nil:
			return
		case err != nil:
			t.logger.Warn("countdown edit failed", zap.String("message_id", ref.MessageID), zap.Error(err))
		}
		if !sleep(ctx, t.interval) {
			return
		}
	}
}

// sleep waits for d or until ctx is done, reporting whether the full wait elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
