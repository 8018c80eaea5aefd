package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ctabot/internal/domain"
	"ctabot/internal/domain/entities"
	"ctabot/pkg/tz"
)

func newTestDispatcher(t *testing.T, messenger *MockMessenger, store *AlertStore) *Dispatcher {
	t.Helper()
	tracker := newTestTracker(t, messenger, time.Hour)
	d := NewDispatcher(store, messenger, tracker, DispatchConfig{
		ChannelID:   testBroadcastChanID,
		Interval:    time.Hour,
		RetryWindow: time.Hour,
		Location:    tz.Vietnam,
	}, zap.NewNop())
	d.now = func() time.Time { return testNow }
	return d
}

func TestDispatcher_FiresDueAlert(t *testing.T) {
	due := testAlert("1", "17:59:00 04-03-2099", "18:30:00 04-03-2099")
	store, repo, fs := newTestStore(t, due)
	messenger := new(MockMessenger)
	d := newTestDispatcher(t, messenger, store)

	messenger.On("ResolveRole", mock.Anything, testBroadcastChanID, testRoleID).Return(nil).Once()
	messenger.On("Send", mock.Anything, testBroadcastChanID, mock.MatchedBy(func(n entities.Notification) bool {
		return n.Kind == entities.NotificationFired && n.Alert == due && n.MassingIn == 30*time.Minute
	})).Return(entities.MessageRef{ChannelID: testBroadcastChanID, MessageID: "900"}, nil).Once()

	fired := d.RunOnce(context.Background())

	assert.Equal(t, 1, fired)
	messenger.AssertNumberOfCalls(t, "Send", 1)
	assert.Zero(t, store.Len())
	assert.Empty(t, reload(t, fs))
	assert.Equal(t, 1, repo.saveCount())
}

func TestDispatcher_LeavesFutureAlert(t *testing.T) {
	pending := testAlert("1", "18:00:01 04-03-2099", "18:30:00 04-03-2099")
	store, repo, fs := newTestStore(t, pending)
	messenger := new(MockMessenger)
	d := newTestDispatcher(t, messenger, store)

	fired := d.RunOnce(context.Background())

	assert.Zero(t, fired)
	messenger.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []entities.Alert{pending}, store.Snapshot())
	assert.Equal(t, []entities.Alert{pending}, reload(t, fs))
	assert.Zero(t, repo.saveCount())
}

func TestDispatcher_TriggerExactlyNowIsDue(t *testing.T) {
	due := testAlert("1", "18:00 04-03-2099", "18:30 04-03-2099")
	store, _, _ := newTestStore(t, due)
	messenger := new(MockMessenger)
	d := newTestDispatcher(t, messenger, store)

	messenger.On("ResolveRole", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	messenger.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(entities.MessageRef{}, nil)

	assert.Equal(t, 1, d.RunOnce(context.Background()))
	assert.Zero(t, store.Len())
}

func TestDispatcher_FiresAlertWithoutSeconds(t *testing.T) {
	legacy := testAlert("1", "17:45 04-03-2099", "18:15 04-03-2099")
	store, _, _ := newTestStore(t, legacy)
	messenger := new(MockMessenger)
	d := newTestDispatcher(t, messenger, store)

	messenger.On("ResolveRole", mock.Anything, testBroadcastChanID, testRoleID).Return(nil)
	messenger.On("Send", mock.Anything, testBroadcastChanID, mock.MatchedBy(func(n entities.Notification) bool {
		return n.MassingIn == 15*time.Minute
	})).Return(entities.MessageRef{}, nil).Once()

	assert.Equal(t, 1, d.RunOnce(context.Background()))
	assert.Zero(t, store.Len())
}

func TestDispatcher_MixedBatchPersistsOnce(t *testing.T) {
	due1 := testAlert("1", "17:00 04-03-2099", "17:30 04-03-2099")
	pending := testAlert("2", "19:00 04-03-2099", "19:30 04-03-2099")
	due2 := testAlert("3", "17:30:00 04-03-2099", "18:30:00 04-03-2099")
	store, repo, fs := newTestStore(t, due1, pending, due2)
	messenger := new(MockMessenger)
	d := newTestDispatcher(t, messenger, store)

	messenger.On("ResolveRole", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	messenger.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(entities.MessageRef{}, nil)

	assert.Equal(t, 2, d.RunOnce(context.Background()))
	messenger.AssertNumberOfCalls(t, "Send", 2)
	assert.Equal(t, 1, repo.saveCount())
	assert.Equal(t, []entities.Alert{pending}, reload(t, fs))
}

func TestDispatcher_RetriesUnresolvedRoleWithinWindow(t *testing.T) {
	due := testAlert("1", "17:30 04-03-2099", "18:30 04-03-2099")
	store, repo, _ := newTestStore(t, due)
	messenger := new(MockMessenger)
	d := newTestDispatcher(t, messenger, store)

	messenger.On("ResolveRole", mock.Anything, testBroadcastChanID, testRoleID).Return(domain.ErrRoleNotFound)

	assert.Zero(t, d.RunOnce(context.Background()))
	messenger.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1, store.Len())
	assert.Zero(t, repo.saveCount())
}

func TestDispatcher_DropsFailingAlertPastWindow(t *testing.T) {
	stale := testAlert("1", "16:00 04-03-2099", "16:30 04-03-2099")
	store, _, fs := newTestStore(t, stale)
	messenger := new(MockMessenger)
	d := newTestDispatcher(t, messenger, store)

	messenger.On("ResolveRole", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	messenger.On("Send", mock.Anything, mock.Anything, mock.Anything).
		Return(entities.MessageRef{}, errors.New("missing access")).Once()

	assert.Zero(t, d.RunOnce(context.Background()))
	assert.Zero(t, store.Len())
	assert.Empty(t, reload(t, fs))
}

func TestDispatcher_DropsUnparseableAlert(t *testing.T) {
	broken := testAlert("1", "tomorrow evening", "18:30 04-03-2099")
	store, _, _ := newTestStore(t, broken)
	messenger := new(MockMessenger)
	d := newTestDispatcher(t, messenger, store)

	assert.Zero(t, d.RunOnce(context.Background()))
	messenger.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	assert.Zero(t, store.Len())
}

func TestDispatcher_StopsCountdownOnFire(t *testing.T) {
	due := testAlert("1", "17:59 04-03-2099", "18:30 04-03-2099")
	store, _, _ := newTestStore(t, due)
	messenger := new(MockMessenger)
	d := newTestDispatcher(t, messenger, store)

	messenger.On("Edit", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	messenger.On("ResolveRole", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	messenger.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(entities.MessageRef{}, nil)

	// Countdown started with a trigger the tracker still sees as future.
	d.countdowns.Start(due, testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	require.True(t, d.countdowns.Active(due.Notification))

	d.RunOnce(context.Background())
	assert.False(t, d.countdowns.Active(due.Notification))
}

func TestDispatcher_RunStopsWithContext(t *testing.T) {
	store, _, _ := newTestStore(t)
	d := newTestDispatcher(t, new(MockMessenger), store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatch loop did not stop")
	}
}
