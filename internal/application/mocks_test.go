package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ctabot/internal/domain/entities"
	"ctabot/internal/infrastructure/filestore"
	"ctabot/pkg/tz"
)

const (
	testStorePath       = "zvz_alerts.json"
	testChannelID       = "500000000000000001"
	testBroadcastChanID = "500000000000000002"
	testRoleID          = "600000000000000001"
)

// MockMessenger for testing
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) Send(ctx context.Context, channelID string, n entities.Notification) (entities.MessageRef, error) {
	args := m.Called(ctx, channelID, n)
	return args.Get(0).(entities.MessageRef), args.Error(1)
}

func (m *MockMessenger) Edit(ctx context.Context, ref entities.MessageRef, n entities.Notification) error {
	args := m.Called(ctx, ref, n)
	return args.Error(0)
}

func (m *MockMessenger) Delete(ctx context.Context, ref entities.MessageRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockMessenger) ResolveRole(ctx context.Context, channelID, roleID string) error {
	args := m.Called(ctx, channelID, roleID)
	return args.Error(0)
}

// countingRepo wraps a repository and counts saves; failSave makes every save fail.
type countingRepo struct {
	inner    *filestore.AlertRepository
	mu       sync.Mutex
	saves    int
	failSave bool
}

func (r *countingRepo) Load(ctx context.Context) ([]entities.Alert, error) {
	return r.inner.Load(ctx)
}

func (r *countingRepo) Save(ctx context.Context, alerts []entities.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return errors.New("disk full")
	}
	r.saves++
	return r.inner.Save(ctx, alerts)
}

func (r *countingRepo) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

// testNow is the fixed clock used across the package tests.
var testNow = time.Date(2099, time.March, 4, 18, 0, 0, 0, tz.Vietnam)

func newTestRepo(t *testing.T, seed ...entities.Alert) (*countingRepo, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	repo := &countingRepo{inner: filestore.NewAlertRepository(fs, testStorePath)}
	if len(seed) > 0 {
		require.NoError(t, repo.inner.Save(context.Background(), seed))
	}
	return repo, fs
}

func newTestStore(t *testing.T, seed ...entities.Alert) (*AlertStore, *countingRepo, afero.Fs) {
	t.Helper()
	repo, fs := newTestRepo(t, seed...)
	store, err := NewAlertStore(context.Background(), repo)
	require.NoError(t, err)
	return store, repo, fs
}

func reload(t *testing.T, fs afero.Fs) []entities.Alert {
	t.Helper()
	alerts, err := filestore.NewAlertRepository(fs, testStorePath).Load(context.Background())
	require.NoError(t, err)
	return alerts
}

func testAlert(messageID, triggerTime, massingTime string) entities.Alert {
	return entities.Alert{
		TriggerTime:  triggerTime,
		MassingTime:  massingTime,
		Location:     "Martlock",
		RoleID:       testRoleID,
		Message:      "Bring T8",
		Notification: entities.MessageRef{ChannelID: testChannelID, MessageID: messageID},
	}
}
