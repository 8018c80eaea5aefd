package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctabot/internal/domain/entities"
	"ctabot/pkg/tz"
)

func TestPrintAlerts(t *testing.T) {
	now := time.Date(2099, 3, 4, 18, 0, 0, 0, tz.Vietnam)
	alerts := []entities.Alert{
		{TriggerTime: "19:30 04-03-2099", MassingTime: "20:00 04-03-2099", Location: "Thetford", RoleID: "1",
			Notification: entities.MessageRef{ChannelID: "10", MessageID: "20"}},
		{TriggerTime: "17:00:00 04-03-2099", MassingTime: "17:30 04-03-2099", Location: "Lymhurst", RoleID: "1",
			Notification: entities.MessageRef{ChannelID: "10", MessageID: "21"}},
		{TriggerTime: "tomorrow", MassingTime: "later", Location: "Bridgewatch", RoleID: "1",
			Notification: entities.MessageRef{ChannelID: "10", MessageID: "22"}},
	}

	var buf bytes.Buffer
	require.NoError(t, printAlerts(&buf, alerts, tz.Vietnam, now))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ALERT TIME"))
	assert.Contains(t, lines[1], "in 1h30m0s")
	assert.True(t, strings.HasSuffix(lines[2], "due"))
	assert.True(t, strings.HasSuffix(lines[3], "invalid"))
}

func TestPrintAlerts_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printAlerts(&buf, nil, tz.Vietnam, time.Now()))
	assert.Equal(t, "ctabot: no pending alerts\n", buf.String())
}

func TestNewApp_Commands(t *testing.T) {
	app := newApp()
	assert.NotNil(t, app.Command("run"))
	assert.NotNil(t, app.Command("alerts"))
	assert.NotNil(t, app.Command("ls"))
}
