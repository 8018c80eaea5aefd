package entities

import "time"

// NotificationKind selects how a notification is rendered.
type NotificationKind int

const (
	// NotificationScheduled is the confirmation posted when an alert is created.
	NotificationScheduled NotificationKind = iota
	// NotificationCountdown is the live-edited version of the confirmation.
	NotificationCountdown
	// NotificationFired is the broadcast sent when the trigger time is reached.
	NotificationFired
)

// Notification is what the application asks the messenger to display.
type Notification struct {
	Kind      NotificationKind
	Alert     Alert
	TriggerAt time.Time
	MassingAt time.Time
	// Countdowns are truncated to whole seconds. Zero for NotificationScheduled.
	TriggerIn time.Duration
	MassingIn time.Duration
}
