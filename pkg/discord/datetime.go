package discord

import (
	"fmt"
	"strings"
	"time"

	"ctabot/pkg/tz"
)

// FormatCountdown renders a duration as "H:MM:SS", prefixed by the number of
// days when it spans more than one ("2 days, 3:04:05"). Sub-second precision is
// dropped and negative durations render as "0:00:00".
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	days := total / 86400
	h := (total % 86400) / 3600
	m := (total % 3600) / 60
	s := total % 60
	clock := fmt.Sprintf("%d:%02d:%02d", h, m, s)
	switch days {
	case 0:
		return clock
	case 1:
		return "1 day, " + clock
	default:
		return fmt.Sprintf("%d days, %s", days, clock)
	}
}

// DisplayAlertTime renders t with the precision the organizer typed in stored:
// seconds are shown only when the stored text carries them.
func DisplayAlertTime(stored string, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if strings.Count(strings.TrimSpace(stored), ":") == 2 {
		return t.Format(tz.LayoutWithSeconds)
	}
	return t.Format(tz.LayoutMinutes)
}

// ZoneLabel returns the zone name of t, e.g. "UTC+7".
func ZoneLabel(t time.Time) string {
	name, _ := t.Zone()
	return name
}
