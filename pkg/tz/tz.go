package tz

import (
	"fmt"
	"strings"
	"time"
)

// Vietnam is the fixed UTC+7 zone alerts are interpreted in by default.
var Vietnam = Fixed(7)

// Layouts accepted for alert times, most precise first.
const (
	LayoutWithSeconds = "15:04:05 02-01-2006"
	LayoutMinutes     = "15:04 02-01-2006"
)

// Fixed returns a zone at a whole-hour offset from UTC.
func Fixed(hours int) *time.Location {
	sign := "+"
	if hours < 0 {
		sign = "-"
	}
	abs := hours
	if abs < 0 {
		abs = -abs
	}
	return time.FixedZone(fmt.Sprintf("UTC%s%d", sign, abs), hours*3600)
}

// ParseAlertTime parses text in loc, trying LayoutWithSeconds then LayoutMinutes.
func ParseAlertTime(text string, loc *time.Location) (time.Time, error) {
	text = strings.TrimSpace(text)
	t, err := time.ParseInLocation(LayoutWithSeconds, text, loc)
	if err == nil {
		return t, nil
	}
	t, err = time.ParseInLocation(LayoutMinutes, text, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse alert time %q: %w", text, err)
	}
	return t, nil
}
