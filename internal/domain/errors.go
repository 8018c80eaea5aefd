package domain

import "errors"

// Domain errors.
var (
	ErrInvalidTimeFormat    = errors.New("invalid time format (expected HH:MM DD-MM-YYYY)")
	ErrAlertInThePast       = errors.New("alert time must be in the future")
	ErrCorruptStore         = errors.New("alert store is corrupt")
	ErrDuplicateAlert       = errors.New("an alert already uses this notification")
	ErrNotificationNotFound = errors.New("notification message not found")
	ErrChannelNotFound      = errors.New("channel not found")
	ErrRoleNotFound         = errors.New("role not found")
	ErrInvalidPurgeCount    = errors.New("purge count must be between 1 and 100")
	ErrNoEligibleMembers    = errors.New("no eligible members")
	ErrNoVoiceMembers       = errors.New("no members in voice channel")
	ErrMissingPermission    = errors.New("missing permission")
)

var codes = map[error]string{
	ErrInvalidTimeFormat:    "invalid_time_format",
	ErrAlertInThePast:       "alert_in_the_past",
	ErrCorruptStore:         "corrupt_store",
	ErrDuplicateAlert:       "duplicate_alert",
	ErrNotificationNotFound: "notification_not_found",
	ErrChannelNotFound:      "channel_not_found",
	ErrRoleNotFound:         "role_not_found",
	ErrInvalidPurgeCount:    "invalid_purge_count",
	ErrNoEligibleMembers:    "no_eligible_members",
	ErrNoVoiceMembers:       "no_voice_members",
	ErrMissingPermission:    "missing_permission",
}

// Code returns the stable code of the domain error wrapped in err, or "" when err
// carries none. Codes double as i18n key suffixes ("errors.<code>").
func Code(err error) string {
	if err == nil {
		return ""
	}
	for sentinel, code := range codes {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ""
}
