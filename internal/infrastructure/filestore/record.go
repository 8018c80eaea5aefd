package filestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"ctabot/internal/domain/entities"
)

// snowflake is a Discord id. Files written by the previous bot store ids as JSON
// numbers, so it is written as a number and read from either form.
type snowflake string

func (s snowflake) MarshalJSON() ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseUint(string(s), 10, 64); err != nil {
		return json.Marshal(string(s))
	}
	return []byte(s), nil
}

func (s *snowflake) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
	case len(b) > 0 && b[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = snowflake(str)
	default:
		if _, err := strconv.ParseUint(string(b), 10, 64); err != nil {
			return fmt.Errorf("invalid snowflake %s", b)
		}
		*s = snowflake(b)
	}
	return nil
}

// record is the on-disk shape of an alert. Field order is the file's key order.
type record struct {
	Time        string    `json:"time"`
	MassingTime string    `json:"massing_time"`
	Location    string    `json:"location"`
	RoleID      snowflake `json:"role_id"`
	Message     string    `json:"message"`
	DriveLink   *string   `json:"drive_link"`
	MessageID   snowflake `json:"message_id"`
	ChannelID   snowflake `json:"channel_id"`
}

func toRecord(a entities.Alert) record {
	r := record{
		Time:        a.TriggerTime,
		MassingTime: a.MassingTime,
		Location:    a.Location,
		RoleID:      snowflake(a.RoleID),
		Message:     a.Message,
		MessageID:   snowflake(a.Notification.MessageID),
		ChannelID:   snowflake(a.Notification.ChannelID),
	}
	if a.Link != "" {
		link := a.Link
		r.DriveLink = &link
	}
	return r
}

func (r record) toDomain() entities.Alert {
	a := entities.Alert{
		TriggerTime: r.Time,
		MassingTime: r.MassingTime,
		Location:    r.Location,
		RoleID:      string(r.RoleID),
		Message:     r.Message,
		Notification: entities.MessageRef{
			ChannelID: string(r.ChannelID),
			MessageID: string(r.MessageID),
		},
	}
	if r.DriveLink != nil {
		a.Link = *r.DriveLink
	}
	return a
}
