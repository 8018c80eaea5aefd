package entities

// MessageRef identifies a Discord message.
type MessageRef struct {
	ChannelID string
	MessageID string
}

// IsZero reports whether the reference points nowhere.
func (r MessageRef) IsZero() bool {
	return r.ChannelID == "" && r.MessageID == ""
}

// Alert is a pending CTA alert. Times are kept as the text the organizer typed;
// they are parsed against the fixed bot timezone whenever needed.
type Alert struct {
	TriggerTime  string
	MassingTime  string
	Location     string
	RoleID       string
	Message      string
	Link         string // empty = no link
	Notification MessageRef
}
