package entities

// Member is a guild member as seen by the moderation and draw commands.
type Member struct {
	UserID      string
	DisplayName string
	Bot         bool
	RoleIDs     []string
}

// HasRole reports whether the member carries roleID.
func (m Member) HasRole(roleID string) bool {
	for _, id := range m.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}
