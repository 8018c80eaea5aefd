package discord

import (
	"github.com/bwmarrin/discordgo"

	"ctabot/internal/domain/entities"
)

// voiceMembers returns the members connected to channelID, read from the
// state cache kept up to date by the voice state intent.
func voiceMembers(state *discordgo.State, guildID, channelID string) []*discordgo.Member {
	guild, err := state.Guild(guildID)
	if err != nil {
		return nil
	}

	type entry struct {
		userID string
		member *discordgo.Member
	}
	state.RLock()
	entries := make([]entry, 0, len(guild.VoiceStates))
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID == channelID {
			entries = append(entries, entry{userID: vs.UserID, member: vs.Member})
		}
	}
	state.RUnlock()

	members := make([]*discordgo.Member, 0, len(entries))
	for _, e := range entries {
		m := e.member
		if m == nil || m.User == nil {
			m, _ = state.Member(guildID, e.userID)
		}
		if m == nil || m.User == nil {
			continue
		}
		members = append(members, m)
	}
	return members
}

func toMember(m *discordgo.Member) entities.Member {
	return entities.Member{
		UserID:      m.User.ID,
		DisplayName: resolveDisplayName(m),
		Bot:         m.User.Bot,
		RoleIDs:     m.Roles,
	}
}

// channelName returns the cached name of a channel, or its mention when the
// channel is not cached.
func channelName(state *discordgo.State, channelID string) string {
	if ch, err := state.Channel(channelID); err == nil && ch.Name != "" {
		return ch.Name
	}
	return "<#" + channelID + ">"
}
