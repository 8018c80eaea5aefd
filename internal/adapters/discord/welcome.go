package discord

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	dpkg "ctabot/pkg/discord"
)

// HandleMemberAdd greets new members of the configured guild.
func (h *Handler) HandleMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.Member == nil || m.User == nil || m.GuildID != h.cfg.GuildID || m.User.Bot {
		return
	}

	guildName, count := "", 0
	if g, err := s.State.Guild(m.GuildID); err == nil {
		guildName, count = g.Name, g.MemberCount
	}
	embed := dpkg.BuildWelcomeEmbed(h.tr, h.cfg.Locale, m.User.ID, guildName, h.cfg.ApplyChannelID, count, m.User.AvatarURL(""))

	_, err := s.ChannelMessageSendComplex(h.cfg.WelcomeChannelID, &discordgo.MessageSend{
		Embeds:          []*discordgo.MessageEmbed{embed},
		AllowedMentions: &discordgo.MessageAllowedMentions{Users: []string{m.User.ID}},
	})
	if err != nil {
		h.logger.Warn("welcome message failed", zap.String("user_id", m.User.ID), zap.Error(err))
		return
	}
	h.logger.Info("member welcomed", zap.String("user_id", m.User.ID))
}
