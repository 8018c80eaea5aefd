package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"ctabot/internal/domain/entities"
	dpkg "ctabot/pkg/discord"
)

func (h *Handler) handleLuckyDraw(_ context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts dpkg.Options) {
	channelID := opts.ID("channel")
	name := channelName(s.State, channelID)

	members := voiceMembers(s.State, i.GuildID, channelID)
	candidates := make([]entities.Member, 0, len(members))
	for _, m := range members {
		candidates = append(candidates, toMember(m))
	}

	winners, err := h.draws.Draw(candidates, opts.ID("role"), opts.Int("winners"))
	if err != nil {
		respondEphemeral(s, i.Interaction, h.errorMessage(i, err, map[string]any{"Channel": name}))
		return
	}
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:          []*discordgo.MessageEmbed{dpkg.BuildDrawEmbed(h.tr, locale(i), opts.String("title"), name, winners)},
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		},
	})
	if err != nil {
		h.logger.Warn("draw response failed", zap.Error(err))
	}
}
