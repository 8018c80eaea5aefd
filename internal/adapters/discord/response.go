package discord

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"ctabot/internal/domain"
	dpkg "ctabot/pkg/discord"
)

// Nick > GlobalName > Username
func resolveDisplayName(member *discordgo.Member) string {
	if member == nil || member.User == nil {
		return ""
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}

func respondEphemeral(s *discordgo.Session, i *discordgo.Interaction, content string) {
	_ = s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// deferResponse acknowledges the interaction so the command can take longer
// than Discord's three second deadline.
func deferResponse(s *discordgo.Session, i *discordgo.Interaction, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
}

func editContent(s *discordgo.Session, i *discordgo.Interaction, content string) {
	_, _ = s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &content})
}

func editEmbed(s *discordgo.Session, i *discordgo.Interaction, embed *discordgo.MessageEmbed) error {
	embeds := []*discordgo.MessageEmbed{embed}
	_, err := s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Embeds: &embeds})
	return err
}

// errorMessage turns err into a reply; unexpected errors are logged.
func (h *Handler) errorMessage(i *discordgo.InteractionCreate, err error, data map[string]any) string {
	if domain.Code(err) == "" {
		h.logger.Error("command failed", zap.String("user_id", interactionUserID(i)), zap.Error(err))
	}
	return dpkg.DomainErrorMessage(h.tr, locale(i), err, data)
}
