package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"ctabot/internal/ports/input"
	dpkg "ctabot/pkg/discord"
)

// handleSetCTA schedules an alert. The confirmation embed is posted in the
// invoking channel by the alert service; the invoker gets an ephemeral ack.
func (h *Handler) handleSetCTA(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts dpkg.Options) {
	if err := deferResponse(s, i.Interaction, true); err != nil {
		h.logger.Warn("defer failed", zap.Error(err))
		return
	}

	alert, err := h.alerts.Schedule(ctx, input.ScheduleRequest{
		ChannelID:   i.ChannelID,
		TriggerTime: opts.String("time"),
		MassingTime: opts.String("massing_time"),
		Location:    opts.String("location"),
		RoleID:      opts.ID("role"),
		Message:     opts.String("message"),
		Link:        opts.String("drive_link"),
	})
	if err != nil {
		editContent(s, i.Interaction, h.errorMessage(i, err, nil))
		return
	}
	editContent(s, i.Interaction, h.tr.T(locale(i), "cta.scheduled", map[string]any{"Time": alert.TriggerTime}))
}
