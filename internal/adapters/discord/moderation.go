package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"ctabot/internal/application"
	"ctabot/internal/domain"
	dpkg "ctabot/pkg/discord"
)

const (
	// clearNoticeSeconds is how long the purge confirmation stays visible.
	clearNoticeSeconds = 10

	// Discord refuses to bulk delete messages older than two weeks.
	bulkDeleteMaxAge = 14 * 24 * time.Hour

	// perMoveBudget is the time allowed per member in /move all, rate limits included.
	perMoveBudget = 2 * time.Second
)

// moveTimeout bounds a /move all over members people.
func moveTimeout(members int) time.Duration {
	return commandTimeout + time.Duration(members)*perMoveBudget
}

func (h *Handler) handleClearMessages(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts dpkg.Options) {
	n := opts.Int("number")
	if err := application.ValidatePurgeCount(n); err != nil {
		respondEphemeral(s, i.Interaction, h.errorMessage(i, err, nil))
		return
	}
	if err := deferResponse(s, i.Interaction, true); err != nil {
		h.logger.Warn("defer failed", zap.Error(err))
		return
	}

	deleted, err := purge(ctx, s, i.ChannelID, n, time.Now())
	if err != nil && deleted == 0 {
		editContent(s, i.Interaction, h.errorMessage(i, err, nil))
		return
	}
	if err != nil {
		h.logger.Warn("purge incomplete", zap.String("channel_id", i.ChannelID), zap.Int("deleted", deleted), zap.Error(err))
	}
	h.logger.Info("messages purged", zap.String("channel_id", i.ChannelID), zap.Int("deleted", deleted),
		zap.String("user_id", interactionUserID(i)))

	go h.clearNotice(s, i, deleted)
}

// purge deletes the latest n messages of channelID and returns how many went.
// Recent messages are bulk deleted, older ones one by one.
func purge(ctx context.Context, s *discordgo.Session, channelID string, n int, now time.Time) (int, error) {
	msgs, err := s.ChannelMessages(channelID, n, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return 0, err
	}
	recent, old := splitByAge(msgs, now)

	deleted := 0
	switch len(recent) {
	case 0:
	case 1:
		if err := s.ChannelMessageDelete(channelID, recent[0], discordgo.WithContext(ctx)); err != nil {
			return deleted, err
		}
		deleted++
	default:
		if err := s.ChannelMessagesBulkDelete(channelID, recent, discordgo.WithContext(ctx)); err != nil {
			return deleted, err
		}
		deleted += len(recent)
	}
	for _, id := range old {
		if err := s.ChannelMessageDelete(channelID, id, discordgo.WithContext(ctx)); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func splitByAge(msgs []*discordgo.Message, now time.Time) (recent, old []string) {
	for _, m := range msgs {
		if now.Sub(m.Timestamp) < bulkDeleteMaxAge {
			recent = append(recent, m.ID)
		} else {
			old = append(old, m.ID)
		}
	}
	return recent, old
}

// clearNotice counts the purge confirmation down and then deletes it.
func (h *Handler) clearNotice(s *discordgo.Session, i *discordgo.InteractionCreate, deleted int) {
	for left := clearNoticeSeconds; left > 0; left-- {
		if err := editEmbed(s, i.Interaction, dpkg.BuildClearEmbed(h.tr, locale(i), deleted, left)); err != nil {
			h.logger.Debug("clear notice edit failed", zap.Error(err))
			return
		}
		select {
		case <-h.ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
	if err := s.InteractionResponseDelete(i.Interaction); err != nil {
		h.logger.Debug("clear notice delete failed", zap.Error(err))
	}
}

func (h *Handler) handleVoiceMembers(_ context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts dpkg.Options) {
	channelID := opts.ID("channel")
	name := channelName(s.State, channelID)

	members := voiceMembers(s.State, i.GuildID, channelID)
	if len(members) == 0 {
		respondEphemeral(s, i.Interaction, h.tr.T(locale(i), "voice.empty", map[string]any{"Channel": name}))
		return
	}
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, resolveDisplayName(m))
	}
	respondEphemeral(s, i.Interaction, h.tr.T(locale(i), "voice.members", map[string]any{
		"Channel": name,
		"List":    dpkg.NumberedList(names),
	}))
}

func (h *Handler) handleMoveAll(_ context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts dpkg.Options) {
	source, destination := opts.ID("source"), opts.ID("destination")
	sourceName := channelName(s.State, source)

	members := voiceMembers(s.State, i.GuildID, source)
	if len(members) == 0 {
		respondEphemeral(s, i.Interaction, h.errorMessage(i, domain.ErrNoVoiceMembers, map[string]any{"Channel": sourceName}))
		return
	}
	if err := deferResponse(s, i.Interaction, false); err != nil {
		h.logger.Warn("defer failed", zap.Error(err))
		return
	}

	// The moves outlive the per-command deadline.
	ctx, cancel := context.WithTimeout(h.ctx, moveTimeout(len(members)))
	defer cancel()

	moved := 0
	for _, m := range members {
		if err := s.GuildMemberMove(i.GuildID, m.User.ID, &destination, discordgo.WithContext(ctx)); err != nil {
			h.logger.Warn("move failed", zap.String("user_id", m.User.ID), zap.Error(err))
			continue
		}
		moved++
	}
	editContent(s, i.Interaction, h.tr.T(locale(i), "move.done", map[string]any{
		"Count":       moved,
		"Source":      sourceName,
		"Destination": channelName(s.State, destination),
	}))
}
