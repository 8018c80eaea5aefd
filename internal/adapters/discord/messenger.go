package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"ctabot/internal/domain"
	"ctabot/internal/domain/entities"
	"ctabot/internal/ports/output"
	dpkg "ctabot/pkg/discord"
)

var _ output.Messenger = (*Messenger)(nil)

// Messenger posts and edits CTA notifications through a discordgo session.
// Notifications are rendered in the configured guild locale.
type Messenger struct {
	session *discordgo.Session
	tr      output.T
	locale  string
	logger  *zap.Logger
}

func NewMessenger(session *discordgo.Session, tr output.T, locale string, logger *zap.Logger) *Messenger {
	return &Messenger{session: session, tr: tr, locale: locale, logger: logger}
}

func (m *Messenger) Send(ctx context.Context, channelID string, n entities.Notification) (entities.MessageRef, error) {
	msg, err := m.session.ChannelMessageSendComplex(channelID, m.render(n), discordgo.WithContext(ctx))
	if err != nil {
		if isUnknown(err, discordgo.ErrCodeUnknownChannel) {
			return entities.MessageRef{}, fmt.Errorf("%w: %s", domain.ErrChannelNotFound, channelID)
		}
		return entities.MessageRef{}, fmt.Errorf("send to %s: %w", channelID, err)
	}
	return entities.MessageRef{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

func (m *Messenger) Edit(ctx context.Context, ref entities.MessageRef, n entities.Notification) error {
	edit := discordgo.NewMessageEdit(ref.ChannelID, ref.MessageID).
		SetEmbed(dpkg.BuildCTAEmbed(m.tr, m.locale, n))
	if _, err := m.session.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx)); err != nil {
		if isUnknown(err, discordgo.ErrCodeUnknownMessage) || isUnknown(err, discordgo.ErrCodeUnknownChannel) {
			return fmt.Errorf("%w: %s/%s", domain.ErrNotificationNotFound, ref.ChannelID, ref.MessageID)
		}
		return fmt.Errorf("edit %s/%s: %w", ref.ChannelID, ref.MessageID, err)
	}
	return nil
}

func (m *Messenger) Delete(ctx context.Context, ref entities.MessageRef) error {
	err := m.session.ChannelMessageDelete(ref.ChannelID, ref.MessageID, discordgo.WithContext(ctx))
	if err != nil && !isUnknown(err, discordgo.ErrCodeUnknownMessage) {
		return fmt.Errorf("delete %s/%s: %w", ref.ChannelID, ref.MessageID, err)
	}
	return nil
}

// ResolveRole looks the channel and role up in the state cache first and falls
// back to the REST API.
func (m *Messenger) ResolveRole(ctx context.Context, channelID, roleID string) error {
	channel, err := m.session.State.Channel(channelID)
	if err != nil {
		channel, err = m.session.Channel(channelID, discordgo.WithContext(ctx))
		if err != nil {
			if isUnknown(err, discordgo.ErrCodeUnknownChannel) {
				return fmt.Errorf("%w: %s", domain.ErrChannelNotFound, channelID)
			}
			return fmt.Errorf("fetch channel %s: %w", channelID, err)
		}
	}
	if channel.GuildID == "" {
		return fmt.Errorf("%w: %s is not a guild channel", domain.ErrChannelNotFound, channelID)
	}

	if _, err := m.session.State.Role(channel.GuildID, roleID); err == nil {
		return nil
	}
	roles, err := m.session.GuildRoles(channel.GuildID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("fetch roles of %s: %w", channel.GuildID, err)
	}
	for _, r := range roles {
		if r.ID == roleID {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrRoleNotFound, roleID)
}

// render builds the message for n. The scheduled and fired notifications ping
// the alert's role and only that role. Countdowns go through Edit and never ping.
func (m *Messenger) render(n entities.Notification) *discordgo.MessageSend {
	send := &discordgo.MessageSend{
		Embeds:          []*discordgo.MessageEmbed{dpkg.BuildCTAEmbed(m.tr, m.locale, n)},
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}
	pings := n.Kind == entities.NotificationScheduled || n.Kind == entities.NotificationFired
	if pings && n.Alert.RoleID != "" {
		send.Content = dpkg.RoleMention(n.Alert.RoleID)
		send.AllowedMentions.Roles = []string{n.Alert.RoleID}
	}
	return send
}

// isUnknown reports whether err is a Discord "Unknown X" error with the given
// code, or a plain 404.
func isUnknown(err error, code int) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil && restErr.Message.Code == code {
		return true
	}
	return restErr.Message == nil && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}
