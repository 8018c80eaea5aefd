package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"ctabot/internal/domain/entities"
	"ctabot/internal/ports/output"
)

const (
	ctaColor     = 0xEB459E
	firedColor   = 0xED4245
	welcomeColor = 0xEB459E
	clearColor   = 0x57F287
	drawColor    = 0xF1C40F

	// Discord rejects empty field values.
	blankField = "\u200b"

	maxFieldName  = 256
	maxFieldValue = 1024
)

// RoleMention returns the mention markup that pings every holder of roleID.
func RoleMention(roleID string) string {
	return "<@&" + roleID + ">"
}

// UserMention returns the mention markup for a user.
func UserMention(userID string) string {
	return "<@" + userID + ">"
}

// BuildCTAEmbed renders a CTA notification. Scheduled and countdown embeds
// share a layout; countdowns add the time remaining under both times.
func BuildCTAEmbed(tr output.T, locale string, n entities.Notification) *discordgo.MessageEmbed {
	a := n.Alert
	zone := ZoneLabel(n.TriggerAt)

	if n.Kind == entities.NotificationFired {
		return &discordgo.MessageEmbed{
			Title: tr.T(locale, "embed.fired_title", nil),
			Color: firedColor,
			Fields: []*discordgo.MessageEmbedField{
				field(tr.T(locale, "embed.location", map[string]any{"Location": a.Location}), blankField),
				field(tr.T(locale, "embed.massing_time", map[string]any{"Time": DisplayAlertTime(a.MassingTime, n.MassingAt), "Zone": zone}),
					tr.T(locale, "embed.starts_in", map[string]any{"Countdown": FormatCountdown(n.MassingIn)})),
				field(tr.T(locale, "embed.message", map[string]any{"Message": a.Message}), blankField),
				linkField(tr, locale, a.Link),
			},
			Footer: &discordgo.MessageEmbedFooter{Text: tr.T(locale, "embed.footer", nil)},
		}
	}

	massingValue, triggerValue := blankField, blankField
	if n.Kind == entities.NotificationCountdown {
		massingValue = tr.T(locale, "embed.starts_in", map[string]any{"Countdown": FormatCountdown(n.MassingIn)})
		triggerValue = tr.T(locale, "embed.starts_in", map[string]any{"Countdown": FormatCountdown(n.TriggerIn)})
	}
	return &discordgo.MessageEmbed{
		Title: tr.T(locale, "embed.scheduled_title", nil),
		Color: ctaColor,
		Fields: []*discordgo.MessageEmbedField{
			field(tr.T(locale, "embed.location", map[string]any{"Location": a.Location}), blankField),
			field(tr.T(locale, "embed.massing_time", map[string]any{"Time": DisplayAlertTime(a.MassingTime, n.MassingAt), "Zone": zone}), massingValue),
			field(tr.T(locale, "embed.alert_time", map[string]any{"Time": DisplayAlertTime(a.TriggerTime, n.TriggerAt), "Zone": zone}), triggerValue),
			field(tr.T(locale, "embed.message", map[string]any{"Message": a.Message}), blankField),
			linkField(tr, locale, a.Link),
		},
		Footer: &discordgo.MessageEmbedFooter{Text: tr.T(locale, "embed.footer", nil)},
	}
}

func linkField(tr output.T, locale, link string) *discordgo.MessageEmbedField {
	value := strings.TrimSpace(link)
	if value == "" {
		value = tr.T(locale, "embed.no_link", nil)
	}
	return field(tr.T(locale, "embed.link", nil), value)
}

func field(name, value string) *discordgo.MessageEmbedField {
	if strings.TrimSpace(name) == "" {
		name = blankField
	}
	if strings.TrimSpace(value) == "" {
		value = blankField
	}
	return &discordgo.MessageEmbedField{
		Name:  truncate(name, maxFieldName),
		Value: truncate(value, maxFieldValue),
	}
}

// truncate cuts s to at most max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// BuildWelcomeEmbed greets a member who just joined the guild.
func BuildWelcomeEmbed(tr output.T, locale, userID, guildName, applyChannelID string, memberCount int, avatarURL string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: tr.T(locale, "welcome.title", nil),
		Description: tr.T(locale, "welcome.description", map[string]any{
			"Mention":      UserMention(userID),
			"Guild":        guildName,
			"ApplyChannel": applyChannelID,
		}),
		Color:  welcomeColor,
		Footer: &discordgo.MessageEmbedFooter{Text: tr.T(locale, "welcome.footer", map[string]any{"Count": memberCount})},
	}
	if avatarURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatarURL}
	}
	return embed
}

// BuildClearEmbed confirms a purge; the message deletes itself after seconds.
func BuildClearEmbed(tr output.T, locale string, count, seconds int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Description: tr.T(locale, "clear.done", map[string]any{"Count": count, "Seconds": seconds}),
		Color:       clearColor,
	}
}

// BuildDrawEmbed announces the winners of a lucky draw held in a voice channel.
func BuildDrawEmbed(tr output.T, locale, title, channelName string, winners []entities.Member) *discordgo.MessageEmbed {
	if strings.TrimSpace(title) == "" {
		title = tr.T(locale, "draw.default_title", nil)
	}
	mentions := make([]string, 0, len(winners))
	for _, w := range winners {
		mentions = append(mentions, UserMention(w.UserID))
	}
	return &discordgo.MessageEmbed{
		Title: tr.T(locale, "draw.title", map[string]any{"Title": title}),
		Description: tr.T(locale, "draw.description", map[string]any{
			"Channel": channelName,
			"Count":   len(winners),
			"List":    NumberedList(mentions),
		}),
		Color: drawColor,
	}
}

// NumberedList renders items as "1. a\n2. b".
func NumberedList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, item)
	}
	return b.String()
}
