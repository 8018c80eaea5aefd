package discord

import (
	"github.com/bwmarrin/discordgo"
)

const (
	routeClearMessages = "clear messages"
	routeVoiceMembers  = "voice members"
	routeMoveAll       = "move all"
	routeLuckyDraw     = "lucky draw"
	routeSetCTA        = "set cta"
)

var (
	manageMessages = int64(discordgo.PermissionManageMessages)
	moveMembers    = int64(discordgo.PermissionVoiceMoveMembers)
	minOne         = 1.0
)

// requiredPermissions mirrors DefaultMemberPermissions so that a guild override
// cannot open the command to everyone.
var requiredPermissions = map[string]int64{
	routeClearMessages: manageMessages,
	routeMoveAll:       moveMembers,
}

var voiceChannelTypes = []discordgo.ChannelType{discordgo.ChannelTypeGuildVoice, discordgo.ChannelTypeGuildStageVoice}

// commands returns the guild slash commands, grouped by their first word.
func commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:                     "clear",
			Description:              "Clean up the channel",
			DefaultMemberPermissions: &manageMessages,
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "messages",
				Description: "Delete the latest messages of this channel",
				Options: []*discordgo.ApplicationCommandOption{{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "number",
					Description: "How many messages to delete (1-100)",
					Required:    true,
					MinValue:    &minOne,
					MaxValue:    100,
				}},
			}},
		},
		{
			Name:        "voice",
			Description: "Voice channel tools",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "members",
				Description: "List the members of a voice channel",
				Options: []*discordgo.ApplicationCommandOption{{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "Voice channel",
					Required:     true,
					ChannelTypes: voiceChannelTypes,
				}},
			}},
		},
		{
			Name:                     "move",
			Description:              "Move voice members",
			DefaultMemberPermissions: &moveMembers,
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "all",
				Description: "Move everyone from one voice channel to another",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:         discordgo.ApplicationCommandOptionChannel,
						Name:         "source",
						Description:  "Channel to empty",
						Required:     true,
						ChannelTypes: voiceChannelTypes,
					},
					{
						Type:         discordgo.ApplicationCommandOptionChannel,
						Name:         "destination",
						Description:  "Channel to fill",
						Required:     true,
						ChannelTypes: voiceChannelTypes,
					},
				},
			}},
		},
		{
			Name:        "lucky",
			Description: "Games",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "draw",
				Description: "Draw random winners among the members of a voice channel",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:         discordgo.ApplicationCommandOptionChannel,
						Name:         "channel",
						Description:  "Voice channel to draw from",
						Required:     true,
						ChannelTypes: voiceChannelTypes,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "winners",
						Description: "Number of winners",
						Required:    true,
						MinValue:    &minOne,
					},
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "role",
						Description: "Only members with this role can win",
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "title",
						Description: "Title of the draw",
					},
				},
			}},
		},
		{
			Name:        "set",
			Description: "Schedule things",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "cta",
				Description: "Schedule a CTA ping",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "time",
						Description: "Alert time, HH:MM DD-MM-YYYY (seconds optional)",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "massing_time",
						Description: "Massing time, HH:MM DD-MM-YYYY",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "location",
						Description: "Where to mass",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "role",
						Description: "Role to ping",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "message",
						Description: "Message for the members",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "drive_link",
						Description: "Link to the role sheet",
					},
				},
			}},
		},
	}
}

// hasPermission reports whether member holds perm. Administrators hold every permission.
func hasPermission(member *discordgo.Member, perm int64) bool {
	if member == nil {
		return false
	}
	if member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return member.Permissions&perm == perm
}
