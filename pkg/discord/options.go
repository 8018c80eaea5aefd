package discord

import "github.com/bwmarrin/discordgo"

// Options indexes command options by name.
type Options map[string]*discordgo.ApplicationCommandInteractionDataOption

// Subcommand returns the first subcommand of a grouped command with its options.
// For a command without subcommands the name is empty and the top-level options
// are returned.
func Subcommand(data discordgo.ApplicationCommandInteractionData) (string, Options) {
	if len(data.Options) > 0 && data.Options[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		sub := data.Options[0]
		return sub.Name, indexOptions(sub.Options)
	}
	return "", indexOptions(data.Options)
}

func indexOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) Options {
	out := make(Options, len(opts))
	for _, o := range opts {
		out[o.Name] = o
	}
	return out
}

func (o Options) String(name string) string {
	if opt, ok := o[name]; ok {
		if s, ok := opt.Value.(string); ok {
			return s
		}
	}
	return ""
}

// Int returns an integer option; discordgo decodes numbers as float64.
func (o Options) Int(name string) int {
	if opt, ok := o[name]; ok {
		if f, ok := opt.Value.(float64); ok {
			return int(f)
		}
	}
	return 0
}

// ID returns the snowflake carried by a channel, role, user or mentionable option.
func (o Options) ID(name string) string {
	return o.String(name)
}
