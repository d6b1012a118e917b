package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Chiitoi/Aurora/internal/core/action"
)

// Command and option names outside the action kinds.
const (
	cmdKill  = "kill"
	cmdShip  = "ship"
	cmdBio   = "bio"
	cmdBall  = "8ball"
	cmdRate  = "rate"
	optUser  = "user"
	optName  = "name"
	optBio   = "bio"
	optQuery = "query"
)

// Commands returns the full command set.
func Commands() []*discordgo.ApplicationCommand {
	cmds := make([]*discordgo.ApplicationCommand, 0, 16)

	for _, kind := range action.Commands() {
		cmds = append(cmds, &discordgo.ApplicationCommand{
			Name:        string(kind),
			Description: kind.Details().Description,
			Type:        discordgo.ChatApplicationCommand,
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: optUser, Description: "The recipient"},
			},
		})
	}

	cmds = append(cmds,
		&discordgo.ApplicationCommand{
			Name:        cmdKill,
			Description: "Fight someone",
			Type:        discordgo.ChatApplicationCommand,
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "target", Description: "Your target", Required: true},
			},
		},
		&discordgo.ApplicationCommand{
			Name:        cmdShip,
			Description: "Manage your ship",
			Type:        discordgo.ChatApplicationCommand,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Creates a ship with that special someone",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionUser, Name: optUser, Description: "The special someone", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "rename",
					Description: "Rename your ship",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: optName, Description: "Your new ship name", Required: true},
					},
				},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "show", Description: "Shows your ship"},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "sink", Description: "Sinks your current ship"},
			},
		},
		&discordgo.ApplicationCommand{
			Name:        cmdBio,
			Description: "Manage your bio",
			Type:        discordgo.ChatApplicationCommand,
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "clear", Description: "Clears your bio"},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Sets your bio",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: optBio, Description: "Your new bio", Required: true},
					},
				},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "show", Description: "Shows your bio"},
			},
		},
		&discordgo.ApplicationCommand{
			Name:        cmdBall,
			Description: "Ask Aurora something",
			Type:        discordgo.ChatApplicationCommand,
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "question", Description: "Your question", Required: true},
			},
		},
		&discordgo.ApplicationCommand{
			Name:        cmdRate,
			Description: "Rate something",
			Type:        discordgo.ChatApplicationCommand,
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: optQuery, Description: "What to rate", Required: true},
			},
		},
	)
	return cmds
}

// CommandRegistrar is the part of the platform session used to register commands.
type CommandRegistrar interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// Register replaces the registered command set. An empty guildID registers globally.
func Register(r CommandRegistrar, appID, guildID string) ([]*discordgo.ApplicationCommand, error) {
	if appID == "" {
		return nil, fmt.Errorf("application ID is required to register commands")
	}
	registered, err := r.ApplicationCommandBulkOverwrite(appID, guildID, Commands())
	if err != nil {
		return nil, fmt.Errorf("failed to register commands: %w", err)
	}
	return registered, nil
}
