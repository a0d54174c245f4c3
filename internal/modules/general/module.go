package general

import (
	"github.com/bwmarrin/discordgo"

	"github.com/kvisuru/musicbox/internal/bot"
	"github.com/kvisuru/musicbox/internal/modules/general/presentation"
)

func init() {
	bot.Register(&Module{})
}

// Module provides small utility commands like /ping and /about.
type Module struct {
	handlers *presentation.Handlers
}

// Name returns the module name.
func (m *Module) Name() string {
	return "general"
}

// Commands returns the slash commands for this module.
func (m *Module) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Show bot latency",
		},
		{
			Name:        "hello",
			Description: "Greet the bot",
		},
		{
			Name:        "decide",
			Description: "Get a yes/no answer",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "question",
					Description: "The question to decide",
					Required:    true,
				},
			},
		},
		{
			Name:        "about",
			Description: "Bot information",
		},
	}
}

// CommandHandlers returns the command handlers for this module.
func (m *Module) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"ping":   m.handlers.HandlePing,
		"hello":  m.handlers.HandleHello,
		"decide": m.handlers.HandleDecide,
		"about":  m.handlers.HandleAbout,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *Module) EventHandlers() []bot.EventHandler {
	return nil
}

// Init initializes the module.
func (m *Module) Init(deps bot.ModuleDependencies) error {
	m.handlers = presentation.NewHandlers()
	return nil
}

// Shutdown cleans up module resources.
func (m *Module) Shutdown() error {
	return nil
}
