package bot

import "github.com/bwmarrin/discordgo"

// InteractionHandler handles one slash-command interaction. The Responder is
// how the handler answers; handlers never call InteractionRespond directly.
type InteractionHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, r Responder) error

// EventHandler is a gateway event handler in one of discordgo's accepted
// shapes, e.g. func(s *discordgo.Session, e *discordgo.VoiceStateUpdate).
// It is passed straight to Session.AddHandler.
type EventHandler any

// ModuleDependencies carries what a module gets to work with at Init time.
type ModuleDependencies struct {
	Session *discordgo.Session
}

// Module is a self-contained feature unit of the bot. Modules register
// themselves via Register from an init function and are wired up in
// registration order on startup.
type Module interface {
	// Name identifies the module, for logs and duplicate detection.
	Name() string

	// Commands returns the slash commands the module wants registered.
	Commands() []*discordgo.ApplicationCommand

	// CommandHandlers maps command names to their handlers. Every name
	// returned by Commands must have an entry here.
	CommandHandlers() map[string]InteractionHandler

	// EventHandlers returns the module's gateway event handlers.
	EventHandlers() []EventHandler

	// Init prepares the module. The session is already connected, so
	// session state (bot user, guilds) is available.
	Init(deps ModuleDependencies) error

	// Shutdown releases the module's resources.
	Shutdown() error
}

// ConfigurableModule is implemented by modules that read their own
// environment configuration. LoadConfig runs before Init and before the
// Discord connection is opened, so a misconfigured module fails startup
// early.
type ConfigurableModule interface {
	LoadConfig() error
}
