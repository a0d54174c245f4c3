package music

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"

	"github.com/kvisuru/musicbox/internal/bot"
	"github.com/kvisuru/musicbox/internal/modules/music/application/ports"
	"github.com/kvisuru/musicbox/internal/modules/music/application/usecases"
	"github.com/kvisuru/musicbox/internal/modules/music/infrastructure"
	"github.com/kvisuru/musicbox/internal/modules/music/presentation"
)

func init() {
	bot.Register(&Module{})
}

// Compile-time interface checks.
var _ bot.ConfigurableModule = (*Module)(nil)

// Module provides music playback commands.
type Module struct {
	config          *Config
	commandHandlers *presentation.CommandHandlers
	eventHandlers   *presentation.EventHandlers
	coordinator     *usecases.PlaybackCoordinator
	resolverPool    *infrastructure.PooledResolver
}

// Name returns the module name.
func (m *Module) Name() string {
	return "music"
}

// Commands returns the slash commands for this module.
func (m *Module) Commands() []*discordgo.ApplicationCommand {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *Module) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"join":       m.commandHandlers.HandleJoin,
		"leave":      m.commandHandlers.HandleLeave,
		"play":       m.commandHandlers.HandlePlay,
		"skip":       m.commandHandlers.HandleSkip,
		"pause":      m.commandHandlers.HandlePause,
		"resume":     m.commandHandlers.HandleResume,
		"stop":       m.commandHandlers.HandleStop,
		"nowplaying": m.commandHandlers.HandleNowPlaying,
		"repeat":     m.commandHandlers.HandleRepeat,
		"shuffle":    m.commandHandlers.HandleShuffle,
		"queue":      m.commandHandlers.HandleQueue,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *Module) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		func(s *discordgo.Session, event *discordgo.VoiceStateUpdate) {
			m.eventHandlers.HandleVoiceStateUpdate(s, event)
		},
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *Module) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *Module) Init(deps bot.ModuleDependencies) error {
	m.resolverPool = infrastructure.NewPooledResolver(
		infrastructure.NewYtdlpResolver(),
		m.config.ResolverWorkers,
		time.Duration(m.config.ResolverTimeoutSeconds)*time.Second,
	)

	var catalog ports.CatalogResolver
	if m.config.HasSpotify() {
		catalog = infrastructure.NewSpotifyCatalog(
			m.config.SpotifyClientID,
			m.config.SpotifyClientSecret,
		)
		slog.Info("spotify catalog enabled")
	} else {
		slog.Info("spotify credentials not set, spotify links disabled")
	}
	bridge := usecases.NewCatalogBridge(catalog, m.config.PlaylistMax)

	loader := usecases.NewTrackLoaderService(
		m.resolverPool,
		infrastructure.NewFFmpegStreamFactory(),
		bridge,
		m.config.PlaylistMax,
	)

	sink := infrastructure.NewDiscordVoiceSink(deps.Session)
	notifier := infrastructure.NewDiscordNotifier(deps.Session)

	m.coordinator = usecases.NewPlaybackCoordinator(
		sink,
		loader,
		notifier,
		time.Duration(m.config.DisconnectTimeoutSeconds)*time.Second,
	)

	botID, err := snowflake.Parse(deps.Session.State.User.ID)
	if err != nil {
		return err
	}
	m.commandHandlers = presentation.NewCommandHandlers(m.coordinator)
	m.eventHandlers = presentation.NewEventHandlers(botID, m.coordinator)

	slog.Info("music module initialized",
		"resolver_workers", m.config.ResolverWorkers,
		"playlist_max", m.config.PlaylistMax)

	return nil
}

// Shutdown disconnects all guilds and stops the resolver pool.
func (m *Module) Shutdown() error {
	if m.coordinator != nil {
		m.coordinator.Shutdown(context.Background())
	}
	if m.resolverPool != nil {
		m.resolverPool.Close()
	}
	return nil
}
