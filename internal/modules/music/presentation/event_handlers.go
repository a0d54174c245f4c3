package presentation

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"

	"github.com/kvisuru/musicbox/internal/modules/music/application/usecases"
)

// EventHandlers handles Discord gateway events for the music module.
type EventHandlers struct {
	botID       snowflake.ID
	coordinator *usecases.PlaybackCoordinator
}

// NewEventHandlers creates a new EventHandlers.
func NewEventHandlers(botID snowflake.ID, coordinator *usecases.PlaybackCoordinator) *EventHandlers {
	return &EventHandlers{
		botID:       botID,
		coordinator: coordinator,
	}
}

// HandleVoiceStateUpdate watches for the bot being left alone in a voice
// channel and tears playback down when that happens.
func (h *EventHandlers) HandleVoiceStateUpdate(
	s *discordgo.Session,
	event *discordgo.VoiceStateUpdate,
) {
	guild, err := s.State.Guild(event.GuildID)
	if err != nil {
		return
	}

	s.State.RLock()
	var botChannelID string
	listeners := 0
	for _, vs := range guild.VoiceStates {
		if vs.UserID == h.botID.String() {
			botChannelID = vs.ChannelID
			break
		}
	}
	if botChannelID != "" {
		for _, vs := range guild.VoiceStates {
			if vs.ChannelID == botChannelID && vs.UserID != h.botID.String() {
				listeners++
			}
		}
	}
	s.State.RUnlock()

	if botChannelID == "" || listeners > 0 {
		return
	}

	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice state update", "error", err)
		return
	}

	// Run off the gateway goroutine; teardown can block on the voice
	// connection.
	go h.coordinator.HandleListenersLeft(context.Background(), guildID)
}
