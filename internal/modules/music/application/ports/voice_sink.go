package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/kvisuru/musicbox/internal/modules/music/domain"
)

// VoiceSink is the chat platform's voice transport: connection management
// and audio-frame transmission. The playback coordinator treats it as a
// black box.
type VoiceSink interface {
	// Connect joins the given voice channel, or moves there if already
	// connected elsewhere in the guild.
	Connect(ctx context.Context, guildID, channelID snowflake.ID) error

	// Disconnect leaves the guild's voice channel.
	Disconnect(ctx context.Context, guildID snowflake.ID) error

	// Play starts transmitting the source's audio. onFinished is invoked
	// exactly once when playback ends for any reason: natural completion
	// (nil), a transmission error, or Stop (nil). It is called from the
	// sink's own playback context, never from the caller's goroutine, so
	// implementations of onFinished must marshal back into the
	// coordinator rather than mutate queue state directly.
	Play(guildID snowflake.ID, source *domain.PlayableSource, onFinished func(error)) error

	// Stop aborts the current playback, triggering onFinished.
	Stop(guildID snowflake.ID)

	Pause(guildID snowflake.ID)
	Resume(guildID snowflake.ID)

	IsPlaying(guildID snowflake.ID) bool
	IsPaused(guildID snowflake.ID) bool

	// ConnectedChannel returns the voice channel the sink is connected to
	// in the guild, or zero when disconnected.
	ConnectedChannel(guildID snowflake.ID) snowflake.ID
}
