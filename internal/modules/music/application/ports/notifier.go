package ports

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/kvisuru/musicbox/internal/modules/music/domain"
)

// Notifier posts playback notices to text channels. Send failures are the
// notifier's problem: callers fire and forget, and a dropped notice never
// affects queue state.
type Notifier interface {
	// NowPlaying posts the "Now Playing" embed for a freshly started source.
	NowPlaying(channelID snowflake.ID, source *domain.PlayableSource)

	// Info posts a plain informational message.
	Info(channelID snowflake.ID, message string)

	// Error posts an error notice (skip reasons, playback failures).
	Error(channelID snowflake.ID, message string)
}
