package domain

import (
	"strconv"

	"github.com/disgoorg/snowflake/v2"
)

// Track represents one discovered song's identity and metadata, prior to
// stream resolution. Tracks are value objects: once created they are never
// mutated, and replaying a track (repeat mode) resolves a fresh
// PlayableSource instead of touching the original.
type Track struct {
	Title        string
	WebpageURL   string // canonical locator used for stream resolution
	Identifier   string // upstream video/track ID, fallback locator source
	Duration     int    // seconds, 0 = unknown or live
	Uploader     string
	UploaderURL  string
	ThumbnailURL string

	// Requester context, stamped when the play request enqueues the track.
	// The resolver has no notion of the requesting user, so these are
	// carried forward into the PlayableSource verbatim.
	RequesterID        snowflake.ID
	RequesterName      string
	RequesterAvatarURL string
	ChannelID          snowflake.ID // text channel for now-playing notices
}

// WithRequester returns a copy of the track stamped with the requesting user
// and the channel that now-playing notices should go to.
func (t Track) WithRequester(
	requesterID snowflake.ID,
	requesterName string,
	requesterAvatarURL string,
	channelID snowflake.ID,
) Track {
	t.RequesterID = requesterID
	t.RequesterName = requesterName
	t.RequesterAvatarURL = requesterAvatarURL
	t.ChannelID = channelID
	return t
}

// IsLive returns true if the track has no known finite duration.
func (t Track) IsLive() bool {
	return t.Duration == 0
}

// FormattedDuration returns the duration as a human-readable string
// (mm:ss or hh:mm:ss), or "LIVE" for streams with unknown duration.
func (t Track) FormattedDuration() string {
	if t.IsLive() {
		return "LIVE"
	}

	hours := t.Duration / 3600
	minutes := (t.Duration % 3600) / 60
	seconds := t.Duration % 60

	if hours > 0 {
		return pad(hours) + ":" + pad(minutes) + ":" + pad(seconds)
	}
	return pad(minutes) + ":" + pad(seconds)
}

func pad(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
