package domain

import "io"

// DefaultVolume is the volume multiplier applied to freshly resolved sources.
const DefaultVolume = 0.5

// AudioStream is an open, decoded PCM audio pipeline handle. Reads yield
// interleaved 16-bit little-endian stereo samples at 48kHz. Closing the
// stream tears down the underlying pipeline.
type AudioStream interface {
	io.ReadCloser
}

// PlayableSource is a Track bound to a live, streamable audio handle,
// produced by the resolution step immediately before playback. Ownership is
// transient: the source is consumed by exactly one playback attempt and the
// stream is closed when playback ends, errors, or is stopped.
type PlayableSource struct {
	Track

	StreamURL string // short-lived direct media URL
	Volume    float64
	Audio     AudioStream
}

// NewPlayableSource binds a track to its resolved stream.
func NewPlayableSource(track Track, streamURL string, audio AudioStream) *PlayableSource {
	return &PlayableSource{
		Track:     track,
		StreamURL: streamURL,
		Volume:    DefaultVolume,
		Audio:     audio,
	}
}

// Close releases the audio pipeline. Safe to call on a nil source.
func (s *PlayableSource) Close() error {
	if s == nil || s.Audio == nil {
		return nil
	}
	return s.Audio.Close()
}
