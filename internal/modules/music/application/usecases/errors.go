package usecases

import (
	"errors"
	"fmt"
)

// Guard errors for the music module's command surface.
var (
	// ErrNotConnected is returned when an operation requires the bot to be in
	// a voice channel.
	ErrNotConnected = errors.New("not connected to a voice channel")

	// ErrNotPlaying is returned when no track is currently playing.
	ErrNotPlaying = errors.New("nothing is currently playing")

	// ErrAlreadyPaused is returned when trying to pause while already paused.
	ErrAlreadyPaused = errors.New("playback is already paused")

	// ErrNotPaused is returned when trying to resume while not paused.
	ErrNotPaused = errors.New("playback is not paused")

	// ErrQueueEmpty is returned when an operation needs queued tracks and
	// there are none.
	ErrQueueEmpty = errors.New("the queue is empty")

	// ErrCatalogUnconfigured is returned when a catalog reference is used
	// without catalog credentials being configured.
	ErrCatalogUnconfigured = errors.New(
		"catalog support not configured: set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET")

	// ErrMalformedReference is returned for catalog references that match no
	// known shape.
	ErrMalformedReference = errors.New("unrecognized catalog reference")
)

// DiscoveryError means the metadata-only lookup for a play request produced
// nothing playable. It aborts the whole request and never partially
// enqueues.
type DiscoveryError struct {
	Query string
	Err   error
}

func (e *DiscoveryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("no results for %q", e.Query)
	}
	return fmt.Sprintf("discovery failed for %q: %v", e.Query, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// ResolutionError means stream acquisition failed for an already-discovered
// track. The continuation loop recovers from it locally by skipping the
// track.
type ResolutionError struct {
	Title string
	Err   error
}

func (e *ResolutionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("could not resolve a stream for %q", e.Title)
	}
	return fmt.Sprintf("could not resolve a stream for %q: %v", e.Title, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// CatalogError means translating a foreign-catalog reference failed. Like
// DiscoveryError it aborts the play request.
type CatalogError struct {
	Reference string
	Err       error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog lookup failed for %q: %v", e.Reference, e.Err)
}

func (e *CatalogError) Unwrap() error { return e.Err }
