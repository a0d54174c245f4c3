package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kvisuru/musicbox/internal/modules/music/application/ports"
	"github.com/kvisuru/musicbox/internal/modules/music/domain"
)

// TrackLoaderService performs the two-phase fetch: fast metadata-only
// discovery at enqueue time, and slow stream resolution immediately before
// playback. Splitting the phases keeps play requests snappy and prevents
// short-lived stream URLs from expiring while tracks wait in the queue.
type TrackLoaderService struct {
	resolver    ports.MediaResolver
	pcm         ports.PCMStreamFactory
	bridge      *CatalogBridge
	playlistMax int
}

// NewTrackLoaderService creates a new TrackLoaderService.
func NewTrackLoaderService(
	resolver ports.MediaResolver,
	pcm ports.PCMStreamFactory,
	bridge *CatalogBridge,
	playlistMax int,
) *TrackLoaderService {
	return &TrackLoaderService{
		resolver:    resolver,
		pcm:         pcm,
		bridge:      bridge,
		playlistMax: playlistMax,
	}
}

// DiscoverOutput contains the result of a discovery call.
type DiscoverOutput struct {
	Tracks []domain.Track
	// Skipped collects per-entry failure descriptions. Individual bad
	// playlist entries never abort the remaining ones.
	Skipped []string
}

// Discover resolves a free-text search term, direct media URL, or foreign
// catalog reference into track metadata. No stream URLs are acquired.
// Returns a CatalogError or DiscoveryError when nothing playable came back;
// partial playlist failures are reported via Skipped instead.
func (s *TrackLoaderService) Discover(ctx context.Context, query string) (*DiscoverOutput, error) {
	if s.bridge != nil && s.bridge.Recognizes(query) {
		return s.discoverViaCatalog(ctx, query)
	}
	return s.discoverDirect(ctx, query)
}

// discoverDirect performs a single metadata-only lookup. A playlist query
// yields up to playlistMax tracks in upstream order.
func (s *TrackLoaderService) discoverDirect(
	ctx context.Context,
	query string,
) (*DiscoverOutput, error) {
	result, err := s.resolver.Lookup(ctx, query, ports.LookupOptions{
		MetadataOnly:  true,
		PlaylistLimit: s.playlistMax,
	})
	if err != nil {
		return nil, &DiscoveryError{Query: query, Err: err}
	}

	out := &DiscoverOutput{}
	entries := result.Entries
	if len(entries) > s.playlistMax {
		entries = entries[:s.playlistMax]
	}
	for _, entry := range entries {
		if entry == nil {
			out.Skipped = append(out.Skipped, "empty playlist entry")
			continue
		}
		out.Tracks = append(out.Tracks, trackFromInfo(entry))
	}

	if len(out.Tracks) == 0 {
		return nil, &DiscoveryError{Query: query}
	}
	return out, nil
}

// discoverViaCatalog translates the reference into search queries and
// discovers each independently, keeping only the best (first) match per
// query.
func (s *TrackLoaderService) discoverViaCatalog(
	ctx context.Context,
	reference string,
) (*DiscoverOutput, error) {
	queries, err := s.bridge.Translate(ctx, reference)
	if err != nil {
		return nil, err
	}
	slog.Info("translated catalog reference", "reference", reference, "queries", len(queries))

	out := &DiscoverOutput{}
	for _, query := range queries {
		result, err := s.resolver.Lookup(ctx, query, ports.LookupOptions{
			MetadataOnly:  true,
			PlaylistLimit: 1,
		})
		if err != nil {
			out.Skipped = append(out.Skipped, fmt.Sprintf("%s: %v", query, err))
			continue
		}
		if len(result.Entries) == 0 || result.Entries[0] == nil {
			out.Skipped = append(out.Skipped, fmt.Sprintf("%s: no results", query))
			continue
		}
		out.Tracks = append(out.Tracks, trackFromInfo(result.Entries[0]))
	}

	if len(out.Tracks) == 0 {
		return nil, &DiscoveryError{
			Query: reference,
			Err:   errors.New("none of the translated queries matched"),
		}
	}
	return out, nil
}

// Resolve re-queries the resolver with the track's canonical locator to
// obtain a fresh stream URL and opens the audio pipeline for it. The
// requester and notification-channel attributes are carried over from the
// track, never re-derived. If the locator expands into a collection, the
// first entry carrying a stream URL is selected.
func (s *TrackLoaderService) Resolve(
	ctx context.Context,
	track domain.Track,
) (*domain.PlayableSource, error) {
	locator := track.WebpageURL
	if locator == "" && track.Identifier != "" {
		locator = "https://www.youtube.com/watch?v=" + track.Identifier
	}
	if locator == "" {
		return nil, &ResolutionError{Title: track.Title, Err: errors.New("no locator available")}
	}

	result, err := s.resolver.Lookup(ctx, locator, ports.LookupOptions{
		MetadataOnly:  false,
		PlaylistLimit: 1,
	})
	if err != nil {
		return nil, &ResolutionError{Title: track.Title, Err: err}
	}

	var info *ports.MediaInfo
	for _, entry := range result.Entries {
		if entry != nil && entry.StreamURL != "" {
			info = entry
			break
		}
	}
	if info == nil {
		return nil, &ResolutionError{Title: track.Title, Err: errors.New("no stream URL available")}
	}

	audio, err := s.pcm.Open(ctx, info.StreamURL)
	if err != nil {
		return nil, &ResolutionError{Title: track.Title, Err: err}
	}

	resolved := trackFromInfo(info).WithRequester(
		track.RequesterID,
		track.RequesterName,
		track.RequesterAvatarURL,
		track.ChannelID,
	)
	if resolved.Title == "" {
		resolved.Title = track.Title
	}
	if resolved.Uploader == "" {
		resolved.Uploader = track.Uploader
	}

	return domain.NewPlayableSource(resolved, info.StreamURL, audio), nil
}

func trackFromInfo(info *ports.MediaInfo) domain.Track {
	return domain.Track{
		Title:        info.Title,
		WebpageURL:   info.WebpageURL,
		Identifier:   info.Identifier,
		Duration:     info.Duration,
		Uploader:     info.Uploader,
		UploaderURL:  info.UploaderURL,
		ThumbnailURL: info.ThumbnailURL,
	}
}
