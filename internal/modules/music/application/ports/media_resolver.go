package ports

import (
	"context"
)

// LookupOptions controls a MediaResolver lookup.
type LookupOptions struct {
	// MetadataOnly skips stream-URL acquisition. Discovery always sets this:
	// stream URLs are short-lived and would go stale while tracks sit in the
	// queue, and metadata-only lookups are substantially cheaper.
	MetadataOnly bool

	// PlaylistLimit caps the number of entries fetched from a collection.
	// Zero means the resolver's default.
	PlaylistLimit int
}

// MediaInfo is one resolved media entry. StreamURL is populated only by
// full (non-metadata-only) lookups.
type MediaInfo struct {
	Identifier   string
	Title        string
	WebpageURL   string
	StreamURL    string
	Duration     int // seconds, 0 = unknown/live
	Uploader     string
	UploaderURL  string
	ThumbnailURL string
}

// LookupResult is the outcome of a resolver lookup: either a single entry
// or a collection (playlist) of entries, in upstream order.
type LookupResult struct {
	Entries  []*MediaInfo
	Playlist bool
}

// MediaResolver resolves a free-text search term or direct media URL into
// track metadata, and optionally a playable stream URL. Implementations
// perform blocking network/subprocess I/O and must honor the context
// deadline.
type MediaResolver interface {
	Lookup(ctx context.Context, query string, opts LookupOptions) (*LookupResult, error)
}
