package usecases

import (
	"context"
	"regexp"
	"strings"

	"github.com/kvisuru/musicbox/internal/modules/music/application/ports"
)

// catalogPageLimit is the upstream's fixed per-request item limit.
const catalogPageLimit = 100

// Reference shapes: https://open.spotify.com/track/ID and spotify:track:ID
// style URIs, likewise for playlists and albums.
var (
	catalogTrackPattern    = regexp.MustCompile(`(?:track[/:])([\w-]+)`)
	catalogPlaylistPattern = regexp.MustCompile(`(?:playlist[/:])([\w-]+)`)
	catalogAlbumPattern    = regexp.MustCompile(`(?:album[/:])([\w-]+)`)
)

// CatalogBridge translates foreign-catalog references (Spotify links) into
// plain search queries consumable by the media resolver. It is purely a
// producer of search strings; it never touches the queue or the media
// resolver itself.
type CatalogBridge struct {
	resolver ports.CatalogResolver // nil when credentials are unconfigured
	maxItems int
}

// NewCatalogBridge creates a CatalogBridge. resolver may be nil to indicate
// that catalog credentials are not configured; Translate then fails up
// front instead of through a doomed upstream call.
func NewCatalogBridge(resolver ports.CatalogResolver, maxItems int) *CatalogBridge {
	return &CatalogBridge{
		resolver: resolver,
		maxItems: maxItems,
	}
}

// Recognizes reports whether the query looks like a reference into the
// foreign catalog.
func (b *CatalogBridge) Recognizes(query string) bool {
	return strings.Contains(query, "spotify.com") ||
		strings.Contains(query, "open.spotify") ||
		strings.HasPrefix(query, "spotify:")
}

// Translate resolves a catalog reference into one or more
// "<artists> - <title>" search queries: one for a track reference, up to
// maxItems for playlist and album references.
func (b *CatalogBridge) Translate(ctx context.Context, reference string) ([]string, error) {
	if b.resolver == nil {
		return nil, &CatalogError{Reference: reference, Err: ErrCatalogUnconfigured}
	}

	if m := catalogTrackPattern.FindStringSubmatch(reference); m != nil {
		item, err := b.resolver.LookupItem(ctx, m[1])
		if err != nil {
			return nil, &CatalogError{Reference: reference, Err: err}
		}
		return []string{searchQueryFor(item)}, nil
	}

	if m := catalogPlaylistPattern.FindStringSubmatch(reference); m != nil {
		return b.translatePaged(ctx, reference, m[1], b.resolver.LookupCollection)
	}

	if m := catalogAlbumPattern.FindStringSubmatch(reference); m != nil {
		return b.translatePaged(ctx, reference, m[1], b.resolver.LookupRelease)
	}

	return nil, &CatalogError{Reference: reference, Err: ErrMalformedReference}
}

type pagedLookup func(ctx context.Context, id string, offset, limit int) (*ports.CatalogPage, error)

// translatePaged walks a collection page by page until the upstream is
// exhausted or maxItems queries have been produced. Entries with missing
// item data are skipped without failing the whole translation.
func (b *CatalogBridge) translatePaged(
	ctx context.Context,
	reference, id string,
	lookup pagedLookup,
) ([]string, error) {
	queries := make([]string, 0, b.maxItems)
	offset := 0

	for len(queries) < b.maxItems {
		limit := min(catalogPageLimit, b.maxItems-len(queries))
		page, err := lookup(ctx, id, offset, limit)
		if err != nil {
			return nil, &CatalogError{Reference: reference, Err: err}
		}
		if len(page.Items) == 0 {
			break
		}

		for _, item := range page.Items {
			if item == nil || item.Title == "" {
				continue
			}
			queries = append(queries, searchQueryFor(item))
			if len(queries) >= b.maxItems {
				break
			}
		}

		if !page.HasMore {
			break
		}
		offset += len(page.Items)
	}

	return queries, nil
}

func searchQueryFor(item *ports.CatalogItem) string {
	return strings.Join(item.Artists, ", ") + " - " + item.Title
}
