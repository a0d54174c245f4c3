package ports

import (
	"context"
	"errors"
)

// Catalog lookup failures that the bridge distinguishes in error messages.
var (
	// ErrCatalogNotFound is returned when the referenced catalog entity does
	// not exist or is private.
	ErrCatalogNotFound = errors.New("catalog entity not found or private")

	// ErrCatalogForbidden is returned when the upstream denies access to the
	// referenced catalog entity.
	ErrCatalogForbidden = errors.New("no permission to access catalog entity")
)

// CatalogItem is a single track's identity in the foreign catalog: enough
// to synthesize a search query, nothing more.
type CatalogItem struct {
	Title   string
	Artists []string
}

// CatalogPage is one page of items from a catalog collection. HasMore
// signals that another page exists beyond the returned items.
type CatalogPage struct {
	Items   []*CatalogItem
	HasMore bool
}

// CatalogResolver looks up entities in a secondary streaming-service
// catalog. It requires pre-configured credentials; an unconfigured resolver
// is represented as nil and must be checked before use.
type CatalogResolver interface {
	// LookupItem fetches a single track.
	LookupItem(ctx context.Context, id string) (*CatalogItem, error)

	// LookupCollection fetches one page of a playlist, starting at offset.
	LookupCollection(ctx context.Context, id string, offset, limit int) (*CatalogPage, error)

	// LookupRelease fetches one page of an album's track list.
	LookupRelease(ctx context.Context, id string, offset, limit int) (*CatalogPage, error)
}
