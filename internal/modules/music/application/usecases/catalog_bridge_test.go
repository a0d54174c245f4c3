package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kvisuru/musicbox/internal/modules/music/application/ports"
)

// mockCatalogResolver is a test double for ports.CatalogResolver.
type mockCatalogResolver struct {
	item    *ports.CatalogItem
	itemErr error

	// pages is served page by page across LookupCollection/LookupRelease
	// calls, keyed by offset.
	pages    map[int]*ports.CatalogPage
	pageErr  error
	requests []int
}

func (m *mockCatalogResolver) LookupItem(ctx context.Context, id string) (*ports.CatalogItem, error) {
	return m.item, m.itemErr
}

func (m *mockCatalogResolver) LookupCollection(
	ctx context.Context,
	id string,
	offset, limit int,
) (*ports.CatalogPage, error) {
	m.requests = append(m.requests, offset)
	if m.pageErr != nil {
		return nil, m.pageErr
	}
	page, ok := m.pages[offset]
	if !ok {
		return &ports.CatalogPage{}, nil
	}
	return page, nil
}

func (m *mockCatalogResolver) LookupRelease(
	ctx context.Context,
	id string,
	offset, limit int,
) (*ports.CatalogPage, error) {
	return m.LookupCollection(ctx, id, offset, limit)
}

func catalogItems(count, start int) []*ports.CatalogItem {
	items := make([]*ports.CatalogItem, count)
	for i := range items {
		items[i] = &ports.CatalogItem{
			Title:   fmt.Sprintf("song %d", start+i),
			Artists: []string{"artist"},
		}
	}
	return items
}

func TestCatalogBridge_Recognizes(t *testing.T) {
	bridge := NewCatalogBridge(nil, 100)

	recognized := []string{
		"https://open.spotify.com/track/abc123",
		"https://open.spotify.com/playlist/xyz?si=foo",
		"spotify:album:def456",
	}
	for _, query := range recognized {
		if !bridge.Recognizes(query) {
			t.Errorf("expected %q to be recognized", query)
		}
	}

	unrecognized := []string{
		"never gonna give you up",
		"https://www.youtube.com/watch?v=abc",
	}
	for _, query := range unrecognized {
		if bridge.Recognizes(query) {
			t.Errorf("expected %q not to be recognized", query)
		}
	}
}

func TestCatalogBridge_Translate_Unconfigured(t *testing.T) {
	bridge := NewCatalogBridge(nil, 100)

	_, err := bridge.Translate(context.Background(), "https://open.spotify.com/track/abc")
	if !errors.Is(err, ErrCatalogUnconfigured) {
		t.Errorf("expected ErrCatalogUnconfigured, got %v", err)
	}

	var catalogErr *CatalogError
	if !errors.As(err, &catalogErr) {
		t.Error("expected error to be a *CatalogError")
	}
}

func TestCatalogBridge_Translate_Track(t *testing.T) {
	resolver := &mockCatalogResolver{
		item: &ports.CatalogItem{Title: "Song", Artists: []string{"A", "B"}},
	}
	bridge := NewCatalogBridge(resolver, 100)

	queries, err := bridge.Translate(context.Background(), "https://open.spotify.com/track/abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queries) != 1 {
		t.Fatalf("expected 1 query, got %d", len(queries))
	}
	if queries[0] != "A, B - Song" {
		t.Errorf("unexpected query: %q", queries[0])
	}
}

func TestCatalogBridge_Translate_TrackNotFound(t *testing.T) {
	resolver := &mockCatalogResolver{itemErr: ports.ErrCatalogNotFound}
	bridge := NewCatalogBridge(resolver, 100)

	_, err := bridge.Translate(context.Background(), "spotify:track:missing")
	if !errors.Is(err, ports.ErrCatalogNotFound) {
		t.Errorf("expected ErrCatalogNotFound, got %v", err)
	}
}

func TestCatalogBridge_Translate_PlaylistPagination(t *testing.T) {
	resolver := &mockCatalogResolver{
		pages: map[int]*ports.CatalogPage{
			0:   {Items: catalogItems(100, 0), HasMore: true},
			100: {Items: catalogItems(50, 100), HasMore: false},
		},
	}
	bridge := NewCatalogBridge(resolver, 500)

	queries, err := bridge.Translate(
		context.Background(), "https://open.spotify.com/playlist/mix")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queries) != 150 {
		t.Errorf("expected 150 queries, got %d", len(queries))
	}
	if len(resolver.requests) != 2 {
		t.Errorf("expected 2 page requests, got %d", len(resolver.requests))
	}
}

func TestCatalogBridge_Translate_PlaylistCappedAtMaxItems(t *testing.T) {
	resolver := &mockCatalogResolver{
		pages: map[int]*ports.CatalogPage{
			0: {Items: catalogItems(100, 0), HasMore: true},
		},
	}
	bridge := NewCatalogBridge(resolver, 30)

	queries, err := bridge.Translate(context.Background(), "spotify:playlist:big")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queries) != 30 {
		t.Errorf("expected 30 queries, got %d", len(queries))
	}
	if len(resolver.requests) != 1 {
		t.Errorf("expected a single page request, got %d", len(resolver.requests))
	}
}

func TestCatalogBridge_Translate_SkipsEmptyItems(t *testing.T) {
	items := catalogItems(3, 0)
	items[1] = &ports.CatalogItem{} // local file without metadata
	resolver := &mockCatalogResolver{
		pages: map[int]*ports.CatalogPage{
			0: {Items: items},
		},
	}
	bridge := NewCatalogBridge(resolver, 100)

	queries, err := bridge.Translate(context.Background(), "spotify:album:rel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queries) != 2 {
		t.Errorf("expected 2 queries, got %d", len(queries))
	}
}

func TestCatalogBridge_Translate_MalformedReference(t *testing.T) {
	resolver := &mockCatalogResolver{}
	bridge := NewCatalogBridge(resolver, 100)

	_, err := bridge.Translate(context.Background(), "https://open.spotify.com/artist/abc")
	if !errors.Is(err, ErrMalformedReference) {
		t.Errorf("expected ErrMalformedReference, got %v", err)
	}
}
