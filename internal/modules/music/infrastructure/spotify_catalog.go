package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/zmb3/spotify"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/kvisuru/musicbox/internal/modules/music/application/ports"
)

// SpotifyCatalog resolves Spotify entities via the Web API using the
// client-credentials flow. Tokens are refreshed automatically by the
// underlying oauth2 transport.
type SpotifyCatalog struct {
	client spotify.Client
}

var _ ports.CatalogResolver = (*SpotifyCatalog)(nil)

// NewSpotifyCatalog creates a catalog resolver authenticated with the given
// application credentials. No network call is made until the first lookup.
func NewSpotifyCatalog(clientID, clientSecret string) *SpotifyCatalog {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotify.TokenURL,
	}
	httpClient := config.Client(context.Background())
	return &SpotifyCatalog{client: spotify.NewClient(httpClient)}
}

// LookupItem implements ports.CatalogResolver.
func (c *SpotifyCatalog) LookupItem(ctx context.Context, id string) (*ports.CatalogItem, error) {
	track, err := c.client.GetTrack(spotify.ID(id))
	if err != nil {
		return nil, mapSpotifyError(err)
	}
	return &ports.CatalogItem{
		Title:   track.Name,
		Artists: artistNames(track.Artists),
	}, nil
}

// LookupCollection implements ports.CatalogResolver.
func (c *SpotifyCatalog) LookupCollection(
	ctx context.Context,
	id string,
	offset, limit int,
) (*ports.CatalogPage, error) {
	opt := &spotify.Options{Offset: &offset, Limit: &limit}
	page, err := c.client.GetPlaylistTracksOpt(spotify.ID(id), opt, "")
	if err != nil {
		return nil, mapSpotifyError(err)
	}

	// Local files and removed tracks come back without a name; they are
	// passed through as empty items so page offsets stay aligned, and the
	// caller skips them.
	items := make([]*ports.CatalogItem, 0, len(page.Tracks))
	for _, entry := range page.Tracks {
		items = append(items, &ports.CatalogItem{
			Title:   entry.Track.Name,
			Artists: artistNames(entry.Track.Artists),
		})
	}
	return &ports.CatalogPage{
		Items:   items,
		HasMore: offset+len(page.Tracks) < page.Total,
	}, nil
}

// LookupRelease implements ports.CatalogResolver.
func (c *SpotifyCatalog) LookupRelease(
	ctx context.Context,
	id string,
	offset, limit int,
) (*ports.CatalogPage, error) {
	opt := &spotify.Options{Offset: &offset, Limit: &limit}
	page, err := c.client.GetAlbumTracksOpt(spotify.ID(id), opt)
	if err != nil {
		return nil, mapSpotifyError(err)
	}

	items := make([]*ports.CatalogItem, 0, len(page.Tracks))
	for _, track := range page.Tracks {
		items = append(items, &ports.CatalogItem{
			Title:   track.Name,
			Artists: artistNames(track.Artists),
		})
	}
	return &ports.CatalogPage{
		Items:   items,
		HasMore: offset+len(page.Tracks) < page.Total,
	}, nil
}

// mapSpotifyError translates Spotify HTTP statuses into the catalog's
// sentinel errors so upper layers can phrase them for users.
func mapSpotifyError(err error) error {
	var spotifyErr spotify.Error
	if errors.As(err, &spotifyErr) {
		switch spotifyErr.Status {
		case http.StatusNotFound:
			return ports.ErrCatalogNotFound
		case http.StatusForbidden:
			return ports.ErrCatalogForbidden
		}
	}
	return fmt.Errorf("spotify api: %w", err)
}

func artistNames(artists []spotify.SimpleArtist) []string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return names
}
