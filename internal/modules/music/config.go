package music

import "fmt"

// Config holds the music module configuration.
type Config struct {
	// PlaylistMax caps the number of tracks a single play request may
	// enqueue from a playlist or catalog collection.
	PlaylistMax int `env:"PLAYLIST_MAX" envDefault:"100"`

	// ResolverWorkers is the number of concurrent media lookups.
	ResolverWorkers int `env:"RESOLVER_WORKERS" envDefault:"4"`

	// ResolverTimeoutSeconds bounds each individual media lookup.
	ResolverTimeoutSeconds int `env:"RESOLVER_TIMEOUT" envDefault:"30"`

	// DisconnectTimeoutSeconds is how long the bot stays in a voice channel
	// with nothing to play before leaving.
	DisconnectTimeoutSeconds int `env:"DISCONNECT_TIMEOUT" envDefault:"300"`

	// Spotify API credentials. Optional: without them Spotify links are
	// rejected with a configuration hint, everything else works.
	SpotifyClientID     string `env:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `env:"SPOTIFY_CLIENT_SECRET"`
}

// Validate checks the configuration for nonsensical values.
func (c *Config) Validate() error {
	if c.PlaylistMax < 1 {
		return fmt.Errorf("PLAYLIST_MAX must be positive, got %d", c.PlaylistMax)
	}
	if c.ResolverWorkers < 1 {
		return fmt.Errorf("RESOLVER_WORKERS must be positive, got %d", c.ResolverWorkers)
	}
	if c.ResolverTimeoutSeconds < 1 {
		return fmt.Errorf("RESOLVER_TIMEOUT must be positive, got %d", c.ResolverTimeoutSeconds)
	}
	if c.DisconnectTimeoutSeconds < 1 {
		return fmt.Errorf("DISCONNECT_TIMEOUT must be positive, got %d", c.DisconnectTimeoutSeconds)
	}
	return nil
}

// HasSpotify reports whether Spotify credentials are configured.
func (c *Config) HasSpotify() bool {
	return c.SpotifyClientID != "" && c.SpotifyClientSecret != ""
}
