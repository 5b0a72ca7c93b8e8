package scrobble

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Config holds service configuration.
type Config struct {
	APIKey     string              // Required: audioscrobbler API key
	HTTPClient *http.Client        // Optional: HTTP client (defaults to a 25s-timeout client)
	CacheSize  int                 // Optional: transport cache capacity (defaults to 100)
	CacheTTL   time.Duration       // Optional: transport cache TTL (defaults to 300s)
	BaseURLs   map[Provider]string // Optional: per-provider base URL override (used for testing)
	AllowHTTP  bool                // Optional: permit plain-http base URLs (used for testing)
	Logger     zerolog.Logger
}

// Service is the aggregation facade. Every public operation routes to the
// provider adapter matching the Provider argument and returns normalized
// entities or a typed failure; errors from the adapters pass through
// untouched. Safe for concurrent use.
type Service struct {
	cached   *Client
	uncached *Client
	apiKey   string
	baseURLs map[Provider]string
	logger   zerolog.Logger
}

// NewService creates the facade along with its two transport clients: a
// caching one used by every read operation here, and a non-caching one for
// collaborators that need guaranteed-fresh responses.
//
// Returns an error if required configuration (APIKey) is missing.
func NewService(cfg Config) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("scrobble: APIKey is required")
	}

	clientCfg := ClientConfig{
		HTTPClient: cfg.HTTPClient,
		CacheSize:  cfg.CacheSize,
		CacheTTL:   cfg.CacheTTL,
		AllowHTTP:  cfg.AllowHTTP,
		Logger:     cfg.Logger,
	}
	cached := NewClient(clientCfg)
	clientCfg.DisableCache = true
	uncached := NewClient(clientCfg)

	return &Service{
		cached:   cached,
		uncached: uncached,
		apiKey:   cfg.APIKey,
		baseURLs: cfg.BaseURLs,
		logger:   cfg.Logger.With().Str("component", "scrobble").Logger(),
	}, nil
}

// baseURL resolves the provider root, honoring test overrides.
func (s *Service) baseURL(p Provider) string {
	if u, ok := s.baseURLs[p]; ok {
		return u
	}
	return p.BaseURL()
}

// CachedTransport returns the caching transport client.
func (s *Service) CachedTransport() *Client { return s.cached }

// UncachedTransport returns the non-caching transport client, for callers
// where served-stale data is never acceptable.
func (s *Service) UncachedTransport() *Client { return s.uncached }

// RecentTracks returns the user's most recent listens, currently-playing
// entries first. preferCached allows a response up to the cache TTL old;
// status displays want this, refresh-after-action callers do not.
func (s *Service) RecentTracks(ctx context.Context, username string, p Provider, preferCached bool, limit int) ([]Track, error) {
	fresh := MustRevalidate
	if preferCached {
		fresh = PreferCached
	}

	if p == Listenbrainz {
		return s.listenbrainzRecentTracks(ctx, username, fresh, limit)
	}
	return s.lastfmRecentTracks(ctx, username, p, fresh, limit)
}

// LovedTracks returns the user's loved (or positively-rated) tracks.
func (s *Service) LovedTracks(ctx context.Context, username string, p Provider) ([]Track, error) {
	if p == Listenbrainz {
		return s.listenbrainzLovedTracks(ctx, username)
	}
	return s.lastfmLovedTracks(ctx, username, p)
}

// TopAlbums returns the user's most-played albums for the period, in
// provider rank order. limit <= 0 uses the provider's default page size.
func (s *Service) TopAlbums(ctx context.Context, username string, p Provider, period TimePeriod, limit int) ([]Album, error) {
	if p == Listenbrainz {
		return s.listenbrainzTopAlbums(ctx, username, period, limit)
	}
	return s.lastfmTopAlbums(ctx, username, p, period, limit)
}

// TopArtists returns the user's most-played artists for the period.
func (s *Service) TopArtists(ctx context.Context, username string, p Provider, period TimePeriod, limit int) ([]Artist, error) {
	if p == Listenbrainz {
		return s.listenbrainzTopArtists(ctx, username, period, limit)
	}
	return s.lastfmTopArtists(ctx, username, p, period, limit)
}

// TopTracks returns the user's most-played tracks for the period.
func (s *Service) TopTracks(ctx context.Context, username string, p Provider, period TimePeriod, limit int) ([]Track, error) {
	if p == Listenbrainz {
		return s.listenbrainzTopTracks(ctx, username, period, limit)
	}
	return s.lastfmTopTracks(ctx, username, p, period, limit)
}

// UserInfo returns the user's profile summary.
func (s *Service) UserInfo(ctx context.Context, username string, p Provider) (*User, error) {
	if p == Listenbrainz {
		return s.listenbrainzUserInfo(ctx, username)
	}
	return s.lastfmUserInfo(ctx, username, p)
}

// TrackInfo returns global and per-user stats for one track. Detail data
// comes from the Lastfm catalog regardless of where the user scrobbles.
func (s *Service) TrackInfo(ctx context.Context, username, artist, track string) (*Track, error) {
	return s.lastfmTrackInfo(ctx, username, artist, track)
}

// AlbumInfo returns global and per-user stats for one album.
func (s *Service) AlbumInfo(ctx context.Context, username, artist, album string) (*Album, error) {
	return s.lastfmAlbumInfo(ctx, username, artist, album)
}

// ArtistInfo returns global and per-user stats for one artist.
func (s *Service) ArtistInfo(ctx context.Context, username, artist string) (*Artist, error) {
	return s.lastfmArtistInfo(ctx, username, artist)
}

// TrackWithArtistInfo fetches the track detail and its artist detail
// concurrently. Used for now-playing info panels, where issuing the two
// lookups sequentially would double the latency.
func (s *Service) TrackWithArtistInfo(ctx context.Context, username, artist, track string) (*Track, *Artist, error) {
	var (
		t *Track
		a *Artist
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		t, err = s.lastfmTrackInfo(ctx, username, artist, track)
		return err
	})
	g.Go(func() error {
		var err error
		a, err = s.lastfmArtistInfo(ctx, username, artist)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return t, a, nil
}
