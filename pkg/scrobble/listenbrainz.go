package scrobble

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"
)

// Adapter for ListenBrainz. Nothing here is shared with the audioscrobbler
// path: the URL shapes, pagination parameters and field names are all
// different, and recent tracks require a two-step playing-now/listens
// sequence.

const (
	listenbrainzStatsLimit  = 100
	listenbrainzRecentCount = 3
	listenbrainzLovedCount  = 5

	// coverArtURL is the template for resolving a release MBID to album
	// art via the Cover Art Archive.
	coverArtURL = "https://coverartarchive.org/release/%s/front-%d"
)

// listenbrainzArt resolves a release MBID to a Cover Art Archive URL, or ""
// when no MBID is present. size is the edge length of the thumbnail.
func listenbrainzArt(mbid string, size int) string {
	if mbid == "" {
		return ""
	}
	return fmt.Sprintf(coverArtURL, mbid, size)
}

// parseListenbrainzTracks normalizes a listens/feedback/recordings array.
// Elements either carry their fields under "track_metadata" or directly on
// the element itself; both shapes occur across endpoints. Pure.
func parseListenbrainzTracks(v any, nowPlaying bool) []Track {
	arr := jsonArray(v)
	tracks := make([]Track, 0, len(arr))
	for _, t := range arr {
		meta := t
		if m := jsonGet(t, "track_metadata"); m != nil {
			meta = m
		}

		tracks = append(tracks, Track{
			Name:        jsonString(meta, "track_name"),
			Album:       jsonString(meta, "release_name"),
			Artist:      jsonString(meta, "artist_name"),
			AlbumArtURL: listenbrainzArt(jsonString(meta, "release_mbid"), 250),
			Date:        int64(jsonUint(t, "listened_at")),
			UserPlays:   jsonUint(meta, "listen_count"),
			NowPlaying:  nowPlaying,
		})
	}
	return tracks
}

// listenbrainzURL joins path (with the username already escaped) and query
// onto the provider base.
func (s *Service) listenbrainzURL(path string, params url.Values) string {
	u := s.baseURL(Listenbrainz) + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// listenbrainzRecentTracks runs the two-step sequence: probe playing-now
// first, and only fall through to historical listens when the probe is empty
// or the caller wants more than the current track. The probe result is
// concatenated ahead of history.
func (s *Service) listenbrainzRecentTracks(ctx context.Context, username string, fresh Freshness, limit int) ([]Track, error) {
	user := url.PathEscape(username)

	root, err := s.cached.GetJSON(ctx, s.listenbrainzURL("user/"+user+"/playing-now", nil), fresh)
	if err != nil {
		return nil, err
	}
	if jsonObject(root, "payload") == nil {
		return nil, &MalformedError{Path: "payload"}
	}
	tracks := parseListenbrainzTracks(jsonGet(root, "payload", "listens"), true)

	if len(tracks) > 0 && limit == 1 {
		return tracks, nil
	}

	params := url.Values{}
	params.Set("count", fmt.Sprint(listenbrainzRecentCount))
	root, err = s.cached.GetJSON(ctx, s.listenbrainzURL("user/"+user+"/listens", params), fresh)
	if err != nil {
		return nil, err
	}
	if jsonObject(root, "payload") == nil {
		return nil, &MalformedError{Path: "payload"}
	}

	return append(tracks, parseListenbrainzTracks(jsonGet(root, "payload", "listens"), false)...), nil
}

func (s *Service) listenbrainzLovedTracks(ctx context.Context, username string) ([]Track, error) {
	params := url.Values{}
	params.Set("metadata", "true")
	params.Set("count", fmt.Sprint(listenbrainzLovedCount))

	root, err := s.cached.GetJSON(ctx, s.listenbrainzURL("user/"+url.PathEscape(username)+"/get-feedback", params), PreferCached)
	if err != nil {
		return nil, err
	}
	if jsonArray(root, "feedback") == nil {
		return nil, &MalformedError{Path: "feedback"}
	}

	tracks := parseListenbrainzTracks(jsonGet(root, "feedback"), false)
	for i := range tracks {
		tracks[i].UserLoved = true
	}
	return tracks, nil
}

// listenbrainzStats fetches one of the stats collections (artists, releases,
// recordings) and returns the payload array under key. The period literal is
// resolved before any I/O.
func (s *Service) listenbrainzStats(ctx context.Context, username, collection, key string, period TimePeriod, limit int) ([]any, error) {
	if limit <= 0 {
		limit = listenbrainzStatsLimit
	}
	params := url.Values{}
	params.Set("range", Listenbrainz.PeriodParam(period))
	params.Set("count", fmt.Sprint(limit))

	root, err := s.cached.GetJSON(ctx, s.listenbrainzURL("stats/user/"+url.PathEscape(username)+"/"+collection, params), PreferCached)
	if err != nil {
		return nil, err
	}
	arr := jsonArray(root, "payload", key)
	if arr == nil {
		return nil, &MalformedError{Path: "payload." + key}
	}
	return arr, nil
}

func (s *Service) listenbrainzTopAlbums(ctx context.Context, username string, period TimePeriod, limit int) ([]Album, error) {
	arr, err := s.listenbrainzStats(ctx, username, "releases", "releases", period, limit)
	if err != nil {
		return nil, err
	}

	albums := make([]Album, 0, len(arr))
	for _, a := range arr {
		albums = append(albums, Album{
			Name:        jsonString(a, "release_name"),
			Artist:      jsonString(a, "artist_name"),
			AlbumArtURL: listenbrainzArt(jsonString(a, "release_mbid"), 500),
			UserPlays:   jsonUint(a, "listen_count"),
		})
	}
	return albums, nil
}

func (s *Service) listenbrainzTopArtists(ctx context.Context, username string, period TimePeriod, limit int) ([]Artist, error) {
	arr, err := s.listenbrainzStats(ctx, username, "artists", "artists", period, limit)
	if err != nil {
		return nil, err
	}

	artists := make([]Artist, 0, len(arr))
	for _, a := range arr {
		artists = append(artists, Artist{
			Name:      jsonString(a, "artist_name"),
			UserPlays: jsonUint(a, "listen_count"),
		})
	}
	return artists, nil
}

func (s *Service) listenbrainzTopTracks(ctx context.Context, username string, period TimePeriod, limit int) ([]Track, error) {
	arr, err := s.listenbrainzStats(ctx, username, "recordings", "recordings", period, limit)
	if err != nil {
		return nil, err
	}
	return parseListenbrainzTracks(arr, false), nil
}

// listenbrainzUserInfo assembles a profile summary from four independent
// endpoints: listen count plus the artist/release/recording totals. The four
// calls are dispatched concurrently and all must succeed; a partial profile
// would be indistinguishable from real zero counts.
func (s *Service) listenbrainzUserInfo(ctx context.Context, username string) (*User, error) {
	user := url.PathEscape(username)
	statsRange := url.Values{}
	statsRange.Set("range", Listenbrainz.PeriodParam(AllTime))

	g, ctx := errgroup.WithContext(ctx)

	fetchCount := func(path, field string, params url.Values, out *uint64) func() error {
		return func() error {
			root, err := s.cached.GetJSON(ctx, s.listenbrainzURL(path, params), PreferCached)
			if err != nil {
				return err
			}
			if jsonObject(root, "payload") == nil {
				return &MalformedError{Path: "payload"}
			}
			*out = jsonUint(root, "payload", field)
			return nil
		}
	}

	u := &User{Username: username}
	g.Go(fetchCount("user/"+user+"/listen-count", "count", nil, &u.Playcount))
	g.Go(fetchCount("stats/user/"+user+"/artists", "total_artist_count", statsRange, &u.ArtistCount))
	g.Go(fetchCount("stats/user/"+user+"/releases", "total_release_count", statsRange, &u.AlbumCount))
	g.Go(fetchCount("stats/user/"+user+"/recordings", "total_recording_count", statsRange, &u.TrackCount))
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return u, nil
}
