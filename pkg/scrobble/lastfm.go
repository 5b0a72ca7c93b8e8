package scrobble

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Adapter for the audioscrobbler protocol shared by Lastfm and Librefm.
// The two services differ only in base URL; everything else, down to the
// string-encoded numerics and "#text" keys, is identical.

// lastfmPlaceholderArt is the md5 fingerprint embedded in the URL of the
// grey-star image Last.fm serves when an entity has no real art.
const lastfmPlaceholderArt = "2a96cbd8b46e442fc41c2b86b821562f"

const (
	defaultTopLimit    = 200 // audioscrobbler default page size for top charts
	defaultRecentLimit = 3
	defaultLovedLimit  = 5
)

// biggestImage extracts the largest image URL from an audioscrobbler "image"
// array (ordered small to large) on the given JSON object. The placeholder
// image counts as no art.
func biggestImage(v any) string {
	images := jsonArray(v, "image")
	if len(images) == 0 {
		return ""
	}
	u := jsonString(images[len(images)-1], "#text")
	if u == "" || strings.Contains(u, lastfmPlaceholderArt) {
		return ""
	}
	return u
}

// tagNames flattens an audioscrobbler tag array into the non-empty names.
func tagNames(v any, keys ...string) []string {
	var tags []string
	for _, t := range jsonArray(v, keys...) {
		if name := jsonString(t, "name"); name != "" {
			tags = append(tags, name)
		}
	}
	return tags
}

// audioscrobblerError surfaces an in-band error payload carried inside a 2xx
// response. Error code 6 means the requested user or entity does not exist.
func audioscrobblerError(root any) error {
	code := jsonUint(root, "error")
	msg := jsonString(root, "message")
	if msg == "" {
		msg = jsonString(root, "error", "#text")
	}
	if code == 0 && msg == "" {
		return nil
	}
	if code == 6 {
		return statusError(http.StatusNotFound)
	}
	if msg == "" {
		msg = msgGenericFailure
	}
	return &StatusError{StatusCode: http.StatusOK, Message: msg}
}

// parseAudioscrobblerTracks normalizes a recenttracks/lovedtracks track
// array. Pure; tolerates every field being absent.
func parseAudioscrobblerTracks(v any) []Track {
	arr := jsonArray(v)
	tracks := make([]Track, 0, len(arr))
	for _, t := range arr {
		// Extended responses nest the artist under "name", plain ones
		// under "#text".
		artist := jsonString(t, "artist", "#text")
		if artist == "" {
			artist = jsonString(t, "artist", "name")
		}

		tracks = append(tracks, Track{
			Name:        jsonString(t, "name"),
			Album:       jsonString(t, "album", "#text"),
			Artist:      artist,
			AlbumArtURL: biggestImage(t),
			Date:        int64(jsonUint(t, "date", "uts")),
			UserLoved:   jsonString(t, "loved") == "1",
			NowPlaying:  jsonString(t, "@attr", "nowplaying") == "true",
		})
	}
	return tracks
}

// parseAudioscrobblerTopAlbums normalizes a gettopalbums album array.
func parseAudioscrobblerTopAlbums(v any) []Album {
	arr := jsonArray(v)
	albums := make([]Album, 0, len(arr))
	for _, a := range arr {
		albums = append(albums, Album{
			Name:        jsonString(a, "name"),
			Artist:      jsonString(a, "artist", "name"),
			AlbumArtURL: biggestImage(a),
			UserPlays:   jsonUint(a, "playcount"),
		})
	}
	return albums
}

// parseAudioscrobblerTopArtists normalizes a gettopartists artist array.
func parseAudioscrobblerTopArtists(v any) []Artist {
	arr := jsonArray(v)
	artists := make([]Artist, 0, len(arr))
	for _, a := range arr {
		artists = append(artists, Artist{
			Name:      jsonString(a, "name"),
			UserPlays: jsonUint(a, "playcount"),
		})
	}
	return artists
}

// parseAudioscrobblerTopTracks normalizes a gettoptracks track array.
func parseAudioscrobblerTopTracks(v any) []Track {
	arr := jsonArray(v)
	tracks := make([]Track, 0, len(arr))
	for _, t := range arr {
		tracks = append(tracks, Track{
			Name:      jsonString(t, "name"),
			Artist:    jsonString(t, "artist", "name"),
			UserPlays: jsonUint(t, "playcount"),
		})
	}
	return tracks
}

// audioscrobblerURL builds a request URL against the provider's base.
func (s *Service) audioscrobblerURL(p Provider, method string, params url.Values) string {
	params.Set("method", method)
	params.Set("api_key", s.apiKey)
	params.Set("format", "json")
	return s.baseURL(p) + "?" + params.Encode()
}

func (s *Service) lastfmRecentTracks(ctx context.Context, username string, p Provider, fresh Freshness, limit int) ([]Track, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	params := url.Values{}
	params.Set("user", username)
	params.Set("extended", "1")
	params.Set("limit", strconv.Itoa(limit))

	root, err := s.cached.GetJSON(ctx, s.audioscrobblerURL(p, "user.getrecenttracks", params), fresh)
	if err != nil {
		return nil, err
	}
	if err := audioscrobblerError(root); err != nil {
		return nil, err
	}
	if jsonObject(root, "recenttracks") == nil {
		return nil, &MalformedError{Path: "recenttracks"}
	}
	return parseAudioscrobblerTracks(jsonGet(root, "recenttracks", "track")), nil
}

func (s *Service) lastfmLovedTracks(ctx context.Context, username string, p Provider) ([]Track, error) {
	params := url.Values{}
	params.Set("user", username)
	params.Set("limit", strconv.Itoa(defaultLovedLimit))

	root, err := s.cached.GetJSON(ctx, s.audioscrobblerURL(p, "user.getlovedtracks", params), PreferCached)
	if err != nil {
		return nil, err
	}
	if err := audioscrobblerError(root); err != nil {
		return nil, err
	}
	if jsonObject(root, "lovedtracks") == nil {
		return nil, &MalformedError{Path: "lovedtracks"}
	}
	tracks := parseAudioscrobblerTracks(jsonGet(root, "lovedtracks", "track"))
	// Everything on this endpoint is a loved track, but only extended
	// recent-track payloads carry the flag explicitly.
	for i := range tracks {
		tracks[i].UserLoved = true
	}
	return tracks, nil
}

// topParams builds the common query for the three top-chart endpoints. The
// period literal is resolved here, before any network I/O.
func topParams(username string, p Provider, period TimePeriod, limit int) url.Values {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	params := url.Values{}
	params.Set("user", username)
	params.Set("period", p.PeriodParam(period))
	params.Set("limit", strconv.Itoa(limit))
	return params
}

func (s *Service) lastfmTopAlbums(ctx context.Context, username string, p Provider, period TimePeriod, limit int) ([]Album, error) {
	root, err := s.cached.GetJSON(ctx, s.audioscrobblerURL(p, "user.gettopalbums", topParams(username, p, period, limit)), PreferCached)
	if err != nil {
		return nil, err
	}
	if err := audioscrobblerError(root); err != nil {
		return nil, err
	}
	if jsonArray(root, "topalbums", "album") == nil {
		return nil, &MalformedError{Path: "topalbums.album"}
	}
	return parseAudioscrobblerTopAlbums(jsonGet(root, "topalbums", "album")), nil
}

func (s *Service) lastfmTopArtists(ctx context.Context, username string, p Provider, period TimePeriod, limit int) ([]Artist, error) {
	root, err := s.cached.GetJSON(ctx, s.audioscrobblerURL(p, "user.gettopartists", topParams(username, p, period, limit)), PreferCached)
	if err != nil {
		return nil, err
	}
	if err := audioscrobblerError(root); err != nil {
		return nil, err
	}
	if jsonArray(root, "topartists", "artist") == nil {
		return nil, &MalformedError{Path: "topartists.artist"}
	}
	return parseAudioscrobblerTopArtists(jsonGet(root, "topartists", "artist")), nil
}

func (s *Service) lastfmTopTracks(ctx context.Context, username string, p Provider, period TimePeriod, limit int) ([]Track, error) {
	root, err := s.cached.GetJSON(ctx, s.audioscrobblerURL(p, "user.gettoptracks", topParams(username, p, period, limit)), PreferCached)
	if err != nil {
		return nil, err
	}
	if err := audioscrobblerError(root); err != nil {
		return nil, err
	}
	if jsonArray(root, "toptracks", "track") == nil {
		return nil, &MalformedError{Path: "toptracks.track"}
	}
	return parseAudioscrobblerTopTracks(jsonGet(root, "toptracks", "track")), nil
}

func (s *Service) lastfmUserInfo(ctx context.Context, username string, p Provider) (*User, error) {
	params := url.Values{}
	params.Set("user", username)

	root, err := s.cached.GetJSON(ctx, s.audioscrobblerURL(p, "user.getInfo", params), PreferCached)
	if err != nil {
		return nil, err
	}
	if err := audioscrobblerError(root); err != nil {
		return nil, err
	}
	userJSON := jsonObject(root, "user")
	if userJSON == nil {
		return nil, &MalformedError{Path: "user"}
	}

	registered := int64(jsonUint(userJSON, "registered", "#text"))
	if registered == 0 {
		registered = int64(jsonUint(userJSON, "registered", "unixtime"))
	}

	return &User{
		Username:      username,
		Playcount:     jsonUint(userJSON, "playcount"),
		ArtistCount:   jsonUint(userJSON, "artist_count"),
		AlbumCount:    jsonUint(userJSON, "album_count"),
		TrackCount:    jsonUint(userJSON, "track_count"),
		ProfilePicURL: biggestImage(userJSON),
		Registered:    registered,
	}, nil
}

// detailNotFound converts a 404 on a detail endpoint into the entity-level
// not-found failure.
func detailNotFound(err error, kind EntryType, name string) error {
	var se *StatusError
	if errors.As(err, &se) && se.NotFound() {
		return &EntityNotFoundError{Kind: kind, Name: name}
	}
	return err
}

// lastfmTrackInfo fetches a single track's global and per-user stats.
// Detail lookups always go to the Lastfm catalog; the mirrors do not carry
// per-entity stats.
func (s *Service) lastfmTrackInfo(ctx context.Context, username, artist, track string) (*Track, error) {
	params := url.Values{}
	params.Set("track", track)
	params.Set("artist", artist)
	params.Set("user", username)

	root, err := s.cached.GetJSON(ctx, s.audioscrobblerURL(Lastfm, "track.getInfo", params), PreferCached)
	if err != nil {
		return nil, detailNotFound(err, EntryTrack, track)
	}
	trackJSON := jsonObject(root, "track")
	if trackJSON == nil {
		return nil, &EntityNotFoundError{Kind: EntryTrack, Name: track}
	}

	return &Track{
		Name:      jsonString(trackJSON, "name"),
		Album:     jsonString(trackJSON, "album", "title"),
		Artist:    jsonString(trackJSON, "artist", "name"),
		Listeners: jsonUint(trackJSON, "listeners"),
		Playcount: jsonUint(trackJSON, "playcount"),
		Duration:  int64(jsonUint(trackJSON, "duration")),
		UserPlays: jsonUint(trackJSON, "userplaycount"),
		UserLoved: jsonString(trackJSON, "userloved") == "1",
		Tags:      tagNames(trackJSON, "toptags", "tag"),
	}, nil
}

// lastfmAlbumInfo fetches a single album's global and per-user stats.
func (s *Service) lastfmAlbumInfo(ctx context.Context, username, artist, album string) (*Album, error) {
	params := url.Values{}
	params.Set("album", album)
	params.Set("artist", artist)
	params.Set("user", username)

	root, err := s.cached.GetJSON(ctx, s.audioscrobblerURL(Lastfm, "album.getInfo", params), PreferCached)
	if err != nil {
		return nil, detailNotFound(err, EntryAlbum, album)
	}
	albumJSON := jsonObject(root, "album")
	if albumJSON == nil {
		return nil, &EntityNotFoundError{Kind: EntryAlbum, Name: album}
	}

	return &Album{
		Name:        jsonString(albumJSON, "name"),
		Artist:      jsonString(albumJSON, "artist"),
		AlbumArtURL: biggestImage(albumJSON),
		Listeners:   jsonUint(albumJSON, "listeners"),
		Playcount:   jsonUint(albumJSON, "playcount"),
		UserPlays:   jsonUint(albumJSON, "userplaycount"),
		Tags:        tagNames(albumJSON, "tags", "tag"),
	}, nil
}

// lastfmArtistInfo fetches a single artist's global and per-user stats.
func (s *Service) lastfmArtistInfo(ctx context.Context, username, artist string) (*Artist, error) {
	params := url.Values{}
	params.Set("artist", artist)
	params.Set("user", username)

	root, err := s.cached.GetJSON(ctx, s.audioscrobblerURL(Lastfm, "artist.getInfo", params), PreferCached)
	if err != nil {
		return nil, detailNotFound(err, EntryArtist, artist)
	}
	artistJSON := jsonObject(root, "artist")
	if artistJSON == nil {
		return nil, &EntityNotFoundError{Kind: EntryArtist, Name: artist}
	}

	return &Artist{
		Name:      jsonString(artistJSON, "name"),
		Listeners: jsonUint(artistJSON, "stats", "listeners"),
		Playcount: jsonUint(artistJSON, "stats", "playcount"),
		UserPlays: jsonUint(artistJSON, "stats", "userplaycount"),
		Tags:      tagNames(artistJSON, "tags", "tag"),
	}, nil
}
