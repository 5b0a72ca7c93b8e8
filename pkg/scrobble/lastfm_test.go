package scrobble

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestParseAudioscrobblerTracks(t *testing.T) {
	raw := `[
		{
			"name": "Flood",
			"artist": {"name": "Boris"},
			"album": {"#text": "Flood"},
			"image": [
				{"size": "small", "#text": "https://img.example/small.png"},
				{"size": "extralarge", "#text": "https://img.example/large.png"}
			],
			"date": {"uts": "1700000000"},
			"loved": "1",
			"@attr": {"nowplaying": "true"}
		},
		{
			"name": "Untitled",
			"artist": {"#text": "Sleep"},
			"image": [
				{"size": "extralarge", "#text": "https://img.example/2a96cbd8b46e442fc41c2b86b821562f.png"}
			]
		}
	]`

	tracks := parseAudioscrobblerTracks(decode(t, raw))
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}

	first := tracks[0]
	if first.Name != "Flood" || first.Artist != "Boris" || first.Album != "Flood" {
		t.Errorf("unexpected first track: %+v", first)
	}
	if first.AlbumArtURL != "https://img.example/large.png" {
		t.Errorf("art should be the last (largest) image, got %q", first.AlbumArtURL)
	}
	if first.Date != 1700000000 {
		t.Errorf("date = %d, want 1700000000", first.Date)
	}
	if !first.UserLoved || !first.NowPlaying {
		t.Errorf("loved/nowplaying flags lost: %+v", first)
	}

	second := tracks[1]
	if second.Artist != "Sleep" {
		t.Errorf("plain #text artist lost: %+v", second)
	}
	if second.AlbumArtURL != "" {
		t.Errorf("placeholder art should normalize to empty, got %q", second.AlbumArtURL)
	}
	if second.Date != 0 || second.UserLoved || second.NowPlaying {
		t.Errorf("absent optional fields should zero out: %+v", second)
	}
}

func TestParseAudioscrobblerTopAlbums(t *testing.T) {
	raw := `[
		{"name": "Pink", "artist": {"name": "Boris"}, "playcount": "42"},
		{"name": "Dopesmoker", "artist": {"name": "Sleep"}, "playcount": ""},
		{"name": "Nadja"}
	]`

	albums := parseAudioscrobblerTopAlbums(decode(t, raw))
	if len(albums) != 3 {
		t.Fatalf("got %d albums, want 3", len(albums))
	}
	if albums[0].UserPlays != 42 {
		t.Errorf("string playcount = %d, want 42", albums[0].UserPlays)
	}
	if albums[1].UserPlays != 0 || albums[2].UserPlays != 0 {
		t.Errorf("empty/absent playcounts should be 0: %+v", albums[1:])
	}
	// Provider rank order is preserved.
	if albums[0].Name != "Pink" || albums[2].Name != "Nadja" {
		t.Errorf("ordering lost: %+v", albums)
	}
}

func TestLastfmRecentTracks(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("method"); got != "user.getrecenttracks" {
			t.Errorf("method = %q", got)
		}
		if got := r.URL.Query().Get("extended"); got != "1" {
			t.Errorf("extended = %q, want 1", got)
		}
		_, _ = w.Write([]byte(`{"recenttracks": {"track": [
			{"name": "Feedbacker", "artist": {"name": "Boris"}}
		]}}`))
	}))

	tracks, err := svc.RecentTracks(context.Background(), "someone", Lastfm, true, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 1 || tracks[0].Name != "Feedbacker" {
		t.Errorf("unexpected tracks: %+v", tracks)
	}
}

func TestLastfmRecentTracksInBandError(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": 6, "message": "User not found"}`))
	}))

	_, err := svc.RecentTracks(context.Background(), "ghost", Lastfm, true, 3)

	var se *StatusError
	if !errors.As(err, &se) || !se.NotFound() {
		t.Fatalf("expected a not-found StatusError, got %v", err)
	}
}

func TestLastfmRecentTracksMalformed(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected": {}}`))
	}))

	_, err := svc.RecentTracks(context.Background(), "someone", Lastfm, true, 3)

	var me *MalformedError
	if !errors.As(err, &me) {
		t.Fatalf("expected MalformedError, got %v", err)
	}
}

func TestLastfmTopTracksStringNumbers(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("period"); got != "7day" {
			t.Errorf("period literal = %q, want 7day", got)
		}
		_, _ = w.Write([]byte(`{"toptracks": {"track": [
			{"name": "Vein", "artist": {"name": "Boris"}, "playcount": "128"}
		]}}`))
	}))

	tracks, err := svc.TopTracks(context.Background(), "someone", Lastfm, OneWeek, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 1 || tracks[0].UserPlays != 128 {
		t.Errorf("unexpected tracks: %+v", tracks)
	}
}

func TestLastfmTrackInfo(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"track": {
			"name": "Farewell",
			"artist": {"name": "Boris"},
			"album": {"title": "Pink"},
			"duration": "64000",
			"listeners": "1000",
			"playcount": "5000",
			"userplaycount": "17",
			"userloved": "1",
			"toptags": {"tag": [{"name": "drone"}, {"name": "doom"}]}
		}}`))
	}))

	track, err := svc.TrackInfo(context.Background(), "someone", "Boris", "Farewell")
	if err != nil {
		t.Fatal(err)
	}
	if track.Album != "Pink" || track.Duration != 64000 {
		t.Errorf("unexpected track: %+v", track)
	}
	if track.Listeners != 1000 || track.Playcount != 5000 || track.UserPlays != 17 {
		t.Errorf("counts lost: %+v", track)
	}
	if !track.UserLoved || len(track.Tags) != 2 {
		t.Errorf("loved/tags lost: %+v", track)
	}
}

func TestLastfmDetailNotFound(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "404 response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "200 with missing object",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"error": "unknown track"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.handler)

			_, err := svc.TrackInfo(context.Background(), "someone", "Nobody", "Nothing")
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}

			var nf *EntityNotFoundError
			if !errors.As(err, &nf) || nf.Kind != EntryTrack {
				t.Errorf("expected a track EntityNotFoundError, got %v", err)
			}
		})
	}
}

func TestLastfmArtistInfo(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"artist": {
			"name": "Boris",
			"stats": {"listeners": "250000", "playcount": "9000000", "userplaycount": "3200"},
			"tags": {"tag": [{"name": "drone"}]}
		}}`))
	}))

	artist, err := svc.ArtistInfo(context.Background(), "someone", "Boris")
	if err != nil {
		t.Fatal(err)
	}
	if artist.Listeners != 250000 || artist.Playcount != 9000000 || artist.UserPlays != 3200 {
		t.Errorf("unexpected artist: %+v", artist)
	}
}

func TestLastfmUserInfo(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user": {
			"playcount": "54321",
			"artist_count": "800",
			"album_count": "1200",
			"track_count": "4000",
			"registered": {"#text": 1300000000},
			"image": [{"size": "extralarge", "#text": "https://img.example/me.png"}]
		}}`))
	}))

	user, err := svc.UserInfo(context.Background(), "someone", Lastfm)
	if err != nil {
		t.Fatal(err)
	}
	if user.Playcount != 54321 || user.ArtistCount != 800 || user.AlbumCount != 1200 || user.TrackCount != 4000 {
		t.Errorf("counts lost: %+v", user)
	}
	if user.Registered != 1300000000 {
		t.Errorf("registered = %d", user.Registered)
	}
	if user.ProfilePicURL != "https://img.example/me.png" {
		t.Errorf("profile pic = %q", user.ProfilePicURL)
	}
}
