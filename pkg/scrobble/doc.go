// Package scrobble aggregates a user's listening history across
// scrobble-tracking services (Last.fm, Libre.fm, ListenBrainz) into one
// normalized data model.
//
// The package is designed to be used as a standalone SDK by a presentation
// layer such as a chat bot. It owns the outbound HTTP transport (caching,
// rate limiting, status-code discipline), the per-provider response
// normalization, and the free-text argument parser that drives collage and
// top-chart queries.
//
// Example usage:
//
//	import "github.com/soramane/tunelog/pkg/scrobble"
//
//	svc, err := scrobble.NewService(scrobble.Config{
//	    APIKey: "your-lastfm-api-key",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tracks, err := svc.RecentTracks(ctx, "someuser", scrobble.Lastfm, true, 3)
package scrobble
