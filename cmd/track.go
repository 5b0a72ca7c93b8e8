/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/soramane/tunelog/internal/config"
)

// trackCmd represents the track command
var trackCmd = &cobra.Command{
	Use:   "track <artist> <title>",
	Short: "Display detail for one track and its artist",
	Long: `Look up a track in the Last.fm catalog and print global stats, the
user's play count and the artist's stats. The two lookups run
concurrently.`,
	Args: cobra.ExactArgs(2),
	RunE: runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)

	addAccountFlags(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	username, _, err := resolveAccount(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	svc, err := newService(cfg, setupLogger())
	if err != nil {
		return err
	}

	t, a, err := svc.TrackWithArtistInfo(ctx, username, args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Printf("%s - %s\n", t.Artist, t.Name)
	if t.Album != "" {
		fmt.Printf("  Album:      %s\n", t.Album)
	}
	if t.Duration > 0 {
		fmt.Printf("  Duration:   %s\n", formatDuration(t.Duration))
	}
	fmt.Printf("  Listeners:  %s\n", humanize.Comma(int64(t.Listeners)))
	fmt.Printf("  Plays:      %s\n", humanize.Comma(int64(t.Playcount)))
	fmt.Printf("  Your plays: %s\n", humanize.Comma(int64(t.UserPlays)))
	if len(t.Tags) > 0 {
		fmt.Printf("  Tags:       %s\n", strings.Join(t.Tags, ", "))
	}
	fmt.Printf("\n%s\n", a.Name)
	fmt.Printf("  Listeners:  %s\n", humanize.Comma(int64(a.Listeners)))
	fmt.Printf("  Plays:      %s\n", humanize.Comma(int64(a.Playcount)))
	fmt.Printf("  Your plays: %s\n", humanize.Comma(int64(a.UserPlays)))
	return nil
}

// formatDuration renders a millisecond track length as m:ss.
func formatDuration(ms int64) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
