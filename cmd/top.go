/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/soramane/tunelog/internal/config"
	"github.com/soramane/tunelog/pkg/scrobble"
)

// topCmd represents the top command
var topCmd = &cobra.Command{
	Use:   "top [phrase]",
	Short: "Display a user's top artists, albums or tracks",
	Long: `Fetch the user's top chart for a time period and print it in rank
order.

The trailing phrase is free text and is interpreted the same way the
chat bot interprets collage requests, so "top 4x4 artists week" and
"top artist 4 1w" both work. Unrecognized words are ignored; the
defaults are a 3x3 album chart over all time.`,
	RunE: runTop,
}

func init() {
	rootCmd.AddCommand(topCmd)

	addAccountFlags(topCmd)
}

func runTop(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	username, provider, err := resolveAccount(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	svc, err := newService(cfg, setupLogger())
	if err != nil {
		return err
	}

	collage := scrobble.ParseCollageArgs(strings.Join(args, " "))
	limit := collage.Size * collage.Size

	rows, err := topRows(ctx, svc, username, provider, collage, limit)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No chart data found.")
		return nil
	}

	fmt.Printf("Top %ss for %s (%s)\n\n", collage.Entry, username, collage.Period)
	printRows(rows)
	return nil
}

// topRow is one printable chart line.
type topRow struct {
	name  string
	plays uint64
}

// topRows runs the chart query matching the requested entry type.
func topRows(ctx context.Context, svc *scrobble.Service, username string, p scrobble.Provider, collage scrobble.CollageArgs, limit int) ([]topRow, error) {
	rows := make([]topRow, 0, limit)

	switch collage.Entry {
	case scrobble.EntryArtist:
		artists, err := svc.TopArtists(ctx, username, p, collage.Period, limit)
		if err != nil {
			return nil, err
		}
		for _, a := range artists {
			rows = append(rows, topRow{name: a.Name, plays: a.UserPlays})
		}
	case scrobble.EntryTrack:
		tracks, err := svc.TopTracks(ctx, username, p, collage.Period, limit)
		if err != nil {
			return nil, err
		}
		for _, t := range tracks {
			rows = append(rows, topRow{name: t.Artist + " - " + t.Name, plays: t.UserPlays})
		}
	default:
		albums, err := svc.TopAlbums(ctx, username, p, collage.Period, limit)
		if err != nil {
			return nil, err
		}
		for _, a := range albums {
			rows = append(rows, topRow{name: a.Artist + " - " + a.Name, plays: a.UserPlays})
		}
	}
	return rows, nil
}

// printRows pads the name column so play counts line up even when names
// contain wide characters.
func printRows(rows []topRow) {
	width := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r.name); w > width {
			width = w
		}
	}
	for i, r := range rows {
		fmt.Printf("%2d. %s  %d plays\n", i+1, runewidth.FillRight(r.name, width), r.plays)
	}
}
