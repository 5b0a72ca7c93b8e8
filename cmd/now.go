/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/soramane/tunelog/internal/config"
)

// nowCmd represents the now command
var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Display a user's recent and currently playing tracks",
	Long: `Fetch the user's most recent listens from their provider and print
them, currently playing first.

Responses may be served from the transport cache (up to its TTL old);
pass --fresh to force revalidation.`,
	RunE: runNow,
}

func init() {
	rootCmd.AddCommand(nowCmd)

	addAccountFlags(nowCmd)
	nowCmd.Flags().IntP("limit", "n", 3, "Number of tracks to fetch")
	nowCmd.Flags().Bool("fresh", false, "Bypass the response cache")
}

func runNow(cmd *cobra.Command, args []string) error {
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

	limit, _ := cmd.Flags().GetInt("limit")
	fresh, _ := cmd.Flags().GetBool("fresh")

	tracks, err := svc.RecentTracks(ctx, username, provider, !fresh, limit)
	if err != nil {
		return err
	}

	if len(tracks) == 0 {
		fmt.Println("No scrobbles found.")
		return nil
	}

	for _, t := range tracks {
		switch {
		case t.NowPlaying:
			fmt.Printf("♪ %s - %s\n", t.Artist, t.Name)
		case t.Date > 0:
			fmt.Printf("  %s - %s (%s)\n", t.Artist, t.Name, humanize.Time(time.Unix(t.Date, 0)))
		default:
			fmt.Printf("  %s - %s\n", t.Artist, t.Name)
		}
	}
	return nil
}
