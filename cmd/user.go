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

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Display a user's profile summary",
	Long: `Fetch the user's profile from their provider: total scrobbles,
distinct artist/album/track counts and registration date.`,
	RunE: runUser,
}

func init() {
	rootCmd.AddCommand(userCmd)

	addAccountFlags(userCmd)
}

func runUser(cmd *cobra.Command, args []string) error {
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

	u, err := svc.UserInfo(ctx, username, provider)
	if err != nil {
		return err
	}

	fmt.Printf("%s on %s\n", u.Username, provider)
	fmt.Printf("  Profile:   %s\n", provider.ProfileURL(u.Username))
	fmt.Printf("  Scrobbles: %s\n", humanize.Comma(int64(u.Playcount)))
	fmt.Printf("  Artists:   %s\n", humanize.Comma(int64(u.ArtistCount)))
	fmt.Printf("  Albums:    %s\n", humanize.Comma(int64(u.AlbumCount)))
	fmt.Printf("  Tracks:    %s\n", humanize.Comma(int64(u.TrackCount)))
	if u.Registered > 0 {
		fmt.Printf("  Joined:    %s\n", humanize.Time(time.Unix(u.Registered, 0)))
	}
	return nil
}
