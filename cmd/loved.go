/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/soramane/tunelog/internal/config"
)

// lovedCmd represents the loved command
var lovedCmd = &cobra.Command{
	Use:   "loved",
	Short: "Display a user's loved tracks",
	Long: `Fetch the user's most recently loved tracks from their provider.
For ListenBrainz this is the positively-rated feedback list.`,
	RunE: runLoved,
}

func init() {
	rootCmd.AddCommand(lovedCmd)

	addAccountFlags(lovedCmd)
}

func runLoved(cmd *cobra.Command, args []string) error {
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

	tracks, err := svc.LovedTracks(ctx, username, provider)
	if err != nil {
		return err
	}

	if len(tracks) == 0 {
		fmt.Println("No loved tracks found.")
		return nil
	}

	fmt.Printf("Loved tracks for %s:\n", username)
	for _, t := range tracks {
		fmt.Printf("  ❤ %s - %s\n", t.Artist, t.Name)
	}
	return nil
}
