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
	"github.com/soramane/tunelog/internal/store"
	"github.com/soramane/tunelog/pkg/scrobble"
)

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set <username>",
	Short: "Store the account mapping for a chat user id",
	Long: `Store the (username, provider) pair for a chat user id in the local
database, so later queries can use --id instead of --user.`,
	Args: cobra.ExactArgs(1),
	RunE: runSet,
}

// unsetCmd represents the unset command
var unsetCmd = &cobra.Command{
	Use:   "unset",
	Short: "Remove the account mapping for a chat user id",
	RunE:  runUnset,
}

func init() {
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(unsetCmd)

	setCmd.Flags().StringP("provider", "p", "lastfm", "Provider (lastfm, librefm, listenbrainz)")
	setCmd.Flags().Int64("id", 0, "Chat user id to map")
	setCmd.Flags().Bool("show-profile", false, "Link the profile publicly in replies")
	unsetCmd.Flags().Int64("id", 0, "Chat user id to unmap")
}

func runSet(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	id, _ := cmd.Flags().GetInt64("id")
	if id == 0 {
		return fmt.Errorf("--id is required")
	}
	providerName, _ := cmd.Flags().GetString("provider")
	showProfile, _ := cmd.Flags().GetBool("show-profile")

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	user := store.User{
		ChatUserID:   id,
		Username:     args[0],
		Provider:     scrobble.ParseProvider(providerName),
		ProfileShown: showProfile,
	}
	if err := st.Set(ctx, user); err != nil {
		return err
	}

	fmt.Printf("Mapped id %d to %s on %s\n", id, user.Username, user.Provider)
	return nil
}

func runUnset(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	id, _ := cmd.Flags().GetInt64("id")
	if id == 0 {
		return fmt.Errorf("--id is required")
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Printf("Removed mapping for id %d\n", id)
	return nil
}
