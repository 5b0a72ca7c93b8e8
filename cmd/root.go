/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/soramane/tunelog/internal/config"
	"github.com/soramane/tunelog/internal/store"
	"github.com/soramane/tunelog/pkg/scrobble"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var logLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tunelog",
	Short: "Cross-provider scrobble history inspector",
	Long: `tunelog aggregates a user's music-listening history across Last.fm,
Libre.fm and ListenBrainz into one normalized view.

It is the data-access core of a listening-history chat bot, exposed as a
CLI: recent and loved tracks, top charts per time period, profile
summaries, and per-track/album/artist detail lookups.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

// setupLogger builds the zerolog logger shared by all commands.
func setupLogger() zerolog.Logger {
	lvl, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// newService constructs the aggregation service from loaded configuration.
func newService(cfg *config.Config, logger zerolog.Logger) (*scrobble.Service, error) {
	return scrobble.NewService(scrobble.Config{
		APIKey:     cfg.APIKey,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		CacheSize:  cfg.CacheSize,
		CacheTTL:   cfg.CacheTTL,
		Logger:     logger,
	})
}

// addAccountFlags registers the flags shared by every query command: either
// an explicit --user/--provider pair, or --id to look the account up in the
// local mapping store.
func addAccountFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("user", "u", "", "Account username on the provider")
	cmd.Flags().StringP("provider", "p", "lastfm", "Provider (lastfm, librefm, listenbrainz)")
	cmd.Flags().Int64("id", 0, "Chat user id to resolve via the local store (instead of --user)")
}

// resolveAccount returns the (username, provider) pair a query command
// should use, consulting the store when --user is not given.
func resolveAccount(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (string, scrobble.Provider, error) {
	username, _ := cmd.Flags().GetString("user")
	providerName, _ := cmd.Flags().GetString("provider")
	if username != "" {
		return username, scrobble.ParseProvider(providerName), nil
	}

	id, _ := cmd.Flags().GetInt64("id")
	if id == 0 {
		return "", 0, fmt.Errorf("either --user or --id is required")
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return "", 0, err
	}
	defer st.Close()

	u, err := st.Get(ctx, id)
	if err != nil {
		return "", 0, err
	}
	return u.Username, u.Provider, nil
}
