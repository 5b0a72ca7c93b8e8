// Package store persists the mapping from chat user ids to scrobbling
// accounts. It is the reference implementation of the user-preference
// collaborator the aggregation core expects; the core itself never touches
// it and takes provider and username as plain parameters.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/soramane/tunelog/pkg/scrobble"
)

// User is one chat user's stored scrobbling account.
type User struct {
	ChatUserID   int64
	Username     string
	Provider     scrobble.Provider
	ProfileShown bool // whether to link the profile publicly in replies
}

// ErrNoUser is returned by Get when the chat user has no stored mapping.
var ErrNoUser = errors.New("store: user not registered")

// Store is a sqlite-backed user mapping. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open creates or opens the mapping database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool size to 1 for in-memory databases to ensure consistency
	// For file-based databases, this still works well for our use case
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 10000", // Wait up to 10 seconds on lock
		"PRAGMA synchronous = NORMAL", // Balance between safety and performance
		"PRAGMA journal_mode = WAL",   // Write-Ahead Logging for concurrent access
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS users (
			chat_user_id  INTEGER PRIMARY KEY,
			username      TEXT NOT NULL,
			provider      TEXT NOT NULL,
			profile_shown INTEGER NOT NULL DEFAULT 0
		);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the stored mapping for a chat user.
func (s *Store) Get(ctx context.Context, chatUserID int64) (*User, error) {
	query := `
		SELECT username, provider, profile_shown
		FROM users
		WHERE chat_user_id = ?
	`

	var (
		user     = User{ChatUserID: chatUserID}
		provider string
	)
	err := s.db.QueryRowContext(ctx, query, chatUserID).
		Scan(&user.Username, &provider, &user.ProfileShown)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoUser
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	user.Provider = scrobble.ParseProvider(provider)
	return &user, nil
}

// Set inserts or replaces the mapping for a chat user.
func (s *Store) Set(ctx context.Context, user User) error {
	query := `
		INSERT INTO users (chat_user_id, username, provider, profile_shown)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (chat_user_id) DO UPDATE
		SET username = ?2, provider = ?3, profile_shown = ?4
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ChatUserID,
		user.Username,
		user.Provider.String(),
		user.ProfileShown,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// Delete removes the mapping for a chat user. Deleting an unknown user is
// not an error.
func (s *Store) Delete(ctx context.Context, chatUserID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE chat_user_id = ?`, chatUserID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
