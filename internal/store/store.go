// Package store caches chat transcripts locally. The backend only lists
// session ids and titles; the message bodies live here, keyed by the
// backend-issued chat id.
package store

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/agiantii/bcoj/internal/chat"
)

// ErrNotFound is returned when a chat id has no local transcript.
var ErrNotFound = errors.New("chat does not exist")

// Chat is a locally cached transcript.
type Chat struct {
	// Backend-issued chat session id.
	ID string
	// Title of this chat.
	Title string
	// Time at which the chat was created.
	CreationTimestamp int64
	// Time at which the chat was updated.
	UpdateTimestamp int64
	// The messages of this chat.
	Messages []*chat.Message
}

// Store implements a SQLite store for chat transcripts.
type Store struct {
	db *sql.DB
}

// New store.
func New(dbPath string) (*Store, error) {
	if dir, _ := filepath.Split(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "creating folders")
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	// Create chats table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS chats (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			creation_timestamp INTEGER NOT NULL,
			update_timestamp INTEGER NOT NULL,
			messages TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, errors.Wrap(err, "creating chats table")
	}

	return &Store{
		db: db,
	}, nil
}

// NewChat instantiates and returns a new chat.
func (s *Store) NewChat(id, title string) *Chat {
	now := time.Now().UnixMicro()
	return &Chat{
		ID:                id,
		Title:             title,
		CreationTimestamp: now,
		UpdateTimestamp:   now,
	}
}

// Write a chat to the store.
func (s *Store) Write(c *Chat) error {
	c.UpdateTimestamp = time.Now().UnixMicro()

	messages, err := json.Marshal(c.Messages)
	if err != nil {
		return errors.Wrap(err, "marshaling messages")
	}

	// Use REPLACE INTO to handle both insert and update cases
	_, err = s.db.Exec(`
		REPLACE INTO chats (id, title, creation_timestamp, update_timestamp, messages)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.Title, c.CreationTimestamp, c.UpdateTimestamp, string(messages))

	if err != nil {
		return errors.Wrap(err, "writing chat to database")
	}
	return nil
}

// Get a chat.
func (s *Store) Get(chatID string) (*Chat, error) {
	c := &Chat{}
	var messagesJSON string

	err := s.db.QueryRow(`
		SELECT id, title, creation_timestamp, update_timestamp, messages
		FROM chats
		WHERE id = ?
	`, chatID).Scan(&c.ID, &c.Title, &c.CreationTimestamp, &c.UpdateTimestamp, &messagesJSON)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "querying chat")
	}

	if err := json.Unmarshal([]byte(messagesJSON), &c.Messages); err != nil {
		return nil, errors.Wrap(err, "unmarshaling messages")
	}

	return c, nil
}

// List all the chats in the store, most recently updated first.
func (s *Store) List(pageSize int) ([]*Chat, error) {
	rows, err := s.db.Query(`
		SELECT id, title, creation_timestamp, update_timestamp, messages
		FROM chats
		ORDER BY update_timestamp DESC
		LIMIT ?
	`, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "querying chats")
	}
	defer rows.Close()

	var chats []*Chat
	for rows.Next() {
		c := &Chat{}
		var messagesJSON string
		if err := rows.Scan(&c.ID, &c.Title, &c.CreationTimestamp, &c.UpdateTimestamp, &messagesJSON); err != nil {
			return nil, errors.Wrap(err, "scanning chat row")
		}
		if err := json.Unmarshal([]byte(messagesJSON), &c.Messages); err != nil {
			return nil, errors.Wrap(err, "unmarshaling messages")
		}
		chats = append(chats, c)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating chat rows")
	}

	return chats, nil
}

// Delete a chat. A no-op when the id has no transcript.
func (s *Store) Delete(chatID string) error {
	if _, err := s.db.Exec(`DELETE FROM chats WHERE id = ?`, chatID); err != nil {
		return errors.Wrap(err, "deleting chat")
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
