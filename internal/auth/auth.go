// Package auth owns the persisted login state. The backend hands out a bearer
// token and a user id at login; every API call reads them back through this
// store rather than caching them, so a login or logout performed elsewhere is
// picked up by the next operation, not the current one.
package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// ErrNotLoggedIn is returned by accessors that require an authenticated user.
var ErrNotLoggedIn = errors.New("not logged in")

// UserInfo mirrors the user payload returned at login.
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Credentials persisted between invocations.
type Credentials struct {
	Token    string    `json:"token"`
	UserID   int64     `json:"user_id"`
	UserInfo *UserInfo `json:"user_info,omitempty"`
}

// Store is the single accessor for credential state. Reads hit the disk on
// every call; writes are atomic (write to a temp file, then rename).
type Store struct {
	path string

	mu          sync.Mutex
	subscribers []func(*Credentials)
	chatID      string
}

// NewStore instantiates a credential store backed by the given file.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the credentials from disk. Returns nil when logged out.
func (s *Store) Load() (*Credentials, error) {
	bytes, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading credentials file")
	}
	credentials := &Credentials{}
	if err := json.Unmarshal(bytes, credentials); err != nil {
		return nil, errors.Wrap(err, "unmarshaling credentials")
	}
	if credentials.Token == "" {
		return nil, nil
	}
	return credentials, nil
}

// Token returns the bearer token, or "" when logged out.
func (s *Store) Token() string {
	credentials, err := s.Load()
	if err != nil || credentials == nil {
		return ""
	}
	return credentials.Token
}

// UserID returns the authenticated user id.
func (s *Store) UserID() (int64, error) {
	credentials, err := s.Load()
	if err != nil {
		return 0, err
	}
	if credentials == nil {
		return 0, ErrNotLoggedIn
	}
	return credentials.UserID, nil
}

// Set writes the credentials and notifies subscribers.
func (s *Store) Set(credentials *Credentials) error {
	if err := s.write(credentials); err != nil {
		return err
	}
	s.notify(credentials)
	return nil
}

// Clear removes the credentials and notifies subscribers. Safe to call when
// already logged out.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing credentials file")
	}
	s.notify(nil)
	return nil
}

// Subscribe registers a callback invoked on every credential change. The
// callback receives nil on logout.
func (s *Store) Subscribe(fn func(*Credentials)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// SetChatID records the active chat session id. Scoped to this process, never
// persisted.
func (s *Store) SetChatID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatID = id
}

// ChatID returns the active chat session id, or "".
func (s *Store) ChatID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chatID
}

func (s *Store) write(credentials *Credentials) error {
	bytes, err := json.MarshalIndent(credentials, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling credentials")
	}
	dir, _ := filepath.Split(s.path)
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "creating folders")
		}
	}
	temporaryPath := s.path + ".tmp"
	if err := os.WriteFile(temporaryPath, bytes, 0600); err != nil {
		return errors.Wrap(err, "writing file")
	}
	if err := os.Rename(temporaryPath, s.path); err != nil {
		return errors.Wrap(err, "renaming file")
	}
	return nil
}

func (s *Store) notify(credentials *Credentials) {
	s.mu.Lock()
	subscribers := make([]func(*Credentials), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()
	for _, fn := range subscribers {
		fn(credentials)
	}
}
