package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "nested", "credentials.json"))
}

func TestLoadWhenLoggedOut(t *testing.T) {
	store := newTestStore(t)
	credentials, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, credentials)
	assert.Empty(t, store.Token())

	_, err = store.UserID()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestSetLoadRoundtrip(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set(&Credentials{
		Token:  "tok-123",
		UserID: 7,
		UserInfo: &UserInfo{
			ID:       7,
			Username: "alice",
			Email:    "alice@example.com",
			Role:     "user",
		},
	}))

	credentials, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, credentials)
	assert.Equal(t, "tok-123", credentials.Token)
	assert.Equal(t, int64(7), credentials.UserID)
	assert.Equal(t, "alice", credentials.UserInfo.Username)

	assert.Equal(t, "tok-123", store.Token())
	userID, err := store.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set(&Credentials{Token: "tok", UserID: 1}))
	require.NoError(t, store.Clear())

	credentials, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, credentials)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}

func TestLoginVisibleAcrossStores(t *testing.T) {
	// Two stores on the same file model two operations in one process: a write
	// through one is observed by the next read through the other.
	path := filepath.Join(t.TempDir(), "credentials.json")
	first := NewStore(path)
	second := NewStore(path)

	require.NoError(t, first.Set(&Credentials{Token: "tok", UserID: 9}))
	assert.Equal(t, "tok", second.Token())

	require.NoError(t, second.Clear())
	assert.Empty(t, first.Token())
}

func TestSubscribe(t *testing.T) {
	store := newTestStore(t)
	var events []*Credentials
	store.Subscribe(func(credentials *Credentials) {
		events = append(events, credentials)
	})

	require.NoError(t, store.Set(&Credentials{Token: "tok", UserID: 1}))
	require.NoError(t, store.Clear())

	require.Len(t, events, 2)
	assert.Equal(t, "tok", events[0].Token)
	assert.Nil(t, events[1])
}

func TestChatIDIsProcessScoped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewStore(path)
	assert.Empty(t, store.ChatID())

	store.SetChatID("chat-42")
	assert.Equal(t, "chat-42", store.ChatID())

	// A fresh store on the same file never sees it.
	assert.Empty(t, NewStore(path).ChatID())
}
