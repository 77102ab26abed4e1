package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiantii/bcoj/internal/chat"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "nested", "chats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestWriteGetRoundtrip(t *testing.T) {
	s := newTestStore(t)

	c := s.NewChat("chat-1", "two sum help")
	c.Messages = []*chat.Message{
		{ID: "m1", Role: chat.RoleUser, Content: "why is my loop wrong?", Timestamp: time.Now().UTC()},
		{ID: "m2", Role: chat.RoleAssistant, Content: "you start at index 1", Timestamp: time.Now().UTC()},
	}
	require.NoError(t, s.Write(c))

	got, err := s.Get("chat-1")
	require.NoError(t, err)
	assert.Equal(t, "chat-1", got.ID)
	assert.Equal(t, "two sum help", got.Title)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chat.RoleUser, got.Messages[0].Role)
	assert.Equal(t, "you start at index 1", got.Messages[1].Content)
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWriteIsUpsert(t *testing.T) {
	s := newTestStore(t)
	c := s.NewChat("chat-1", "first title")
	require.NoError(t, s.Write(c))

	c.Messages = append(c.Messages, &chat.Message{ID: "m1", Role: chat.RoleUser, Content: "hello"})
	require.NoError(t, s.Write(c))

	got, err := s.Get("chat-1")
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
}

func TestListMostRecentlyUpdatedFirst(t *testing.T) {
	s := newTestStore(t)
	first := s.NewChat("chat-1", "first")
	require.NoError(t, s.Write(first))
	time.Sleep(2 * time.Millisecond)
	second := s.NewChat("chat-2", "second")
	require.NoError(t, s.Write(second))
	time.Sleep(2 * time.Millisecond)
	// Touching the first chat moves it back to the front.
	require.NoError(t, s.Write(first))

	chats, err := s.List(10)
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, "chat-1", chats[0].ID)
	assert.Equal(t, "chat-2", chats[1].ID)
}

func TestListHonorsPageSize(t *testing.T) {
	s := newTestStore(t)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Write(s.NewChat(id, id)))
		time.Sleep(2 * time.Millisecond)
	}

	chats, err := s.List(2)
	require.NoError(t, err)
	assert.Len(t, chats, 2)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write(s.NewChat("chat-1", "title")))
	require.NoError(t, s.Delete("chat-1"))

	_, err := s.Get("chat-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an unknown id is a no-op.
	require.NoError(t, s.Delete("chat-1"))
}
