package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAddAndGet(t *testing.T) {
	s := NewStore[string]()
	key := Key{ConversationID: "chat-1", UserID: "user-1"}

	require.True(t, s.TryAdd(key, "session"))

	got, ok := s.TryGet(key)
	require.True(t, ok)
	assert.Equal(t, "session", got)
	assert.Equal(t, 1, s.Len())
}

func TestStoreRejectsSecondAdd(t *testing.T) {
	s := NewStore[string]()
	key := Key{ConversationID: "chat-1", UserID: "user-1"}

	require.True(t, s.TryAdd(key, "first"))
	assert.False(t, s.TryAdd(key, "second"))

	// The original session is never overwritten.
	got, _ := s.TryGet(key)
	assert.Equal(t, "first", got)
}

func TestStoreKeysAreScopedPerUser(t *testing.T) {
	s := NewStore[string]()

	require.True(t, s.TryAdd(Key{ConversationID: "chat-1", UserID: "user-1"}, "a"))
	require.True(t, s.TryAdd(Key{ConversationID: "chat-1", UserID: "user-2"}, "b"))
	require.True(t, s.TryAdd(Key{ConversationID: "chat-2", UserID: "user-1"}, "c"))

	assert.Equal(t, 3, s.Len())
}

func TestStoreRemove(t *testing.T) {
	s := NewStore[string]()
	key := Key{ConversationID: "chat-1", UserID: "user-1"}

	require.True(t, s.TryAdd(key, "session"))
	s.Remove(key)

	_, ok := s.TryGet(key)
	assert.False(t, ok)

	// Removing an absent key is a no-op.
	s.Remove(key)
	assert.Equal(t, 0, s.Len())
}
