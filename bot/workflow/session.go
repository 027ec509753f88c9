package workflow

import "sync"

// Key identifies a session: one resumable workflow instance per
// (conversation, user) pair per workflow kind.
type Key struct {
	ConversationID string
	UserID         string
}

// Store maps session keys to live workflow sessions. A key can only be
// added while absent; a second TryAdd is rejected, never overwritten.
// Serializing turns for one key is the session's own job (see task.session);
// the store only guards its map.
type Store[T any] struct {
	mu       sync.RWMutex
	sessions map[Key]T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{sessions: make(map[Key]T)}
}

// TryAdd stores the session under key and reports whether it was added.
// False means a workflow is already active for this key.
func (s *Store[T]) TryAdd(key Key, session T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[key]; ok {
		return false
	}
	s.sessions[key] = session
	return true
}

// TryGet returns the live session for key, if any.
func (s *Store[T]) TryGet(key Key) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[key]
	return session, ok
}

// Remove drops the session for key. Removing an absent key is a no-op.
func (s *Store[T]) Remove(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, key)
}

// Len reports the number of live sessions.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
