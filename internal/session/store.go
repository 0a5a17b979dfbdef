// Package session holds the process-wide current session: the uploaded
// paper's section files plus the accumulated conversation history. State is
// explicit and mutex-guarded instead of ambient, so tests can construct
// isolated stores.
package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"paperpal/internal/chat"
)

// ErrNotReady reports that no paper has been uploaded yet.
var ErrNotReady = errors.New("no active session: upload and summarize a paper first")

// ErrStale reports a history commit against a session that has since been
// replaced by a new upload.
var ErrStale = errors.New("session was replaced; history not committed")

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	ID           uuid.UUID
	SectionPaths []string
	History      chat.History
}

// Ready reports whether a paper is loaded.
func (s Snapshot) Ready() bool {
	return len(s.SectionPaths) > 0
}

// Store owns exactly one current session. A new upload replaces id,
// sections and history together; there is no partial replace.
type Store struct {
	mu           sync.Mutex
	id           uuid.UUID
	sectionPaths []string
	history      chat.History
}

func NewStore() *Store {
	return &Store{}
}

// Reset installs a new session and returns a snapshot of the one it
// replaced, so the caller can clean up the old section files.
func (s *Store) Reset(id uuid.UUID, sectionPaths []string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.snapshotLocked()
	s.id = id
	s.sectionPaths = sectionPaths
	s.history = nil
	return prev
}

// Current returns a snapshot of the active session.
func (s *Store) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// CommitHistory replaces the stored history of record. The commit is keyed
// by session id: if a new upload replaced the session while the answer was
// in flight, the stale history is rejected rather than resurrected.
func (s *Store) CommitHistory(id uuid.UUID, history chat.History) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.id != id {
		return ErrStale
	}
	s.history = history
	return nil
}

func (s *Store) snapshotLocked() Snapshot {
	paths := make([]string, len(s.sectionPaths))
	copy(paths, s.sectionPaths)
	history := make(chat.History, len(s.history))
	copy(history, s.history)
	return Snapshot{ID: s.id, SectionPaths: paths, History: history}
}
