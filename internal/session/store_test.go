package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperpal/internal/chat"
	"paperpal/internal/llm"
)

func TestStore_FreshStoreNotReady(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Current().Ready())
}

func TestStore_ResetReplacesEverything(t *testing.T) {
	s := NewStore()
	first := uuid.New()
	s.Reset(first, []string{"a.txt"})
	require.NoError(t, s.CommitHistory(first, chat.History{
		{Role: llm.RoleUser, Content: "q"},
		{Role: llm.RoleAssistant, Content: "a"},
	}))

	second := uuid.New()
	prev := s.Reset(second, []string{"b.txt"})

	// The previous snapshot is handed back for cleanup.
	assert.Equal(t, first, prev.ID)
	assert.Equal(t, []string{"a.txt"}, prev.SectionPaths)
	assert.Len(t, prev.History, 2)

	// The new session starts with empty history: a destructive replace,
	// never an append.
	cur := s.Current()
	assert.Equal(t, second, cur.ID)
	assert.Equal(t, []string{"b.txt"}, cur.SectionPaths)
	assert.Empty(t, cur.History)
}

func TestStore_StaleCommitRejected(t *testing.T) {
	s := NewStore()
	old := uuid.New()
	s.Reset(old, []string{"a.txt"})

	// New upload lands while an answer is in flight.
	s.Reset(uuid.New(), []string{"b.txt"})

	err := s.CommitHistory(old, chat.History{{Role: llm.RoleUser, Content: "q"}})
	require.ErrorIs(t, err, ErrStale)
	assert.Empty(t, s.Current().History)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := NewStore()
	id := uuid.New()
	s.Reset(id, []string{"a.txt"})
	require.NoError(t, s.CommitHistory(id, chat.History{{Role: llm.RoleUser, Content: "q"}}))

	snap := s.Current()
	snap.SectionPaths[0] = "mutated"
	snap.History[0].Content = "mutated"

	cur := s.Current()
	assert.Equal(t, "a.txt", cur.SectionPaths[0])
	assert.Equal(t, "q", cur.History[0].Content)
}
