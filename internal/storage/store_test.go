package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestPersistAndLoad(t *testing.T) {
	s := newTestStore(t)

	s.Persist(42, KeyStats, doc{Name: "streak", Count: 3})

	var got doc
	require.True(t, s.Load(42, KeyStats, &got))
	assert.Equal(t, doc{Name: "streak", Count: 3}, got)
}

func TestPersistOverwrites(t *testing.T) {
	s := newTestStore(t)

	s.Persist(42, KeyStats, doc{Count: 1})
	s.Persist(42, KeyStats, doc{Count: 2})

	var got doc
	require.True(t, s.Load(42, KeyStats, &got))
	assert.Equal(t, 2, got.Count)
}

func TestLoadMissingKeyReturnsFalse(t *testing.T) {
	s := newTestStore(t)

	got := doc{Name: "fallback"}
	assert.False(t, s.Load(42, KeyGameState, &got))
	assert.Equal(t, "fallback", got.Name, "caller keeps its fallback")
}

func TestLoadCorruptedValueReturnsFalse(t *testing.T) {
	s := newTestStore(t)

	_, err := s.db.Exec(`INSERT INTO snapshots (chat_id, key, value) VALUES (?, ?, ?)`,
		int64(42), KeyStats, "{not valid json")
	require.NoError(t, err)

	var got doc
	assert.False(t, s.Load(42, KeyStats, &got))
}

func TestPersistSwallowsEncodingError(t *testing.T) {
	s := newTestStore(t)

	// Channels cannot be JSON-encoded; Persist must not panic or
	// propagate anything.
	assert.NotPanics(t, func() {
		s.Persist(42, KeyStats, make(chan int))
	})

	var got doc
	assert.False(t, s.Load(42, KeyStats, &got))
}

func TestKeysAreScopedByChat(t *testing.T) {
	s := newTestStore(t)

	s.Persist(1, KeyStats, doc{Count: 1})
	s.Persist(2, KeyStats, doc{Count: 2})

	var got doc
	require.True(t, s.Load(1, KeyStats, &got))
	assert.Equal(t, 1, got.Count)
	require.True(t, s.Load(2, KeyStats, &got))
	assert.Equal(t, 2, got.Count)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	s.Persist(42, KeyGameState, doc{Count: 9})
	s.Delete(42, KeyGameState)

	var got doc
	assert.False(t, s.Load(42, KeyGameState, &got))

	// Deleting a missing key is a no-op.
	assert.NotPanics(t, func() { s.Delete(42, "neverExisted") })
}
