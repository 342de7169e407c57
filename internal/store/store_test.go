package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetRoundTrip(t *testing.T) {
	s, err := OpenAt(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	entry := Entry{BestMove: "e2e4", Score: 35, Depth: 8}
	require.NoError(t, s.Put(0xdeadbeef, 8, entry))

	got, found, err := s.Get(0xdeadbeef, 8)
	require.NoError(t, err)
	require.True(t, found, "expected cache hit")
	assert.Equal(t, entry, got)
}

func TestGetMissReturnsFalse(t *testing.T) {
	s, err := OpenAt(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	_, found, err := s.Get(1, 1)
	require.NoError(t, err)
	assert.False(t, found, "expected cache miss on empty store")
}

func TestDepthIsPartOfTheKey(t *testing.T) {
	s, err := OpenAt(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put(42, 4, Entry{BestMove: "e2e4", Depth: 4}))

	_, found, err := s.Get(42, 6)
	require.NoError(t, err)
	assert.False(t, found, "expected a miss at a different depth for the same hash")
}
