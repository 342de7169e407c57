package perft

import (
	"testing"

	"github.com/halcyonchess/core/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountStartingPosition(t *testing.T) {
	pos := board.NewPosition()

	cases := []struct {
		depth    int
		expected int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, Count(pos, tc.depth), "depth %d", tc.depth)
	}
}

func TestCountKiwipete(t *testing.T) {
	pos, err := board.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	require.NoError(t, err)

	cases := []struct {
		depth    int
		expected int64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, Count(pos, tc.depth), "depth %d", tc.depth)
	}
}

func TestDivideSumsToCount(t *testing.T) {
	pos := board.NewPosition()
	const depth = 3

	entries := Divide(pos, depth)
	var sum int64
	for _, e := range entries {
		sum += e.Nodes
	}

	assert.Equal(t, Count(pos, depth), sum)
	assert.Len(t, entries, 20)
}
