package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// perft counts the leaf nodes at depth by exhaustively making and
// unmaking every legal move; the standard way to verify move generation.
func perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := GenerateLegalMoves(p)
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		p.Make(m)
		nodes += perft(p, depth-1)
		p.Unmake(m)
	}
	return nodes
}

func TestPerftStartingPosition(t *testing.T) {
	pos := NewPosition()

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			assert.Equal(t, tc.expected, perft(pos, tc.depth))
		})
	}
}

// TestPerftKiwipete exercises the famous Kiwipete position's many edge
// cases: castling, promotions, pins, en passant, discovered checks.
func TestPerftKiwipete(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	require.NoError(t, err)

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			assert.Equal(t, tc.expected, perft(pos, tc.depth))
		})
	}
}

// TestPerftPosition3 exercises en passant capture and check-evasion edge
// cases.
func TestPerftPosition3(t *testing.T) {
	pos, err := ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	require.NoError(t, err)

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			assert.Equal(t, tc.expected, perft(pos, tc.depth))
		})
	}
}

// TestPerftEnPassantPin exercises the horizontal ("5th rank") en passant
// pin: a black pawn appears able to capture en passant, but doing so would
// remove both pawns from the 4th rank and expose the black king to a rook
// along that rank.
func TestPerftEnPassantPin(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	require.NoError(t, err)

	moves := GenerateLegalMoves(pos)
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		assert.Falsef(t, m.IsEnPassant(pos), "en passant move %v should be illegal (horizontal pin)", m)
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 6},
		{2, 94},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			assert.Equal(t, tc.expected, perft(pos, tc.depth))
		})
	}
}
