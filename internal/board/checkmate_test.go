package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckmate(t *testing.T) {
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	require.NoError(t, err)
	require.True(t, pos.InCheck(), "expected black to be in check")

	moves := GenerateLegalMoves(pos)
	t.Logf("legal replies: %d", moves.Len())

	assert.True(t, pos.IsCheckmate(), "expected checkmate but got false")
	assert.False(t, pos.IsStalemate(), "checkmate position reported as stalemate")
}

func TestNotCheckmate(t *testing.T) {
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	require.NoError(t, err)
	require.True(t, pos.InCheck(), "expected black to be in check")

	moves := GenerateLegalMoves(pos)
	t.Logf("legal replies: %d", moves.Len())

	assert.False(t, pos.IsCheckmate(), "expected not checkmate (king can capture rook)")
}

func TestStalemate(t *testing.T) {
	pos, err := ParseFEN("7k/5K2/6Q1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	require.False(t, pos.InCheck(), "expected black not to be in check")
	assert.True(t, pos.IsStalemate(), "expected stalemate but got false")
}
