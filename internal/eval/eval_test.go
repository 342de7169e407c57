package eval

import (
	"testing"

	"github.com/halcyonchess/core/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateStartingPositionIsSymmetric(t *testing.T) {
	pos := board.NewPosition()
	assert.Equal(t, 0, Evaluate(pos), "symmetric starting position should evaluate to 0")
}

func TestEvaluateFavorsMaterialAdvantage(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	require.NoError(t, err)
	assert.Greater(t, Evaluate(pos), 0, "white should be ahead with an extra rook")
}

func TestEvaluateRewardsMobility(t *testing.T) {
	// In both positions White has a bishop and pawns on c3, e3, c5 and e5
	// against a bare black king; only the bishop's square differs (boxed in
	// by the pawns on d4, on an open diagonal on g2).
	open, err := board.ParseFEN("4k3/8/8/2P1P3/8/2P1P3/6B1/4K3 w - - 0 1")
	require.NoError(t, err)
	boxed, err := board.ParseFEN("4k3/8/8/2P1P3/3B4/2P1P3/8/4K3 w - - 0 1")
	require.NoError(t, err)

	assert.Greater(t, Evaluate(open), Evaluate(boxed),
		"a bishop with open diagonals should score higher than one boxed in by pawns")
}
