package search

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/halcyonchess/core/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsAMoveForStartingPosition(t *testing.T) {
	pos := board.NewPosition()
	var stop atomic.Bool

	result := Run(context.Background(), pos, Limits{MaxDepth: 3}, &stop)

	assert.NotEqual(t, board.NoMove, result.BestMove)
	require.NotEmpty(t, result.PV)
	assert.Equal(t, result.BestMove, result.PV[0])
}

func TestRunFindsMateInOne(t *testing.T) {
	// White to move: Ra1-a8 is mate (back-rank mate, king boxed in by its
	// own pawns, rook sweeps the whole open rank 8).
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")
	require.NoError(t, err)
	var stop atomic.Bool

	result := Run(context.Background(), pos, Limits{MaxDepth: 3}, &stop)

	want, err := board.ParseMove("a1a8", pos)
	require.NoError(t, err)
	assert.Equal(t, want, result.BestMove)
	assert.Greater(t, result.Score, KingValue-100, "mate score should be near king value")
}

func TestRunHonorsExternalStopFlag(t *testing.T) {
	pos := board.NewPosition()
	var stop atomic.Bool
	stop.Store(true)

	result := Run(context.Background(), pos, Limits{MaxDepth: 32, TimeBudget: time.Minute}, &stop)

	assert.True(t, result.Aborted || result.Depth <= 1, "search should stop almost immediately")
}
