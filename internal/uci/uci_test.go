package uci

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/halcyonchess/core/internal/board"
	"github.com/halcyonchess/core/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleUCIAnnouncesIdentity(t *testing.T) {
	var out bytes.Buffer
	loop := New(context.Background(), strings.NewReader(""), &out)

	loop.handleUCI()

	assert.Contains(t, out.String(), "id name halcyonchess")
	assert.Contains(t, out.String(), "uciok")
}

func TestIsreadyRespondsReadyok(t *testing.T) {
	var out bytes.Buffer
	loop := New(context.Background(), strings.NewReader("isready\nquit\n"), &out)

	loop.Run()

	assert.Contains(t, out.String(), "readyok")
}

func TestPositionStartposThenMoves(t *testing.T) {
	var out bytes.Buffer
	loop := New(context.Background(), strings.NewReader(""), &out)

	loop.handlePosition([]string{"startpos", "moves", "e2e4", "e7e5"})

	assert.Equal(t, board.WhitePawn, loop.pos.PieceAt(board.E4))
	assert.Equal(t, board.BlackPawn, loop.pos.PieceAt(board.E5))
	assert.Equal(t, board.White, loop.pos.SideToMove, "two plies should return the move to white")
}

func TestPositionIgnoresIllegalMove(t *testing.T) {
	var out bytes.Buffer
	loop := New(context.Background(), strings.NewReader(""), &out)

	before := loop.pos.ToFEN()
	loop.handlePosition([]string{"startpos", "moves", "e2e5"})

	assert.Equal(t, before, loop.pos.ToFEN(), "an illegal move should leave the position unchanged")
}

func TestGoServesCachedResultOnHit(t *testing.T) {
	var out bytes.Buffer
	loop := New(context.Background(), strings.NewReader(""), &out)

	cache, err := store.OpenAt(t.TempDir())
	require.NoError(t, err)
	defer cache.Close()
	loop.UseCache(cache)

	require.NoError(t, cache.Put(loop.pos.Hash, 4, store.Entry{BestMove: "e2e4", Score: 10, Depth: 4}))

	loop.handleGo([]string{"depth", "4"})

	assert.Contains(t, out.String(), "bestmove e2e4")
}

func TestParseGoOptions(t *testing.T) {
	opts := parseGoOptions([]string{"depth", "6"})
	assert.Equal(t, 6, opts.depth)
	assert.False(t, opts.infinite)

	opts = parseGoOptions([]string{"infinite"})
	assert.True(t, opts.infinite)
}
