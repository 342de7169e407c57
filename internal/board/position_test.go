package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUnmakeRestoresState(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		require.NoErrorf(t, err, "parse %q", fen)

		before := *pos
		moves := GenerateLegalMoves(pos)
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			pos.Make(m)
			pos.Unmake(m)

			require.Equalf(t, before.Hash, pos.Hash, "fen %q move %v: hash not restored", fen, m)
			assert.Equalf(t, before.AllOccupied, pos.AllOccupied, "fen %q move %v: occupancy not restored", fen, m)
			assert.Equalf(t, before.CastlingRights, pos.CastlingRights, "fen %q move %v: castling rights not restored", fen, m)
			assert.Equalf(t, before.EnPassant, pos.EnPassant, "fen %q move %v: en passant not restored", fen, m)
			assert.Equalf(t, before.HalfMoveClock, pos.HalfMoveClock, "fen %q move %v: half-move clock not restored", fen, m)
			assert.Equalf(t, before.SideToMove, pos.SideToMove, "fen %q move %v: side to move not restored", fen, m)
			assert.Equalf(t, before.Pieces, pos.Pieces, "fen %q move %v: per-piece bitboards not restored", fen, m)
			assert.Equalf(t, before.Occupied, pos.Occupied, "fen %q move %v: per-color occupancy not restored", fen, m)
			assert.Equalf(t, before.board, pos.board, "fen %q move %v: per-square board not restored", fen, m)
			assert.Equalf(t, before.Material, pos.Material, "fen %q move %v: material not restored", fen, m)
		}
	}
}

func TestIncrementalHashMatchesFromScratch(t *testing.T) {
	pos := NewPosition()
	moves := GenerateLegalMoves(pos)
	require.NotZero(t, moves.Len(), "starting position has no legal moves")

	for i := 0; i < moves.Len(); i++ {
		p := NewPosition()
		m := moves.Get(i)
		p.Make(m)

		assert.Equalf(t, p.ComputeHash(), p.Hash, "move %v: incremental hash mismatch", m)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		require.NoErrorf(t, err, "parse %q", fen)
		assert.Equal(t, fen, pos.ToFEN())
	}
}

func TestCastlingUpdatesRightsAndHash(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	m := NewMove(E1, G1, King, NoPieceType, NoPieceType)
	require.True(t, ValidateMove(pos, m, false), "kingside castle should be legal")

	pos.Make(m)
	assert.False(t, pos.CastlingRights.CanCastle(White, true) || pos.CastlingRights.CanCastle(White, false),
		"white castling rights should be cleared after castling")
	assert.Equal(t, WhiteRook, pos.PieceAt(F1))
	assert.Equal(t, WhiteKing, pos.PieceAt(G1))
	assert.Equal(t, pos.ComputeHash(), pos.Hash, "hash diverges from scratch after castling")
}
