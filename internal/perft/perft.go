// Package perft counts and divides leaf nodes of the move generator, the
// standard way of testing a chess move generator for correctness against
// known-good counts. Exposed standalone (not just as a board package test
// helper) so the UCI loop in internal/uci can offer a "perft" command.
package perft

import "github.com/halcyonchess/core/internal/board"

// Count returns the number of leaf nodes reachable from pos in exactly
// depth plies, by exhaustively making and unmaking every legal move.
func Count(pos *board.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := board.GenerateLegalMoves(pos)
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		pos.Make(m)
		nodes += Count(pos, depth-1)
		pos.Unmake(m)
	}
	return nodes
}

// DivideEntry is one root move's leaf-node count, from Divide.
type DivideEntry struct {
	Move  board.Move
	Nodes int64
}

// Divide returns the perft count split out per root move, the standard way
// of localizing a move-generator bug: compare each entry against a trusted
// engine's divide output for the same position and depth to find the first
// diverging root move.
func Divide(pos *board.Position, depth int) []DivideEntry {
	moves := board.GenerateLegalMoves(pos)
	entries := make([]DivideEntry, 0, moves.Len())

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		pos.Make(m)
		nodes := Count(pos, depth-1)
		pos.Unmake(m)
		entries = append(entries, DivideEntry{Move: m, Nodes: nodes})
	}

	return entries
}
