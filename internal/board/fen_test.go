package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFENValid(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	require.NoError(t, err)
	assert.Equal(t, White, pos.SideToMove)
	assert.Equal(t, AllCastling, pos.CastlingRights)
	assert.Equal(t, pos.Material[Black], pos.Material[White], "expected symmetric starting material")
}

func fenRuleOf(t *testing.T, fen string) FENRule {
	t.Helper()
	_, err := ParseFEN(fen)
	require.Error(t, err, "expected error for FEN %q", fen)
	fe, ok := err.(*FENError)
	require.True(t, ok, "expected *FENError, got %T: %v", err, err)
	return fe.Rule
}

func TestParseFENRejections(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		rule FENRule
	}{
		{"too few ranks", "8/8/8/8/8/8/8 w - -", RuleRankCount},
		{"bad character", "rnbqkbnz/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -", RuleInvalidCharacter},
		{"wrong square count", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -", RuleSquareCount},
		{"bad half-move clock", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1", RuleMoveCounters},
		{"bad en passant square", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9", RuleEnPassantSquare},
		{"bad castling rights", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XYkq -", RuleCastlingRights},
		{"bad side to move", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq -", RuleSideToMove},
		{"pawn on back rank", "Pnbqkbnr/pppppppp/8/8/8/8/1PPPPPPP/RNBQKBNR w KQkq -", RulePawnsOnBackRank},
		{"missing king", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w KQkq -", RuleKingCount},
		{"opponent in check", "rnb1kbnr/ppppqppp/8/8/8/8/PPPP1PPP/RNBQKBNR b KQkq -", RuleOppositeCheck},
		{"castling right without rook", "r3k2r/8/8/8/8/8/8/4K3 w KQkq -", RuleCastlingHomeSquare},
		{"en passant without pawn", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e3", RuleEnPassantPawn},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.rule, fenRuleOf(t, tc.fen))
		})
	}
}
