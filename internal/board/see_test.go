package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSEEKnownExchange(t *testing.T) {
	// White to move, the canonical SEE textbook position: Nxe5 is met by
	// Nxe5, and the rest of the sequence (RxN, BxR, QxB, QxQ) only adds to
	// White's loss, so capturing on e5 loses material.
	pos, err := ParseFEN("1k1r3q/1ppn3p/p4b2/4p3/8/P2N2P1/1PP1R1BP/2K1Q3 w - -")
	require.NoError(t, err)

	gain := SEE(pos, White, E5)
	assert.Negative(t, gain, "expected negative SEE gain capturing on e5")
}

func TestSEENoAttackerReturnsZero(t *testing.T) {
	pos := NewPosition()
	assert.Equal(t, 0, SEE(pos, White, E5), "expected 0 with no attacker on target")
}

func TestSEESimpleRookTrade(t *testing.T) {
	// White rook takes black rook on d5, undefended: pure material gain.
	pos, err := ParseFEN("4k3/8/8/3r4/8/8/8/3RK3 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, PieceValue[Rook], SEE(pos, White, D5))
}

func TestSEEDefendedPawnLosesExchange(t *testing.T) {
	// White rook captures a pawn defended by a black rook behind it: losing
	// the exchange (rook for pawn) should score negative.
	pos, err := ParseFEN("k2r4/8/8/3p4/8/8/8/3RK3 w - - 0 1")
	require.NoError(t, err)
	assert.Negative(t, SEE(pos, White, D5), "expected negative SEE losing rook for a defended pawn")
}
