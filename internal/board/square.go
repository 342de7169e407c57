// Package board implements chess position representation using bitboards.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
//
// Numbering: H1=0, A1=7, H8=56, A8=63. File 0 is the H-file, rank 0 is
// White's back rank. file(sq) = sq & 7, rank(sq) = sq >> 3.
type Square uint8

// Square constants for all 64 squares, rank 1 through rank 8, H-file first.
const (
	H1 Square = iota
	G1
	F1
	E1
	D1
	C1
	B1
	A1
	H2
	G2
	F2
	E2
	D2
	C2
	B2
	A2
	H3
	G3
	F3
	E3
	D3
	C3
	B3
	A3
	H4
	G4
	F4
	E4
	D4
	C4
	B4
	A4
	H5
	G5
	F5
	E5
	D5
	C5
	B5
	A5
	H6
	G6
	F6
	E6
	D6
	C6
	B6
	A6
	H7
	G7
	F7
	E7
	D7
	C7
	B7
	A7
	H8
	G8
	F8
	E8
	D8
	C8
	B8
	A8
	NoSquare Square = 64
)

// File returns the file of the square, 0..7, where 0 is the H-file.
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank of the square, 0..7, where 0 is rank 1.
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// fileLetter converts a file index (0=H..7=A) to its algebraic letter.
func fileLetter(file int) byte {
	return byte('h' - file)
}

// String returns the algebraic notation for the square (e.g. "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", fileLetter(sq.File()), '1'+sq.Rank())
}

// NewSquare builds a square from a file (0=H..7=A) and rank (0..7) pair.
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare parses algebraic notation (e.g. "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}
	letter := s[0]
	if letter < 'a' || letter > 'h' {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}
	file := int('h' - letter)
	rank := int(s[1] - '1')
	if rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}
	return NewSquare(file, rank), nil
}

// IsValid returns true if the square is one of the 64 board squares.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Mirror returns the square reflected onto the opposite rank, same file.
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// RelativeRank returns the rank as seen from color c's side of the board.
func (sq Square) RelativeRank(c Color) int {
	if c == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}
