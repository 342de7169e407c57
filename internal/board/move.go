package board

import "fmt"

// Move is a packed chess move in 21 bits:
//
//	[20..18] promotion piece | [17..15] captured piece | [14..12] piece moved
//	| [11..6] destination | [5..0] origin
//
// Promotion and captured-piece fields hold NoPieceType when absent. A null
// move is encoded as all zeros; since a real quiet move always carries
// NoPieceType (not zero) in its captured-piece field, zero is otherwise
// unreachable.
type Move uint32

// NoMove is the null move.
const NoMove Move = 0

const (
	moveOriginShift      = 0
	moveDestShift        = 6
	movePieceShift       = 12
	moveCapturedShift    = 15
	movePromotionShift   = 18
	moveFieldMask        = 0x3F
	movePieceFieldMask   = 0x7
)

// NewMove packs a move. captured and promo should be NoPieceType when the
// move is not a capture or promotion respectively.
func NewMove(from, to Square, piece, captured, promo PieceType) Move {
	return Move(from)<<moveOriginShift |
		Move(to)<<moveDestShift |
		Move(piece)<<movePieceShift |
		Move(captured)<<moveCapturedShift |
		Move(promo)<<movePromotionShift
}

// Origin returns the move's origin square.
func (m Move) Origin() Square {
	return Square((m >> moveOriginShift) & moveFieldMask)
}

// Destination returns the move's destination square.
func (m Move) Destination() Square {
	return Square((m >> moveDestShift) & moveFieldMask)
}

// PieceMoved returns the type of the piece making the move.
func (m Move) PieceMoved() PieceType {
	return PieceType((m >> movePieceShift) & movePieceFieldMask)
}

// CapturedPiece returns the type of the captured piece, or NoPieceType if
// the move is not a capture.
func (m Move) CapturedPiece() PieceType {
	return PieceType((m >> moveCapturedShift) & movePieceFieldMask)
}

// PromotionPiece returns the promotion piece type, or NoPieceType if the
// move is not a promotion.
func (m Move) PromotionPiece() PieceType {
	return PieceType((m >> movePromotionShift) & movePieceFieldMask)
}

// IsCapture returns true if the move captures a piece (including en
// passant).
func (m Move) IsCapture() bool {
	return m.CapturedPiece() != NoPieceType
}

// IsPromotion returns true if the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.PromotionPiece() != NoPieceType
}

// IsCastling returns true if the move is a king castling move: a king
// moving two files in one rank.
func (m Move) IsCastling() bool {
	return m.PieceMoved() == King && absInt(m.Destination().File()-m.Origin().File()) == 2
}

// IsEnPassant returns true if m is an en-passant capture: a pawn moving
// diagonally onto a square that, in pos (the position before the move was
// applied), is empty.
func (m Move) IsEnPassant(pos *Position) bool {
	return m.PieceMoved() == Pawn &&
		m.Destination().File() != m.Origin().File() &&
		pos.PieceAt(m.Destination()) == NoPiece
}

// IsQuiet returns true if the move is neither a capture nor a promotion.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// String returns the UCI-style representation of the move (e.g. "e2e4",
// "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.Origin().String() + m.Destination().String()
	if m.IsPromotion() {
		s += string(m.PromotionPiece().Char())
	}
	return s
}

// ParseMove parses a UCI-style move string against pos, the position the
// move is to be played in, to recover the piece-moved/captured-piece fields
// the wire format doesn't carry.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}
	pt := piece.Type()

	promo := NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
	}

	captured := pos.PieceAt(to).Type()
	if pt == Pawn && to == pos.EnPassant && pos.PieceAt(to) == NoPiece {
		captured = Pawn
	}

	return NewMove(from, to, pt, captured, promo), nil
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// MoveList is a fixed-size move buffer sized to the largest legal move
// count in any reachable chess position, avoiding heap allocation in the
// move generator's hot path.
type MoveList struct {
	moves [256]Move
	count int
}

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Set sets the move at index i.
func (ml *MoveList) Set(i int, m Move) {
	ml.moves[i] = m
}

// Swap swaps the moves at indices i and j.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear empties the list without releasing its backing array.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if m is present in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the list's moves as a slice sharing the list's backing
// array; it is invalidated by a subsequent Clear.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
