package board

import "fmt"

// CastlingRights is a 4-bit mask: bit 0 = White kingside, bit 1 = White
// queenside, bit 2 = Black kingside, bit 3 = Black queenside.
type CastlingRights uint8

const (
	WhiteKingSideCastle CastlingRights = 1 << iota
	WhiteQueenSideCastle
	BlackKingSideCastle
	BlackQueenSideCastle
	NoCastling  CastlingRights = 0
	AllCastling CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling-rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if c holds the kingside (or queenside) right.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// kingSideRight and queenSideRight return the single-bit right for color c.
func kingSideRight(c Color) CastlingRights {
	if c == White {
		return WhiteKingSideCastle
	}
	return BlackKingSideCastle
}

func queenSideRight(c Color) CastlingRights {
	if c == White {
		return WhiteQueenSideCastle
	}
	return BlackQueenSideCastle
}

func bothRights(c Color) CastlingRights {
	return kingSideRight(c) | queenSideRight(c)
}

// MaxHistory bounds the per-ply history arrays used by make/unmake; no
// legal search depth exceeds it.
const MaxHistory = 128

// HistoryEntry captures the state make(move) cannot reconstruct from the
// move bits alone, snapshotted before the move that advances into this
// ply is applied.
type HistoryEntry struct {
	CastlingRights  CastlingRights
	EnPassant       Square
	HalfMoveClock   int
	PlyOfLastReset  int
	Hash            uint64
}

// Position represents a complete chess position.
type Position struct {
	// Pieces[color][pieceType] gives that piece type's bitboard.
	Pieces [2][6]Bitboard

	// Occupied[color] is the union of that color's piece bitboards;
	// AllOccupied is the union of both.
	Occupied    [2]Bitboard
	AllOccupied Bitboard

	// board is a dense per-square cache, redundant with Pieces/Occupied,
	// answering "what piece is on s?" in O(1).
	board [64]Piece

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	FullMoveNumber int

	// Ply counts moves made since this Position was constructed (reset to
	// zero at search root); History is indexed by Ply.
	Ply     int
	History [MaxHistory]HistoryEntry

	Hash uint64

	KingSquare [2]Square
	Checkers   Bitboard

	// Material[color] is the incrementally maintained sum of that color's
	// non-king piece values.
	Material [2]int

	plyOfLastReset int
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// Copy returns a deep copy of the position (History is a fixed array, so
// the struct copy already deep-copies it).
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// PieceAt returns the piece on sq, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.board[sq]
}

// IsEmpty returns true if sq carries no piece.
func (p *Position) IsEmpty(sq Square) bool {
	return p.board[sq] == NoPiece
}

// setPiece places piece on sq, updating bitboards and the dense array but
// not the hash.
func (p *Position) setPiece(piece Piece, sq Square) {
	if piece == NoPiece {
		return
	}
	c, pt := piece.Color(), piece.Type()
	bb := SquareBB(sq)

	p.Pieces[c][pt] |= bb
	p.Occupied[c] |= bb
	p.AllOccupied |= bb
	p.board[sq] = piece

	if pt == King {
		p.KingSquare[c] = sq
	}
}

// removePiece clears sq, returning the piece that was there (or NoPiece).
func (p *Position) removePiece(sq Square) Piece {
	piece := p.board[sq]
	if piece == NoPiece {
		return NoPiece
	}
	c, pt := piece.Color(), piece.Type()
	bb := SquareBB(sq)

	p.Pieces[c][pt] &^= bb
	p.Occupied[c] &^= bb
	p.AllOccupied &^= bb
	p.board[sq] = NoPiece

	return piece
}

// updateOccupied recalculates the occupancy bitboards from the piece
// bitboards; used only right after bulk board construction (FEN parsing).
func (p *Position) updateOccupied() {
	p.Occupied[White] = Empty
	p.Occupied[Black] = Empty
	for pt := Pawn; pt <= King; pt++ {
		p.Occupied[White] |= p.Pieces[White][pt]
		p.Occupied[Black] |= p.Pieces[Black][pt]
	}
	p.AllOccupied = p.Occupied[White] | p.Occupied[Black]
}

// rebuildBoard regenerates the dense per-square cache from the bitboards.
func (p *Position) rebuildBoard() {
	for sq := range p.board {
		p.board[sq] = NoPiece
	}
	for c := Black; c <= White; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				p.board[sq] = NewPiece(pt, c)
			}
		}
	}
}

func (p *Position) findKings() {
	p.KingSquare[White] = p.Pieces[White][King].LSB()
	p.KingSquare[Black] = p.Pieces[Black][King].LSB()
}

func (p *Position) computeMaterial() {
	p.Material[White] = 0
	p.Material[Black] = 0
	for pt := Pawn; pt < King; pt++ {
		p.Material[White] += p.Pieces[White][pt].PopCount() * PieceValue[pt]
		p.Material[Black] += p.Pieces[Black][pt].PopCount() * PieceValue[pt]
	}
}

// String returns a human-readable board diagram plus state summary.
func (p *Position) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.board[NewSquare(file, rank)]
			if piece == NoPiece {
				s += ". "
			} else {
				s += piece.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   h g f e d c b a\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.SideToMove)
	s += fmt.Sprintf("Castling: %s\n", p.CastlingRights)
	s += fmt.Sprintf("En passant: %s\n", p.EnPassant)
	s += fmt.Sprintf("Half-move clock: %d\n", p.HalfMoveClock)
	s += fmt.Sprintf("Full move: %d\n", p.FullMoveNumber)
	s += fmt.Sprintf("Hash: %016x\n", p.Hash)
	return s
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.Checkers != 0
}

// IsCheckmate returns true if the side to move is in check with no legal
// reply.
func (p *Position) IsCheckmate() bool {
	if !p.InCheck() {
		return false
	}
	var ml MoveList
	GenerateCheckEvasions(p, &ml)
	return ml.Len() == 0
}

// IsStalemate returns true if the side to move is not in check but has no
// legal move.
func (p *Position) IsStalemate() bool {
	if p.InCheck() {
		return false
	}
	ml := GenerateLegalMoves(p)
	return ml.Len() == 0
}

// GameOver returns true if the position is checkmate, stalemate, or the
// half-move clock has reached the 50-move-rule threshold.
func (p *Position) GameOver() bool {
	return p.IsCheckmate() || p.IsStalemate() || p.HalfMoveClock >= 100
}

// homeRookSquare returns the square the rook for (color, kingSide) starts
// on, used to test whether a castling right is still backed by a rook that
// hasn't moved.
func homeRookSquare(c Color, kingSide bool) Square {
	rank := 0
	if c == Black {
		rank = 7
	}
	if kingSide {
		return NewSquare(0, rank) // H-file
	}
	return NewSquare(7, rank) // A-file
}

func homeKingSquare(c Color) Square {
	rank := 0
	if c == Black {
		rank = 7
	}
	return NewSquare(3, rank) // E-file
}

// ComputePinned returns the pieces of the side to move pinned to its own
// king: for each enemy slider aligned with the king, the lone friendly
// blocker between them.
func (p *Position) ComputePinned() Bitboard {
	us := p.SideToMove
	them := us.Other()
	ksq := p.KingSquare[us]
	var pinned Bitboard

	snipers := RookAttacks(ksq, 0) & (p.Pieces[them][Rook] | p.Pieces[them][Queen])
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(sq, ksq) & p.AllOccupied
		if blockers.PopCount() == 1 && blockers&p.Occupied[us] != 0 {
			pinned |= blockers
		}
	}

	snipers = BishopAttacks(ksq, 0) & (p.Pieces[them][Bishop] | p.Pieces[them][Queen])
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(sq, ksq) & p.AllOccupied
		if blockers.PopCount() == 1 && blockers&p.Occupied[us] != 0 {
			pinned |= blockers
		}
	}

	return pinned
}

// DiscoverReady returns, for color c, the squares holding a piece of color
// c that blocks one of c's own sliders from the enemy king — moving such a
// piece off its line delivers a discovered check.
func (p *Position) DiscoverReady(c Color) Bitboard {
	them := c.Other()
	ksq := p.KingSquare[them]
	var ready Bitboard

	snipers := RookAttacks(ksq, 0) & (p.Pieces[c][Rook] | p.Pieces[c][Queen])
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(sq, ksq) & p.AllOccupied
		if blockers.PopCount() == 1 && blockers&p.Occupied[c] != 0 {
			ready |= blockers
		}
	}

	snipers = BishopAttacks(ksq, 0) & (p.Pieces[c][Bishop] | p.Pieces[c][Queen])
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(sq, ksq) & p.AllOccupied
		if blockers.PopCount() == 1 && blockers&p.Occupied[c] != 0 {
			ready |= blockers
		}
	}

	return ready
}

// Make applies m to the position, pushing a history entry so Unmake can
// restore exactly what make cannot recompute from the move bits. Passing
// NoMove makes the null move: it clears en passant, toggles the side to
// move, and returns.
func (p *Position) Make(m Move) {
	us := p.SideToMove
	them := us.Other()

	p.History[p.Ply] = HistoryEntry{
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		PlyOfLastReset: p.plyOfLastReset,
		Hash:           p.Hash,
	}
	p.Ply++

	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	p.EnPassant = NoSquare

	if m == NoMove {
		p.SideToMove = them
		p.Hash ^= zobristSideToMove
		p.UpdateCheckers()
		return
	}

	from, to := m.Origin(), m.Destination()
	pt := m.PieceMoved()
	captured := m.CapturedPiece()
	promo := m.PromotionPiece()
	isEnPassant := m.IsEnPassant(p)
	isCastling := m.IsCastling()
	resetClock := pt == Pawn || captured != NoPieceType

	if isEnPassant {
		capSq := Square(int(to) - 8)
		if us == Black {
			capSq = Square(int(to) + 8)
		}
		p.removePiece(capSq)
		p.Hash ^= ZobristPiece(them, Pawn, capSq)
		p.Material[them] -= PieceValue[Pawn]
	} else if captured != NoPieceType {
		p.removePiece(to)
		p.Hash ^= ZobristPiece(them, captured, to)
		p.Material[them] -= PieceValue[captured]

		if captured == Rook {
			if to == homeRookSquare(them, true) {
				p.clearCastlingRight(kingSideRight(them))
			} else if to == homeRookSquare(them, false) {
				p.clearCastlingRight(queenSideRight(them))
			}
		}
	}

	p.removePiece(from)
	p.Hash ^= ZobristPiece(us, pt, from)

	placed := pt
	if promo != NoPieceType {
		placed = promo
		p.Material[us] += PieceValue[promo] - PieceValue[Pawn]
	}
	p.setPiece(NewPiece(placed, us), to)
	p.Hash ^= ZobristPiece(us, placed, to)

	if isCastling {
		kingSide := to.File() < from.File()
		rookFrom := homeRookSquare(us, kingSide)
		var rookTo Square
		if kingSide {
			rookTo = Square(int(to) + 1)
		} else {
			rookTo = Square(int(to) - 1)
		}
		p.removePiece(rookFrom)
		p.Hash ^= ZobristPiece(us, Rook, rookFrom)
		p.setPiece(NewPiece(Rook, us), rookTo)
		p.Hash ^= ZobristPiece(us, Rook, rookTo)
	}

	if pt == King {
		p.clearCastlingRight(bothRights(us))
	} else if pt == Rook {
		if from == homeRookSquare(us, true) {
			p.clearCastlingRight(kingSideRight(us))
		} else if from == homeRookSquare(us, false) {
			p.clearCastlingRight(queenSideRight(us))
		}
	}

	if pt == Pawn && absInt(int(to)-int(from)) == 16 {
		p.EnPassant = EpTarget(to)
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}

	if resetClock {
		p.HalfMoveClock = 0
		p.plyOfLastReset = p.Ply
	} else {
		p.HalfMoveClock++
	}

	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	p.Hash ^= zobristSideToMove
	p.UpdateCheckers()
}

// clearCastlingRight clears rights and keeps the Zobrist hash in sync.
func (p *Position) clearCastlingRight(rights CastlingRights) {
	if p.CastlingRights&rights == 0 {
		return
	}
	p.Hash ^= zobristCastlingKey(p.CastlingRights)
	p.CastlingRights &^= rights
	p.Hash ^= zobristCastlingKey(p.CastlingRights)
}

// Unmake reverses the effect of Make(m); m must be the same move just
// made on this position.
func (p *Position) Unmake(m Move) {
	p.Ply--
	h := p.History[p.Ply]

	them := p.SideToMove
	us := them.Other()
	p.SideToMove = us
	p.CastlingRights = h.CastlingRights
	p.EnPassant = h.EnPassant
	p.HalfMoveClock = h.HalfMoveClock
	p.plyOfLastReset = h.PlyOfLastReset
	p.Hash = h.Hash

	if m == NoMove {
		p.UpdateCheckers()
		return
	}

	if us == Black {
		p.FullMoveNumber--
	}

	from, to := m.Origin(), m.Destination()
	pt := m.PieceMoved()
	captured := m.CapturedPiece()
	promo := m.PromotionPiece()
	// Move.IsEnPassant inspects the *current* board to see whether the
	// destination square was empty before the move — only valid pre-Make.
	// Here the board is still in its post-move state (the capturing pawn
	// sits on to), so detect en passant from the restored history instead:
	// h.EnPassant is the en-passant square as it stood before this move was
	// made, and a real en-passant capture is the only way a pawn move can
	// land exactly there while "capturing" a pawn.
	isEnPassant := pt == Pawn && to == h.EnPassant && captured == Pawn

	if m.IsCastling() {
		kingSide := to.File() < from.File()
		rookFrom := homeRookSquare(us, kingSide)
		var rookTo Square
		if kingSide {
			rookTo = Square(int(to) + 1)
		} else {
			rookTo = Square(int(to) - 1)
		}
		p.removePiece(rookTo)
		p.setPiece(NewPiece(Rook, us), rookFrom)
	}

	p.removePiece(to)
	p.setPiece(NewPiece(pt, us), from)

	if promo != NoPieceType {
		p.Material[us] -= PieceValue[promo] - PieceValue[Pawn]
	}

	if isEnPassant {
		capSq := Square(int(to) - 8)
		if us == Black {
			capSq = Square(int(to) + 8)
		}
		p.setPiece(NewPiece(Pawn, them), capSq)
		p.Material[them] += PieceValue[Pawn]
	} else if captured != NoPieceType {
		p.setPiece(NewPiece(captured, them), to)
		p.Material[them] += PieceValue[captured]
	}

	p.UpdateCheckers()
}

// NullMoveUndo is an opaque token returned by MakeNullMove and required by
// UnmakeNullMove, kept for callers (e.g. a future null-move-pruning
// extension) that want an explicit pairing instead of Make(NoMove).
type NullMoveUndo struct {
	EnPassant Square
	Hash      uint64
}

// MakeNullMove passes the turn without moving a piece.
func (p *Position) MakeNullMove() NullMoveUndo {
	undo := NullMoveUndo{EnPassant: p.EnPassant, Hash: p.Hash}
	p.Make(NoMove)
	return undo
}

// UnmakeNullMove undoes MakeNullMove.
func (p *Position) UnmakeNullMove(undo NullMoveUndo) {
	p.Ply--
	p.SideToMove = p.SideToMove.Other()
	p.EnPassant = undo.EnPassant
	p.Hash = undo.Hash
	p.UpdateCheckers()
}

// HasNonPawnMaterial returns true if the side to move has any piece other
// than pawns and king.
func (p *Position) HasNonPawnMaterial() bool {
	us := p.SideToMove
	return p.Pieces[us][Knight]|p.Pieces[us][Bishop]|p.Pieces[us][Rook]|p.Pieces[us][Queen] != 0
}
