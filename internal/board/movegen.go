package board

// Move generation. Every generator emits strictly legal 21-bit packed moves
// (destinations that leave the mover's own king safe) into a caller-owned
// MoveList. Four entry points (GenerateCaptures, GenerateNonCaptures,
// GenerateCheckEvasions, GenerateChecks) cover the search's needs;
// ValidateMove checks a move from an external source by generating the
// list for the position and looking the move up in it.

func pieceAttacksFrom(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Knight:
		return KnightAttacks[sq]
	case Bishop:
		return BishopAttacks(sq, occupied)
	case Rook:
		return RookAttacks(sq, occupied)
	case Queen:
		return QueenAttacks(sq, occupied)
	case King:
		return KingAttacks[sq]
	default:
		return 0
	}
}

// isKingMoveSafe returns true if the king of color us may land on to,
// computed with the king's departure square vacated so a slider whose ray
// passed through the king is correctly seen to still attack beyond it.
func isKingMoveSafe(pos *Position, ksq, to Square, them Color) bool {
	occWithoutKing := pos.AllOccupied &^ SquareBB(ksq)
	return pos.AttackersByColor(to, them, occWithoutKing) == 0
}

// generateLeaperOrSliderMoves emits moves for knights, bishops, rooks and
// queens of color us whose destination lies in destMask, respecting pins.
func generateLeaperOrSliderMoves(pos *Position, ml *MoveList, pt PieceType, us Color, pinned Bitboard, ksq Square, destMask Bitboard) {
	pieces := pos.Pieces[us][pt]
	for pieces != 0 {
		from := pieces.PopLSB()
		attacks := pieceAttacksFrom(pt, from, pos.AllOccupied) & destMask
		if pinned&SquareBB(from) != 0 {
			attacks &= Line(from, ksq)
		}
		for attacks != 0 {
			to := attacks.PopLSB()
			captured := pos.board[to].Type()
			ml.Add(NewMove(from, to, pt, captured, NoPieceType))
		}
	}
}

// generateKingMoves emits king moves whose destination lies in destMask and
// is not attacked once the king has vacated its origin square.
func generateKingMoves(pos *Position, ml *MoveList, us, them Color, destMask Bitboard) {
	ksq := pos.KingSquare[us]
	attacks := KingAttacks[ksq] & destMask
	for attacks != 0 {
		to := attacks.PopLSB()
		if !isKingMoveSafe(pos, ksq, to, them) {
			continue
		}
		captured := pos.board[to].Type()
		ml.Add(NewMove(ksq, to, King, captured, NoPieceType))
	}
}

const promotionPieces = 4

var promotionOrder = [promotionPieces]PieceType{Knight, Bishop, Rook, Queen}

// generatePawnPushes emits single/double pawn advances (promotions
// included) whose destination lies in destMask.
func generatePawnPushes(pos *Position, ml *MoveList, us Color, pinned Bitboard, ksq Square, destMask Bitboard) {
	pawns := pos.Pieces[us][Pawn]
	empty := ^pos.AllOccupied

	var singlePush, doublePush Bitboard
	var promoRank int
	if us == White {
		singlePush = pawns.North() & empty
		doublePush = (singlePush & RankMask[2]).North() & empty
		promoRank = 7
	} else {
		singlePush = pawns.South() & empty
		doublePush = (singlePush & RankMask[5]).South() & empty
		promoRank = 0
	}

	emit := func(pushed Bitboard, delta int) {
		pushed &= destMask
		for pushed != 0 {
			to := pushed.PopLSB()
			from := Square(int(to) - delta)
			if pinned&SquareBB(from) != 0 && Line(from, ksq)&SquareBB(to) == 0 {
				continue
			}
			if to.Rank() == promoRank {
				for _, promo := range promotionOrder {
					ml.Add(NewMove(from, to, Pawn, NoPieceType, promo))
				}
			} else {
				ml.Add(NewMove(from, to, Pawn, NoPieceType, NoPieceType))
			}
		}
	}

	if us == White {
		emit(singlePush, 8)
		emit(doublePush, 16)
	} else {
		emit(singlePush, -8)
		emit(doublePush, -16)
	}
}

// generatePawnCaptures emits diagonal pawn captures (promotions included)
// whose destination lies in destMask, plus the en-passant capture if it is
// available and, when checkerSq is not NoSquare, only if it captures the
// checking pawn.
func generatePawnCaptures(pos *Position, ml *MoveList, us, them Color, pinned Bitboard, ksq Square, destMask Bitboard, checkerSq Square) {
	pawns := pos.Pieces[us][Pawn]
	enemy := pos.Occupied[them] & destMask

	var promoRank int
	type shiftDir struct {
		dests Bitboard
		delta int
	}
	var dirs []shiftDir
	if us == White {
		promoRank = 7
		dirs = []shiftDir{{pawns.NorthEast() & enemy, 7}, {pawns.NorthWest() & enemy, 9}}
	} else {
		promoRank = 0
		dirs = []shiftDir{{pawns.SouthWest() & enemy, -7}, {pawns.SouthEast() & enemy, -9}}
	}

	for _, d := range dirs {
		dests := d.dests
		for dests != 0 {
			to := dests.PopLSB()
			from := Square(int(to) - d.delta)
			if pinned&SquareBB(from) != 0 && Line(from, ksq)&SquareBB(to) == 0 {
				continue
			}
			captured := pos.board[to].Type()
			if to.Rank() == promoRank {
				for _, promo := range promotionOrder {
					ml.Add(NewMove(from, to, Pawn, captured, promo))
				}
			} else {
				ml.Add(NewMove(from, to, Pawn, captured, NoPieceType))
			}
		}
	}

	ep := pos.EnPassant
	if ep == NoSquare {
		return
	}
	capturedSq := Square(int(ep) - 8)
	if us == Black {
		capturedSq = Square(int(ep) + 8)
	}
	if checkerSq != NoSquare && capturedSq != checkerSq {
		return
	}

	capturers := PawnAttacks[them][ep] & pawns
	for capturers != 0 {
		from := capturers.PopLSB()
		if !enPassantIsSafe(pos, from, capturedSq, ep, us, them) {
			continue
		}
		ml.Add(NewMove(from, ep, Pawn, Pawn, NoPieceType))
	}
}

// enPassantIsSafe guards the classic "5th rank pin": removing both the
// capturing and captured pawns from the occupancy must not expose the king
// to a rook/queen attack along the shared rank.
func enPassantIsSafe(pos *Position, from, capturedSq, to Square, us, them Color) bool {
	ksq := pos.KingSquare[us]
	occ := pos.AllOccupied &^ SquareBB(from) &^ SquareBB(capturedSq) | SquareBB(to)
	rankAttackers := RookAttacks(ksq, occ) & (pos.Pieces[them][Rook] | pos.Pieces[them][Queen])
	return rankAttackers == 0
}

func generateCastling(pos *Position, ml *MoveList) {
	us := pos.SideToMove
	them := us.Other()
	ksq := pos.KingSquare[us]
	rank := ksq.Rank()

	if pos.CastlingRights.CanCastle(us, true) {
		rookFrom := homeRookSquare(us, true)
		var between Bitboard
		for f := 1; f < 3; f++ {
			between |= SquareBB(NewSquare(f, rank))
		}
		if pos.board[rookFrom] == NewPiece(Rook, us) && between&pos.AllOccupied == 0 {
			dest, mid := NewSquare(1, rank), NewSquare(2, rank)
			if !pos.IsSquareAttacked(ksq, them) && !pos.IsSquareAttacked(mid, them) && !pos.IsSquareAttacked(dest, them) {
				ml.Add(NewMove(ksq, dest, King, NoPieceType, NoPieceType))
			}
		}
	}

	if pos.CastlingRights.CanCastle(us, false) {
		rookFrom := homeRookSquare(us, false)
		var between Bitboard
		for f := 4; f < 7; f++ {
			between |= SquareBB(NewSquare(f, rank))
		}
		if pos.board[rookFrom] == NewPiece(Rook, us) && between&pos.AllOccupied == 0 {
			dest, mid := NewSquare(5, rank), NewSquare(4, rank)
			if !pos.IsSquareAttacked(ksq, them) && !pos.IsSquareAttacked(mid, them) && !pos.IsSquareAttacked(dest, them) {
				ml.Add(NewMove(ksq, dest, King, NoPieceType, NoPieceType))
			}
		}
	}
}

// GenerateCaptures generates all captures and all promotions (promoting
// non-captures are included so quiescence search sees them).
func GenerateCaptures(pos *Position, ml *MoveList) {
	us, them := pos.SideToMove, pos.SideToMove.Other()
	pinned := pos.ComputePinned()
	ksq := pos.KingSquare[us]
	enemy := pos.Occupied[them]

	for _, pt := range [4]PieceType{Knight, Rook, Bishop, Queen} {
		generateLeaperOrSliderMoves(pos, ml, pt, us, pinned, ksq, enemy)
	}
	generateKingMoves(pos, ml, us, them, enemy)
	generatePawnCaptures(pos, ml, us, them, pinned, ksq, Universe, NoSquare)

	promoRank := 7
	if us == Black {
		promoRank = 0
	}
	generatePawnPushes(pos, ml, us, pinned, ksq, RankMask[promoRank])
}

// GenerateNonCaptures generates all quiet moves except promotions (which
// GenerateCaptures emits).
func GenerateNonCaptures(pos *Position, ml *MoveList) {
	us, them := pos.SideToMove, pos.SideToMove.Other()
	pinned := pos.ComputePinned()
	ksq := pos.KingSquare[us]
	empty := ^pos.AllOccupied

	for _, pt := range [4]PieceType{Knight, Rook, Bishop, Queen} {
		generateLeaperOrSliderMoves(pos, ml, pt, us, pinned, ksq, empty)
	}
	generateKingMoves(pos, ml, us, them, empty)
	generateCastling(pos, ml)

	promoRank := 7
	if us == Black {
		promoRank = 0
	}
	generatePawnPushes(pos, ml, us, pinned, ksq, empty&^RankMask[promoRank])
}

// GenerateCheckEvasions generates legal responses to check: king moves,
// captures of a lone checker, and interposing moves (meaningless, and
// skipped, against a knight or pawn checker). Double check admits only
// king moves.
func GenerateCheckEvasions(pos *Position, ml *MoveList) {
	us, them := pos.SideToMove, pos.SideToMove.Other()
	ksq := pos.KingSquare[us]
	empty := ^pos.AllOccupied

	generateKingMoves(pos, ml, us, them, ^pos.Occupied[us])

	checkers := pos.Checkers
	if checkers.PopCount() != 1 {
		return
	}
	checkerSq := checkers.LSB()

	pinned := pos.ComputePinned()
	target := SquareBB(checkerSq) | (Between(ksq, checkerSq) & empty)

	for _, pt := range [4]PieceType{Knight, Rook, Bishop, Queen} {
		generateLeaperOrSliderMoves(pos, ml, pt, us, pinned, ksq, target)
	}
	generatePawnCaptures(pos, ml, us, them, pinned, ksq, SquareBB(checkerSq), checkerSq)
	generatePawnPushes(pos, ml, us, pinned, ksq, target&^SquareBB(checkerSq))
}

// GenerateChecks generates quiet moves (non-capturing, non-promoting) that
// deliver check: discovered checks (a piece blocking a friendly slider's
// line to the enemy king moves off that line) and direct checks (the
// destination attacks the enemy king).
func GenerateChecks(pos *Position, ml *MoveList) {
	us, them := pos.SideToMove, pos.SideToMove.Other()
	ksq := pos.KingSquare[us]
	enemyKing := pos.KingSquare[them]
	pinned := pos.ComputePinned()
	discoverReady := pos.DiscoverReady(us)
	empty := ^pos.AllOccupied

	for _, pt := range [4]PieceType{Knight, Rook, Bishop, Queen} {
		pieces := pos.Pieces[us][pt]
		for pieces != 0 {
			from := pieces.PopLSB()
			attacks := pieceAttacksFrom(pt, from, pos.AllOccupied) & empty
			if pinned&SquareBB(from) != 0 {
				attacks &= Line(from, ksq)
			}
			for attacks != 0 {
				to := attacks.PopLSB()
				m := NewMove(from, to, pt, NoPieceType, NoPieceType)
				discovered := discoverReady&SquareBB(from) != 0 && Line(from, enemyKing)&SquareBB(to) == 0
				scratch := NewVBoard(pos)
				scratch.ApplyMove(m, us)
				direct := scratch.IsKingAttacked(enemyKing, us)
				if discovered || direct {
					ml.Add(m)
				}
			}
		}
	}

	pawns := pos.Pieces[us][Pawn]
	var singlePush, doublePush Bitboard
	var delta1, delta2, promoRank int
	if us == White {
		singlePush = pawns.North() & empty
		doublePush = (singlePush & RankMask[2]).North() & empty
		delta1, delta2, promoRank = 8, 16, 7
	} else {
		singlePush = pawns.South() & empty
		doublePush = (singlePush & RankMask[5]).South() & empty
		delta1, delta2, promoRank = -8, -16, 0
	}
	singlePush &^= RankMask[promoRank]
	check := func(pushed Bitboard, delta int) {
		for pushed != 0 {
			to := pushed.PopLSB()
			from := Square(int(to) - delta)
			if pinned&SquareBB(from) != 0 && Line(from, ksq)&SquareBB(to) == 0 {
				continue
			}
			discovered := discoverReady&SquareBB(from) != 0 && Line(from, enemyKing)&SquareBB(to) == 0
			direct := PawnAttacks[us][to]&SquareBB(enemyKing) != 0
			if discovered || direct {
				ml.Add(NewMove(from, to, Pawn, NoPieceType, NoPieceType))
			}
		}
	}
	check(singlePush, delta1)
	check(doublePush, delta2)

	var castleList MoveList
	generateCastling(pos, &castleList)
	for i := 0; i < castleList.Len(); i++ {
		m := castleList.Get(i)
		scratch := NewVBoard(pos)
		scratch.ApplyMove(m, us)
		if scratch.IsKingAttacked(enemyKing, us) {
			ml.Add(m)
		}
	}
}

// GenerateLegalMoves returns every legal move in pos: check evasions if the
// side to move is in check, otherwise captures followed by non-captures.
func GenerateLegalMoves(pos *Position) MoveList {
	var ml MoveList
	if pos.InCheck() {
		GenerateCheckEvasions(pos, &ml)
		return ml
	}
	GenerateCaptures(pos, &ml)
	GenerateNonCaptures(pos, &ml)
	return ml
}

// ValidateMove returns true iff m would be emitted by the generator
// appropriate to inCheck. It generates that generator's full move list
// and searches it for m; there is no single-move check. Used to validate
// a move arriving from an external source (hash-table suggestion, user
// input).
func ValidateMove(pos *Position, m Move, inCheck bool) bool {
	var ml MoveList
	if inCheck {
		GenerateCheckEvasions(pos, &ml)
	} else {
		GenerateCaptures(pos, &ml)
		GenerateNonCaptures(pos, &ml)
	}
	return ml.Contains(m)
}

// Score returns value[captured] - value[moved] for move ordering (MVV-LVA),
// adding value[promotion] only when SEE on the destination after making the
// promotion would not be a net material loss for the promoting side.
func Score(pos *Position, m Move) int {
	s := PieceValue[m.CapturedPiece()] - PieceValue[m.PieceMoved()]
	if !m.IsPromotion() {
		return s
	}

	pos.Make(m)
	gain := -SEE(pos, pos.SideToMove, m.Destination())
	pos.Unmake(m)

	if gain >= 0 {
		s += PieceValue[m.PromotionPiece()]
	}
	return s
}
