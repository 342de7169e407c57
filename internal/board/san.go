package board

import "strings"

// ToSAN converts m, played in pos, to Standard Algebraic Notation.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	from, to := m.Origin(), m.Destination()
	pt := m.PieceMoved()

	if m.IsCastling() {
		san := "O-O-O"
		if to.File() < from.File() {
			san = "O-O"
		}
		return san + checkSuffix(pos, m)
	}

	var sb strings.Builder

	if pt != Pawn {
		sb.WriteByte("PNBRQK"[pt])
		sb.WriteString(disambiguation(pos, m, pt))
	}

	if m.IsCapture() {
		if pt == Pawn {
			sb.WriteByte(fileLetter(from.File()))
		}
		sb.WriteByte('x')
	}

	sb.WriteString(to.String())

	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte("PNBRQK"[m.PromotionPiece()])
	}

	sb.WriteString(checkSuffix(pos, m))
	return sb.String()
}

// checkSuffix makes m on a scratch copy of pos and reports '#' or '+' as
// appropriate.
func checkSuffix(pos *Position, m Move) string {
	after := pos.Copy()
	after.Make(m)
	switch {
	case after.IsCheckmate():
		return "#"
	case after.InCheck():
		return "+"
	default:
		return ""
	}
}

// disambiguation returns the minimal file/rank/square prefix needed to
// distinguish m from other legal moves of the same piece type to the same
// destination.
func disambiguation(pos *Position, m Move, pt PieceType) string {
	from, to := m.Origin(), m.Destination()
	us := pos.SideToMove
	pieces := pos.Pieces[us][pt]

	var candidates []Square
	moves := GenerateLegalMoves(pos)
	for i := 0; i < moves.Len(); i++ {
		other := moves.Get(i)
		if other.Destination() != to || other.Origin() == from {
			continue
		}
		if pieces.IsSet(other.Origin()) {
			candidates = append(candidates, other.Origin())
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}

	switch {
	case !sameFile:
		return string(fileLetter(from.File()))
	case !sameRank:
		return string(rune('1' + from.Rank()))
	default:
		return from.String()
	}
}

// MovesToSAN converts a sequence of moves, played in order from pos, to
// SAN notation.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Copy()
	for i, m := range moves {
		result[i] = m.ToSAN(p)
		p.Make(m)
	}
	return result
}
