package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FENRule identifies which ordered validation rule a FENError violates.
type FENRule int

const (
	RuleRankCount FENRule = iota
	RuleInvalidCharacter
	RuleSquareCount
	RuleMoveCounters
	RuleEnPassantSquare
	RuleCastlingRights
	RuleSideToMove
	RulePawnsOnBackRank
	RuleKingCount
	RuleOppositeCheck
	RuleCastlingHomeSquare
	RuleEnPassantPawn
	RuleTooManyPawns
	RuleTooManyPieces
)

var fenRuleNames = map[FENRule]string{
	RuleRankCount:          "wrong number of ranks",
	RuleInvalidCharacter:   "invalid character in piece placement",
	RuleSquareCount:        "wrong square count in rank",
	RuleMoveCounters:       "malformed move counter",
	RuleEnPassantSquare:    "malformed en passant square",
	RuleCastlingRights:     "malformed castling rights",
	RuleSideToMove:         "missing or invalid side to move",
	RulePawnsOnBackRank:    "pawn on rank 1 or 8",
	RuleKingCount:          "wrong number of kings",
	RuleOppositeCheck:      "side not to move is in check",
	RuleCastlingHomeSquare: "castling right asserted without king/rook on home square",
	RuleEnPassantPawn:      "en passant square without a corresponding pawn",
	RuleTooManyPawns:       "more than 8 pawns for one side",
	RuleTooManyPieces:      "more than 10 of one piece type for one side",
}

// FENError reports the first rule a FEN string violates, in the fixed
// validation order the parser applies.
type FENError struct {
	Rule   FENRule
	Detail string
}

func (e *FENError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("invalid FEN: %s", fenRuleNames[e.Rule])
	}
	return fmt.Sprintf("invalid FEN: %s: %s", fenRuleNames[e.Rule], e.Detail)
}

func fenErr(rule FENRule, format string, args ...interface{}) error {
	return &FENError{Rule: rule, Detail: fmt.Sprintf(format, args...)}
}

// ParseFEN parses and validates a FEN string, rejecting on the first rule
// violated in the order: rank count, invalid characters, square count per
// rank, malformed move counters, malformed en passant square, malformed
// castling rights, missing/invalid side to move, pawns on back ranks, king
// count, side-not-to-move in check, castling rights without a home
// king/rook, en passant square without a supporting pawn, too many pawns,
// too many of any other piece. On success the position's hash, material
// tallies, occupancy and king squares are computed from scratch.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fenErr(RuleRankCount, "need at least piece placement, side to move, castling and en passant fields")
	}
	placement, sideField, castlingField, epField := parts[0], parts[1], parts[2], parts[3]

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return nil, fenErr(RuleRankCount, "got %d rank fields", len(ranks))
	}

	type placed struct {
		piece Piece
		sq    Square
	}
	var placements []placed

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range rankStr {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return nil, fenErr(RuleInvalidCharacter, "%q in rank %d", c, rank+1)
			}
			if file > 7 {
				return nil, fenErr(RuleSquareCount, "too many squares in rank %d", rank+1)
			}
			placements = append(placements, placed{piece, NewSquare(7-file, rank)})
			file++
		}
		if file != 8 {
			return nil, fenErr(RuleSquareCount, "rank %d has %d squares", rank+1, file)
		}
	}

	halfMoveClock := 0
	fullMoveNumber := 1
	if len(parts) > 4 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return nil, fenErr(RuleMoveCounters, "half-move clock %q", parts[4])
		}
		halfMoveClock = n
	}
	if len(parts) > 5 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return nil, fenErr(RuleMoveCounters, "full-move number %q", parts[5])
		}
		fullMoveNumber = n
	}

	enPassant := NoSquare
	if epField != "-" {
		sq, err := ParseSquare(epField)
		if err != nil || (sq.Rank() != 2 && sq.Rank() != 5) {
			return nil, fenErr(RuleEnPassantSquare, "%q", epField)
		}
		enPassant = sq
	}

	castlingRights := NoCastling
	if castlingField != "-" {
		for _, c := range castlingField {
			switch c {
			case 'K':
				castlingRights |= WhiteKingSideCastle
			case 'Q':
				castlingRights |= WhiteQueenSideCastle
			case 'k':
				castlingRights |= BlackKingSideCastle
			case 'q':
				castlingRights |= BlackQueenSideCastle
			default:
				return nil, fenErr(RuleCastlingRights, "%q", castlingField)
			}
		}
	}

	var sideToMove Color
	switch sideField {
	case "w":
		sideToMove = White
	case "b":
		sideToMove = Black
	default:
		return nil, fenErr(RuleSideToMove, "%q", sideField)
	}

	pos := &Position{
		SideToMove:     sideToMove,
		CastlingRights: castlingRights,
		EnPassant:      enPassant,
		HalfMoveClock:  halfMoveClock,
		FullMoveNumber: fullMoveNumber,
	}
	pos.KingSquare[White] = NoSquare
	pos.KingSquare[Black] = NoSquare
	for _, pl := range placements {
		pos.setPiece(pl.piece, pl.sq)
	}
	pos.updateOccupied()
	pos.rebuildBoard()

	for sq := 0; sq < 8; sq++ {
		if pos.board[sq] != NoPiece && pos.board[sq].Type() == Pawn {
			return nil, fenErr(RulePawnsOnBackRank, "rank 1")
		}
	}
	for sq := 56; sq < 64; sq++ {
		if pos.board[sq] != NoPiece && pos.board[sq].Type() == Pawn {
			return nil, fenErr(RulePawnsOnBackRank, "rank 8")
		}
	}

	if pos.Pieces[White][King].PopCount() != 1 {
		return nil, fenErr(RuleKingCount, "White has %d kings", pos.Pieces[White][King].PopCount())
	}
	if pos.Pieces[Black][King].PopCount() != 1 {
		return nil, fenErr(RuleKingCount, "Black has %d kings", pos.Pieces[Black][King].PopCount())
	}
	pos.findKings()

	notToMove := sideToMove.Other()
	if pos.IsSquareAttacked(pos.KingSquare[notToMove], sideToMove) {
		return nil, fenErr(RuleOppositeCheck, "%s", notToMove)
	}

	if castlingRights&WhiteKingSideCastle != 0 &&
		!(pos.board[homeKingSquare(White)] == WhiteKing && pos.board[homeRookSquare(White, true)] == WhiteRook) {
		return nil, fenErr(RuleCastlingHomeSquare, "White kingside")
	}
	if castlingRights&WhiteQueenSideCastle != 0 &&
		!(pos.board[homeKingSquare(White)] == WhiteKing && pos.board[homeRookSquare(White, false)] == WhiteRook) {
		return nil, fenErr(RuleCastlingHomeSquare, "White queenside")
	}
	if castlingRights&BlackKingSideCastle != 0 &&
		!(pos.board[homeKingSquare(Black)] == BlackKing && pos.board[homeRookSquare(Black, true)] == BlackRook) {
		return nil, fenErr(RuleCastlingHomeSquare, "Black kingside")
	}
	if castlingRights&BlackQueenSideCastle != 0 &&
		!(pos.board[homeKingSquare(Black)] == BlackKing && pos.board[homeRookSquare(Black, false)] == BlackRook) {
		return nil, fenErr(RuleCastlingHomeSquare, "Black queenside")
	}

	if enPassant != NoSquare {
		pusher := sideToMove.Other()
		pushSq := Square(int(enPassant) + 8)
		if pusher == Black {
			pushSq = Square(int(enPassant) - 8)
		}
		if pos.board[pushSq] != NewPiece(Pawn, pusher) {
			return nil, fenErr(RuleEnPassantPawn, "%s", enPassant)
		}
	}

	if pos.Pieces[White][Pawn].PopCount() > 8 {
		return nil, fenErr(RuleTooManyPawns, "White")
	}
	if pos.Pieces[Black][Pawn].PopCount() > 8 {
		return nil, fenErr(RuleTooManyPawns, "Black")
	}
	for _, c := range [2]Color{White, Black} {
		for _, pt := range [4]PieceType{Knight, Bishop, Rook, Queen} {
			if pos.Pieces[c][pt].PopCount() > 10 {
				return nil, fenErr(RuleTooManyPieces, "%s %s", c, pt)
			}
		}
	}

	pos.computeMaterial()
	pos.Hash = pos.ComputeHash()
	pos.UpdateCheckers()

	return pos, nil
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(7-file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights.String())

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	return sb.String()
}

// ComputeHash computes the Zobrist hash for the position from scratch.
func (p *Position) ComputeHash() uint64 {
	var hash uint64

	for c := Black; c <= White; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				hash ^= zobristPiece[c][pt][sq]
			}
		}
	}

	if p.SideToMove == Black {
		hash ^= zobristSideToMove
	}

	hash ^= zobristCastlingKey(p.CastlingRights)

	if p.EnPassant != NoSquare {
		hash ^= zobristEnPassant[p.EnPassant.File()]
	}

	return hash
}
