package search

import "github.com/halcyonchess/core/internal/board"

const (
	ttMoveScore    = 1 << 30
	pvMoveScore    = 1<<30 - 1
	goodCaptureBase = 1 << 20
)

// orderMoves scores every move in ml for search ordering: the transposition-
// free PV move first, then MVV-LVA-plus-SEE-gated-promotion captures (via
// board.Score), quiet moves unordered. Sorting is lazy selection (pickMove)
// rather than a full sort, since alpha-beta usually cuts off long before the
// tail of the list is ever examined.
func orderMoves(pos *board.Position, ml *board.MoveList, pvMove board.Move) []int {
	scores := make([]int, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		switch {
		case m == pvMove:
			scores[i] = pvMoveScore
		case m.IsCapture() || m.IsPromotion():
			scores[i] = goodCaptureBase + board.Score(pos, m)
		default:
			scores[i] = 0
		}
	}
	return scores
}

// pickMove moves the highest-scoring move at or after index to index,
// swapping both the move list and its parallel score slice.
func pickMove(ml *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < ml.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		ml.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}
