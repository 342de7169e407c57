// Package search implements iterative-deepening alpha-beta search with
// quiescence, per spec §4.6. Single-threaded and cooperative: no operation
// suspends, and the only concurrent interaction is a periodic, non-blocking
// read of an external stop signal plus a monotonic wall-clock sample.
package search

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/halcyonchess/core/internal/board"
	"github.com/halcyonchess/core/internal/eval"
	"github.com/seekerror/logw"
)

// MaxPly bounds both the triangular PV table and quiescence recursion.
const MaxPly = 128

// KingValue anchors the mate-score scale: a mate at ply p scores
// p - KingValue (before negamax negation), so shallower mates — smaller p —
// are preferred.
var KingValue = board.PieceValue[board.King]

// pvTable is a triangular table of packed moves, one row per ply; row i
// holds the principal line from ply i to the end of search, terminated by
// board.NoMove (or by length[i]).
type pvTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

func (t *pvTable) line(ply int) []board.Move {
	return t.moves[ply][ply:t.length[ply]]
}

// copyUp writes move into pv[ply][ply] and appends the child line
// pv[ply+1][ply+1:] after it, per spec §4.6.5.
func (t *pvTable) copyUp(ply int, move board.Move) {
	t.moves[ply][ply] = move
	for j := ply + 1; j < t.length[ply+1]; j++ {
		t.moves[ply][j] = t.moves[ply+1][j]
	}
	t.length[ply] = t.length[ply+1]
}

// Result is what Run reports for one completed (or aborted) iteration.
type Result struct {
	Score    int
	BestMove board.Move
	PV       []board.Move
	Depth    int
	Nodes    uint64
	Aborted  bool
	Elapsed  time.Duration
}

// searcher carries all per-run mutable state; a fresh one backs each Run
// call, so nothing survives between searches except what the caller keeps
// in Result.
type searcher struct {
	pos      *board.Position
	stop     *atomic.Bool
	clock    *clock
	nodes    uint64
	maxDepth int
	pv       pvTable
	aborted  bool
}

// Run performs iterative deepening over depth = 1..limits.MaxDepth,
// returning the last fully completed iteration's score, best move, and PV.
// stop may be nil; if non-nil, a true value aborts the search exactly like a
// time_budget expiry — the "exiting" state of the external caller's state
// machine is handled the same way. Run resets pos.Ply to zero before
// searching, so moves made on pos before the call cannot be unmade after it.
func Run(ctx context.Context, pos *board.Position, limits Limits, stop *atomic.Bool) Result {
	logw.Infof(ctx, "search: starting, maxDepth=%d budget=%s", limits.MaxDepth, limits.TimeBudget)
	pos.Ply = 0

	s := &searcher{
		pos:   pos,
		stop:  stop,
		clock: newClock(limits.TimeBudget),
	}

	var last Result
	for depth := 1; depth <= limits.MaxDepth; depth++ {
		s.maxDepth = depth
		s.aborted = false

		score, move := s.searchRoot(depth)
		if s.aborted && depth > 1 {
			// Keep the previous iteration's result; this one is incomplete.
			break
		}

		last = Result{
			Score:    score,
			BestMove: move,
			PV:       append([]board.Move(nil), s.pv.line(0)...),
			Depth:    depth,
			Nodes:    s.nodes,
			Aborted:  s.aborted,
			Elapsed:  s.clock.elapsed(),
		}

		if s.aborted {
			break
		}
	}

	logw.Infof(ctx, "search: done, depth=%d score=%d move=%s nodes=%d", last.Depth, last.Score, last.BestMove, last.Nodes)
	return last
}

// searchRoot generates the root move list (evasions if in check, else
// captures followed by non-captures) and searches each move with a full
// window, per spec §4.6.2.
func (s *searcher) searchRoot(depth int) (int, board.Move) {
	s.pv.length[0] = 0

	moves := board.GenerateLegalMoves(s.pos)
	if moves.Len() == 0 {
		if s.pos.InCheck() {
			return -KingValue, board.NoMove
		}
		return 0, board.NoMove
	}

	scores := orderMoves(s.pos, &moves, board.NoMove)

	bestScore := -KingValue - 1
	bestMove := board.NoMove
	alpha := -KingValue

	for i := 0; i < moves.Len(); i++ {
		pickMove(&moves, scores, i)
		m := moves.Get(i)

		s.pos.Make(m)
		score := -s.search(1, -KingValue, KingValue)
		s.pos.Unmake(m)

		if s.checkStop() {
			s.aborted = true
			if bestMove == board.NoMove {
				bestMove = m
			}
			break
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				s.pv.copyUp(0, m)
			}
		}
	}

	return bestScore, bestMove
}

// search implements negamax with alpha-beta pruning. depth here is the ply
// count from the root (spec §4.6.3 names it "depth"); it is compared against
// s.maxDepth, the current iteration's target, to decide when to drop into
// quiescence.
func (s *searcher) search(depth, alpha, beta int) int {
	s.pv.length[depth] = depth

	if s.aborted {
		return beta
	}
	s.nodes++
	if s.checkStop() {
		s.aborted = true
		return beta
	}

	inCheck := s.pos.InCheck()
	if depth >= s.maxDepth && !inCheck {
		return s.quiesce(depth, alpha, beta)
	}

	var moves board.MoveList
	if inCheck {
		board.GenerateCheckEvasions(s.pos, &moves)
	} else {
		board.GenerateCaptures(s.pos, &moves)
		board.GenerateNonCaptures(s.pos, &moves)
	}

	if moves.Len() == 0 {
		if inCheck {
			return depth - KingValue
		}
		return 0
	}

	scores := orderMoves(s.pos, &moves, board.NoMove)

	for i := 0; i < moves.Len(); i++ {
		pickMove(&moves, scores, i)
		m := moves.Get(i)

		s.pos.Make(m)
		score := -s.search(depth+1, -beta, -alpha)
		s.pos.Unmake(m)

		if s.aborted {
			return beta
		}

		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
			s.pv.copyUp(depth, m)
		}
	}

	return alpha
}

// quiesce searches forcing moves past the horizon, per spec §4.6.4.
func (s *searcher) quiesce(depth, alpha, beta int) int {
	s.nodes++
	if s.checkStop() {
		s.aborted = true
		return beta
	}

	if s.pos.InCheck() {
		var evasions board.MoveList
		board.GenerateCheckEvasions(s.pos, &evasions)
		if evasions.Len() == 0 {
			return depth - KingValue
		}
		scores := orderMoves(s.pos, &evasions, board.NoMove)
		for i := 0; i < evasions.Len(); i++ {
			pickMove(&evasions, scores, i)
			m := evasions.Get(i)
			s.pos.Make(m)
			score := -s.quiesce(depth+1, -beta, -alpha)
			s.pos.Unmake(m)
			if s.aborted {
				return beta
			}
			if score >= beta {
				return score
			}
			if score > alpha {
				alpha = score
			}
		}
		return alpha
	}

	standPat := eval.Evaluate(s.pos)
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	if depth >= MaxPly {
		return alpha
	}

	var captures board.MoveList
	board.GenerateCaptures(s.pos, &captures)
	scores := orderMoves(s.pos, &captures, board.NoMove)

	for i := 0; i < captures.Len(); i++ {
		pickMove(&captures, scores, i)
		m := captures.Get(i)

		if prunable(s.pos, m) {
			continue
		}

		s.pos.Make(m)
		score := -s.quiesce(depth+1, -beta, -alpha)
		s.pos.Unmake(m)

		if s.aborted {
			return beta
		}
		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// prunable reports whether a capture/promotion may be skipped in
// quiescence: a quiet promotion whose post-promotion SEE is negative, or a
// capture of a less valuable piece whose SEE is negative, per spec §4.6.4.
func prunable(pos *board.Position, m board.Move) bool {
	if m.IsPromotion() {
		return board.Score(pos, m)-board.PieceValue[m.PromotionPiece()] < 0 && seeAfter(pos, m) < 0
	}
	if board.PieceValue[m.CapturedPiece()] < board.PieceValue[m.PieceMoved()] {
		return seeAfter(pos, m) < 0
	}
	return false
}

func seeAfter(pos *board.Position, m board.Move) int {
	pos.Make(m)
	gain := -board.SEE(pos, pos.SideToMove, m.Destination())
	pos.Unmake(m)
	return gain
}

// checkStop polls the external stop flag and the wall clock, both
// non-blocking and idempotent per spec §5's concurrency model.
func (s *searcher) checkStop() bool {
	if s.stop != nil && s.stop.Load() {
		return true
	}
	return s.clock.expired(s.nodes)
}
