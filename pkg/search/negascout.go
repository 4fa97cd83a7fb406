package search

import (
	"context"

	"github.com/ryoiwata/reversi/pkg/eval"
	"github.com/ryoiwata/reversi/pkg/reversi"
)

// NegaScout implements principal variation search: the first (best-ordered)
// child of a node is searched with a full window, every later sibling is
// first probed with a null window and only re-searched with a full window
// if the probe falls inside it. Grounded on the donor's pkg/search/pvs.go
// control flow and on the authoritative NegaScout strategy's move ordering
// (single best-by-static-score move first, the rest unsorted).
type NegaScout struct{}

// DepthForMobility returns the search depth to use given the number of
// legal moves available to the side to move: the fewer the options, the
// deeper the engine can afford to look in the same time budget. Grounded
// directly on the authoritative NegaScout strategy's schedule.
func DepthForMobility(numMoves int) int {
	switch {
	case numMoves < 4:
		return 8
	case numMoves < 8:
		return 6
	default:
		return 4
	}
}

func (NegaScout) Search(ctx context.Context, sctx *Context, b reversi.Board, side reversi.Side, depth int) (uint64, eval.Score, []reversi.Square, error) {
	run := &runNegaScout{sctx: sctx}

	score, moves := run.search(ctx, b, side, depth, eval.MinScore, eval.MaxScore)
	if contextIsDone(ctx) {
		return run.nodes, 0, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runNegaScout struct {
	sctx  *Context
	nodes uint64
}

// leaf evaluates b from side's perspective, perturbed by the configured
// noise generator so equally-scored moves aren't always broken the same
// way. Grounded on the donor engine's own leaf-evaluation noise, adapted
// from millipawns to the Reversi evaluator's score unit.
func (r *runNegaScout) leaf(b reversi.Board, side reversi.Side) eval.Score {
	return eval.Evaluate(b, side) + r.sctx.Noise.Noise()
}

func (r *runNegaScout) search(ctx context.Context, b reversi.Board, side reversi.Side, depth int, alpha, beta eval.Score) (eval.Score, []reversi.Square) {
	r.nodes++
	r.sctx.countNode()

	if contextIsDone(ctx) {
		return r.leaf(b, side), nil
	}

	moves := b.Moves(side)
	if len(moves) == 0 {
		if !b.HasLegalMove(side.Opponent()) {
			return terminalScore(b, side), nil
		}
		if depth == 0 {
			return r.leaf(b, side), nil
		}
		// Forfeited turn: side passes, same board, opponent to move.
		score, line := r.search(ctx, b, side.Opponent(), depth-1, -beta, -alpha)
		return -score, line
	}
	if depth == 0 {
		return r.leaf(b, side), nil
	}

	key := Key{Board: b, Side: side}
	if r.sctx.TT != nil {
		if bound, d, score, move, ok := r.sctx.TT.Read(key); ok && d >= depth && bound == ExactBound {
			return score, []reversi.Square{move}
		}
	}

	ordered := orderMoves(b, side, moves)
	opp := side.Opponent()

	best := ordered[0]
	bestScore, rest := r.search(ctx, b.ApplyMove(side, best), opp, depth-1, -beta, -alpha)
	bestScore = -bestScore
	bestLine := append([]reversi.Square{best}, rest...)
	if alpha < bestScore {
		alpha = bestScore
	}

	for _, m := range ordered[1:] {
		if contextIsDone(ctx) || alpha >= beta {
			break
		}
		next := b.ApplyMove(side, m)

		score, _ := r.search(ctx, next, opp, depth-1, -alpha-1, -alpha)
		score = -score

		var line []reversi.Square
		if alpha < score && score < beta {
			score, line = r.search(ctx, next, opp, depth-1, -beta, -score)
			score = -score
		}

		if score > bestScore {
			bestScore = score
			bestLine = append([]reversi.Square{m}, line...)
			best = m
		}
		if alpha < bestScore {
			alpha = bestScore
		}
	}

	if r.sctx.TT != nil {
		bound := ExactBound
		if bestScore >= beta {
			bound = LowerBound
		}
		r.sctx.TT.Write(key, bound, depth, bestScore, best)
	}

	return bestScore, bestLine
}

// orderMoves puts the single move with the best immediate static score
// first and leaves the rest in generation order, mirroring the
// authoritative strategy's own move ordering exactly.
func orderMoves(b reversi.Board, side reversi.Side, moves []reversi.Square) []reversi.Square {
	if len(moves) <= 1 {
		return moves
	}

	bestIdx := 0
	bestScore := eval.Evaluate(b.ApplyMove(side, moves[0]), side)
	for i := 1; i < len(moves); i++ {
		s := eval.Evaluate(b.ApplyMove(side, moves[i]), side)
		if s > bestScore {
			bestScore = s
			bestIdx = i
		}
	}

	ordered := make([]reversi.Square, 0, len(moves))
	ordered = append(ordered, moves[bestIdx])
	for i, m := range moves {
		if i != bestIdx {
			ordered = append(ordered, m)
		}
	}
	return ordered
}

// terminalScore returns the decided-game outcome score for side once
// neither side has a legal move.
func terminalScore(b reversi.Board, side reversi.Side) eval.Score {
	w, ok := b.Winner()
	if !ok {
		return 0
	}
	if w == side {
		return eval.TerminalWin
	}
	return -eval.TerminalWin
}
