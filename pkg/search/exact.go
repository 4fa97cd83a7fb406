package search

import (
	"context"

	"github.com/ryoiwata/reversi/pkg/eval"
	"github.com/ryoiwata/reversi/pkg/reversi"
)

// Exact implements the exhaustive end-game solver: once few enough squares
// remain empty, it searches to the end of the game and returns the move
// that maximizes the final disc-count margin under optimal play, rather
// than a heuristic estimate. Grounded on the authoritative
// winnable_color/winnable_color_last recursion -- pass/pass decides the
// winner by disc count, and the last empty square is evaluated directly --
// generalized from that recursion's win/lose/draw-only outcome into a
// disc-margin negamax, so the chosen move is the provably best one rather
// than merely a winning one when several exist (see design notes).
type Exact struct{}

func (Exact) Search(ctx context.Context, sctx *Context, b reversi.Board, side reversi.Side, depth int) (uint64, eval.Score, []reversi.Square, error) {
	run := &runExact{sctx: sctx}

	moves := b.Moves(side)
	if len(moves) == 0 {
		return run.nodes, 0, nil, nil
	}
	ordered := orderMoves(b, side, moves)

	best := ordered[0]
	bestMargin := -run.winnable(ctx, b.ApplyMove(side, best), side.Opponent(), false)
	for _, m := range ordered[1:] {
		if contextIsDone(ctx) {
			break
		}
		margin := -run.winnable(ctx, b.ApplyMove(side, m), side.Opponent(), false)
		if margin > bestMargin {
			bestMargin = margin
			best = m
		}
	}

	if contextIsDone(ctx) {
		return run.nodes, 0, nil, ErrHalted
	}
	return run.nodes, marginToScore(bestMargin), []reversi.Square{best}, nil
}

type runExact struct {
	sctx  *Context
	nodes uint64
}

// winnable returns the final disc-count margin -- side's discs minus the
// opponent's once the game has ended, under optimal play by both -- for
// the position b with side to move. passed records whether the ply
// immediately before this one was a forced pass, so two consecutive passes
// terminate the game.
func (r *runExact) winnable(ctx context.Context, b reversi.Board, side reversi.Side, passed bool) int {
	r.nodes++
	r.sctx.countNode()

	if b.EmptyCount() == 1 {
		return r.winnableLast(b, side)
	}

	moves := b.Moves(side)
	if len(moves) == 0 {
		if passed {
			return margin(b, side)
		}
		return -r.winnable(ctx, b, side.Opponent(), true)
	}

	key := Key{Board: b, Side: side}
	if r.sctx.TT != nil {
		if _, _, score, _, ok := r.sctx.TT.Read(key); ok {
			return int(score)
		}
	}

	best := -65 // worse than any reachable margin
	for _, m := range moves {
		if contextIsDone(ctx) {
			break
		}
		v := -r.winnable(ctx, b.ApplyMove(side, m), side.Opponent(), false)
		if v > best {
			best = v
		}
	}

	// Only a fully explored subtree is a proven verdict. A break above
	// means the loop was cut short by contextIsDone, so best reflects an
	// incomplete search and must not be memoized as exact.
	if r.sctx.TT != nil && !contextIsDone(ctx) {
		r.sctx.TT.Write(key, ExactBound, 0, eval.Score(best), reversi.Pass)
	}
	return best
}

// winnableLast evaluates the single remaining empty square directly,
// without a further recursive call: side plays it if legal, otherwise
// passes and the opponent does.
func (r *runExact) winnableLast(b reversi.Board, side reversi.Side) int {
	moves := b.Moves(side)
	if len(moves) == 1 {
		return margin(b.ApplyMove(side, moves[0]), side)
	}

	opp := side.Opponent()
	oppMoves := b.Moves(opp)
	if len(oppMoves) == 0 {
		return margin(b, side)
	}
	return -margin(b.ApplyMove(opp, oppMoves[0]), opp)
}

func margin(b reversi.Board, side reversi.Side) int {
	return b.Count(side) - b.Count(side.Opponent())
}

func marginToScore(m int) eval.Score {
	switch {
	case m > 0:
		return eval.TerminalWin
	case m < 0:
		return -eval.TerminalWin
	default:
		return 0
	}
}
