// Package search implements the mid-game NegaScout search and the exact
// end-game solver. Context.TT is a generic plumbing point for either one,
// but the engine only ever hands a populated table to the exact solver --
// its memo is exact-solver only, since NegaScout's heuristic scores and the
// solver's proven disc margins are different, non-comparable domains.
package search

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/seekerror/stdlib/pkg/util/contextx"

	"github.com/ryoiwata/reversi/pkg/eval"
	"github.com/ryoiwata/reversi/pkg/reversi"
)

// ErrHalted indicates the search was halted before completing its depth.
var ErrHalted = errors.New("search halted")

// Context carries per-search, cross-call state: the shared transposition
// table and a live node counter. One is created per Engine.Analyze call and threaded
// through the whole recursive search. Generalizes the donor ruleset's
// literal recursive time-budget splitting (each recursive call computes its
// own remaining duration share to pass to its children) into a single
// shared context.Context deadline, checked cheaply via contextIsDone at
// each recursive step -- the idiomatic Go replacement for hand-splitting a
// shrinking duration down the call stack.
type Context struct {
	TT    TranspositionTable
	Noise eval.Random // added to leaf evaluations; zero value adds nothing
	Nodes uint64      // atomically incremented
}

func (c *Context) countNode() {
	atomic.AddUint64(&c.Nodes, 1)
}

// contextIsDone is a cheap non-blocking cancellation check, matching the
// donor's own polled (not preemptive) cancellation idiom in
// pkg/search/alphabeta.go/quiescence.go.
func contextIsDone(ctx context.Context) bool {
	return contextx.IsCancelled(ctx)
}

// Search is implemented by both the mid-game NegaScout search and the
// exact end-game solver, so the engine can launch either behind one
// interface.
type Search interface {
	// Search returns the node count, score and principal variation (the
	// first move is the chosen move) for b from side's perspective, up to
	// the given ply depth. NegaScout at depth 0 only evaluates b statically
	// and returns no move; the exact solver ignores depth and always
	// searches to game end.
	Search(ctx context.Context, sctx *Context, b reversi.Board, side reversi.Side, depth int) (uint64, eval.Score, []reversi.Square, error)
}
