// Package engine orchestrates book lookup, search strategy selection and
// game state for one side of a Reversi match.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"

	"github.com/ryoiwata/reversi/pkg/book"
	"github.com/ryoiwata/reversi/pkg/eval"
	"github.com/ryoiwata/reversi/pkg/reversi"
	"github.com/ryoiwata/reversi/pkg/search"
)

var version = build.NewVersion(0, 1, 0)

// EndgameBorder is the empty-square count below which the engine switches
// from depth-limited NegaScout to the exhaustive end-game solver. Grounded
// on original_source/src/game/base.rs's Game::ENDGAME_BORDER.
const EndgameBorder = 24

// clearTableEvery mirrors base.rs's Game::reset, which clears the shared
// memoization table every 5 games to bound its memory growth.
const clearTableEvery = 5

// Options are engine creation/runtime options.
type Options struct {
	// Depth overrides the mobility-derived NegaScout depth, if nonzero.
	Depth uint
	// Hash enables the exact solver's transposition table when nonzero; the
	// table is an unbounded map whose size does not depend on this value.
	// If zero, the solver does not memoize at all. NegaScout never consults
	// this table; the memo is exact-solver only.
	Hash uint
	// Noise adds evaluation randomness, in centi-discs, to leaf scores.
	Noise uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v, noise=%v}", o.Depth, o.Hash, o.Noise)
}

// PV is a completed or halted search result.
type PV struct {
	Depth int
	Nodes uint64
	Score eval.Score
	Moves []reversi.Square
}

func (pv PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v pv=%v", pv.Depth, pv.Score, pv.Nodes, pv.Moves)
}

// Engine encapsulates opening-book lookup, search strategy selection and
// mutable game state for one side of a match. Grounded on the donor's
// pkg/engine/engine.go shape (Options, New/Reset/Move/Analyze/Halt,
// sync.Mutex-guarded state, logw logging throughout); the strategy-switch
// and time-budgeting logic is its own, grounded on
// original_source/src/game/base.rs::set_strategy.
type Engine struct {
	name, author string

	book      book.Book
	negaScout search.Search
	exact     search.Search

	seed int64

	mu     sync.Mutex
	opts   Options
	b      reversi.Board
	side   reversi.Side // this engine's color
	toMove reversi.Side
	tt     search.TranspositionTable // exact solver's memo only, see Analyze
	noise  eval.Random
	games  int
	cancel context.CancelFunc
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithBook configures the opening book consulted before search.
func WithBook(b book.Book) Option {
	return func(e *Engine) { e.book = b }
}

// WithSeed configures the random seed used for evaluation noise, instead of
// the default seed of zero.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:      name,
		author:    author,
		book:      book.NoBook,
		negaScout: search.NegaScout{},
		exact:     search.Exact{},
	}
	for _, fn := range opts {
		fn(e)
	}

	e.tt = search.TranspositionTable(search.NoTranspositionTable{})
	if e.opts.Hash > 0 {
		e.tt = search.NewTable()
	}

	e.Reset(ctx, reversi.Dark)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Depth = depth
}

func (e *Engine) SetHash(size uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Hash = size
}

func (e *Engine) SetNoise(centiDiscs uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Noise = centiDiscs
}

// Board returns the current position.
func (e *Engine) Board() reversi.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.b
}

// ToMove returns the side to move.
func (e *Engine) ToMove() reversi.Side {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.toMove
}

// Reset starts a new game with this engine playing side.
func (e *Engine) Reset(ctx context.Context, side reversi.Side) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltLocked()

	e.b = reversi.Initial()
	e.side = side
	e.toMove = reversi.Dark
	e.games++
	if e.games%clearTableEvery == 0 {
		e.tt.Clear()
	}

	e.noise = eval.Random{}
	if e.opts.Noise > 0 {
		e.noise = eval.NewRandom(int(e.opts.Noise), e.seed)
	}

	logw.Infof(ctx, "Reset, side=%v, depth=%v, hash=%vMB, noise=%v", side, e.opts.Depth, e.opts.Hash, e.opts.Noise)
}

// Move applies a move for the side currently to move, usually an opponent
// move relayed from the server.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltLocked()

	sq, err := reversi.ParseSquare(move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}
	if e.b.LegalMoves(e.toMove)&sq.Mask() == 0 {
		return fmt.Errorf("illegal move: %v", sq)
	}

	e.b = e.b.ApplyMove(e.toMove, sq)
	e.toMove = e.toMove.Opponent()

	logw.Infof(ctx, "Move %v: %v", sq, e.b)
	return nil
}

// Pass forfeits the turn of the side currently to move. Reversi, unlike
// chess, has an explicit forced-pass rule when the side to move has no
// legal move; this has no chess analog in the donor engine.
func (e *Engine) Pass(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltLocked()

	if e.b.HasLegalMove(e.toMove) {
		return fmt.Errorf("cannot pass: %v has a legal move", e.toMove)
	}
	e.toMove = e.toMove.Opponent()

	logw.Infof(ctx, "Pass %v: %v", e.toMove.Opponent(), e.b)
	return nil
}

// Analyze launches a background search of the current position for the
// side to move and returns a channel that yields exactly one PV once the
// search completes, is halted, or times out -- the same async shape as the
// donor console driver's live-analysis stream, simplified from iterative
// deepening to the donor ruleset's own fixed-depth-per-move search.
func (e *Engine) Analyze(ctx context.Context, remaining time.Duration) (<-chan PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		return nil, fmt.Errorf("search already active")
	}

	b, side := e.b, e.toMove
	strat, depth, budget := e.strategy(b, side, remaining)
	if e.opts.Depth > 0 {
		depth = int(e.opts.Depth)
	}

	searchCtx, cancel := context.WithTimeout(ctx, budget)
	e.cancel = cancel

	// The transposition memo is exact-solver only: it maps (Board, side) to
	// a proven disc-margin verdict, a different domain and scale than
	// NegaScout's depth-bounded heuristic scores. Handing the same table to
	// both let a stale heuristic entry be misread as a proven exact verdict,
	// so only the exact solver ever sees e.tt.
	sctxTT := search.TranspositionTable(search.NoTranspositionTable{})
	if _, ok := strat.(search.Exact); ok {
		sctxTT = e.tt
	}

	sctx := &search.Context{TT: sctxTT, Noise: e.noise}
	out := make(chan PV, 1)
	go func() {
		defer close(out)
		defer cancel()

		nodes, score, moves, err := strat.Search(searchCtx, sctx, b, side, depth)
		if len(moves) == 0 {
			if em, ok := emergencyMove(b, side); ok {
				moves = []reversi.Square{em}
			}
		}
		if err != nil {
			logw.Errorf(ctx, "Search %v halted: %v", b, err)
		}

		logw.Infof(ctx, "Search %v: depth=%v score=%v nodes=%v pv=%v", b, depth, score, nodes, moves)
		out <- PV{Depth: depth, Nodes: nodes, Score: score, Moves: moves}
	}()

	return out, nil
}

// Halt cancels any active search.
func (e *Engine) Halt(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.haltLocked()
	logw.Infof(ctx, "Halt")
}

func (e *Engine) haltLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// strategy selects the search and its depth/time budget for b with side to
// move. Grounded directly on Game::set_strategy: below EndgameBorder empty
// squares, solve exactly with a third of the remaining time; otherwise run
// NegaScout with half the remaining time (after reserving 30s for the
// coming end game) at a depth chosen from side's mobility. An opening-book
// hit, when present, short-circuits both -- generalizing the donor
// ruleset's own Opening strategy (book lookup falling back to NegaScout),
// which that ruleset built but never actually wired into its own
// set_strategy dispatch.
func (e *Engine) strategy(b reversi.Board, side reversi.Side, remaining time.Duration) (search.Search, int, time.Duration) {
	if sq, ok := e.book.Find(b, side); ok {
		return bookSearch{move: sq}, 0, time.Second
	}

	if b.EmptyCount() < EndgameBorder {
		return e.exact, 0, nonNegative(remaining / 3)
	}

	budget := nonNegative((remaining - 30*time.Second) / 2)
	return e.negaScout, search.DepthForMobility(len(b.Moves(side))), budget
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// emergencyMove returns the lowest-indexed legal move for side, the same
// move the donor ruleset's Naive strategy always plays -- used as a
// fallback when a search is halted before it produces any move at all.
func emergencyMove(b reversi.Board, side reversi.Side) (reversi.Square, bool) {
	moves := b.Moves(side)
	if len(moves) == 0 {
		return 0, false
	}
	return moves[0], true
}

// bookSearch adapts a single book-learned move to the search.Search
// interface, so the engine's strategy switch can treat a book hit exactly
// like any other search strategy.
type bookSearch struct {
	move reversi.Square
}

func (b bookSearch) Search(ctx context.Context, sctx *search.Context, board reversi.Board, side reversi.Side, depth int) (uint64, eval.Score, []reversi.Square, error) {
	return 0, 0, []reversi.Square{b.move}, nil
}
