package search

import (
	"fmt"
	"sync"

	"github.com/ryoiwata/reversi/pkg/eval"
	"github.com/ryoiwata/reversi/pkg/reversi"
)

// Bound represents the bound of a -- possibly inexact -- memoized score.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
)

func (b Bound) String() string {
	if b == ExactBound {
		return "Exact"
	}
	return "Lower"
}

// Key identifies a memoized position: the board plus the side to move.
// Board is a plain two-uint64 value, so Key is directly usable as a map
// key with no separate hashing step -- unlike the donor's chess engine,
// which needs a Zobrist hash because its Position carries far more state
// per square (piece kind, castling rights, en passant) than two bitboards.
type Key struct {
	Board reversi.Board
	Side  reversi.Side
}

type entry struct {
	bound Bound
	depth int
	score eval.Score
	move  reversi.Square
}

// TranspositionTable memoizes search results across positions reached by
// transposition. Must be thread-safe.
type TranspositionTable interface {
	Read(key Key) (Bound, int, eval.Score, reversi.Square, bool)
	Write(key Key, bound Bound, depth int, score eval.Score, move reversi.Square)

	// Size returns the number of memoized entries.
	Size() int
	// Clear empties the table. Called periodically between games, since a
	// position's best move and score depend only on the rules, not on
	// which game reached it.
	Clear()
}

// Table is a sync.RWMutex-guarded map-based TranspositionTable. Simpler
// than the donor's lock-free atomic-pointer slot table, since the engine
// only needs many-reader/single-writer correctness and clears wholesale
// between games rather than replacing entries under memory pressure --
// the same plain map-backed idiom the donor itself already uses for its
// position-keyed opening book.
type Table struct {
	mu sync.RWMutex
	m  map[Key]entry
}

func NewTable() *Table {
	return &Table{m: map[Key]entry{}}
}

func (t *Table) Read(key Key) (Bound, int, eval.Score, reversi.Square, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.m[key]
	if !ok {
		return 0, 0, 0, reversi.Pass, false
	}
	return e.bound, e.depth, e.score, e.move, true
}

func (t *Table) Write(key Key, bound Bound, depth int, score eval.Score, move reversi.Square) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.m[key]; ok && existing.depth > depth {
		return // keep the deeper, more valuable result
	}
	t.m[key] = entry{bound: bound, depth: depth, score: score, move: move}
}

func (t *Table) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.m)
}

func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.m = map[Key]entry{}
}

func (t *Table) String() string {
	return fmt.Sprintf("TT[%v entries]", t.Size())
}

// NoTranspositionTable is a no-op implementation.
type NoTranspositionTable struct{}

func (NoTranspositionTable) Read(Key) (Bound, int, eval.Score, reversi.Square, bool) {
	return 0, 0, 0, reversi.Pass, false
}
func (NoTranspositionTable) Write(Key, Bound, int, eval.Score, reversi.Square) {}
func (NoTranspositionTable) Size() int                                        { return 0 }
func (NoTranspositionTable) Clear()                                           {}
