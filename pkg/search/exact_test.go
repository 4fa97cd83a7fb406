package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryoiwata/reversi/pkg/reversi"
)

// solidBoard builds a board that is entirely Dark except for the named
// overrides (set to Light) and the named empty squares, so endgame
// positions with a known, hand-checkable outcome can be built from square
// names instead of error-prone hand-derived bitmasks.
func solidBoard(t *testing.T, lightSquares []string, emptySquares []string) reversi.Board {
	t.Helper()

	var dark, light uint64
	for sq := reversi.ZeroSquare; sq < reversi.NumSquares; sq++ {
		dark |= sq.Mask()
	}
	for _, name := range lightSquares {
		sq, err := reversi.ParseSquare(name)
		require.NoError(t, err)
		dark &^= sq.Mask()
		light |= sq.Mask()
	}
	for _, name := range emptySquares {
		sq, err := reversi.ParseSquare(name)
		require.NoError(t, err)
		dark &^= sq.Mask()
		light &^= sq.Mask()
	}
	return reversi.Board{Dark: dark, Light: light}
}

func TestWinnableLastSingleLegalMove(t *testing.T) {
	// Every square is Dark except G8 (Light) and H8 (empty). Dark playing
	// H8 brackets and flips the lone Light disc at G8, taking the board.
	b := solidBoard(t, []string{"G8"}, []string{"H8"})

	run := &runExact{sctx: &Context{}}
	assert.Equal(t, 64, run.winnableLast(b, reversi.Dark))
}

func TestWinnableLastOpponentMoves(t *testing.T) {
	// Same position, but asked from Light's perspective: Light has no
	// legal move at H8 (G8 is Light's own disc, not an opponent run to
	// flip), so Dark plays instead and sweeps the board.
	b := solidBoard(t, []string{"G8"}, []string{"H8"})

	run := &runExact{sctx: &Context{}}
	assert.Equal(t, -64, run.winnableLast(b, reversi.Light))
}

func TestWinnableLastNeitherSideCanMove(t *testing.T) {
	// Every square is Dark except the empty corner A1; its only
	// neighbors are Dark, so neither side can bracket a flip there and
	// the position is already decided.
	b := solidBoard(t, nil, []string{"A1"})

	run := &runExact{sctx: &Context{}}
	assert.Equal(t, -63, run.winnableLast(b, reversi.Light))
	assert.Equal(t, 63, run.winnableLast(b, reversi.Dark))
}

func TestExactSearchTakesTheWinningMove(t *testing.T) {
	b := solidBoard(t, []string{"G8"}, []string{"H8"})

	sctx := &Context{TT: NewTable()}
	nodes, score, moves, err := Exact{}.Search(context.Background(), sctx, b, reversi.Dark, 0)
	require.NoError(t, err)
	assert.Greater(t, nodes, uint64(0))
	require.Len(t, moves, 1)

	h8, _ := reversi.ParseSquare("H8")
	assert.Equal(t, h8, moves[0])
	assert.Positive(t, score)
}

func TestMargin(t *testing.T) {
	b := reversi.Initial()
	assert.Equal(t, 0, margin(b, reversi.Dark))
	assert.Equal(t, 0, margin(b, reversi.Light))
}
