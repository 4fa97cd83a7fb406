package eval

import (
	"testing"

	"github.com/ryoiwata/reversi/pkg/reversi"
	"github.com/stretchr/testify/assert"
)

func TestRawScoreInitialIsBalanced(t *testing.T) {
	assert.Equal(t, 0, rawScore(reversi.Initial(), reversi.Dark))
}

func TestMountainScore(t *testing.T) {
	b := reversi.Board{Dark: 0x7e3d81818181817e, Light: 0}
	got := mountainScore(b, reversi.Dark)
	want := mountainWeight.at(b.EmptyCount())*2 + pureMountainWeight.at(b.EmptyCount())*1
	assert.Equal(t, want, got)

	b = reversi.Board{Dark: 0x7e3d81818181817e, Light: 1}
	got = mountainScore(b, reversi.Dark)
	assert.Equal(t, pureMountainWeight.at(b.EmptyCount()), got)
}

func TestSolidDisksCount(t *testing.T) {
	b := reversi.Initial()
	assert.Equal(t, 0, solidDisksCount(b, reversi.Light))

	b = reversi.Board{Dark: 0x0000783c465c3c7e, Light: 0x008080c0b8a0c080}
	assert.Equal(t, 7, solidDisksCount(b, reversi.Light))

	b = reversi.Board{Dark: 0x0000783c465c3c7e, Light: 0x008080c0b8a04080}
	assert.Equal(t, 1, solidDisksCount(b, reversi.Light))

	b = reversi.Board{Dark: 0x0000e83c465c3c7e, Light: 0x008000c0b8a0c080}
	assert.Equal(t, 5, solidDisksCount(b, reversi.Light))

	b = reversi.Board{Dark: 0x0000783c465c3cee, Light: 0x000080c0b8a0c000}
	assert.Equal(t, 3, solidDisksCount(b, reversi.Dark))
	assert.Equal(t, 0, solidDisksCount(b, reversi.Light))
}

func TestOpennessOfSquare(t *testing.T) {
	b := reversi.Initial()
	d4, _ := reversi.ParseSquare("D4")
	assert.Equal(t, 5, opennessOfSquare(b, d4))
}

func TestEvaluateDoesNotPanicOnTerminalBoard(t *testing.T) {
	b := reversi.Board{Dark: ^uint64(0), Light: 0}
	got := Evaluate(b, reversi.Dark)
	assert.True(t, got >= TerminalWin)
}

func TestEmptyScoreFiresOnlyWhenNeitherSideCanMove(t *testing.T) {
	// Full board, all Dark: neither side has a legal move, and Dark owns
	// every disc, so the flag should fire positive for Dark and negative
	// for Light.
	full := reversi.Board{Dark: ^uint64(0), Light: 0}
	assert.Equal(t, int(TerminalWin), emptyScore(full, reversi.Dark))
	assert.Equal(t, -int(TerminalWin), emptyScore(full, reversi.Light))

	// Initial position: both sides have legal moves, so the flag must not
	// fire regardless of (here, balanced) disc counts.
	assert.Equal(t, 0, emptyScore(reversi.Initial(), reversi.Dark))
}
