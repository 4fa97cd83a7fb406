package reversi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSquare(t *testing.T) {
	sq, err := ParseSquare("d4")
	require.NoError(t, err)
	assert.Equal(t, "D4", sq.String())

	sq, err = ParseSquare("A1")
	require.NoError(t, err)
	assert.Equal(t, Square(0), sq)

	sq, err = ParseSquare("H8")
	require.NoError(t, err)
	assert.Equal(t, Square(63), sq)

	_, err = ParseSquare("Z9")
	assert.Error(t, err)
}

func TestInitialLegalMoves(t *testing.T) {
	b := Initial()

	assert.Equal(t, 2, b.Count(Dark))
	assert.Equal(t, 2, b.Count(Light))
	assert.Equal(t, 60, b.EmptyCount())

	moves := b.LegalMoves(Dark)
	var got []string
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if moves&sq.Mask() != 0 {
			got = append(got, sq.String())
		}
	}
	assert.ElementsMatch(t, []string{"D3", "C4", "F5", "E6"}, got)
}

func TestApplyMoveFlips(t *testing.T) {
	b := Initial()
	sq, err := ParseSquare("D3")
	require.NoError(t, err)

	next := b.ApplyMove(Dark, sq)

	assert.Equal(t, 4, next.Count(Dark))
	assert.Equal(t, 1, next.Count(Light))

	d4, _ := ParseSquare("D4")
	assert.NotZero(t, next.Dark&d4.Mask(), "D4 should have flipped to Dark")
}

func TestIsEndAndWinner(t *testing.T) {
	b := Board{Dark: ^uint64(0), Light: 0}
	assert.True(t, b.IsEnd())

	w, ok := b.Winner()
	assert.True(t, ok)
	assert.Equal(t, Dark, w)

	tie := Board{Dark: 0x00000000ffffffff, Light: 0xffffffff00000000}
	_, ok = tie.Winner()
	assert.False(t, ok)
}

func TestHasLegalMoveNoneWhenFull(t *testing.T) {
	b := Board{Dark: ^uint64(0), Light: 0}
	assert.False(t, b.HasLegalMove(Dark))
	assert.False(t, b.HasLegalMove(Light))
}
