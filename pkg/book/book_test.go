package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryoiwata/reversi/pkg/reversi"
)

func TestNewBookLearnsWinnersMove(t *testing.T) {
	d3, err := reversi.ParseSquare("D3")
	require.NoError(t, err)

	// One ply, Dark to move and win: "+D3" is the move grid, and the
	// 6-character trailer that follows starts with the winner indicator.
	line := "+D3" + "+00000"

	b, err := NewBook([]string{line})
	require.NoError(t, err)

	sq, ok := b.Find(reversi.Initial(), reversi.Dark)
	require.True(t, ok)
	assert.Equal(t, d3, sq)

	// The learned reply must also be retrievable from every dihedral
	// symmetry of the position, mapped through the same transform.
	for _, tr := range reversi.Group {
		rotated := tr.ApplyBoard(reversi.Initial())
		want := tr.ApplySquare(d3)

		got, ok := b.Find(rotated, reversi.Dark)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestFindMissReturnsFalse(t *testing.T) {
	b, err := NewBook(nil)
	require.NoError(t, err)

	_, ok := b.Find(reversi.Initial(), reversi.Dark)
	assert.False(t, ok)
}

func TestNewBookRejectsBadIndicator(t *testing.T) {
	_, err := NewBook([]string{"+D3" + "?00000"})
	assert.Error(t, err)
}

func TestNoBookAlwaysMisses(t *testing.T) {
	_, ok := NoBook.Find(reversi.Initial(), reversi.Dark)
	assert.False(t, ok)
}
