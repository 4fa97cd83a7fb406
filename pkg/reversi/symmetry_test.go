package reversi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotate90FourTimesIsIdentity(t *testing.T) {
	b := Initial()

	cur := b
	for i := 0; i < 4; i++ {
		cur = Rotate90.ApplyBoard(cur)
	}
	assert.Equal(t, b, cur)
}

func TestRotate90MatchesConcreteSquares(t *testing.T) {
	cases := []struct{ from, to string }{
		{"A6", "C1"},
		{"B4", "E2"},
		{"E3", "F5"},
	}
	for _, c := range cases {
		from, _ := ParseSquare(c.from)
		want, _ := ParseSquare(c.to)
		assert.Equal(t, want, Rotate90.ApplySquare(from), "rotate_90(%v)", c.from)
	}
}

func TestMirrorIsSelfInverse(t *testing.T) {
	b := Initial()
	assert.Equal(t, b, Mirror.ApplyBoard(Mirror.ApplyBoard(b)))
}

func TestSymmetriesPreserveDiscCounts(t *testing.T) {
	sq, _ := ParseSquare("D3")
	b := Initial().ApplyMove(Dark, sq)

	for _, variant := range Symmetries(b) {
		assert.Equal(t, b.Count(Dark), variant.Count(Dark))
		assert.Equal(t, b.Count(Light), variant.Count(Light))
	}
}

func TestGroupHasEightDistinctElementsOnAsymmetricBoard(t *testing.T) {
	sq, _ := ParseSquare("D3")
	b := Initial().ApplyMove(Dark, sq)

	seen := map[Board]bool{}
	for _, variant := range Symmetries(b) {
		seen[variant] = true
	}
	assert.Len(t, seen, 8)
}
