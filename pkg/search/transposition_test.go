package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ryoiwata/reversi/pkg/eval"
	"github.com/ryoiwata/reversi/pkg/reversi"
	"github.com/ryoiwata/reversi/pkg/search"
)

func TestTableReadMiss(t *testing.T) {
	tt := search.NewTable()
	key := search.Key{Board: reversi.Initial(), Side: reversi.Dark}

	_, _, _, _, ok := tt.Read(key)
	assert.False(t, ok)
	assert.Equal(t, 0, tt.Size())
}

func TestTableWriteThenRead(t *testing.T) {
	tt := search.NewTable()
	key := search.Key{Board: reversi.Initial(), Side: reversi.Dark}
	d3, _ := reversi.ParseSquare("D3")

	tt.Write(key, search.ExactBound, 5, eval.Score(2), d3)

	bound, depth, score, move, ok := tt.Read(key)
	assert.True(t, ok)
	assert.Equal(t, search.ExactBound, bound)
	assert.Equal(t, 5, depth)
	assert.Equal(t, eval.Score(2), score)
	assert.Equal(t, d3, move)
	assert.Equal(t, 1, tt.Size())
}

func TestTableWriteKeepsTheDeeperResult(t *testing.T) {
	tt := search.NewTable()
	key := search.Key{Board: reversi.Initial(), Side: reversi.Dark}
	d3, _ := reversi.ParseSquare("D3")
	c4, _ := reversi.ParseSquare("C4")

	tt.Write(key, search.ExactBound, 4, eval.Score(5), d3)
	tt.Write(key, search.ExactBound, 2, eval.Score(9), c4) // shallower: ignored

	_, depth, score, move, ok := tt.Read(key)
	assert.True(t, ok)
	assert.Equal(t, 4, depth)
	assert.Equal(t, eval.Score(5), score)
	assert.Equal(t, d3, move)
}

func TestTableClear(t *testing.T) {
	tt := search.NewTable()
	key := search.Key{Board: reversi.Initial(), Side: reversi.Dark}
	d3, _ := reversi.ParseSquare("D3")

	tt.Write(key, search.ExactBound, 1, eval.Score(1), d3)
	assert.Equal(t, 1, tt.Size())

	tt.Clear()
	assert.Equal(t, 0, tt.Size())
	_, _, _, _, ok := tt.Read(key)
	assert.False(t, ok)
}

func TestNoTranspositionTableAlwaysMisses(t *testing.T) {
	var tt search.NoTranspositionTable
	key := search.Key{Board: reversi.Initial(), Side: reversi.Dark}
	d3, _ := reversi.ParseSquare("D3")

	tt.Write(key, search.ExactBound, 9, eval.Score(9), d3)

	_, _, _, _, ok := tt.Read(key)
	assert.False(t, ok)
	assert.Equal(t, 0, tt.Size())
}
