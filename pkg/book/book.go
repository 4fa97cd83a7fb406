// Package book implements an opening book learned from a corpus of
// finished games, expanded across the board's dihedral symmetries.
package book

import (
	"fmt"
	"strings"

	"github.com/ryoiwata/reversi/pkg/reversi"
)

// Book looks up a learned reply for a position. Grounded on the donor
// engine's pkg/engine/book.go Book interface, adapted from a FEN-keyed
// chess opening tree to a Board-keyed Reversi one.
type Book interface {
	// Find returns the learned move for side to play from b, if any. Once
	// false is returned the book should not be consulted again for the
	// rest of the game.
	Find(b reversi.Board, side reversi.Side) (reversi.Square, bool)
}

// NoBook is an empty opening book.
var NoBook Book = book{}

type book struct {
	dark, light map[reversi.Board]reversi.Square
}

func (b book) Find(pos reversi.Board, side reversi.Side) (reversi.Square, bool) {
	m := b.dark
	if side == reversi.Light {
		m = b.light
	}
	sq, ok := m[pos]
	return sq, ok
}

// tally counts, per board position reached by the winning side, how often
// each square was played next. Grounded on
// original_source/src/game/opening_db.rs::load_from_file, which keeps this
// as board -> (square -> count) before reducing to the single most popular
// square.
type tally map[reversi.Board]map[reversi.Square]int

// NewBook builds an opening book from a corpus of game records, one per
// line. Each line encodes a finished game as 40 three-character plies
// ("<side><file><rank>", e.g. "+D3" or "-C4") with the game's winner
// recorded as the '+' or '-' character found 6 runes from the end of the
// line -- the exact layout the donor tool's logbook.gam corpus uses.
// Only the winner's own moves are tallied per board position they were
// played from; the loser's moves are replayed to advance the board but are
// not counted, matching the corpus format's intent of learning only from
// the winning side.
func NewBook(lines []string) (Book, error) {
	darkCount := tally{}
	lightCount := tally{}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := parseLine(line, darkCount, lightCount); err != nil {
			return nil, fmt.Errorf("invalid game record %q: %w", line, err)
		}
	}

	return book{
		dark:  reduce(darkCount),
		light: reduce(lightCount),
	}, nil
}

const pliesPerRecord = 40

func parseLine(line string, darkCount, lightCount tally) error {
	if len(line) < 6 {
		return fmt.Errorf("line too short: %d runes", len(line))
	}
	runes := []rune(line)
	indicator := runes[len(runes)-6]

	var winner reversi.Side
	var count tally
	switch indicator {
	case '+':
		winner, count = reversi.Dark, darkCount
	case '-':
		winner, count = reversi.Light, lightCount
	default:
		return fmt.Errorf("invalid winner indicator %q", string(indicator))
	}

	b := reversi.Initial()
	// The move grid is followed by a fixed 6-character trailer (which is
	// where the winner indicator itself was read from above); only the
	// part of the line before that trailer holds plies.
	plies := (len(line) - 6) / 3
	if plies > pliesPerRecord {
		plies = pliesPerRecord
	}
	for i := 0; i < plies; i++ {
		token := line[i*3 : i*3+3]
		mover := winner.Opponent()
		if rune(token[0]) == indicator {
			mover = winner
		}

		sq, err := reversi.ParseSquare(token[1:3])
		if err != nil {
			return fmt.Errorf("ply %d: %w", i, err)
		}

		if mover == winner {
			if count[b] == nil {
				count[b] = map[reversi.Square]int{}
			}
			count[b][sq]++
		}
		b = b.ApplyMove(mover, sq)
	}
	return nil
}

// reduce picks, for each tallied board, the most frequently played square
// (ties broken by the lower square index for determinism -- the donor
// corpus loader instead inherits whatever order Rust's unordered HashMap
// iterates in, which this deliberately replaces with a stable rule) and
// expands the (board, square) pair across all 8 dihedral symmetries.
func reduce(counts tally) map[reversi.Board]reversi.Square {
	out := map[reversi.Board]reversi.Square{}

	for b, moves := range counts {
		best := reversi.Pass
		bestCount := -1
		for sq := reversi.ZeroSquare; sq < reversi.NumSquares; sq++ {
			c, ok := moves[sq]
			if !ok {
				continue
			}
			if c > bestCount {
				bestCount = c
				best = sq
			}
		}

		for _, t := range reversi.Group {
			out[t.ApplyBoard(b)] = t.ApplySquare(best)
		}
	}

	return out
}
