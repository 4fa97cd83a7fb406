// Package eval implements the static positional evaluator used by the
// mid-game search.
package eval

import (
	"fmt"
	"math/bits"

	"github.com/ryoiwata/reversi/pkg/reversi"
)

// Score is a signed position score, positive favoring the side the score is
// computed for. MinScore/MaxScore bound the search window; scores are not
// clamped. A finished game (neither side can move) contributes
// +/-TerminalWin, signed by which side has more discs. 16 bits.
type Score int16

const (
	MinScore    Score = -30000
	MaxScore    Score = 30000
	TerminalWin Score = 5000
)

func (s Score) String() string {
	return fmt.Sprintf("%v", int16(s))
}

// Less reports whether s is a worse outcome than o.
func (s Score) Less(o Score) bool {
	return s < o
}

type edge struct {
	mid, pure, corners uint64
}

func mask(squares ...string) uint64 {
	var m uint64
	for _, str := range squares {
		m |= mustSquare(str).Mask()
	}
	return m
}

func mustSquare(str string) reversi.Square {
	sq, err := reversi.ParseSquare(str)
	if err != nil {
		panic(err)
	}
	return sq
}

// edges lists the four board edges with their "mountain" (edge run) and
// "pure mountain" (edge run plus the narrower row immediately behind it)
// shapes, and the pair of corner squares that must remain unclaimed by the
// opponent for the shape to count. Squares are named explicitly rather than
// given as raw hex literals, for auditability.
var edges = [4]edge{
	{ // rank 8
		mid:     mask("B8", "C8", "D8", "E8", "F8", "G8"),
		pure:    mask("B8", "C8", "D8", "E8", "F8", "G8", "C7", "D7", "E7", "F7"),
		corners: mask("A8", "H8"),
	},
	{ // file A
		mid:     mask("A2", "A3", "A4", "A5", "A6", "A7"),
		pure:    mask("A2", "A3", "A4", "A5", "A6", "A7", "B3", "B4", "B5", "B6"),
		corners: mask("A1", "A8"),
	},
	{ // rank 1
		mid:     mask("B1", "C1", "D1", "E1", "F1", "G1"),
		pure:    mask("B1", "C1", "D1", "E1", "F1", "G1", "C2", "D2", "E2", "F2"),
		corners: mask("A1", "H1"),
	},
	{ // file H
		mid:     mask("H2", "H3", "H4", "H5", "H6", "H7"),
		pure:    mask("H2", "H3", "H4", "H5", "H6", "H7", "G3", "G4", "G5", "G6"),
		corners: mask("H1", "H8"),
	},
}

type corner struct {
	sq   reversi.Square
	dirs [2]int
}

// corners lists the four corners with the two ray directions (signed square
// deltas) running along their two edges, used for both the solid-disc walk
// and the bad-wing shape check.
var corners = [4]corner{
	{sq: mustSquare("A1"), dirs: [2]int{8, 1}},
	{sq: mustSquare("H1"), dirs: [2]int{8, -1}},
	{sq: mustSquare("A8"), dirs: [2]int{-8, 1}},
	{sq: mustSquare("H8"), dirs: [2]int{-8, -1}},
}

// Evaluate returns the static score of b from side's perspective: positive
// favors side. Combines raw square values, corner vulnerability, edge
// ("mountain") shapes, solid (unflankable) disc counts, frontier openness,
// a bad-wing penalty and a terminal bonus, each phase-weighted by the
// number of empty squares remaining. Grounded on the donor ruleset's
// feature set, with the per-move "openness of the last flip" term
// generalized into a per-board frontier-openness term (see design notes) so
// Evaluate remains a pure function of the board, as a leaf evaluator must
// be.
func Evaluate(b reversi.Board, side reversi.Side) Score {
	opp := side.Opponent()

	score := rawScore(b, side) +
		flippableCountScore(b, opp) +
		cornerFlippableScore(b, opp) +
		mountainScore(b, side) +
		solidDisksScore(b, side) +
		opennessScore(b, side) +
		badWingScore(b, side) +
		emptyScore(b, side)

	return Score(score)
}

func disks(b reversi.Board, s reversi.Side) uint64 {
	if s == reversi.Dark {
		return b.Dark
	}
	return b.Light
}

func rawScore(b reversi.Board, side reversi.Side) int {
	own, opp := disks(b, side), disks(b, side.Opponent())

	raw := sumRawValues(own) - sumRawValues(opp) +
		cornerFlippedScore(b, side) - cornerFlippedScore(b, side.Opponent())

	empty := b.EmptyCount()
	var mul float64
	switch {
	case empty > 30:
		mul = 3.0
	case empty > 15:
		mul = 1.0
	default:
		mul = 0.1
	}
	return int(float64(raw) * mul)
}

func sumRawValues(discs uint64) int {
	sum := 0
	for discs != 0 {
		sq := reversi.Square(bits.TrailingZeros64(discs))
		discs &^= sq.Mask()
		sum += rawValues[sq]
	}
	return sum
}

type cornerAdjacency struct {
	corner reversi.Square
	near   [3]reversi.Square
}

var cornerAdjacencies = [4]cornerAdjacency{
	{mustSquare("A1"), [3]reversi.Square{mustSquare("B1"), mustSquare("A2"), mustSquare("B2")}},
	{mustSquare("H1"), [3]reversi.Square{mustSquare("G1"), mustSquare("H2"), mustSquare("G2")}},
	{mustSquare("A8"), [3]reversi.Square{mustSquare("A7"), mustSquare("B8"), mustSquare("B7")}},
	{mustSquare("H8"), [3]reversi.Square{mustSquare("H7"), mustSquare("G8"), mustSquare("G7")}},
}

// cornerFlippedScore rewards the three squares adjacent to a corner once
// that corner itself is occupied (by either side) and the adjacent square
// is occupied by side: once the corner is taken, those squares are no
// longer liabilities.
func cornerFlippedScore(b reversi.Board, side reversi.Side) int {
	own := disks(b, side)
	occupied := b.Dark | b.Light

	ret := 0
	for _, a := range cornerAdjacencies {
		if occupied&a.corner.Mask() == 0 {
			continue
		}
		for _, sq := range a.near {
			if own&sq.Mask() != 0 {
				ret += rawValues[sq]
			}
		}
	}
	return ret
}

func mountainScore(b reversi.Board, side reversi.Side) int {
	own := disks(b, side)
	opp := disks(b, side.Opponent())
	empty := b.EmptyCount()

	score := 0
	for _, e := range edges {
		if own&e.mid != e.mid {
			continue
		}
		if opp&e.corners != 0 {
			continue
		}
		if own&e.pure == e.pure {
			score += pureMountainWeight.at(empty)
		} else {
			score += mountainWeight.at(empty)
		}
	}
	return score
}

func cornerFlippableScore(b reversi.Board, side reversi.Side) int {
	legal := b.LegalMoves(side)
	count := bits.OnesCount64(legal & mask("A1", "H1", "A8", "H8"))
	return count * cornerFlippableWeight.at(b.EmptyCount())
}

func flippableCountScore(b reversi.Board, side reversi.Side) int {
	count := bits.OnesCount64(b.LegalMoves(side))
	return count * flippableCountWeight.at(b.EmptyCount())
}

func solidDisksScore(b reversi.Board, side reversi.Side) int {
	return (solidDisksCount(b, side) - solidDisksCount(b, side.Opponent())) * solidDiscWeight.at(b.EmptyCount())
}

// solidDisksCount counts discs anchored to an owned corner along its two
// edges: runs of own discs terminated either by the board edge or by an
// opponent disc run followed only by further own discs (a line secured by
// the corner still counts once filled).
func solidDisksCount(b reversi.Board, side reversi.Side) int {
	own, opp := disks(b, side), disks(b, side.Opponent())

	total := 0
	for _, c := range corners {
		if own&c.sq.Mask() == 0 {
			continue
		}
		total++
		for _, d := range c.dirs {
			total += solidDisksLine(own, opp, int(c.sq), d)
		}
	}
	return total
}

func solidDisksLine(own, opp uint64, square, diff int) int {
	ret, extra := 0, 0
	filled := false
	for i := 1; i < 8; i++ {
		idx := square + diff*i
		if idx < 0 || idx >= 64 {
			break
		}
		sq := reversi.Square(idx)
		switch {
		case own&sq.Mask() != 0:
			if filled {
				extra++
			} else {
				ret++
			}
		case opp&sq.Mask() != 0:
			filled = true
		default:
			return ret
		}
	}
	return ret + extra
}

var notAFile = uint64(0xfefefefefefefefe)
var notHFile = uint64(0x7f7f7f7f7f7f7f7f)

// opennessOfSquare counts the empty neighbors of sq, masking each of the 8
// shift directions to the board edge so a shift can never wrap around.
func opennessOfSquare(b reversi.Board, sq reversi.Square) int {
	empty := ^(b.Dark | b.Light)
	s := sq.Mask()

	bb := (s<<1)&(empty&notAFile) |
		(s>>1)&(empty&notHFile) |
		(s<<8)&empty |
		(s>>8)&empty |
		(s<<7)&(empty&notHFile) |
		(s>>7)&(empty&notAFile) |
		(s<<9)&(empty&notAFile) |
		(s>>9)&(empty&notHFile)

	return bits.OnesCount64(bb)
}

// opennessScore penalizes side for discs sitting on open frontier squares
// (squares with empty neighbors), since those are exposed to being
// recaptured. Generalized from the donor ruleset's "openness of the
// squares just flipped" term to cover all of side's discs, so the feature
// works as a pure function of the current board rather than needing the
// move that produced it threaded through the whole search.
func opennessScore(b reversi.Board, side reversi.Side) int {
	own := disks(b, side)
	total := 0
	for own != 0 {
		sq := reversi.Square(bits.TrailingZeros64(own))
		own &^= sq.Mask()
		total += opennessOfSquare(b, sq)
	}
	return total * opennessWeight.at(b.EmptyCount())
}

// badWingScore penalizes occupying a square two squares in from a still
// empty corner along either of its edges: the classic "wing" shape that
// hands an opponent a safe path to the corner.
func badWingScore(b reversi.Board, side reversi.Side) int {
	own := disks(b, side)
	occupied := b.Dark | b.Light

	count := 0
	for _, c := range corners {
		if occupied&c.sq.Mask() != 0 {
			continue // corner already decided; no longer a liability
		}
		for _, d := range c.dirs {
			idx := int(c.sq) + d*2
			if idx < 0 || idx >= 64 {
				continue
			}
			if own&reversi.Square(idx).Mask() != 0 {
				count++
			}
		}
	}
	return count * badWingWeight.at(b.EmptyCount())
}

// emptyScore fires the terminal flag: once neither side has a legal move,
// the game is over in all but name, and the evaluator should say so plainly
// rather than let search keep weighing a position that can no longer
// change. Signed by the actual disc-count difference so a lopsided
// stalemate still outweighs a narrow one.
func emptyScore(b reversi.Board, side reversi.Side) int {
	opp := side.Opponent()
	if b.HasLegalMove(side) || b.HasLegalMove(opp) {
		return 0
	}

	switch diff := b.Count(side) - b.Count(opp); {
	case diff > 0:
		return int(TerminalWin)
	case diff < 0:
		return -int(TerminalWin)
	default:
		return 0
	}
}
