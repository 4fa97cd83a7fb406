package reversi

import (
	"math/bits"
	"strings"
)

// Board is a bitboard position: one 64-bit mask per side, indexed per
// Square (x+8y). Value type; cheap to copy and fork.
type Board struct {
	Dark, Light uint64
}

// Initial returns the standard Othello starting position.
func Initial() Board {
	d4, _ := ParseSquare("D4")
	e5, _ := ParseSquare("E5")
	d5, _ := ParseSquare("D5")
	e4, _ := ParseSquare("E4")
	return Board{
		Dark:  d5.Mask() | e4.Mask(),
		Light: d4.Mask() | e5.Mask(),
	}
}

const (
	hMask = 0x7e7e7e7e7e7e7e7e // excludes file A and file H
	vMask = 0x00ffffffffffff00 // excludes rank 1 and rank 8
	dMask = 0x007e7e7e7e7e7e00 // excludes all four edges
)

// direction holds one (shift amount, watcher mask) pair. Applied both as a
// left shift and a right shift, it covers a full pair of opposite rays,
// e.g. shift=1/hMask covers both east and west.
type direction struct {
	shift uint
	mask  uint64
}

var directions = [4]direction{
	{shift: 1, mask: hMask},
	{shift: 8, mask: vMask},
	{shift: 9, mask: dMask},
	{shift: 7, mask: dMask},
}

func shift(x uint64, n uint, left bool) uint64 {
	if left {
		return x << n
	}
	return x >> n
}

// discs returns (own, opp) bitboards for the given side to move.
func (b Board) discs(s Side) (own, opp uint64) {
	if s == Dark {
		return b.Dark, b.Light
	}
	return b.Light, b.Dark
}

// LegalMoves returns the bitmask of squares the given side may legally play
// on. Implemented as a Kogge-Stone dilation along each of the 8 rays: own
// discs dilate across contiguous opponent discs (masked to exclude the
// board edges, so a ray never wraps around) and land on an empty square.
func (b Board) LegalMoves(s Side) uint64 {
	own, opp := b.discs(s)
	empty := ^(own | opp)

	var legal uint64
	for _, d := range directions {
		watcher := opp & d.mask
		legal |= empty & dilate(own, watcher, d.shift, true)
		legal |= empty & dilate(own, watcher, d.shift, false)
	}
	return legal
}

// dilate runs the 6-ply masked dilation of own along shift/left and returns
// the landing mask one step past the run -- i.e. the candidate move square,
// not yet intersected with the empty squares.
func dilate(own, watcher uint64, n uint, left bool) uint64 {
	tmp := watcher & shift(own, n, left)
	for i := 0; i < 5; i++ {
		tmp |= watcher & shift(tmp, n, left)
	}
	return shift(tmp, n, left)
}

// FlippedMask returns the mask of opponent discs that playing sq for side s
// would flip. Unlike a dilation seeded from every own disc (used for move
// generation), this walks outward from the played square along each ray and
// keeps the run only if it is terminated by an own disc.
func (b Board) FlippedMask(s Side, sq Square) uint64 {
	own, opp := b.discs(s)
	seed := sq.Mask()

	var flips uint64
	for _, d := range directions {
		watcher := opp & d.mask
		flips |= run(seed, watcher, own, d.shift, true)
		flips |= run(seed, watcher, own, d.shift, false)
	}
	return flips
}

// run walks from seed across contiguous watcher (opponent) discs and
// returns the accumulated run if it is bracketed by an own disc one step
// beyond; otherwise zero. The watcher mask already excludes the board edge
// in this direction, so the walk naturally halts there without wrapping.
func run(seed, watcher, own uint64, n uint, left bool) uint64 {
	var acc uint64
	cur := shift(seed, n, left)
	for cur&watcher != 0 {
		acc |= cur
		cur = shift(cur, n, left)
	}
	if cur&own != 0 {
		return acc
	}
	return 0
}

// ApplyMove returns the board resulting from side s playing sq. The caller
// must ensure sq is legal; ApplyMove does not validate.
func (b Board) ApplyMove(s Side, sq Square) Board {
	own, opp := b.discs(s)
	flips := b.FlippedMask(s, sq)

	own |= sq.Mask() | flips
	opp &^= flips

	if s == Dark {
		return Board{Dark: own, Light: opp}
	}
	return Board{Dark: opp, Light: own}
}

// Moves returns the legal moves for side s as a slice of squares, in
// increasing square order.
func (b Board) Moves(s Side) []Square {
	mask := b.LegalMoves(s)

	var moves []Square
	for mask != 0 {
		sq := Square(bits.TrailingZeros64(mask))
		mask &^= sq.Mask()
		moves = append(moves, sq)
	}
	return moves
}

// HasLegalMove reports whether side s has any legal move.
func (b Board) HasLegalMove(s Side) bool {
	return b.LegalMoves(s) != 0
}

// EmptyCount returns the number of unoccupied squares.
func (b Board) EmptyCount() int {
	return 64 - bits.OnesCount64(b.Dark|b.Light)
}

// Count returns the disc count for side s.
func (b Board) Count(s Side) int {
	own, _ := b.discs(s)
	return bits.OnesCount64(own)
}

// IsEnd conservatively reports whether the board is full. It does not
// detect the earlier pass/pass termination possible when neither side can
// move on a non-full board; that exact termination check belongs to the
// end-game solver, not this primitive.
func (b Board) IsEnd() bool {
	return b.EmptyCount() == 0
}

// Winner reports the side with strictly more discs. ok is false on a tie.
func (b Board) Winner() (Side, bool) {
	d, l := bits.OnesCount64(b.Dark), bits.OnesCount64(b.Light)
	switch {
	case d > l:
		return Dark, true
	case l > d:
		return Light, true
	default:
		return Dark, false
	}
}

func (b Board) String() string {
	var sb strings.Builder
	for y := 7; y >= 0; y-- {
		for x := 0; x < 8; x++ {
			sq := Square(x + 8*y)
			switch {
			case b.Dark&sq.Mask() != 0:
				sb.WriteString("D")
			case b.Light&sq.Mask() != 0:
				sb.WriteString("L")
			default:
				sb.WriteString(".")
			}
		}
		if y > 0 {
			sb.WriteString("/")
		}
	}
	return sb.String()
}
