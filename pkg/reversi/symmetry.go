package reversi

import "math/bits"

// Transform is a board automorphism: a permutation of squares that preserves
// adjacency, used to expand a single learned position into its dihedral
// symmetry class. Built as a per-square permutation table and applied via
// an accumulate-by-bit loop, the same idiom the donor engine uses to build
// its rotated bitboard attack tables from per-square permutations.
type Transform [64]Square

func newTransform(f func(x, y uint8) (uint8, uint8)) Transform {
	var t Transform
	for y := uint8(0); y < 8; y++ {
		for x := uint8(0); x < 8; x++ {
			nx, ny := f(x, y)
			t[x+8*y] = Square(nx + 8*ny)
		}
	}
	return t
}

// Apply maps a raw 64-bit mask through the transform.
func (t Transform) Apply(mask uint64) uint64 {
	var out uint64
	for mask != 0 {
		sq := Square(bits.TrailingZeros64(mask))
		mask &^= sq.Mask()
		out |= t[sq].Mask()
	}
	return out
}

// ApplyBoard maps a board through the transform.
func (t Transform) ApplyBoard(b Board) Board {
	return Board{Dark: t.Apply(b.Dark), Light: t.Apply(b.Light)}
}

// ApplySquare maps a single square through the transform.
func (t Transform) ApplySquare(sq Square) Square {
	return t[sq]
}

var (
	// Rotate90 turns the board 90 degrees: (x,y) -> (7-y, x).
	Rotate90 = newTransform(func(x, y uint8) (uint8, uint8) { return 7 - y, x })
	// Rotate180 turns the board 180 degrees: (x,y) -> (7-x, 7-y).
	Rotate180 = newTransform(func(x, y uint8) (uint8, uint8) { return 7 - x, 7 - y })
	// Rotate270 turns the board 270 degrees: (x,y) -> (y, 7-x).
	Rotate270 = newTransform(func(x, y uint8) (uint8, uint8) { return y, 7 - x })
	// Mirror flips the board across the vertical axis: (x,y) -> (7-x, y).
	Mirror = newTransform(func(x, y uint8) (uint8, uint8) { return 7 - x, y })
	// Identity leaves the board unchanged.
	Identity = newTransform(func(x, y uint8) (uint8, uint8) { return x, y })
)

// Group is the full dihedral group of order 8 (4 rotations, each with and
// without a mirror) applied to the square board.
var Group = [8]Transform{
	Identity,
	Rotate90,
	Rotate180,
	Rotate270,
	Mirror,
	composeMirror(Rotate90),
	composeMirror(Rotate180),
	composeMirror(Rotate270),
}

func composeMirror(t Transform) Transform {
	var out Transform
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		out[sq] = Mirror[t[sq]]
	}
	return out
}

// Symmetries returns all 8 dihedral variants of b, including b itself.
func Symmetries(b Board) [8]Board {
	var out [8]Board
	for i, t := range Group {
		out[i] = t.ApplyBoard(b)
	}
	return out
}
