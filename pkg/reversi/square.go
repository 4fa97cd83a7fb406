// Package reversi contains the board primitives: squares, sides and the
// bitboard position itself.
package reversi

import "fmt"

// Square represents a square on the 8x8 board as a bit-index into the
// bitboard layout: index = x + 8*y, with x in [0,7] mapping file A..H and
// y in [0,7] mapping rank 1..8. 6 bits.
//
//	A8=56 B8=57 C8=58 D8=59 E8=60 F8=61 G8=62 H8=63
//	A7=48 B7=49 C7=50 D7=51 E7=52 F7=53 G7=54 H7=55
//	A6=40 B6=41 C6=42 D6=43 E6=44 F6=45 G6=46 H6=47
//	A5=32 B5=33 C5=34 D5=35 E5=36 F5=37 G5=38 H5=39
//	A4=24 B4=25 C4=26 D4=27 E4=28 F4=29 G4=30 H4=31
//	A3=16 B3=17 C3=18 D3=19 E3=20 F3=21 G3=22 H3=23
//	A2=8  B2=9  C2=10 D2=11 E2=12 F2=13 G2=14 H2=15
//	A1=0  B1=1  C1=2  D1=3  E1=4  F1=5  G1=6  H1=7
type Square uint8

const (
	ZeroSquare Square = 0
	NumSquares Square = 64

	// Pass is a sentinel Square representing a forfeited turn, used when a
	// side to move has no legal move.
	Pass Square = 64
)

// File returns the file, 0-indexed from A.
func (s Square) File() uint8 {
	return uint8(s) % 8
}

// Rank returns the rank, 0-indexed from 1.
func (s Square) Rank() uint8 {
	return uint8(s) / 8
}

// Mask returns the single-bit board mask for the square.
func (s Square) Mask() uint64 {
	return uint64(1) << uint(s)
}

// ParseSquare parses a square such as "d5" or "D5".
func ParseSquare(str string) (Square, error) {
	runes := []rune(str)
	if len(runes) != 2 {
		return 0, fmt.Errorf("invalid square: '%v'", str)
	}

	f := runes[0]
	if f >= 'a' && f <= 'h' {
		f -= 'a' - 'A'
	}
	if f < 'A' || f > 'H' {
		return 0, fmt.Errorf("invalid file: '%v'", str)
	}

	r := runes[1]
	if r < '1' || r > '8' {
		return 0, fmt.Errorf("invalid rank: '%v'", str)
	}

	x := uint8(f - 'A')
	y := uint8(r - '1')
	return Square(x + 8*y), nil
}

func (s Square) String() string {
	if s == Pass {
		return "PASS"
	}
	return fmt.Sprintf("%c%c", 'A'+s.File(), '1'+s.Rank())
}
