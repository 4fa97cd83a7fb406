// Package eval implements the static positional evaluator used by the
// mid-game search.
package eval

// Phase buckets select a feature's weight by how many empty squares remain.
// Thresholds grounded on the authoritative evaluator's get_weight bucketing.
const (
	PhaseOpening = iota // > 50 empty
	PhaseMiddle         // > 40 empty
	PhaseLate           // > 20 empty
	PhaseEnd            // otherwise
)

// Phase returns the phase bucket for the given number of empty squares.
func Phase(emptyCount int) int {
	switch {
	case emptyCount > 50:
		return PhaseOpening
	case emptyCount > 40:
		return PhaseMiddle
	case emptyCount > 20:
		return PhaseLate
	default:
		return PhaseEnd
	}
}

// weight is a per-phase feature weight table.
type weight [4]int

func (w weight) at(emptyCount int) int {
	return w[Phase(emptyCount)]
}

var (
	mountainWeight        = weight{20, 20, 10, 5}
	pureMountainWeight    = weight{30, 30, 20, 10}
	cornerFlippableWeight = weight{-80, -80, -80, -80}
	solidDiscWeight       = weight{5, 5, 5, 5}
	flippableCountWeight  = weight{-3, -3, -2, -1}
	opennessWeight        = weight{-5, -5, -4, -3}

	// badWingWeight penalizes occupying a square two squares in from an
	// empty corner along either edge -- a shape not covered by the
	// retained evaluator, added as a supplementary feature.
	badWingWeight = weight{-10, -10, -6, -3}
)

// rawValues is the static per-square value table, indexed directly by
// reversi.Square (index = x+8y): corners are strongly favored, the squares
// diagonally adjacent to a corner are heavily penalized (they hand the
// corner away), and the rest of the board is mildly shaped toward edges.
var rawValues = [64]int{
	100, -20, 1, -1, -1, 1, -20, 100,
	-20, -40, -3, -3, -3, -3, -20, -20,
	1, -3, 1, -1, -1, 1, -3, 1,
	-1, -3, -1, 0, 0, -1, -3, -1,
	-1, -3, -1, 0, 0, -1, -3, -1,
	1, -3, 1, -1, -1, 1, -3, 1,
	-20, -40, -3, -3, -3, -3, -20, -20,
	100, -20, 1, -1, -1, 1, -20, 100,
}
