package eval

import "math/rand"

// Random is a randomized noise generator, used to add a small amount of
// variety to leaf evaluations so the engine doesn't always choose the exact
// same move at equal scores. limit specifies how many score units to
// add/remove in the range [-limit/2; limit/2]. The zero value always
// returns zero.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{
		limit: limit,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (n Random) Noise() Score {
	if n.limit <= 0 {
		return 0
	}
	return Score(n.rand.Intn(n.limit) - n.limit/2)
}
