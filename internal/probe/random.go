package probe

import "math/rand/v2"

// Random is the pseudo-random source extraction and assembly draw from.
// *rand.Rand satisfies it.
type Random interface {
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int
}

// Independent streams derived from one seed. Each consumer owns a stream so
// the number of draws one makes never shifts the values another sees.
const (
	StreamSplit      uint64 = 1
	StreamCorruption uint64 = 2
)

// NewRandom returns a PCG generator for the given seed and stream.
func NewRandom(seed int64, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), stream))
}
