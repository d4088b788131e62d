package market

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// Generator produces the next synthetic price from the current one.
type Generator interface {
	Next(current Price) Price
}

// RandomWalk adds a normally distributed increment to the current price.
// The result is never clamped, so a walk can cross zero.
type RandomWalk struct {
	Mean   float64
	StdDev float64

	rng *rand.Rand
}

// NewRandomWalk returns a walk with the given step distribution. A zero seed
// draws a fresh one so every session sees a different series.
func NewRandomWalk(mean, stddev float64, seed int64) *RandomWalk {
	if seed == 0 {
		seed = NewSeed()
	}
	return &RandomWalk{
		Mean:   mean,
		StdDev: stddev,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (w *RandomWalk) Next(current Price) Price {
	return current + w.Mean + w.StdDev*w.rng.NormFloat64()
}

// NewSeed reads a seed from crypto/rand, falling back to the wall clock.
func NewSeed() int64 {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return seed
}

// Scripted replays a fixed list of prices and then holds the last value it
// returned. It ignores the current price, which makes it useful for
// configured price paths and for tests.
type Scripted struct {
	Steps []Price

	next int
}

func (s *Scripted) Next(current Price) Price {
	if s.next >= len(s.Steps) {
		return current
	}
	p := s.Steps[s.next]
	s.next++
	return p
}
