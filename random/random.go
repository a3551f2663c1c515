// Package random provides the random source used where the emulated system
// makes arbitrary choices, such as which microcode cache slot to evict.
//
// A Random created with ZeroSeed set produces the same sequence on every
// run, which tests rely on.
package random

import (
	"math/rand/v2"
	"time"
)

var baseSeed = uint64(time.Now().UnixNano())

type Random struct {
	rnd *rand.Rand

	// use a zero seed rather than the time based base seed. only useful where
	// random numbers must be predictable
	ZeroSeed bool

	seed   uint64
	seeded bool
}

// NewRandom returns a Random seeded from the clock on first use.
func NewRandom() *Random {
	return &Random{}
}

// NewSeeded returns a Random with a fixed seed.
func NewSeeded(seed uint64) *Random {
	return &Random{seed: seed, seeded: true}
}

func (r *Random) source() *rand.Rand {
	if r.rnd == nil {
		seed := baseSeed
		if r.ZeroSeed {
			seed = 0
		} else if r.seeded {
			seed = r.seed
		}
		r.rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return r.rnd
}

// IntN returns a number in [0, n). It panics if n <= 0.
func (r *Random) IntN(n int) int {
	return r.source().IntN(n)
}

// Reset restarts the sequence from the seed.
func (r *Random) Reset() {
	r.rnd = nil
}
