package random_test

import (
	"testing"

	"github.com/clktmr/n64hle/random"
	n64testing "github.com/clktmr/n64hle/testing"
)

func TestZeroSeed(t *testing.T) {
	a := random.NewRandom()
	b := random.NewRandom()
	a.ZeroSeed = true
	b.ZeroSeed = true

	for i := 1; i < 256; i++ {
		n64testing.ExpectEquality(t, a.IntN(i), b.IntN(i))
	}
}

func TestSeeded(t *testing.T) {
	a := random.NewSeeded(42)
	first := make([]int, 32)
	for i := range first {
		first[i] = a.IntN(6)
		n64testing.ExpectSuccess(t, first[i] >= 0 && first[i] < 6)
	}

	a.Reset()
	for i := range first {
		n64testing.ExpectEquality(t, a.IntN(6), first[i], i)
	}
}
