package funtext

import (
	"math"
	"math/rand"
)

// Rand is the randomness source used for wiggle timing. Float64 returns a
// uniform value in [0, 1).
type Rand interface {
	Float64() float64
}

// defaultRand draws from the math/rand/v2 global source.
type defaultRand struct{}

func (defaultRand) Float64() float64 { return rand.Float64() }

// randomBetween draws a value in [lo, hi] rounded to two decimals. lo > hi is
// not rejected; the draw simply runs in the opposite direction.
func randomBetween(r Rand, lo, hi float64) float64 {
	return round2(lo + r.Float64()*(hi-lo))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
