package engine

import (
	"math/rand/v2"
	"time"
)

// Rand is a uniform random source in [0, 1).
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRand returns the process-wide random source.
func DefaultRand() Rand { return globalRand{} }

// Intn returns a uniform integer in [0, n). n must be positive.
func Intn(r Rand, n int) int {
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// IntBetween returns a uniform integer in [lo, hi].
func IntBetween(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + Intn(r, hi-lo+1)
}

// Uniform returns a uniform float in [lo, hi).
func Uniform(r Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// Shuffle permutes s in place (Fisher-Yates).
func Shuffle[T any](r Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := Intn(r, i+1)
		s[i], s[j] = s[j], s[i]
	}
}

// ClampFrame bounds a frame delta to [0, limit] so a suspended process does
// not produce one huge integration step.
func ClampFrame(dt, limit time.Duration) time.Duration {
	if dt < 0 {
		return 0
	}
	if limit > 0 && dt > limit {
		return limit
	}
	return dt
}
