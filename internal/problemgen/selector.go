package problemgen

import (
	"github.com/samber/lo"

	"github.com/abhisek/mathracers/internal/engine"
	"github.com/abhisek/mathracers/internal/facts"
)

// BucketReader reads the mastery bucket of a fact.
type BucketReader interface {
	BucketOf(a, b int) int
}

// Weight returns the sampling weight for a bucket. Weak facts get 6 and
// mastered facts get 1; it never drops below 1.
func Weight(bucket int) int {
	return max(1, 6-bucket)
}

// BuildPool returns the flat sampling pool for the given tables. Each fact
// (t, n) with n in [1, 12] appears Weight(bucket) times.
func BuildPool(r BucketReader, tables []int) []Question {
	var pool []Question
	for _, t := range lo.Uniq(tables) {
		for n := 1; n <= Multiplicands; n++ {
			w := Weight(r.BucketOf(t, n))
			for range w {
				pool = append(pool, Question{A: t, B: n})
			}
		}
	}
	return pool
}

// Selector draws race questions from a pool.
type Selector struct {
	rnd engine.Rand
}

// NewSelector returns a selector using rnd.
func NewSelector(rnd engine.Rand) *Selector {
	return &Selector{rnd: rnd}
}

// Sample draws one entry uniformly from pool. pool must be non-empty.
func (s *Selector) Sample(pool []Question) Question {
	return pool[engine.Intn(s.rnd, len(pool))]
}

// Draw returns n questions from pool. Consecutive questions never share a
// fact key unless the pool holds a single key, in which case the constraint
// is dropped for that draw. It returns nil for an empty pool.
func (s *Selector) Draw(pool []Question, n int) []Question {
	if len(pool) == 0 {
		return nil
	}
	out := make([]Question, 0, n)
	var last facts.Key
	for i := range n {
		candidates := pool
		if i > 0 {
			filtered := lo.Filter(pool, func(q Question, _ int) bool {
				return q.Key() != last
			})
			if len(filtered) > 0 {
				candidates = filtered
			}
		}
		q := s.Sample(candidates)
		out = append(out, q)
		last = q.Key()
	}
	return out
}

// Select builds the pool for tables and draws a full race.
func (s *Selector) Select(r BucketReader, tables []int) []Question {
	return s.Draw(BuildPool(r, tables), QuestionsPerRace)
}
