// Package problemgen builds the questions for a race: a mastery-weighted
// pool of multiplication facts, a no-immediate-repeat draw over that pool,
// and the wrong answers shown next to the right one.
package problemgen

import (
	"fmt"

	"github.com/abhisek/mathracers/internal/facts"
)

// QuestionsPerRace is the fixed length of a race.
const QuestionsPerRace = 12

// Multiplicands is the range [1, Multiplicands] paired with each table.
const Multiplicands = 12

// Question is one multiplication fact to answer.
type Question struct {
	A int
	B int
}

// Answer returns the product.
func (q Question) Answer() int {
	return q.A * q.B
}

// Key returns the canonical unordered fact key.
func (q Question) Key() facts.Key {
	return facts.KeyOf(q.A, q.B)
}

// Text returns the prompt shown to the player, e.g. "7 × 8".
func (q Question) Text() string {
	return fmt.Sprintf("%d × %d", q.A, q.B)
}

// Label returns the worked fact, e.g. "7 × 8 = 56".
func (q Question) Label() string {
	return facts.Label(q.A, q.B)
}
