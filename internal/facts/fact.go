// Package facts tracks per-fact learning strength for multiplication facts.
package facts

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// MaxBucket is the fully mastered bucket.
	MaxBucket = 5

	// MasteredBucket is the bucket at which a fact counts as mastered in reports.
	MasteredBucket = 4
)

// Key identifies a fact as an unordered pair of factors, stored with Lo <= Hi.
type Key struct {
	Lo int
	Hi int
}

// KeyOf returns the canonical key for the pair (a, b).
func KeyOf(a, b int) Key {
	if a > b {
		a, b = b, a
	}
	return Key{Lo: a, Hi: b}
}

// String formats the key as "LOxHI", the form used in persisted blobs.
func (k Key) String() string {
	return fmt.Sprintf("%dx%d", k.Lo, k.Hi)
}

// ParseKey parses a key in "AxB" form. The factors may be in either order.
func ParseKey(s string) (Key, error) {
	lhs, rhs, ok := strings.Cut(s, "x")
	if !ok {
		return Key{}, fmt.Errorf("invalid fact key %q", s)
	}
	a, err := strconv.Atoi(lhs)
	if err != nil {
		return Key{}, fmt.Errorf("invalid fact key %q: %w", s, err)
	}
	b, err := strconv.Atoi(rhs)
	if err != nil {
		return Key{}, fmt.Errorf("invalid fact key %q: %w", s, err)
	}
	if a <= 0 || b <= 0 {
		return Key{}, fmt.Errorf("invalid fact key %q: factors must be positive", s)
	}
	return KeyOf(a, b), nil
}

// Record holds the learning state of a single fact.
type Record struct {
	Bucket       int
	CorrectCount int
	WrongCount   int
	LastSeenAt   time.Time
}

// Attempts returns the lifetime number of attempts.
func (r Record) Attempts() int {
	return r.CorrectCount + r.WrongCount
}

// Accuracy returns the lifetime accuracy (0.0-1.0), or 0 if never attempted.
func (r Record) Accuracy() float64 {
	if r.Attempts() == 0 {
		return 0
	}
	return float64(r.CorrectCount) / float64(r.Attempts())
}

// Mastered reports whether the fact has reached the mastered bucket.
func (r Record) Mastered() bool {
	return r.Bucket >= MasteredBucket
}

// apply returns the record after one attempt.
func (r Record) apply(correct bool, now time.Time) Record {
	if correct {
		r.Bucket = min(MaxBucket, r.Bucket+1)
		r.CorrectCount++
	} else {
		r.Bucket = 0
		r.WrongCount++
	}
	r.LastSeenAt = now
	return r
}
