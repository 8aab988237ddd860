package facts

import (
	"cmp"
	"fmt"
	"slices"
)

// FactsPerTable is the number of multiplicands in each table (1..12).
const FactsPerTable = 12

// TableStats aggregates the records of one multiplication table.
type TableStats struct {
	Table    int
	Correct  int
	Wrong    int
	Mastered int
	Seen     int
}

// Accuracy returns the table accuracy, and false if nothing was attempted.
func (t TableStats) Accuracy() (float64, bool) {
	total := t.Correct + t.Wrong
	if total == 0 {
		return 0, false
	}
	return float64(t.Correct) / float64(total), true
}

// StatsForTable aggregates facts t×1 .. t×12.
func (s *Store) StatsForTable(t int) TableStats {
	ts := TableStats{Table: t}
	for n := 1; n <= FactsPerTable; n++ {
		r, ok := s.Get(t, n)
		if !ok {
			continue
		}
		ts.Seen++
		ts.Correct += r.CorrectCount
		ts.Wrong += r.WrongCount
		if r.Mastered() {
			ts.Mastered++
		}
	}
	return ts
}

// WeakFact is a fact that has been missed at least once.
type WeakFact struct {
	A, B   int
	Record Record
}

// Label formats the fact with its answer, e.g. "7 × 8 = 56".
func (w WeakFact) Label() string {
	return Label(w.A, w.B)
}

// Label formats a×b with its product.
func Label(a, b int) string {
	return fmt.Sprintf("%d × %d = %d", a, b, a*b)
}

// WeakFacts lists missed facts of the given tables, weakest first.
// Ties are broken by wrong count (more first), then by table order.
func (s *Store) WeakFacts(tables []int) []WeakFact {
	seen := make(map[Key]bool)
	var weak []WeakFact
	for _, t := range tables {
		for n := 1; n <= FactsPerTable; n++ {
			k := KeyOf(t, n)
			if seen[k] {
				continue
			}
			seen[k] = true
			r, ok := s.records[k]
			if !ok || r.WrongCount == 0 {
				continue
			}
			weak = append(weak, WeakFact{A: t, B: n, Record: r})
		}
	}
	slices.SortStableFunc(weak, func(x, y WeakFact) int {
		if c := cmp.Compare(x.Record.Accuracy(), y.Record.Accuracy()); c != 0 {
			return c
		}
		return cmp.Compare(y.Record.WrongCount, x.Record.WrongCount)
	})
	return weak
}
