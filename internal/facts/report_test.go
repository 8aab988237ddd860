package facts

import "testing"

func TestStatsForTable(t *testing.T) {
	s := NewStore()
	s.Set(KeyOf(3, 1), Record{Bucket: 5, CorrectCount: 5})
	s.Set(KeyOf(3, 2), Record{Bucket: 4, CorrectCount: 4, WrongCount: 1})
	s.Set(KeyOf(3, 3), Record{Bucket: 0, CorrectCount: 1, WrongCount: 2})

	ts := s.StatsForTable(3)
	if ts.Seen != 3 {
		t.Errorf("Seen = %d, want 3", ts.Seen)
	}
	if ts.Correct != 10 || ts.Wrong != 3 {
		t.Errorf("Correct/Wrong = %d/%d, want 10/3", ts.Correct, ts.Wrong)
	}
	if ts.Mastered != 2 {
		t.Errorf("Mastered = %d, want 2", ts.Mastered)
	}
	acc, ok := ts.Accuracy()
	if !ok {
		t.Fatal("expected accuracy to be available")
	}
	if acc < 0.76 || acc > 0.77 {
		t.Errorf("Accuracy = %.3f, want ~0.769", acc)
	}

	if _, ok := s.StatsForTable(9).Accuracy(); ok {
		t.Error("expected no accuracy for untouched table")
	}
}

func TestWeakFactsOrdering(t *testing.T) {
	s := NewStore()
	s.Set(KeyOf(2, 3), Record{CorrectCount: 3, WrongCount: 1}) // 75%
	s.Set(KeyOf(2, 4), Record{CorrectCount: 0, WrongCount: 2}) // 0%
	s.Set(KeyOf(2, 5), Record{CorrectCount: 5})                // never missed
	s.Set(KeyOf(5, 6), Record{CorrectCount: 1, WrongCount: 1}) // 50%

	weak := s.WeakFacts([]int{2, 5})
	if len(weak) != 3 {
		t.Fatalf("len(weak) = %d, want 3", len(weak))
	}
	want := []string{"2 × 4 = 8", "5 × 6 = 30", "2 × 3 = 6"}
	for i, w := range weak {
		if w.Label() != want[i] {
			t.Errorf("weak[%d] = %q, want %q", i, w.Label(), want[i])
		}
	}
}

func TestWeakFactsDeduplicatesSharedFacts(t *testing.T) {
	s := NewStore()
	s.Set(KeyOf(2, 5), Record{WrongCount: 1})

	weak := s.WeakFacts([]int{2, 5})
	if len(weak) != 1 {
		t.Errorf("len(weak) = %d, want 1 (2×5 and 5×2 are one fact)", len(weak))
	}
}
