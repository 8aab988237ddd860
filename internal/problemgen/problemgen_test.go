package problemgen

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathracers/internal/facts"
)

type bucketMap map[facts.Key]int

func (m bucketMap) BucketOf(a, b int) int { return m[facts.KeyOf(a, b)] }

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestWeight(t *testing.T) {
	want := []int{6, 5, 4, 3, 2, 1}
	for bucket, w := range want {
		assert.Equal(t, w, Weight(bucket), "bucket %d", bucket)
	}
}

func TestBuildPoolCounts(t *testing.T) {
	buckets := bucketMap{facts.KeyOf(2, 3): 5, facts.KeyOf(2, 4): 2}
	pool := BuildPool(buckets, []int{2, 2})

	counts := map[Question]int{}
	for _, q := range pool {
		counts[q]++
	}
	assert.Len(t, counts, 12, "duplicate tables collapse")
	assert.Equal(t, 1, counts[Question{2, 3}])
	assert.Equal(t, 4, counts[Question{2, 4}])
	assert.Equal(t, 6, counts[Question{2, 7}])
}

func TestSampleWeighting(t *testing.T) {
	buckets := bucketMap{}
	for n := 2; n <= 12; n++ {
		buckets[facts.KeyOf(1, n)] = 5
	}
	pool := BuildPool(buckets, []int{1})
	s := NewSelector(seeded(1))

	var weak, strong int
	for range 100_000 {
		switch s.Sample(pool) {
		case Question{1, 1}:
			weak++
		case Question{1, 2}:
			strong++
		}
	}
	require.NotZero(t, strong)
	ratio := float64(weak) / float64(strong)
	assert.InDelta(t, 6.0, ratio, 1.0, "weak=%d strong=%d", weak, strong)
}

func TestSelectFavoursWeakFacts(t *testing.T) {
	buckets := bucketMap{}
	for n := 2; n <= 12; n++ {
		buckets[facts.KeyOf(1, n)] = 5
	}
	s := NewSelector(seeded(2))

	var weak, strong int
	for range 2_000 {
		for _, q := range s.Select(buckets, []int{1}) {
			switch q.B {
			case 1:
				weak++
			case 2:
				strong++
			}
		}
	}
	require.NotZero(t, strong)
	assert.Greater(t, float64(weak)/float64(strong), 3.0)
}

func TestSelectNoImmediateRepeat(t *testing.T) {
	s := NewSelector(seeded(3))
	buckets := bucketMap{}
	for range 500 {
		qs := s.Select(buckets, []int{1, 2, 5, 10})
		require.Len(t, qs, QuestionsPerRace)
		for i := 1; i < len(qs); i++ {
			require.NotEqual(t, qs[i-1].Key(), qs[i].Key(), "repeat at %d: %v", i, qs)
		}
	}
}

func TestDrawSingleKeyFallsBack(t *testing.T) {
	s := NewSelector(seeded(4))
	pool := []Question{{2, 3}, {3, 2}}
	qs := s.Draw(pool, QuestionsPerRace)
	require.Len(t, qs, QuestionsPerRace)
	for _, q := range qs {
		assert.Equal(t, facts.KeyOf(2, 3), q.Key())
	}
}

func TestDrawEmptyPool(t *testing.T) {
	assert.Nil(t, NewSelector(seeded(5)).Draw(nil, QuestionsPerRace))
}

func TestDistractorsValid(t *testing.T) {
	for a := 1; a <= 12; a++ {
		for b := 1; b <= 12; b++ {
			ds := Distractors(a, b)
			require.Len(t, ds, DistractorCount, "%d×%d", a, b)
			seen := map[int]bool{}
			for _, d := range ds {
				assert.Positive(t, d, "%d×%d", a, b)
				assert.NotEqual(t, a*b, d, "%d×%d", a, b)
				assert.False(t, seen[d], "%d×%d duplicate %d", a, b, d)
				seen[d] = true
			}
		}
	}
}

func TestDistractorsPriority(t *testing.T) {
	assert.Equal(t, []int{57, 55, 58}, Distractors(7, 8))
	assert.Equal(t, []int{2, 3, 4}, Distractors(1, 1))
}

func TestChoicesContainAnswer(t *testing.T) {
	rnd := seeded(6)
	q := Question{7, 8}
	positions := map[int]int{}
	for range 400 {
		cs := Choices(q, rnd)
		require.Len(t, cs, 4)
		assert.ElementsMatch(t, []int{56, 57, 55, 58}, cs)
		for i, c := range cs {
			if c == 56 {
				positions[i]++
			}
		}
	}
	assert.Len(t, positions, 4, "answer should land in every slot")
}

func TestQuestionText(t *testing.T) {
	q := Question{7, 8}
	assert.Equal(t, "7 × 8", q.Text())
	assert.Equal(t, "7 × 8 = 56", q.Label())
	assert.Equal(t, 56, q.Answer())
}
