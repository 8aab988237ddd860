package problemgen

import "github.com/abhisek/mathracers/internal/engine"

// DistractorCount is the number of wrong answers per question.
const DistractorCount = 3

const candidateLimit = 5

// Distractors returns three distinct positive wrong answers for a × b.
func Distractors(a, b int) []int {
	correct := a * b
	candidates := []int{
		correct + 1, correct - 1,
		correct + 2, correct - 2,
		correct + 3, correct - 3,
		correct + a, correct - a,
		correct + b, correct - b,
		a * (b + 1), a * (b - 1),
		(a + 1) * b, (a - 1) * b,
		correct + 5, correct - 5,
		correct + 10, correct - 10,
	}

	seen := map[int]bool{correct: true}
	picked := make([]int, 0, candidateLimit)
	for _, c := range candidates {
		if len(picked) == candidateLimit {
			break
		}
		if c <= 0 || seen[c] {
			continue
		}
		seen[c] = true
		picked = append(picked, c)
	}
	if len(picked) > DistractorCount {
		picked = picked[:DistractorCount]
	}

	for n := 1; len(picked) < DistractorCount; n++ {
		if seen[n] {
			continue
		}
		seen[n] = true
		picked = append(picked, n)
	}
	return picked
}

// Choices returns the correct answer and its distractors in random order.
func Choices(q Question, rnd engine.Rand) []int {
	out := append([]int{q.Answer()}, Distractors(q.A, q.B)...)
	engine.Shuffle(rnd, out)
	return out
}
