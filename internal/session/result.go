package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/abhisek/mathracers/internal/progression"
	"github.com/abhisek/mathracers/internal/rewards"
	"github.com/abhisek/mathracers/internal/store"
)

// Result is the outcome of a completed race.
type Result struct {
	ID     uuid.UUID
	Tier   int
	League progression.League
	Won    bool

	Correct  int
	Wrong    int
	Accuracy float64
	Grade    rewards.Grade

	// Coins were earned by answers; Bonus is the accuracy bonus.
	Coins int
	Bonus int

	BestStreak    int
	Missed        []string
	Duration      time.Duration
	FinishedAt    time.Time
	ChampProgress float64

	// Filled in by Commit.
	NewTiers   []progression.Tier
	NewCars    []progression.Car
	NewLeagues []progression.League
}

// Total returns the coins added to the balance.
func (r Result) Total() int {
	return r.Coins + r.Bonus
}

// Questions returns the number of answered questions.
func (r Result) Questions() int {
	return r.Correct + r.Wrong
}

// Record converts the result into a history entry.
func (r Result) Record() store.RaceRecord {
	return store.RaceRecord{
		ID:         r.ID.String(),
		FinishedAt: r.FinishedAt,
		Tier:       r.Tier,
		League:     r.League.ID,
		Correct:    r.Correct,
		Wrong:      r.Wrong,
		Coins:      r.Total(),
		Won:        r.Won,
		DurationMs: r.Duration.Milliseconds(),
	}
}

func buildResult(r *race) *Result {
	total := r.correct + r.wrong
	var accuracy float64
	if total > 0 {
		accuracy = float64(r.correct) / float64(total)
	}
	return &Result{
		ID:            r.id,
		Tier:          r.tier,
		League:        r.league,
		Won:           !r.champ.Finished(),
		Correct:       r.correct,
		Wrong:         r.wrong,
		Accuracy:      accuracy,
		Grade:         rewards.GradeFor(accuracy),
		Coins:         r.coins,
		Bonus:         rewards.AccuracyBonus(r.correct, total),
		BestStreak:    r.bestStreak,
		Missed:        lo.Uniq(r.missed),
		Duration:      r.endedAt.Sub(r.startedAt),
		FinishedAt:    r.endedAt,
		ChampProgress: r.champ.Progress(),
	}
}

type unlocks struct {
	tiers   []int
	cars    []progression.Car
	leagues []int
}

func unlocksFor(p store.Profile, wins map[int]int) unlocks {
	return unlocks{
		tiers:   progression.UnlockedTiers(p.Coins),
		cars:    progression.UnlockedCars(p.Coins),
		leagues: progression.UnlockedLeagues(wins),
	}
}

func (r *Result) setUnlocked(before, after unlocks) {
	r.NewTiers = lo.FilterMap(progression.NewlyUnlocked(before.tiers, after.tiers), func(id int, _ int) (progression.Tier, bool) {
		return progression.TierByID(id)
	})
	r.NewCars, _ = lo.Difference(after.cars, before.cars)
	r.NewLeagues = lo.FilterMap(progression.NewlyUnlocked(before.leagues, after.leagues), func(id int, _ int) (progression.League, bool) {
		return progression.LeagueByID(id)
	})
}
