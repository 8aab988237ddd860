package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathracers/internal/clock"
	"github.com/abhisek/mathracers/internal/logging"
	"github.com/abhisek/mathracers/internal/rewards"
	"github.com/abhisek/mathracers/internal/store"
)

const frame = 50 * time.Millisecond

type harness struct {
	t    *testing.T
	c    *Controller
	clk  *clock.Fake
	kv   *store.MemoryKV
	repo *store.Repo
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	return newHarnessWithKV(t, cfg, store.NewMemoryKV())
}

func newHarnessWithKV(t *testing.T, cfg Config, kv *store.MemoryKV) *harness {
	t.Helper()
	clk := clock.NewFake(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	repo := store.NewRepo(kv, logging.Discard())
	c := NewController(context.Background(), repo, cfg,
		WithClock(clk),
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithLogger(logging.Discard()),
	)
	return &harness{t: t, c: c, clk: clk, kv: kv, repo: repo}
}

// wait advances the clock and ticks the controller in frame-sized steps.
func (h *harness) wait(d time.Duration) {
	for d > 0 {
		step := min(frame, d)
		h.clk.Advance(step)
		h.c.Tick(step)
		d -= step
	}
}

// answer submits the right answer or a wrong choice.
func (h *harness) answer(correct bool) bool {
	f := h.c.Frame()
	value := f.Question.Answer()
	if !correct {
		for _, v := range f.Choices {
			if v != value {
				value = v
				break
			}
		}
	}
	return h.c.SubmitAnswer(value)
}

// settle ticks until the feedback phase ends.
func (h *harness) settle() {
	for i := 0; h.c.Phase() == PhaseFeedback && i < 1000; i++ {
		h.wait(frame)
	}
	require.NotEqual(h.t, PhaseFeedback, h.c.Phase(), "feedback never ended")
}

// race answers the pattern, thinking for think before each answer.
func (h *harness) race(pattern []bool, think time.Duration) {
	h.t.Helper()
	for i, correct := range pattern {
		h.wait(think)
		require.True(h.t, h.answer(correct), "answer %d rejected", i)
		h.settle()
	}
}

func allCorrect() []bool {
	p := make([]bool, 12)
	for i := range p {
		p[i] = true
	}
	return p
}

func TestWinAtRookieCup(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NoError(t, h.c.StartRace(1, 1))

	f := h.c.Frame()
	assert.Equal(t, PhaseAwaiting, f.Phase)
	assert.Equal(t, 12, f.Total)
	assert.Equal(t, 2.0, f.Speed)
	assert.Len(t, f.Choices, 4)
	assert.Contains(t, f.Choices, f.Question.Answer())

	h.race(allCorrect(), 2*time.Second)
	require.Equal(t, PhaseCompleted, h.c.Phase())

	res, ok := h.c.Result()
	require.True(t, ok)
	assert.True(t, res.Won)
	assert.Less(t, res.ChampProgress, 40.0)
	assert.Equal(t, 12, res.Correct)
	assert.Equal(t, 1.0, res.Accuracy)
	assert.Equal(t, rewards.GradeChampion, res.Grade)
	assert.Equal(t, 1+1+2*10, res.Coins)
	assert.Equal(t, rewards.PerfectBonus, res.Bonus)
	assert.Equal(t, 12, res.BestStreak)
	assert.Empty(t, res.Missed)
	assert.Equal(t, 100.0, h.c.Frame().RaceProgress)

	require.NoError(t, h.c.Commit(context.Background()))
	p := h.c.Profile()
	assert.Equal(t, store.Profile{Coins: 27, TotalRaces: 1, TotalCorrect: 12, Wins: 1}, p)
	assert.Equal(t, 1, h.c.LeagueWins()[1])

	res, _ = h.c.Result()
	require.Len(t, res.NewTiers, 1)
	assert.Equal(t, 2, res.NewTiers[0].ID)
	assert.Empty(t, res.NewCars)
	assert.Empty(t, res.NewLeagues)
}

func TestLossAgainstInstantChampion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FinishTimes[1] = 100 * time.Millisecond
	h := newHarness(t, cfg)
	require.NoError(t, h.c.StartRace(1, 1))

	h.race(allCorrect(), 500*time.Millisecond)
	res, ok := h.c.Result()
	require.True(t, ok)
	assert.False(t, res.Won)
	assert.Equal(t, 100.0, res.ChampProgress)

	require.NoError(t, h.c.Commit(context.Background()))
	assert.Equal(t, 1, h.c.Profile().Losses)
	assert.Equal(t, 0, h.c.Profile().Wins)
	assert.Equal(t, 0, h.c.LeagueWins()[1])
}

func TestWinAgainstSlowChampion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FinishTimes[1] = 24 * time.Hour
	h := newHarness(t, cfg)
	require.NoError(t, h.c.StartRace(1, 1))

	pattern := allCorrect()
	pattern[3], pattern[7] = false, false
	h.race(pattern, 8*time.Second)
	res, _ := h.c.Result()
	assert.True(t, res.Won)
}

func TestStreakCoins(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NoError(t, h.c.StartRace(1, 1))

	var coins []int
	for range 3 {
		h.wait(time.Second)
		require.True(t, h.answer(true))
		coins = append(coins, h.c.Frame().Last.Coins)
		h.settle()
	}
	assert.Equal(t, []int{1, 1, 2}, coins)
	assert.Equal(t, 3, h.c.Frame().Streak)
}

func TestWrongAnswerResetsStreak(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NoError(t, h.c.StartRace(1, 1))
	h.race([]bool{true, true, true, true, true}, time.Second)
	require.Equal(t, 5, h.c.Frame().Streak)

	require.True(t, h.answer(false))
	f := h.c.Frame()
	assert.Equal(t, 0, f.Streak)
	assert.Equal(t, 0, f.Last.Coins)
	h.settle()

	require.True(t, h.answer(true))
	assert.Equal(t, 1, h.c.Frame().Last.Coins)
}

func TestDuplicateSubmissionIgnored(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NoError(t, h.c.StartRace(1, 1))

	require.True(t, h.answer(true))
	assert.False(t, h.answer(true))
	assert.False(t, h.answer(false))

	f := h.c.Frame()
	assert.Equal(t, 1, f.Correct)
	assert.Equal(t, 0, f.Wrong)
	assert.Equal(t, 1, f.Coins)
	assert.Equal(t, PhaseFeedback, f.Phase)
}

func TestFeedbackDurations(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NoError(t, h.c.StartRace(1, 1))

	require.True(t, h.answer(false))
	assert.Equal(t, 1500*time.Millisecond, h.c.Frame().FeedbackRemaining)
	h.wait(1450 * time.Millisecond)
	assert.Equal(t, PhaseFeedback, h.c.Phase())
	h.wait(frame)
	assert.Equal(t, PhaseAwaiting, h.c.Phase())
	assert.Equal(t, 1, h.c.Frame().Index)

	require.True(t, h.answer(true))
	assert.Equal(t, 550*time.Millisecond, h.c.Frame().FeedbackRemaining)
}

func TestPauseFreezesFeedbackAndSpeedButNotChampion(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NoError(t, h.c.StartRace(1, 1))

	h.wait(time.Second)
	require.True(t, h.answer(true))
	h.wait(200 * time.Millisecond)
	require.True(t, h.c.TogglePause())

	before := h.c.Frame()
	require.True(t, before.Paused)
	require.Equal(t, 350*time.Millisecond, before.FeedbackRemaining)

	h.wait(5 * time.Second)
	during := h.c.Frame()
	assert.Equal(t, PhaseFeedback, during.Phase)
	assert.Equal(t, before.FeedbackRemaining, during.FeedbackRemaining)
	assert.Equal(t, before.Speed, during.Speed)
	assert.InDelta(t, 100.0*5/120, during.ChampProgress-before.ChampProgress, 1e-6)

	require.True(t, h.c.TogglePause())
	h.wait(300 * time.Millisecond)
	assert.Equal(t, PhaseFeedback, h.c.Phase())
	h.wait(frame)
	assert.Equal(t, PhaseAwaiting, h.c.Phase())
	assert.Less(t, h.c.Frame().Speed, during.Speed, "speed decays again after resume")
}

func TestChampionIgnoresPause(t *testing.T) {
	run := func(pause bool) float64 {
		h := newHarness(t, DefaultConfig())
		require.NoError(t, h.c.StartRace(1, 1))
		if pause {
			require.True(t, h.c.TogglePause())
		}
		h.wait(10 * time.Second)
		return h.c.Frame().ChampProgress
	}
	assert.InDelta(t, run(false), run(true), 1e-9)
}

func TestPausedTimeExcludedFromResponseTime(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NoError(t, h.c.StartRace(1, 1))

	h.wait(time.Second)
	require.True(t, h.c.TogglePause())
	h.wait(10 * time.Second)
	assert.False(t, h.answer(true), "answers are blocked while paused")
	require.True(t, h.c.TogglePause())
	h.wait(200 * time.Millisecond)

	require.True(t, h.answer(true))
	last := h.c.Frame().Last
	assert.Equal(t, 1200*time.Millisecond, last.ResponseTime)
	assert.Equal(t, 3.0, last.SpeedDelta)
}

func TestAccuracyBonusForOneMiss(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NoError(t, h.c.StartRace(1, 1))
	pattern := allCorrect()
	pattern[0] = false
	h.race(pattern, time.Second)

	res, ok := h.c.Result()
	require.True(t, ok)
	assert.Equal(t, 11, res.Correct)
	assert.Equal(t, rewards.HighBonus, res.Bonus)
	assert.Len(t, res.Missed, 1)
	assert.Equal(t, rewards.GradeChampion, res.Grade)
}

func TestCommitIsIdempotent(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NoError(t, h.c.StartRace(1, 1))
	h.race(allCorrect(), time.Second)

	ctx := context.Background()
	require.NoError(t, h.c.Commit(ctx))
	require.NoError(t, h.c.Commit(ctx))

	assert.Equal(t, 1, h.c.Profile().TotalRaces)
	saved := h.repo.LoadProfile(ctx)
	assert.Equal(t, 1, saved.TotalRaces)
	assert.Equal(t, 27, saved.Coins)
	assert.Len(t, h.repo.LoadHistory(ctx), 1)
}

func TestAbandonDoesNotCommit(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NoError(t, h.c.StartRace(1, 1))
	h.race([]bool{true, true, false}, time.Second)

	h.c.Abandon()
	assert.Equal(t, PhaseAbandoned, h.c.Phase())

	progress := h.c.Frame().ChampProgress
	h.wait(time.Minute)
	assert.Equal(t, progress, h.c.Frame().ChampProgress, "ticks stop after abandon")
	assert.False(t, h.answer(true))
	assert.False(t, h.c.TogglePause())

	err := h.c.Commit(context.Background())
	assert.True(t, errors.Is(err, ErrNotCompleted))
	assert.Equal(t, store.Profile{}, h.c.Profile())
	assert.Zero(t, h.c.Facts().Len())
	assert.Empty(t, h.kv.Snapshot())
}

func TestWorkingCopyIsIsolatedUntilCommit(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NoError(t, h.c.StartRace(1, 1))
	h.race(allCorrect()[:6], time.Second)
	assert.Zero(t, h.c.Facts().Len())

	h.race(allCorrect()[:6], time.Second)
	require.NoError(t, h.c.Commit(context.Background()))
	assert.NotZero(t, h.c.Facts().Len())
	assert.Equal(t, h.c.Facts().Len(), h.repo.LoadFacts(context.Background()).Len())
}

func TestLockedChoicesRejected(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	assert.ErrorIs(t, h.c.StartRace(2, 1), ErrTierLocked)
	assert.ErrorIs(t, h.c.StartRace(9, 1), ErrTierLocked)
	assert.ErrorIs(t, h.c.StartRace(1, 2), ErrLeagueLocked)
	assert.Equal(t, PhaseIdle, h.c.Phase())
}

func TestLeagueWinUnlocksNextLeague(t *testing.T) {
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), store.KeyLeagues, []byte(`{"1":1}`)))
	h := newHarnessWithKV(t, DefaultConfig(), kv)
	require.Equal(t, []int{1}, h.c.UnlockedLeagues())

	require.NoError(t, h.c.StartRace(1, 1))
	h.race(allCorrect(), time.Second)
	require.NoError(t, h.c.Commit(context.Background()))

	res, _ := h.c.Result()
	require.Len(t, res.NewLeagues, 1)
	assert.Equal(t, 2, res.NewLeagues[0].ID)
	assert.Equal(t, []int{1, 2}, h.c.UnlockedLeagues())
	assert.Equal(t, 2, h.repo.LoadLeagues(context.Background())[1])
}

func TestFrameDeltaIsClamped(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NoError(t, h.c.StartRace(1, 1))
	h.c.Tick(10 * time.Second)
	assert.InDelta(t, 100.0*0.1/120, h.c.Frame().ChampProgress, 1e-9)
}

func TestNoRaceIsNoop(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.c.Tick(time.Second)
	h.c.Abandon()
	assert.False(t, h.c.SubmitAnswer(1))
	assert.False(t, h.c.TogglePause())
	assert.Equal(t, PhaseIdle, h.c.Frame().Phase)
	_, ok := h.c.Result()
	assert.False(t, ok)
	assert.ErrorIs(t, h.c.Commit(context.Background()), ErrNotCompleted)
}

func TestSetSelectionFallsBackWhenLocked(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	ctx := context.Background()
	require.NoError(t, h.c.SetSelection(ctx, store.Selection{Tier: 3, League: 4, Car: 5}))
	assert.Equal(t, store.Selection{Tier: 1, League: 1, Car: 1}, h.c.Selection())
	assert.Equal(t, h.c.Selection(), h.repo.LoadSelection(ctx))
}
