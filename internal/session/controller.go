// Package session runs one race: it sequences the questions, feeds answers
// into the speed and track engines, integrates the champion, and commits
// the outcome to persistent state exactly once.
package session

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/mathracers/internal/clock"
	"github.com/abhisek/mathracers/internal/engine"
	"github.com/abhisek/mathracers/internal/facts"
	"github.com/abhisek/mathracers/internal/logging"
	"github.com/abhisek/mathracers/internal/problemgen"
	"github.com/abhisek/mathracers/internal/progression"
	"github.com/abhisek/mathracers/internal/rewards"
	"github.com/abhisek/mathracers/internal/store"
)

var (
	ErrTierLocked   = errors.New("tier is locked")
	ErrLeagueLocked = errors.New("league is locked")
	ErrNoQuestions  = errors.New("no questions for the selected tier")
	ErrNotCompleted = errors.New("race is not completed")
)

// Repo is the persistence used by the Controller.
type Repo interface {
	LoadState(ctx context.Context) store.State
	LoadSelection(ctx context.Context) store.Selection
	LoadHistory(ctx context.Context) []store.RaceRecord
	SaveSelection(ctx context.Context, sel store.Selection) error
	Commit(ctx context.Context, st store.State, rec store.RaceRecord) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the time source.
func WithClock(c clock.Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

// WithRand sets the random source.
func WithRand(r engine.Rand) Option {
	return func(ctl *Controller) { ctl.rnd = r }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(ctl *Controller) { ctl.log = l }
}

// Controller owns the persisted player state and at most one race.
// It is not safe for concurrent use; callers drive it from one event loop.
type Controller struct {
	cfg   Config
	repo  Repo
	clock clock.Clock
	rnd   engine.Rand
	log   logrus.FieldLogger

	state     store.State
	selection store.Selection
	race      *race
}

// NewController loads persisted state from repo and returns a Controller.
func NewController(ctx context.Context, repo Repo, cfg Config, opts ...Option) *Controller {
	c := &Controller{
		cfg:   cfg,
		repo:  repo,
		clock: clock.Real{},
		rnd:   engine.DefaultRand(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = logging.Discard()
	}
	c.state = repo.LoadState(ctx)
	if c.state.Facts == nil {
		c.state.Facts = facts.NewStore()
	}
	if c.state.Leagues == nil {
		c.state.Leagues = map[int]int{}
	}
	c.selection = c.resolveSelection(repo.LoadSelection(ctx))
	return c
}

// Profile returns the persisted player profile.
func (c *Controller) Profile() store.Profile {
	return c.state.Profile
}

// LeagueWins returns a copy of wins per league.
func (c *Controller) LeagueWins() map[int]int {
	return maps.Clone(c.state.Leagues)
}

// Facts returns a copy of the persisted mastery store.
func (c *Controller) Facts() *facts.Store {
	return c.state.Facts.Clone()
}

// History returns the saved race history, oldest first.
func (c *Controller) History(ctx context.Context) []store.RaceRecord {
	return c.repo.LoadHistory(ctx)
}

// Selection returns the current race setup.
func (c *Controller) Selection() store.Selection {
	return c.selection
}

// UnlockedTiers returns the tier IDs available to the player.
func (c *Controller) UnlockedTiers() []int {
	return progression.UnlockedTiers(c.state.Profile.Coins)
}

// UnlockedLeagues returns the league IDs available to the player.
func (c *Controller) UnlockedLeagues() []int {
	return progression.UnlockedLeagues(c.state.Leagues)
}

// UnlockedCars returns the cars available to the player.
func (c *Controller) UnlockedCars() []progression.Car {
	return progression.UnlockedCars(c.state.Profile.Coins)
}

// SetSelection stores a new race setup. Locked choices fall back to the
// first option.
func (c *Controller) SetSelection(ctx context.Context, sel store.Selection) error {
	c.selection = c.resolveSelection(sel)
	if err := c.repo.SaveSelection(ctx, c.selection); err != nil {
		c.log.WithError(err).Error("save selection")
		return fmt.Errorf("save selection: %w", err)
	}
	return nil
}

func (c *Controller) resolveSelection(sel store.Selection) store.Selection {
	coins := c.state.Profile.Coins
	if !progression.IsTierUnlocked(sel.Tier, coins) {
		sel.Tier = progression.Tiers[0].ID
	}
	if !progression.IsLeagueUnlocked(sel.League, c.state.Leagues) {
		sel.League = progression.Leagues[0].ID
	}
	sel.Car = int(progression.ResolveCar(progression.Car(sel.Car), coins))
	return sel
}

// StartRace sets up a new race at tier and league, replacing any race in
// progress without committing it.
func (c *Controller) StartRace(tier, league int) error {
	coins := c.state.Profile.Coins
	if !progression.IsTierUnlocked(tier, coins) {
		return fmt.Errorf("tier %d: %w", tier, ErrTierLocked)
	}
	if !progression.IsLeagueUnlocked(league, c.state.Leagues) {
		return fmt.Errorf("league %d: %w", league, ErrLeagueLocked)
	}
	lg, _ := progression.LeagueByID(league)

	tables := progression.ActiveTables(tier, coins)
	questions := problemgen.NewSelector(c.rnd).Select(c.state.Facts, tables)
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	now := c.clock.Now()
	r := &race{
		id:        uuid.New(),
		tier:      tier,
		league:    lg,
		questions: questions,
		phase:     PhaseAwaiting,
		working:   c.state.Facts.Clone(),
		speed:     engine.NewSpeed(c.cfg.Speed),
		track:     engine.NewTrack(c.cfg.Track),
		champ:     engine.NewChampion(c.cfg.FinishTime(lg), c.cfg.Champion, c.rnd),
		startedAt: now,
	}
	c.race = r
	c.show(now)

	c.log.WithFields(logrus.Fields{
		"race":   r.id,
		"tier":   tier,
		"league": lg.ID,
		"tables": tables,
	}).Debug("race started")
	return nil
}

// show presents the question at the current index.
func (c *Controller) show(now time.Time) {
	r := c.race
	r.phase = PhaseAwaiting
	r.shownAt = now
	r.pausedFor = 0
	r.choices = problemgen.Choices(r.current(), c.rnd)
	r.champ.OnQuestion(r.index)
}

// SubmitAnswer scores value against the current question. It returns false
// and changes nothing unless the race is awaiting an answer and not paused.
func (c *Controller) SubmitAnswer(value int) bool {
	r := c.race
	if r == nil || r.phase != PhaseAwaiting || r.paused {
		return false
	}

	q := r.current()
	correct := value == q.Answer()
	now := c.clock.Now()
	rt := max(0, now.Sub(r.shownAt)-r.pausedFor)

	r.working.Record(q.A, q.B, correct, now)
	delta := r.speed.Answer(correct, rt)
	r.track.Advance(correct)

	if correct {
		r.correct++
		r.streak++
		r.bestStreak = max(r.bestStreak, r.streak)
	} else {
		r.wrong++
		r.streak = 0
		r.missed = append(r.missed, q.Label())
	}
	earned := rewards.CoinsForAnswer(correct, r.streak)
	r.coins += earned
	r.marks = append(r.marks, correct)

	r.last = &Answer{
		Question:     q,
		Chosen:       value,
		WasCorrect:   correct,
		Coins:        earned,
		ResponseTime: rt,
		SpeedDelta:   delta,
	}
	r.phase = PhaseFeedback
	r.feedback.Start(c.cfg.feedbackFor(correct))
	return true
}

// TogglePause flips the pause overlay. It returns false when no race is
// running.
func (c *Controller) TogglePause() bool {
	r := c.race
	if r == nil || !r.phase.Active() {
		return false
	}
	now := c.clock.Now()
	if !r.paused {
		r.paused = true
		r.pausedAt = now
		r.feedback.Pause()
		return true
	}
	r.paused = false
	if r.phase == PhaseAwaiting {
		r.pausedFor += now.Sub(r.pausedAt)
	}
	r.feedback.Resume()
	return true
}

// Tick integrates dt of wall time. The champion always advances; speed
// decay and the feedback countdown stop while paused.
func (c *Controller) Tick(dt time.Duration) {
	r := c.race
	if r == nil || !r.phase.Active() {
		return
	}
	dt = engine.ClampFrame(dt, c.cfg.MaxFrameDelta)

	r.champ.Tick(dt)
	if !r.paused {
		r.speed.Decay(dt)
	}
	if r.phase == PhaseFeedback && r.feedback.Advance(dt) {
		c.next()
	}
}

func (c *Controller) next() {
	r := c.race
	r.index++
	if r.index < len(r.questions) {
		c.show(c.clock.Now())
		return
	}
	r.index = len(r.questions) - 1
	r.phase = PhaseCompleted
	r.endedAt = c.clock.Now()
	r.track.Finish()
	r.result = buildResult(r)
}

// Abandon ends the race without committing. Further ticks do nothing.
func (c *Controller) Abandon() {
	r := c.race
	if r == nil || !r.phase.Active() {
		return
	}
	r.phase = PhaseAbandoned
	r.paused = false
	r.feedback.Stop()
	c.log.WithField("race", r.id).Debug("race abandoned")
}

// Commit applies a completed race to the persisted state and saves it.
// It is idempotent: later calls for the same race do nothing. The state
// is updated in memory even if saving fails.
func (c *Controller) Commit(ctx context.Context) error {
	r := c.race
	if r == nil || r.phase != PhaseCompleted {
		return ErrNotCompleted
	}
	if r.committed {
		return nil
	}
	r.committed = true
	res := r.result

	before := unlocksFor(c.state.Profile, c.state.Leagues)

	p := &c.state.Profile
	p.Coins += res.Total()
	p.TotalRaces++
	p.TotalCorrect += res.Correct
	p.TotalWrong += res.Wrong
	if res.Won {
		p.Wins++
		c.state.Leagues[res.League.ID]++
	} else {
		p.Losses++
	}
	c.state.Facts.Merge(r.working)

	res.setUnlocked(before, unlocksFor(c.state.Profile, c.state.Leagues))

	log := c.log.WithFields(logrus.Fields{
		"race":    res.ID,
		"league":  res.League.ID,
		"won":     res.Won,
		"correct": res.Correct,
		"coins":   res.Total(),
	})
	if err := c.repo.Commit(ctx, c.state, res.Record()); err != nil {
		log.WithError(err).Error("save race")
		return fmt.Errorf("commit race: %w", err)
	}
	log.Info("race completed")
	return nil
}

// Result returns the outcome of the completed race.
func (c *Controller) Result() (Result, bool) {
	if c.race == nil || c.race.result == nil {
		return Result{}, false
	}
	return *c.race.result, true
}

// Phase returns the race phase, PhaseIdle when no race was started.
func (c *Controller) Phase() Phase {
	if c.race == nil {
		return PhaseIdle
	}
	return c.race.phase
}

// Frame returns a snapshot of the race for rendering.
func (c *Controller) Frame() Frame {
	r := c.race
	if r == nil {
		return Frame{Phase: PhaseIdle}
	}
	f := Frame{
		Phase:             r.phase,
		Paused:            r.paused,
		Index:             r.index,
		Total:             len(r.questions),
		Question:          r.current(),
		Choices:           append([]int(nil), r.choices...),
		Marks:             append([]bool(nil), r.marks...),
		Speed:             r.speed.Value(),
		MaxSpeed:          c.cfg.Speed.Max,
		Band:              engine.BandFor(r.speed.Value()),
		RaceProgress:      r.track.Percent(),
		ChampProgress:     r.champ.Progress(),
		ChampFinished:     r.champ.Finished(),
		ChampBursting:     r.champ.Bursting(),
		Streak:            r.streak,
		Coins:             r.coins,
		Correct:           r.correct,
		Wrong:             r.wrong,
		FeedbackRemaining: r.feedback.Remaining(),
		Tier:              r.tier,
		League:            r.league,
	}
	if r.last != nil {
		last := *r.last
		f.Last = &last
	}
	return f
}
