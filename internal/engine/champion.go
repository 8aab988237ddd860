package engine

import "time"

// MaxFrameDelta is the default bound for one integration step.
const MaxFrameDelta = 100 * time.Millisecond

// ChampionConfig tunes the champion's bursts.
type ChampionConfig struct {
	BurstMin      float64
	BurstMax      float64
	BurstDuration time.Duration

	// GapMin and GapMax bound the number of questions between bursts.
	GapMin int
	GapMax int
}

// DefaultChampionConfig returns the reference tuning.
func DefaultChampionConfig() ChampionConfig {
	return ChampionConfig{
		BurstMin:      1.15,
		BurstMax:      1.25,
		BurstDuration: 1800 * time.Millisecond,
		GapMin:        1,
		GapMax:        3,
	}
}

// Champion is the opponent's progress. It advances at 100/finishTime percent
// per second, scaled by the burst multiplier, and ignores the pause state.
type Champion struct {
	cfg    ChampionConfig
	finish time.Duration
	rnd    Rand

	progress    float64
	finished    bool
	multiplier  float64
	burstLeft   time.Duration
	nextBurstAt int
	bursts      int
}

// NewChampion returns a champion at the start line.
func NewChampion(finish time.Duration, cfg ChampionConfig, rnd Rand) *Champion {
	c := &Champion{
		cfg:        cfg,
		finish:     finish,
		rnd:        rnd,
		multiplier: 1,
	}
	c.nextBurstAt = c.gap(0)
	return c
}

// Progress returns the champion's progress in [0, 100].
func (c *Champion) Progress() float64 { return c.progress }

// Finished reports whether the champion crossed the line. Once true it
// stays true.
func (c *Champion) Finished() bool { return c.finished }

// Multiplier returns the current burst multiplier (1 when not bursting).
func (c *Champion) Multiplier() float64 { return c.multiplier }

// Bursting reports whether a burst is active.
func (c *Champion) Bursting() bool { return c.burstLeft > 0 }

// Bursts returns the number of bursts triggered so far.
func (c *Champion) Bursts() int { return c.bursts }

// NextBurstAt returns the question index that triggers the next burst.
func (c *Champion) NextBurstAt() int { return c.nextBurstAt }

// Tick integrates dt of wall time.
func (c *Champion) Tick(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if c.finish <= 0 {
		c.cross()
	} else if !c.finished {
		rate := 100 / c.finish.Seconds()
		c.progress += rate * c.multiplier * dt.Seconds()
		if c.progress >= 100 {
			c.cross()
		}
	}

	if c.burstLeft > 0 {
		c.burstLeft -= dt
		if c.burstLeft <= 0 {
			c.burstLeft = 0
			c.multiplier = 1
		}
	}
}

// OnQuestion is called after each question transition with the new index.
// It starts a burst when index reaches the scheduled trigger and reports
// whether it did.
func (c *Champion) OnQuestion(index int) bool {
	if c.finished || index != c.nextBurstAt {
		return false
	}
	c.multiplier = Uniform(c.rnd, c.cfg.BurstMin, c.cfg.BurstMax)
	c.burstLeft = c.cfg.BurstDuration
	c.bursts++
	c.nextBurstAt = c.gap(index)
	return true
}

func (c *Champion) gap(from int) int {
	return from + max(1, IntBetween(c.rnd, c.cfg.GapMin, c.cfg.GapMax))
}

func (c *Champion) cross() {
	c.progress = 100
	c.finished = true
}
