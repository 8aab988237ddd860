// Package engine holds the continuous-time simulations that drive a race:
// the player's speed, the player's track progress, and the champion's
// progress.
package engine

import "time"

// Boost is one step of the correct-answer boost table: answers faster than
// Under earn Amount.
type Boost struct {
	Under  time.Duration
	Amount float64
}

// SpeedConfig tunes the player speed engine.
type SpeedConfig struct {
	Min   float64
	Max   float64
	Start float64

	// DecayPerSecond is subtracted from speed per second of unpaused time.
	DecayPerSecond float64

	// Boosts must be sorted by ascending Under.
	Boosts []Boost

	// Consolation is the boost for correct answers slower than every step.
	Consolation float64

	// Penalty is subtracted on a wrong answer.
	Penalty float64
}

// DefaultSpeedConfig returns the reference tuning.
func DefaultSpeedConfig() SpeedConfig {
	return SpeedConfig{
		Min:            1,
		Max:            10,
		Start:          2,
		DecayPerSecond: 1 / 1.5,
		Boosts: []Boost{
			{Under: 1500 * time.Millisecond, Amount: 3.0},
			{Under: 3 * time.Second, Amount: 2.0},
			{Under: 5 * time.Second, Amount: 1.0},
		},
		Consolation: 0.3,
		Penalty:     2.5,
	}
}

// BoostFor returns the boost earned by a correct answer after responseTime.
func (c SpeedConfig) BoostFor(responseTime time.Duration) float64 {
	for _, b := range c.Boosts {
		if responseTime < b.Under {
			return b.Amount
		}
	}
	return c.Consolation
}

// Speed is the player's speed scalar, always within [Min, Max].
type Speed struct {
	cfg   SpeedConfig
	value float64
}

// NewSpeed returns a speed engine at the configured start value.
func NewSpeed(cfg SpeedConfig) *Speed {
	s := &Speed{cfg: cfg}
	s.Reset()
	return s
}

// Value returns the current speed.
func (s *Speed) Value() float64 {
	return s.value
}

// Reset returns the speed to its start value.
func (s *Speed) Reset() {
	s.value = s.clamp(s.cfg.Start)
}

// Decay applies the continuous decay for dt of unpaused time.
func (s *Speed) Decay(dt time.Duration) {
	if dt <= 0 {
		return
	}
	s.value = s.clamp(s.value - s.cfg.DecayPerSecond*dt.Seconds())
}

// Answer applies the discrete change for one answer and returns the change
// that was requested before clamping.
func (s *Speed) Answer(correct bool, responseTime time.Duration) float64 {
	delta := -s.cfg.Penalty
	if correct {
		delta = s.cfg.BoostFor(responseTime)
	}
	s.value = s.clamp(s.value + delta)
	return delta
}

func (s *Speed) clamp(v float64) float64 {
	return max(s.cfg.Min, min(s.cfg.Max, v))
}

// SpeedBand labels a speed for the speedometer.
type SpeedBand string

const (
	BandSlow     SpeedBand = "SLOW"
	BandCruising SpeedBand = "CRUISING"
	BandFast     SpeedBand = "FAST!"
	BandTurbo    SpeedBand = "TURBO!"
	BandMax      SpeedBand = "MAX SPEED!"
)

// BandFor returns the band for a speed value.
func BandFor(speed float64) SpeedBand {
	switch {
	case speed <= 2:
		return BandSlow
	case speed <= 4:
		return BandCruising
	case speed <= 6:
		return BandFast
	case speed <= 8:
		return BandTurbo
	default:
		return BandMax
	}
}
