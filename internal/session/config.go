package session

import (
	"time"

	"github.com/abhisek/mathracers/internal/engine"
	"github.com/abhisek/mathracers/internal/progression"
)

// Config holds the numeric tuning of a race.
type Config struct {
	Speed    engine.SpeedConfig
	Track    engine.TrackConfig
	Champion engine.ChampionConfig

	// FinishTimes overrides the champion's finish time per league ID.
	FinishTimes map[int]time.Duration

	FeedbackCorrect time.Duration
	FeedbackWrong   time.Duration

	// MaxFrameDelta bounds the dt applied by one Tick.
	MaxFrameDelta time.Duration
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	finish := make(map[int]time.Duration, len(progression.Leagues))
	for _, l := range progression.Leagues {
		finish[l.ID] = l.FinishTime
	}
	return Config{
		Speed:           engine.DefaultSpeedConfig(),
		Track:           engine.DefaultTrackConfig(),
		Champion:        engine.DefaultChampionConfig(),
		FinishTimes:     finish,
		FeedbackCorrect: 550 * time.Millisecond,
		FeedbackWrong:   1500 * time.Millisecond,
		MaxFrameDelta:   engine.MaxFrameDelta,
	}
}

// FinishTime returns the champion finish time for league.
func (c Config) FinishTime(league progression.League) time.Duration {
	if d, ok := c.FinishTimes[league.ID]; ok {
		return d
	}
	return league.FinishTime
}

func (c Config) feedbackFor(correct bool) time.Duration {
	if correct {
		return c.FeedbackCorrect
	}
	return c.FeedbackWrong
}
