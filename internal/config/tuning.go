package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/abhisek/mathracers/internal/engine"
	"github.com/abhisek/mathracers/internal/progression"
	"github.com/abhisek/mathracers/internal/session"
)

// Tuning is the TOML-facing race tuning. Durations are in seconds.
type Tuning struct {
	Speed    SpeedTuning    `toml:"speed"`
	Champion ChampionTuning `toml:"champion"`
	Feedback FeedbackTuning `toml:"feedback"`
	Track    TrackTuning    `toml:"track"`
}

// SpeedTuning maps the player speed engine.
type SpeedTuning struct {
	Min            float64 `toml:"min"`
	Max            float64 `toml:"max"`
	Start          float64 `toml:"start"`
	DecayPerSecond float64 `toml:"decay_per_second"`

	// BoostUnderSeconds[i] is the response-time bound for BoostAmounts[i].
	BoostUnderSeconds []float64 `toml:"boost_under_seconds"`
	BoostAmounts      []float64 `toml:"boost_amounts"`

	Consolation float64 `toml:"consolation"`
	Penalty     float64 `toml:"penalty"`
}

// ChampionTuning maps the opponent engine.
type ChampionTuning struct {
	// FinishSeconds[i] is the finish time of league i+1.
	FinishSeconds   []float64 `toml:"finish_seconds"`
	BurstMin        float64   `toml:"burst_min"`
	BurstMax        float64   `toml:"burst_max"`
	BurstSeconds    float64   `toml:"burst_seconds"`
	GapMin          int       `toml:"gap_min"`
	GapMax          int       `toml:"gap_max"`
	MaxFrameSeconds float64   `toml:"max_frame_seconds"`
}

// FeedbackTuning maps the feedback display times.
type FeedbackTuning struct {
	CorrectSeconds float64 `toml:"correct_seconds"`
	WrongSeconds   float64 `toml:"wrong_seconds"`
}

// TrackTuning maps the race progress.
type TrackTuning struct {
	ProgressCap       float64 `toml:"progress_cap"`
	WrongStepFraction float64 `toml:"wrong_step_fraction"`
}

// Default returns the tuning matching session.DefaultConfig.
func Default() Tuning {
	return FromSession(session.DefaultConfig())
}

// FromSession converts a session config to its file form.
func FromSession(c session.Config) Tuning {
	t := Tuning{
		Speed: SpeedTuning{
			Min:            c.Speed.Min,
			Max:            c.Speed.Max,
			Start:          c.Speed.Start,
			DecayPerSecond: c.Speed.DecayPerSecond,
			Consolation:    c.Speed.Consolation,
			Penalty:        c.Speed.Penalty,
		},
		Champion: ChampionTuning{
			BurstMin:        c.Champion.BurstMin,
			BurstMax:        c.Champion.BurstMax,
			BurstSeconds:    c.Champion.BurstDuration.Seconds(),
			GapMin:          c.Champion.GapMin,
			GapMax:          c.Champion.GapMax,
			MaxFrameSeconds: c.MaxFrameDelta.Seconds(),
		},
		Feedback: FeedbackTuning{
			CorrectSeconds: c.FeedbackCorrect.Seconds(),
			WrongSeconds:   c.FeedbackWrong.Seconds(),
		},
		Track: TrackTuning{
			ProgressCap:       c.Track.Cap,
			WrongStepFraction: c.Track.WrongFraction,
		},
	}
	for _, b := range c.Speed.Boosts {
		t.Speed.BoostUnderSeconds = append(t.Speed.BoostUnderSeconds, b.Under.Seconds())
		t.Speed.BoostAmounts = append(t.Speed.BoostAmounts, b.Amount)
	}
	for _, l := range progression.Leagues {
		t.Champion.FinishSeconds = append(t.Champion.FinishSeconds, c.FinishTime(l).Seconds())
	}
	return t
}

// Session converts the tuning to a session config. Call Validate first.
func (t Tuning) Session() session.Config {
	c := session.DefaultConfig()
	c.Speed = engine.SpeedConfig{
		Min:            t.Speed.Min,
		Max:            t.Speed.Max,
		Start:          t.Speed.Start,
		DecayPerSecond: t.Speed.DecayPerSecond,
		Consolation:    t.Speed.Consolation,
		Penalty:        t.Speed.Penalty,
	}
	for i, under := range t.Speed.BoostUnderSeconds {
		c.Speed.Boosts = append(c.Speed.Boosts, engine.Boost{
			Under:  seconds(under),
			Amount: t.Speed.BoostAmounts[i],
		})
	}
	c.Champion = engine.ChampionConfig{
		BurstMin:      t.Champion.BurstMin,
		BurstMax:      t.Champion.BurstMax,
		BurstDuration: seconds(t.Champion.BurstSeconds),
		GapMin:        t.Champion.GapMin,
		GapMax:        t.Champion.GapMax,
	}
	for i, s := range t.Champion.FinishSeconds {
		c.FinishTimes[progression.Leagues[i].ID] = seconds(s)
	}
	c.MaxFrameDelta = seconds(t.Champion.MaxFrameSeconds)
	c.FeedbackCorrect = seconds(t.Feedback.CorrectSeconds)
	c.FeedbackWrong = seconds(t.Feedback.WrongSeconds)
	c.Track.Cap = t.Track.ProgressCap
	c.Track.WrongFraction = t.Track.WrongStepFraction
	return c
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Validate rejects inconsistent tuning.
func (t Tuning) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	s := t.Speed
	check(s.Min < s.Max, "speed.min (%v) must be below speed.max (%v)", s.Min, s.Max)
	check(s.Start >= s.Min && s.Start <= s.Max, "speed.start (%v) must be within [min, max]", s.Start)
	check(s.DecayPerSecond >= 0, "speed.decay_per_second must not be negative")
	check(s.Penalty >= 0, "speed.penalty must not be negative")
	check(s.Consolation >= 0, "speed.consolation must not be negative")
	check(len(s.BoostUnderSeconds) > 0, "speed.boost_under_seconds must not be empty")
	check(len(s.BoostUnderSeconds) == len(s.BoostAmounts),
		"speed.boost_under_seconds and speed.boost_amounts must have the same length")
	for i := 1; i < len(s.BoostUnderSeconds); i++ {
		check(s.BoostUnderSeconds[i] > s.BoostUnderSeconds[i-1], "speed.boost_under_seconds must be increasing")
	}

	c := t.Champion
	check(len(c.FinishSeconds) == len(progression.Leagues),
		"champion.finish_seconds needs %d entries, got %d", len(progression.Leagues), len(c.FinishSeconds))
	for i, f := range c.FinishSeconds {
		check(f > 0, "champion.finish_seconds[%d] must be positive", i)
		if i > 0 {
			check(f < c.FinishSeconds[i-1], "champion.finish_seconds must be strictly decreasing")
		}
	}
	check(c.BurstMin >= 1 && c.BurstMin <= c.BurstMax, "champion burst range [%v, %v] is invalid", c.BurstMin, c.BurstMax)
	check(c.BurstSeconds >= 0, "champion.burst_seconds must not be negative")
	check(c.GapMin >= 1 && c.GapMin <= c.GapMax, "champion gap range [%d, %d] is invalid", c.GapMin, c.GapMax)
	check(c.MaxFrameSeconds > 0, "champion.max_frame_seconds must be positive")

	check(t.Feedback.CorrectSeconds >= 0 && t.Feedback.WrongSeconds >= 0, "feedback durations must not be negative")
	check(t.Track.ProgressCap > 0 && t.Track.ProgressCap <= 100, "track.progress_cap must be in (0, 100]")
	check(t.Track.WrongStepFraction >= 0 && t.Track.WrongStepFraction <= 1, "track.wrong_step_fraction must be in [0, 1]")

	return errors.Join(errs...)
}

// Load reads the tuning at path over the defaults. A missing file yields
// the defaults.
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, fmt.Errorf("failed to stat config: %w", err)
	}
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return Default(), fmt.Errorf("failed to decode config: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return t, nil
}

// Encode writes t as TOML.
func (t Tuning) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(t)
}
