package engine

// TrackConfig tunes the player's race progress.
type TrackConfig struct {
	// Steps is the number of questions in a race.
	Steps int

	// WrongFraction is the share of a step a wrong answer still advances.
	WrongFraction float64

	// Cap bounds progress (percent) until the race is finished.
	Cap float64
}

// DefaultTrackConfig returns the reference tuning.
func DefaultTrackConfig() TrackConfig {
	return TrackConfig{Steps: 12, WrongFraction: 0.25, Cap: 95}
}

// Track is the player's race progress in percent.
type Track struct {
	cfg      TrackConfig
	percent  float64
	finished bool
}

// NewTrack returns a track at the start line.
func NewTrack(cfg TrackConfig) *Track {
	return &Track{cfg: cfg}
}

// Percent returns the progress in [0, 100].
func (t *Track) Percent() float64 {
	return t.percent
}

// Advance moves the car forward for one answer.
func (t *Track) Advance(correct bool) {
	if t.finished || t.cfg.Steps <= 0 {
		return
	}
	step := 100 / float64(t.cfg.Steps)
	if !correct {
		step *= t.cfg.WrongFraction
	}
	t.percent = min(t.cfg.Cap, t.percent+step)
}

// Finish snaps progress to 100.
func (t *Track) Finish() {
	t.finished = true
	t.percent = 100
}
