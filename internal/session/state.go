package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathracers/internal/engine"
	"github.com/abhisek/mathracers/internal/facts"
	"github.com/abhisek/mathracers/internal/problemgen"
	"github.com/abhisek/mathracers/internal/progression"
)

// Phase is the state of the race state machine.
type Phase int

const (
	PhaseIdle      Phase = iota // No race started
	PhaseAwaiting               // Waiting for an answer
	PhaseFeedback               // Showing the outcome of the last answer
	PhaseCompleted              // All questions answered
	PhaseAbandoned              // Left mid-race, nothing is committed
)

var phaseNames = map[Phase]string{
	PhaseIdle:      "idle",
	PhaseAwaiting:  "awaiting",
	PhaseFeedback:  "feedback",
	PhaseCompleted: "completed",
	PhaseAbandoned: "abandoned",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// Active reports whether the race is still running.
func (p Phase) Active() bool {
	return p == PhaseAwaiting || p == PhaseFeedback
}

// Answer describes one submitted answer.
type Answer struct {
	Question     problemgen.Question
	Chosen       int
	WasCorrect   bool
	Coins        int
	ResponseTime time.Duration
	SpeedDelta   float64
}

// Frame is the observable race state handed to the presentation layer.
type Frame struct {
	Phase  Phase
	Paused bool

	Index    int
	Total    int
	Question problemgen.Question
	Choices  []int

	// Marks holds the outcome of each answered question in order.
	Marks []bool

	Speed         float64
	MaxSpeed      float64
	Band          engine.SpeedBand
	RaceProgress  float64
	ChampProgress float64
	ChampFinished bool
	ChampBursting bool

	Streak  int
	Coins   int
	Correct int
	Wrong   int

	FeedbackRemaining time.Duration
	Last              *Answer

	Tier   int
	League progression.League
}

// race is the ephemeral state of one race. It is owned by the Controller.
type race struct {
	id     uuid.UUID
	tier   int
	league progression.League

	questions []problemgen.Question
	choices   []int
	index     int
	phase     Phase
	marks     []bool

	working *facts.Store

	correct    int
	wrong      int
	coins      int
	streak     int
	bestStreak int
	missed     []string

	speed *engine.Speed
	track *engine.Track
	champ *engine.Champion

	feedback Countdown
	last     *Answer

	paused    bool
	pausedAt  time.Time
	pausedFor time.Duration
	shownAt   time.Time
	startedAt time.Time
	endedAt   time.Time

	result    *Result
	committed bool
}

func (r *race) current() problemgen.Question {
	return r.questions[r.index]
}
