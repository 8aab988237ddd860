// Package race implements the race screen: a question with four answers,
// the player and champion lanes, and the speedometer.
package race

import (
	"context"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathracers/internal/progression"
	"github.com/abhisek/mathracers/internal/router"
	"github.com/abhisek/mathracers/internal/screen"
	"github.com/abhisek/mathracers/internal/screens/results"
	"github.com/abhisek/mathracers/internal/session"
	"github.com/abhisek/mathracers/internal/ui/components"
	"github.com/abhisek/mathracers/internal/ui/layout"
)

type keyMap struct {
	Answer  key.Binding
	Pause   key.Binding
	Quit    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

var keys = keyMap{
	Answer:  key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "Answer")),
	Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("P", "Pause")),
	Quit:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Quit race")),
	Confirm: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("Y", "Leave race")),
	Cancel:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("N", "Keep racing")),
}

// RaceScreen runs one race on a session.Controller.
type RaceScreen struct {
	ctx    context.Context
	ctl    *session.Controller
	tier   int
	league int
	car    progression.Car

	seq  int64
	last time.Time
	done bool

	pad      components.AnswerPad
	padIndex int

	confirmQuit   bool
	pausedForQuit bool
}

var _ screen.Screen = (*RaceScreen)(nil)
var _ screen.KeyHintProvider = (*RaceScreen)(nil)
var _ screen.Leaver = (*RaceScreen)(nil)
var _ screen.EscapeHandler = (*RaceScreen)(nil)

// New starts a race at tier and league and returns its screen.
func New(ctx context.Context, ctl *session.Controller, tier, league int) (*RaceScreen, error) {
	if err := ctl.StartRace(tier, league); err != nil {
		return nil, err
	}
	s := &RaceScreen{
		ctx:    ctx,
		ctl:    ctl,
		tier:   tier,
		league: league,
		car:    progression.Car(ctl.Selection().Car),
		seq:    screenSeq.Add(1),
	}
	s.resetPad(ctl.Frame())
	return s, nil
}

func (s *RaceScreen) Init() tea.Cmd {
	return frameCmd(s.seq)
}

func (s *RaceScreen) Title() string {
	return "Race"
}

func (s *RaceScreen) HandlesEscape() bool {
	return true
}

// OnLeave abandons the race when the screen is popped mid-race.
func (s *RaceScreen) OnLeave() {
	s.done = true
	s.ctl.Abandon()
}

func (s *RaceScreen) KeyHints() []layout.KeyHint {
	hint := func(b key.Binding) layout.KeyHint {
		return layout.KeyHint{Key: b.Help().Key, Description: b.Help().Desc}
	}
	if s.confirmQuit {
		return []layout.KeyHint{hint(keys.Confirm), hint(keys.Cancel)}
	}
	if s.ctl.Frame().Paused {
		return []layout.KeyHint{{Key: "P", Description: "Resume"}, hint(keys.Quit)}
	}
	return []layout.KeyHint{
		hint(keys.Answer),
		{Key: "←→ Enter", Description: "Pick"},
		hint(keys.Pause),
		hint(keys.Quit),
	}
}

func (s *RaceScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		return s.handleFrame(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *RaceScreen) handleFrame(msg frameMsg) (screen.Screen, tea.Cmd) {
	if msg.seq != s.seq || s.done {
		return s, nil
	}
	if !s.last.IsZero() {
		s.ctl.Tick(msg.at.Sub(s.last))
	}
	s.last = msg.at

	f := s.ctl.Frame()
	switch f.Phase {
	case session.PhaseCompleted:
		return s, s.finish()
	case session.PhaseAwaiting:
		if f.Index != s.padIndex {
			s.resetPad(f)
		}
	case session.PhaseAbandoned, session.PhaseIdle:
		s.done = true
		return s, nil
	}
	return s, frameCmd(s.seq)
}

// finish commits the race and swaps this screen for the results.
func (s *RaceScreen) finish() tea.Cmd {
	s.done = true
	err := s.ctl.Commit(s.ctx)
	res, _ := s.ctl.Result()

	ctx, ctl, tier, league := s.ctx, s.ctl, s.tier, s.league
	rematch := func() (screen.Screen, error) {
		return New(ctx, ctl, tier, league)
	}
	return router.Replace(results.New(res, err, rematch))
}

func (s *RaceScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.done {
		return s, nil
	}

	if s.confirmQuit {
		switch {
		case key.Matches(msg, keys.Confirm):
			s.confirmQuit = false
			return s, router.Pop()
		case key.Matches(msg, keys.Cancel):
			s.confirmQuit = false
			if s.pausedForQuit {
				s.ctl.TogglePause()
				s.pausedForQuit = false
			}
		}
		return s, nil
	}

	f := s.ctl.Frame()
	switch {
	case key.Matches(msg, keys.Quit):
		s.confirmQuit = true
		if !f.Paused {
			s.pausedForQuit = s.ctl.TogglePause()
		}
		return s, nil
	case key.Matches(msg, keys.Pause):
		s.ctl.TogglePause()
		return s, nil
	}

	if f.Phase != session.PhaseAwaiting || f.Paused {
		return s, nil
	}

	s.pad, _ = s.pad.Update(msg)
	v, ok := s.pad.Value()
	if !ok {
		return s, nil
	}
	if !s.ctl.SubmitAnswer(v) {
		s.resetPad(f)
		return s, nil
	}
	if last := s.ctl.Frame().Last; last != nil {
		s.pad.Reveal = true
		s.pad.Correct = last.Question.Answer()
	}
	return s, nil
}

func (s *RaceScreen) resetPad(f session.Frame) {
	s.pad = components.NewAnswerPad(f.Choices)
	s.padIndex = f.Index
}
