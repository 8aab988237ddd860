package results

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/samber/lo"

	"github.com/abhisek/mathracers/internal/progression"
	"github.com/abhisek/mathracers/internal/router"
	"github.com/abhisek/mathracers/internal/screen"
	"github.com/abhisek/mathracers/internal/session"
	"github.com/abhisek/mathracers/internal/ui/components"
	"github.com/abhisek/mathracers/internal/ui/layout"
	"github.com/abhisek/mathracers/internal/ui/theme"
)

// Rematch creates a fresh race with the same setup.
type Rematch func() (screen.Screen, error)

// ResultsScreen displays the outcome of a completed race.
type ResultsScreen struct {
	res     session.Result
	saveErr error
	rematch Rematch
	menu    components.Menu
	notice  string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a new ResultsScreen. saveErr is shown when the race could
// not be saved; rematch may be nil.
func New(res session.Result, saveErr error, rematch Rematch) *ResultsScreen {
	s := &ResultsScreen{res: res, saveErr: saveErr, rematch: rematch}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "RACE AGAIN", Action: s.raceAgain, Disabled: rematch == nil},
		{Label: "GARAGE", Action: router.Pop},
	})
	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Race Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "R", Description: "Race again"},
		{Key: "Esc", Description: "Garage"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc", "q":
		return s, router.Pop()
	case "r":
		return s, s.raceAgain()
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ResultsScreen) raceAgain() tea.Cmd {
	if s.rematch == nil {
		return nil
	}
	next, err := s.rematch()
	if err != nil {
		s.notice = err.Error()
		return nil
	}
	return router.Replace(next)
}

func (s *ResultsScreen) View(width, height int) string {
	res := s.res
	cw := components.ContentWidth(width)

	var b strings.Builder
	center := func(str string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, str))
		b.WriteString("\n")
	}

	// Headline.
	headline := fmt.Sprintf("%s  %s", res.Grade.Icon(), res.Grade.DisplayName())
	center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(headline))

	outcome := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
		Render(fmt.Sprintf("You beat %s!", res.League.Champion.Name()))
	if !res.Won {
		outcome = lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
			Render(fmt.Sprintf("%s crossed the line first", res.League.Champion.Name()))
	}
	center(outcome)
	center(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s · %s", res.League.Name, formatDuration(res.Duration))))
	b.WriteString("\n")

	// Stats card.
	stats := fmt.Sprintf("Correct: %d/%d     Accuracy: %.0f%%     Best streak: %d",
		res.Correct, res.Questions(), res.Accuracy*100, res.BestStreak)
	coins := fmt.Sprintf("● %d coins", res.Coins)
	if res.Bonus > 0 {
		coins += fmt.Sprintf("  + %d accuracy bonus", res.Bonus)
	}
	card := lipgloss.NewStyle().Foreground(theme.Text).Render(stats) + "\n" +
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(coins)
	center(components.ArcadeCard(card, cw))

	champ := components.NewProgressBar(res.League.Champion.Name(), res.ChampProgress/100, true, cw)
	champ.Fill = theme.Hex(res.League.Champion.Color())
	center(champ.View())
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	// Unlocks.
	if unlocks := unlockLines(res); len(unlocks) > 0 {
		center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Unlocked"))
		center(divider)
		for _, line := range unlocks {
			center(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render(line))
		}
		b.WriteString("\n")
	}

	// Missed facts.
	if len(res.Missed) > 0 {
		center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Practice these"))
		center(divider)
		for _, label := range lo.Uniq(res.Missed) {
			center(lipgloss.NewStyle().Foreground(theme.Error).Render(label))
		}
		b.WriteString("\n")
	}

	if s.saveErr != nil {
		center(lipgloss.NewStyle().Foreground(theme.Accent).
			Render("⚠ This race could not be saved"))
	}
	if s.notice != "" {
		center(lipgloss.NewStyle().Foreground(theme.Accent).Render("⚠ " + s.notice))
	}

	b.WriteString("\n")
	center(s.menu.ButtonRow(18))

	return b.String()
}

// unlockLines describes everything the race unlocked.
func unlockLines(res session.Result) []string {
	var lines []string
	for _, t := range res.NewTiers {
		lines = append(lines, fmt.Sprintf("★ %s  %s", t.Name, t.Label()))
	}
	for _, l := range res.NewLeagues {
		lines = append(lines, fmt.Sprintf("★ %s  vs %s", l.Name, l.Champion.Name()))
	}
	lines = append(lines, lo.Map(res.NewCars, func(c progression.Car, _ int) string {
		return fmt.Sprintf("★ %s", c.Name())
	})...)
	return lines
}

func formatDuration(d time.Duration) string {
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
