package race

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathracers/internal/session"
	"github.com/abhisek/mathracers/internal/ui/components"
	"github.com/abhisek/mathracers/internal/ui/layout"
	"github.com/abhisek/mathracers/internal/ui/theme"
)

func (s *RaceScreen) View(width, height int) string {
	f := s.ctl.Frame()
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderStatus(f, cw))
	sections = append(sections, s.renderLanes(f, cw))
	sections = append(sections, components.Speedometer{
		Speed: f.Speed,
		Max:   f.MaxSpeed,
		Band:  string(f.Band),
		Width: cw,
	}.View())

	switch {
	case s.confirmQuit:
		sections = append(sections, renderOverlay("Leave this race?", "Y to leave · N to keep racing", cw))
	case f.Paused:
		sections = append(sections, renderOverlay("PAUSED", "press P to resume", cw))
	default:
		sections = append(sections, renderQuestion(f, cw))
		sections = append(sections, s.pad.View(cw))
		sections = append(sections, renderFeedback(f, cw))
	}

	sep := "\n\n"
	if layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		sep = "\n"
	}
	return components.CabinetFrame(strings.Join(sections, sep), width, height)
}

// renderStatus renders the league, question counter, dots, streak and coins.
func renderStatus(f session.Frame, cw int) string {
	league := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).
		Render(fmt.Sprintf("%s vs %s", f.League.Name, f.League.Champion.Name()))

	counter := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d", min(f.Index+1, f.Total), f.Total))

	right := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("🔥 %d   ● %d", f.Streak, f.Coins))

	top := league + "   " + counter
	gap := cw - lipgloss.Width(top) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return top + strings.Repeat(" ", gap) + right + "\n" +
		lipgloss.PlaceHorizontal(cw, lipgloss.Center, renderDots(f))
}

// renderDots renders one dot per question: green right, red wrong,
// highlighted current and dim pending.
func renderDots(f session.Frame) string {
	var b strings.Builder
	for i := 0; i < f.Total; i++ {
		var dot string
		switch {
		case i < len(f.Marks) && f.Marks[i]:
			dot = lipgloss.NewStyle().Foreground(theme.Success).Render("●")
		case i < len(f.Marks):
			dot = lipgloss.NewStyle().Foreground(theme.Error).Render("●")
		case i == f.Index:
			dot = lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render("◉")
		default:
			dot = lipgloss.NewStyle().Foreground(theme.Border).Render("○")
		}
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(dot)
	}
	return b.String()
}

func (s *RaceScreen) renderLanes(f session.Frame, cw int) string {
	you := components.Lane{
		Label:   "YOU",
		Percent: f.RaceProgress,
		Color:   theme.Hex(s.car.Color()),
		Width:   cw,
	}
	champ := components.Lane{
		Label:   strings.ToUpper(f.League.Champion.Name()),
		Percent: f.ChampProgress,
		Color:   theme.Hex(f.League.Champion.Color()),
		Width:   cw,
		Flash:   f.ChampBursting,
	}
	lanes := you.View() + "\n" + champ.View()
	if f.ChampBursting {
		lanes += "\n" + lipgloss.PlaceHorizontal(cw, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("⚡ NITRO BURST!"))
	}
	return lanes
}

func renderQuestion(f session.Frame, cw int) string {
	q := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(f.Question.Text() + " = ?")
	return components.ArcadeCard(q, cw)
}

// renderFeedback renders the outcome of the last answer while it is shown.
func renderFeedback(f session.Frame, cw int) string {
	if f.Phase != session.PhaseFeedback || f.Last == nil {
		return lipgloss.PlaceHorizontal(cw, lipgloss.Center, " ")
	}
	var line string
	if f.Last.WasCorrect {
		line = theme.Correct.Render(fmt.Sprintf("✓ Correct!  +%d ●  speed %+.1f", f.Last.Coins, f.Last.SpeedDelta))
	} else {
		line = theme.Incorrect.Render(fmt.Sprintf("✗ %s", f.Last.Question.Label()))
	}
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, line)
}

func renderOverlay(title, hint string, cw int) string {
	body := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(title) + "\n\n" +
		theme.Hint.Render(hint)
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeYellow).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(body)
}
