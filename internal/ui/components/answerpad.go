package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathracers/internal/ui/theme"
)

// AnswerPad is a row of numbered answer buttons. Answers are picked with
// the number keys, or moved to with the arrows and confirmed with Enter.
type AnswerPad struct {
	Choices   []int
	Selected  int
	Submitted bool
	Chosen    int

	// Set to reveal the outcome of a submitted answer.
	Reveal  bool
	Correct int
}

// NewAnswerPad creates an answer pad for the given choices.
func NewAnswerPad(choices []int) AnswerPad {
	return AnswerPad{
		Choices: choices,
		Chosen:  -1,
	}
}

// Update handles keyboard selection. After a submit the pad ignores input.
func (p AnswerPad) Update(msg tea.Msg) (AnswerPad, tea.Cmd) {
	if p.Submitted || len(p.Choices) == 0 {
		return p, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch k := kmsg.String(); k {
	case "left", "h", "up", "k":
		if p.Selected > 0 {
			p.Selected--
		}
	case "right", "l", "down", "j":
		if p.Selected < len(p.Choices)-1 {
			p.Selected++
		}
	case "enter", "space":
		p.submit(p.Selected)
	default:
		if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= len(p.Choices) {
			p.Selected = n - 1
			p.submit(n - 1)
		}
	}

	return p, nil
}

func (p *AnswerPad) submit(i int) {
	p.Submitted = true
	p.Chosen = i
}

// Value returns the chosen answer, and false if nothing was submitted.
func (p AnswerPad) Value() (int, bool) {
	if !p.Submitted || p.Chosen < 0 || p.Chosen >= len(p.Choices) {
		return 0, false
	}
	return p.Choices[p.Chosen], true
}

// View renders the pad as a row of buttons.
func (p AnswerPad) View(width int) string {
	if len(p.Choices) == 0 {
		return ""
	}
	bw := (width - 2*len(p.Choices)) / len(p.Choices)
	if bw < 8 {
		bw = 8
	}

	buttons := make([]string, 0, len(p.Choices))
	for i, c := range p.Choices {
		style := lipgloss.NewStyle().
			Width(bw).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Foreground(theme.Text).
			Margin(0, 1)

		switch {
		case p.Reveal && c == p.Correct:
			style = style.BorderForeground(theme.Success).Foreground(theme.Success).Bold(true)
		case p.Reveal && i == p.Chosen:
			style = style.BorderForeground(theme.Error).Foreground(theme.Error).Bold(true)
		case p.Reveal:
			style = style.Foreground(theme.TextDim)
		case i == p.Selected:
			style = style.BorderForeground(theme.ArcadeYellow).Foreground(theme.ArcadeYellow).Bold(true)
		}

		key := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%d", i+1))
		buttons = append(buttons, style.Render(key+"  "+strconv.Itoa(c)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}
