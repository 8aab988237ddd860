package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathracers/internal/ui/theme"
)

// Lane renders one racer on a horizontal track:
//
//	YOU     ·····▶█▶·········│🏁
type Lane struct {
	Label   string
	Percent float64 // 0..100
	Color   color.Color
	Width   int

	// Flash highlights the label, used while the champion bursts.
	Flash bool
}

const laneLabelWidth = 14

// View renders the lane.
func (l Lane) View() string {
	labelStyle := lipgloss.NewStyle().
		Width(laneLabelWidth).
		Foreground(l.Color).
		Bold(true)
	if l.Flash {
		labelStyle = labelStyle.Background(theme.Error).Foreground(theme.Text)
	}

	track := l.Width - laneLabelWidth - 8
	if track < 10 {
		track = 10
	}
	car := "▶█▶"
	carWidth := lipgloss.Width(car)

	pos := cells(track-carWidth, l.Percent/100)
	before := strings.Repeat("·", pos)
	after := strings.Repeat("·", track-carWidth-pos)

	dots := lipgloss.NewStyle().Foreground(theme.Asphalt)
	body := dots.Render(before) +
		lipgloss.NewStyle().Foreground(l.Color).Bold(true).Render(car) +
		dots.Render(after)

	finish := lipgloss.NewStyle().Foreground(theme.Text).Render("│🏁")
	pct := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%3.0f%%", l.Percent))

	return labelStyle.Render(l.Label) + body + finish + " " + pct
}
