package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathracers/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int

	// Fill defaults to theme.Secondary.
	Fill color.Color
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := cells(barWidth, p.Percent)
	empty := barWidth - filled

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}

	filledStr := lipgloss.NewStyle().
		Background(fill).
		Render(strings.Repeat(" ", filled))

	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	result += filledStr + emptyStr

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

// cells converts a 0..1 fraction to a clamped number of filled cells.
func cells(width int, fraction float64) int {
	n := int(float64(width) * fraction)
	if n > width {
		return width
	}
	if n < 0 {
		return 0
	}
	return n
}

// Speedometer renders the speed gauge: a segmented bar that shifts from
// green to red as speed approaches max, followed by the band label.
type Speedometer struct {
	Speed float64
	Max   float64
	Band  string
	Width int
}

// View renders the speedometer.
func (s Speedometer) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render("SPEED ")
	band := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf(" %4.1f  %s", s.Speed, s.Band))

	segments := s.Width - lipgloss.Width(label) - 18
	if segments < 5 {
		segments = 5
	}

	fraction := 0.0
	if s.Max > 0 {
		fraction = s.Speed / s.Max
	}
	lit := cells(segments, fraction)

	var b strings.Builder
	for i := 0; i < segments; i++ {
		if i >= lit {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("▱"))
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(segmentColor(i, segments)).Render("▰"))
	}
	return label + b.String() + band
}

func segmentColor(i, n int) color.Color {
	switch f := float64(i) / float64(n); {
	case f < 0.4:
		return theme.Success
	case f < 0.7:
		return theme.ArcadeYellow
	case f < 0.9:
		return theme.Accent
	default:
		return theme.Error
	}
}
