package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathracers/internal/ui/components"
	"github.com/abhisek/mathracers/internal/ui/theme"
)

const arcadeTitleFull = `█▀▄▀█ ▄▀█ ▀█▀ █ █   █▀█ ▄▀█ █▀▀ █▀▀ █▀█ █▀
█ ▀ █ █▀█  █  █▀█   █▀▄ █▀█ █▄▄ ██▄ █▀▄ ▄█`

const arcadeTitleCompact = "M · A · T · H   R · A · C · E · R · S"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders coins, wins and accuracy in a bordered box
// matching content width.
func renderStatsBar(coins, wins, races int, accuracy float64, cw int, compact bool) string {
	coinStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	winStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	accStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	acc := dimStyle.Render("—")
	if races > 0 {
		acc = accStyle.Render(fmt.Sprintf("%.0f%%", accuracy*100))
	}

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			coinStyle.Render(fmt.Sprintf("●%d", coins)),
			winStyle.Render(fmt.Sprintf("🏆%d/%d", wins, races)),
			acc,
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			coinStyle.Render(fmt.Sprintf("● %d COINS", coins)),
			winStyle.Render(fmt.Sprintf("🏆 %d WINS / %d RACES", wins, races)),
			acc+dimStyle.Render(" ACCURACY"),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// selectorWidth is the fixed width for GEAR/LEAGUE/CAR rows.
const selectorWidth = 52

// renderRows renders the selector rows followed by the menu buttons.
func renderRows(rows []row, selected int, cw int, compact bool) string {
	var lines []string
	for i, r := range rows {
		if r.action {
			if compact {
				lines = append(lines, renderCompactButton(r.label, i == selected))
				continue
			}
			lines = append(lines, components.ArcadeButton(r.label, i == selected, buttonWidth))
			continue
		}
		lines = append(lines, components.ArcadeSelector(r.label, r.value, i == selected, selectorWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderCompactButton renders a button as a single line for small terminals.
func renderCompactButton(label string, selected bool) string {
	if selected {
		return lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Bold(true).
			Render(" ▸ " + label + " ")
	}
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Render("   " + label)
}

// renderHint renders a dim one-line note under the menu.
func renderHint(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderNotice renders a warning line, used when a race could not start.
func renderNotice(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + text)
}

// renderCarBox renders the selected car centered at content width.
func renderCarBox(art string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(art)
}
