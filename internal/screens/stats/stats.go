package stats

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathracers/internal/dashboard"
	"github.com/abhisek/mathracers/internal/router"
	"github.com/abhisek/mathracers/internal/screen"
	"github.com/abhisek/mathracers/internal/session"
	"github.com/abhisek/mathracers/internal/ui/layout"
	"github.com/abhisek/mathracers/internal/ui/theme"
)

const (
	tabOverview = iota
	tabTables
	tabWeakest
	tabHistory
)

var tabNames = []string{"OVERVIEW", "BY TABLE", "WEAKEST", "HISTORY"}

// weakLimit caps the WEAKEST tab.
const weakLimit = 15

type keyMap struct {
	Prev key.Binding
	Next key.Binding
	Back key.Binding
}

var keys = keyMap{
	Prev: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←→", "Tabs")),
	Next: key.NewBinding(key.WithKeys("right", "l", "tab")),
	Back: key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("Esc", "Back")),
}

// StatsScreen shows lifetime progress in tabs.
type StatsScreen struct {
	summary dashboard.Summary
	tab     int
	vp      viewport.Model
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a StatsScreen from the controller's persisted state.
func New(ctx context.Context, ctl *session.Controller) *StatsScreen {
	return newWithSummary(dashboard.Build(ctl.Profile(), ctl.Facts(), ctl.LeagueWins(), ctl.History(ctx)))
}

func newWithSummary(sum dashboard.Summary) *StatsScreen {
	return &StatsScreen{
		summary: sum,
		vp:      viewport.New(),
	}
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: keys.Prev.Help().Key, Description: keys.Prev.Help().Desc},
		{Key: "↑↓", Description: "Scroll"},
		{Key: keys.Back.Help().Key, Description: keys.Back.Help().Desc},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(kmsg, keys.Back):
		return s, router.Pop()
	case key.Matches(kmsg, keys.Prev):
		s.moveTab(-1)
		return s, nil
	case key.Matches(kmsg, keys.Next):
		s.moveTab(1)
		return s, nil
	}
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd
}

func (s *StatsScreen) moveTab(delta int) {
	n := len(tabNames)
	s.tab = ((s.tab+delta)%n + n) % n
	s.vp.GotoTop()
}

func (s *StatsScreen) View(width, height int) string {
	tabs := renderTabs(s.tab)
	tabsHeight := lipgloss.Height(tabs) + 1

	s.vp.SetWidth(width)
	s.vp.SetHeight(max(1, height-tabsHeight))
	s.vp.SetContent(s.renderTab(width))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, tabs) + "\n\n" + s.vp.View()
}

func (s *StatsScreen) renderTab(width int) string {
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}
	empty := func(msg string) string {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(msg))
	}

	switch s.tab {
	case tabTables:
		return center(dashboard.RenderTable(dashboard.TableHeaders, s.summary.TableRows()))
	case tabWeakest:
		rows := s.summary.WeakRows(weakLimit)
		if len(rows) == 0 {
			return empty("No missed facts yet. Keep racing!")
		}
		return center(dashboard.RenderTable(dashboard.WeakHeaders, rows))
	case tabHistory:
		rows := s.summary.HistoryRows(0)
		if len(rows) == 0 {
			return empty("No races yet. Start your engine!")
		}
		return center(dashboard.RenderTable(dashboard.HistoryHeaders, rows))
	default:
		return center(renderOverview(s.summary))
	}
}

func renderOverview(sum dashboard.Summary) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(12)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	lines := make([]string, 0, 8)
	for _, kv := range sum.Totals() {
		lines = append(lines, label.Render(kv[0])+value.Render(kv[1]))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 3).
		Render(strings.Join(lines, "\n"))
}

func renderTabs(active int) string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		style := lipgloss.NewStyle().Padding(0, 2).Foreground(theme.TextDim)
		if i == active {
			style = style.Foreground(theme.BgDark).Background(theme.ArcadeYellow).Bold(true)
		}
		parts = append(parts, style.Render(name))
	}
	return strings.Join(parts, " ")
}
