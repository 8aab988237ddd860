package home

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathracers/internal/progression"
	"github.com/abhisek/mathracers/internal/router"
	"github.com/abhisek/mathracers/internal/screen"
	"github.com/abhisek/mathracers/internal/screens/race"
	"github.com/abhisek/mathracers/internal/screens/stats"
	"github.com/abhisek/mathracers/internal/session"
	"github.com/abhisek/mathracers/internal/ui/components"
	"github.com/abhisek/mathracers/internal/ui/layout"
)

const (
	rowTier = iota
	rowLeague
	rowCar
	rowStart
	rowStats
	rowExit
)

type row struct {
	label  string
	value  string
	action bool
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Navigate")),
	Down:   key.NewBinding(key.WithKeys("down", "j", "tab")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←→", "Change")),
	Right:  key.NewBinding(key.WithKeys("right", "l")),
	Select: key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "Select")),
}

// HomeScreen is the garage: pick a gear, league and car, then race.
type HomeScreen struct {
	ctx    context.Context
	ctl    *session.Controller
	row    int
	notice string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(ctx context.Context, ctl *session.Controller) *HomeScreen {
	return &HomeScreen{
		ctx: ctx,
		ctl: ctl,
		row: rowStart,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Garage"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: keys.Up.Help().Key, Description: keys.Up.Help().Desc},
		{Key: keys.Left.Help().Key, Description: keys.Left.Help().Desc},
		{Key: keys.Select.Help().Key, Description: keys.Select.Help().Desc},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch {
	case key.Matches(kmsg, keys.Up):
		if h.row > 0 {
			h.row--
		}
	case key.Matches(kmsg, keys.Down):
		if h.row < rowExit {
			h.row++
		}
	case key.Matches(kmsg, keys.Left):
		h.cycle(-1)
	case key.Matches(kmsg, keys.Right):
		h.cycle(1)
	case key.Matches(kmsg, keys.Select):
		return h, h.activate()
	}
	return h, nil
}

// activate runs the action of the selected row.
func (h *HomeScreen) activate() tea.Cmd {
	switch h.row {
	case rowTier, rowLeague, rowCar:
		h.cycle(1)
		return nil
	case rowStart:
		sel := h.ctl.Selection()
		rs, err := race.New(h.ctx, h.ctl, sel.Tier, sel.League)
		if err != nil {
			h.notice = err.Error()
			return nil
		}
		h.notice = ""
		return router.Push(rs)
	case rowStats:
		return router.Push(stats.New(h.ctx, h.ctl))
	case rowExit:
		return tea.Quit
	}
	return nil
}

// cycle moves the selected option of a selector row through its unlocked
// values and saves the new selection.
func (h *HomeScreen) cycle(dir int) {
	sel := h.ctl.Selection()
	switch h.row {
	case rowTier:
		sel.Tier = step(h.ctl.UnlockedTiers(), sel.Tier, dir)
	case rowLeague:
		sel.League = step(h.ctl.UnlockedLeagues(), sel.League, dir)
	case rowCar:
		cars := make([]int, 0, len(progression.AllCars()))
		for _, c := range h.ctl.UnlockedCars() {
			cars = append(cars, int(c))
		}
		sel.Car = step(cars, sel.Car, dir)
	default:
		return
	}
	if err := h.ctl.SetSelection(h.ctx, sel); err != nil {
		h.notice = "could not save selection"
		return
	}
	h.notice = ""
}

// step returns the value dir positions after current in values, wrapping.
func step(values []int, current, dir int) int {
	if len(values) == 0 {
		return current
	}
	i := slices.Index(values, current)
	if i < 0 {
		return values[0]
	}
	n := len(values)
	return values[((i+dir)%n+n)%n]
}

func (h *HomeScreen) rows() []row {
	sel := h.ctl.Selection()
	tier, _ := progression.TierByID(sel.Tier)
	league, _ := progression.LeagueByID(sel.League)
	car := progression.Car(sel.Car)

	return []row{
		rowTier:   {label: "GEAR  ", value: fmt.Sprintf("%s  %s", tier.Name, tier.Label())},
		rowLeague: {label: "LEAGUE", value: fmt.Sprintf("%s vs %s", league.Name, league.Champion.Name())},
		rowCar:    {label: "CAR   ", value: car.Name()},
		rowStart:  {label: "START RACE", action: true},
		rowStats:  {label: "STATS", action: true},
		rowExit:   {label: "EXIT GAME", action: true},
	}
}

// nextUnlock describes the closest locked tier or car, if any.
func (h *HomeScreen) nextUnlock() string {
	coins := h.ctl.Profile().Coins
	for _, t := range progression.Tiers {
		if coins < t.UnlockCoins {
			return fmt.Sprintf("%s (%s) unlocks at %d coins", t.Name, t.Label(), t.UnlockCoins)
		}
	}
	for _, c := range progression.AllCars() {
		if coins < c.UnlockCoins() {
			return fmt.Sprintf("%s unlocks at %d coins", c.Name(), c.UnlockCoins())
		}
	}
	return "Everything unlocked!"
}

func (h *HomeScreen) pose() CarPose {
	hist := h.ctl.History(h.ctx)
	if len(hist) > 0 && hist[0].Won {
		return CarVictory
	}
	return CarParked
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 44 || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)
	p := h.ctl.Profile()

	var sections []string
	if height >= 20 {
		sections = append(sections, renderTitle(cw, compact))
	}

	if !compact {
		car := progression.Car(h.ctl.Selection().Car)
		sections = append(sections, renderCarBox(RenderCar(car, h.pose()), cw))
	}

	sections = append(sections, renderStatsBar(p.Coins, p.Wins, p.TotalRaces, p.Accuracy(), cw, compact))
	sections = append(sections, renderRows(h.rows(), h.row, cw, compact))

	if h.notice != "" {
		sections = append(sections, renderNotice(h.notice, cw))
	} else {
		sections = append(sections, renderHint(h.nextUnlock(), cw))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.CabinetFrame(strings.Join(sections, sep), width, height)
}
