package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathracers/internal/logging"
	"github.com/abhisek/mathracers/internal/progression"
	"github.com/abhisek/mathracers/internal/router"
	"github.com/abhisek/mathracers/internal/screens/race"
	"github.com/abhisek/mathracers/internal/screens/stats"
	"github.com/abhisek/mathracers/internal/session"
	"github.com/abhisek/mathracers/internal/store"
)

func newTestHome(t *testing.T, profile string) (*HomeScreen, *store.MemoryKV) {
	t.Helper()
	kv := store.NewMemoryKV()
	if profile != "" {
		require.NoError(t, kv.Set(context.Background(), store.KeyProfile, []byte(profile)))
	}
	repo := store.NewRepo(kv, logging.Discard())
	ctl := session.NewController(context.Background(), repo, session.DefaultConfig())
	return New(context.Background(), ctl), kv
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func press(h *HomeScreen, keys ...rune) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = h.Update(specialKey(k))
	}
	return cmd
}

func TestHomeStartsOnStartRace(t *testing.T) {
	h, _ := newTestHome(t, "")
	assert.Equal(t, rowStart, h.row)
	assert.Equal(t, "Garage", h.Title())
}

func TestStepWraps(t *testing.T) {
	tests := []struct {
		values       []int
		current, dir int
		want         int
	}{
		{[]int{1, 2, 3}, 1, 1, 2},
		{[]int{1, 2, 3}, 3, 1, 1},
		{[]int{1, 2, 3}, 1, -1, 3},
		{[]int{1}, 1, 1, 1},
		{[]int{1, 2}, 9, 1, 1}, // unknown current resets
		{nil, 4, 1, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, step(tt.values, tt.current, tt.dir), "step(%v, %d, %d)", tt.values, tt.current, tt.dir)
	}
}

func TestCycleOnlyUnlockedTiers(t *testing.T) {
	h, _ := newTestHome(t, `{"coins":60}`)

	press(h, tea.KeyUp, tea.KeyUp, tea.KeyUp) // GEAR row
	require.Equal(t, rowTier, h.row)

	press(h, tea.KeyRight)
	assert.Equal(t, 2, h.ctl.Selection().Tier)
	press(h, tea.KeyRight)
	assert.Equal(t, 3, h.ctl.Selection().Tier)
	press(h, tea.KeyRight) // GEAR 4 needs 90 coins
	assert.Equal(t, 1, h.ctl.Selection().Tier)
	press(h, tea.KeyLeft)
	assert.Equal(t, 3, h.ctl.Selection().Tier)
}

func TestSelectionIsSaved(t *testing.T) {
	h, kv := newTestHome(t, `{"coins":40}`)

	press(h, tea.KeyUp) // CAR row
	press(h, tea.KeyRight)

	assert.Equal(t, int(progression.CarBlueBolt), h.ctl.Selection().Car)
	blob, ok := kv.Snapshot()[store.KeySelection]
	require.True(t, ok)
	assert.Contains(t, string(blob), `"car":2`)
}

func TestLockedLeaguesStayLocked(t *testing.T) {
	h, _ := newTestHome(t, "")

	press(h, tea.KeyUp, tea.KeyUp) // LEAGUE row
	press(h, tea.KeyRight)

	assert.Equal(t, 1, h.ctl.Selection().League)
}

func TestStartRacePushesRace(t *testing.T) {
	h, _ := newTestHome(t, "")

	cmd := press(h, tea.KeyEnter)
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = msg.Screen.(*race.RaceScreen)
	assert.True(t, ok)
	assert.Equal(t, session.PhaseAwaiting, h.ctl.Phase())
}

func TestStatsPushesStats(t *testing.T) {
	h, _ := newTestHome(t, "")

	cmd := press(h, tea.KeyDown, tea.KeyEnter)
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = msg.Screen.(*stats.StatsScreen)
	assert.True(t, ok)
}

func TestExitQuits(t *testing.T) {
	h, _ := newTestHome(t, "")

	cmd := press(h, tea.KeyDown, tea.KeyDown, tea.KeyEnter)
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestViewShowsSetup(t *testing.T) {
	h, _ := newTestHome(t, `{"coins":25}`)
	view := h.View(120, 50)

	for _, want := range []string{"GEAR 1", "ROOKIE CUP", "Rusty Rex", "Red Rocket", "START RACE", "25 COINS", "GEAR 3 (×6, ×9) unlocks at 50 coins"} {
		assert.True(t, strings.Contains(view, want), "view missing %q", want)
	}
}

func TestRenderCarVictoryAddsFlag(t *testing.T) {
	parked := RenderCar(progression.CarRedRocket)
	victory := RenderCar(progression.CarRedRocket, CarVictory)
	assert.Greater(t, strings.Count(victory, "\n"), strings.Count(parked, "\n"))
}
