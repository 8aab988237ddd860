package progression

import (
	"time"

	"github.com/samber/lo"
)

// Champion is the AI opponent of a league.
type Champion int

const (
	ChampionRustyRex Champion = iota + 1
	ChampionDustyDash
	ChampionNitroNova
	ChampionBlazeBaron
	ChampionTurboTitan
)

// Name returns the display name of the champion.
func (c Champion) Name() string {
	switch c {
	case ChampionRustyRex:
		return "Rusty Rex"
	case ChampionDustyDash:
		return "Dusty Dash"
	case ChampionNitroNova:
		return "Nitro Nova"
	case ChampionBlazeBaron:
		return "Blaze Baron"
	case ChampionTurboTitan:
		return "Turbo Titan"
	default:
		return "Champion"
	}
}

// Color returns the champion's car color (hex).
func (c Champion) Color() string {
	switch c {
	case ChampionRustyRex:
		return "#8D6E63"
	case ChampionDustyDash:
		return "#BDBDBD"
	case ChampionNitroNova:
		return "#00B0FF"
	case ChampionBlazeBaron:
		return "#FF3D00"
	case ChampionTurboTitan:
		return "#E040FB"
	default:
		return "#FFFFFF"
	}
}

// League is an opponent-difficulty grouping.
type League struct {
	ID       int
	Name     string
	Champion Champion

	// RequiredWins is the number of wins needed in the previous league.
	RequiredWins int

	// FinishTime is how long the champion needs to cross the line.
	FinishTime time.Duration
}

// Leagues lists every league in unlock order. RequiredWins is
// non-decreasing and FinishTime strictly decreasing.
var Leagues = []League{
	{ID: 1, Name: "ROOKIE CUP", Champion: ChampionRustyRex, RequiredWins: 0, FinishTime: 120 * time.Second},
	{ID: 2, Name: "STREET SERIES", Champion: ChampionDustyDash, RequiredWins: 2, FinishTime: 95 * time.Second},
	{ID: 3, Name: "PRO CIRCUIT", Champion: ChampionNitroNova, RequiredWins: 3, FinishTime: 75 * time.Second},
	{ID: 4, Name: "MASTERS", Champion: ChampionBlazeBaron, RequiredWins: 4, FinishTime: 60 * time.Second},
	{ID: 5, Name: "GRAND PRIX", Champion: ChampionTurboTitan, RequiredWins: 5, FinishTime: 48 * time.Second},
}

// LeagueByID returns the league with the given ID.
func LeagueByID(id int) (League, bool) {
	return lo.Find(Leagues, func(l League) bool { return l.ID == id })
}

// UnlockedLeagues returns the IDs of unlocked leagues given wins per league.
// League 1 is always unlocked; league L is unlocked when L-1 is unlocked and
// has at least L's RequiredWins.
func UnlockedLeagues(wins map[int]int) []int {
	unlocked := []int{Leagues[0].ID}
	for i := 1; i < len(Leagues); i++ {
		prev := Leagues[i-1]
		if wins[prev.ID] < Leagues[i].RequiredWins {
			break
		}
		unlocked = append(unlocked, Leagues[i].ID)
	}
	return unlocked
}

// IsLeagueUnlocked reports whether league id is unlocked.
func IsLeagueUnlocked(id int, wins map[int]int) bool {
	return lo.Contains(UnlockedLeagues(wins), id)
}

// NewlyUnlocked returns the IDs in after that are not in before.
func NewlyUnlocked(before, after []int) []int {
	added, _ := lo.Difference(after, before)
	return added
}
