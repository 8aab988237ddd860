// Package progression defines unlockable content: tiers of multiplication
// tables, car skins, and opponent leagues. Every unlock is a pure function of
// accumulated coins or league wins.
package progression

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// BaseTable is always part of every race.
const BaseTable = 1

// Tier is a content-unlock grouping of multiplication tables.
type Tier struct {
	ID          int
	Name        string
	Tables      []int
	UnlockCoins int
}

// Label renders the tier tables, e.g. "×2, ×5, ×10".
func (t Tier) Label() string {
	parts := lo.Map(t.Tables, func(n int, _ int) string { return fmt.Sprintf("×%d", n) })
	return strings.Join(parts, ", ")
}

// Tiers lists every tier in unlock order.
var Tiers = []Tier{
	{ID: 1, Name: "GEAR 1", Tables: []int{2, 5, 10}, UnlockCoins: 0},
	{ID: 2, Name: "GEAR 2", Tables: []int{3, 4}, UnlockCoins: 20},
	{ID: 3, Name: "GEAR 3", Tables: []int{6, 9}, UnlockCoins: 50},
	{ID: 4, Name: "GEAR 4", Tables: []int{7, 8}, UnlockCoins: 90},
	{ID: 5, Name: "GEAR 5", Tables: []int{11, 12}, UnlockCoins: 140},
}

// TierByID returns the tier with the given ID.
func TierByID(id int) (Tier, bool) {
	return lo.Find(Tiers, func(t Tier) bool { return t.ID == id })
}

// UnlockedTiers returns the IDs of tiers unlocked with the given coin balance.
// Tier 1 is always unlocked.
func UnlockedTiers(coins int) []int {
	return lo.FilterMap(Tiers, func(t Tier, _ int) (int, bool) {
		return t.ID, coins >= t.UnlockCoins
	})
}

// IsTierUnlocked reports whether tier id is unlocked with the given coins.
func IsTierUnlocked(id, coins int) bool {
	return slices.Contains(UnlockedTiers(coins), id)
}

// ActiveTables returns the tables used for a race at the chosen tier: the
// base table plus the tables of every unlocked tier at or below chosen,
// sorted ascending without duplicates.
func ActiveTables(chosen, coins int) []int {
	tables := []int{BaseTable}
	for _, t := range Tiers {
		if t.ID <= chosen && coins >= t.UnlockCoins {
			tables = append(tables, t.Tables...)
		}
	}
	tables = lo.Uniq(tables)
	slices.Sort(tables)
	return tables
}

// AllTables returns every table of every tier plus the base table.
func AllTables() []int {
	return ActiveTables(Tiers[len(Tiers)-1].ID, Tiers[len(Tiers)-1].UnlockCoins)
}
