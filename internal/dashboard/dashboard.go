// Package dashboard aggregates lifetime progress for the stats screen and
// the stats command.
package dashboard

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/samber/lo"

	"github.com/abhisek/mathracers/internal/facts"
	"github.com/abhisek/mathracers/internal/progression"
	"github.com/abhisek/mathracers/internal/store"
	"github.com/abhisek/mathracers/internal/ui/theme"
)

// Summary is a read-only view of the player's progress.
type Summary struct {
	Profile store.Profile
	Tables  []facts.TableStats
	Weak    []facts.WeakFact
	History []store.RaceRecord
	Leagues map[int]int

	// MasteredFacts counts distinct mastered facts; 3×4 and 4×3 are one fact.
	MasteredFacts int
}

// Build aggregates the profile, mastery store, league wins and history.
// Stats cover every table of every tier, locked or not.
func Build(p store.Profile, fs *facts.Store, wins map[int]int, history []store.RaceRecord) Summary {
	if fs == nil {
		fs = facts.NewStore()
	}
	tables := progression.AllTables()
	return Summary{
		Profile: p,
		Tables:  lo.Map(tables, func(t int, _ int) facts.TableStats { return fs.StatsForTable(t) }),
		Weak:    fs.WeakFacts(tables),
		History: history,
		Leagues: wins,

		MasteredFacts: lo.CountBy(lo.Values(fs.All()), facts.Record.Mastered),
	}
}

// Totals renders the lifetime totals as label/value pairs.
func (s Summary) Totals() [][]string {
	p := s.Profile
	acc := "—"
	if p.TotalCorrect+p.TotalWrong > 0 {
		acc = percent(p.Accuracy())
	}
	return [][]string{
		{"Coins", fmt.Sprint(p.Coins)},
		{"Races", fmt.Sprint(p.TotalRaces)},
		{"Wins", fmt.Sprintf("%d (%d lost)", p.Wins, p.Losses)},
		{"Answers", fmt.Sprintf("%d correct, %d wrong", p.TotalCorrect, p.TotalWrong)},
		{"Accuracy", acc},
		{"Mastered", fmt.Sprintf("%d facts", s.MasteredFacts)},
		{"Leagues", fmt.Sprintf("%d of %d unlocked", len(progression.UnlockedLeagues(s.Leagues)), len(progression.Leagues))},
	}
}

// TableHeaders are the column names of TableRows.
var TableHeaders = []string{"TABLE", "CORRECT", "WRONG", "MASTERED", "ACCURACY"}

// TableRows renders one row per multiplication table.
func (s Summary) TableRows() [][]string {
	return lo.Map(s.Tables, func(t facts.TableStats, _ int) []string {
		acc := "—"
		if a, ok := t.Accuracy(); ok {
			acc = percent(a)
		}
		return []string{
			fmt.Sprintf("×%d", t.Table),
			fmt.Sprint(t.Correct),
			fmt.Sprint(t.Wrong),
			fmt.Sprintf("%d/%d", t.Mastered, facts.FactsPerTable),
			acc,
		}
	})
}

// WeakHeaders are the column names of WeakRows.
var WeakHeaders = []string{"FACT", "CORRECT", "WRONG", "ACCURACY"}

// WeakRows renders up to limit weakest facts; limit <= 0 means all.
func (s Summary) WeakRows(limit int) [][]string {
	weak := s.Weak
	if limit > 0 && len(weak) > limit {
		weak = weak[:limit]
	}
	return lo.Map(weak, func(w facts.WeakFact, _ int) []string {
		return []string{
			w.Label(),
			fmt.Sprint(w.Record.CorrectCount),
			fmt.Sprint(w.Record.WrongCount),
			percent(w.Record.Accuracy()),
		}
	})
}

// HistoryHeaders are the column names of HistoryRows.
var HistoryHeaders = []string{"DATE", "LEAGUE", "RESULT", "SCORE", "COINS", "TIME"}

// HistoryRows renders up to limit races, newest first; limit <= 0 means all.
func (s Summary) HistoryRows(limit int) [][]string {
	hist := s.History
	if limit > 0 && len(hist) > limit {
		hist = hist[:limit]
	}
	return lo.Map(hist, func(r store.RaceRecord, _ int) []string {
		league := fmt.Sprintf("League %d", r.League)
		if l, ok := progression.LeagueByID(r.League); ok {
			league = l.Name
		}
		result := "lost"
		if r.Won {
			result = "won"
		}
		d := time.Duration(r.DurationMs) * time.Millisecond
		return []string{
			r.FinishedAt.Local().Format("Jan 02 15:04"),
			league,
			result,
			fmt.Sprintf("%d/%d", r.Correct, r.Correct+r.Wrong),
			fmt.Sprint(r.Coins),
			fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60),
		}
	})
}

// RenderTable renders rows as a bordered table.
func RenderTable(headers []string, rows [][]string) string {
	header := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}

func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}
