package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/mathracers/internal/facts"
)

// Persistence keys.
const (
	KeyProfile   = "tmr_player"
	KeyFacts     = "tmr_facts"
	KeyLeagues   = "tmr_leagues"
	KeySelection = "tmr_selection"
	KeyHistory   = "tmr_history"
)

// AllKeys lists every key the game writes.
var AllKeys = []string{KeyProfile, KeyFacts, KeyLeagues, KeySelection, KeyHistory}

// HistoryLimit is the number of race records kept.
const HistoryLimit = 50

// Profile holds the player's lifetime totals.
type Profile struct {
	Coins        int `json:"coins"`
	TotalRaces   int `json:"totalRaces"`
	TotalCorrect int `json:"totalCorrect"`
	TotalWrong   int `json:"totalWrong"`
	Wins         int `json:"wins"`
	Losses       int `json:"losses"`
}

// Accuracy returns the lifetime accuracy (0.0-1.0), or 0 with no answers.
func (p Profile) Accuracy() float64 {
	total := p.TotalCorrect + p.TotalWrong
	if total == 0 {
		return 0
	}
	return float64(p.TotalCorrect) / float64(total)
}

func (p *Profile) normalize() {
	for _, v := range []*int{&p.Coins, &p.TotalRaces, &p.TotalCorrect, &p.TotalWrong, &p.Wins, &p.Losses} {
		*v = max(0, *v)
	}
}

// Selection is the last-used race setup.
type Selection struct {
	Tier   int `json:"tier"`
	League int `json:"league"`
	Car    int `json:"car"`
}

// DefaultSelection is used when nothing was saved.
func DefaultSelection() Selection {
	return Selection{Tier: 1, League: 1, Car: 1}
}

// RaceRecord is one completed race in the history.
type RaceRecord struct {
	ID         string    `json:"id"`
	FinishedAt time.Time `json:"finishedAt"`
	Tier       int       `json:"tier"`
	League     int       `json:"league"`
	Correct    int       `json:"correct"`
	Wrong      int       `json:"wrong"`
	Coins      int       `json:"coins"`
	Won        bool      `json:"won"`
	DurationMs int64     `json:"durationMs"`
}

// Accuracy returns the race accuracy (0.0-1.0).
func (r RaceRecord) Accuracy() float64 {
	total := r.Correct + r.Wrong
	if total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(total)
}

// State is everything a finished race commits.
type State struct {
	Profile Profile
	Facts   *facts.Store
	Leagues map[int]int
}

type factBlob struct {
	Bucket     int       `json:"b"`
	Correct    int       `json:"c"`
	Wrong      int       `json:"w"`
	LastSeenAt time.Time `json:"t,omitzero"`
}

// Repo reads and writes typed game state over a KV. Loads never fail: a
// missing or corrupt blob yields the default for that slice of state.
type Repo struct {
	kv  KV
	log logrus.FieldLogger
}

// NewRepo returns a Repo over kv.
func NewRepo(kv KV, log logrus.FieldLogger) *Repo {
	return &Repo{kv: kv, log: log}
}

// load decodes key into v. It reports whether v was filled.
func (r *Repo) load(ctx context.Context, key string, v any) bool {
	blob, err := r.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		r.log.WithError(err).WithField("key", key).Warn("load failed, using defaults")
		return false
	}
	if err := json.Unmarshal(blob, v); err != nil {
		r.log.WithError(err).WithField("key", key).Warn("corrupt blob, using defaults")
		return false
	}
	return true
}

// LoadProfile returns the saved profile or a zero profile.
func (r *Repo) LoadProfile(ctx context.Context) Profile {
	var p Profile
	if !r.load(ctx, KeyProfile, &p) {
		return Profile{}
	}
	p.normalize()
	return p
}

// LoadFacts returns the saved mastery store or an empty one. Entries with
// unparseable keys are dropped.
func (r *Repo) LoadFacts(ctx context.Context) *facts.Store {
	s := facts.NewStore()
	var raw map[string]factBlob
	if !r.load(ctx, KeyFacts, &raw) {
		return s
	}
	for k, b := range raw {
		key, err := facts.ParseKey(k)
		if err != nil {
			r.log.WithError(err).Warn("skipping fact")
			continue
		}
		s.Set(key, facts.Record{
			Bucket:       b.Bucket,
			CorrectCount: b.Correct,
			WrongCount:   b.Wrong,
			LastSeenAt:   b.LastSeenAt,
		})
	}
	return s
}

// LoadLeagues returns wins per league ID.
func (r *Repo) LoadLeagues(ctx context.Context) map[int]int {
	wins := map[int]int{}
	if !r.load(ctx, KeyLeagues, &wins) || wins == nil {
		return map[int]int{}
	}
	for id, n := range wins {
		if n < 0 {
			wins[id] = 0
		}
	}
	return wins
}

// LoadSelection returns the last-used setup. Missing fields keep their
// defaults.
func (r *Repo) LoadSelection(ctx context.Context) Selection {
	sel := DefaultSelection()
	if !r.load(ctx, KeySelection, &sel) {
		return DefaultSelection()
	}
	return sel
}

// LoadHistory returns saved races, oldest first.
func (r *Repo) LoadHistory(ctx context.Context) []RaceRecord {
	var h []RaceRecord
	if !r.load(ctx, KeyHistory, &h) {
		return nil
	}
	return h
}

// LoadState loads everything a race needs.
func (r *Repo) LoadState(ctx context.Context) State {
	return State{
		Profile: r.LoadProfile(ctx),
		Facts:   r.LoadFacts(ctx),
		Leagues: r.LoadLeagues(ctx),
	}
}

// SaveSelection stores the race setup.
func (r *Repo) SaveSelection(ctx context.Context, sel Selection) error {
	blob, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("marshal selection: %w", err)
	}
	return r.kv.Set(ctx, KeySelection, blob)
}

// Commit writes a race's results and appends rec to the history in one
// batch.
func (r *Repo) Commit(ctx context.Context, st State, rec RaceRecord) error {
	entries := map[string][]byte{}

	profile, err := json.Marshal(st.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	entries[KeyProfile] = profile

	raw := make(map[string]factBlob, st.Facts.Len())
	for k, fr := range st.Facts.All() {
		raw[k.String()] = factBlob{
			Bucket:     fr.Bucket,
			Correct:    fr.CorrectCount,
			Wrong:      fr.WrongCount,
			LastSeenAt: fr.LastSeenAt,
		}
	}
	if entries[KeyFacts], err = json.Marshal(raw); err != nil {
		return fmt.Errorf("marshal facts: %w", err)
	}

	if entries[KeyLeagues], err = json.Marshal(st.Leagues); err != nil {
		return fmt.Errorf("marshal leagues: %w", err)
	}

	history := append(r.LoadHistory(ctx), rec)
	if len(history) > HistoryLimit {
		history = history[len(history)-HistoryLimit:]
	}
	if entries[KeyHistory], err = json.Marshal(history); err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	if err := r.kv.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("commit race: %w", err)
	}
	return nil
}

// Reset deletes every key the game writes.
func (r *Repo) Reset(ctx context.Context) error {
	for _, k := range AllKeys {
		if err := r.kv.Delete(ctx, k); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	return nil
}
