package facts

import (
	"maps"
	"time"
)

// Store maps facts to their learning records. Records are created lazily on
// the first attempt and never deleted. The zero value is not usable; use
// NewStore.
type Store struct {
	records map[Key]Record
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{records: make(map[Key]Record)}
}

// BucketOf returns the bucket for (a, b), or 0 if the fact is unseen.
func (s *Store) BucketOf(a, b int) int {
	return s.records[KeyOf(a, b)].Bucket
}

// Get returns the record for (a, b) and whether it exists.
func (s *Store) Get(a, b int) (Record, bool) {
	r, ok := s.records[KeyOf(a, b)]
	return r, ok
}

// Record applies one attempt at (a, b) and returns the updated record.
// A correct answer raises the bucket by one (capped at MaxBucket); a wrong
// answer resets it to 0.
func (s *Store) Record(a, b int, correct bool, now time.Time) Record {
	k := KeyOf(a, b)
	r := s.records[k].apply(correct, now)
	s.records[k] = r
	return r
}

// Set stores r under k, clamping the bucket and counts into range.
// Used when loading persisted data.
func (s *Store) Set(k Key, r Record) {
	r.Bucket = max(0, min(MaxBucket, r.Bucket))
	r.CorrectCount = max(0, r.CorrectCount)
	r.WrongCount = max(0, r.WrongCount)
	s.records[k] = r
}

// Len returns the number of facts seen.
func (s *Store) Len() int {
	return len(s.records)
}

// All returns a copy of every record.
func (s *Store) All() map[Key]Record {
	return maps.Clone(s.records)
}

// Clone returns an independent copy of the store.
func (s *Store) Clone() *Store {
	return &Store{records: maps.Clone(s.records)}
}

// Merge copies every record from other into s, replacing existing entries.
func (s *Store) Merge(other *Store) {
	maps.Copy(s.records, other.records)
}
