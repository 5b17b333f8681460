// Package history records classification results per requester.
package history

import (
	"sync"
	"time"
)

// TimeLayout formats entry times as day/month hour:minute.
const TimeLayout = "02/01 15:04"

// Entry is one recorded result.
type Entry struct {
	Time  time.Time `json:"time"`
	Label string    `json:"label"`
}

// String renders the entry as "dd/mm HH:MM | label".
func (e Entry) String() string {
	return e.Time.Format(TimeLayout) + " | " + e.Label
}

// Store keeps result history keyed by requester id.
type Store interface {
	Append(requester string, e Entry)
	// List returns the requester's entries, oldest first.
	List(requester string) []Entry
	Last(requester string) (Entry, bool)
}

// MemoryStore is an in-process Store. When limit is positive only the newest
// limit entries per requester are kept.
//
// MemoryStore is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	limit   int
	entries map[string][]Entry
}

// NewMemoryStore creates a store keeping at most limit entries per requester.
// A limit of zero or less keeps everything.
func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{
		limit:   limit,
		entries: make(map[string][]Entry),
	}
}

// Append records e for requester, dropping the oldest entries once the
// store's limit is exceeded.
func (s *MemoryStore) Append(requester string, e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := append(s.entries[requester], e)
	if s.limit > 0 && len(list) > s.limit {
		list = append([]Entry(nil), list[len(list)-s.limit:]...)
	}
	s.entries[requester] = list
}

// List returns a copy of requester's entries, oldest first, or nil if there
// are none.
func (s *MemoryStore) List(requester string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.entries[requester]
	if len(list) == 0 {
		return nil
	}
	out := make([]Entry, len(list))
	copy(out, list)
	return out
}

// Last returns requester's most recent entry. The bool is false when the
// requester has no history.
func (s *MemoryStore) Last(requester string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.entries[requester]
	if len(list) == 0 {
		return Entry{}, false
	}
	return list[len(list)-1], true
}
