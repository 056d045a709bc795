// Package history keeps a per-room, time-ordered message log bounded by a
// sliding retention window. Expired entries are purged lazily on every read
// and write; there is no background sweep.
package history

import (
	"time"

	"github.com/Brian-Masheti/chathub/internal/model"
)

// RetentionWindow is how long room messages are served after they arrive.
const RetentionWindow = 7 * 24 * time.Hour

// Store holds room histories. Owned by the hub goroutine; not safe for
// concurrent use.
type Store struct {
	window time.Duration
	rooms  map[string][]model.Message
	now    func() time.Time
}

func NewStore(window time.Duration) *Store {
	return &Store{
		window: window,
		rooms:  make(map[string][]model.Message),
		now:    time.Now,
	}
}

// Append purges expired entries for the room, then appends msg. The message
// keeps the timestamp already stamped on it; expiry is always judged
// against the clock at operation time.
func (s *Store) Append(room string, msg model.Message) {
	s.purge(room)
	s.rooms[room] = append(s.rooms[room], msg)
}

// Read purges expired entries and returns the remaining messages, oldest
// first. The returned slice is a copy; callers may hold it across later
// store mutations.
func (s *Store) Read(room string) []model.Message {
	s.purge(room)
	entries := s.rooms[room]
	out := make([]model.Message, len(entries))
	copy(out, entries)
	return out
}

// Len reports the retained entry count without copying.
func (s *Store) Len(room string) int {
	s.purge(room)
	return len(s.rooms[room])
}

func (s *Store) purge(room string) {
	entries, ok := s.rooms[room]
	if !ok {
		return
	}
	// Clients may stamp their own timestamps, so the log is append-ordered
	// but not necessarily timestamp-ordered. Filter the whole list.
	cutoff := s.now().Add(-s.window)
	kept := entries[:0]
	for _, msg := range entries {
		if msg.Timestamp.After(cutoff) {
			kept = append(kept, msg)
		}
	}
	s.rooms[room] = kept
}
