// Package reaction stores per-message emoji reactions. Reactions are keyed
// by (conversation key, message position, symbol) and hold the set of users
// who reacted; the set never holds duplicates and entries are append-only.
//
// The conversation key is the room name for room messages. For private
// messages it is the recipient's display name, so both participants land on
// the same key regardless of which side reacted.
package reaction

import "sort"

// Store is owned by the hub goroutine; not safe for concurrent use.
type Store struct {
	// key -> message position -> symbol -> reacting users
	entries map[string]map[int]map[string]map[string]struct{}
}

func NewStore() *Store {
	return &Store{entries: make(map[string]map[int]map[string]map[string]struct{})}
}

// Add records that user reacted with symbol to the message at position idx
// under key. Reports whether the entry was new; a duplicate reaction by the
// same user is a no-op.
func (s *Store) Add(key string, idx int, symbol, user string) bool {
	positions, ok := s.entries[key]
	if !ok {
		positions = make(map[int]map[string]map[string]struct{})
		s.entries[key] = positions
	}
	symbols, ok := positions[idx]
	if !ok {
		symbols = make(map[string]map[string]struct{})
		positions[idx] = symbols
	}
	users, ok := symbols[symbol]
	if !ok {
		users = make(map[string]struct{})
		symbols[symbol] = users
	}
	if _, ok := users[user]; ok {
		return false
	}
	users[user] = struct{}{}
	return true
}

// Users returns who reacted with symbol at (key, idx), sorted.
func (s *Store) Users(key string, idx int, symbol string) []string {
	users := s.entries[key][idx][symbol]
	out := make([]string, 0, len(users))
	for user := range users {
		out = append(out, user)
	}
	sort.Strings(out)
	return out
}

// Reactions returns every symbol at (key, idx) with its sorted user list.
func (s *Store) Reactions(key string, idx int) map[string][]string {
	symbols := s.entries[key][idx]
	out := make(map[string][]string, len(symbols))
	for symbol := range symbols {
		out[symbol] = s.Users(key, idx, symbol)
	}
	return out
}
