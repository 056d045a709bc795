// Package presence tracks which connection claims which display name, plus
// the process-wide set of users currently typing.
package presence

import (
	"sort"

	"github.com/google/uuid"
)

// Registry maps live connections to display names. Duplicate names across
// distinct connections are allowed; Resolve picks the connection that
// claimed the name most recently. The registry is owned by the hub
// goroutine and is not safe for concurrent use.
type Registry struct {
	names   map[uuid.UUID]string
	seq     map[uuid.UUID]uint64
	nextSeq uint64
	typing  map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		names:  make(map[uuid.UUID]string),
		seq:    make(map[uuid.UUID]uint64),
		typing: make(map[string]struct{}),
	}
}

// Set records or overwrites the display name for a connection. Re-setting
// also refreshes the connection's claim order, so the most recent Set wins
// resolution for that name.
func (r *Registry) Set(conn uuid.UUID, name string) {
	r.names[conn] = name
	r.nextSeq++
	r.seq[conn] = r.nextSeq
}

// Remove drops the mapping for a connection and reports the name it held.
func (r *Registry) Remove(conn uuid.UUID) (string, bool) {
	name, ok := r.names[conn]
	if !ok {
		return "", false
	}
	delete(r.names, conn)
	delete(r.seq, conn)
	return name, true
}

// Name returns the display name for a connection, if one has been set.
func (r *Registry) Name(conn uuid.UUID) (string, bool) {
	name, ok := r.names[conn]
	return name, ok
}

// Snapshot returns the current display names, sorted for stable output.
// Duplicate names appear once per connection claiming them.
func (r *Registry) Snapshot() []string {
	out := make([]string, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Resolve returns the connection that most recently claimed name. When two
// connections share a name, earlier claimants are shadowed until the most
// recent one disconnects.
func (r *Registry) Resolve(name string) (uuid.UUID, bool) {
	var (
		best    uuid.UUID
		bestSeq uint64
		found   bool
	)
	for conn, n := range r.names {
		if n != name {
			continue
		}
		if s := r.seq[conn]; !found || s > bestSeq {
			best, bestSeq, found = conn, s, true
		}
	}
	return best, found
}

// StartTyping marks a user as typing. Idempotent.
func (r *Registry) StartTyping(name string) {
	r.typing[name] = struct{}{}
}

// StopTyping clears a user's typing state. No-op if absent.
func (r *Registry) StopTyping(name string) {
	delete(r.typing, name)
}

// Typing returns the users currently typing, sorted.
func (r *Registry) Typing() []string {
	out := make([]string, 0, len(r.typing))
	for name := range r.typing {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
