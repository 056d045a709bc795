// Package room owns the global room list and room membership. Membership is
// exclusive: a connection belongs to at most one room, and joining a new
// room implicitly leaves the previous one.
package room

import "github.com/google/uuid"

// DefaultRoom exists before any client connects and is never removed.
const DefaultRoom = "General"

// Directory maps room names to member sets. The room list is append-only:
// rooms persist even when their member set drains. Owned by the hub
// goroutine; not safe for concurrent use.
type Directory struct {
	list    []string
	members map[string]map[uuid.UUID]struct{}
	current map[uuid.UUID]string
}

func NewDirectory() *Directory {
	d := &Directory{
		members: make(map[string]map[uuid.UUID]struct{}),
		current: make(map[uuid.UUID]string),
	}
	d.EnsureExists(DefaultRoom)
	return d
}

// EnsureExists appends the room to the global list if it is new. Reports
// whether the room was created by this call.
func (d *Directory) EnsureExists(name string) bool {
	if _, ok := d.members[name]; ok {
		return false
	}
	d.list = append(d.list, name)
	d.members[name] = make(map[uuid.UUID]struct{})
	return true
}

// Join moves a connection into a room, leaving its previous room if it had
// one. The room is created on first reference. Returns the previous room
// name, empty if the connection had never joined.
func (d *Directory) Join(conn uuid.UUID, name string) (prev string) {
	prev = d.current[conn]
	if prev != "" {
		delete(d.members[prev], conn)
	}
	d.EnsureExists(name)
	d.members[name][conn] = struct{}{}
	d.current[conn] = name
	return prev
}

// Leave removes the connection from its current room. The room itself is
// never deleted, even when empty.
func (d *Directory) Leave(conn uuid.UUID) {
	if cur, ok := d.current[conn]; ok {
		delete(d.members[cur], conn)
		delete(d.current, conn)
	}
}

// Current returns the room the connection is presently joined to.
func (d *Directory) Current(conn uuid.UUID) (string, bool) {
	name, ok := d.current[conn]
	return name, ok
}

// Members returns the connections currently joined to a room.
func (d *Directory) Members(name string) []uuid.UUID {
	set := d.members[name]
	out := make([]uuid.UUID, 0, len(set))
	for conn := range set {
		out = append(out, conn)
	}
	return out
}

// List returns the global room list in creation order.
func (d *Directory) List() []string {
	out := make([]string, len(d.list))
	copy(out, d.list)
	return out
}
