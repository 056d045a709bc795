package room

import (
	"slices"
	"testing"

	"github.com/google/uuid"
)

func TestDefaultRoom(t *testing.T) {
	d := NewDirectory()
	if got := d.List(); !slices.Equal(got, []string{DefaultRoom}) {
		t.Errorf("List() = %v, want [%s]", got, DefaultRoom)
	}
	if created := d.EnsureExists(DefaultRoom); created {
		t.Error("EnsureExists(General) should be a no-op on a fresh directory")
	}
}

func TestEnsureExistsAppendOnly(t *testing.T) {
	d := NewDirectory()

	if created := d.EnsureExists("go"); !created {
		t.Error("EnsureExists(go) should create on first call")
	}
	if created := d.EnsureExists("go"); created {
		t.Error("EnsureExists(go) should be idempotent")
	}
	d.EnsureExists("rust")

	want := []string{DefaultRoom, "go", "rust"}
	if got := d.List(); !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestMembershipExclusive(t *testing.T) {
	d := NewDirectory()
	conn := uuid.New()

	prev := d.Join(conn, DefaultRoom)
	if prev != "" {
		t.Errorf("first Join() returned prev %q, want empty", prev)
	}

	prev = d.Join(conn, "go")
	if prev != DefaultRoom {
		t.Errorf("Join() returned prev %q, want %q", prev, DefaultRoom)
	}

	// The connection must appear in exactly one member set.
	for _, name := range d.List() {
		members := d.Members(name)
		in := slices.Contains(members, conn)
		if name == "go" && !in {
			t.Errorf("connection missing from %q member set", name)
		}
		if name != "go" && in {
			t.Errorf("connection leaked into %q member set", name)
		}
	}

	if cur, ok := d.Current(conn); !ok || cur != "go" {
		t.Errorf("Current() = (%q, %v), want (go, true)", cur, ok)
	}
}

func TestLeaveKeepsRoom(t *testing.T) {
	d := NewDirectory()
	conn := uuid.New()

	d.Join(conn, "go")
	d.Leave(conn)

	if _, ok := d.Current(conn); ok {
		t.Error("Current() should report false after Leave()")
	}
	if got := d.Members("go"); len(got) != 0 {
		t.Errorf("Members(go) = %v, want empty", got)
	}
	// Rooms persist even when empty.
	if got := d.List(); !slices.Contains(got, "go") {
		t.Errorf("List() = %v, should still contain go", got)
	}

	// Leave on a connection that never joined is a no-op.
	d.Leave(uuid.New())
}
