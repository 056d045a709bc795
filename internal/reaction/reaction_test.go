package reaction

import (
	"slices"
	"testing"
)

func TestAddIdempotent(t *testing.T) {
	s := NewStore()

	if added := s.Add("General", 0, "👍", "alice"); !added {
		t.Error("first Add() should report a new entry")
	}
	if added := s.Add("General", 0, "👍", "alice"); added {
		t.Error("duplicate Add() should be a no-op")
	}

	if got := s.Users("General", 0, "👍"); !slices.Equal(got, []string{"alice"}) {
		t.Errorf("Users() = %v, want exactly one alice entry", got)
	}
}

func TestDistinctUsersAccumulate(t *testing.T) {
	s := NewStore()
	s.Add("General", 0, "👍", "bob")
	s.Add("General", 0, "👍", "alice")

	if got := s.Users("General", 0, "👍"); !slices.Equal(got, []string{"alice", "bob"}) {
		t.Errorf("Users() = %v, want [alice bob]", got)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	s := NewStore()
	s.Add("General", 0, "👍", "alice")
	s.Add("General", 1, "👍", "alice") // different position
	s.Add("go", 0, "👍", "alice")      // different key
	s.Add("General", 0, "🎉", "alice") // different symbol

	for _, tc := range []struct {
		key    string
		idx    int
		symbol string
	}{
		{"General", 0, "👍"},
		{"General", 1, "👍"},
		{"go", 0, "👍"},
		{"General", 0, "🎉"},
	} {
		if got := s.Users(tc.key, tc.idx, tc.symbol); !slices.Equal(got, []string{"alice"}) {
			t.Errorf("Users(%q, %d, %q) = %v, want [alice]", tc.key, tc.idx, tc.symbol, got)
		}
	}
}

func TestReactionsSnapshot(t *testing.T) {
	s := NewStore()
	s.Add("General", 2, "👍", "alice")
	s.Add("General", 2, "👍", "bob")
	s.Add("General", 2, "🎉", "bob")

	got := s.Reactions("General", 2)
	if len(got) != 2 {
		t.Fatalf("Reactions() returned %d symbols, want 2", len(got))
	}
	if !slices.Equal(got["👍"], []string{"alice", "bob"}) {
		t.Errorf("Reactions()[👍] = %v, want [alice bob]", got["👍"])
	}
	if !slices.Equal(got["🎉"], []string{"bob"}) {
		t.Errorf("Reactions()[🎉] = %v, want [bob]", got["🎉"])
	}

	if got := s.Reactions("ghost", 0); len(got) != 0 {
		t.Errorf("Reactions() on unknown key = %v, want empty", got)
	}
}
