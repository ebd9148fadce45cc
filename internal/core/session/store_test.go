package session

import (
	"testing"
	"time"

	"recipe-browser/internal/core/navigation"
	"recipe-browser/internal/core/recipe"
)

func newTestStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()
	s := NewStore(time.Minute, 0)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	t.Cleanup(s.Close)
	return s, &clock
}

func TestStoreCreatesAndReusesSessions(t *testing.T) {
	s, _ := newTestStore(t)

	a, created := s.Get("")
	if !created || a.ID == "" {
		t.Fatalf("expected new session, got %+v (%v)", a, created)
	}

	again, created := s.Get(a.ID)
	if created || again != a {
		t.Fatal("expected existing session to be returned")
	}

	b, created := s.Get("unknown-id")
	if !created || b.ID == a.ID || b.ID == "unknown-id" {
		t.Fatalf("unknown ids must get a fresh server-side id, got %q", b.ID)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", s.Len())
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s, _ := newTestStore(t)
	a, _ := s.Get("")
	b, _ := s.Get("")

	a.Do(func(nav *navigation.Controller, criteria *recipe.Criteria) {
		nav.SelectRecipe(recipe.Recipe{ID: "vegan-tacos"})
		*criteria = recipe.Criteria{Search: "tacos"}
	})

	stateA, criteriaA := a.Snapshot()
	stateB, criteriaB := b.Snapshot()
	if stateA.View != navigation.ViewDetail || criteriaA.Search != "tacos" {
		t.Fatalf("unexpected session a: %+v %+v", stateA, criteriaA)
	}
	if stateB.View != navigation.ViewList || !criteriaB.IsZero() {
		t.Fatalf("unexpected session b: %+v %+v", stateB, criteriaB)
	}
}

func TestStoreExpiry(t *testing.T) {
	s, clock := newTestStore(t)
	a, _ := s.Get("")
	b, _ := s.Get("")

	*clock = clock.Add(45 * time.Second)
	if _, created := s.Get(b.ID); created {
		t.Fatal("b should still be alive")
	}

	*clock = clock.Add(30 * time.Second)
	if n := s.Cleanup(); n != 1 {
		t.Fatalf("expected 1 idle session removed, got %d", n)
	}

	fresh, created := s.Get(a.ID)
	if !created || fresh.ID == a.ID {
		t.Fatal("expired session must not be reused")
	}
}
