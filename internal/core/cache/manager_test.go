package cache

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"recipe-browser/internal/infrastructure/config"
	"recipe-browser/internal/pkg/common"
)

func newTestManager(t *testing.T, maxSize int) (*Manager, *time.Time) {
	t.Helper()
	cfg := &config.Config{Cache: config.CacheConfig{
		Enabled: true,
		MaxSize: maxSize,
		TTL:     time.Minute,
	}}
	m := NewManager(cfg)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }
	t.Cleanup(func() { _ = m.Close() })
	return m, &clock
}

func TestManagerGetSet(t *testing.T) {
	m, _ := newTestManager(t, 10)
	ctx := context.Background()

	if _, ok := m.Get(ctx, "tacos|"); ok {
		t.Fatal("expected miss on empty cache")
	}

	ids := []string{"vegan-tacos", "chicken-tacos"}
	if err := m.Set(ctx, "tacos|", ids); err != nil {
		t.Fatalf("set: %v", err)
	}
	ids[0] = "mutated"

	got, ok := m.Get(ctx, "tacos|")
	if !ok {
		t.Fatal("expected hit")
	}
	if !slices.Equal(got, []string{"vegan-tacos", "chicken-tacos"}) {
		t.Fatalf("unexpected ids: %v", got)
	}

	stats := m.Stats()
	if stats["hits"].(int64) != 1 || stats["misses"].(int64) != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}
}

func TestManagerEmptyResultIsCached(t *testing.T) {
	m, _ := newTestManager(t, 10)
	ctx := context.Background()

	if err := m.Set(ctx, "nothing|", []string{}); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok := m.Get(ctx, "nothing|")
	if !ok || len(got) != 0 {
		t.Fatalf("expected cached empty result, got %v (%v)", got, ok)
	}
}

func TestManagerExpiry(t *testing.T) {
	m, clock := newTestManager(t, 10)
	ctx := context.Background()

	_ = m.Set(ctx, "k", []string{"a"})
	*clock = clock.Add(2 * time.Minute)

	if _, ok := m.Get(ctx, "k"); ok {
		t.Fatal("expected expired entry to miss")
	}
	if m.Len() != 0 {
		t.Fatalf("expired entry should be removed, size=%d", m.Len())
	}
}

func TestManagerEvictsLeastUsed(t *testing.T) {
	m, clock := newTestManager(t, 2)
	ctx := context.Background()

	_ = m.Set(ctx, "a", []string{"1"})
	*clock = clock.Add(time.Second)
	_ = m.Set(ctx, "b", []string{"2"})
	if _, ok := m.Get(ctx, "a"); !ok {
		t.Fatal("expected hit on a")
	}

	// b 從未被讀取，應被淘汰
	if err := m.Set(ctx, "c", []string{"3"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := m.Get(ctx, "b"); ok {
		t.Fatal("expected b to be evicted")
	}
	if _, ok := m.Get(ctx, "a"); !ok {
		t.Fatal("expected a to survive")
	}
	if _, ok := m.Get(ctx, "c"); !ok {
		t.Fatal("expected c to be stored")
	}
}

func TestManagerOverwriteDoesNotEvict(t *testing.T) {
	m, _ := newTestManager(t, 1)
	ctx := context.Background()

	_ = m.Set(ctx, "a", []string{"1"})
	if err := m.Set(ctx, "a", []string{"2"}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ := m.Get(ctx, "a")
	if !slices.Equal(got, []string{"2"}) {
		t.Fatalf("unexpected ids: %v", got)
	}
}

func TestManagerZeroSizeIsFull(t *testing.T) {
	m, _ := newTestManager(t, 0)
	err := m.Set(context.Background(), "a", []string{"1"})
	if !errors.Is(err, common.ErrCacheFull) {
		t.Fatalf("expected ErrCacheFull, got %v", err)
	}
}

func TestNewDisabled(t *testing.T) {
	store, err := New(&config.Config{Cache: config.CacheConfig{Enabled: false}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store != nil {
		t.Fatal("expected nil store when cache is disabled")
	}

	_, err = New(&config.Config{Cache: config.CacheConfig{Enabled: true, Backend: "memcached"}})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
