package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
)

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory[int]()

	if _, ok, err := m.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected absence without error, got ok=%v err=%v", ok, err)
	}

	_ = m.Set(ctx, "a", 1)
	_ = m.Set(ctx, "a", 2)

	v, ok, err := m.Get(ctx, "a")
	if err != nil || !ok || v != 2 {
		t.Errorf("expected 2, got %d ok=%v err=%v", v, ok, err)
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 key, got %d", m.Len())
	}
}

func TestMemory_Keys(t *testing.T) {
	ctx := context.Background()
	m := NewMemory[string]()
	for _, k := range []string{"c", "a", "b"} {
		_ = m.Set(ctx, k, k)
	}

	keys, _ := m.Keys(ctx)
	sort.Strings(keys)
	if fmt.Sprint(keys) != "[a b c]" {
		t.Errorf("unexpected keys %v", keys)
	}
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory[int]()

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				_ = m.Set(ctx, fmt.Sprintf("w%d-%d", w, i), i)
				_, _, _ = m.Get(ctx, fmt.Sprintf("w%d-%d", w, i))
			}
		}()
	}
	wg.Wait()

	if m.Len() != 800 {
		t.Errorf("expected 800 keys, got %d", m.Len())
	}
}

func TestFromWarp(t *testing.T) {
	ctx := context.Background()
	s := FromWarp[string](NewMemory[string]())

	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatal(err)
	}
	v, ok, _ := s.Get(ctx, "k")
	if !ok || v != "v" {
		t.Errorf("expected v, got %q ok=%v", v, ok)
	}
}

func TestCached_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewCached[string](100)

	if _, ok, _ := c.Get(ctx, "nope"); ok {
		t.Error("expected absence on empty cache")
	}

	if err := c.Set(ctx, "k1", "v1"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := c.Get(ctx, "k1")
	if err != nil || !ok || v != "v1" {
		t.Errorf("expected v1, got %q ok=%v err=%v", v, ok, err)
	}
}
