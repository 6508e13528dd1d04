// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

import (
	"sort"
	"testing"
)

func TestLRU_GetOrCreate(t *testing.T) {
	c := NewLRU[string, int](4, nil)

	calls := 0
	create := func() (int, error) { calls++; return 42, nil }

	v, err := c.GetOrCreate("a", create)
	if err != nil || v != 42 {
		t.Fatalf("GetOrCreate = %d, %v", v, err)
	}
	v, err = c.GetOrCreate("a", create)
	if err != nil || v != 42 {
		t.Fatalf("second GetOrCreate = %d, %v", v, err)
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	if got, ok := c.Get("a"); !ok || got != 42 {
		t.Errorf("Get = %d, %v", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get on missing key reported a hit")
	}
}

func TestLRU_EvictsOldest(t *testing.T) {
	var evicted []string
	c := NewLRU[string, int](2, func(k string, _ int) { evicted = append(evicted, k) })

	put := func(k string, v int) {
		t.Helper()
		if _, err := c.GetOrCreate(k, func() (int, error) { return v, nil }); err != nil {
			t.Fatal(err)
		}
	}

	put("a", 1)
	put("b", 2)
	c.Get("a") // refresh a; b is now oldest
	put("c", 3)

	if len(evicted) != 1 || evicted[0] != "b" {
		t.Errorf("evicted = %v, want [b]", evicted)
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("refreshed entry was evicted")
	}
}

func TestLRU_Clear(t *testing.T) {
	var evicted []string
	c := NewLRU[string, int](8, func(k string, _ int) { evicted = append(evicted, k) })
	for _, k := range []string{"a", "b", "c"} {
		c.GetOrCreate(k, func() (int, error) { return 0, nil })
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d", c.Len())
	}
	sort.Strings(evicted)
	if len(evicted) != 3 || evicted[0] != "a" || evicted[2] != "c" {
		t.Errorf("evicted = %v, want all three entries", evicted)
	}
}

func TestLRU_Remove(t *testing.T) {
	removed := false
	c := NewLRU[string, int](2, func(string, int) { removed = true })
	c.GetOrCreate("a", func() (int, error) { return 1, nil })

	if !c.Remove("a") {
		t.Error("Remove of present key returned false")
	}
	if !removed {
		t.Error("eviction hook did not run on Remove")
	}
	if c.Remove("a") {
		t.Error("Remove of absent key returned true")
	}
}
