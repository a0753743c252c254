// Roomatlas - Room Occupancy Reconciliation and Layout Synchronization
// Copyright 2026 Roomatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/roomatlas/roomatlas

package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("layout", 42)

	got, ok := c.Get("layout")
	if !ok || got != 42 {
		t.Errorf("Get = %v, %v; want 42, true", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Get returned a value for a missing key")
	}
}

func TestCacheExpiry(t *testing.T) {
	t.Parallel()

	c := New(10 * time.Millisecond)
	c.Set("layout", "v")

	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("layout"); ok {
		t.Error("expired entry still served")
	}
}

func TestCacheClear(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Error("entry survived Clear")
	}
	if stats := c.Stats(); stats.Keys != 0 {
		t.Errorf("keys = %d after Clear", stats.Keys)
	}
}

func TestCacheDelete(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")

	if _, ok := c.Get("a"); ok {
		t.Error("deleted entry still served")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("unrelated entry lost")
	}
}

func TestCacheStats(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("stats = %+v, want 2 hits 1 miss", stats)
	}
}
