package rediscache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatal("missing key reported present")
	}

	c.Set(ctx, "k", []byte("v"), time.Minute)
	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Fatalf("get = %q %v", got, ok)
	}

	c.Set(ctx, "expired", []byte("x"), -time.Second)
	if _, ok := c.Get(ctx, "expired"); ok {
		t.Fatal("expired entry reported present")
	}
}

func TestMemoryRateStoreWindow(t *testing.T) {
	s := NewMemoryRateStore()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		n, err := s.Hit(ctx, "ip:path", time.Minute)
		if err != nil {
			t.Fatalf("hit: %v", err)
		}
		if n != i {
			t.Fatalf("hit %d counted %d", i, n)
		}
	}

	// Separate keys do not share a window.
	if n, _ := s.Hit(ctx, "other", time.Minute); n != 1 {
		t.Fatalf("fresh key counted %d", n)
	}
}

func TestMemoryRateStoreExpiry(t *testing.T) {
	s := NewMemoryRateStore()
	ctx := context.Background()

	s.hits["k"] = []time.Time{time.Now().Add(-2 * time.Second)}
	n, err := s.Hit(ctx, "k", time.Second)
	if err != nil {
		t.Fatalf("hit: %v", err)
	}
	if n != 1 {
		t.Fatalf("stale hit still counted, n = %d", n)
	}
}
