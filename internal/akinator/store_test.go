package akinator

import (
	"testing"
	"time"

	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(logger.NewNop())

	s := newSession("s1", nil)
	store.Put(s)

	if got, ok := store.Get("s1"); !ok || got.ID != "s1" {
		t.Fatalf("get = %v %v", got, ok)
	}
	if store.Len() != 1 {
		t.Fatalf("len = %d", store.Len())
	}
	if !store.Delete("s1") {
		t.Fatal("delete should report success")
	}
	if store.Delete("s1") {
		t.Fatal("second delete should report failure")
	}
	if _, ok := store.Get("s1"); ok {
		t.Fatal("deleted session still present")
	}
}

func TestMemoryStoreSweepIdle(t *testing.T) {
	store := NewMemoryStore(logger.NewNop())

	stale := newSession("stale", nil)
	stale.lastActive = time.Now().Add(-2 * time.Hour)
	store.Put(stale)

	fresh := newSession("fresh", nil)
	store.Put(fresh)

	if removed := store.SweepIdle(time.Hour); removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, ok := store.Get("stale"); ok {
		t.Fatal("stale session survived the sweep")
	}
	if _, ok := store.Get("fresh"); !ok {
		t.Fatal("fresh session was swept")
	}
}
