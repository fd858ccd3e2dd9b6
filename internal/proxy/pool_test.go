package proxy

import "testing"

func TestPoolRotation(t *testing.T) {
	pool := NewPool([]string{"p1", "p2", "p3"})

	for _, want := range []string{"p1", "p2", "p3", "p1"} {
		if got := pool.Next(); got != want {
			t.Errorf("Next() = %s, want %s", got, want)
		}
	}
}

func TestPoolSkipsFailed(t *testing.T) {
	pool := NewPool([]string{"p1", "p2", "p3"})
	pool.Next() // p1

	pool.MarkFailed("p2")

	if got := pool.Next(); got != "p3" {
		t.Errorf("Next() = %s, want p3 (p2 cooling down)", got)
	}
	if got := pool.Next(); got != "p1" {
		t.Errorf("Next() = %s, want p1", got)
	}

	pool.MarkHealthy("p2")
	pool.Next() // p3 or p2 depending on index; advance to wrap
	for i := 0; i < 3; i++ {
		if pool.Next() == "p2" {
			return
		}
	}
	t.Error("p2 never returned after MarkHealthy")
}

func TestPoolEmpty(t *testing.T) {
	pool := NewPool(nil)
	if got := pool.Next(); got != "" {
		t.Errorf("Next() on empty pool = %q, want empty", got)
	}
	if pool.Size() != 0 {
		t.Errorf("Size() = %d, want 0", pool.Size())
	}
}

func TestPoolAllFailedStillServes(t *testing.T) {
	pool := NewPool([]string{"p1"})
	pool.MarkFailed("p1")
	if got := pool.Next(); got != "p1" {
		t.Errorf("Next() = %q, want p1 even while cooling down", got)
	}
}
