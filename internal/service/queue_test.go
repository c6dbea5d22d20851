package service

import (
	"errors"
	"testing"
)

func TestQueuePairsOldestFirst(t *testing.T) {
	q := NewQueue()
	for _, id := range []string{"a", "b", "c"} {
		if err := q.Add(id); err != nil {
			t.Fatalf("Add(%s): %v", id, err)
		}
	}
	if err := q.Add("b"); !errors.Is(err, ErrAlreadyQueued) {
		t.Fatalf("expected ErrAlreadyQueued, got %v", err)
	}

	p1, p2, ok := q.NextPair()
	if !ok || p1 != "a" || p2 != "b" {
		t.Fatalf("expected pair (a, b), got (%s, %s, %t)", p1, p2, ok)
	}
	if _, _, ok := q.NextPair(); ok {
		t.Fatalf("paired a lone player")
	}
	if q.Size() != 1 {
		t.Fatalf("expected 1 queued player, got %d", q.Size())
	}
}

func TestQueueRemove(t *testing.T) {
	q := NewQueue()
	q.Add("a")
	q.Add("b")
	q.Remove("a")
	q.Remove("missing")
	if q.Size() != 1 {
		t.Fatalf("expected 1 queued player, got %d", q.Size())
	}
	q.Add("c")
	p1, p2, ok := q.NextPair()
	if !ok || p1 != "b" || p2 != "c" {
		t.Fatalf("expected pair (b, c), got (%s, %s, %t)", p1, p2, ok)
	}
}
