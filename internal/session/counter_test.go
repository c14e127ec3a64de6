package session

import (
	"sync"
	"testing"
)

func TestCounter(t *testing.T) {
	t.Run("Acquire And Release Pair", func(t *testing.T) {
		c := &Counter{}

		release := c.Acquire()
		if c.Pending() != 1 {
			t.Fatalf("expected 1 pending, got %d", c.Pending())
		}

		release()
		if c.Pending() != 0 {
			t.Fatalf("expected 0 pending, got %d", c.Pending())
		}
	})

	t.Run("Release Is Idempotent", func(t *testing.T) {
		c := &Counter{}

		release := c.Acquire()
		release()
		release()
		release()

		if c.Pending() != 0 {
			t.Fatalf("double release corrupted the count: %d", c.Pending())
		}
	})

	t.Run("Overlapping Sessions", func(t *testing.T) {
		c := &Counter{}

		first := c.Acquire()
		second := c.Acquire()
		if c.Pending() != 2 {
			t.Fatalf("expected 2 pending, got %d", c.Pending())
		}

		first()
		if c.Pending() != 1 {
			t.Fatalf("expected 1 pending after first release, got %d", c.Pending())
		}
		second()
		if c.Pending() != 0 {
			t.Fatalf("expected 0 pending, got %d", c.Pending())
		}
	})

	t.Run("Concurrent Acquire Release", func(t *testing.T) {
		c := &Counter{}
		var wg sync.WaitGroup

		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				release := c.Acquire()
				release()
				release()
			}()
		}
		wg.Wait()

		if c.Pending() != 0 {
			t.Fatalf("expected counter to settle at 0, got %d", c.Pending())
		}
	})
}
