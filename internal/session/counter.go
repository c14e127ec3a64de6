package session

import "sync"

// Counter tracks how many search sessions are currently in flight.
//
// The count drives the "searches pending" badge in the UI, so increments and
// decrements must pair exactly: a leaked decrement would show phantom
// activity forever, a leaked increment would hide real activity. Acquire
// returns a release closure that decrements at most once no matter how many
// times it runs, and sessions call it via defer so failure paths release too.
type Counter struct {
	mu sync.Mutex
	n  int
}

// Acquire increments the counter and returns the paired release function.
func (c *Counter) Acquire() (release func()) {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			c.n--
			c.mu.Unlock()
		})
	}
}

// Pending returns the number of sessions currently in flight.
func (c *Counter) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
