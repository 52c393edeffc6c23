package chat

import (
	"sync"
	"time"
)

// relativeTimeRefresh is how long a cached relative-time string stays valid
// for the same timestamp.
const relativeTimeRefresh = 5 * time.Second

// RelativeTimeCache memoizes RelativeTime for a view that re-renders often.
// The last result is reused while the same timestamp is asked for again
// within five seconds of the previous computation.
type RelativeTimeCache struct {
	mu       sync.Mutex
	last     time.Time
	result   string
	computed time.Time
	valid    bool
}

// Get returns the relative time of d as of now, reusing the previous answer
// when possible. A zero d renders as "".
func (c *RelativeTimeCache) Get(d, now time.Time) string {
	if d.IsZero() {
		return ""
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.last.Equal(d) && now.Sub(c.computed) < relativeTimeRefresh {
		return c.result
	}

	c.last = d
	c.result = RelativeTime(d, now)
	c.computed = now
	c.valid = true
	return c.result
}
