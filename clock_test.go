package ttlmemo

import "time"

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

// countingClock records how often the memoizer reads the time.
type countingClock struct {
	fakeClock
	reads int
}

func (c *countingClock) Now() time.Time {
	c.reads++
	return c.fakeClock.Now()
}

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
