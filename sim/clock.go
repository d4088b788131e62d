package sim

import "time"

// Clock records when a session started and, once, when it ended.
type Clock struct {
	startedAt time.Time
	endedAt   time.Time
	over      bool
}

func NewClock(start time.Time) *Clock {
	return &Clock{startedAt: start}
}

func (c *Clock) StartedAt() time.Time { return c.startedAt }

// EndedAt returns the end time and whether the session has ended.
func (c *Clock) EndedAt() (time.Time, bool) { return c.endedAt, c.over }

func (c *Clock) Over() bool { return c.over }

// End marks the session over at now. Only the first call has any effect;
// it reports whether this call ended the session.
func (c *Clock) End(now time.Time) bool {
	if c.over {
		return false
	}
	c.endedAt = now
	c.over = true
	return true
}

// Elapsed is the time from start to now, or to the end time once over.
func (c *Clock) Elapsed(now time.Time) time.Duration {
	if c.over {
		now = c.endedAt
	}
	return now.Sub(c.startedAt)
}
