package hal

import (
	"sync"
	"time"
)

// MonotonicClock counts milliseconds since its creation, based on the
// monotonic reading of time.Now
type MonotonicClock struct {
	start  time.Time
	offset uint32
}

func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{
		start: time.Now(),
	}
}

// NewMonotonicClockWithOffset starts the counter at the given value, which
// allows to observe a wraparound without waiting for it.
func NewMonotonicClockWithOffset(offset uint32) *MonotonicClock {
	return &MonotonicClock{
		start:  time.Now(),
		offset: offset,
	}
}

func (c *MonotonicClock) Millis() uint32 {
	// truncation to 32 bit is the wraparound
	return uint32(time.Since(c.start).Milliseconds()) + c.offset
}

// ManualClock only advances when told so
type ManualClock struct {
	mu  sync.Mutex
	now uint32
}

func NewManualClock(now uint32) *ManualClock {
	return &ManualClock{now: now}
}

func (c *ManualClock) Millis() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Set(now uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += uint32(d.Milliseconds())
}
