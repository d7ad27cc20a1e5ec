package interview

import (
	"fmt"
	"sync"
	"time"
)

// Clock is the countdown for one interview session. Starting it at N emits
// every integer from N down to 0 on C exactly once, in order, then halts.
//
// Consumers trigger on exact values (60, 15), so the emitted sequence must
// never skip: values come from an internal counter decremented once per
// tick, not from wall-clock arithmetic. A delayed tick stretches the
// countdown rather than dropping a value.
type Clock struct {
	interval time.Duration

	mu        sync.Mutex
	remaining int
	running   bool
	stop      chan struct{}

	out chan int
}

func NewClock() *Clock {
	return newClock(time.Second)
}

// newClock lets tests run the countdown at a faster tick.
func newClock(interval time.Duration) *Clock {
	return &Clock{
		interval: interval,
		out:      make(chan int, 8),
	}
}

// C delivers each countdown value. The channel is never closed; callers
// stop reading once 0 arrives or the session tears down.
func (c *Clock) C() <-chan int { return c.out }

// Start begins the countdown at durationSeconds. A running countdown is
// replaced. The starting value is emitted immediately.
func (c *Clock) Start(durationSeconds int) {
	c.mu.Lock()
	if c.stop != nil {
		close(c.stop)
	}
	stop := make(chan struct{})
	c.stop = stop
	c.remaining = durationSeconds
	c.running = durationSeconds > 0
	c.mu.Unlock()

	c.emit(durationSeconds, stop)
	if durationSeconds <= 0 {
		return
	}
	go c.loop(stop)
}

func (c *Clock) loop(stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			if !c.running {
				c.mu.Unlock()
				return
			}
			if c.remaining <= 1 {
				c.remaining = 0
			} else {
				c.remaining--
			}
			v := c.remaining
			if v == 0 {
				c.running = false
			}
			c.mu.Unlock()

			c.emit(v, stop)
			if v == 0 {
				return
			}
		}
	}
}

// emit blocks until the value is taken; dropping a value would make exact
// threshold comparisons silently never fire.
func (c *Clock) emit(v int, stop chan struct{}) {
	select {
	case c.out <- v:
	case <-stop:
	}
}

// Stop halts the countdown and hides the remaining value.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	c.running = false
	c.remaining = 0
}

// Remaining returns the current countdown value; ok is false when the clock
// has not been started or was stopped.
func (c *Clock) Remaining() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop == nil && !c.running && c.remaining == 0 {
		return 0, false
	}
	return c.remaining, true
}

// FormatRemaining renders a countdown value as MM:SS for display.
func FormatRemaining(s int) string {
	if s < 0 {
		s = 0
	}
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
