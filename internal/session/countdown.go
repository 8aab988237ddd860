package session

import "time"

// Countdown is a pausable timer advanced by frame ticks. It fires at most
// once per Start.
type Countdown struct {
	remaining time.Duration
	running   bool
	paused    bool
}

// Start arms the countdown for d, clearing any pause.
func (c *Countdown) Start(d time.Duration) {
	c.remaining = max(0, d)
	c.running = true
	c.paused = false
}

// Advance consumes dt and reports whether the countdown fired on this call.
func (c *Countdown) Advance(dt time.Duration) bool {
	if !c.running || c.paused {
		return false
	}
	c.remaining -= max(0, dt)
	if c.remaining > 0 {
		return false
	}
	c.remaining = 0
	c.running = false
	return true
}

// Pause freezes the remaining time.
func (c *Countdown) Pause() {
	if c.running {
		c.paused = true
	}
}

// Resume continues from the frozen remaining time.
func (c *Countdown) Resume() {
	c.paused = false
}

// Stop disarms the countdown without firing.
func (c *Countdown) Stop() {
	c.running = false
	c.paused = false
	c.remaining = 0
}

// Remaining returns the time left, or 0 if not running.
func (c *Countdown) Remaining() time.Duration {
	if !c.running {
		return 0
	}
	return c.remaining
}

// Running reports whether the countdown is armed.
func (c *Countdown) Running() bool {
	return c.running
}

// Paused reports whether the countdown is frozen.
func (c *Countdown) Paused() bool {
	return c.running && c.paused
}
