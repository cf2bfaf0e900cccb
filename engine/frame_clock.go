package engine

import (
	"sync"
	"time"
)

// DefaultFPSWindow is the number of frame durations averaged by FPS
const DefaultFPSWindow = 200

// FrameClock measures frame-to-frame durations and derives a smoothed frame rate
type FrameClock struct {
	mu       sync.Mutex
	provider TimeProvider

	last    time.Time
	started bool
	delta   time.Duration
	frames  uint64

	// Ring of recent frame durations
	window []time.Duration
	next   int
	filled int
	sum    time.Duration
}

// NewFrameClock creates a clock averaging over window frames (DefaultFPSWindow if <= 0)
func NewFrameClock(provider TimeProvider, window int) *FrameClock {
	if window <= 0 {
		window = DefaultFPSWindow
	}
	return &FrameClock{
		provider: provider,
		window:   make([]time.Duration, window),
	}
}

// Tick marks the start of a new frame
// The first tick only records the reference time
func (c *FrameClock) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.provider.Now()
	c.frames++
	if !c.started {
		c.started = true
		c.last = now
		return
	}

	c.delta = now.Sub(c.last)
	c.last = now

	c.sum -= c.window[c.next]
	c.window[c.next] = c.delta
	c.sum += c.delta
	c.next = (c.next + 1) % len(c.window)
	if c.filled < len(c.window) {
		c.filled++
	}
}

// FPS returns frames per second averaged over the window, 0 before two ticks
func (c *FrameClock) FPS() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filled == 0 || c.sum <= 0 {
		return 0
	}
	return float64(c.filled) / c.sum.Seconds()
}

// Delta returns the duration of the last completed frame
func (c *FrameClock) Delta() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delta
}

// Frames returns the number of ticks observed
func (c *FrameClock) Frames() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}
