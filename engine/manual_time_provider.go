package engine

import (
	"sync/atomic"
	"time"
)

// ManualTimeProvider is a TimeProvider advanced by the caller
// With a non-zero step every Now call moves the clock forward by step after reading,
// so a FrameClock driven by it observes fixed frame durations
type ManualTimeProvider struct {
	base   time.Time
	offset atomic.Int64
	step   atomic.Int64
}

// NewManualTimeProvider starts the clock at start with no step
func NewManualTimeProvider(start time.Time) *ManualTimeProvider {
	return &ManualTimeProvider{base: start}
}

// Now returns the current time, then applies the step
func (m *ManualTimeProvider) Now() time.Time {
	s := m.step.Load()
	off := m.offset.Add(s) - s
	return m.base.Add(time.Duration(off))
}

// Advance moves the clock forward by d
func (m *ManualTimeProvider) Advance(d time.Duration) {
	m.offset.Add(int64(d))
}

// SetStep sets the automatic advance applied after each Now; 0 disables it
func (m *ManualTimeProvider) SetStep(d time.Duration) {
	m.step.Store(int64(d))
}

// Elapsed reports how far the clock has moved from its start
func (m *ManualTimeProvider) Elapsed() time.Duration {
	return time.Duration(m.offset.Load())
}
