// Package cyclecount provides reset-and-poll delays over a free running tick
// counter, the way bare metal loops time themselves with a core timer.
package cyclecount

import (
	"runtime"
	"time"
)

// CoreTimerHz is the rate of a MIPS core timer on a 48 MHz system clock.
// The timer ticks once every two system clock cycles.
const CoreTimerHz = 24_000_000

// Counter is a monotonically increasing tick counter that can be zeroed.
type Counter interface {
	// Count returns the ticks elapsed since the last Reset.
	Count() uint32
	// Reset sets the count to zero.
	Reset()
}

// Wait resets c and spins until it reaches ticks.
func Wait(c Counter, ticks uint32) {
	c.Reset()
	for c.Count() < ticks {
		gosched()
	}
}

// Expired reports whether c has passed ticks and, if so, resets it.
func Expired(c Counter, ticks uint32) bool {
	if c.Count() <= ticks {
		return false
	}
	c.Reset()
	return true
}

// Ticks converts d to ticks of a counter running at hz. Like a 32-bit
// hardware counter, the result wraps once it passes math.MaxUint32.
func Ticks(d time.Duration, hz uint32) uint32 {
	return uint32(ticks64(d, hz))
}

// ticks64 splits d into whole seconds and a sub-second remainder so the
// intermediate products stay within 64 bits for any positive duration.
func ticks64(d time.Duration, hz uint32) uint64 {
	if d <= 0 {
		return 0
	}
	sec, rem := uint64(d/time.Second), uint64(d%time.Second)
	return sec*uint64(hz) + rem*uint64(hz)/uint64(time.Second)
}

func gosched() {
	runtime.Gosched()
}

// Monotonic is a Counter derived from the runtime's monotonic clock. It runs
// on any target, including the host.
type Monotonic struct {
	hz   uint32
	base time.Time
}

// NewMonotonic returns a Counter ticking at hz, started at zero.
func NewMonotonic(hz uint32) *Monotonic {
	return &Monotonic{hz: hz, base: time.Now()}
}

func (m *Monotonic) Count() uint32 { return Ticks(time.Since(m.base), m.hz) }

func (m *Monotonic) Reset() { m.base = time.Now() }

// Stepper is a deterministic Counter that advances by Step on every Count.
// It simulates a running timer without real time passing.
type Stepper struct {
	Step  uint32
	ticks uint32
	// Reads counts calls to Count since creation.
	Reads int
	// Resets counts calls to Reset since creation.
	Resets int
}

func (s *Stepper) Count() uint32 {
	s.Reads++
	c := s.ticks
	s.ticks += s.Step
	return c
}

func (s *Stepper) Reset() {
	s.Resets++
	s.ticks = 0
}
