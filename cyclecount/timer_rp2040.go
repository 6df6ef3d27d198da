//go:build rp2040

package cyclecount

import "device/rp"

// TimerHz is the tick rate of the RP2040 system timer.
const TimerHz = 1_000_000

// Timer is a Counter over the RP2040 free running microsecond timer. The
// hardware count cannot be written, so Reset records a base instead. Any
// number of Timers may share the hardware.
type Timer struct {
	base uint32
}

// NewTimer returns a Timer started at zero.
func NewTimer() *Timer {
	t := &Timer{}
	t.Reset()
	return t
}

func (t *Timer) Count() uint32 { return rp.TIMER.TIMERAWL.Get() - t.base }

func (t *Timer) Reset() { t.base = rp.TIMER.TIMERAWL.Get() }
