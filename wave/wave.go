// Package wave precomputes single period lookup tables for 12-bit DAC output.
package wave

import "math"

const (
	// Len is the number of samples in a Table.
	Len = 256
	// Peak is the largest sample a Table holds.
	Peak = 4095
)

// Table is one period of a periodic signal sampled at Len points.
type Table [Len]uint16

// Max returns the largest sample in the table.
func (tb *Table) Max() uint16 {
	var m uint16
	for _, v := range tb {
		if v > m {
			m = v
		}
	}
	return m
}

// Triangle returns a triangle wave rising 32 counts per sample for the first
// half of the table and falling at the same rate afterwards. The sample at
// the midpoint is pinned to Peak so the crest reaches full scale, which makes
// the rising edge one sample longer than the falling one.
func Triangle() (tb Table) {
	const (
		slope = 32
		mid   = Len / 2
	)
	for t := 0; t < Len; t++ {
		var v int
		switch {
		case t < mid:
			v = slope * t
		case t == mid:
			v = Peak
		default:
			v = 2*slope*mid - slope*t
		}
		tb[t] = uint16(v)
	}
	return tb
}

// Sine returns two full sine periods centred on mid scale.
func Sine() (tb Table) {
	const (
		period = Len / 2
		amp    = 2048
	)
	for t := 0; t < Len; t++ {
		v := math.Round(amp*math.Sin(2*math.Pi*float64(t)/period) + amp)
		switch {
		case v > Peak:
			// sin(π/2) rounds to full 4096.
			v = Peak
		case v < 0:
			v = 0
		}
		tb[t] = uint16(v)
	}
	return tb
}

// Phase is a table index that wraps to zero when it reaches its wrap value.
// The wrap may be smaller than Len, in which case the tail of the table is
// never played.
type Phase struct {
	idx  uint16
	wrap uint16
}

// NewPhase returns a Phase starting at index 0. A wrap of 0 or above Len is
// treated as Len.
func NewPhase(wrap uint16) Phase {
	if wrap == 0 || wrap > Len {
		wrap = Len
	}
	return Phase{wrap: wrap}
}

// Index returns the current table index.
func (p Phase) Index() uint16 { return p.idx }

// Wrap returns the index at which the phase returns to zero.
func (p Phase) Wrap() uint16 { return p.wrap }

// Advance moves to the next index.
func (p *Phase) Advance() {
	p.idx++
	if p.idx == p.wrap {
		p.idx = 0
	}
}
