package mcp4922

import (
	"errors"
	"testing"
)

func TestEncode(t *testing.T) {
	var tests = []struct {
		ch     Channel
		sample uint16
		hi, lo byte
	}{
		{ch: ChannelA, sample: 2048, hi: 0b0111_1000, lo: 0x00},
		{ch: ChannelA, sample: 0, hi: 0x70, lo: 0x00},
		{ch: ChannelA, sample: MaxSample, hi: 0x7f, lo: 0xff},
		{ch: ChannelB, sample: 0, hi: 0xf0, lo: 0x00},
		{ch: ChannelB, sample: 0x0abc, hi: 0xfa, lo: 0xbc},
		{ch: ChannelB, sample: 4064, hi: 0xff, lo: 0xe0},
	}
	for i, test := range tests {
		hi, lo := Encode(test.ch, test.sample).Bytes()
		if hi != test.hi || lo != test.lo {
			t.Errorf("test %d: Encode(%d, %d) got!=expected: %#02x %#02x != %#02x %#02x",
				i, test.ch, test.sample, hi, lo, test.hi, test.lo)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, ch := range []Channel{ChannelA, ChannelB} {
		for sample := uint16(0); sample <= MaxSample; sample++ {
			hi, lo := Encode(ch, sample).Bytes()
			if Channel(hi>>7) != ch {
				t.Fatalf("channel bit mismatch for ch=%d sample=%d: %#02x", ch, sample, hi)
			}
			if cfg := (hi >> 4) & 0b111; cfg != 0b111 {
				t.Fatalf("config bits mismatch for ch=%d sample=%d: %#03b", ch, sample, cfg)
			}
			if got := uint16(hi&0xf)<<8 | uint16(lo); got != sample {
				t.Fatalf("sample mismatch for ch=%d: got %d, want %d", ch, got, sample)
			}
		}
	}
}

func TestEncodeOutOfRange(t *testing.T) {
	c := Encode(ChannelA, 0xffff)
	if c.Channel() != ChannelA {
		t.Errorf("oversized sample leaked into channel bit: %v", c)
	}
	if uint16(c)&cmdConfig != cmdConfig {
		t.Errorf("oversized sample disturbed config bits: %v", c)
	}
	if c.Sample() != MaxSample {
		t.Errorf("expected truncated sample %d, got %d", MaxSample, c.Sample())
	}
	if got := Encode(3, 0).Channel(); got != ChannelB {
		t.Errorf("channel should be masked to one bit, got %d", got)
	}
}

// event records bus activity in order.
type event struct {
	cs   byte // 'L', 'H' or 0 for a data byte.
	data byte
}

type fakeBus struct {
	log    *[]event
	failAt int // fail the n-th transfer (1-based); 0 never fails.
	n      int
}

var errBus = errors.New("bus stall")

func (b *fakeBus) Tx(w, r []byte) error {
	for _, c := range w {
		if _, err := b.Transfer(c); err != nil {
			return err
		}
	}
	return nil
}

func (b *fakeBus) Transfer(c byte) (byte, error) {
	b.n++
	if b.n == b.failAt {
		return 0, errBus
	}
	*b.log = append(*b.log, event{data: c})
	return 0, nil
}

type fakePin struct{ log *[]event }

func (p fakePin) High() { *p.log = append(*p.log, event{cs: 'H'}) }
func (p fakePin) Low()  { *p.log = append(*p.log, event{cs: 'L'}) }

func TestDeviceWriteFraming(t *testing.T) {
	var log []event
	dev := New(&fakeBus{log: &log}, fakePin{log: &log})
	if err := dev.Configure(); err != nil {
		t.Fatal(err)
	}
	if err := dev.WriteBoth(2048, 4095); err != nil {
		t.Fatal(err)
	}
	expected := []event{
		{cs: 'H'},
		{cs: 'L'}, {data: 0x78}, {data: 0x00}, {cs: 'H'},
		{cs: 'L'}, {data: 0xff}, {data: 0xff}, {cs: 'H'},
	}
	if len(log) != len(expected) {
		t.Fatalf("got %d bus events, expected %d: %v", len(log), len(expected), log)
	}
	for i := range expected {
		if log[i] != expected[i] {
			t.Errorf("event %d got!=expected: %+v != %+v", i, log[i], expected[i])
		}
	}
}

func TestDeviceWriteReleasesChipSelectOnError(t *testing.T) {
	var log []event
	dev := New(&fakeBus{log: &log, failAt: 2}, fakePin{log: &log})
	err := dev.Write(ChannelB, 100)
	if !errors.Is(err, errBus) {
		t.Fatalf("expected wrapped bus error, got %v", err)
	}
	if len(log) == 0 || log[len(log)-1].cs != 'H' {
		t.Errorf("chip select left asserted after failed write: %v", log)
	}
}

func TestConfigureNilBus(t *testing.T) {
	var log []event
	dev := New(nil, fakePin{log: &log})
	if err := dev.Configure(); err != errNilBus {
		t.Errorf("expected %v, got %v", errNilBus, err)
	}
}

func TestConfigureNilPin(t *testing.T) {
	var log []event
	dev := New(&fakeBus{log: &log}, nil)
	if err := dev.Configure(); err != errNilPin {
		t.Errorf("expected %v, got %v", errNilPin, err)
	}
	if len(log) != 0 {
		t.Errorf("bus touched before chip select was validated: %v", log)
	}
}
