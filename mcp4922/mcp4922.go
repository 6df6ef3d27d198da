// Package mcp4922 drives MCP49x2 dual channel 12-bit SPI DACs.
//
// Datasheet: https://ww1.microchip.com/downloads/en/DeviceDoc/22250A.pdf
package mcp4922

import (
	"errors"
	"fmt"

	"tinygo.org/x/drivers"
)

// Channel selects one of the two DAC outputs.
type Channel uint8

const (
	ChannelA Channel = 0
	ChannelB Channel = 1
)

// MaxSample is the largest value the 12-bit converter accepts.
const MaxSample = 1<<12 - 1

// Configuration bits of the command word.
const (
	cmdChannelPos = 15
	cmdBuffered   = 1 << 14
	cmdGain1x     = 1 << 13
	cmdActive     = 1 << 12

	// cmdConfig selects buffered Vref input, unity gain and active output.
	cmdConfig = cmdBuffered | cmdGain1x | cmdActive

	cmdSampleMsk = MaxSample
)

var (
	errNilBus = errors.New("mcp4922: nil SPI bus")
	errNilPin = errors.New("mcp4922: nil chip select pin")
)

// Command is a 16-bit MCP4922 write command.
type Command uint16

// Encode packs a channel and a 12-bit sample into a write command.
//
// sample must be in [0, MaxSample]. It is not validated: bits above bit 11
// are discarded so the configuration field is never disturbed.
func Encode(ch Channel, sample uint16) Command {
	return Command(uint16(ch&1)<<cmdChannelPos | cmdConfig | sample&cmdSampleMsk)
}

// Bytes returns the command in transmission order, most significant byte first.
func (c Command) Bytes() (hi, lo byte) {
	return byte(c >> 8), byte(c)
}

// Channel returns the channel bit of the command.
func (c Command) Channel() Channel { return Channel(c >> cmdChannelPos) }

// Sample returns the 12-bit sample of the command.
func (c Command) Sample() uint16 { return uint16(c) & cmdSampleMsk }

func (c Command) String() string {
	return fmt.Sprintf("mcp4922{ch:%d sample:%d raw:%#04x}", c.Channel(), c.Sample(), uint16(c))
}

// Pin is a chip select output. It is implemented by machine.Pin.
type Pin interface {
	High()
	Low()
}

// Device is an MCP4922 attached to a SPI bus with a dedicated chip select.
type Device struct {
	bus drivers.SPI
	cs  Pin
}

// New returns a Device. Call Configure before the first write.
func New(bus drivers.SPI, cs Pin) *Device {
	return &Device{bus: bus, cs: cs}
}

// Configure releases the chip select so the first write starts a fresh frame.
func (d *Device) Configure() error {
	if d.bus == nil {
		return errNilBus
	}
	if d.cs == nil {
		return errNilPin
	}
	d.cs.High()
	return nil
}

// Write sets the output of ch to sample. The two command bytes are transferred
// one at a time within a single chip select window. The chip select is always
// released, even if the transfer fails.
func (d *Device) Write(ch Channel, sample uint16) error {
	return d.WriteCommand(Encode(ch, sample))
}

// WriteCommand transmits a raw command word.
func (d *Device) WriteCommand(c Command) (err error) {
	hi, lo := c.Bytes()
	d.cs.Low()
	defer d.cs.High()
	if _, err = d.bus.Transfer(hi); err != nil {
		return fmt.Errorf("mcp4922: transfer high byte: %w", err)
	}
	if _, err = d.bus.Transfer(lo); err != nil {
		return fmt.Errorf("mcp4922: transfer low byte: %w", err)
	}
	return nil
}

// WriteBoth sets channel A to a and then channel B to b.
func (d *Device) WriteBoth(a, b uint16) error {
	if err := d.Write(ChannelA, a); err != nil {
		return err
	}
	return d.Write(ChannelB, b)
}
