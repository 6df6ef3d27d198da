// Package huewheel animates a rotating hue wheel on a short addressable LED
// strip and blinks a heartbeat output alongside it.
package huewheel

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"

	"github.com/tinygo-org/wavestrip/cyclecount"
	"github.com/tinygo-org/wavestrip/hsb"
)

// Default animation parameters.
const (
	DefaultPixels     = 5
	DefaultOffset     = 50
	DefaultStep       = 1
	DefaultWrap       = 255
	DefaultSaturation = 1.0
	DefaultBrightness = 0.4
	// DefaultFrameDelay is the core timer tick count between frames.
	DefaultFrameDelay = 16000
	// DefaultHeartbeatPeriod is 1/8 of the 48 MHz system clock counted in
	// core timer ticks, a toggle every quarter second.
	DefaultHeartbeatPeriod = 48_000_000 / 8
)

var errNoPixels = errors.New("huewheel: strip needs at least one pixel")

// Strip sends one frame of colours to the LEDs. It is implemented by
// tinygo.org/x/drivers/ws2812.Device.
type Strip interface {
	WriteColors(buf []color.RGBA) error
}

// Pin is a digital output. It is implemented by machine.Pin.
type Pin interface {
	Set(high bool)
}

// Config holds animation parameters. Zero values select the defaults. A
// negative Saturation selects zero saturation, a grey strip.
type Config struct {
	Pixels     int
	Offset     float32
	Step       float32
	Wrap       float32
	Saturation float32
	Brightness float32
	// FrameDelay is the number of frame counter ticks between frames.
	FrameDelay uint32
	// HeartbeatPeriod is the number of heartbeat counter ticks between
	// heartbeat toggles.
	HeartbeatPeriod uint32
	// Logger receives loop diagnostics. Nil discards them.
	Logger *slog.Logger
}

func (cfg *Config) setDefaults() {
	if cfg.Pixels == 0 {
		cfg.Pixels = DefaultPixels
	}
	if cfg.Offset == 0 {
		cfg.Offset = DefaultOffset
	}
	if cfg.Step == 0 {
		cfg.Step = DefaultStep
	}
	if cfg.Wrap == 0 {
		cfg.Wrap = DefaultWrap
	}
	switch {
	case cfg.Saturation == 0:
		cfg.Saturation = DefaultSaturation
	case cfg.Saturation < 0:
		cfg.Saturation = 0
	}
	if cfg.Brightness == 0 {
		cfg.Brightness = DefaultBrightness
	}
	if cfg.FrameDelay == 0 {
		cfg.FrameDelay = DefaultFrameDelay
	}
	if cfg.HeartbeatPeriod == 0 {
		cfg.HeartbeatPeriod = DefaultHeartbeatPeriod
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

// Animator owns the hue state, frame buffer and heartbeat of the strip.
type Animator struct {
	strip Strip
	pin   Pin
	frame cyclecount.Counter
	beat  cyclecount.Counter
	cfg   Config

	wheel  *hsb.Wheel
	colors []color.RGBA
	on     bool
}

// New returns an Animator with the heartbeat output low. The frame and
// heartbeat counters must be independent so that the frame delay does not
// hold back the heartbeat.
func New(strip Strip, heartbeat Pin, frame, beat cyclecount.Counter, cfg Config) (*Animator, error) {
	cfg.setDefaults()
	if cfg.Pixels < 0 {
		return nil, errNoPixels
	}
	a := &Animator{
		strip:  strip,
		pin:    heartbeat,
		frame:  frame,
		beat:   beat,
		cfg:    cfg,
		wheel:  hsb.NewWheel(cfg.Pixels, cfg.Offset, cfg.Step, cfg.Wrap),
		colors: make([]color.RGBA, cfg.Pixels),
	}
	a.pin.Set(false)
	a.beat.Reset()
	return a, nil
}

// Hues returns the current hue of every pixel.
func (a *Animator) Hues() []float32 { return a.wheel.Hues() }

// Heartbeat returns the current heartbeat output level.
func (a *Animator) Heartbeat() bool { return a.on }

// Step toggles the heartbeat if its period has elapsed, advances the wheel,
// sends the frame and waits out the frame delay.
func (a *Animator) Step() error {
	if cyclecount.Expired(a.beat, a.cfg.HeartbeatPeriod) {
		a.on = !a.on
		a.pin.Set(a.on)
	}
	a.wheel.Advance()
	frame := a.wheel.Colors(a.colors, a.cfg.Saturation, a.cfg.Brightness)
	if err := a.strip.WriteColors(frame); err != nil {
		return fmt.Errorf("huewheel: write frame: %w", err)
	}
	cyclecount.Wait(a.frame, a.cfg.FrameDelay)
	return nil
}

// Run steps forever. It only returns if the strip reports a failure.
func (a *Animator) Run() error {
	a.cfg.Logger.LogAttrs(context.Background(), slog.LevelDebug, "huewheel start",
		slog.Int("pixels", a.cfg.Pixels),
		slog.Any("saturation", a.cfg.Saturation),
		slog.Any("brightness", a.cfg.Brightness),
		slog.Uint64("frame_delay", uint64(a.cfg.FrameDelay)),
		slog.Uint64("heartbeat_period", uint64(a.cfg.HeartbeatPeriod)),
	)
	for {
		if err := a.Step(); err != nil {
			a.cfg.Logger.LogAttrs(context.Background(), slog.LevelError, "huewheel halted", slog.Any("err", err))
			return err
		}
	}
}
