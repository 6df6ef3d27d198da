// Package wavegen plays a sine wave on DAC channel A and a triangle wave on
// channel B, one sample per channel per fixed tick delay.
package wavegen

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tinygo-org/wavestrip/cyclecount"
	"github.com/tinygo-org/wavestrip/mcp4922"
	"github.com/tinygo-org/wavestrip/wave"
)

// Default loop parameters.
const (
	// DefaultSineWrap leaves the sine phase one sample short of its 128
	// sample period, so only the first period of the table is played.
	DefaultSineWrap     = 127
	DefaultTriangleWrap = 255
	// DefaultDelay is 1/256 s of the core timer.
	DefaultDelay = cyclecount.CoreTimerHz / 256
)

// DAC is a dual channel 12-bit output. It is implemented by *mcp4922.Device.
type DAC interface {
	Write(ch mcp4922.Channel, sample uint16) error
}

// Config holds loop parameters. Zero values select the defaults.
type Config struct {
	// SineWrap is the sine phase index that wraps back to 0.
	SineWrap uint16
	// TriangleWrap is the triangle phase index that wraps back to 0.
	TriangleWrap uint16
	// Delay is the number of counter ticks between samples.
	Delay uint32
	// Logger receives loop diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Generator owns the lookup tables and phase state of the output loop.
type Generator struct {
	dac   DAC
	clk   cyclecount.Counter
	delay uint32
	log   *slog.Logger

	sine, triangle wave.Table
	i, j           wave.Phase
}

// New precomputes the waveform tables and returns a Generator at phase zero.
func New(dac DAC, clk cyclecount.Counter, cfg Config) *Generator {
	if cfg.SineWrap == 0 {
		cfg.SineWrap = DefaultSineWrap
	}
	if cfg.TriangleWrap == 0 {
		cfg.TriangleWrap = DefaultTriangleWrap
	}
	if cfg.Delay == 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{
		dac:      dac,
		clk:      clk,
		delay:    cfg.Delay,
		log:      cfg.Logger,
		sine:     wave.Sine(),
		triangle: wave.Triangle(),
		i:        wave.NewPhase(cfg.SineWrap),
		j:        wave.NewPhase(cfg.TriangleWrap),
	}
}

// Sine returns the channel A lookup table.
func (g *Generator) Sine() wave.Table { return g.sine }

// Triangle returns the channel B lookup table.
func (g *Generator) Triangle() wave.Table { return g.triangle }

// Phases returns the current sine and triangle indices.
func (g *Generator) Phases() (sine, triangle uint16) { return g.i.Index(), g.j.Index() }

// Step outputs the current sample of each wave, advances both phases and
// then waits out the sample delay.
func (g *Generator) Step() error {
	if err := g.dac.Write(mcp4922.ChannelA, g.sine[g.i.Index()]); err != nil {
		return fmt.Errorf("wavegen: sine sample %d: %w", g.i.Index(), err)
	}
	if err := g.dac.Write(mcp4922.ChannelB, g.triangle[g.j.Index()]); err != nil {
		return fmt.Errorf("wavegen: triangle sample %d: %w", g.j.Index(), err)
	}
	g.i.Advance()
	g.j.Advance()
	cyclecount.Wait(g.clk, g.delay)
	return nil
}

// Run steps forever. It only returns if the DAC reports a failure.
func (g *Generator) Run() error {
	g.log.LogAttrs(context.Background(), slog.LevelDebug, "wavegen start",
		slog.Uint64("sine_wrap", uint64(g.i.Wrap())),
		slog.Uint64("triangle_wrap", uint64(g.j.Wrap())),
		slog.Uint64("delay", uint64(g.delay)),
	)
	for {
		if err := g.Step(); err != nil {
			g.log.LogAttrs(context.Background(), slog.LevelError, "wavegen halted", slog.Any("err", err))
			return err
		}
	}
}
