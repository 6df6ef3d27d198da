// Package hsb converts hue, saturation and brightness colours to RGB and
// keeps the rotating hue state of an LED strip.
package hsb

import "image/color"

// ToRGB converts hue in degrees and saturation and brightness in [0, 1] to an
// opaque RGB colour. Channel values are truncated, not rounded.
func ToRGB(hue, sat, bri float32) color.RGBA {
	var r, g, b float32
	if sat == 0 {
		r, g, b = bri, bri, bri
	} else {
		if hue >= 360 {
			hue = 0
		}
		h := hue / 60
		slice := int(h)
		frac := h - float32(slice)
		p := bri * (1 - sat)
		q := bri * (1 - sat*frac)
		t := bri * (1 - sat*(1-frac))
		switch slice {
		case 0:
			r, g, b = bri, t, p
		case 1:
			r, g, b = q, bri, p
		case 2:
			r, g, b = p, bri, t
		case 3:
			r, g, b = p, q, bri
		case 4:
			r, g, b = t, p, bri
		case 5:
			r, g, b = bri, p, q
		}
	}
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 0xff}
}

// Wheel holds one hue per pixel, each offset from its neighbour by a fixed
// angle and advanced together every frame.
type Wheel struct {
	hues []float32
	step float32
	wrap float32
}

// NewWheel returns a Wheel of n pixels where pixel i starts at hue i*offset.
// Advance adds step to every hue and restarts a hue at 0 once it exceeds wrap.
func NewWheel(n int, offset, step, wrap float32) *Wheel {
	w := &Wheel{hues: make([]float32, n), step: step, wrap: wrap}
	for i := range w.hues {
		w.hues[i] = float32(i) * offset
	}
	return w
}

// Len returns the number of pixels.
func (w *Wheel) Len() int { return len(w.hues) }

// Hue returns the hue of pixel i.
func (w *Wheel) Hue(i int) float32 { return w.hues[i] }

// Hues returns a copy of all pixel hues.
func (w *Wheel) Hues() []float32 {
	return append([]float32(nil), w.hues...)
}

// Advance moves every pixel one step around the wheel.
func (w *Wheel) Advance() {
	for i := range w.hues {
		w.hues[i] += w.step
		if w.hues[i] > w.wrap {
			w.hues[i] = 0
		}
	}
}

// Colors writes the colour of every pixel into dst, which must be at least
// Len long, and returns dst[:Len].
func (w *Wheel) Colors(dst []color.RGBA, sat, bri float32) []color.RGBA {
	dst = dst[:len(w.hues)]
	for i, h := range w.hues {
		dst[i] = ToRGB(h, sat, bri)
	}
	return dst
}
