// Package animator advances the fixture's color through a hue rotation.
package animator

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Animator holds the hue cursor for the color cycle. Only the control loop
// mutates it, one tick at a time.
type Animator struct {
	hue  float64 // degrees, [0,360)
	step float64
}

// New creates an animator with the given starting hue and per-tick step
func New(startHue, step float64) *Animator {
	return &Animator{
		hue:  math.Mod(startHue, 360.0),
		step: step,
	}
}

// Hue returns the current cursor position in degrees
func (a *Animator) Hue() float64 {
	return a.hue
}

// Tick advances the hue cursor one step and returns the resulting color as
// an 8-bit RGB triple at full saturation and value. Channel values are
// truncated to match the fixture's expectations, not rounded.
func (a *Animator) Tick() (r, g, b uint8) {
	a.hue = math.Mod(a.hue+a.step, 360.0)

	c := colorful.Hsv(a.hue, 1.0, 1.0)
	return uint8(c.R * 255.0), uint8(c.G * 255.0), uint8(c.B * 255.0)
}
