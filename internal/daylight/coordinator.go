// Package daylight decides when the fixture's color cycle is suppressed.
//
// The inversion is deliberate: the light animates at night and is forced off
// during the day, so daytime is the suppressed state.
package daylight

import (
	"time"

	"github.com/rs/zerolog/log"
)

// State represents the suppression state of the fixture.
type State int

const (
	// StateLit means the color cycle runs. Initial state.
	StateLit State = iota
	// StateSuppressed means daylight was detected and the fixture is held off.
	StateSuppressed
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateLit:
		return "lit"
	case StateSuppressed:
		return "suppressed"
	default:
		return "unknown"
	}
}

// Gate answers whether an instant falls in daytime.
type Gate interface {
	IsDaytime(t time.Time) bool
}

// PowerSender issues the power-off command to the fixture.
type PowerSender interface {
	SendPowerOff()
}

// Recorder persists transition events. May be absent.
type Recorder interface {
	Transition(event string, at time.Time)
}

// Coordinator re-evaluates the daytime gate on a fixed period and flips the
// suppression state exactly once per boundary crossing. Transitions are
// edge-triggered: repeated evaluations inside the same state do nothing.
type Coordinator struct {
	gate     Gate
	sender   PowerSender
	recorder Recorder
	interval time.Duration

	state     State
	lastCheck time.Time
}

// NewCoordinator creates a coordinator in the lit state.
// recorder may be nil.
func NewCoordinator(gate Gate, sender PowerSender, interval time.Duration, recorder Recorder) *Coordinator {
	return &Coordinator{
		gate:     gate,
		sender:   sender,
		recorder: recorder,
		interval: interval,
		state:    StateLit,
	}
}

// State returns the current suppression state.
func (c *Coordinator) State() State {
	return c.state
}

// Suppressed reports whether the color cycle is currently held off.
func (c *Coordinator) Suppressed() bool {
	return c.state == StateSuppressed
}

// RunDue evaluates the gate if the check interval has elapsed since the last
// evaluation, otherwise does nothing. Wall-clock based: a late call applies
// one evaluation at that time, there is no catch-up.
func (c *Coordinator) RunDue(now time.Time) {
	if c.lastCheck.IsZero() {
		// First call marks the period start; the first real evaluation
		// happens one interval later.
		c.lastCheck = now
		return
	}
	if now.Sub(c.lastCheck) < c.interval {
		return
	}
	c.lastCheck = now
	c.Evaluate(now)
}

// Evaluate applies the gate once. On the transition into daylight it sends a
// single power-off; on the transition out it only flips state, the next
// animation tick resumes color output on its own.
func (c *Coordinator) Evaluate(now time.Time) {
	daytime := c.gate.IsDaytime(now)

	switch {
	case daytime && c.state == StateLit:
		c.state = StateSuppressed
		log.Info().Time("at", now).Msg("Daylight detected, turning lights off")
		c.sender.SendPowerOff()
		if c.recorder != nil {
			c.recorder.Transition("suppressed", now)
		}

	case !daytime && c.state == StateSuppressed:
		c.state = StateLit
		log.Info().Time("at", now).Msg("Night fell, resuming color cycle")
		if c.recorder != nil {
			c.recorder.Transition("resumed", now)
		}
	}
}
