package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/actueld/internal/animator"
	"github.com/dokzlo13/actueld/internal/ble"
	"github.com/dokzlo13/actueld/internal/daylight"
)

// Loop is the control loop: each iteration runs the coordinator's due check
// first, then either advances the animation or idles. Because everything runs
// on this one goroutine, a state flip and its power-off side effect are
// always fully applied before the loop reads the flag.
type Loop struct {
	coordinator *daylight.Coordinator
	animator    *animator.Animator
	channel     *ble.Channel

	cycleInterval time.Duration // between color frames
	idleInterval  time.Duration // between checks while suppressed
}

// NewLoop creates the control loop
func NewLoop(
	coordinator *daylight.Coordinator,
	anim *animator.Animator,
	channel *ble.Channel,
	cycleInterval, idleInterval time.Duration,
) *Loop {
	return &Loop{
		coordinator:   coordinator,
		animator:      anim,
		channel:       channel,
		cycleInterval: cycleInterval,
		idleInterval:  idleInterval,
	}
}

// step runs one iteration and returns how long to wait before the next
func (l *Loop) step(now time.Time) time.Duration {
	l.coordinator.RunDue(now)

	if l.coordinator.Suppressed() {
		return l.idleInterval
	}

	r, g, b := l.animator.Tick()
	l.channel.SendColor(r, g, b)
	return l.cycleInterval
}

// Run executes the loop until the context is cancelled
func (l *Loop) Run(ctx context.Context) error {
	log.Info().
		Dur("cycle_interval", l.cycleInterval).
		Dur("idle_interval", l.idleInterval).
		Msg("Control loop started")

	for {
		delay := l.step(time.Now())

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info().Msg("Control loop stopping")
			return nil
		case <-timer.C:
		}
	}
}
