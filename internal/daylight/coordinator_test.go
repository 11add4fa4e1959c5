package daylight

import (
	"testing"
	"time"
)

// fakeGate returns a fixed answer regardless of the instant
type fakeGate struct {
	daytime bool
}

func (g *fakeGate) IsDaytime(time.Time) bool {
	return g.daytime
}

// fakeSender counts power-off commands
type fakeSender struct {
	powerOffs int
}

func (s *fakeSender) SendPowerOff() {
	s.powerOffs++
}

// fakeRecorder captures journaled transitions
type fakeRecorder struct {
	events []string
}

func (r *fakeRecorder) Transition(event string, _ time.Time) {
	r.events = append(r.events, event)
}

func TestCoordinatorStartsLit(t *testing.T) {
	c := NewCoordinator(&fakeGate{}, &fakeSender{}, 2*time.Minute, nil)
	if c.State() != StateLit {
		t.Errorf("initial state = %s, want %s", c.State(), StateLit)
	}
	if c.Suppressed() {
		t.Error("fresh coordinator reports suppressed")
	}
}

func TestEvaluateDaytimeSuppresses(t *testing.T) {
	gate := &fakeGate{daytime: true}
	sender := &fakeSender{}
	c := NewCoordinator(gate, sender, 2*time.Minute, nil)

	now := time.Now()
	c.Evaluate(now)

	if c.State() != StateSuppressed {
		t.Errorf("state = %s, want %s", c.State(), StateSuppressed)
	}
	if sender.powerOffs != 1 {
		t.Errorf("power-offs = %d, want 1", sender.powerOffs)
	}

	// Re-evaluating in the same state must not re-fire the command
	c.Evaluate(now)
	c.Evaluate(now.Add(time.Minute))

	if sender.powerOffs != 1 {
		t.Errorf("power-offs after repeated evaluation = %d, want 1", sender.powerOffs)
	}
	if c.State() != StateSuppressed {
		t.Errorf("state after repeated evaluation = %s, want %s", c.State(), StateSuppressed)
	}
}

func TestEvaluateNightResumesWithoutCommand(t *testing.T) {
	gate := &fakeGate{daytime: true}
	sender := &fakeSender{}
	c := NewCoordinator(gate, sender, 2*time.Minute, nil)

	c.Evaluate(time.Now())
	if !c.Suppressed() {
		t.Fatal("expected suppressed state after daytime evaluation")
	}

	gate.daytime = false
	c.Evaluate(time.Now())

	if c.State() != StateLit {
		t.Errorf("state = %s, want %s", c.State(), StateLit)
	}
	// The off-transition sent one command; the on-transition sends none.
	if sender.powerOffs != 1 {
		t.Errorf("power-offs = %d, want 1", sender.powerOffs)
	}
}

func TestEvaluateNightWhileLitIsNoop(t *testing.T) {
	sender := &fakeSender{}
	recorder := &fakeRecorder{}
	c := NewCoordinator(&fakeGate{daytime: false}, sender, 2*time.Minute, recorder)

	for i := 0; i < 5; i++ {
		c.Evaluate(time.Now())
	}

	if c.State() != StateLit {
		t.Errorf("state = %s, want %s", c.State(), StateLit)
	}
	if sender.powerOffs != 0 {
		t.Errorf("power-offs = %d, want 0", sender.powerOffs)
	}
	if len(recorder.events) != 0 {
		t.Errorf("journaled %d events during no-op evaluations, want 0", len(recorder.events))
	}
}

func TestRunDueHonorsInterval(t *testing.T) {
	gate := &fakeGate{daytime: true}
	sender := &fakeSender{}
	c := NewCoordinator(gate, sender, 2*time.Minute, nil)

	start := time.Date(2024, 6, 21, 10, 0, 0, 0, time.UTC)

	// First call only primes the period
	c.RunDue(start)
	if sender.powerOffs != 0 {
		t.Fatalf("power-off fired on priming call")
	}

	// Within the interval: nothing happens
	c.RunDue(start.Add(time.Minute))
	if c.Suppressed() || sender.powerOffs != 0 {
		t.Fatal("evaluation ran before the interval elapsed")
	}

	// Interval elapsed: one evaluation, one transition
	c.RunDue(start.Add(2 * time.Minute))
	if !c.Suppressed() {
		t.Error("expected suppression after due evaluation")
	}
	if sender.powerOffs != 1 {
		t.Errorf("power-offs = %d, want 1", sender.powerOffs)
	}
}

func TestRunDueLateCheckAppliesOnce(t *testing.T) {
	// A host busy past the interval still gets exactly one evaluation,
	// there is no catch-up queue.
	gate := &fakeGate{daytime: true}
	sender := &fakeSender{}
	c := NewCoordinator(gate, sender, 2*time.Minute, nil)

	start := time.Date(2024, 6, 21, 10, 0, 0, 0, time.UTC)
	c.RunDue(start)
	c.RunDue(start.Add(30 * time.Minute))

	if sender.powerOffs != 1 {
		t.Errorf("power-offs after late check = %d, want 1", sender.powerOffs)
	}
}

func TestTransitionsAreJournaled(t *testing.T) {
	gate := &fakeGate{daytime: true}
	recorder := &fakeRecorder{}
	c := NewCoordinator(gate, &fakeSender{}, 2*time.Minute, recorder)

	c.Evaluate(time.Now())
	gate.daytime = false
	c.Evaluate(time.Now())

	want := []string{"suppressed", "resumed"}
	if len(recorder.events) != len(want) {
		t.Fatalf("journaled %d events, want %d", len(recorder.events), len(want))
	}
	for i, event := range want {
		if recorder.events[i] != event {
			t.Errorf("event[%d] = %q, want %q", i, recorder.events[i], event)
		}
	}
}

func TestStateString(t *testing.T) {
	if StateLit.String() != "lit" {
		t.Errorf("StateLit.String() = %q", StateLit.String())
	}
	if StateSuppressed.String() != "suppressed" {
		t.Errorf("StateSuppressed.String() = %q", StateSuppressed.String())
	}
}
