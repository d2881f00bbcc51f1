package phase

import (
	"testing"
	"time"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestStepCycle(t *testing.T) {
	tm := DefaultTiming()
	s := State{Phase: Idle, EnteredAt: epoch}

	// Not yet due
	if next, fired := Step(s, epoch.Add(1499*time.Millisecond), tm); fired || next != s {
		t.Fatalf("idle fired early: %+v", next)
	}

	now := epoch.Add(1500 * time.Millisecond)
	s, fired := Step(s, now, tm)
	if !fired || s.Phase != Warning || !s.EnteredAt.Equal(now) {
		t.Fatalf("expected warning at %v, got %+v", now, s)
	}

	now = now.Add(time.Second)
	s, fired = Step(s, now, tm)
	if !fired || s.Phase != Damage {
		t.Fatalf("expected damage, got %+v", s)
	}

	now = now.Add(500 * time.Millisecond)
	s, fired = Step(s, now, tm)
	if !fired || s.Phase != Idle || s.WaveCount != 1 {
		t.Fatalf("expected idle with wave 1, got %+v", s)
	}
}

func TestStepFiresOncePerCall(t *testing.T) {
	tm := DefaultTiming()
	tm.MinIdle, tm.BaseIdle = 0, 0
	s := State{Phase: Idle, EnteredAt: epoch}

	// Far past every duration: still only one hop
	now := epoch.Add(time.Hour)
	s, fired := Step(s, now, tm)
	if !fired || s.Phase != Warning {
		t.Fatalf("expected single hop to warning, got %+v", s)
	}
	if s.Elapsed(now) != 0 {
		t.Errorf("elapsed after entry = %v, want 0", s.Elapsed(now))
	}

	// Same instant again: warning needs 1s, must not fire
	if _, fired := Step(s, now, tm); fired {
		t.Error("transition double-fired on the entry tick")
	}
}

func TestStepZeroIdleWaitsForNextCall(t *testing.T) {
	tm := DefaultTiming()
	tm.BaseIdle, tm.MinIdle = 0, 0
	s := State{Phase: Damage, EnteredAt: epoch}

	now := epoch.Add(tm.Damage)
	s, _ = Step(s, now, tm)
	if s.Phase != Idle {
		t.Fatalf("phase = %v, want idle", s.Phase)
	}
	s, fired := Step(s, now, tm)
	if !fired || s.Phase != Warning {
		t.Errorf("zero idle should advance on the next evaluation, got %+v", s)
	}
}

func TestPhaseString(t *testing.T) {
	if Idle.String() != "idle" || Warning.String() != "warning" || Damage.String() != "damage" {
		t.Error("unexpected phase names")
	}
}
