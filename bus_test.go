// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewire

import (
	"errors"
	"testing"
	"time"
)

// fakeTimer is a Timer double driven by a shared, test-controlled clock
// instead of a real wrapping hardware counter.
type fakeTimer struct {
	now   *time.Duration
	start time.Duration
}

func (t *fakeTimer) Start() { t.start = *t.now }

func (t *fakeTimer) Elapsed() time.Duration { return *t.now - t.start }

func (t *fakeTimer) HasElapsed(d time.Duration) bool { return *t.now-t.start >= d }

func (t *fakeTimer) Wait(d time.Duration) {
	target := t.start + d
	if target > *t.now {
		*t.now = target
	}
}

// alwaysElapsedTimer treats every delay as already having elapsed. Tests
// that exercise data flow rather than timing use it so a Bus/Device script
// runs to completion in as few Continue calls as the state machine itself
// requires.
type alwaysElapsedTimer struct{}

func (alwaysElapsedTimer) Start()                       {}
func (alwaysElapsedTimer) Elapsed() time.Duration        { return 0 }
func (alwaysElapsedTimer) HasElapsed(time.Duration) bool { return true }
func (alwaysElapsedTimer) Wait(time.Duration)            {}

// wirePins is a Pins double that can simulate either a presence-pulse
// timing profile (lowAt/highAt, driven by the shared clock and spinTick) or
// a plain queue of Sample results consumed in call order. Exactly one of
// the two modes is used by a given test.
type wirePins struct {
	now *time.Duration

	// presence-pulse mode
	phaseStart   time.Duration
	phaseStarted bool
	neverLow     bool
	neverHigh    bool
	lowAt        time.Duration
	highAt       time.Duration
	spinTick     time.Duration

	// queue mode
	queue    []int
	queueIdx int

	driven         int
	driveHighCalls int
	driveLowCalls  int
}

func (p *wirePins) SetOutput() { p.phaseStarted = false }

func (p *wirePins) SetInput() {
	if !p.phaseStarted {
		p.phaseStart = *p.now
		p.phaseStarted = true
	}
}

func (p *wirePins) DriveHigh() { p.driven = 1; p.driveHighCalls++ }
func (p *wirePins) DriveLow()  { p.driven = 0; p.driveLowCalls++ }

func (p *wirePins) Sample() int {
	if len(p.queue) > 0 {
		if p.queueIdx < len(p.queue) {
			v := p.queue[p.queueIdx]
			p.queueIdx++
			return v
		}
		return 1
	}
	if p.spinTick > 0 {
		*p.now += p.spinTick
	}
	elapsed := *p.now - p.phaseStart
	if !p.neverLow && elapsed >= p.lowAt {
		if !p.neverHigh && elapsed >= p.highAt {
			return 1
		}
		return 0
	}
	return 1
}

func TestBusRequiresCapabilities(t *testing.T) {
	var now time.Duration
	if _, err := NewBus(nil, &fakeTimer{now: &now}); err == nil {
		t.Error("NewBus with nil pins should fail")
	}
	if _, err := NewBus(&wirePins{now: &now}, nil); err == nil {
		t.Error("NewBus with nil timer should fail")
	}
}

func TestContinueOnIdleIsNoop(t *testing.T) {
	var now time.Duration
	bus, err := NewBus(&wirePins{now: &now}, &fakeTimer{now: &now})
	if err != nil {
		t.Fatal(err)
	}
	done, err := bus.Continue()
	if done || !errors.Is(err, ErrNoop) {
		t.Errorf("Continue() on idle bus = (%v, %v), want (false, ErrNoop)", done, err)
	}
}

func TestTerminateOperationIdempotent(t *testing.T) {
	var now time.Duration
	bus, _ := NewBus(&wirePins{now: &now}, &fakeTimer{now: &now})
	bus.TerminateOperation()
	bus.TerminateOperation()
	if bus.state != busIdle {
		t.Errorf("state = %v, want busIdle", bus.state)
	}
}

func TestHappyPathReset(t *testing.T) {
	var now time.Duration
	pins := &wirePins{now: &now, lowAt: 20 * time.Microsecond, highAt: 200 * time.Microsecond, spinTick: 5 * time.Microsecond}
	timer := &fakeTimer{now: &now}
	bus, err := NewBus(pins, timer)
	if err != nil {
		t.Fatal(err)
	}
	if err := bus.Reset(); err != nil {
		t.Fatal(err)
	}
	polls := 0
	for {
		done, err := bus.Continue()
		if err != nil {
			t.Fatalf("Continue() returned error %v", err)
		}
		if done {
			break
		}
		polls++
		if polls > 10000 {
			t.Fatal("reset never completed")
		}
		now += 50 * time.Microsecond
	}
	if polls == 0 {
		t.Error("expected at least one in-progress poll before completion")
	}
	if now < 1000*time.Microsecond {
		t.Errorf("reset completed after only %s, want >= 1000us", now)
	}
	if bus.state != busIdle {
		t.Errorf("state after completed reset = %v, want busIdle", bus.state)
	}
}

func TestResetNoResponse(t *testing.T) {
	var now time.Duration
	pins := &wirePins{now: &now, neverLow: true, spinTick: 10 * time.Microsecond}
	timer := &fakeTimer{now: &now}
	bus, _ := NewBus(pins, timer)
	if err := bus.Reset(); err != nil {
		t.Fatal(err)
	}
	now = ResetLowTime
	done, err := bus.Continue()
	if done || !errors.Is(err, ErrNoResponse) {
		t.Errorf("Continue() = (%v, %v), want (false, ErrNoResponse)", done, err)
	}
	if bus.state != busIdle {
		t.Errorf("state after NO_RESPONSE = %v, want busIdle", bus.state)
	}
}

func TestResetBusDown(t *testing.T) {
	var now time.Duration
	pins := &wirePins{now: &now, lowAt: 10 * time.Microsecond, neverHigh: true, spinTick: 10 * time.Microsecond}
	timer := &fakeTimer{now: &now}
	bus, _ := NewBus(pins, timer)
	if err := bus.Reset(); err != nil {
		t.Fatal(err)
	}
	now = ResetLowTime
	done, err := bus.Continue()
	if done || !errors.Is(err, ErrBusDown) {
		t.Errorf("Continue() = (%v, %v), want (false, ErrBusDown)", done, err)
	}
	if bus.state != busIdle {
		t.Errorf("state after BUS_DOWN = %v, want busIdle", bus.state)
	}
}

func TestWriteByte(t *testing.T) {
	var now time.Duration
	pins := &wirePins{now: &now}
	bus, _ := NewBus(pins, &fakeTimer{now: &now})
	if err := bus.Write(0x55); err != nil {
		t.Fatal(err)
	}
	want := []int{1, 0, 1, 0, 1, 0, 1, 0} // 0x55, LSB first
	for i, w := range want {
		pins.driveHighCalls = 0
		done, err := bus.Continue()
		if err != nil {
			t.Fatalf("bit %d: Continue() error %v", i, err)
		}
		if i < 7 && done {
			t.Fatalf("bit %d: Continue() reported done early", i)
		}
		if i == 7 && !done {
			t.Fatalf("bit 7: Continue() did not report done")
		}
		got := 0
		if pins.driveHighCalls == 2 {
			got = 1
		} else if pins.driveHighCalls != 1 {
			t.Fatalf("bit %d: DriveHigh called %d times, want 1 or 2", i, pins.driveHighCalls)
		}
		if got != w {
			t.Errorf("bit %d = %d, want %d", i, got, w)
		}
	}
}

func TestReadByte(t *testing.T) {
	var now time.Duration
	pins := &wirePins{now: &now, queue: []int{1, 1, 0, 0, 0, 1, 0, 1}} // 0xA3, LSB first
	bus, _ := NewBus(pins, &fakeTimer{now: &now})
	if err := bus.Read(); err != nil {
		t.Fatal(err)
	}
	var done bool
	var err error
	for i := 0; i < 8; i++ {
		done, err = bus.Continue()
		if err != nil {
			t.Fatalf("bit %d: Continue() error %v", i, err)
		}
	}
	if !done {
		t.Fatal("Read did not complete after 8 bits")
	}
	if got := bus.LastByte(); got != 0xA3 {
		t.Errorf("LastByte() = %#x, want 0xA3", got)
	}
}

func TestBusyRejection(t *testing.T) {
	var now time.Duration
	bus, _ := NewBus(&wirePins{now: &now}, &fakeTimer{now: &now})
	if err := bus.Write(0x00); err != nil {
		t.Fatal(err)
	}
	if err := bus.Write(0x00); !errors.Is(err, ErrBusy) {
		t.Errorf("second Write() = %v, want ErrBusy", err)
	}
	if err := bus.Reset(); !errors.Is(err, ErrBusy) {
		t.Errorf("Reset() while busy = %v, want ErrBusy", err)
	}
}
