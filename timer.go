// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewire

import "time"

// Pins is the capability bundle a caller must supply to NewBus. It gathers
// the five pin-level hooks the bit-bang engine needs; installing them as a
// single bundle at construction means a Bus can never exist half-wired.
//
// The 1-Wire line is open-drain: DriveHigh is expected to release the line
// to the external pull-up (typically by switching the pin to an input)
// rather than actively sourcing current.
type Pins interface {
	// SetOutput configures the line as an output.
	SetOutput()
	// SetInput configures the line as an input.
	SetInput()
	// DriveHigh releases the line, letting the pull-up take it high.
	DriveHigh()
	// DriveLow actively pulls the line low.
	DriveLow()
	// Sample reads the instantaneous line level, 0 or 1.
	Sample() int
}

// Timer is a free-running, wrapping microsecond-scale counter. All interval
// comparisons are expected to use modular arithmetic relative to the value
// sampled by Start, so a single wrap of the underlying counter does not
// corrupt an elapsed-time computation.
type Timer interface {
	// Start samples and records the current counter value as the interval's
	// origin.
	Start()
	// Elapsed returns the duration since the most recent Start.
	Elapsed() time.Duration
	// HasElapsed reports whether at least d has passed since the most
	// recent Start.
	HasElapsed(d time.Duration) bool
	// Wait busy-spins until d has elapsed since the most recent Start.
	Wait(d time.Duration)
}

// Wire-level timing constants, in the units the 1-Wire physical layer
// specifies them.
const (
	// ResetLowTime is how long the master holds the line low to begin a
	// reset pulse.
	ResetLowTime = 500 * time.Microsecond
	// ResetRecoverTime is the minimum settle time after a reset completes
	// before any other operation may begin.
	ResetRecoverTime = 500 * time.Microsecond
	// PresenceSettleTime is the delay after releasing the reset pulse
	// before sampling for presence begins.
	PresenceSettleTime = 1 * time.Microsecond
	// PresenceWindow bounds both how long a slave may take to assert
	// presence and how long it may then hold the line before releasing it.
	PresenceWindow = 480 * time.Microsecond

	// writeSlotPulldown is the initial low pulse that opens every write
	// slot, during which a slave samples the line.
	writeSlotPulldown = 2 * time.Microsecond
	// writeSlotHold is how long a write-1 slot stays released after the
	// initial pulldown; a write-0 slot instead stays low for this long.
	writeSlotHold = 90 * time.Microsecond

	// readSlotPulldown is the master's brief pulldown that opens a read
	// slot.
	readSlotPulldown = 1 * time.Microsecond
	// readSlotSampleDelay is measured from the end of readSlotPulldown; the
	// master samples the line at this point, about 12 us after the slot
	// starts.
	readSlotSampleDelay = 11 * time.Microsecond
)
