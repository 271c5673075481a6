// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gpioioctl

import "testing"

func TestChipsRegistered(t *testing.T) {
	if len(Chips) == 0 {
		t.Fatal("expected at least one GPIO chip to be registered (dummy on non-Linux)")
	}
}

func TestChipAccessors(t *testing.T) {
	chip := Chips[0]
	if chip.Name() == "" {
		t.Error("chip.Name() returned empty string")
	}
	if chip.LineCount() != len(chip.Lines()) {
		t.Errorf("LineCount() = %d, len(Lines()) = %d", chip.LineCount(), len(chip.Lines()))
	}
	if chip.ByNumber(0) == nil {
		t.Fatal("ByNumber(0) returned nil on a chip with at least one line")
	}
	if chip.ByName(chip.ByNumber(0).Name()) != chip.ByNumber(0) {
		t.Error("ByName did not round-trip the name returned by ByNumber")
	}
}

func TestOneWirePins(t *testing.T) {
	line := Chips[0].ByNumber(0)
	pins := line.OneWirePins()

	pins.SetOutput()
	pins.DriveLow()
	if got := pins.Sample(); got != 0 {
		t.Errorf("Sample() after DriveLow() = %d, want 0", got)
	}

	pins.SetInput()
	pins.DriveHigh()
	// On a dummy/unbacked line without a real pull-up, Sample() cannot be
	// asserted to be 1; this only exercises that the calls do not panic.
	_ = pins.Sample()
}
