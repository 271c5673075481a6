// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gpiobus adapts periph.io/x/conn/v3/gpio pins into the onewire
// package's Pins capability bundle, and provides a software Timer plus a
// goroutine-based helper for driving the cooperative engine to completion.
package gpiobus

import (
	"context"
	"time"

	"periph.io/x/conn/v3/gpio"

	"periph.io/x/onewire"
)

// GPIOPins adapts a single periph gpio.PinIO into a onewire.Pins capability
// bundle, the way the retrieved bitbang.I2C example generalizes a pair of
// GPIO pins into an I²C master; here a single shared, open-drain data line
// backs 1-Wire instead.
//
// The 1-Wire bus is open-drain: DriveHigh releases the line by switching it
// to an input with a pull-up rather than actively sourcing current, so an
// external pull-up (or the pin's own internal one) must be present.
type GPIOPins struct {
	Pin gpio.PinIO
}

// NewGPIOPins configures pin as a pulled-up input (the bus's idle state)
// and returns a GPIOPins wrapping it.
func NewGPIOPins(pin gpio.PinIO) (*GPIOPins, error) {
	if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, err
	}
	return &GPIOPins{Pin: pin}, nil
}

func (p *GPIOPins) SetOutput() { _ = p.Pin.Out(gpio.Low) }
func (p *GPIOPins) SetInput()  { _ = p.Pin.In(gpio.PullUp, gpio.NoEdge) }
func (p *GPIOPins) DriveHigh() { _ = p.Pin.In(gpio.PullUp, gpio.NoEdge) }
func (p *GPIOPins) DriveLow()  { _ = p.Pin.Out(gpio.Low) }

func (p *GPIOPins) Sample() int {
	if p.Pin.Read() == gpio.High {
		return 1
	}
	return 0
}

var _ onewire.Pins = (*GPIOPins)(nil)

// SoftwareTimer implements onewire.Timer over time.Now, for hosts without a
// dedicated free-running microsecond counter. Because time.Now never wraps
// within any interval this driver cares about, SoftwareTimer's HasElapsed
// and Elapsed are plain subtraction rather than modular arithmetic; the
// onewire.Timer contract only requires the wrapping behavior of whatever
// clock a caller supplies.
type SoftwareTimer struct {
	start time.Time
}

func (t *SoftwareTimer) Start() { t.start = time.Now() }

func (t *SoftwareTimer) Elapsed() time.Duration { return time.Since(t.start) }

func (t *SoftwareTimer) HasElapsed(d time.Duration) bool { return time.Since(t.start) >= d }

func (t *SoftwareTimer) Wait(d time.Duration) {
	for time.Since(t.start) < d {
		// Busy-spin: 1-Wire bit-slot windows are far shorter than the
		// Go scheduler's sleep granularity.
	}
}

var _ onewire.Timer = (*SoftwareTimer)(nil)

// continuer is satisfied by both *onewire.Bus and *onewire.Device.
type continuer interface {
	Continue() (bool, error)
}

// RunToCompletion polls c.Continue in a loop, sleeping pollInterval between
// polls, until it reports done, returns an error, or ctx is canceled. This
// is the Go-idiomatic rendition of "the firmware main loop repeatedly
// invokes Continue": real firmware interleaves other work between polls,
// a goroutine here instead yields the processor.
func RunToCompletion(ctx context.Context, c continuer, pollInterval time.Duration) error {
	for {
		done, err := c.Continue()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}
