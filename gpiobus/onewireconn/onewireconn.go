// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package onewireconn adapts the cooperative bit-bang engine in
// periph.io/x/onewire into the real periph.io/x/conn/v3/onewire.Bus
// interface, so periph-ecosystem code written against that interface (for
// example onewire.Search) can drive a bit-banged GPIO line the same way it
// would drive a DS2482/DS2483 bridge chip.
package onewireconn

import (
	"context"
	"fmt"
	"time"

	pow "periph.io/x/conn/v3/onewire"

	"periph.io/x/onewire"
	"periph.io/x/onewire/gpiobus"
)

// unsupportedError implements error and pow.BusError, modeled on the
// ds248x device's busError/shortedBusError idiom: a plain string type so
// callers can detect "this bus simply cannot do that" without a dynamic
// error allocation.
type unsupportedError string

func (e unsupportedError) Error() string  { return string(e) }
func (e unsupportedError) BusError() bool { return true }

// errStrongPullup is returned by Tx when asked for a strong pull-up; the
// core engine has no parasite-power support.
const errStrongPullup = unsupportedError("onewireconn: strong pull-up not supported")

// DefaultPollInterval is how often Dev polls the engine's Continue while
// waiting for a reset, write, or read to finish.
const DefaultPollInterval = 10 * time.Microsecond

// Dev implements pow.Bus (and conn.Resource) over a *onewire.Bus.
//
// Unlike onewire.Device, which only runs the three fixed canonical scripts,
// Dev's Tx sends and receives arbitrary byte slices, matching the
// pow.Bus.Tx contract: the caller is responsible for prefixing a match-ROM
// command and address when addressing a specific slave.
type Dev struct {
	Bus          *onewire.Bus
	PollInterval time.Duration
}

// NewDev wraps bus as a pow.Bus-compatible device.
func NewDev(bus *onewire.Bus) *Dev {
	return &Dev{Bus: bus, PollInterval: DefaultPollInterval}
}

func (d *Dev) String() string { return "onewireconn.Dev" }

// Halt implements conn.Resource. The bit-bang engine holds no resources
// beyond the caller-supplied Pins/Timer, so there is nothing to release.
func (d *Dev) Halt() error { return nil }

// Tx implements pow.Bus. It issues a reset, writes every byte of w, reads
// len(r) bytes into r, and returns.
func (d *Dev) Tx(w, r []byte, power pow.Pullup) error {
	if power == pow.StrongPullup {
		return errStrongPullup
	}
	ctx := context.Background()
	if err := d.Bus.Reset(); err != nil {
		return fmt.Errorf("onewireconn: reset: %w", err)
	}
	if err := gpiobus.RunToCompletion(ctx, d.Bus, d.PollInterval); err != nil {
		return fmt.Errorf("onewireconn: reset: %w", err)
	}
	for _, b := range w {
		if err := d.Bus.Write(b); err != nil {
			return fmt.Errorf("onewireconn: write: %w", err)
		}
		if err := gpiobus.RunToCompletion(ctx, d.Bus, d.PollInterval); err != nil {
			return fmt.Errorf("onewireconn: write: %w", err)
		}
	}
	for i := range r {
		if err := d.Bus.Read(); err != nil {
			return fmt.Errorf("onewireconn: read: %w", err)
		}
		if err := gpiobus.RunToCompletion(ctx, d.Bus, d.PollInterval); err != nil {
			return fmt.Errorf("onewireconn: read: %w", err)
		}
		r[i] = d.Bus.LastByte()
	}
	return nil
}

var _ pow.Bus = (*Dev)(nil)
