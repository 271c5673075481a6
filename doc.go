// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package onewire implements a cooperative, non-blocking bit-bang driver
// core for the 1-Wire serial bus.
//
// The core is split into two layered state machines, each advanced by a
// single Continue poll:
//
//   - Bus drives the wire itself: reset/presence pulses, byte writes, byte
//     reads, all as timed bit slots.
//   - Device holds an 8-byte ROM address and drives Bus through a compiled
//     opcode script (ReadROMScript, ReadScratchpadScript,
//     ConvertTemperatureScript) to perform multi-byte transactions.
//
// Neither type spawns goroutines or allocates after construction, and no
// call blocks longer than a single bit slot, except the presence-detect
// step of a reset, which spins for up to two presence windows. Callers supply the hardware through the
// Pins and Timer interfaces and are expected to poll Continue from their
// own scheduling loop; see the gpiobus package for a goroutine-based
// RunToCompletion helper and real GPIO-backed Pins implementations.
package onewire
