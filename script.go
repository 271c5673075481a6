// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewire

// step is one opcode in a Device script.
type step int

const (
	opReset step = iota
	opWrite
	opRead
	opWaitForOne
)

// ROM command bytes recognized by the canonical scripts below.
const (
	cmdReadROM        = 0x33
	cmdMatchROM       = 0x55
	cmdReadScratchpad = 0xBE
	cmdConvertT       = 0x44
)

// ReadROMScript reads the 8-byte ROM code of the single slave on the bus.
// Valid only when exactly one device is present.
var ReadROMScript = []step{opReset, opWrite, opRead, opRead, opRead, opRead, opRead, opRead, opRead, opRead}

// ReadScratchpadScript addresses a device by match-ROM and reads its 9-byte
// scratchpad.
var ReadScratchpadScript = []step{
	opReset,
	opWrite,                                 // match-ROM command
	opWrite, opWrite, opWrite, opWrite, opWrite, opWrite, opWrite, opWrite, // 8 address bytes
	opWrite, // read-scratchpad command
	opRead, opRead, opRead, opRead, opRead, opRead, opRead, opRead, opRead,
}

// ConvertTemperatureScript addresses a device by match-ROM, starts a
// temperature conversion, and waits for the device to release the line.
var ConvertTemperatureScript = []step{
	opReset,
	opWrite,
	opWrite, opWrite, opWrite, opWrite, opWrite, opWrite, opWrite, opWrite,
	opWrite,
	opWaitForOne,
}
