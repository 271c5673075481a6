// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewire

import "errors"

type deviceState int

const (
	deviceIdle deviceState = iota
	deviceBusy
	deviceWait
)

// Device holds one slave's ROM address and drives a Bus through a compiled
// opcode script (ReadROMScript, ReadScratchpadScript,
// ConvertTemperatureScript) to perform a multi-byte transaction.
//
// buf is the send buffer from the data model: buf[0] is the command byte,
// buf[1:9] is the 8-byte ROM address (returned as-is by Address, and
// written in place by ReadROM), and buf[9] is the function opcode for a
// match-ROM transaction. Laying them out in one array lets every script
// iterate a single write index with no copying.
type Device struct {
	bus *Bus
	buf [10]byte

	ops       []step
	writeBuf  []byte
	writeIdx  int
	readSink  []byte
	readIdx   int
	waitValue int
	state     deviceState
}

// NewDevice constructs an idle Device bound to bus.
func NewDevice(bus *Bus) (*Device, error) {
	if bus == nil {
		return nil, errors.New("onewire: NewDevice: bus is nil")
	}
	return &Device{bus: bus, state: deviceIdle}, nil
}

// Address returns the device's 8-byte ROM address slot. Before a
// successful ReadROM it holds zeroes.
func (d *Device) Address() []byte {
	return d.buf[1:9]
}

// IsBusy reports whether a script is in progress.
func (d *Device) IsBusy() bool {
	return d.state != deviceIdle
}

// ReadROM starts the ReadROMScript, which reads the single slave's 8-byte
// ROM code directly into Address(). Valid only when exactly one device is
// present on the bus.
func (d *Device) ReadROM() error {
	if d.IsBusy() {
		return ErrBusy
	}
	d.buf[0] = cmdReadROM
	return d.begin(ReadROMScript, d.buf[0:1], d.Address())
}

// ReadScratchpad starts the ReadScratchpadScript, addressing this device by
// match-ROM and filling sink with its 9-byte scratchpad.
func (d *Device) ReadScratchpad(sink *[9]byte) error {
	if d.IsBusy() {
		return ErrBusy
	}
	d.prepareMatchROM(cmdReadScratchpad)
	return d.begin(ReadScratchpadScript, d.buf[0:10], sink[:])
}

// ConvertTemperature starts the ConvertTemperatureScript, addressing this
// device by match-ROM, issuing a convert-T command, and waiting for the
// device to release the line.
func (d *Device) ConvertTemperature() error {
	if d.IsBusy() {
		return ErrBusy
	}
	d.prepareMatchROM(cmdConvertT)
	return d.begin(ConvertTemperatureScript, d.buf[0:10], nil)
}

func (d *Device) prepareMatchROM(function byte) {
	d.buf[0] = cmdMatchROM
	d.buf[9] = function
}

func (d *Device) begin(ops []step, writeBuf, readSink []byte) error {
	d.ops = ops
	d.writeBuf = writeBuf
	d.writeIdx = 0
	d.readSink = readSink
	d.readIdx = 0
	d.state = deviceBusy
	if err := d.startOp(); err != nil {
		d.state = deviceIdle
		return err
	}
	return nil
}

// startOp decodes the head of d.ops and kicks it off on the bus.
func (d *Device) startOp() error {
	switch d.ops[0] {
	case opReset:
		return d.bus.Reset()
	case opWrite:
		err := d.bus.Write(d.writeBuf[d.writeIdx])
		d.writeIdx++
		return err
	case opRead:
		return d.bus.Read()
	case opWaitForOne:
		d.waitValue = 1
		d.state = deviceWait
		return nil
	default:
		return errors.New("onewire: device: unknown opcode")
	}
}

// advance pops the completed opcode, collecting its result if it was a
// READ, and either finishes the script or starts the next opcode.
func (d *Device) advance() (bool, error) {
	if d.ops[0] == opRead {
		d.readSink[d.readIdx] = d.bus.LastByte()
		d.readIdx++
	}
	d.ops = d.ops[1:]
	if len(d.ops) == 0 {
		d.state = deviceIdle
		return true, nil
	}
	if err := d.startOp(); err != nil {
		d.state = deviceIdle
		return false, err
	}
	return false, nil
}

// Continue advances the in-flight script by one step. It returns
// (true, nil) once the whole script completes, (false, nil) if the caller
// must poll again, and (false, err) if the script failed; on failure the
// Device is forced back to IDLE in the same call.
func (d *Device) Continue() (bool, error) {
	switch d.state {
	case deviceIdle:
		return false, ErrNoop
	case deviceBusy:
		done, err := d.bus.Continue()
		if err != nil {
			d.state = deviceIdle
			return false, err
		}
		if !done {
			return false, nil
		}
		return d.advance()
	case deviceWait:
		level, err := d.bus.ReadBit()
		if err != nil {
			d.state = deviceIdle
			return false, err
		}
		if level != d.waitValue {
			return false, nil
		}
		return d.advance()
	default:
		d.state = deviceIdle
		return false, errors.New("onewire: device in unknown state")
	}
}
