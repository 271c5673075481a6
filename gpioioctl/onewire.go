// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gpioioctl

import "periph.io/x/conn/v3/gpio"

// oneWirePins adapts a single GPIOLine into the onewire.Pins capability
// bundle. The 1-Wire bus is open-drain: "high" is released to the external
// pull-up by switching the line to an input, never by driving it high.
type oneWirePins struct {
	line *GPIOLine
}

// OneWirePins adapts line into the onewire.Pins capability bundle used by
// periph.io/x/onewire.NewBus, letting a single character-device GPIO line
// back a software 1-Wire bus directly.
func (line *GPIOLine) OneWirePins() *oneWirePins {
	return &oneWirePins{line: line}
}

func (p *oneWirePins) SetOutput() {
	_ = p.line.Out(gpio.Low)
}

func (p *oneWirePins) SetInput() {
	_ = p.line.In(gpio.PullUp, gpio.NoEdge)
}

func (p *oneWirePins) DriveHigh() {
	_ = p.line.In(gpio.PullUp, gpio.NoEdge)
}

func (p *oneWirePins) DriveLow() {
	_ = p.line.Out(gpio.Low)
}

func (p *oneWirePins) Sample() int {
	if p.line.Read() {
		return 1
	}
	return 0
}
