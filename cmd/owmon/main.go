// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Command owmon walks a single DS18B20-style 1-Wire device through
// ReadROM, ConvertTemperature and ReadScratchpad, verifies the scratchpad's
// CRC-8, and prints the decoded temperature.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"time"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"periph.io/x/conn/v3/driver/driverreg"

	"periph.io/x/onewire"
	"periph.io/x/onewire/gpiobus"
	"periph.io/x/onewire/gpioioctl"
)

func main() {
	chip := flag.String("chip", "", "path to a /dev/gpiochip* device (required unless -dry-run)")
	line := flag.Uint("line", 0, "line offset on the chip")
	dryRun := flag.Bool("dry-run", false, "use a fake bus instead of real hardware, for trying out the tool")
	flag.Parse()

	if err := run(*chip, uint32(*line), *dryRun); err != nil {
		log.Fatal(err)
	}
}

func run(chipPath string, lineNum uint32, dryRun bool) error {
	var pins onewire.Pins
	if dryRun {
		pins = &fakeConvertingPins{}
	} else {
		if chipPath == "" {
			return fmt.Errorf("owmon: -chip is required unless -dry-run is set")
		}
		if _, err := driverreg.Init(); err != nil {
			return fmt.Errorf("owmon: %w", err)
		}
		var gc *gpioioctl.GPIOChip
		for _, c := range gpioioctl.Chips {
			if c.Path() == chipPath {
				gc = c
				break
			}
		}
		if gc == nil {
			return fmt.Errorf("owmon: no GPIO chip registered at %s", chipPath)
		}
		l := gc.ByNumber(int(lineNum))
		if l == nil {
			return fmt.Errorf("owmon: chip %s has no line %d", chipPath, lineNum)
		}
		pins = l.OneWirePins()
	}

	bus, err := onewire.NewBus(pins, &gpiobus.SoftwareTimer{})
	if err != nil {
		return err
	}
	dev, err := onewire.NewDevice(bus)
	if err != nil {
		return err
	}

	ctx := context.Background()
	const poll = 5 * time.Microsecond

	if err := dev.ReadROM(); err != nil {
		return fmt.Errorf("owmon: ReadROM: %w", err)
	}
	if err := gpiobus.RunToCompletion(ctx, dev, poll); err != nil {
		return fmt.Errorf("owmon: ReadROM: %w", err)
	}

	if err := dev.ConvertTemperature(); err != nil {
		return fmt.Errorf("owmon: ConvertTemperature: %w", err)
	}
	if err := gpiobus.RunToCompletion(ctx, dev, poll); err != nil {
		return fmt.Errorf("owmon: ConvertTemperature: %w", err)
	}

	var scratchpad [9]byte
	if err := dev.ReadScratchpad(&scratchpad); err != nil {
		return fmt.Errorf("owmon: ReadScratchpad: %w", err)
	}
	if err := gpiobus.RunToCompletion(ctx, dev, poll); err != nil {
		return fmt.Errorf("owmon: ReadScratchpad: %w", err)
	}

	valid := onewire.CRC8(scratchpad[:8]) == scratchpad[8]
	tempC := float64(int16(scratchpad[0])|int16(scratchpad[1])<<8) / 16.0
	printReading(dev.Address(), tempC, valid)
	if !valid {
		return fmt.Errorf("owmon: scratchpad CRC mismatch for device %x", dev.Address())
	}
	return nil
}

func printReading(addr []byte, tempC float64, valid bool) {
	line := fmt.Sprintf("%x  %6.2fC", addr, tempC)
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Println(line)
		return
	}
	out := colorable.NewColorableStdout()
	swatch := color.NRGBA{R: 0xd0, G: 0x20, B: 0x20, A: 0xff}
	if valid {
		swatch = color.NRGBA{R: 0x20, G: 0xd0, B: 0x20, A: 0xff}
	}
	fmt.Fprintf(out, "%s %s\033[0m\n", ansi256.Default.Block(swatch), line)
}

// fakeConvertingPins is an onewire.Pins double for -dry-run: it reports an
// immediate presence pulse on reset and a fixed ROM/scratchpad byte stream
// on every subsequent read, so the tool can be exercised without hardware.
type fakeConvertingPins struct {
	calls int
}

var dryRunScript = []int{
	0, 1, // reset: immediate presence, immediate release
	// ReadROM: 0x28,0x01,0x02,0x03,0x04,0x05,0x06,0x9A, LSB-first per byte
	0, 0, 0, 1, 0, 1, 0, 0,
	1, 0, 0, 0, 0, 0, 0, 0,
	0, 1, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0,
	0, 0, 1, 0, 0, 0, 0, 0,
	1, 0, 1, 0, 0, 0, 0, 0,
	0, 1, 1, 0, 0, 0, 0, 0,
	0, 1, 0, 1, 1, 0, 0, 1,
	0, 1, // second reset for ConvertTemperature
	0, // conversion not yet done
	0,
	1, // conversion done
	0, 1, // third reset for ReadScratchpad
	// scratchpad 0x90,0x01,0x4B,0x46,0x7F,0xFF,0x0C,0x10,0x33 (CRC-8):
	0, 0, 0, 0, 1, 0, 0, 1,
	1, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 1, 0, 0, 1, 0,
	0, 1, 1, 0, 0, 0, 1, 0,
	1, 1, 1, 1, 1, 1, 1, 0,
	1, 1, 1, 1, 1, 1, 1, 1,
	0, 0, 1, 1, 0, 0, 0, 0,
	0, 0, 0, 0, 1, 0, 0, 0,
	1, 1, 0, 0, 1, 1, 0, 0,
}

func (p *fakeConvertingPins) SetOutput() {}
func (p *fakeConvertingPins) SetInput()  {}
func (p *fakeConvertingPins) DriveHigh() {}
func (p *fakeConvertingPins) DriveLow()  {}

func (p *fakeConvertingPins) Sample() int {
	if p.calls < len(dryRunScript) {
		v := dryRunScript[p.calls]
		p.calls++
		return v
	}
	return 1
}

var _ onewire.Pins = (*fakeConvertingPins)(nil)
