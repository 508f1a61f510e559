// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gpioport

// PinMap names the BCM-style GPIO line offsets the bit-bang master drives
// and samples. All five lines live on the same chip.
type PinMap struct {
	DAT uint32 // card -> master data line, open-collector, pulled up
	CMD uint32 // master -> card data line
	SEL uint32 // master-driven chip select, low = selected
	CLK uint32 // master-driven clock, idle high
	ACK uint32 // card-driven acknowledge pulse, active low
}

// DefaultPins is the default header pin map: DAT=23, CMD=24, SEL=17, CLK=27,
// ACK=22.
var DefaultPins = PinMap{DAT: 23, CMD: 24, SEL: 17, CLK: 27, ACK: 22}

// LegacyPins is an alternate mapping seen on older wiring: CMD=14, DAT=15,
// SEL=2, CLK=3, ACK=4.
var LegacyPins = PinMap{CMD: 14, DAT: 15, SEL: 2, CLK: 3, ACK: 4}

// DefaultChipPath is the character device most single-board computers
// expose their header GPIO lines through.
const DefaultChipPath = "/dev/gpiochip0"
