//go:build linux

// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package linegpio

// These tests drive a real GPIO chip and require two lines jumpered
// together (one requested as output, the other as input), the same setup
// periph.io/x/host/v3/gpioioctl's own tests document. They are skipped when
// no /dev/gpiochip* device is present, which is the common case off a real
// single-board computer.

import (
	"path/filepath"
	"testing"

	"periph.io/x/conn/v3/gpio"
)

const (
	testOutOffset = 5
	testInOffset  = 6
)

func openTestChip(t *testing.T) *Chip {
	t.Helper()
	matches, err := filepath.Glob("/dev/gpiochip*")
	if err != nil || len(matches) == 0 {
		t.Skip("no /dev/gpiochip* device available")
	}
	chip, err := Open(matches[0])
	if err != nil {
		t.Skipf("could not open %s: %v", matches[0], err)
	}
	t.Cleanup(func() { _ = chip.Close() })
	return chip
}

func TestChipInfo(t *testing.T) {
	chip := openTestChip(t)
	if chip.Name() == "" {
		t.Error("chip.Name() is empty")
	}
	if chip.LineCount() <= 0 {
		t.Error("chip.LineCount() is not positive")
	}
}

func TestLineOutIn(t *testing.T) {
	chip := openTestChip(t)
	if chip.LineCount() <= testInOffset {
		t.Skip("chip does not have enough lines for this test")
	}

	out, err := chip.Line(testOutOffset)
	if err != nil {
		t.Fatalf("Line(%d): %v", testOutOffset, err)
	}
	defer out.Close()

	in, err := chip.Line(testInOffset)
	if err != nil {
		t.Fatalf("Line(%d): %v", testInOffset, err)
	}
	defer in.Close()

	if err := in.In(gpio.PullDown); err != nil {
		t.Fatalf("in.In(): %v", err)
	}

	if err := out.Out(gpio.High); err != nil {
		t.Fatalf("out.Out(High): %v", err)
	}
	if !in.Read() {
		t.Error("expected jumpered input to read high after driving output high")
	}

	if err := out.Out(gpio.Low); err != nil {
		t.Fatalf("out.Out(Low): %v", err)
	}
	if in.Read() {
		t.Error("expected jumpered input to read low after driving output low")
	}
}
