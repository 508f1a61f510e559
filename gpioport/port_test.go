// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gpioport

import (
	"testing"

	"periph.io/x/conn/v3/gpio"
)

type fakeLine struct {
	pull   gpio.Pull
	level  gpio.Level
	closed bool
}

func (f *fakeLine) In(pull gpio.Pull) error {
	f.pull = pull
	return nil
}

func (f *fakeLine) Out(level gpio.Level) error {
	f.level = level
	return nil
}

func (f *fakeLine) Read() gpio.Level { return f.level }

func (f *fakeLine) Close() error {
	f.closed = true
	return nil
}

func newTestPort() (*Port, *fakeLine, *fakeLine, *fakeLine, *fakeLine, *fakeLine) {
	dat, cmd, sel, clk, ack := &fakeLine{}, &fakeLine{}, &fakeLine{}, &fakeLine{}, &fakeLine{}
	p := NewWithLines(dat, cmd, sel, clk, ack)
	return p, dat, cmd, sel, clk, ack
}

func TestSelLowHigh(t *testing.T) {
	p, _, _, sel, _, _ := newTestPort()

	if err := p.SelLow(); err != nil {
		t.Fatalf("SelLow: %v", err)
	}
	if sel.level != gpio.Low {
		t.Errorf("expected SEL low, got %v", sel.level)
	}

	if err := p.SelHigh(); err != nil {
		t.Fatalf("SelHigh: %v", err)
	}
	if sel.level != gpio.High {
		t.Errorf("expected SEL high, got %v", sel.level)
	}
}

func TestClkAndCmd(t *testing.T) {
	p, _, cmd, _, clk, _ := newTestPort()

	if err := p.ClkLow(); err != nil {
		t.Fatalf("ClkLow: %v", err)
	}
	if clk.level != gpio.Low {
		t.Errorf("expected CLK low, got %v", clk.level)
	}

	if err := p.SetCmd(true); err != nil {
		t.Fatalf("SetCmd: %v", err)
	}
	if cmd.level != gpio.High {
		t.Errorf("expected CMD high, got %v", cmd.level)
	}

	if err := p.ClkHigh(); err != nil {
		t.Fatalf("ClkHigh: %v", err)
	}
	if clk.level != gpio.High {
		t.Errorf("expected CLK high, got %v", clk.level)
	}
}

func TestReadDatAndAck(t *testing.T) {
	p, dat, _, _, _, ack := newTestPort()

	dat.level = gpio.High
	if !p.ReadDat() {
		t.Error("expected ReadDat to reflect fake DAT level true")
	}

	ack.level = gpio.Low
	if p.ReadAck() {
		t.Error("expected ReadAck to reflect fake ACK level false")
	}
}

func TestClose(t *testing.T) {
	p, dat, cmd, sel, clk, ack := newTestPort()

	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !dat.closed || !cmd.closed || !sel.closed || !clk.closed || !ack.closed {
		t.Error("expected all lines to be closed")
	}
}
