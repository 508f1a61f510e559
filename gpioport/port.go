// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gpioport abstracts the five named digital lines the memory-card
// protocol drives and samples: DAT in, CMD out, SEL out, CLK out, ACK in.
// It does not enforce protocol timing — that is the bit-bang master's job
// (package bitbang) — it only offers set/clear/read and pull-up
// configuration over a real GPIO chardev line.
package gpioport

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"

	"github.com/genonullfree/psxemcee/mcerr"
	"github.com/genonullfree/psxemcee/platform/linegpio"
)

// Line is the subset of linegpio.Line that Port depends on, so tests can
// substitute a fake without a real GPIO chip.
type Line interface {
	In(pull gpio.Pull) error
	Out(level gpio.Level) error
	Read() gpio.Level
	Close() error
}

// Port holds the five requested lines for the duration of one or more
// transactions. Callers must Close it to release the lines for other
// processes once done.
type Port struct {
	chip *linegpio.Chip

	dat Line
	cmd Line
	sel Line
	clk Line
	ack Line
}

// NewWithLines builds a Port directly from already-configured lines,
// bypassing chip acquisition. It exists so callers can test against a fake
// Line implementation instead of a real GPIO chip.
func NewWithLines(dat, cmd, sel, clk, ack Line) *Port {
	return &Port{dat: dat, cmd: cmd, sel: sel, clk: clk, ack: ack}
}

// Open acquires the five lines named by pins on the chip at chipPath. DAT is
// configured as a pulled-up input (the card drives it open-collector); CMD,
// SEL and CLK are configured as outputs idling CMD low and SEL/CLK high; ACK
// is configured as an input with no pull (the card drives it actively).
//
// Open fails with mcerr.ErrGpio if the chip or any line cannot be acquired.
func Open(chipPath string, pins PinMap) (*Port, error) {
	chip, err := linegpio.Open(chipPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open chip %s: %v", mcerr.ErrGpio, chipPath, err)
	}

	p := &Port{chip: chip}
	if err := p.acquire(pins); err != nil {
		chip.Close()
		return nil, err
	}
	return p, nil
}

func (p *Port) acquire(pins PinMap) error {
	dat, err := p.chip.Line(pins.DAT)
	if err != nil {
		return fmt.Errorf("%w: DAT line: %v", mcerr.ErrGpio, err)
	}
	if err := dat.In(gpio.PullUp); err != nil {
		return fmt.Errorf("%w: DAT configure: %v", mcerr.ErrGpio, err)
	}
	p.dat = dat

	cmd, err := p.chip.Line(pins.CMD)
	if err != nil {
		return fmt.Errorf("%w: CMD line: %v", mcerr.ErrGpio, err)
	}
	if err := cmd.Out(gpio.Low); err != nil {
		return fmt.Errorf("%w: CMD configure: %v", mcerr.ErrGpio, err)
	}
	p.cmd = cmd

	sel, err := p.chip.Line(pins.SEL)
	if err != nil {
		return fmt.Errorf("%w: SEL line: %v", mcerr.ErrGpio, err)
	}
	if err := sel.Out(gpio.High); err != nil {
		return fmt.Errorf("%w: SEL configure: %v", mcerr.ErrGpio, err)
	}
	p.sel = sel

	clk, err := p.chip.Line(pins.CLK)
	if err != nil {
		return fmt.Errorf("%w: CLK line: %v", mcerr.ErrGpio, err)
	}
	if err := clk.Out(gpio.High); err != nil {
		return fmt.Errorf("%w: CLK configure: %v", mcerr.ErrGpio, err)
	}
	p.clk = clk

	ack, err := p.chip.Line(pins.ACK)
	if err != nil {
		return fmt.Errorf("%w: ACK line: %v", mcerr.ErrGpio, err)
	}
	if err := ack.In(gpio.Float); err != nil {
		return fmt.Errorf("%w: ACK configure: %v", mcerr.ErrGpio, err)
	}
	p.ack = ack

	return nil
}

// SelHigh de-asserts SEL (card not selected).
func (p *Port) SelHigh() error { return p.drive(p.sel, gpio.High) }

// SelLow asserts SEL (card selected; this is the same state for Status,
// Read and Write alike).
func (p *Port) SelLow() error { return p.drive(p.sel, gpio.Low) }

// ClkHigh drives CLK high. DAT is sampled on this edge.
func (p *Port) ClkHigh() error { return p.drive(p.clk, gpio.High) }

// ClkLow drives CLK low. CMD is set up while CLK is low.
func (p *Port) ClkLow() error { return p.drive(p.clk, gpio.Low) }

// SetCmd drives CMD to bit.
func (p *Port) SetCmd(bit bool) error { return p.drive(p.cmd, gpio.Level(bit)) }

// ReadDat samples DAT.
func (p *Port) ReadDat() bool { return bool(p.dat.Read()) }

// ReadAck samples ACK. ACK is active low.
func (p *Port) ReadAck() bool { return bool(p.ack.Read()) }

func (p *Port) drive(l Line, level gpio.Level) error {
	if err := l.Out(level); err != nil {
		return fmt.Errorf("%w: %v", mcerr.ErrGpio, err)
	}
	return nil
}

// Close releases all five lines and the chip handle, so another process can
// acquire them between transactions.
func (p *Port) Close() error {
	var firstErr error
	for _, l := range []Line{p.dat, p.cmd, p.sel, p.clk, p.ack} {
		if l == nil {
			continue
		}
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if p.chip != nil {
		if err := p.chip.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return fmt.Errorf("%w: %v", mcerr.ErrGpio, firstErr)
	}
	return nil
}

var _ Line = (*linegpio.Line)(nil)
