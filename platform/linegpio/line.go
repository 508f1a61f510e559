// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package linegpio

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
)

// Line is one requested line of a Chip. It is configured for either input
// (with an optional pull bias) or output, then read or written repeatedly
// until Close is called.
//
// A Line is not safe for concurrent use by multiple goroutines driving it as
// part of the same protocol exchange; the bit-bang master above it is
// already single-threaded per transaction.
type Line struct {
	chipFd uintptr
	offset uint32
	name   string

	mu        sync.Mutex
	fd        int32
	direction lineDir
}

type lineDir int

const (
	dirUnset lineDir = iota
	dirInput
	dirOutput
)

// In configures the line as an input with the given pull bias.
func (l *Line) In(pull gpio.Pull) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.direction = dirInput
	return l.setLineLocked(flagsFor(dirInput, pull))
}

// Out configures the line as an output (if not already) and drives level.
func (l *Line) Out(level gpio.Level) error {
	l.mu.Lock()
	if l.direction != dirOutput {
		if err := l.setLineLocked(flagsFor(dirOutput, gpio.PullNoChange)); err != nil {
			l.mu.Unlock()
			return fmt.Errorf("linegpio: line %d out: %w", l.offset, err)
		}
		l.direction = dirOutput
	}
	defer l.mu.Unlock()

	var v gpioV2LineValues
	v.mask = 1
	if level {
		v.bits = 1
	}
	return ioctlLineSetValues(uintptr(l.fd), &v)
}

// Read returns the current level of the line. If the line has not yet been
// configured, it is implicitly requested as a pulled-up input first.
func (l *Line) Read() gpio.Level {
	l.mu.Lock()
	if l.direction == dirUnset {
		if err := l.setLineLocked(flagsFor(dirInput, gpio.PullUp)); err == nil {
			l.direction = dirInput
		}
	}
	defer l.mu.Unlock()

	var v gpioV2LineValues
	v.mask = 1
	if err := ioctlLineGetValues(uintptr(l.fd), &v); err != nil {
		return gpio.Low
	}
	return v.bits&1 == 1
}

// Close releases the line's file descriptor, if one was requested.
func (l *Line) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fd == 0 {
		return nil
	}
	err := syscallClose(int(l.fd))
	l.fd = 0
	l.direction = dirUnset
	return err
}

func (l *Line) setLine(flags uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.setLineLocked(flags)
}

// setLineLocked requests the line (if not already requested) and applies
// flags. Callers must hold l.mu.
func (l *Line) setLineLocked(flags uint64) error {
	if l.fd == 0 {
		var req gpioV2LineRequest
		req.offsets[0] = l.offset
		req.numLines = 1
		req.config.flags = flags
		copy(req.consumer[:], "psxmc")
		if err := ioctlLineRequest(l.chipFd, &req); err != nil {
			return fmt.Errorf("line %d request: %w", l.offset, err)
		}
		l.fd = req.fd
		return nil
	}
	var cfg gpioV2LineConfig
	cfg.flags = flags
	return ioctlLineConfig(uintptr(l.fd), &cfg)
}

func flagsFor(dir lineDir, pull gpio.Pull) uint64 {
	var flags uint64
	switch dir {
	case dirInput:
		flags |= _GPIO_V2_LINE_FLAG_INPUT
	case dirOutput:
		flags |= _GPIO_V2_LINE_FLAG_OUTPUT
	}
	switch pull {
	case gpio.PullUp:
		flags |= _GPIO_V2_LINE_FLAG_BIAS_PULL_UP
	case gpio.PullDown:
		flags |= _GPIO_V2_LINE_FLAG_BIAS_PULL_DOWN
	case gpio.Float:
		flags |= _GPIO_V2_LINE_FLAG_BIAS_DISABLED
	}
	return flags
}
