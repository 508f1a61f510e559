// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package memcard

import (
	"fmt"
	"log"

	"github.com/genonullfree/psxemcee/mcerr"
)

const (
	statusGood    = 0x47 // 'G'
	readRetries   = 3
	frameEchoSize = 2
)

// FrameExchanger is the link-layer dependency the transaction engine needs:
// exchange a command buffer for whatever the card returned, stopping early
// on an ACK timeout. bitbang.Master satisfies this.
type FrameExchanger interface {
	ExchangeFrame(cmd []byte) ([]byte, error)
}

// Engine runs transactions against a FrameExchanger, validating and
// retrying Read responses.
type Engine struct {
	x FrameExchanger
}

// NewEngine wraps x.
func NewEngine(x FrameExchanger) *Engine {
	return &Engine{x: x}
}

// Run builds t's command buffer, exchanges it, and validates the response
// according to t's kind.
func (e *Engine) Run(t Transaction) ([]byte, error) {
	switch t.kind {
	case kindStatus:
		return e.x.ExchangeFrame(t.BuildCommand())
	case kindRead:
		return e.runRead(t)
	case kindWrite:
		return e.runWrite(t)
	default:
		panic("memcard: invalid transaction kind")
	}
}

// runWrite exchanges t's command buffer and flags a card that stopped
// acknowledging partway through as ErrWriteShort rather than reporting the
// truncated echo as a clean success.
func (e *Engine) runWrite(t Transaction) ([]byte, error) {
	cmd := t.BuildCommand()
	r, err := e.x.ExchangeFrame(cmd)
	if err != nil {
		return r, err
	}
	if len(r) < len(cmd) {
		return r, fmt.Errorf("%w: got %d bytes, sent %d", mcerr.ErrWriteShort, len(r), len(cmd))
	}
	return r, nil
}

// runRead discards the leading garbage byte, scans for the response
// marker, and verifies the checksum and status trailer, making up to
// readRetries attempts in total.
func (e *Engine) runRead(t Transaction) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= readRetries; attempt++ {
		data, err := e.attemptRead(t)
		if err == nil {
			return data, nil
		}
		lastErr = err
		log.Printf("psxemcee: read attempt %d/%d failed: %v", attempt, readRetries, err)
	}
	return nil, fmt.Errorf("%w: %v", mcerr.ErrRead, lastErr)
}

func (e *Engine) attemptRead(t Transaction) ([]byte, error) {
	r, err := e.x.ExchangeFrame(t.BuildCommand())
	if err != nil {
		return nil, err
	}

	if len(r) <= frameSize {
		return nil, fmt.Errorf("short response: got %d bytes", len(r))
	}

	// Discard the first byte: a known garbage byte echoed by the shift
	// register while the command code is still being clocked in.
	r = r[1:]

	ofs := findMarker(r, ackMarker)
	if ofs < 0 {
		return nil, fmt.Errorf("response marker not found")
	}

	region := frameEchoSize + frameSize
	if ofs+region+2 > len(r) {
		return nil, fmt.Errorf("response too short after marker")
	}
	frameRegion := r[ofs : ofs+region]
	checksumByte := r[ofs+region]
	statusByte := r[ofs+region+1]

	calc := Checksum(frameRegion)
	if calc != checksumByte {
		return nil, fmt.Errorf("%w: got 0x%02x want 0x%02x", mcerr.ErrChecksum, checksumByte, calc)
	}
	if statusByte != statusGood {
		return nil, fmt.Errorf("%w: trailer byte 0x%02x", mcerr.ErrStatus, statusByte)
	}

	return frameRegion[frameEchoSize:], nil
}
