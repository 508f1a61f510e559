// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package memcard

import (
	"fmt"

	"github.com/genonullfree/psxemcee/mcerr"
)

const (
	maxFrame       = 0x3ff // 1023
	framesPerCard  = 1024
	blocksPerCard  = 16
	framesPerBlock = 64
)

// Card is the addressing layer over an Engine: it translates frame and
// block offsets into transactions and validates ranges.
type Card struct {
	engine *Engine
}

// NewCard wraps engine.
func NewCard(engine *Engine) *Card {
	return &Card{engine: engine}
}

// GetStatus runs one Status transaction.
func (c *Card) GetStatus() ([]byte, error) {
	return c.engine.Run(NewStatus())
}

// ReadFrame reads one 128-byte frame. It fails with mcerr.ErrFrameOfs if
// frame is out of range.
func (c *Card) ReadFrame(frame uint16) ([]byte, error) {
	if frame > maxFrame {
		return nil, fmt.Errorf("%w: frame %d > %d", mcerr.ErrFrameOfs, frame, maxFrame)
	}
	return c.engine.Run(NewRead(frame))
}

// ReadAll concatenates ReadFrame(0)..ReadFrame(1023); the result is exactly
// 1024*128 = 131072 bytes.
func (c *Card) ReadAll() ([]byte, error) {
	return c.ReadAt(0, framesPerCard)
}

// ReadAt concatenates length frames starting at offset. It fails with
// mcerr.ErrFrameOfs if the range [offset, offset+length) exceeds the card.
func (c *Card) ReadAt(offset, length uint16) ([]byte, error) {
	if uint32(offset)+uint32(length) > framesPerCard {
		return nil, fmt.Errorf("%w: range [%d, %d) exceeds %d frames", mcerr.ErrFrameOfs, offset, uint32(offset)+uint32(length), framesPerCard)
	}

	out := make([]byte, 0, int(length)*frameSize)
	for f := offset; f < offset+length; f++ {
		data, err := c.ReadFrame(f)
		if err != nil {
			return nil, err
		}
		out = append(out, data...)
	}
	return out, nil
}

// WriteFrame writes exactly 128 bytes to frame. It fails with
// mcerr.ErrFrameOfs or mcerr.ErrWriteLen.
func (c *Card) WriteFrame(frame uint16, data []byte) error {
	if frame > maxFrame {
		return fmt.Errorf("%w: frame %d > %d", mcerr.ErrFrameOfs, frame, maxFrame)
	}
	tr, err := NewWrite(frame, data)
	if err != nil {
		return err
	}
	_, err = c.engine.Run(tr)
	return err
}

// WriteAt requires len(data) == length*128, splits it into 128-byte
// chunks, and issues one Write per chunk starting at offset. It returns
// nil ([]byte(nil)) on success: the core signals "nothing to persist" to
// the caller.
func (c *Card) WriteAt(offset, length uint16, data []byte) ([]byte, error) {
	want := int(length) * frameSize
	if len(data) != want {
		return nil, fmt.Errorf("%w: data is %d bytes, want %d", mcerr.ErrWriteLen, len(data), want)
	}
	if uint32(offset)+uint32(length) > framesPerCard {
		return nil, fmt.Errorf("%w: range [%d, %d) exceeds %d frames", mcerr.ErrFrameOfs, offset, uint32(offset)+uint32(length), framesPerCard)
	}

	for i := uint16(0); i < length; i++ {
		chunk := data[int(i)*frameSize : int(i+1)*frameSize]
		if err := c.WriteFrame(offset+i, chunk); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// BlockOffset maps block b (0..=15) to its starting frame offset. It
// fails with mcerr.ErrBlockOfs if b is out of range.
func BlockOffset(b uint16) (uint16, error) {
	if b >= blocksPerCard {
		return 0, fmt.Errorf("%w: block %d >= %d", mcerr.ErrBlockOfs, b, blocksPerCard)
	}
	return b * framesPerBlock, nil
}
