// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package memcard

import (
	"fmt"

	"github.com/genonullfree/psxemcee/mcerr"
)

// kind tags the variant a Transaction holds: Status, Read or Write.
type kind int

const (
	kindStatus kind = iota
	kindRead
	kindWrite
)

const (
	addressee  = 0x81
	cmdStatus  = 0x53
	cmdRead    = 0x52
	cmdWrite   = 0x57
	bufferSize = 256
	frameSize  = 128
)

// Transaction is a single tagged command: Status, Read(frame) or
// Write(frame, payload). Build one with NewStatus, NewRead or NewWrite;
// the zero value is not valid.
type Transaction struct {
	kind    kind
	frame   uint16
	payload [frameSize]byte
}

// NewStatus builds a Status transaction.
func NewStatus() Transaction {
	return Transaction{kind: kindStatus}
}

// NewRead builds a Read transaction for the given frame address.
func NewRead(frame uint16) Transaction {
	return Transaction{kind: kindRead, frame: frame}
}

// NewWrite builds a Write transaction. payload must be exactly 128 bytes;
// otherwise it fails with mcerr.ErrWriteLen.
func NewWrite(frame uint16, payload []byte) (Transaction, error) {
	if len(payload) != frameSize {
		return Transaction{}, fmt.Errorf("%w: payload is %d bytes, want %d", mcerr.ErrWriteLen, len(payload), frameSize)
	}
	t := Transaction{kind: kindWrite, frame: frame}
	copy(t.payload[:], payload)
	return t, nil
}

// BuildCommand encodes t into a fixed-size command buffer.
func (t Transaction) BuildCommand() []byte {
	buf := make([]byte, bufferSize)
	buf[0] = addressee

	switch t.kind {
	case kindStatus:
		buf[1] = cmdStatus
		return buf
	case kindRead:
		buf[1] = cmdRead
		buf[4] = byte(t.frame >> 8)
		buf[5] = byte(t.frame)
		return buf
	case kindWrite:
		buf[1] = cmdWrite
		buf[4] = byte(t.frame >> 8)
		buf[5] = byte(t.frame)
		copy(buf[6:6+frameSize], t.payload[:])
		buf[134] = Checksum(buf[4:134])
		return buf
	default:
		panic("memcard: invalid transaction kind")
	}
}
