// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mcerr defines the typed failure kinds the memory-card core
// surfaces to its callers. Every sentinel below is matched with errors.Is;
// wrapping layers add context with fmt.Errorf("%w").
package mcerr

import "errors"

var (
	// ErrRead is returned when a Read transaction exhausts its retries.
	ErrRead = errors.New("psxemcee: read transaction failed")

	// ErrChecksum is returned when a checksum mismatch is surfaced to the
	// caller (Read uses it only as an internal retry trigger).
	ErrChecksum = errors.New("psxemcee: checksum mismatch")

	// ErrStatus is returned when a bad status trailer is surfaced.
	ErrStatus = errors.New("psxemcee: bad status trailer")

	// ErrWrite is returned when a Write transaction fails.
	ErrWrite = errors.New("psxemcee: write transaction failed")

	// ErrWriteShort is returned when the card acknowledged fewer bytes
	// than were sent during a Write.
	ErrWriteShort = errors.New("psxemcee: write acknowledged fewer bytes than sent")

	// ErrWriteLen is returned when a write payload is not exactly 128
	// bytes, or a write_at buffer is not length*128 bytes.
	ErrWriteLen = errors.New("psxemcee: write payload has the wrong length")

	// ErrFrameOfs is returned when a frame offset falls outside 0..=1023.
	ErrFrameOfs = errors.New("psxemcee: frame offset out of range")

	// ErrBlockOfs is returned when a block offset falls outside 0..=15.
	ErrBlockOfs = errors.New("psxemcee: block offset out of range")

	// ErrGpio is returned when acquiring or driving a GPIO line fails.
	ErrGpio = errors.New("psxemcee: gpio failure")

	// ErrIo is returned when file I/O performed by a collaborator (the
	// CLI front-end) fails.
	ErrIo = errors.New("psxemcee: io failure")
)
