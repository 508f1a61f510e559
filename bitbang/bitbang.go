// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bitbang implements the software bit-banged master for the memory
// card's serial protocol: clocking individual bytes out over CMD/DAT and
// framing a whole command buffer behind a SEL assertion.
package bitbang

import (
	"time"

	"github.com/genonullfree/psxemcee/gpioport"
)

// halfPeriod is the nominal half-cycle delay between clock edges (~250 kHz
// bus clock). Soft sleeps are upper bounds; a preempted host simply
// stretches the clock, which the card tolerates as the slave.
const halfPeriod = 2 * time.Microsecond

// selSettle is the SEL-high idle time required before a transaction.
const selSettle = 20 * time.Millisecond

// ackTimeout bounds the post-byte ACK wait.
const ackTimeout = 1500 * time.Microsecond

// ackPoll is the busy-wait granularity while polling for ACK low.
const ackPoll = 5 * time.Microsecond

// Master drives the five GPIO lines of a gpioport.Port through the
// bit-bang protocol. It holds no state between calls; the port is the only
// resource it owns.
type Master struct {
	port *gpioport.Port
}

// NewMaster wraps an already-acquired port.
func NewMaster(port *gpioport.Port) *Master {
	return &Master{port: port}
}

// exchangeByte clocks one byte out on CMD while sampling DAT, least
// significant bit first, then waits for the card's ACK pulse. ok is false
// if ACK never went low within ackTimeout.
func (m *Master) exchangeByte(tx byte) (rx byte, ok bool, err error) {
	for i := uint(0); i < 8; i++ {
		time.Sleep(halfPeriod)
		if err := m.port.ClkLow(); err != nil {
			return 0, false, err
		}
		bit := (tx>>i)&0x01 != 0
		if err := m.port.SetCmd(bit); err != nil {
			return 0, false, err
		}
		time.Sleep(halfPeriod)
		if err := m.port.ClkHigh(); err != nil {
			return 0, false, err
		}
		if m.port.ReadDat() {
			rx |= 1 << i
		}
	}

	if err := m.port.SetCmd(false); err != nil {
		return 0, false, err
	}

	deadline := time.Now().Add(ackTimeout)
	for {
		if !m.port.ReadAck() {
			return rx, true, nil
		}
		if time.Now().After(deadline) {
			return 0, false, nil
		}
		time.Sleep(ackPoll)
	}
}

// ExchangeFrame drives one full transaction: SEL high, a settle delay, SEL
// low, then exchangeByte for every byte of cmd, stopping early on an ACK
// timeout. It always returns SEL to high before returning, regardless of
// the error path.
func (m *Master) ExchangeFrame(cmd []byte) ([]byte, error) {
	if err := m.port.SelHigh(); err != nil {
		return nil, err
	}
	time.Sleep(selSettle)
	if err := m.port.SelLow(); err != nil {
		return nil, err
	}
	defer m.port.SelHigh()

	rx := make([]byte, 0, len(cmd))
	for _, tx := range cmd {
		b, ok, err := m.exchangeByte(tx)
		if err != nil {
			return rx, err
		}
		if !ok {
			return rx, nil
		}
		rx = append(rx, b)
	}
	return rx, nil
}
