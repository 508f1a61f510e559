// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package memcard

import (
	"bytes"
	"errors"
	"testing"

	"github.com/genonullfree/psxemcee/mcerr"
)

func TestNewWriteRejectsWrongLength(t *testing.T) {
	_, err := NewWrite(0, make([]byte, 127))
	if err == nil {
		t.Fatal("expected an error for a 127-byte payload")
	}
	if !errors.Is(err, mcerr.ErrWriteLen) {
		t.Errorf("expected mcerr.ErrWriteLen, got %v", err)
	}
}

func TestBuildCommandStatus(t *testing.T) {
	buf := NewStatus().BuildCommand()
	if buf[0] != addressee || buf[1] != cmdStatus {
		t.Fatalf("unexpected header: %x", buf[:2])
	}
	for i := 2; i < len(buf); i++ {
		if buf[i] != 0 {
			t.Fatalf("expected buf[%d] == 0 for Status, got 0x%02x", i, buf[i])
		}
	}
}

func TestBuildCommandRead(t *testing.T) {
	buf := NewRead(0x0153).BuildCommand()
	if buf[1] != cmdRead {
		t.Fatalf("buf[1] = 0x%02x, want cmdRead", buf[1])
	}
	if buf[4] != 0x01 || buf[5] != 0x53 {
		t.Fatalf("frame address = %x %x, want 01 53", buf[4], buf[5])
	}
	for i := 6; i < len(buf); i++ {
		if buf[i] != 0 {
			t.Fatalf("expected buf[%d] == 0 for Read, got 0x%02x", i, buf[i])
		}
	}
}

// TestBuildCommandWrite: Write(7, [0x55;128]) produces [0..2]==[0x81,0x57],
// [4..6]==[0,7], [6..134]==[0x55;128]. 128 is even, so the payload XORs to
// 0x00 and the checksum is just the frame address: 0x00 ^ 0x07 == 0x07.
func TestBuildCommandWrite(t *testing.T) {
	payload := bytes.Repeat([]byte{0x55}, frameSize)
	tr, err := NewWrite(7, payload)
	if err != nil {
		t.Fatalf("NewWrite: %v", err)
	}
	buf := tr.BuildCommand()

	if buf[0] != 0x81 || buf[1] != 0x57 {
		t.Fatalf("header = %x, want 81 57", buf[:2])
	}
	if buf[4] != 0x00 || buf[5] != 0x07 {
		t.Fatalf("frame address = %x %x, want 00 07", buf[4], buf[5])
	}
	if !bytes.Equal(buf[6:6+frameSize], payload) {
		t.Fatal("payload not copied into [6:134]")
	}
	if buf[134] != 0x07 {
		t.Fatalf("checksum = 0x%02x, want 0x07", buf[134])
	}
}

