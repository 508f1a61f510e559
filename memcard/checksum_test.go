// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package memcard

import (
	"bytes"
	"testing"

	"pgregory.net/rapid"
)

func TestChecksumEmptyAndSingle(t *testing.T) {
	if got := Checksum(nil); got != 0 {
		t.Errorf("Checksum(nil) = 0x%02x, want 0x00", got)
	}
	if got := Checksum([]byte{0x37}); got != 0x37 {
		t.Errorf("Checksum([0x37]) = 0x%02x, want 0x37", got)
	}
}

// TestChecksumAssociativeLaw checks Checksum(a++b) == Checksum(a) ^
// Checksum(b) for arbitrary byte slices.
func TestChecksumAssociativeLaw(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.SliceOf(rapid.Byte()).Draw(rt, "a")
		b := rapid.SliceOf(rapid.Byte()).Draw(rt, "b")

		combined := Checksum(bytes.Join([][]byte{a, b}, nil))
		want := Checksum(a) ^ Checksum(b)
		if combined != want {
			rt.Fatalf("Checksum(a++b) = 0x%02x, want 0x%02x", combined, want)
		}
	})
}
