// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package memcard

// ackMarker is the two-byte response marker the card emits immediately
// before frame payload in a Read response.
var ackMarker = []byte{0x5c, 0x5d}

// findMarker returns the index immediately after the first occurrence of
// needle in r, or -1 if needle does not occur. It is a naive left-to-right
// scan that, on mismatch, resets its match index to zero and re-tests the
// current byte against the needle's first byte; this is not
// Knuth-Morris-Pratt, but the known needles are short with no internal
// repetition, so the naive reset is correct.
func findMarker(r, needle []byte) int {
	if len(needle) == 0 {
		return 0
	}
	matched := 0
	for i, b := range r {
		if b == needle[matched] {
			matched++
			if matched == len(needle) {
				return i + 1
			}
		} else {
			matched = 0
			if b == needle[0] {
				matched = 1
			}
		}
	}
	return -1
}
