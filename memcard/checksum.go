// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package memcard

// Checksum XOR-reduces every byte in b. It is pure, total over any slice
// length including nil/empty (returning 0), and associative: Checksum
// over a concatenation equals the XOR of the parts' checksums.
func Checksum(b []byte) byte {
	var sum byte
	for _, v := range b {
		sum ^= v
	}
	return sum
}
