//go:build !linux

// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package linegpio

import (
	"errors"
	"syscall"
)

const _IOCTL_FUNCTION = 0

// syscallWrapper always fails off Linux: the GPIO chardev ioctls this
// package binds only exist on Linux. This lets the package build (and its
// non-hardware-dependent tests run) on a developer's workstation.
func syscallWrapper(trap, a1, a2, a3 uintptr) (r1, r2 uintptr, err syscall.Errno) {
	return 0, 0, syscall.ENOTSUP
}

func syscallClose(fd int) error {
	return errors.New("linegpio: not supported on this platform")
}
