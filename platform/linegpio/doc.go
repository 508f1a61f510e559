// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package linegpio requests and drives individual lines of a Linux GPIO
// character device (/dev/gpiochipN) using the kernel's GPIO uAPI v2 ioctls.
//
// https://docs.kernel.org/userspace-api/gpio/index.html
//
// It is intentionally narrow: one chip, individually requested lines, no
// line sets, no edge/event polling, no cross-chip pin registry. Callers that
// need those features should reach for periph.io/x/host/v3/gpioioctl
// directly; this package exists because the memory-card bit-bang master only
// ever drives five fixed lines on one known chip.
package linegpio
