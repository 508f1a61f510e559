// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package linegpio

import (
	"fmt"
	"os"
	"strings"
)

// Chip is an open /dev/gpiochipN character device.
type Chip struct {
	path  string
	name  string
	label string
	lines uint32

	file *os.File
	fd   uintptr
}

// Open opens the GPIO chip at path (e.g. "/dev/gpiochip0") and reads its
// chip info.
func Open(path string) (*Chip, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("linegpio: open %s: %w", path, err)
	}
	c := &Chip{path: path, file: f, fd: f.Fd()}

	var info gpiochipInfo
	if err := ioctlGPIOChipInfo(c.fd, &info); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("linegpio: chip info %s: %w", path, err)
	}
	c.name = strings.Trim(string(info.name[:]), "\x00")
	c.label = strings.Trim(string(info.label[:]), "\x00")
	c.lines = info.lines
	return c, nil
}

// Name returns the kernel-reported chip name, e.g. "gpiochip0".
func (c *Chip) Name() string { return c.name }

// Label returns the kernel-reported chip label, e.g. "pinctrl-bcm2835".
func (c *Chip) Label() string { return c.label }

// LineCount returns the number of lines the chip exposes.
func (c *Chip) LineCount() int { return int(c.lines) }

// Line returns a handle to one line by its offset on this chip. The line is
// requested from the kernel on the handle's first In, Out or Read call; the
// returned Line is unconfigured, so call In or Out before using it.
func (c *Chip) Line(offset uint32) (*Line, error) {
	if offset >= c.lines {
		return nil, fmt.Errorf("linegpio: line offset %d out of range (chip has %d lines)", offset, c.lines)
	}
	return &Line{chipFd: c.fd, offset: offset}, nil
}

// Close releases the chip's file descriptor. Lines already requested from
// it remain valid until they are individually closed.
func (c *Chip) Close() error {
	if c.file == nil {
		return nil
	}
	err := c.file.Close()
	c.file = nil
	c.fd = 0
	return err
}
