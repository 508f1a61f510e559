// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package linegpio

// This file binds the subset of the Linux GPIO character-device ioctl ABI
// (/usr/include/linux/gpio.h) that a single-line request/config/read/write
// cycle needs. Trimmed from periph.io/x/host/v3/gpioioctl, which additionally
// binds line sets, line info enumeration and edge events.

import (
	"errors"
	"unsafe"
)

// From /usr/include/asm-generic/ioctl.h.
const (
	_IOC_NONE  = 0
	_IOC_WRITE = 1
	_IOC_READ  = 2

	_IOC_NRBITS   = 8
	_IOC_TYPEBITS = 8
	_IOC_SIZEBITS = 14

	_IOC_NRSHIFT   = 0
	_IOC_TYPESHIFT = _IOC_NRSHIFT + _IOC_NRBITS
	_IOC_SIZESHIFT = _IOC_TYPESHIFT + _IOC_TYPEBITS
	_IOC_DIRSHIFT  = _IOC_SIZESHIFT + _IOC_SIZEBITS
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<_IOC_DIRSHIFT |
		typ<<_IOC_TYPESHIFT |
		nr<<_IOC_NRSHIFT |
		size<<_IOC_SIZESHIFT
}

func ior(typ, nr, size uintptr) uintptr {
	return ioc(_IOC_READ, typ, nr, size)
}

func iowr(typ, nr, size uintptr) uintptr {
	return ioc(_IOC_READ|_IOC_WRITE, typ, nr, size)
}

// From /usr/include/linux/gpio.h.
const (
	_GPIO_MAX_NAME_SIZE = 32
	_GPIO_LINES_MAX     = 64

	_GPIO_V2_LINE_FLAG_INPUT          uint64 = 1 << 2
	_GPIO_V2_LINE_FLAG_OUTPUT         uint64 = 1 << 3
	_GPIO_V2_LINE_FLAG_BIAS_PULL_UP   uint64 = 1 << 8
	_GPIO_V2_LINE_FLAG_BIAS_PULL_DOWN uint64 = 1 << 9
	_GPIO_V2_LINE_FLAG_BIAS_DISABLED  uint64 = 1 << 10
)

type gpiochipInfo struct {
	name  [_GPIO_MAX_NAME_SIZE]byte
	label [_GPIO_MAX_NAME_SIZE]byte
	lines uint32
}

type gpioV2LineAttribute struct {
	id      uint32
	padding uint32
	value   uint64
}

type gpioV2LineConfigAttribute struct {
	attr gpioV2LineAttribute
	mask uint64
}

type gpioV2LineConfig struct {
	flags     uint64
	numAttrs  uint32
	padding   [5]uint32
	attrs     [10]gpioV2LineConfigAttribute
}

type gpioV2LineRequest struct {
	offsets         [_GPIO_LINES_MAX]uint32
	consumer        [_GPIO_MAX_NAME_SIZE]byte
	config          gpioV2LineConfig
	numLines        uint32
	eventBufferSize uint32
	padding         [5]uint32
	fd              int32
}

type gpioV2LineValues struct {
	bits uint64
	mask uint64
}

func ioctlGPIOChipInfo(fd uintptr, data *gpiochipInfo) error {
	arg := ior(0xb4, 0x01, unsafe.Sizeof(gpiochipInfo{}))
	_, _, ep := syscallWrapper(_IOCTL_FUNCTION, fd, arg, uintptr(unsafe.Pointer(data)))
	if ep != 0 {
		return errors.New(ep.Error())
	}
	return nil
}

func ioctlLineRequest(fd uintptr, data *gpioV2LineRequest) error {
	arg := iowr(0xb4, 0x07, unsafe.Sizeof(gpioV2LineRequest{}))
	_, _, ep := syscallWrapper(_IOCTL_FUNCTION, fd, arg, uintptr(unsafe.Pointer(data)))
	if ep != 0 {
		return errors.New(ep.Error())
	}
	return nil
}

func ioctlLineConfig(fd uintptr, data *gpioV2LineConfig) error {
	arg := iowr(0xb4, 0x0d, unsafe.Sizeof(gpioV2LineConfig{}))
	_, _, ep := syscallWrapper(_IOCTL_FUNCTION, fd, arg, uintptr(unsafe.Pointer(data)))
	if ep != 0 {
		return errors.New(ep.Error())
	}
	return nil
}

func ioctlLineGetValues(fd uintptr, data *gpioV2LineValues) error {
	arg := iowr(0xb4, 0x0e, unsafe.Sizeof(gpioV2LineValues{}))
	_, _, ep := syscallWrapper(_IOCTL_FUNCTION, fd, arg, uintptr(unsafe.Pointer(data)))
	if ep != 0 {
		return errors.New(ep.Error())
	}
	return nil
}

func ioctlLineSetValues(fd uintptr, data *gpioV2LineValues) error {
	arg := iowr(0xb4, 0x0f, unsafe.Sizeof(gpioV2LineValues{}))
	_, _, ep := syscallWrapper(_IOCTL_FUNCTION, fd, arg, uintptr(unsafe.Pointer(data)))
	if ep != 0 {
		return errors.New(ep.Error())
	}
	return nil
}
