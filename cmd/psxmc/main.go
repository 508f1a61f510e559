// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Command psxmc reads and writes a first-generation console memory card
// attached to a Linux single-board computer's GPIO header.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/genonullfree/psxemcee/bitbang"
	"github.com/genonullfree/psxemcee/gpioport"
	"github.com/genonullfree/psxemcee/mcerr"
	"github.com/genonullfree/psxemcee/memcard"
)

const (
	frameSize      = 128
	framesPerCard  = 1024
	framesPerBlock = 64
	cardSize       = framesPerCard * frameSize
	blockSize      = framesPerBlock * frameSize
)

// exit codes, one per mcerr sentinel plus the generic/uncategorized case.
const (
	exitOK = iota
	exitGeneric
	exitRead
	exitChecksum
	exitStatus
	exitWrite
	exitWriteShort
	exitWriteLen
	exitFrameOfs
	exitBlockOfs
	exitGpio
	exitIo
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		usage()
		return exitGeneric
	}

	sub := args[0]
	if !knownSubcommand(sub) {
		usage()
		return exitGeneric
	}

	fs := pflag.NewFlagSet(sub, pflag.ContinueOnError)
	file := fs.String("file", "", "path to the file to read from or write to")
	offset := fs.Int("offset", -1, "frame or block offset, depending on the subcommand")
	if err := fs.Parse(args[1:]); err != nil {
		return exitGeneric
	}
	if *file == "" {
		fmt.Fprintln(os.Stderr, "psxmc: --file is required")
		return exitGeneric
	}
	if needsOffset(sub) && *offset < 0 {
		fmt.Fprintln(os.Stderr, "psxmc: --offset is required")
		return exitGeneric
	}

	card, closePort, err := openCard()
	if err != nil {
		fmt.Fprintf(os.Stderr, "psxmc: %v\n", err)
		return exitCodeFor(err)
	}
	defer closePort()

	switch sub {
	case "status":
		err = doStatus(card, *file)
	case "read-all":
		err = doReadAll(card, *file)
	case "read-frame":
		err = doReadFrame(card, *file, *offset)
	case "read-block":
		err = doReadBlock(card, *file, *offset)
	case "write-all":
		err = doWriteAll(card, *file)
	case "write-frame":
		err = doWriteFrame(card, *file, *offset)
	case "write-block":
		err = doWriteBlock(card, *file, *offset)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "psxmc: %v\n", err)
		return exitCodeFor(err)
	}
	return exitOK
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: psxmc <status|read-all|read-frame|read-block|write-all|write-frame|write-block> --file PATH [--offset N]")
}

var subcommands = map[string]bool{
	"status": false, "read-all": false, "read-frame": true,
	"read-block": true, "write-all": false, "write-frame": true,
	"write-block": true,
}

func knownSubcommand(sub string) bool {
	_, ok := subcommands[sub]
	return ok
}

func needsOffset(sub string) bool {
	return subcommands[sub]
}

func openCard() (*memcard.Card, func(), error) {
	port, err := gpioport.Open(gpioport.DefaultChipPath, gpioport.DefaultPins)
	if err != nil {
		return nil, func() {}, err
	}
	master := bitbang.NewMaster(port)
	engine := memcard.NewEngine(master)
	return memcard.NewCard(engine), func() { port.Close() }, nil
}

func doStatus(card *memcard.Card, path string) error {
	data, err := card.GetStatus()
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func doReadAll(card *memcard.Card, path string) error {
	data, err := card.ReadAll()
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func doReadFrame(card *memcard.Card, path string, offset int) error {
	data, err := card.ReadFrame(uint16(offset))
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func doReadBlock(card *memcard.Card, path string, offset int) error {
	frame, err := memcard.BlockOffset(uint16(offset))
	if err != nil {
		return err
	}
	data, err := card.ReadAt(frame, framesPerBlock)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func doWriteAll(card *memcard.Card, path string) error {
	data, err := readFileExact(path, cardSize)
	if err != nil {
		return err
	}
	_, err = card.WriteAt(0, framesPerCard, data)
	return err
}

func doWriteFrame(card *memcard.Card, path string, offset int) error {
	data, err := readFileExact(path, frameSize)
	if err != nil {
		return err
	}
	return card.WriteFrame(uint16(offset), data)
}

func doWriteBlock(card *memcard.Card, path string, offset int) error {
	frame, err := memcard.BlockOffset(uint16(offset))
	if err != nil {
		return err
	}
	data, err := readFileExact(path, blockSize)
	if err != nil {
		return err
	}
	_, err = card.WriteAt(frame, framesPerBlock, data)
	return err
}

// writeFile creates path and writes data to it.
func writeFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", mcerr.ErrIo, path, err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("%w: write %s: %v", mcerr.ErrIo, path, err)
	}
	return nil
}

// readFileExact opens path and reads exactly want bytes, so a short file
// fails before any card transaction is attempted rather than mid-write.
func readFileExact(path string, want int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", mcerr.ErrIo, path, err)
	}
	defer f.Close()

	buf := make([]byte, want)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", mcerr.ErrIo, path, err)
	}
	return buf, nil
}

func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, mcerr.ErrRead):
		return exitRead
	case errors.Is(err, mcerr.ErrChecksum):
		return exitChecksum
	case errors.Is(err, mcerr.ErrStatus):
		return exitStatus
	case errors.Is(err, mcerr.ErrWriteShort):
		return exitWriteShort
	case errors.Is(err, mcerr.ErrWriteLen):
		return exitWriteLen
	case errors.Is(err, mcerr.ErrWrite):
		return exitWrite
	case errors.Is(err, mcerr.ErrFrameOfs):
		return exitFrameOfs
	case errors.Is(err, mcerr.ErrBlockOfs):
		return exitBlockOfs
	case errors.Is(err, mcerr.ErrGpio):
		return exitGpio
	case errors.Is(err, mcerr.ErrIo):
		return exitIo
	default:
		return exitGeneric
	}
}
