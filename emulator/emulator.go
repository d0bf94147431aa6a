// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs Intcode programs on behalf of a caller: it keeps
// the pristine program, applies patches, and builds a fresh tape and
// machine for every run.
package emulator

import (
	"log"
	"maps"
	"slices"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/tape"
)

// Emulator state. Pristine program + patches + the machine of the last run.
type Emulator struct {
	Verbose bool         // If set, enables verbose logging.
	Program *tape.Tape   // Pristine program, never executed directly.
	Machine *cpu.Machine // Machine of the current run.

	patch map[int64]int64
}

// NewEmulator creates a new emulator for program.
func NewEmulator(program *tape.Tape) (emu *Emulator) {
	emu = &Emulator{
		Program: program,
		patch:   map[int64]int64{},
	}

	return
}

// Load parses program text into a new emulator.
func Load(text string) (emu *Emulator, err error) {
	program, err := tape.Load(text)
	if err != nil {
		return
	}

	emu = NewEmulator(program)
	return
}

// Poke records a patch applied to every subsequent Reset.
func (emu *Emulator) Poke(address int64, value int64) (err error) {
	// Validate against the pristine tape.
	_, err = emu.Program.Read(address)
	if err != nil {
		return
	}

	emu.patch[address] = value
	return
}

// Patches returns the recorded patches.
func (emu *Emulator) Patches() map[int64]int64 {
	return maps.Clone(emu.patch)
}

// Reset builds a fresh tape and machine from the pristine program and the
// patches.
func (emu *Emulator) Reset() (err error) {
	tp := emu.Program.Clone()

	for _, address := range slices.Sorted(maps.Keys(emu.patch)) {
		value := emu.patch[address]
		if emu.Verbose {
			log.Printf("emulator: poke %04d = %v", address, value)
		}
		err = tp.Write(address, value)
		if err != nil {
			return
		}
	}

	emu.Machine = cpu.NewMachine(tp)
	emu.Machine.Verbose = emu.Verbose

	return
}

// Tick performs a single instruction of the current machine.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Machine == nil {
		err = emu.Reset()
		if err != nil {
			return
		}
	}

	ip := emu.Machine.Ip()

	err = emu.Machine.Tick()
	if err != nil {
		err = &ErrRuntime{Ip: ip, Err: err}
		return
	}

	done = emu.Machine.Halted()
	return
}

// Run resets the emulator and runs the program to completion with the
// supplied inputs.
func (emu *Emulator) Run(inputs ...int64) (output []int64, err error) {
	err = emu.Reset()
	if err != nil {
		return
	}

	emu.Machine.Input.Push(inputs...)

	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			break
		}
	}

	output = emu.Machine.Output
	return
}

// RunWithoutInput resets the emulator and runs the program to completion
// with an empty input stream.
func (emu *Emulator) RunWithoutInput() (output []int64, err error) {
	return emu.Run()
}

// Read returns a cell of the current machine's tape.
func (emu *Emulator) Read(address int64) (value int64, err error) {
	if emu.Machine == nil {
		return emu.Program.Read(address)
	}

	return emu.Machine.Tape.Read(address)
}

// Ticks returns the total ticks of the current run.
func (emu *Emulator) Ticks() int {
	if emu.Machine == nil {
		return 0
	}

	return emu.Machine.Ticks
}
