// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/tiny6502/cpu"
	"github.com/ezrec/tiny6502/internal"
)

const (
	PROGRAM_SIZE = 0x10000 // Largest program addressable by the program counter.
)

var _emulator_defines = map[string]string{
	"PROGRAM_SIZE": fmt.Sprintf("%#x", PROGRAM_SIZE),
}

// Emulator state. CPU + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	StepLimit int // Maximum instructions per Run, zero for unlimited.

	done bool
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.Concat2(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset loads the program listing into the CPU and rewinds it.
// Registers and status are kept from any previous run.
func (emu *Emulator) Reset() (err error) {
	bin := emu.Program.Binary()
	if len(bin) > PROGRAM_SIZE {
		err = ErrProgramSize
		return
	}

	emu.Cpu.Load(bin)
	emu.done = false

	if emu.Verbose {
		log.Printf("emulator: loaded %d bytes", len(bin))
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() uint16 {
	return emu.Cpu.ProgramCounter
}

// Code returns the instruction at the current program counter.
func (emu *Emulator) Code() cpu.Code {
	for pc, code := range cpu.Disassemble(emu.Cpu.Program()) {
		if pc == emu.Cpu.ProgramCounter {
			return code
		}
	}

	return cpu.Code{}
}

// LineNo returns the source line number for the current program counter.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.ProgramCounter)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.done {
		done = true
		return
	}

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	pc := emu.Pc()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		}
		if err != nil || done {
			emu.done = true
			emu.Cpu.Unload()
		}
	}()

	done, err = emu.Cpu.Tick()

	return
}

// Run ticks the emulator until it halts, fails, is cancelled, or exceeds
// the step limit.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for done := false; !done; {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		if emu.StepLimit > 0 && emu.Ticks() >= emu.StepLimit {
			err = &ErrRuntime{LineNo: emu.LineNo(), Pc: emu.Pc(), Err: cpu.ErrStepLimit}
			return
		}

		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
