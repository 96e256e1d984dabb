package cpu

import (
	"context"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"
)

var _cpu_defines = map[string]string{
	"STATUS_ZERO":     fmt.Sprintf("%#x", STATUS_ZERO),
	"STATUS_NEGATIVE": fmt.Sprintf("%#x", STATUS_NEGATIVE),
}

func init() {
	for ins := range Instructions() {
		_cpu_defines["OP_"+strings.ToUpper(ins.Kind.String())] = fmt.Sprintf("%#x", ins.Opcode)
	}
}

// Cpu is the simulation context for the 6502 execution core.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	RegisterA      uint8  // Accumulator.
	RegisterX      uint8  // Index register.
	Status         uint8  // Status register, see STATUS_ZERO and STATUS_NEGATIVE.
	ProgramCounter uint16 // Offset of the next byte to fetch.

	Ticks int // Instructions executed since the program was loaded.

	program []uint8 // Program being executed.
}

// NewCpu creates a new CPU in the zeroed initial state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"a", "x", "status", "pc", "ticks"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "a":
			strval = fmt.Sprintf("%02X", cpu.RegisterA)
		case "x":
			strval = fmt.Sprintf("%02X", cpu.RegisterX)
		case "status":
			strval = fmt.Sprintf("%02X %v", cpu.Status, FlagsFrom(cpu.Status))
		case "pc":
			strval = fmt.Sprintf("%04X", cpu.ProgramCounter)
		case "ticks":
			strval = fmt.Sprintf("%d", cpu.Ticks)
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}

// Reset the CPU state.
// - Clears the registers and status.
// - Zeros the program counter and statistics counters.
// - Unloads any program.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.RegisterA = 0
	cpu.RegisterX = 0
	cpu.Status = 0
	cpu.ProgramCounter = 0
	cpu.Ticks = 0
	cpu.program = nil
}

// Load a program and rewind the program counter.
// Registers and status are preserved.
func (cpu *Cpu) Load(program []uint8) {
	cpu.program = program
	cpu.ProgramCounter = 0
	cpu.Ticks = 0
}

// Unload drops the reference to the loaded program.
func (cpu *Cpu) Unload() {
	cpu.program = nil
}

// Program returns the currently loaded program.
func (cpu *Cpu) Program() []uint8 {
	return cpu.program
}

// fetchByte reads the byte at the program counter and advances it.
func (cpu *Cpu) fetchByte() (value uint8, err error) {
	if int(cpu.ProgramCounter) >= len(cpu.program) {
		err = ErrFetch{Offset: cpu.ProgramCounter, Length: len(cpu.program)}
		return
	}

	value = cpu.program[cpu.ProgramCounter]
	cpu.ProgramCounter++

	return
}

// Fetch fetches and decodes the next instruction, consuming its operand.
func (cpu *Cpu) Fetch() (code Code, err error) {
	offset := cpu.ProgramCounter

	opcode, err := cpu.fetchByte()
	if err != nil {
		return
	}

	ins, err := Decode(opcode)
	if err != nil {
		err = ErrOpcode{Opcode: opcode, Offset: offset}
		return
	}

	code = Code{Instruction: ins}
	for range ins.Length - 1 {
		var operand uint8
		operand, err = cpu.fetchByte()
		if err != nil {
			return
		}
		code.Operand = append(code.Operand, operand)
	}

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (halt bool, err error) {
	offset := cpu.ProgramCounter

	code, err := cpu.Fetch()
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%04x: %v", offset, code)
	}

	halt, err = cpu.Execute(code)
	if err != nil {
		return
	}

	cpu.Ticks += 1

	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(code Code) (halt bool, err error) {
	switch code.Kind {
	case KIND_BRK:
		halt = true
	case KIND_LDA:
		if len(code.Operand) != 1 {
			err = ErrOpcodeValueMissing
			return
		}
		cpu.RegisterA = code.Operand[0]
		cpu.updateFlags(cpu.RegisterA)
	case KIND_TAX:
		cpu.RegisterX = cpu.RegisterA
		cpu.updateFlags(cpu.RegisterX)
	case KIND_INX:
		cpu.RegisterX++
		cpu.updateFlags(cpu.RegisterX)
	default:
		err = ErrOpcode{Opcode: code.Opcode, Offset: cpu.ProgramCounter - uint16(code.Length)}
		return
	}

	return
}

// updateFlags sets the zero and negative flags from a result value.
func (cpu *Cpu) updateFlags(result uint8) {
	cpu.Status = FlagsOf(result).Apply(cpu.Status)
}

// Interpret runs a program from offset 0 until a BRK instruction.
//
// Registers and status are preserved from any prior run. The run only
// ends at BRK, an unimplemented opcode, or a fetch past the end of the
// program; a program that loops forever never returns.
func (cpu *Cpu) Interpret(program []uint8) (err error) {
	return cpu.InterpretContext(context.Background(), program, 0)
}

// InterpretContext is Interpret, bounded by a context and a step limit.
// A limit of zero or less is unlimited.
func (cpu *Cpu) InterpretContext(ctx context.Context, program []uint8, limit int) (err error) {
	cpu.Load(program)
	defer cpu.Unload()

	done := ctx.Done()

	for {
		if done != nil {
			select {
			case <-done:
				err = ctx.Err()
				return
			default:
			}
		}

		if limit > 0 && cpu.Ticks >= limit {
			err = ErrStepLimit
			return
		}

		var halt bool
		halt, err = cpu.Tick()
		if err != nil || halt {
			return
		}
	}
}
