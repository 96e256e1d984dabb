package cpu

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Kind is the closed set of instruction kinds the CPU can execute.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_INVALID = Kind(0) // .byte
	KIND_BRK     = Kind(1) // brk
	KIND_LDA     = Kind(2) // lda
	KIND_TAX     = Kind(3) // tax
	KIND_INX     = Kind(4) // inx
)

// Opcode values of the implemented instructions.
const (
	OPCODE_BRK     = uint8(0x00) // BRK
	OPCODE_LDA_IMM = uint8(0xa9) // LDA #imm
	OPCODE_TAX     = uint8(0xaa) // TAX
	OPCODE_INX     = uint8(0xe8) // INX
)

// Instruction describes one entry of the instruction set.
type Instruction struct {
	Opcode uint8 // Opcode byte.
	Kind   Kind  // Instruction kind.
	Length int   // Encoded length, including the opcode byte.
}

// Immediate returns true if the instruction takes an immediate operand.
func (ins Instruction) Immediate() bool {
	return ins.Length > 1
}

// instructionSet is the fixed opcode to instruction mapping.
var instructionSet = map[uint8]Instruction{
	OPCODE_BRK:     {Opcode: OPCODE_BRK, Kind: KIND_BRK, Length: 1},
	OPCODE_LDA_IMM: {Opcode: OPCODE_LDA_IMM, Kind: KIND_LDA, Length: 2},
	OPCODE_TAX:     {Opcode: OPCODE_TAX, Kind: KIND_TAX, Length: 1},
	OPCODE_INX:     {Opcode: OPCODE_INX, Kind: KIND_INX, Length: 1},
}

// Decode looks up an opcode in the instruction set.
func Decode(opcode uint8) (ins Instruction, err error) {
	ins, ok := instructionSet[opcode]
	if !ok {
		err = ErrOpcode{Opcode: opcode}
		return
	}

	return
}

// Instructions returns the instruction set, ordered by opcode.
func Instructions() iter.Seq[Instruction] {
	return func(yield func(Instruction) bool) {
		for _, opcode := range slices.Sorted(maps.Keys(instructionSet)) {
			if !yield(instructionSet[opcode]) {
				return
			}
		}
	}
}

// Code is a decoded instruction together with its operand bytes.
type Code struct {
	Instruction
	Operand []uint8
}

// Bytes returns the encoded form of the code.
func (code Code) Bytes() []uint8 {
	return append([]uint8{code.Opcode}, code.Operand...)
}

// String returns the assembly language representation of this code.
func (code Code) String() (out string) {
	switch {
	case code.Kind == KIND_INVALID:
		out = fmt.Sprintf("%v $%02x", code.Kind, code.Opcode)
		if name := mnemonicOf(code.Opcode); len(name) != 0 {
			out += " ; " + name
		}
	case code.Immediate() && len(code.Operand) == 1:
		out = fmt.Sprintf("%v #$%02x", code.Kind, code.Operand[0])
	case code.Immediate():
		out = fmt.Sprintf("%v #?", code.Kind)
	default:
		out = code.Kind.String()
	}

	return
}
