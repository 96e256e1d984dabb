// Package cpu implements the execution core and assembler for a subset of
// the MOS 6502 instruction set.
//
// The CPU consists of an 8-bit accumulator (A), an 8-bit index register (X),
// an 8-bit status register carrying the zero and negative flags, and a
// 16-bit program counter that indexes into a raw program buffer. Execution
// runs until a BRK instruction, an unimplemented opcode, or a fetch past
// the end of the program.
//
// The assembler provides a small 6502 assembly dialect for the implemented
// instructions, supporting macros, labels, equates, and compile-time
// expression evaluation.
package cpu
