package cpu

import (
	"iter"
)

// Line is a line of assembled source with its location and generated bytes.
type Line struct {
	LineNo int
	Pc     int
	Words  []string
	Bytes  []uint8
}

// Program is an assembled listing.
type Program struct {
	Lines []Line
}

type Debug struct {
	*Line
	Index int
}

// Debug finds the listing line that generated the byte at pc.
func (prog *Program) Debug(pc uint16) (dbg Debug) {
	for n, line := range prog.Lines {
		if int(pc) >= line.Pc && int(pc) < line.Pc+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(pc) - line.Pc,
			}
			break
		}
	}

	return
}

// Binary returns the raw program bytes.
func (prog *Program) Binary() (bins []uint8) {
	for _, line := range prog.Lines {
		bins = append(bins, line.Bytes...)
	}

	return
}

// Disassemble walks a raw program, yielding each code and its offset.
// Bytes that are not implemented opcodes are yielded as single byte
// KIND_INVALID codes. A truncated trailing operand is yielded as-is.
func Disassemble(program []uint8) iter.Seq2[uint16, Code] {
	return func(yield func(pc uint16, code Code) bool) {
		for pc := 0; pc < len(program); {
			ins, err := Decode(program[pc])
			if err != nil {
				ins = Instruction{Opcode: program[pc], Kind: KIND_INVALID, Length: 1}
			}
			end := min(pc+ins.Length, len(program))
			code := Code{Instruction: ins}
			if end > pc+1 {
				code.Operand = program[pc+1 : end]
			}
			if !yield(uint16(pc), code) {
				return
			}
			pc += ins.Length
		}
	}
}
