package cpu

import (
	"errors"
	"strings"

	nescpu "github.com/retroenv/retrogolib/nes/cpu"

	"github.com/ezrec/tiny6502/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrFetchBounds         = errors.New(f("fetch out of bounds"))
	ErrOpcodeUnimplemented = errors.New(f("opcode unimplemented"))
	ErrStepLimit           = errors.New(f("step limit reached"))

	// Assembler errors
	ErrEquateSyntax           = errors.New(f(".equ syntax"))
	ErrEquateDuplicate        = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate         = errors.New(f("label duplicated"))
	ErrMacroSyntax            = errors.New(f(".macro syntax"))
	ErrMacroNesting           = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate         = errors.New(f(".macro duplicated"))
	ErrMacroLonely            = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm        = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs        = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing     = errors.New(f("value missing"))
	ErrOperandRange           = errors.New(f("operand out of range"))
	ErrAddressingUnsupported  = errors.New(f("addressing mode unsupported"))
	ErrInstructionUnsupported = errors.New(f("instruction unsupported"))
	ErrInstructionInvalid     = errors.New(f("instruction invalid"))
)

// ErrFetch is a read past the end of the program buffer.
type ErrFetch struct {
	Offset uint16 // Offset that was read.
	Length int    // Length of the program.
}

func (err ErrFetch) Error() string {
	return f("fetch at $%04x beyond program length %d", err.Offset, err.Length)
}

func (err ErrFetch) Is(target error) bool {
	return target == ErrFetchBounds
}

// ErrOpcode is an opcode with no handler in the instruction set.
type ErrOpcode struct {
	Opcode uint8  // Offending opcode.
	Offset uint16 // Offset the opcode was fetched from.
}

func (err ErrOpcode) Error() string {
	name := mnemonicOf(err.Opcode)
	if len(name) == 0 {
		return f("bad opcode $%02x at $%04x", err.Opcode, err.Offset)
	}
	return f("unimplemented opcode $%02x (%v) at $%04x", err.Opcode, name, err.Offset)
}

func (err ErrOpcode) Is(target error) (ok bool) {
	if target == ErrOpcodeUnimplemented {
		return true
	}
	_, ok = target.(ErrOpcode)
	return
}

// mnemonicOf returns the 6502 mnemonic of an opcode, or an empty string
// if the byte is not a 6502 opcode at all.
func mnemonicOf(opcode uint8) string {
	ins := nescpu.Opcodes[opcode].Instruction
	if ins == nil {
		return ""
	}
	return strings.ToLower(ins.Name)
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
