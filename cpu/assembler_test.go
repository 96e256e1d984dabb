package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(t *testing.T, program []string) (prog *Program) {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return
}

func lineEqual(t *testing.T, expected, lines []Line) {
	assert := assert.New(t)

	assert.Equal(len(expected), len(lines))
	if len(expected) == len(lines) {
		for n := range len(expected) {
			assert.Equal(expected[n], lines[n])
		}
	}
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Lines))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("0xa9", asm.Equate["OP_LDA"])
	assert.Equal("0x2", asm.Equate["STATUS_ZERO"])
	assert.Equal("0x80", asm.Equate["STATUS_NEGATIVE"])
}

func TestAssemblerInstructions(t *testing.T) {
	program := []string{
		"lda #$c0 ; load",
		"  TAX",
		"",
		"inx",
		"brk",
	}

	prog := assemble(t, program)

	expected := []Line{
		{1, 0, []string{"lda", "#$c0"}, []uint8{0xa9, 0xc0}},
		{2, 2, []string{"TAX"}, []uint8{0xaa}},
		{4, 3, []string{"inx"}, []uint8{0xe8}},
		{5, 4, []string{"brk"}, []uint8{0x00}},
	}

	lineEqual(t, expected, prog.Lines)
}

func TestAssemblerValues(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"lda #10",
		"lda #0x10",
		"lda #$10",
		"lda #%1010",
		"lda #'A'",
		"lda #'\\n'",
		"lda #-1",
		"lda #-128",
		"lda #255",
	}

	prog := assemble(t, program)
	assert.Equal([]uint8{
		0xa9, 10,
		0xa9, 0x10,
		0xa9, 0x10,
		0xa9, 0x0a,
		0xa9, 'A',
		0xa9, '\n',
		0xa9, 0xff,
		0xa9, 0x80,
		0xa9, 0xff,
	}, prog.Binary())
}

func TestAssemblerEquate(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".equ BASE $10",
		".equ NEXT $(BASE * 2 + 1)",
		"lda #BASE",
		"lda #NEXT",
		"lda #$(NEXT - BASE)",
		"lda #$(LINENO)",
		".byte OP_TAX OP_INX OP_BRK",
	}

	prog := assemble(t, program)
	assert.Equal([]uint8{
		0xa9, 0x10,
		0xa9, 0x21,
		0xa9, 0x11,
		0xa9, 6,
		0xaa, 0xe8, 0x00,
	}, prog.Binary())
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("VALUE", "0x42")
	asm.Predefine("OTHER", "7")

	prog, err := asm.Parse(strings.NewReader("lda #VALUE\nlda #$(OTHER+1)\nbrk"))
	assert.NoError(err)
	assert.Equal([]uint8{0xa9, 0x42, 0xa9, 0x08, 0x00}, prog.Binary())
}

func TestAssemblerLabel(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"start: lda #1",
		"tax",
		"end: brk",
		".db $(end - start)",
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	assert.Equal(0, asm.Label["start"])
	assert.Equal(3, asm.Label["end"])
	assert.Equal([]uint8{0xa9, 0x01, 0xaa, 0x00, 0x03}, prog.Binary())
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".macro load2x V",
		"lda #V",
		"tax",
		".endm",
		"load2x $c0",
		"inx",
		"brk",
	}

	prog := assemble(t, program)

	expected := []Line{
		{2, 0, []string{"lda", "#V"}, []uint8{0xa9, 0xc0}},
		{3, 2, []string{"tax"}, []uint8{0xaa}},
		{6, 3, []string{"inx"}, []uint8{0xe8}},
		{7, 4, []string{"brk"}, []uint8{0x00}},
	}
	lineEqual(t, expected, prog.Lines)

	cpu := NewCpu()
	err := cpu.Interpret(prog.Binary())
	assert.NoError(err)
	assert.Equal(uint8(0xc1), cpu.RegisterX)
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		lineno  int
		err     error
	}){
		{"unsupported", []string{"brk", "adc #1"}, 2, ErrInstructionUnsupported},
		{"invalid", []string{"frob"}, 1, ErrInstructionInvalid},
		{"addressing", []string{"lda $10"}, 1, ErrAddressingUnsupported},
		{"range_hi", []string{"lda #256"}, 1, ErrOperandRange},
		{"range_lo", []string{"lda #-129"}, 1, ErrOperandRange},
		{"lda_missing", []string{"lda"}, 1, ErrOpcodeValueMissing},
		{"lda_extra", []string{"lda #1 #2"}, 1, ErrOpcodeExtraArgs},
		{"tax_extra", []string{"tax x"}, 1, ErrOpcodeExtraArgs},
		{"byte_missing", []string{".byte"}, 1, ErrOpcodeValueMissing},
		{"equ_syntax", []string{".equ A"}, 1, ErrEquateSyntax},
		{"equ_dup", []string{".equ A 1", ".equ A 2"}, 2, ErrEquateDuplicate},
		{"label_dup", []string{"a: tax", "a: inx"}, 2, ErrLabelDuplicate},
		{"macro_nest", []string{".macro a", ".macro b"}, 2, ErrMacroNesting},
		{"macro_dup", []string{".macro a", ".endm", ".macro a"}, 3, ErrMacroDuplicate},
		{"macro_lonely", []string{".macro a", "tax"}, 2, ErrMacroLonely},
		{"macro_endm", []string{".endm"}, 1, ErrMacroLonelyEndm},
		{"macro_args", []string{".macro a X", ".endm", "a"}, 3, ErrMacroSyntax},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		assert.True(errors.Is(err, entry.err), "%v: %v", entry.name, err)

		var syn *ErrSyntax
		if assert.True(errors.As(err, &syn), entry.name) {
			assert.Equal(entry.lineno, syn.LineNo, entry.name)
		}
	}
}

func TestAssemblerParseErrors(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("lda #zz"))
	var pn ErrParseNumber
	assert.True(errors.As(err, &pn))
	assert.Equal(ErrParseNumber("zz"), pn)

	_, err = asm.Parse(strings.NewReader("lda #$(\"text\")"))
	var pe ErrParseExpression
	assert.True(errors.As(err, &pe))

	_, err = asm.Parse(strings.NewReader("lda #$(UNDEFINED)"))
	assert.Error(err)
}

func TestAssemblerMacroError(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".macro bad",
		"adc #1",
		".endm",
		"bad",
	}

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.True(errors.Is(err, ErrInstructionUnsupported))

	var em *ErrMacro
	if assert.True(errors.As(err, &em)) {
		assert.Equal("bad", em.Macro)
		assert.Equal(2, em.Line)
	}
}

func TestAssemblerReuse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("a: lda #1\nbrk"))
	assert.NoError(err)
	assert.Equal(3, len(prog.Binary()))

	prog, err = asm.Parse(strings.NewReader("a: tax\nbrk"))
	assert.NoError(err)
	assert.Equal([]uint8{0xaa, 0x00}, prog.Binary())
}
