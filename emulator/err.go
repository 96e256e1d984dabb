package emulator

import (
	"errors"

	"github.com/ezrec/tiny6502/translate"
)

var f = translate.From

var (
	ErrProgramSize = errors.New(f("program larger than address space"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Pc     uint16
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc $%04x %v", err.Pc, err.Err)
	}
	return f("line %d pc $%04x %v", err.LineNo, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
