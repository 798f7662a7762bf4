package emulator

import (
	"errors"

	"github.com/ezrec/subleq/translate"
)

var f = translate.From

var (
	// Emulator errors
	ErrProgramMissing = errors.New(f("program missing"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc  uint16
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("pc %#04x %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrBreak is returned when a break condition cannot be evaluated.
type ErrBreak struct {
	Expr string
	Err  error
}

func (err *ErrBreak) Error() string {
	if err.Err == nil {
		return f("break '%v' has no value", err.Expr)
	}
	return f("break '%v' %v", err.Expr, err.Err)
}

func (err *ErrBreak) Unwrap() error {
	return err.Err
}
