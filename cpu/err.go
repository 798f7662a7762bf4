package cpu

import (
	"errors"

	"github.com/ezrec/subleq/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrDirectiveUnknown = errors.New(f("directive unknown"))
	ErrNameDuplicate    = errors.New(f("name duplicated"))
	ErrNameInvalid      = errors.New(f("name invalid"))
	ErrArgumentMissing  = errors.New(f("argument missing"))
	ErrArgumentExtra    = errors.New(f("excessive arguments"))
	ErrMnemonicUnknown  = errors.New(f("mnemonic unknown"))
	ErrMemoryFull       = errors.New(f("memory full"))
)

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value, register or label", string(err))
}

// ErrArgument locates an error at an instruction or directive operand.
type ErrArgument struct {
	Index int // 1-based operand index.
	Err   error
}

func (err *ErrArgument) Error() string {
	return f("argument %d %v", err.Index, err.Err)
}

func (err *ErrArgument) Unwrap() error {
	return err.Err
}

// ErrIncludeMissing is returned when an included file cannot be read.
type ErrIncludeMissing struct {
	Name string
	Err  error
}

func (err *ErrIncludeMissing) Error() string {
	return f("include %v missing: %v", err.Name, err.Err)
}

func (err *ErrIncludeMissing) Unwrap() error {
	return err.Err
}

// ErrSyntax locates an assembler error in the source text.
type ErrSyntax struct {
	File   string
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	if len(err.File) == 0 {
		return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
	}
	return f("%v:%d '%v' %v", err.File, err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
