package io

import (
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// flusher is implemented by buffered outputs, such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// Tape is the operator console of the machine. Port output is written to
// Output, and debug single-stepping reads bytes from Input.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	scratch []byte
}

// Write sends raw text, such as a debug trace, to the tape output.
func (tc *Tape) Write(data []byte) (n int, err error) {
	if tc.Output == nil {
		err = ErrTapeOutput
		return
	}

	n, err = tc.Output.Write(data)
	if err != nil {
		err = errors.Wrap(err, "tape")
	}

	return
}

// Decimal writes a word as a signed decimal integer.
func (tc *Tape) Decimal(value int16) (err error) {
	tc.scratch = strconv.AppendInt(tc.scratch[:0], int64(value), 10)
	_, err = tc.Write(tc.scratch)
	return
}

// Rune writes a word as a Unicode character. Values that are not Unicode
// scalar values are written as utf8.RuneError.
func (tc *Tape) Rune(value int16) (err error) {
	r := rune(value)
	if !utf8.ValidRune(r) {
		r = utf8.RuneError
	}

	tc.scratch = utf8.AppendRune(tc.scratch[:0], r)
	_, err = tc.Write(tc.scratch)
	return
}

// Flush writes out any buffered output.
func (tc *Tape) Flush() (err error) {
	fl, ok := tc.Output.(flusher)
	if !ok {
		return
	}

	err = fl.Flush()
	if err != nil {
		err = errors.Wrap(err, "tape")
	}

	return
}

// Await flushes the output, then blocks until a single byte of input is
// available. A missing or exhausted input returns io.EOF.
func (tc *Tape) Await() (value byte, err error) {
	err = tc.Flush()
	if err != nil {
		return
	}

	if tc.Input == nil {
		err = io.EOF
		return
	}

	var one [1]byte
	for {
		var n int
		n, err = tc.Input.Read(one[:])
		if n == 1 {
			value = one[0]
			err = nil
			return
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			err = errors.Wrap(err, "tape")
			return
		}
	}
}
