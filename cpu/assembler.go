// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"bytes"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

const (
	INCLUDE_SUFFIX = ".sla" // Appended to the name of an include.
	DIRECTIVE_DATA = ".dat" // The only directive.
)

// lineKind is the classification of a source line by its leading rune.
type lineKind int

const (
	LINE_BLANK       = lineKind(0) // Blank or ignored.
	LINE_DIRECTIVE   = lineKind(1) // .dat NAME VALUE
	LINE_LABEL       = lineKind(2) // #NAME
	LINE_INCLUDE     = lineKind(3) // %NAME
	LINE_INSTRUCTION = lineKind(4) // MNEMONIC ARGS...
)

// sourceLine is a line of program text, after include expansion.
type sourceLine struct {
	file     string
	lineNo   int
	text     string
	words    []string
	kind     lineKind
	mnemonic Mnemonic // Set by the address resolution pass.
}

// wrap locates an error at the line.
func (ln *sourceLine) wrap(err error) error {
	return &ErrSyntax{File: ln.file, LineNo: ln.lineNo, Line: ln.text, Err: err}
}

// classify determines the kind of a tokenized line.
func classify(words []string) lineKind {
	if len(words) == 0 {
		return LINE_BLANK
	}

	r, _ := utf8.DecodeRuneInString(words[0])
	switch {
	case r == '.':
		return LINE_DIRECTIVE
	case r == '#':
		return LINE_LABEL
	case r == '%':
		return LINE_INCLUDE
	case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
		return LINE_INSTRUCTION
	}

	return LINE_BLANK
}

// scanLines splits program text into classified lines.
func scanLines(file string, input io.Reader) (lines []sourceLine, err error) {
	scanner := bufio.NewScanner(input)

	lineno := 0
	for scanner.Scan() {
		lineno++
		text := scanner.Text()
		words := strings.Fields(text)
		lines = append(lines, sourceLine{
			file:   file,
			lineNo: lineno,
			text:   strings.TrimSpace(text),
			words:  words,
			kind:   classify(words),
		})
	}

	err = scanner.Err()
	if err != nil {
		err = errors.Wrapf(err, "%v", file)
	}

	return
}

// isNumeric returns true if a word is meant to be an integer literal.
func isNumeric(word string) bool {
	if len(word) > 1 && (word[0] == '-' || word[0] == '+') {
		word = word[1:]
	}
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsDigit(r)
}

// parseNumber parses an integer literal. Values up to 0xffff are accepted
// and wrap to negative words, so that any address can be written.
func parseNumber(word string) (value Word, err error) {
	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil || v64 < -0x8000 || v64 > 0xffff {
		err = ErrParseNumber(word)
		return
	}

	value = Word(v64)
	return
}

// valueOf resolves an operand to a word: a register, variable or label
// name, else an integer literal.
func valueOf(st *SymbolTable, word string) (value Word, err error) {
	sym, ok := st.Lookup(word)
	if ok {
		value = sym.Address
		return
	}

	if !isNumeric(word) {
		err = ErrParseValue(word)
		return
	}

	value, err = parseNumber(word)
	return
}

// Assembler is a three pass assembler for the SUBLEQ machine.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Name    string // Name of the main source, used in diagnostics.
	FS      fs.FS  // Source of included files. Defaults to the working directory.
}

// includeFS returns the file system includes are read from.
func (asm *Assembler) includeFS() fs.FS {
	if asm.FS == nil {
		return os.DirFS(".")
	}
	return asm.FS
}

// Parse assembles program text into a memory image.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	lines, err := asm.preprocess(input)
	if err != nil {
		return
	}

	prog = newProgram()

	defer func() {
		if err != nil {
			prog = nil
		}
	}()

	err = asm.layout(prog, lines)
	if err != nil {
		return
	}

	err = asm.resolve(prog, lines)
	if err != nil {
		return
	}

	err = asm.emit(prog, lines)
	if err != nil {
		return
	}

	return
}

// preprocess reads the program text, and appends every included file
// after it. Included files are not scanned for further includes.
func (asm *Assembler) preprocess(input io.Reader) (lines []sourceLine, err error) {
	lines, err = scanLines(asm.Name, input)
	if err != nil {
		return
	}

	var included []sourceLine
	for n := range lines {
		ln := &lines[n]
		if ln.kind != LINE_INCLUDE {
			continue
		}

		if len(ln.words) > 1 {
			err = ln.wrap(&ErrArgument{Index: 2, Err: ErrArgumentExtra})
			return
		}

		name := ln.words[0][1:]
		if len(name) == 0 {
			err = ln.wrap(&ErrArgument{Index: 1, Err: ErrNameInvalid})
			return
		}
		name += INCLUDE_SUFFIX

		if asm.Verbose {
			glog.Infof("asm: include %v", name)
		}

		var data []byte
		data, err = fs.ReadFile(asm.includeFS(), name)
		if err != nil {
			err = ln.wrap(&ErrIncludeMissing{Name: name, Err: err})
			return
		}

		var more []sourceLine
		more, err = scanLines(name, bytes.NewReader(data))
		if err != nil {
			return
		}
		included = append(included, more...)
	}

	lines = append(lines, included...)
	return
}

// layout is pass 1: allocate and initialize every variable.
func (asm *Assembler) layout(prog *Program, lines []sourceLine) (err error) {
	for n := range lines {
		ln := &lines[n]
		if ln.kind != LINE_DIRECTIVE {
			continue
		}

		err = asm.directive(prog, ln.words)
		if err != nil {
			err = ln.wrap(err)
			return
		}
	}

	if asm.Verbose {
		glog.Infof("asm: pass 1: %d variables, entry %#04x", prog.Variables, prog.DataEnd())
	}

	return
}

// directive evaluates a directive line.
func (asm *Assembler) directive(prog *Program, words []string) (err error) {
	if words[0] != DIRECTIVE_DATA {
		err = ErrDirectiveUnknown
		return
	}

	args := words[1:]
	switch {
	case len(args) < 1:
		err = &ErrArgument{Index: 1, Err: ErrArgumentMissing}
		return
	case len(args) < 2:
		err = &ErrArgument{Index: 2, Err: ErrArgumentMissing}
		return
	case len(args) > 2:
		err = &ErrArgument{Index: 3, Err: ErrArgumentExtra}
		return
	}

	name := args[0]
	if isNumeric(name) {
		err = &ErrArgument{Index: 1, Err: ErrNameInvalid}
		return
	}

	value, err := parseNumber(args[1])
	if err != nil {
		err = &ErrArgument{Index: 2, Err: err}
		return
	}

	if int(prog.DataEnd()) >= MEMORY_SIZE-1 {
		err = ErrMemoryFull
		return
	}

	addr := Word(prog.DataEnd())
	err = prog.Symbols.Define(name, addr, SYMBOL_VARIABLE)
	if err != nil {
		err = &ErrArgument{Index: 1, Err: err}
		return
	}

	glog.V(2).Infof("asm: .dat %v = %d at %#04x", name, value, uint16(addr))

	prog.Image[uint16(addr)] = value
	prog.Variables++

	return
}

// resolve is pass 2: bind every label to the address of the instruction
// that follows it.
func (asm *Assembler) resolve(prog *Program, lines []sourceLine) (err error) {
	ip := int(prog.DataEnd())
	prog.Entry = uint16(ip)

	for n := range lines {
		ln := &lines[n]

		switch ln.kind {
		case LINE_LABEL:
			if len(ln.words) > 1 {
				err = ln.wrap(&ErrArgument{Index: 1, Err: ErrArgumentExtra})
				return
			}
			name := ln.words[0][1:]
			if len(name) == 0 || isNumeric(name) {
				err = ln.wrap(ErrNameInvalid)
				return
			}
			err = prog.Symbols.Define(name, Word(ip), SYMBOL_LABEL)
			if err != nil {
				err = ln.wrap(err)
				return
			}
			glog.V(2).Infof("asm: #%v at %#04x", name, ip)
		case LINE_INSTRUCTION:
			mn, ok := LookupMnemonic(ln.words[0])
			if !ok {
				err = ln.wrap(ErrMnemonicUnknown)
				return
			}
			ln.mnemonic = mn
			ip += mn.Words()
			if ip >= MEMORY_SIZE {
				err = ln.wrap(ErrMemoryFull)
				return
			}
		}
	}

	prog.End = uint16(ip)

	if asm.Verbose {
		glog.Infof("asm: pass 2: %d labels, code %#04x-%#04x", prog.Symbols.Len(SYMBOL_LABEL), prog.Entry, prog.End)
	}

	return
}

// operands resolves the operands of an instruction line.
func (asm *Assembler) operands(prog *Program, ln *sourceLine) (args []Word, err error) {
	words := ln.words[1:]
	count := ln.mnemonic.Args()

	if len(words) > count {
		err = &ErrArgument{Index: count + 1, Err: ErrArgumentExtra}
		return
	}

	args = make([]Word, count)
	for n := range count {
		if n >= len(words) {
			err = &ErrArgument{Index: n + 1, Err: ErrArgumentMissing}
			return
		}
		args[n], err = valueOf(prog.Symbols, words[n])
		if err != nil {
			err = &ErrArgument{Index: n + 1, Err: err}
			return
		}
	}

	return
}

// emit is pass 3: expand every instruction into the image.
func (asm *Assembler) emit(prog *Program, lines []sourceLine) (err error) {
	e := &emitter{image: &prog.Image, ip: prog.Entry}

	for n := range lines {
		ln := &lines[n]
		if ln.kind != LINE_INSTRUCTION {
			continue
		}

		var args []Word
		args, err = asm.operands(prog, ln)
		if err != nil {
			err = ln.wrap(err)
			return
		}

		op := Opcode{
			File:     ln.file,
			LineNo:   ln.lineNo,
			Ip:       e.ip,
			Words:    ln.words,
			Mnemonic: ln.mnemonic,
		}

		instructionSet[ln.mnemonic].expand(e, args)

		if int(e.ip)-int(op.Ip) != op.Size() {
			glog.Fatalf("asm: %v emitted %d words, sized as %d", ln.mnemonic, int(e.ip)-int(op.Ip), op.Size())
		}

		prog.addOpcode(op)
	}

	if asm.Verbose {
		glog.Infof("asm: pass 3: %d instructions, %d words", len(prog.Opcodes), int(prog.End)-int(prog.Entry))
	}

	return
}
