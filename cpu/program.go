package cpu

import (
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// UNKNOWN_MNEMONIC is shown for addresses that do not start an instruction.
const UNKNOWN_MNEMONIC = "???"

// Opcode is an assembled line of source, and where its triples live.
type Opcode struct {
	File     string
	LineNo   int
	Ip       uint16   // Address of the first emitted word.
	Words    []string // Source tokens.
	Mnemonic Mnemonic
}

// Size returns the number of words of the opcode's expansion.
func (op *Opcode) Size() int {
	return op.Mnemonic.Words()
}

// Program is an assembled memory image.
type Program struct {
	Image     Memory       // Registers, variables and code.
	Entry     uint16       // Initial program counter.
	End       uint16       // First word after the code.
	Variables int          // Number of variables above the register block.
	Symbols   *SymbolTable // Names of registers, variables and labels.
	Opcodes   []Opcode     // Instructions in address order.

	instruction map[uint16]int // Address to Opcodes index.
}

// Debug locates the opcode whose expansion contains an address.
type Debug struct {
	*Opcode
	Index int // Triple index within the expansion.
}

// newProgram creates a program image with the register constants loaded.
func newProgram() (prog *Program) {
	prog = &Program{
		Symbols:     NewSymbolTable(),
		instruction: make(map[uint16]int),
	}

	for addr, value := range registerInit {
		prog.Image[addr] = value
	}

	return
}

// addOpcode records an emitted instruction.
func (prog *Program) addOpcode(op Opcode) {
	prog.instruction[op.Ip] = len(prog.Opcodes)
	prog.Opcodes = append(prog.Opcodes, op)
}

// Mnemonic returns the name of the instruction starting at an address.
func (prog *Program) Mnemonic(ip uint16) (name string) {
	index, ok := prog.instruction[ip]
	if !ok {
		name = UNKNOWN_MNEMONIC
		return
	}

	name = prog.Opcodes[index].Mnemonic.String()
	return
}

// Debug returns the opcode containing an address.
func (prog *Program) Debug(ip uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(ip) >= int(op.Ip) && int(ip) < int(op.Ip)+op.Size() {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  (int(ip) - int(op.Ip)) / TRIPLE_SIZE,
			}
			break
		}
	}

	return
}

// DataEnd returns the address after the last variable.
func (prog *Program) DataEnd() uint16 {
	return uint16(DATA_BASE) + uint16(prog.Variables)
}

// Code iterates over the emitted words by address.
func (prog *Program) Code() iter.Seq2[uint16, Word] {
	return func(yield func(ip uint16, word Word) bool) {
		for ip := prog.Entry; ip != prog.End; ip++ {
			if !yield(ip, prog.Image[ip]) {
				return
			}
		}
	}
}

// operandName shows register addresses by name, and other words in decimal.
func operandName(word Word) string {
	name, ok := RegisterName(word)
	if ok {
		return name
	}
	return strconv.Itoa(int(word))
}

// Listing writes the emitted triples, each instruction headed by its
// source line.
func (prog *Program) Listing(w io.Writer) (err error) {
	triple := make([]string, 0, TRIPLE_SIZE)
	for ip, word := range prog.Code() {
		index, ok := prog.instruction[ip]
		if ok {
			op := &prog.Opcodes[index]
			where := strconv.Itoa(op.LineNo)
			if len(op.File) != 0 {
				where = op.File + ":" + where
			}
			_, err = fmt.Fprintf(w, "; %v: %v\n", where, strings.Join(op.Words, " "))
			if err != nil {
				err = errors.Wrap(err, "listing")
				return
			}
		}

		triple = append(triple, operandName(word))
		if len(triple) < TRIPLE_SIZE {
			continue
		}

		_, err = fmt.Fprintf(w, "%04x: %v\n", ip+1-TRIPLE_SIZE, strings.Join(triple, " "))
		if err != nil {
			err = errors.Wrap(err, "listing")
			return
		}
		triple = triple[:0]
	}

	return
}
