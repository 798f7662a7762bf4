package emulator

import (
	"bytes"
	"strconv"

	"github.com/golang/glog"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/subleq/cpu"
)

// TRACE_MEMORY is the number of low memory words shown in a trace.
const TRACE_MEMORY = 32

// trace writes the machine state before the current tick:
//
//	pc: <mnemonic> (<pc>) | <register and variable words>
//	(<a>	<b>	<c>)
//	<first TRACE_MEMORY words>
func (emu *Emulator) trace() (err error) {
	pc := emu.Cpu.Pc
	mem := &emu.Cpu.Memory

	var buff bytes.Buffer

	buff.WriteString("pc: ")
	buff.WriteString(emu.Program.Mnemonic(pc))
	buff.WriteString(" (")
	buff.WriteString(strconv.Itoa(int(pc)))
	buff.WriteString(") | ")
	for addr := uint16(cpu.REGISTER_BASE); addr < emu.Program.DataEnd(); addr++ {
		buff.WriteString(strconv.Itoa(int(mem[addr])))
		buff.WriteByte(' ')
	}
	buff.WriteByte('\n')

	a, b, c := pc, pc+1, pc+2
	buff.WriteByte('(')
	buff.WriteString(strconv.Itoa(int(mem[a])))
	buff.WriteByte('\t')
	buff.WriteString(strconv.Itoa(int(mem[b])))
	buff.WriteByte('\t')
	buff.WriteString(strconv.Itoa(int(mem[c])))
	buff.WriteString(")\n")

	for addr := range TRACE_MEMORY {
		if addr > 0 {
			buff.WriteByte(' ')
		}
		buff.WriteString(strconv.Itoa(int(mem[addr])))
	}
	buff.WriteByte('\n')

	glog.V(2).Infof("emulator: trace %#04x", pc)

	_, err = emu.Tape.Write(buff.Bytes())
	return
}

// traced evaluates the break condition against the machine state. Without
// a condition, every tick is traced.
//
// The condition is a Starlark expression. `pc` is bound to the program
// counter, registers and variables to their current values, and labels and
// DATA_OFFSET to their addresses.
func (emu *Emulator) traced() (ok bool, err error) {
	if len(emu.Break) == 0 {
		ok = true
		return
	}

	thread := starlark.Thread{Name: "break"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"pc": starlark.MakeInt(int(emu.Cpu.Pc)),
	}
	for name, sym := range emu.Program.Symbols.All() {
		_, register := cpu.RegisterName(sym.Address)
		switch {
		case sym.Kind == cpu.SYMBOL_LABEL, sym.Kind == cpu.SYMBOL_REGISTER && !register:
			pred[name] = starlark.MakeInt(int(uint16(sym.Address)))
		default:
			pred[name] = starlark.MakeInt(int(emu.Cpu.Memory[uint16(sym.Address)]))
		}
	}

	prog := "rc=" + emu.Break + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "break", prog, pred)
	if err != nil {
		err = &ErrBreak{Expr: emu.Break, Err: err}
		return
	}

	rc, found := dict["rc"]
	if !found {
		err = &ErrBreak{Expr: emu.Break}
		return
	}

	ok = bool(rc.Truth())
	return
}
