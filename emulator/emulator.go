// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	goio "io"

	"github.com/golang/glog"

	"github.com/ezrec/subleq/cpu"
	"github.com/ezrec/subleq/io"
)

// Emulator state. CPU + program + console ports.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	Debug    bool         // If set, single steps with a trace of every tick.
	Break    string       // If set, a condition limiting which ticks are traced.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Tape io.Tape // Console for the output ports and debug input.

	halted bool
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	return
}

// Reset loads the program into memory, and clears the halted state.
func (emu *Emulator) Reset() (err error) {
	if emu.Program == nil {
		err = ErrProgramMissing
		return
	}

	emu.Cpu.Load(emu.Program)
	emu.halted = false

	if emu.Verbose {
		glog.Infof("emulator: reset, entry %#04x, %d words of code", emu.Program.Entry, int(emu.Program.End)-int(emu.Program.Entry))
	}

	return
}

// Halted returns true once the program has written to the BRK port.
func (emu *Emulator) Halted() bool {
	return emu.halted
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int {
	return int(emu.Cpu.Pc)
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// await blocks for a byte of operator input. Exhausted input does not
// block, so that a traced run can be fed from a file.
func (emu *Emulator) await() (err error) {
	_, err = emu.Tape.Await()
	if errors.Is(err, goio.EOF) {
		err = nil
	}
	return
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.halted {
		done = true
		return
	}

	pc := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Err: err}
		}
	}()

	if emu.Debug {
		var trace bool
		trace, err = emu.traced()
		if err != nil {
			return
		}
		if trace {
			err = emu.await()
			if err != nil {
				return
			}
			err = emu.trace()
			if err != nil {
				return
			}
			err = emu.await()
			if err != nil {
				return
			}
		}
	}

	_, b, _ := emu.Cpu.Fetch()
	emu.Cpu.Tick()

	port := cpu.Word(b)
	value := -emu.Cpu.Memory[b]

	switch port {
	case cpu.REG_BRK:
		emu.halted = true
		done = true
		if emu.Verbose {
			glog.Infof("emulator: halted at %#04x after %d ticks", pc, emu.Cpu.Ticks)
		}
	case cpu.REG_IOUT:
		emu.Cpu.Memory[b] = 0
		err = emu.Tape.Decimal(int16(value))
	case cpu.REG_COUT:
		emu.Cpu.Memory[b] = 0
		err = emu.Tape.Rune(int16(value))
	}

	return
}

// RunFor ticks the emulator until it halts, or limit ticks have passed.
func (emu *Emulator) RunFor(limit int) (done bool, err error) {
	for range limit {
		done, err = emu.Tick()
		if done || err != nil {
			break
		}
	}

	if flush := emu.Tape.Flush(); err == nil {
		err = flush
	}

	return
}

// Run ticks the emulator until it halts.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			break
		}
	}

	if flush := emu.Tape.Flush(); err == nil {
		err = flush
	}

	return
}
