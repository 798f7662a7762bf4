// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"strings"
)

const (
	MEMORY_SIZE = 65536 // Words of addressable memory.
	TRIPLE_SIZE = 3     // Words per instruction.
)

// Word is the machine's only data type.
type Word int16

// Memory is the flat word array holding code, data and registers.
type Memory [MEMORY_SIZE]Word

// Cpu is the simulation context of the SUBLEQ processor.
type Cpu struct {
	Memory Memory // Main memory.
	Pc     uint16 // Program counter.
	Ticks  int    // Instructions executed since the last Load.
}

// NewCpu creates a new CPU with cleared memory.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Load copies a program image into memory, and points the program counter
// at the program entry.
func (cpu *Cpu) Load(prog *Program) {
	cpu.Memory = prog.Image
	cpu.Pc = prog.Entry
	cpu.Ticks = 0
}

// Fetch returns the instruction triple at the program counter.
func (cpu *Cpu) Fetch() (a, b, c uint16) {
	pc := cpu.Pc
	a = uint16(cpu.Memory[pc])
	b = uint16(cpu.Memory[pc+1])
	c = uint16(cpu.Memory[pc+2])
	return
}

// Tick executes a single SUBLEQ instruction.
func (cpu *Cpu) Tick() {
	a, b, c := cpu.Fetch()

	cpu.Memory[b] -= cpu.Memory[a]
	if cpu.Memory[b] <= 0 {
		cpu.Pc = c
	} else {
		cpu.Pc += TRIPLE_SIZE
	}

	cpu.Ticks++
}

// String returns the program counter and register block as text.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	a, b, c := cpu.Fetch()
	fmt.Fprintf(&sb, "% 5s: %04x (%d %d %d)\n", "pc", cpu.Pc, a, b, c)
	for n, name := range registerNames {
		fmt.Fprintf(&sb, "% 5s: %d\n", name, cpu.Memory[REGISTER_BASE+n])
	}

	text = sb.String()
	return
}
