// Package cpu implements the single instruction processor and its assembler.
//
// The processor has one instruction, SUBLEQ: given the address triple
// (A, B, C) at the program counter it subtracts memory[A] from memory[B] and
// jumps to C if the result is not positive. Code, data, registers and the
// call stack all share one flat memory of 65536 signed 16-bit words.
//
// The assembler is a three pass translator from a small pseudo-assembly
// language (registers, variables, labels and sixteen mnemonics) into
// sequences of SUBLEQ triples. Every mnemonic expands to a fixed number of
// triples, so label addresses are known before any code is emitted.
package cpu
