// Package io provides the console device behind the memory mapped ports of
// the SUBLEQ machine: decimal and character output, and the single byte
// operator input used to step the debugger.
package io
