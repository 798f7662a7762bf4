// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// emitter appends words to a program image.
type emitter struct {
	image *Memory
	ip    uint16 // Next word to write.
}

// write emits raw words.
func (e *emitter) write(words ...Word) {
	for _, word := range words {
		e.image[e.ip] = word
		e.ip++
	}
}

// next emits the jump target of the triple n triples after the triple
// that follows this word. next(0) is the fall-through address.
func (e *emitter) next(n int) {
	e.write(Word(int(e.ip) + 1 + TRIPLE_SIZE*n))
}

// here emits the address of the word displaced d words from this one.
func (e *emitter) here(d int) {
	e.write(Word(int(e.ip) + d))
}

// op emits 'b -= a', continuing with the next triple either way.
func (e *emitter) op(a, b Word) {
	e.write(a, b)
	e.next(0)
}

// skip emits 'b -= a', skipping n triples if the result is not positive.
func (e *emitter) skip(a, b Word, n int) {
	e.write(a, b)
	e.next(n)
}

// set d s: d := s. An output port destination is written once, with the
// negated value the port expects.
func expandSet(e *emitter, args []Word) {
	d, s := args[0], args[1]

	if IsPort(d) {
		e.op(REG_A, REG_A)
		e.op(REG_A, REG_A)
		e.op(REG_A, REG_A)
		e.op(s, d)
		return
	}

	e.op(REG_A, REG_A)
	e.op(s, REG_A)
	e.op(d, d)
	e.op(REG_A, d)
}

// slt d s: d := 1 if d < s, else 0.
//
// d - s overflows when the signs differ, so both signs are classified first
// and only same-signed operands are subtracted. A sign test of x is
// 'x <= 0', then 'x + 1 <= 0' on a copy.
func expandSlt(e *emitter, args []Word) {
	d, s := args[0], args[1]

	// Sign of d.
	e.op(REG_A, REG_A)
	e.skip(REG_A, d, 1)     // d <= 0
	e.skip(REG_A, REG_A, 4) // d > 0: d non-negative
	e.op(REG_B, REG_B)
	e.op(d, REG_B)
	e.op(REG_B, REG_A)
	e.skip(REG_N1, REG_A, 8) // d < 0: d negative

	// d non-negative.
	e.op(REG_A, REG_A)
	e.skip(REG_A, s, 1)      // s <= 0
	e.skip(REG_A, REG_A, 13) // s > 0: same sign
	e.op(REG_B, REG_B)
	e.op(s, REG_B)
	e.op(REG_B, REG_A)
	e.skip(REG_N1, REG_A, 17) // s < 0: false
	e.skip(REG_A, REG_A, 8)   // s == 0: same sign

	// d negative.
	e.op(REG_A, REG_A)
	e.skip(REG_A, s, 1)      // s <= 0
	e.skip(REG_A, REG_A, 10) // s > 0: true
	e.op(REG_B, REG_B)
	e.op(s, REG_B)
	e.op(REG_B, REG_A)
	e.skip(REG_N1, REG_A, 1) // s < 0: same sign
	e.skip(REG_A, REG_A, 5)  // s == 0: true

	// Same sign: true iff s - d > 0.
	e.op(REG_A, REG_A)
	e.op(s, REG_A)
	e.op(REG_B, REG_B)
	e.op(REG_A, REG_B)
	e.skip(d, REG_B, 3) // false

	// True. The constant -1 is the literal triple below.
	e.op(d, d)
	e.here(9)
	e.write(d)
	e.next(0)
	e.skip(REG_A, REG_A, 2)

	// False.
	e.skip(d, d, 1)

	// Literal, never executed.
	e.write(-1, 0, 0)
}

// clr d: d := 0.
func expandClr(e *emitter, args []Word) {
	d := args[0]

	e.op(d, d)
}

// neg d: d := -d.
func expandNeg(e *emitter, args []Word) {
	d := args[0]

	e.op(REG_A, REG_A)
	e.op(REG_B, REG_B)
	e.op(d, REG_A)
	e.op(d, d)
	e.op(REG_A, REG_B)
	e.op(REG_B, d)
}

// add d s: d += s.
func expandAdd(e *emitter, args []Word) {
	d, s := args[0], args[1]

	e.op(REG_A, REG_A)
	e.op(s, REG_A)
	e.op(REG_A, d)
}

// sub d s: d -= s.
func expandSub(e *emitter, args []Word) {
	d, s := args[0], args[1]

	e.op(s, d)
}

// jmp L
func expandJmp(e *emitter, args []Word) {
	label := args[0]

	e.write(REG_A, REG_A, label)
}

// beq d L: jump if d == 0.
func expandBeq(e *emitter, args []Word) {
	d, label := args[0], args[1]

	e.op(REG_A, REG_A)
	e.skip(REG_A, d, 1)     // d <= 0
	e.skip(REG_A, REG_A, 5) // d > 0
	e.op(REG_B, REG_B)
	e.op(d, REG_B)
	e.op(REG_B, REG_A)
	e.skip(REG_N1, REG_A, 1) // d < 0
	e.write(REG_A, REG_A, label)
}

// blq d L: jump if d <= 0.
func expandBlq(e *emitter, args []Word) {
	d, label := args[0], args[1]

	e.op(REG_A, REG_A)
	e.write(REG_A, d, label)
}

// bgq d L: jump if d >= 0.
func expandBgq(e *emitter, args []Word) {
	d, label := args[0], args[1]

	e.op(REG_A, REG_A)
	e.skip(REG_A, d, 1)
	e.write(REG_A, REG_A, label) // d > 0
	e.op(REG_B, REG_B)
	e.op(d, REG_B)
	e.op(REG_B, REG_A)
	e.skip(REG_N1, REG_A, 1) // d < 0
	e.write(REG_A, REG_A, label)
}

// slq a b L: the bare machine instruction.
func expandSlq(e *emitter, args []Word) {
	e.write(args[0], args[1], args[2])
}

// inc d: d += 1.
func expandInc(e *emitter, args []Word) {
	e.op(REG_N1, args[0])
}

// dec d: d -= 1.
func expandDec(e *emitter, args []Word) {
	e.op(REG_P1, args[0])
}

// push emits the first 14 triples of a call trampoline, which store the
// negated return address at memory[S] and increment S. The return address
// is the self-addressed word of triple 11 plus the register at offset.
//
// Triples 0-3 clear the four patch points, triples 5-9 patch them with the
// value of S, so that triples 10-12 address the stack slot.
func (e *emitter) push(offset Word) {
	e.here(30)
	e.here(29)
	e.next(0)
	e.here(28)
	e.here(27)
	e.next(0)
	e.here(28)
	e.here(27)
	e.next(0)
	e.here(28)
	e.here(27)
	e.next(0)

	e.op(REG_A, REG_A)
	e.op(REG_S, REG_A)

	e.write(REG_A)
	e.here(11)
	e.next(0)
	e.write(REG_A)
	e.here(9)
	e.next(0)
	e.write(REG_A)
	e.here(9)
	e.next(0)
	e.write(REG_A)
	e.here(9)
	e.next(0)

	// memory[S] := -(return address)
	e.op(0, 0)
	e.here(0)
	e.write(0)
	e.next(0)
	e.op(offset, 0)

	e.op(REG_N1, REG_S)
}

// jsr L: call L.
func expandJsr(e *emitter, args []Word) {
	label := args[0]

	e.push(REG_J)
	e.write(REG_A, REG_A, label)
}

// cll L arg: call L with A1 := arg. The argument is read before the
// push, so it sees the caller's S.
func expandCll(e *emitter, args []Word) {
	label, arg := args[0], args[1]

	e.op(REG_A, REG_A)
	e.op(arg, REG_A)
	e.op(REG_A1, REG_A1)
	e.op(REG_A, REG_A1)
	e.push(REG_K)
	e.write(REG_A, REG_A, label)
}

// ret: return to the most recent jsr or cll.
func expandRet(e *emitter, args []Word) {
	e.here(18)
	e.here(17)
	e.next(0)
	e.here(20)
	e.here(19)
	e.next(0)

	e.op(REG_P1, REG_S)

	e.op(REG_A, REG_A)
	e.op(REG_S, REG_A)
	e.write(REG_A)
	e.here(2)
	e.next(0)

	// Patched with S; the return address is popped into the jump below.
	e.write(0)
	e.here(4)
	e.next(0)
	e.write(REG_A, REG_A, 0)
}
