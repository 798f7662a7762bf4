package cpu

// Mnemonic is a pseudo-instruction of the assembly language.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	MN_SET = Mnemonic(0)  // set
	MN_SLT = Mnemonic(1)  // slt
	MN_CLR = Mnemonic(2)  // clr
	MN_NEG = Mnemonic(3)  // neg
	MN_ADD = Mnemonic(4)  // add
	MN_SUB = Mnemonic(5)  // sub
	MN_JMP = Mnemonic(6)  // jmp
	MN_BEQ = Mnemonic(7)  // beq
	MN_BLQ = Mnemonic(8)  // blq
	MN_BGQ = Mnemonic(9)  // bgq
	MN_SLQ = Mnemonic(10) // slq
	MN_INC = Mnemonic(11) // inc
	MN_DEC = Mnemonic(12) // dec
	MN_JSR = Mnemonic(13) // jsr
	MN_CLL = Mnemonic(14) // cll
	MN_RET = Mnemonic(15) // ret
)

// expansion writes the triples of one instruction.
type expansion func(e *emitter, args []Word)

// instruction describes the fixed shape of a mnemonic's expansion.
type instruction struct {
	args    int // Operand count.
	triples int // Triples emitted by expand.
	expand  expansion
}

var instructionSet = [...]instruction{
	MN_SET: {2, 4, expandSet},
	MN_SLT: {2, 33, expandSlt},
	MN_CLR: {1, 1, expandClr},
	MN_NEG: {1, 6, expandNeg},
	MN_ADD: {2, 3, expandAdd},
	MN_SUB: {2, 1, expandSub},
	MN_JMP: {1, 1, expandJmp},
	MN_BEQ: {2, 8, expandBeq},
	MN_BLQ: {2, 2, expandBlq},
	MN_BGQ: {2, 8, expandBgq},
	MN_SLQ: {3, 1, expandSlq},
	MN_INC: {1, 1, expandInc},
	MN_DEC: {1, 1, expandDec},
	MN_JSR: {1, 15, expandJsr},
	MN_CLL: {2, 19, expandCll},
	MN_RET: {0, 8, expandRet},
}

var mnemonicMap = func() (mm map[string]Mnemonic) {
	mm = make(map[string]Mnemonic, len(instructionSet))
	for n := range instructionSet {
		mn := Mnemonic(n)
		mm[mn.String()] = mn
	}
	return
}()

// LookupMnemonic finds a mnemonic by name.
func LookupMnemonic(name string) (mn Mnemonic, ok bool) {
	mn, ok = mnemonicMap[name]
	return
}

// Mnemonics returns all mnemonics in enumeration order.
func Mnemonics() (mns []Mnemonic) {
	for n := range instructionSet {
		mns = append(mns, Mnemonic(n))
	}
	return
}

// Args returns the number of operands the mnemonic takes.
func (mn Mnemonic) Args() int {
	return instructionSet[mn].args
}

// Triples returns the number of SUBLEQ instructions the mnemonic expands to.
func (mn Mnemonic) Triples() int {
	return instructionSet[mn].triples
}

// Words returns the number of memory words the mnemonic occupies.
func (mn Mnemonic) Words() int {
	return TRIPLE_SIZE * mn.Triples()
}
