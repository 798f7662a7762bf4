package cpu

const (
	REGISTER_BASE = 0x100 // First word of the register block.
	STACK_BASE    = 0x000 // Initial value of the S stack pointer.
)

// Register block. Each register is a fixed word of memory.
const (
	REG_BRK  = Word(REGISTER_BASE + iota) // Writing halts the machine.
	REG_IOUT                              // Decimal output port.
	REG_COUT                              // Character output port.
	REG_P1                                // Constant 1.
	REG_N1                                // Constant -1.
	REG_O                                 // Constant -32768.
	REG_J                                 // jsr return offset.
	REG_K                                 // cll return offset.
	REG_A                                 // Scratch.
	REG_B                                 // Scratch.
	REG_S                                 // Call stack pointer.
	REG_R                                 // General purpose.
	REG_A1                                // Argument of cll.
	REG_A2                                // General purpose.
	REG_X                                 // General purpose.
	REG_Y                                 // General purpose.
	REG_F                                 // General purpose.
)

// DATA_BASE is the address of the first variable.
const DATA_BASE = REG_F + 1

// DATA_OFFSET names DATA_BASE in programs.
const DATA_OFFSET = "DATA_OFFSET"

// Return offsets, measured from the self-addressed word of a call
// trampoline to the word following the trampoline.
const (
	JSR_RETURN_OFFSET = 12
	CLL_RETURN_OFFSET = 12
)

// registerNames is in register address order.
var registerNames = [...]string{
	"BRK", "IOUT", "COUT",
	"P1", "N1", "O", "J", "K",
	"A", "B", "S", "R", "A1", "A2", "X", "Y", "F",
}

// registerInit holds the values preloaded into every program image.
var registerInit = map[Word]Word{
	REG_P1: 1,
	REG_N1: -1,
	REG_O:  -0x8000,
	REG_J:  JSR_RETURN_OFFSET,
	REG_K:  CLL_RETURN_OFFSET,
	REG_S:  STACK_BASE,
}

// IsPort returns true if the address is a memory mapped port.
func IsPort(addr Word) bool {
	return addr == REG_BRK || addr == REG_IOUT || addr == REG_COUT
}

// RegisterName returns the name of the register at an address.
func RegisterName(addr Word) (name string, ok bool) {
	index := int(addr) - REGISTER_BASE
	if index < 0 || index >= len(registerNames) {
		return
	}

	name, ok = registerNames[index], true
	return
}
