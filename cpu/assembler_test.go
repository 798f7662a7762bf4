package cpu

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assemble(t *testing.T, program ...string) *Program {
	t.Helper()

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)
	require.NotNil(t, prog)

	return prog
}

func TestAssemblerEmpty(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t)

	assert.Equal(uint16(DATA_BASE), prog.Entry)
	assert.Equal(prog.Entry, prog.End)
	assert.Equal(0, prog.Variables)
	assert.Empty(prog.Opcodes)
	assert.Equal(Word(1), prog.Image[REG_P1])
}

func TestAssemblerVariables(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".dat x 5",
		".dat y -3",
		".dat z 0x10",
		".dat w 0xffff",
		".dat m -32768",
	)

	assert.Equal(5, prog.Variables)
	assert.Equal(uint16(DATA_BASE)+5, prog.Entry)
	assert.Equal(prog.Entry, prog.DataEnd())

	expected := []struct {
		name  string
		value Word
	}{
		{"x", 5},
		{"y", -3},
		{"z", 16},
		{"w", -1},
		{"m", -0x8000},
	}
	for n, entry := range expected {
		sym, ok := prog.Symbols.Lookup(entry.name)
		assert.True(ok, entry.name)
		assert.Equal(DATA_BASE+Word(n), sym.Address, entry.name)
		assert.Equal(SYMBOL_VARIABLE, sym.Kind, entry.name)
		assert.Equal(entry.value, prog.Image[uint16(sym.Address)], entry.name)
	}
}

func TestAssemblerDataAfterCode(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"clr x",
		".dat x 3",
	)

	assert.Equal(uint16(DATA_BASE)+1, prog.Entry)
	assert.Equal(Word(DATA_BASE), prog.Image[prog.Entry])
	assert.Equal(Word(DATA_BASE), prog.Image[prog.Entry+1])
	assert.Equal(Word(prog.Entry+3), prog.Image[prog.Entry+2])
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".dat x 0",
		"#top",
		"jmp end",
		"#middle",
		"clr x",
		"#end",
	)

	top, ok := prog.Symbols.Lookup("top")
	assert.True(ok)
	assert.Equal(Word(prog.Entry), top.Address)
	assert.Equal(SYMBOL_LABEL, top.Kind)

	middle, ok := prog.Symbols.Lookup("middle")
	assert.True(ok)
	assert.Equal(Word(prog.Entry+3), middle.Address)

	end, ok := prog.Symbols.Lookup("end")
	assert.True(ok)
	assert.Equal(Word(prog.End), end.Address)

	// Forward reference.
	assert.Equal(Word(prog.End), prog.Image[prog.Entry+2])
}

func TestAssemblerOperands(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"slq 0x200 -1 12",
		"slq IOUT P1 0",
	)

	assert.Equal([]Word{0x200, -1, 12}, prog.Image[prog.Entry:prog.Entry+3])
	assert.Equal([]Word{REG_IOUT, REG_P1, 0}, prog.Image[prog.Entry+3:prog.Entry+6])
}

func TestAssemblerDataOffset(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".dat x 5",
		"slq DATA_OFFSET x 0",
	)

	x, ok := prog.Symbols.Lookup("x")
	assert.True(ok)
	assert.Equal(DATA_BASE, x.Address)
	assert.Equal([]Word{DATA_BASE, DATA_BASE, 0}, prog.Image[prog.Entry:prog.Entry+3])

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader(".dat DATA_OFFSET 1\n"))
	assert.ErrorIs(err, ErrNameDuplicate)
}

func TestAssemblerIgnoredLines(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"; comment",
		"// another comment",
		"",
		"    ",
		"\tinc X",
		"-- inc X",
	)

	assert.Len(prog.Opcodes, 1)
	assert.Equal(5, prog.Opcodes[0].LineNo)
	assert.Equal([]string{"inc", "X"}, prog.Opcodes[0].Words)
}

func TestAssemblerMnemonic(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".dat x 1",
		".dat y 2",
		"set x y",
		"ret",
	)

	assert.Equal("set", prog.Mnemonic(prog.Entry))
	assert.Equal(UNKNOWN_MNEMONIC, prog.Mnemonic(prog.Entry+3))
	assert.Equal("ret", prog.Mnemonic(prog.Entry+uint16(MN_SET.Words())))
	assert.Equal(UNKNOWN_MNEMONIC, prog.Mnemonic(0))
}

func TestAssemblerDebug(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".dat x 1",
		"",
		"neg x",
		"inc x",
	)

	dbg := prog.Debug(prog.Entry + 4)
	assert.NotNil(dbg.Opcode)
	assert.Equal(MN_NEG, dbg.Mnemonic)
	assert.Equal(3, dbg.LineNo)
	assert.Equal(1, dbg.Index)
	assert.Equal([]string{"neg", "x"}, dbg.Words)

	dbg = prog.Debug(prog.Entry + uint16(MN_NEG.Words()))
	assert.NotNil(dbg.Opcode)
	assert.Equal(MN_INC, dbg.Mnemonic)
	assert.Equal(4, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(prog.End)
	assert.Nil(dbg.Opcode)
}

func TestAssemblerInclude(t *testing.T) {
	assert := assert.New(t)

	fsys := fstest.MapFS{
		"lib.sla": &fstest.MapFile{
			Data: []byte("#lib\ninc x\n%never\nret\n"),
		},
		"data.sla": &fstest.MapFile{
			Data: []byte(".dat y 7\n"),
		},
	}

	asm := &Assembler{Name: "main.sla", FS: fsys}
	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		".dat x 0",
		"%lib",
		"jsr lib",
		"%data",
		"set x y",
	}, "\n")))
	require.NoError(t, err)

	// Includes are placed after the main text, in order.
	assert.Len(prog.Opcodes, 4)
	assert.Equal(MN_JSR, prog.Opcodes[0].Mnemonic)
	assert.Equal("main.sla", prog.Opcodes[0].File)
	assert.Equal(3, prog.Opcodes[0].LineNo)
	assert.Equal(MN_SET, prog.Opcodes[1].Mnemonic)
	assert.Equal(MN_INC, prog.Opcodes[2].Mnemonic)
	assert.Equal("lib.sla", prog.Opcodes[2].File)
	assert.Equal(2, prog.Opcodes[2].LineNo)
	assert.Equal(MN_RET, prog.Opcodes[3].Mnemonic)
	assert.Equal(4, prog.Opcodes[3].LineNo)

	lib, ok := prog.Symbols.Lookup("lib")
	assert.True(ok)
	assert.Equal(Word(prog.Opcodes[2].Ip), lib.Address)

	y, ok := prog.Symbols.Lookup("y")
	assert.True(ok)
	assert.Equal(Word(7), prog.Image[uint16(y.Address)])
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	fsys := fstest.MapFS{
		"lib.sla": &fstest.MapFile{
			Data: []byte("inc x\nmov x\n"),
		},
	}

	table := [](struct {
		name   string
		source string
		err    error
		file   string
		lineNo int
		index  int
	}){
		{"directive", ".foo x 1", ErrDirectiveUnknown, "main.sla", 1, 0},
		{"dat-empty", ".dat", ErrArgumentMissing, "main.sla", 1, 1},
		{"dat-value", ".dat x", ErrArgumentMissing, "main.sla", 1, 2},
		{"dat-extra", ".dat x 1 2", ErrArgumentExtra, "main.sla", 1, 3},
		{"dat-numeric", ".dat 1x 1", ErrNameInvalid, "main.sla", 1, 1},
		{"dat-duplicate", ".dat x 1\n.dat x 2", ErrNameDuplicate, "main.sla", 2, 1},
		{"dat-register", ".dat P1 3", ErrNameDuplicate, "main.sla", 1, 1},
		{"dat-number", ".dat x abc", ErrParseNumber("abc"), "main.sla", 1, 2},
		{"dat-range", ".dat x 70000", ErrParseNumber("70000"), "main.sla", 1, 2},
		{"dat-underflow", ".dat x -32769", ErrParseNumber("-32769"), "main.sla", 1, 2},
		{"label-duplicate", "#a\n#a", ErrNameDuplicate, "main.sla", 2, 0},
		{"label-variable", ".dat a 0\n#a", ErrNameDuplicate, "main.sla", 2, 0},
		{"label-empty", "#", ErrNameInvalid, "main.sla", 1, 0},
		{"label-numeric", "#1x", ErrNameInvalid, "main.sla", 1, 0},
		{"label-extra", "#a b", ErrArgumentExtra, "main.sla", 1, 1},
		{"mnemonic", "\n\nmov x y", ErrMnemonicUnknown, "main.sla", 3, 0},
		{"arg-missing", ".dat x 0\nadd x", ErrArgumentMissing, "main.sla", 2, 2},
		{"arg-extra", ".dat x 0\nclr x x", ErrArgumentExtra, "main.sla", 2, 2},
		{"ret-extra", "ret x", ErrArgumentExtra, "main.sla", 1, 1},
		{"arg-value", "clr nothing", ErrParseValue("nothing"), "main.sla", 1, 1},
		{"arg-number", "jmp 12z", ErrParseNumber("12z"), "main.sla", 1, 1},
		{"arg-range", "jmp 0x10000", ErrParseNumber("0x10000"), "main.sla", 1, 1},
		{"include-missing", "\n%missing", fs.ErrNotExist, "main.sla", 2, 0},
		{"include-empty", "%", ErrNameInvalid, "main.sla", 1, 1},
		{"include-extra", "%lib lib", ErrArgumentExtra, "main.sla", 1, 2},
		{"include-error", ".dat x 0\n%lib", ErrMnemonicUnknown, "lib.sla", 2, 0},
	}

	for _, entry := range table {
		asm := &Assembler{Name: "main.sla", FS: fsys}
		prog, err := asm.Parse(strings.NewReader(entry.source))
		assert.Nil(prog, entry.name)
		if !assert.Error(err, entry.name) {
			continue
		}
		assert.ErrorIs(err, entry.err, entry.name)

		var errSyntax *ErrSyntax
		if assert.ErrorAs(err, &errSyntax, entry.name) {
			assert.Equal(entry.file, errSyntax.File, entry.name)
			assert.Equal(entry.lineNo, errSyntax.LineNo, entry.name)
		}

		var errArgument *ErrArgument
		if entry.index == 0 {
			assert.False(errors.As(err, &errArgument), entry.name)
		} else if assert.ErrorAs(err, &errArgument, entry.name) {
			assert.Equal(entry.index, errArgument.Index, entry.name)
		}
	}
}

func TestAssemblerMemoryFull(t *testing.T) {
	assert := assert.New(t)

	count := (MEMORY_SIZE-int(DATA_BASE))/MN_SLT.Words() + 1
	lines := []string{".dat x 0"}
	for range count {
		lines = append(lines, "slt x x")
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
	assert.Nil(prog)
	assert.ErrorIs(err, ErrMemoryFull)

	var errSyntax *ErrSyntax
	if assert.ErrorAs(err, &errSyntax) {
		assert.Equal(count+1, errSyntax.LineNo)
	}
}

func TestAssemblerErrorText(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("clr nothing"))
	assert.Equal("line 1 'clr nothing' argument 1 'nothing' is not a value, register or label", err.Error())

	asm.Name = "main.sla"
	_, err = asm.Parse(strings.NewReader("mov"))
	assert.Equal("main.sla:1 'mov' mnemonic unknown", err.Error())
}
