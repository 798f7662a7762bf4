package cpu

import (
	"iter"

	"github.com/ezrec/subleq/internal"
)

// SymbolKind is the kind of a named address.
type SymbolKind int

//go:generate go tool stringer -linecomment -type=SymbolKind
const (
	SYMBOL_REGISTER = SymbolKind(0) // register
	SYMBOL_VARIABLE = SymbolKind(1) // variable
	SYMBOL_LABEL    = SymbolKind(2) // label
)

// Symbol is a name bound to a fixed address.
type Symbol struct {
	Name    string
	Address Word
	Kind    SymbolKind
}

// SymbolTable is the single namespace shared by registers, variables
// and labels.
type SymbolTable struct {
	symbol map[string]Symbol
	order  [3][]string // Definition order, per kind.
}

// NewSymbolTable creates a symbol table holding the register names, and
// DATA_OFFSET.
func NewSymbolTable() (st *SymbolTable) {
	st = &SymbolTable{
		symbol: make(map[string]Symbol, len(registerNames)+16),
	}

	for n, name := range registerNames {
		st.Define(name, Word(REGISTER_BASE+n), SYMBOL_REGISTER)
	}
	st.Define(DATA_OFFSET, DATA_BASE, SYMBOL_REGISTER)

	return
}

// Define binds a new name. Redefinition of any name is an error.
func (st *SymbolTable) Define(name string, addr Word, kind SymbolKind) (err error) {
	if _, ok := st.symbol[name]; ok {
		err = ErrNameDuplicate
		return
	}

	st.symbol[name] = Symbol{Name: name, Address: addr, Kind: kind}
	st.order[kind] = append(st.order[kind], name)

	return
}

// Lookup returns the symbol bound to a name.
func (st *SymbolTable) Lookup(name string) (sym Symbol, ok bool) {
	sym, ok = st.symbol[name]
	return
}

// Len returns the number of symbols of a kind.
func (st *SymbolTable) Len(kind SymbolKind) int {
	return len(st.order[kind])
}

// Kind iterates over the symbols of one kind in definition order.
func (st *SymbolTable) Kind(kind SymbolKind) iter.Seq2[string, Symbol] {
	return internal.IterSeq2Keyed(st.order[kind], st.symbol)
}

// All iterates over registers, then variables, then labels.
func (st *SymbolTable) All() iter.Seq2[string, Symbol] {
	return internal.IterSeq2Concat(
		st.Kind(SYMBOL_REGISTER),
		st.Kind(SYMBOL_VARIABLE),
		st.Kind(SYMBOL_LABEL),
	)
}
