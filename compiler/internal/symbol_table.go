package internal

import "sort"

// IntType is the type tag of every variable, the language has no other type.
const IntType = "int"

// SymbolTable maps a variable name to its type tag.
type SymbolTable map[string]string

func NewSymbolTable(names ...string) SymbolTable {
	table := SymbolTable{}
	for _, name := range names {
		table.declare(name)
	}
	return table
}

func (table SymbolTable) lookUp(name string) (string, bool) {
	tp, ok := table[name]
	return tp, ok
}

func (table SymbolTable) declare(name string) {
	table[name] = IntType
}

// Clone returns a copy, a nil table clones to an empty one.
func (table SymbolTable) Clone() SymbolTable {
	ret := make(SymbolTable, len(table))
	for name, tp := range table {
		ret[name] = tp
	}
	return ret
}

// Merge copies every binding of other into table.
func (table SymbolTable) Merge(other SymbolTable) {
	for name, tp := range other {
		table[name] = tp
	}
}

// Names returns the variable names in sorted order.
func (table SymbolTable) Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
