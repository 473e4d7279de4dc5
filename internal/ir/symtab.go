package ir

import (
	"errors"
	"fmt"
	"sort"

	"gotoc/internal/intern"
)

var (
	// ErrDuplicateSymbol is returned when an insert collides with an
	// existing entry it cannot complete.
	ErrDuplicateSymbol = errors.New("duplicate symbol")
	// ErrUnresolvedTag is returned when a struct or union tag has no entry
	// in the symbol table.
	ErrUnresolvedTag = errors.New("unresolved tag")
)

// SymbolTable is the program under construction: every named type, variable
// and function, plus the machine model everything is sized against and the
// interner its names resolve through.
type SymbolTable struct {
	symbols map[intern.StringID]*Symbol
	mm      *MachineModel

	// Strings resolves every identifier stored in the table. The table does
	// not own it; all symbols inserted must use IDs from this interner.
	Strings *intern.Interner
}

// NewSymbolTable returns an empty table for the given target machine.
func NewSymbolTable(mm *MachineModel, strs *intern.Interner) *SymbolTable {
	return &SymbolTable{
		symbols: make(map[intern.StringID]*Symbol),
		mm:      mm,
		Strings: strs,
	}
}

// MachineModel is the verification target everything in this table is
// sized against.
func (st *SymbolTable) MachineModel() *MachineModel { return st.mm }

func (st *SymbolTable) Len() int { return len(st.symbols) }

func (st *SymbolTable) Contains(name intern.StringID) bool {
	_, ok := st.symbols[name]
	return ok
}

// Lookup returns the symbol under name, if any.
func (st *SymbolTable) Lookup(name intern.StringID) (*Symbol, bool) {
	s, ok := st.symbols[name]
	return s, ok
}

// MustLookup panics when name is absent, which is a codegen bug.
func (st *SymbolTable) MustLookup(name intern.StringID) *Symbol {
	s, ok := st.symbols[name]
	if !ok {
		panic(fmt.Sprintf("ir: symbol %q not in the symbol table", st.Strings.MustLookup(name)))
	}
	return s
}

// Insert adds a symbol. Reinserting a name fails with ErrDuplicateSymbol,
// with one exception: a complete struct or union type may replace the
// incomplete declaration of the same tag.
func (st *SymbolTable) Insert(sym *Symbol) error {
	old, ok := st.symbols[sym.Name]
	if ok {
		if !(old.IsType && sym.IsType && sym.Typ.Completes(old.Typ)) {
			return fmt.Errorf("%w: %s", ErrDuplicateSymbol, st.Strings.MustLookup(sym.Name))
		}
	}
	st.symbols[sym.Name] = sym
	return nil
}

// MustInsert panics on duplicates; use when the caller guarantees fresh
// names.
func (st *SymbolTable) MustInsert(sym *Symbol) *Symbol {
	if err := st.Insert(sym); err != nil {
		panic(err)
	}
	return sym
}

// EnsureBuiltin inserts a builtin function declaration once; later calls
// with the same name verify the type and return the existing symbol.
func (st *SymbolTable) EnsureBuiltin(name intern.StringID, paramTypes []*Type, returnType *Type) *Symbol {
	if old, ok := st.symbols[name]; ok {
		want := CodeWithUnnamedParameters(paramTypes, returnType)
		if !old.Typ.Equal(want) {
			panic(fmt.Sprintf("ir: builtin %q redeclared with a different type", st.Strings.MustLookup(name)))
		}
		return old
	}
	return st.MustInsert(BuiltinFunction(name, paramTypes, returnType))
}

// SortedNames returns every symbol name, ordered by the resolved string so
// iteration is deterministic across runs and interners.
func (st *SymbolTable) SortedNames() []intern.StringID {
	names := make([]intern.StringID, 0, len(st.symbols))
	for name := range st.symbols {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return st.Strings.MustLookup(names[i]) < st.Strings.MustLookup(names[j])
	})
	return names
}

// Iter visits every symbol in deterministic (name-sorted) order.
func (st *SymbolTable) Iter(f func(*Symbol)) {
	for _, name := range st.SortedNames() {
		f(st.symbols[name])
	}
}

// UpdateWithDefinition attaches a body to an already declared function.
func (st *SymbolTable) UpdateWithDefinition(name intern.StringID, body *Stmt) {
	st.MustLookup(name).UpdateWithDefinition(body)
}

// resolveAggregate follows a struct or union tag to its defining type
// symbol.
func (st *SymbolTable) resolveAggregate(typ *Type) (*Type, error) {
	switch typ.Kind {
	case TypeStruct, TypeUnion:
		return typ, nil
	case TypeStructTag, TypeUnionTag:
		sym, ok := st.symbols[typ.Tag]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedTag, st.Strings.MustLookup(typ.Tag))
		}
		if !sym.IsType || !sym.Typ.IsStructLike() {
			return nil, fmt.Errorf("%w: %s is not an aggregate type", ErrUnresolvedTag, st.Strings.MustLookup(typ.Tag))
		}
		return sym.Typ, nil
	default:
		return nil, fmt.Errorf("%w: type kind %d has no components", ErrUnresolvedTag, typ.Kind)
	}
}

// LookupComponents resolves typ to its component list, following tags.
// Incomplete aggregates resolve to an empty list only through their
// completed table entry; an incomplete entry is an error.
func (st *SymbolTable) LookupComponents(typ *Type) ([]DatatypeComponent, error) {
	resolved, err := st.resolveAggregate(typ)
	if err != nil {
		return nil, err
	}
	if resolved.Kind == TypeIncompleteStruct || resolved.Kind == TypeIncompleteUnion {
		return nil, fmt.Errorf("%w: %s is incomplete", ErrUnresolvedTag, st.Strings.MustLookup(resolved.Tag))
	}
	return resolved.Components, nil
}

// LookupFieldType resolves the type of field within the aggregate typ.
func (st *SymbolTable) LookupFieldType(typ *Type, field intern.StringID) (*Type, error) {
	comps, err := st.LookupComponents(typ)
	if err != nil {
		return nil, err
	}
	for _, c := range comps {
		if c.Name == field {
			return c.FieldTyp(), nil
		}
	}
	return nil, fmt.Errorf("%w: no field %q", ErrUnresolvedTag, st.Strings.MustLookup(field))
}
