package ir

import (
	"gotoc/internal/intern"
)

// SymbolValue is what a symbol is defined to be: a function body statement,
// an initializer expression, or nothing yet.
type SymbolValue uint8

const (
	SymbolValueNone SymbolValue = iota
	SymbolValueExpr
	SymbolValueStmt
)

// SymbolModes tag which frontend produced a symbol.
const (
	ModeC    = "C"
	ModeRust = "Rust"
)

// Symbol is one entry of the symbol table: a named type, variable or
// function together with its definition and attribute flags.
type Symbol struct {
	// Name is the unique mangled identifier; BaseName the local name it was
	// derived from; PrettyName the user-facing rendering. Either of the
	// latter may be NoString.
	Name       intern.StringID
	BaseName   intern.StringID
	PrettyName intern.StringID

	Location Location
	Typ      *Type
	Mode     string
	Module   intern.StringID

	Value     SymbolValue
	ValueExpr *Expr
	ValueStmt *Stmt

	IsExported       bool
	IsExtern         bool
	IsInput          bool
	IsMacro          bool
	IsOutput         bool
	IsProperty       bool
	IsStateVar       bool
	IsThreadLocal    bool
	IsAuxiliary      bool
	IsFileLocal      bool
	IsLvalue         bool
	IsParameter      bool
	IsStaticLifetime bool
	IsType           bool
	IsVolatile       bool
	IsWeak           bool
}

func newSymbol(name intern.StringID, typ *Type, loc Location) *Symbol {
	return &Symbol{
		Name:     name,
		Typ:      typ,
		Location: loc,
		Mode:     ModeRust,
		Value:    SymbolValueNone,
	}
}

// ToExpr references the symbol in an expression.
func (s *Symbol) ToExpr() *Expr {
	return SymbolExpr(s.Name, s.Typ).WithLocation(s.Location)
}

// AsParameter turns a variable symbol into a formal function parameter.
func (s *Symbol) AsParameter() Parameter {
	return s.Typ.AsParameter(s.Name, s.BaseName)
}

// Function declares name as a function of typ; body may be nil for
// declarations without a definition yet.
func Function(name intern.StringID, typ *Type, body *Stmt, prettyName intern.StringID, loc Location) *Symbol {
	if !typ.IsCode() && !typ.IsVariadicCode() {
		panic("ir: function symbol needs a code type")
	}
	s := newSymbol(name, typ, loc)
	s.BaseName = name
	s.PrettyName = prettyName
	s.IsLvalue = true
	if body != nil {
		s.Value = SymbolValueStmt
		s.ValueStmt = body
	}
	return s
}

// BuiltinFunction declares one of the checker's built-in functions, which
// never carries a body.
func BuiltinFunction(name intern.StringID, paramTypes []*Type, returnType *Type) *Symbol {
	s := Function(name, CodeWithUnnamedParameters(paramTypes, returnType), nil, name, BuiltinLocation(name, 0))
	return s
}

// Variable declares a local variable.
func Variable(name, baseName intern.StringID, typ *Type, loc Location) *Symbol {
	s := newSymbol(name, typ, loc)
	s.BaseName = baseName
	s.IsLvalue = true
	s.IsStateVar = true
	s.IsThreadLocal = true
	return s
}

// StaticVariable declares a program-lifetime variable.
func StaticVariable(name, baseName intern.StringID, typ *Type, loc Location) *Symbol {
	s := Variable(name, baseName, typ, loc)
	s.IsThreadLocal = false
	s.IsStaticLifetime = true
	return s
}

// TypeSymbol declares a named type. The symbol's name carries the
// aggregate tag prefix; prettyName is the unmangled rendering.
func TypeSymbol(name intern.StringID, typ *Type, prettyName intern.StringID, loc Location) *Symbol {
	s := newSymbol(name, typ, loc)
	s.BaseName = name
	s.PrettyName = prettyName
	s.IsType = true
	return s
}

// StructSymbol declares a complete struct type under its tagged name.
func StructSymbol(name intern.StringID, prettyName intern.StringID, components []DatatypeComponent, strs *intern.Interner) *Symbol {
	tag := AggrTagName(strs.MustLookup(name), strs)
	return TypeSymbol(tag, StructType(name, components), prettyName, NoLocation())
}

// UnionSymbol declares a complete union type under its tagged name.
func UnionSymbol(name intern.StringID, prettyName intern.StringID, components []DatatypeComponent, strs *intern.Interner) *Symbol {
	tag := AggrTagName(strs.MustLookup(name), strs)
	return TypeSymbol(tag, UnionType(name, components), prettyName, NoLocation())
}

// IncompleteStructSymbol forward-declares a struct; a later insert of the
// complete definition replaces it.
func IncompleteStructSymbol(name intern.StringID, strs *intern.Interner) *Symbol {
	tag := AggrTagName(strs.MustLookup(name), strs)
	return TypeSymbol(tag, IncompleteStruct(name), name, NoLocation())
}

// IncompleteUnionSymbol forward-declares a union.
func IncompleteUnionSymbol(name intern.StringID, strs *intern.Interner) *Symbol {
	tag := AggrTagName(strs.MustLookup(name), strs)
	return TypeSymbol(tag, IncompleteUnion(name), name, NoLocation())
}

// UpdateWithDefinition attaches a body to a previously declared function.
func (s *Symbol) UpdateWithDefinition(body *Stmt) {
	if !s.Typ.IsCode() && !s.Typ.IsVariadicCode() {
		panic("ir: only functions take statement definitions")
	}
	s.Value = SymbolValueStmt
	s.ValueStmt = body
}

// WithIsExtern marks the symbol as externally defined.
func (s *Symbol) WithIsExtern(b bool) *Symbol {
	s.IsExtern = b
	return s
}

func (s *Symbol) WithIsFileLocal(b bool) *Symbol {
	s.IsFileLocal = b
	return s
}

func (s *Symbol) WithIsHidden(b bool) *Symbol {
	s.IsAuxiliary = b
	return s
}

// WithIsParameter marks a variable as a formal parameter.
func (s *Symbol) WithIsParameter(b bool) *Symbol {
	s.IsParameter = b
	return s
}

func (s *Symbol) WithIsProperty(b bool) *Symbol {
	s.IsProperty = b
	return s
}

func (s *Symbol) WithIsStaticLifetime(b bool) *Symbol {
	s.IsStaticLifetime = b
	return s
}

func (s *Symbol) WithIsThreadLocal(b bool) *Symbol {
	s.IsThreadLocal = b
	return s
}

func (s *Symbol) WithIsVolatile(b bool) *Symbol {
	s.IsVolatile = b
	return s
}

func (s *Symbol) WithIsWeak(b bool) *Symbol {
	s.IsWeak = b
	return s
}

// WithPrettyName overrides the user-facing name.
func (s *Symbol) WithPrettyName(pretty intern.StringID) *Symbol {
	s.PrettyName = pretty
	return s
}

// WithValue attaches an initializer expression.
func (s *Symbol) WithValue(value *Expr) *Symbol {
	s.Value = SymbolValueExpr
	s.ValueExpr = value
	return s
}
