package transform

import (
	"sort"

	"gotoc/internal/ir"
)

// NondetTransformer replaces the placeholder expressions for arbitrary and
// invalid values with calls to synthesized generator functions, one per
// requested type. The source re-emission mode needs this because the
// placeholders have no direct rendering in C.
//
// Generators are named from the type's mangled identity, so every request
// for the same type resolves to the same function. Postprocess materializes
// each pending generator as
//
//	T non_det_T(void) { T ret; return ret; }
//
// where ret is deliberately left uninitialized; reading it is exactly the
// "arbitrary value" semantics.
type NondetTransformer struct {
	Base
	nondetTypes map[string]*ir.Type
	poisonTypes map[string]*ir.Type
}

// MaterializeNondet rewrites all nondet/poison placeholders of orig.
func MaterializeNondet(orig *ir.SymbolTable) *ir.SymbolTable {
	t := &NondetTransformer{
		Base:        NewBase(ir.NewSymbolTable(orig.MachineModel(), orig.Strings)),
		nondetTypes: make(map[string]*ir.Type),
		poisonTypes: make(map[string]*ir.Type),
	}
	t.Bind(t)
	return Run(t, orig)
}

func (t *NondetTransformer) generatorCall(prefix string, typ *ir.Type, pending map[string]*ir.Type) *ir.Expr {
	strs := t.SymbolTable().Strings
	transformed := t.TransformType(typ)
	identifier := prefix + transformed.ToIdentifier(strs)
	functionType := ir.CodeWithUnnamedParameters(nil, transformed)
	pending[identifier] = functionType
	return ir.SymbolExpr(strs.Intern(identifier), functionType).Call(nil)
}

func (t *NondetTransformer) TransformNondet(typ *ir.Type) *ir.Expr {
	return t.generatorCall("non_det_", typ, t.nondetTypes)
}

func (t *NondetTransformer) TransformPoison(typ *ir.Type) *ir.Expr {
	return t.generatorCall("poison_", typ, t.poisonTypes)
}

// TransformStructExpr skips the values bound to padding components: those
// are ignored by the re-emission printer, and rewriting them would inject
// calls to generators nothing declares.
func (t *NondetTransformer) TransformStructExpr(typ *ir.Type, values []*ir.Expr) *ir.Expr {
	transformed := t.TransformType(typ)
	if !transformed.IsStructTag() {
		panic("transform: struct literal lost its tag type")
	}
	fields, err := t.SymbolTable().LookupComponents(transformed)
	if err != nil {
		panic(err)
	}
	if len(fields) != len(values) {
		panic("transform: struct literal arity mismatch")
	}
	out := make([]*ir.Expr, len(values))
	for i, value := range values {
		if fields[i].Padding {
			out[i] = value
		} else {
			out[i] = t.TransformExpr(value)
		}
	}
	return ir.StructExprFromPaddedValues(transformed, out, t.SymbolTable())
}

// Postprocess inserts the pending generator functions and their return
// variables, in name order so output is deterministic.
func (t *NondetTransformer) Postprocess() {
	pending := make(map[string]*ir.Type, len(t.nondetTypes)+len(t.poisonTypes))
	for identifier, typ := range t.nondetTypes {
		pending[identifier] = typ
	}
	for identifier, typ := range t.poisonTypes {
		pending[identifier] = typ
	}
	identifiers := make([]string, 0, len(pending))
	for identifier := range pending {
		identifiers = append(identifiers, identifier)
	}
	sort.Strings(identifiers)

	strs := t.SymbolTable().Strings
	none := ir.NoLocation()
	for _, identifier := range identifiers {
		functionType := pending[identifier]
		retType := functionType.ReturnType()
		if retType.IsEmpty() {
			panic("transform: cannot generate a nondet value of type void")
		}
		retName := strs.Intern(identifier + "_ret")
		retExpr := ir.SymbolExpr(retName, retType)
		body := ir.Block([]*ir.Stmt{
			ir.Decl(retExpr, nil, none),
			ir.ReturnStmt(retExpr, none),
		}, none)

		t.SymbolTable().MustInsert(ir.Variable(retName, strs.Intern("ret"), retType, none))
		id := strs.Intern(identifier)
		t.SymbolTable().MustInsert(ir.Function(id, functionType, body, id, none))
	}
}
