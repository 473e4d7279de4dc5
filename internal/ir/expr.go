package ir

import (
	"fmt"
	"math/big"

	"fortio.org/safecast"

	"gotoc/internal/intern"
)

// ExprKind discriminates the expression variants. The names map directly
// onto the ids the downstream checker uses.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	// ExprAddressOf is `&e`.
	ExprAddressOf
	// ExprArray is `typ x[] = {e0, e1, ...}`.
	ExprArray
	// ExprArrayOf is `typ x[width] = {elem}`.
	ExprArrayOf
	// ExprAssign is the side-effecting `left = right`.
	ExprAssign
	// ExprBinOp is `lhs op rhs`.
	ExprBinOp
	// ExprBoolConstant is a single bit boolean.
	ExprBoolConstant
	// ExprByteExtract reinterprets the bytes of an operand as another type.
	ExprByteExtract
	// ExprCBoolConstant is an 8-bit C boolean.
	ExprCBoolConstant
	// ExprDereference is `*e`.
	ExprDereference
	ExprDoubleConstant
	// ExprEmptyUnion is the `{}` initializer of an empty union.
	ExprEmptyUnion
	ExprFloatConstant
	// ExprFunctionCall is `function(arguments)`.
	ExprFunctionCall
	// ExprIf is `c ? t : e`.
	ExprIf
	// ExprIndex is `array[index]`.
	ExprIndex
	ExprIntConstant
	// ExprMember is `lhs.field`.
	ExprMember
	// ExprNondet is a placeholder for an arbitrary value of the type,
	// resolved later by a rewrite pass.
	ExprNondet
	// ExprPoison is a placeholder for an invalid value of the type,
	// resolved later by a rewrite pass.
	ExprPoison
	// ExprPointerConstant is e.g. NULL.
	ExprPointerConstant
	// ExprSelfOp is `e++` and friends.
	ExprSelfOp
	// ExprStatementExpression is the GCC `({ s1; s2; ... })` form.
	ExprStatementExpression
	// ExprStringConstant is a raw string constant; consumers normally want a
	// pointer to its first element.
	ExprStringConstant
	// ExprStruct is a struct initializer listing every component, padding
	// included.
	ExprStruct
	// ExprSymbol references a symbol table entry by identifier.
	ExprSymbol
	// ExprTypecast is `(typ) e`.
	ExprTypecast
	// ExprUnion is `union foo x = {.field = value}`.
	ExprUnion
	// ExprUnOp is `op e`.
	ExprUnOp
	// ExprVector is a SIMD vector initializer.
	ExprVector
)

// BinaryOperator names match the checker's irep ids.
type BinaryOperator uint8

const (
	BinAnd BinaryOperator = iota
	BinAshr
	BinBitand
	BinBitor
	BinBitnand
	BinBitxor
	BinDiv
	BinEqual
	BinGe
	BinGt
	BinIeeeFloatEqual
	BinIeeeFloatNotequal
	BinImplies
	BinLe
	BinLshr
	BinLt
	BinMinus
	BinMod
	BinMult
	BinNotequal
	BinOr
	BinOverflowMinus
	BinOverflowMult
	BinOverflowPlus
	BinOverflowResultMinus
	BinOverflowResultMult
	BinOverflowResultPlus
	BinPlus
	BinROk
	BinRol
	BinRor
	BinShl
	BinVectorEqual
	BinVectorNotequal
	BinVectorGe
	BinVectorGt
	BinVectorLe
	BinVectorLt
	BinXor
)

// SelfOperator covers the unary operators with side effects.
type SelfOperator uint8

const (
	SelfPostdecrement SelfOperator = iota
	SelfPostincrement
	SelfPredecrement
	SelfPreincrement
)

type UnaryOperator uint8

const (
	// UnBitnot is `~e`.
	UnBitnot UnaryOperator = iota
	// UnBitReverse is `__builtin_bitreverse<n>(e)`.
	UnBitReverse
	// UnBswap is `__builtin_bswap<n>(e)`.
	UnBswap
	// UnIsDynamicObject is `__CPROVER_DYNAMIC_OBJECT(e)`.
	UnIsDynamicObject
	// UnIsFinite is `isfinite(e)`.
	UnIsFinite
	// UnNot is `!e`.
	UnNot
	// UnObjectSize is `__CPROVER_OBJECT_SIZE(e)`.
	UnObjectSize
	// UnPointerObject is `__CPROVER_POINTER_OBJECT(e)`.
	UnPointerObject
	// UnPointerOffset is `__CPROVER_POINTER_OFFSET(e)`.
	UnPointerOffset
	// UnPopcount is `__builtin_popcount(e)`.
	UnPopcount
	// UnCountTrailingZeros is `__builtin_cttz(e)`.
	UnCountTrailingZeros
	// UnCountLeadingZeros is `__builtin_ctlz(e)`.
	UnCountLeadingZeros
	// UnUnaryMinus is `-e`.
	UnUnaryMinus
)

// Expr is an expression: a computation returning a value. Every expression
// has a type, a kind-specific payload, and a location (which may be none).
// SizeOfAnnot optionally states that the expression computes size_of(T); the
// checker uses it as an allocation-typing hint, never for correctness.
//
// Expressions are built in a chained style: `*(&x + i)` is
// `x.AddressOf().Plus(i).Dereference()`. Constructors leave the location
// empty; attach one with WithLocation. Constructors check well-formedness
// and panic on violations, which are codegen bugs.
type Expr struct {
	Kind        ExprKind
	Typ         *Type
	Loc         Location
	SizeOfAnnot *Type

	// Lhs/Rhs carry Assign{left,right}, BinOp{lhs,rhs}, Index{array,index}
	// and Member/Union{lhs}.
	Lhs *Expr
	Rhs *Expr
	// Sub is the single operand of AddressOf, ArrayOf, ByteExtract,
	// Dereference, SelfOp, Typecast, UnOp and Union{value}.
	Sub *Expr
	// Cond/Then/Else carry If.
	Cond *Expr
	Then *Expr
	Else *Expr
	// Fn/Args carry FunctionCall.
	Fn   *Expr
	Args []*Expr
	// Elems carries Array, Struct and Vector values.
	Elems []*Expr
	// Stmts carries StatementExpression.
	Stmts []*Stmt

	// Name is the Member field, Symbol identifier, Union field, or the
	// StringConstant contents.
	Name intern.StringID

	IntVal    *big.Int
	FloatVal  float32
	DoubleVal float64
	BoolVal   bool
	// PtrVal is the raw value of a pointer constant.
	PtrVal uint64
	// Offset is the byte offset of a ByteExtract.
	Offset uint64

	Op     BinaryOperator
	UnOp   UnaryOperator
	SelfOp SelfOperator
	// AllowZero makes ctlz/cttz defined on zero inputs.
	AllowZero bool
}

func newExpr(kind ExprKind, typ *Type) *Expr {
	return &Expr{Kind: kind, Typ: typ, Loc: NoLocation()}
}

///////////////////////////////////////////////////////////////////////////
// Getters and predicates
///////////////////////////////////////////////////////////////////////////

// IntConstantValue returns the value of an integer constant.
func (e *Expr) IntConstantValue() (*big.Int, bool) {
	if e.Kind == ExprIntConstant {
		return e.IntVal, true
	}
	return nil, false
}

// StructExprValues returns the component values of a struct initializer.
func (e *Expr) StructExprValues() ([]*Expr, bool) {
	if e.Kind == ExprStruct {
		return e.Elems, true
	}
	return nil, false
}

func (e *Expr) IsIntConstant() bool { return e.Kind == ExprIntConstant }
func (e *Expr) IsSymbol() bool      { return e.Kind == ExprSymbol }

// IsSideEffect reports whether evaluating the expression causes side
// effects, directly or in any operand.
func (e *Expr) IsSideEffect() bool {
	switch e.Kind {
	case ExprAssign, ExprFunctionCall, ExprNondet, ExprPoison, ExprSelfOp, ExprStatementExpression:
		return true
	case ExprAddressOf, ExprArrayOf, ExprByteExtract, ExprDereference, ExprTypecast, ExprUnOp, ExprUnion:
		return e.Sub.IsSideEffect()
	case ExprArray, ExprStruct, ExprVector:
		for _, el := range e.Elems {
			if el.IsSideEffect() {
				return true
			}
		}
		return false
	case ExprBinOp, ExprIndex:
		return e.Lhs.IsSideEffect() || e.Rhs.IsSideEffect()
	case ExprIf:
		return e.Cond.IsSideEffect() || e.Then.IsSideEffect() || e.Else.IsSideEffect()
	case ExprMember:
		return e.Lhs.IsSideEffect()
	default:
		return false
	}
}

// CanCastFrom captures the legal typecasts, following the C standard plus
// the checker's single-bit bool.
func CanCastFrom(source, target *Type) bool {
	switch {
	case source.Equal(target):
		return true
	case target.IsBool():
		return source.IsCBool() || source.IsInteger() || source.IsPointer()
	case target.IsCBool():
		return source.IsInteger() || source.IsPointer() || source.IsBool()
	case target.IsInteger():
		return source.IsCBool() || source.IsInteger() || source.IsFloatingPoint() || source.IsPointer()
	case target.IsFloatingPoint():
		return source.IsNumeric()
	case target.IsPointer():
		return source.IsInteger() || source.IsPointer()
	case target.IsEmpty():
		return true
	default:
		return false
	}
}

func (e *Expr) CanCastTo(target *Type) bool {
	return CanCastFrom(e.Typ, target)
}

func (e *Expr) CanTakeAddressOf() bool {
	switch e.Kind {
	case ExprDereference, ExprIndex, ExprMember, ExprSymbol:
		return true
	}
	return false
}

// WithLocation attaches a location and returns the receiver for chaining.
func (e *Expr) WithLocation(loc Location) *Expr {
	e.Loc = loc
	return e
}

// WithSizeOfAnnotation records that this expression computes size_of(t).
func (e *Expr) WithSizeOfAnnotation(t *Type) *Expr {
	e.SizeOfAnnot = t
	return e
}

///////////////////////////////////////////////////////////////////////////
// Core constructors
///////////////////////////////////////////////////////////////////////////

// AddressOf is `&e`.
func (e *Expr) AddressOf() *Expr {
	if !e.CanTakeAddressOf() {
		panic(fmt.Sprintf("ir: can't take address of expr kind %d", e.Kind))
	}
	out := newExpr(ExprAddressOf, e.Typ.ToPointer())
	out.Sub = e
	return out
}

// ArrayConstant is `typ x[width] = {e}`.
func (e *Expr) ArrayConstant(width uint64) *Expr {
	out := newExpr(ExprArrayOf, e.Typ.ArrayOf(width))
	out.Sub = e
	return out
}

// ArrayExpr is `typ x[] = {e0, e1, ...}`.
func ArrayExpr(typ *Type, elems []*Expr) *Expr {
	if typ.Kind != TypeArray {
		panic("ir: array expression needs an array type")
	}
	if typ.Size != uint64(len(elems)) {
		panic(fmt.Sprintf("ir: array size %d but %d elements", typ.Size, len(elems)))
	}
	for _, el := range elems {
		if !el.Typ.Equal(typ.Elem) {
			panic("ir: array element type mismatch")
		}
	}
	out := newExpr(ExprArray, typ)
	out.Elems = elems
	return out
}

// VectorExpr is a SIMD vector initializer.
func VectorExpr(typ *Type, elems []*Expr) *Expr {
	if typ.Kind != TypeVector {
		panic("ir: vector expression needs a vector type")
	}
	if typ.Size != uint64(len(elems)) {
		panic(fmt.Sprintf("ir: vector size %d but %d elements", typ.Size, len(elems)))
	}
	for _, el := range elems {
		if !el.Typ.Equal(typ.Elem) {
			panic("ir: vector element type mismatch")
		}
	}
	out := newExpr(ExprVector, typ)
	out.Elems = elems
	return out
}

// BoolConstant is a single bit boolean constant.
func BoolConstant(c bool) *Expr {
	out := newExpr(ExprBoolConstant, BoolType())
	out.BoolVal = c
	return out
}

func BoolFalse() *Expr { return BoolConstant(false) }
func BoolTrue() *Expr  { return BoolConstant(true) }

// CBoolConstant is an 8-bit C boolean constant.
func CBoolConstant(c bool) *Expr {
	out := newExpr(ExprCBoolConstant, CBool())
	out.BoolVal = c
	return out
}

func CTrue() *Expr  { return CBoolConstant(true) }
func CFalse() *Expr { return CBoolConstant(false) }

// CastTo is `(typ) e`. Casting to the same type is the identity; casting to
// the single-bit bool becomes a != 0 comparison.
func (e *Expr) CastTo(typ *Type) *Expr {
	if !e.CanCastTo(typ) {
		panic(fmt.Sprintf("ir: can't cast kind %d from %v to %v", e.Kind, e.Typ.Kind, typ.Kind))
	}
	if e.Typ.Equal(typ) {
		return e
	}
	if typ.IsBool() {
		return e.Neq(Zero(e.Typ))
	}
	out := newExpr(ExprTypecast, typ)
	out.Sub = e
	return out
}

// CastToTargetEquivalentType casts only between types with identical
// representation on the machine (e.g. i32 to c_int).
func (e *Expr) CastToTargetEquivalentType(newTyp *Type, mm *MachineModel) *Expr {
	if e.Typ.Equal(newTyp) {
		return e
	}
	if !e.Typ.IsEqualOnMachine(newTyp, mm) {
		panic("ir: types are not equivalent on the target machine")
	}
	return e.CastTo(newTyp)
}

// CastArgumentsToTargetEquivalentFunctionParameterTypes casts each named
// argument to its formal parameter type; extra variadic arguments pass
// through untouched.
func CastArgumentsToTargetEquivalentFunctionParameterTypes(function *Expr, arguments []*Expr, mm *MachineModel) []*Expr {
	parameters := function.Typ.ParametersOf()
	if len(arguments) < len(parameters) {
		panic("ir: fewer arguments than formal parameters")
	}
	out := make([]*Expr, 0, len(arguments))
	for i, p := range parameters {
		out = append(out, arguments[i].CastToTargetEquivalentType(p.Typ, mm))
	}
	return append(out, arguments[len(parameters):]...)
}

// Dereference is `*e`.
func (e *Expr) Dereference() *Expr {
	if !e.Typ.IsPointer() {
		panic("ir: dereference of a non-pointer")
	}
	out := newExpr(ExprDereference, e.Typ.BaseType())
	out.Sub = e
	return out
}

func DoubleConstant(c float64) *Expr {
	out := newExpr(ExprDoubleConstant, Double())
	out.DoubleVal = c
	return out
}

// DoubleConstantFromBitpattern reinterprets bits as a double value.
func DoubleConstantFromBitpattern(bp uint64) *Expr {
	return DoubleConstant(fromBits64(bp))
}

func FloatConstant(c float32) *Expr {
	out := newExpr(ExprFloatConstant, Float())
	out.FloatVal = c
	return out
}

// FloatConstantFromBitpattern reinterprets bits as a float value.
func FloatConstantFromBitpattern(bp uint32) *Expr {
	return FloatConstant(fromBits32(bp))
}

// EmptyUnionExpr is `{}` for a union with no components.
func EmptyUnionExpr(typ *Type, st *SymbolTable) *Expr {
	if !typ.IsUnion() && !typ.IsUnionTag() {
		panic("ir: empty union initializer needs a union type")
	}
	comps, err := st.LookupComponents(typ)
	if err != nil {
		panic(err)
	}
	if len(comps) != 0 {
		panic("ir: empty union initializer for a union with components")
	}
	return newExpr(ExprEmptyUnion, typ.AggrTag(st.Strings))
}

// InfiniteArrayConstant initializes an infinite sparse array from one
// element, useful for maps.
func (e *Expr) InfiniteArrayConstant() *Expr {
	out := newExpr(ExprArrayOf, e.Typ.InfiniteArrayOf())
	out.Sub = e
	return out
}

// IndexArray is `e[index]` over an array-like value.
func (e *Expr) IndexArray(index *Expr) *Expr {
	if !index.Typ.IsInteger() {
		panic("ir: array index must be an integer")
	}
	if !e.Typ.IsArrayLike() {
		panic("ir: indexing a non-array")
	}
	out := newExpr(ExprIndex, e.Typ.BaseType())
	out.Lhs = e
	out.Rhs = index
	return out
}

// IntConstant is an integer literal of the given integer or bitfield type.
func IntConstant(i *big.Int, typ *Type) *Expr {
	if !typ.IsInteger() && typ.Kind != TypeCBitField {
		panic(fmt.Sprintf("ir: int constant of non-integer type %v", typ.Kind))
	}
	out := newExpr(ExprIntConstant, typ)
	out.IntVal = new(big.Int).Set(i)
	return out
}

// IntConstantInt is IntConstant for plain int64 values.
func IntConstantInt(i int64, typ *Type) *Expr {
	return IntConstant(big.NewInt(i), typ)
}

// IntConstantUint is IntConstant for plain uint64 values.
func IntConstantUint(i uint64, typ *Type) *Expr {
	return IntConstant(new(big.Int).SetUint64(i), typ)
}

// TypecheckCall checks arguments against the function's formal parameters.
// Variadic extras may have any type.
func TypecheckCall(function *Expr, arguments []*Expr) bool {
	named := func(parameters []Parameter, arguments []*Expr) bool {
		for i, p := range parameters {
			if !arguments[i].Typ.Equal(p.Typ) {
				return false
			}
		}
		return true
	}
	switch {
	case function.Typ.IsCode():
		parameters := function.Typ.ParametersOf()
		return len(arguments) == len(parameters) && named(parameters, arguments)
	case function.Typ.IsVariadicCode():
		parameters := function.Typ.ParametersOf()
		return len(arguments) >= len(parameters) && named(parameters, arguments)
	default:
		return false
	}
}

// Call is the expression `e(arguments)`. Use Stmt's function call form when
// the value is ignored or assigned.
func (e *Expr) Call(arguments []*Expr) *Expr {
	if !TypecheckCall(e, arguments) {
		panic("ir: function call does not type check")
	}
	out := newExpr(ExprFunctionCall, e.Typ.ReturnType())
	out.Fn = e
	out.Args = arguments
	return out
}

// Member is `e.field`, with the field type resolved through the table.
func (e *Expr) Member(field intern.StringID, st *SymbolTable) *Expr {
	if !e.Typ.IsStructTag() && !e.Typ.IsUnionTag() {
		panic("ir: member access needs a struct or union tag type")
	}
	ft, err := st.LookupFieldType(e.Typ, field)
	if err != nil {
		panic(err)
	}
	out := newExpr(ExprMember, ft)
	out.Lhs = e
	out.Name = field
	return out
}

// Nondet is a placeholder for an arbitrary value of typ.
func Nondet(typ *Type) *Expr {
	return newExpr(ExprNondet, typ)
}

// Poison is a placeholder for an invalid value of typ.
func Poison(typ *Type) *Expr {
	return newExpr(ExprPoison, typ)
}

// PointerConstant is a literal pointer value, e.g. NULL.
func PointerConstant(c uint64, typ *Type) *Expr {
	if !typ.IsPointer() {
		panic("ir: pointer constant of non-pointer type")
	}
	out := newExpr(ExprPointerConstant, typ)
	out.PtrVal = c
	return out
}

// StatementExpression is `({ s1; s2; ... })`; the last statement must be an
// expression statement of the overall type.
func StatementExpression(ops []*Stmt, typ *Type) *Expr {
	if len(ops) == 0 {
		panic("ir: statement expression needs at least one statement")
	}
	last, ok := ops[len(ops)-1].Expression()
	if !ok || !last.Typ.Equal(typ) {
		panic("ir: statement expression must end in an expression of its type")
	}
	out := newExpr(ExprStatementExpression, typ)
	out.Stmts = ops
	return out
}

func structExprWithExplicitPadding(typ *Type, fields []DatatypeComponent, values []*Expr) *Expr {
	if len(fields) != len(values) {
		panic("ir: struct initializer arity mismatch")
	}
	for i := range fields {
		if !fields[i].ComponentTyp().Equal(values[i].Typ) {
			panic("ir: struct initializer value type does not match field type")
		}
	}
	out := newExpr(ExprStruct, typ)
	out.Elems = values
	return out
}

// StructExpr is a by-name struct initializer. Only the non-padding fields
// are given; padding slots are filled with nondet values of the padding
// type so no observable value is invented for them.
func StructExpr(typ *Type, components map[intern.StringID]*Expr, st *SymbolTable) *Expr {
	if !typ.IsStructTag() {
		panic("ir: struct initializer needs a struct tag type")
	}
	fields, err := st.LookupComponents(typ)
	if err != nil {
		panic(err)
	}
	nonPadding := 0
	for _, f := range fields {
		if !f.Padding {
			nonPadding++
			v, ok := components[f.Name]
			if !ok {
				panic(fmt.Sprintf("ir: struct initializer missing field %q", st.Strings.MustLookup(f.Name)))
			}
			if !v.Typ.Equal(f.FieldTyp()) {
				panic(fmt.Sprintf("ir: unexpected type for field %q", st.Strings.MustLookup(f.Name)))
			}
		}
	}
	if nonPadding != len(components) {
		panic("ir: struct initializer field count mismatch")
	}
	values := make([]*Expr, len(fields))
	for i, f := range fields {
		if f.Padding {
			values[i] = Nondet(f.ComponentTyp())
		} else {
			values[i] = components[f.Name]
		}
	}
	return structExprWithExplicitPadding(typ, fields, values)
}

// StructExprWithNondetFields initializes the named fields and leaves every
// other non-padding field nondet.
func StructExprWithNondetFields(typ *Type, components map[intern.StringID]*Expr, st *SymbolTable) *Expr {
	if !typ.IsStructTag() {
		panic("ir: struct initializer needs a struct tag type")
	}
	fields, err := st.LookupComponents(typ)
	if err != nil {
		panic(err)
	}
	var values []*Expr
	for _, f := range fields {
		if f.Padding {
			continue
		}
		if v, ok := components[f.Name]; ok {
			values = append(values, v)
		} else {
			values = append(values, Nondet(f.FieldTyp()))
		}
	}
	return StructExprFromValues(typ, values, st)
}

// StructExprFromValues is a positional struct initializer over the
// non-padding fields; padding slots are filled with nondet.
func StructExprFromValues(typ *Type, nonPaddingValues []*Expr, st *SymbolTable) *Expr {
	if !typ.IsStructTag() {
		panic("ir: struct initializer needs a struct tag type")
	}
	fields, err := st.LookupComponents(typ)
	if err != nil {
		panic(err)
	}
	values := make([]*Expr, len(fields))
	next := 0
	for i, f := range fields {
		if f.Padding {
			values[i] = Nondet(f.ComponentTyp())
			continue
		}
		if next >= len(nonPaddingValues) {
			panic("ir: struct initializer has too few values")
		}
		if !nonPaddingValues[next].Typ.Equal(f.FieldTyp()) {
			panic("ir: struct initializer value type does not match field type")
		}
		values[i] = nonPaddingValues[next]
		next++
	}
	if next != len(nonPaddingValues) {
		panic("ir: struct initializer has too many values")
	}
	return structExprWithExplicitPadding(typ, fields, values)
}

// StructExprFromPaddedValues is a positional initializer where padding
// values are already present, e.g. when rebuilding an existing struct
// expression inside a rewrite pass.
func StructExprFromPaddedValues(typ *Type, values []*Expr, st *SymbolTable) *Expr {
	if !typ.IsStructTag() && !typ.IsStruct() {
		panic("ir: struct initializer needs a struct type")
	}
	tagged := typ.AggrTag(st.Strings)
	fields, err := st.LookupComponents(tagged)
	if err != nil {
		panic(err)
	}
	return structExprWithExplicitPadding(tagged, fields, values)
}

// InitUnit initializes a zero sized type with a nondet value.
func InitUnit(typ *Type, st *SymbolTable) *Expr {
	if !typ.IsStructTag() {
		panic("ir: zero sized types are represented as structs")
	}
	if typ.SizeofInBits(st) != 0 {
		panic("ir: InitUnit requires a zero sized type")
	}
	return Nondet(typ)
}

// SymbolExpr references a symbol by identifier.
func SymbolExpr(identifier intern.StringID, typ *Type) *Expr {
	out := newExpr(ExprSymbol, typ)
	out.Name = identifier
	return out
}

// Ternary is `e ? t : f`.
func (e *Expr) Ternary(t, f *Expr) *Expr {
	if !t.Typ.Equal(f.Typ) {
		panic("ir: ternary branches must have equal types")
	}
	out := newExpr(ExprIf, t.Typ)
	out.Cond = e.CastTo(BoolType())
	out.Then = t
	out.Else = f
	return out
}

// TransmuteTo reinterprets the bits of e as type t. Unlike CastTo no value
// conversion happens; sizes must agree.
func (e *Expr) TransmuteTo(t *Type, st *SymbolTable) *Expr {
	if e.Typ.SizeofInBits(st) != t.SizeofInBits(st) {
		panic("ir: transmute between differently sized types")
	}
	out := newExpr(ExprByteExtract, t)
	out.Sub = e
	out.Offset = 0
	return out
}

// UnionExpr is `union foo x = {.field = value}`.
func UnionExpr(typ *Type, field intern.StringID, value *Expr, st *SymbolTable) *Expr {
	if !typ.IsUnionTag() && !typ.IsUnion() {
		panic("ir: union initializer needs a union type")
	}
	ft, err := st.LookupFieldType(typ, field)
	if err != nil {
		panic(err)
	}
	if !ft.Equal(value.Typ) {
		panic("ir: union initializer value type does not match field type")
	}
	out := newExpr(ExprUnion, typ.AggrTag(st.Strings))
	out.Sub = value
	out.Name = field
	return out
}

///////////////////////////////////////////////////////////////////////////
// Binary operations
///////////////////////////////////////////////////////////////////////////

// ArithOverflowResultField and ArithOverflowOverflowedField name the
// components of the struct the overflow-with-result operators return.
const (
	ArithOverflowResultField     = "result"
	ArithOverflowOverflowedField = "overflowed"
)

// ArithmeticOverflowResult pairs the (possibly wrapped) result of an
// arithmetic operation with a boolean overflow flag.
type ArithmeticOverflowResult struct {
	Result     *Expr
	Overflowed *Expr
}

// ArithmeticOverflowResultType is the struct type the overflow-with-result
// operators return: the first component is the result, the second whether
// the operation overflowed.
func ArithmeticOverflowResultType(operandType *Type, strs *intern.Interner) *Type {
	if !operandType.IsInteger() {
		panic("ir: overflow result needs an integer operand type")
	}
	name := strs.Intern("overflow_result_" + operandType.ToIdentifier(strs))
	return StructType(name, []DatatypeComponent{
		Field(strs.Intern(ArithOverflowResultField), operandType),
		Field(strs.Intern(ArithOverflowOverflowedField), BoolType()),
	})
}

func typecheckBinopArgs(op BinaryOperator, lhs, rhs *Expr) bool {
	sameType := lhs.Typ.Equal(rhs.Typ)
	switch op {
	case BinMinus:
		return (sameType && (lhs.Typ.IsPointer() || lhs.Typ.IsNumeric() || lhs.Typ.IsVector())) ||
			(lhs.Typ.IsPointer() && rhs.Typ.IsInteger())
	case BinPlus:
		return (sameType && (lhs.Typ.IsNumeric() || lhs.Typ.IsVector())) ||
			(lhs.Typ.IsPointer() && rhs.Typ.IsInteger())
	case BinDiv, BinMod, BinMult:
		return sameType && (lhs.Typ.IsNumeric() || lhs.Typ.IsVector())
	case BinAshr, BinLshr, BinShl:
		return (lhs.Typ.IsInteger() && rhs.Typ.IsInteger()) || (sameType && lhs.Typ.IsVector())
	case BinRol, BinRor:
		return lhs.Typ.IsInteger() && rhs.Typ.IsInteger()
	case BinAnd, BinImplies, BinOr, BinXor:
		return lhs.Typ.IsBool() && rhs.Typ.IsBool()
	case BinBitand, BinBitor, BinBitxor:
		return sameType && (lhs.Typ.IsInteger() || lhs.Typ.IsVector())
	case BinBitnand:
		return sameType && lhs.Typ.IsInteger()
	case BinGe, BinGt, BinLe, BinLt:
		return sameType && (lhs.Typ.IsNumeric() || lhs.Typ.IsPointer())
	case BinEqual, BinNotequal:
		return sameType && (lhs.Typ.IsCBool() || lhs.Typ.IsInteger() || lhs.Typ.IsPointer())
	case BinIeeeFloatEqual, BinIeeeFloatNotequal:
		return sameType && lhs.Typ.IsFloatingPoint()
	case BinOverflowMinus, BinOverflowResultMinus:
		return (sameType && (lhs.Typ.IsPointer() || lhs.Typ.IsNumeric())) ||
			(lhs.Typ.IsPointer() && rhs.Typ.IsInteger())
	case BinOverflowMult, BinOverflowPlus, BinOverflowResultMult, BinOverflowResultPlus:
		return (sameType && lhs.Typ.IsInteger()) || (lhs.Typ.IsPointer() && rhs.Typ.IsInteger())
	case BinROk:
		return lhs.Typ.IsPointer() && rhs.Typ.IsCSizeT()
	default:
		panic("ir: vector comparisons are typechecked by VectorCmp")
	}
}

func binopReturnType(op BinaryOperator, lhs, rhs *Expr, strs *intern.Interner) *Type {
	switch op {
	case BinMinus:
		if lhs.Typ.IsPointer() && rhs.Typ.IsPointer() {
			return SSizeT()
		}
		return lhs.Typ
	case BinDiv, BinMod, BinMult, BinPlus:
		return lhs.Typ
	case BinAshr, BinLshr, BinRol, BinRor, BinShl:
		return lhs.Typ
	case BinAnd, BinImplies, BinOr, BinXor:
		return BoolType()
	case BinBitand, BinBitnand, BinBitor, BinBitxor:
		return lhs.Typ
	case BinGe, BinGt, BinLe, BinLt, BinEqual, BinNotequal:
		return BoolType()
	case BinIeeeFloatEqual, BinIeeeFloatNotequal:
		return BoolType()
	case BinOverflowMinus, BinOverflowMult, BinOverflowPlus, BinROk:
		return BoolType()
	case BinOverflowResultMinus, BinOverflowResultMult, BinOverflowResultPlus:
		structType := ArithmeticOverflowResultType(lhs.Typ, strs)
		tag, _ := structType.TagOf()
		return StructTag(strs.MustLookup(tag), strs)
	default:
		panic("ir: return type of vector comparisons depends on the place type")
	}
}

// Binop is `e op rhs`. The interner is needed only to name the synthesized
// overflow-result struct; any operator can use it.
func (e *Expr) Binop(op BinaryOperator, rhs *Expr, strs *intern.Interner) *Expr {
	if !typecheckBinopArgs(op, e, rhs) {
		panic(fmt.Sprintf("ir: binary operation %d does not typecheck", op))
	}
	out := newExpr(ExprBinOp, binopReturnType(op, e, rhs, strs))
	out.Op = op
	out.Lhs = e
	out.Rhs = rhs
	return out
}

func typecheckVectorCmp(lhs, rhs *Expr, retTyp *Type) bool {
	return lhs.Typ.IsVector() && lhs.Typ.Equal(rhs.Typ) &&
		retTyp.IsVector() && lhs.Typ.Size == retTyp.Size &&
		retTyp.BaseType().IsInteger()
}

// VectorCmp compares SIMD vectors; the result type comes from the place the
// comparison is assigned to and must be an integer vector of equal length.
func (e *Expr) VectorCmp(op BinaryOperator, rhs *Expr, retTyp *Type) *Expr {
	if !typecheckVectorCmp(e, rhs, retTyp) {
		panic("ir: vector comparison does not typecheck")
	}
	out := newExpr(ExprBinOp, retTyp)
	out.Op = op
	out.Lhs = e
	out.Rhs = rhs
	return out
}

func (e *Expr) simpleBinop(op BinaryOperator, rhs *Expr) *Expr {
	// These operators never reach the overflow-result naming path.
	return e.Binop(op, rhs, nil)
}

// Div is `e / o`.
func (e *Expr) Div(o *Expr) *Expr { return e.simpleBinop(BinDiv, o) }

// Rem is `e % o`.
func (e *Expr) Rem(o *Expr) *Expr { return e.simpleBinop(BinMod, o) }

// And is `e && o`, casting both sides to bool.
func (e *Expr) And(o *Expr) *Expr {
	return e.CastTo(BoolType()).simpleBinop(BinAnd, o.CastTo(BoolType()))
}

// Implies is `e ==> o`, casting both sides to bool.
func (e *Expr) Implies(o *Expr) *Expr {
	return e.CastTo(BoolType()).simpleBinop(BinImplies, o.CastTo(BoolType()))
}

// Or is `e || o`, casting both sides to bool.
func (e *Expr) Or(o *Expr) *Expr {
	return e.CastTo(BoolType()).simpleBinop(BinOr, o.CastTo(BoolType()))
}

// Xor is logical xor over bools.
func (e *Expr) Xor(o *Expr) *Expr { return e.simpleBinop(BinXor, o) }

// Bitand is `e & o`.
func (e *Expr) Bitand(o *Expr) *Expr { return e.simpleBinop(BinBitand, o) }

// Bitnand is `~(e & o)`.
func (e *Expr) Bitnand(o *Expr) *Expr { return e.simpleBinop(BinBitnand, o) }

// Bitor is `e | o`.
func (e *Expr) Bitor(o *Expr) *Expr { return e.simpleBinop(BinBitor, o) }

// Bitxor is `e ^ o`.
func (e *Expr) Bitxor(o *Expr) *Expr { return e.simpleBinop(BinBitxor, o) }

// Shl is `e << o`.
func (e *Expr) Shl(o *Expr) *Expr { return e.simpleBinop(BinShl, o) }

// Ashr is the signed arithmetic `e >> o`.
func (e *Expr) Ashr(o *Expr) *Expr { return e.simpleBinop(BinAshr, o) }

// Lshr is the unsigned logical `e >> o`.
func (e *Expr) Lshr(o *Expr) *Expr { return e.simpleBinop(BinLshr, o) }

// Plus is `e + o`.
func (e *Expr) Plus(o *Expr) *Expr { return e.simpleBinop(BinPlus, o) }

// Minus is `e - o`.
func (e *Expr) Minus(o *Expr) *Expr { return e.simpleBinop(BinMinus, o) }

// Mul is `e * o`.
func (e *Expr) Mul(o *Expr) *Expr { return e.simpleBinop(BinMult, o) }

// Le is `e <= o`.
func (e *Expr) Le(o *Expr) *Expr { return e.simpleBinop(BinLe, o) }

// Lt is `e < o`.
func (e *Expr) Lt(o *Expr) *Expr { return e.simpleBinop(BinLt, o) }

// Ge is `e >= o`.
func (e *Expr) Ge(o *Expr) *Expr { return e.simpleBinop(BinGe, o) }

// Gt is `e > o`.
func (e *Expr) Gt(o *Expr) *Expr { return e.simpleBinop(BinGt, o) }

// Eq is `e == o` for integers, bools and pointers.
func (e *Expr) Eq(o *Expr) *Expr { return e.simpleBinop(BinEqual, o) }

// Neq is `e != o` for integers, bools and pointers.
func (e *Expr) Neq(o *Expr) *Expr { return e.simpleBinop(BinNotequal, o) }

// Feq is IEEE `e == o` over floating point.
func (e *Expr) Feq(o *Expr) *Expr { return e.simpleBinop(BinIeeeFloatEqual, o) }

// Fneq is IEEE `e != o` over floating point.
func (e *Expr) Fneq(o *Expr) *Expr { return e.simpleBinop(BinIeeeFloatNotequal, o) }

// Rol is `__builtin_rotateleft(e, o)`.
func (e *Expr) Rol(o *Expr) *Expr { return e.simpleBinop(BinRol, o) }

// Ror is `__builtin_rotateright(e, o)`.
func (e *Expr) Ror(o *Expr) *Expr { return e.simpleBinop(BinRor, o) }

// ROk is `__CPROVER_r_ok(e, o)`.
func (e *Expr) ROk(o *Expr) *Expr { return e.simpleBinop(BinROk, o) }

// AddOverflowP is `__builtin_add_overflow_p(e, o)`.
func (e *Expr) AddOverflowP(o *Expr) *Expr { return e.simpleBinop(BinOverflowPlus, o) }

// SubOverflowP is `__builtin_sub_overflow_p(e, o)`.
func (e *Expr) SubOverflowP(o *Expr) *Expr { return e.simpleBinop(BinOverflowMinus, o) }

// MulOverflowP is `__builtin_mul_overflow_p(e, o)`.
func (e *Expr) MulOverflowP(o *Expr) *Expr { return e.simpleBinop(BinOverflowMult, o) }

// VectorEq is `e == o` for SIMD vectors.
func (e *Expr) VectorEq(o *Expr, retTyp *Type) *Expr { return e.VectorCmp(BinVectorEqual, o, retTyp) }

// VectorNeq is `e != o` for SIMD vectors.
func (e *Expr) VectorNeq(o *Expr, retTyp *Type) *Expr {
	return e.VectorCmp(BinVectorNotequal, o, retTyp)
}

// VectorGe is `e >= o` for SIMD vectors.
func (e *Expr) VectorGe(o *Expr, retTyp *Type) *Expr { return e.VectorCmp(BinVectorGe, o, retTyp) }

// VectorLe is `e <= o` for SIMD vectors.
func (e *Expr) VectorLe(o *Expr, retTyp *Type) *Expr { return e.VectorCmp(BinVectorLe, o, retTyp) }

// VectorGt is `e > o` for SIMD vectors.
func (e *Expr) VectorGt(o *Expr, retTyp *Type) *Expr { return e.VectorCmp(BinVectorGt, o, retTyp) }

// VectorLt is `e < o` for SIMD vectors.
func (e *Expr) VectorLt(o *Expr, retTyp *Type) *Expr { return e.VectorCmp(BinVectorLt, o, retTyp) }

// Min is `min(e, o)` via a ternary; operands must be side effect free.
func (e *Expr) Min(o *Expr) *Expr {
	if e.IsSideEffect() || o.IsSideEffect() {
		panic("ir: min operands must be side effect free")
	}
	return e.Lt(o).Ternary(e, o)
}

// Max is `max(e, o)` via a ternary; operands must be side effect free.
func (e *Expr) Max(o *Expr) *Expr {
	if e.IsSideEffect() || o.IsSideEffect() {
		panic("ir: max operands must be side effect free")
	}
	return e.Gt(o).Ternary(e, o)
}

///////////////////////////////////////////////////////////////////////////
// Self operations and unary operators
///////////////////////////////////////////////////////////////////////////

func (e *Expr) selfOp(op SelfOperator) *Expr {
	if !e.Typ.IsInteger() && !e.Typ.IsPointer() {
		panic("ir: self operation needs an integer or pointer")
	}
	out := newExpr(ExprSelfOp, e.Typ)
	out.SelfOp = op
	out.Sub = e
	return out
}

// Postincr is `e++`.
func (e *Expr) Postincr() *Expr { return e.selfOp(SelfPostincrement) }

// Postdecr is `e--`.
func (e *Expr) Postdecr() *Expr { return e.selfOp(SelfPostdecrement) }

// Preincr is `++e`.
func (e *Expr) Preincr() *Expr { return e.selfOp(SelfPreincrement) }

// Predecr is `--e`.
func (e *Expr) Predecr() *Expr { return e.selfOp(SelfPredecrement) }

func typecheckUnopArg(op UnaryOperator, arg *Expr) bool {
	switch op {
	case UnBitnot, UnBitReverse, UnBswap, UnPopcount, UnCountLeadingZeros, UnCountTrailingZeros:
		return arg.Typ.IsInteger()
	case UnIsDynamicObject, UnObjectSize, UnPointerObject:
		return arg.Typ.IsPointer()
	case UnIsFinite:
		return arg.Typ.IsFloatingPoint()
	case UnPointerOffset:
		return arg.Typ.Equal(VoidPointer())
	case UnNot:
		return arg.Typ.IsBool()
	case UnUnaryMinus:
		return arg.Typ.IsNumeric()
	}
	return false
}

func unopReturnType(op UnaryOperator, arg *Expr) *Type {
	switch op {
	case UnBitnot, UnBitReverse, UnBswap, UnUnaryMinus, UnPopcount,
		UnCountLeadingZeros, UnCountTrailingZeros:
		return arg.Typ
	case UnObjectSize, UnPointerObject:
		return SizeT()
	case UnPointerOffset:
		return SSizeT()
	case UnIsDynamicObject, UnIsFinite, UnNot:
		return BoolType()
	default:
		panic("ir: unknown unary operator")
	}
}

func (e *Expr) unop(op UnaryOperator) *Expr {
	if !typecheckUnopArg(op, e) {
		panic(fmt.Sprintf("ir: unary operation %d does not typecheck", op))
	}
	out := newExpr(ExprUnOp, unopReturnType(op, e))
	out.UnOp = op
	out.Sub = e
	return out
}

// Bitnot is `~e`.
func (e *Expr) Bitnot() *Expr { return e.unop(UnBitnot) }

// Bswap is `__builtin_bswap<n>(e)`.
func (e *Expr) Bswap() *Expr { return e.unop(UnBswap) }

// Bitreverse is `__builtin_bitreverse<n>(e)`.
func (e *Expr) Bitreverse() *Expr { return e.unop(UnBitReverse) }

// DynamicObject is `__CPROVER_DYNAMIC_OBJECT(e)`.
func (e *Expr) DynamicObject() *Expr { return e.unop(UnIsDynamicObject) }

// IsFinite is `isfinite(e)`.
func (e *Expr) IsFinite() *Expr { return e.unop(UnIsFinite) }

// Neg is `-e`.
func (e *Expr) Neg() *Expr { return e.unop(UnUnaryMinus) }

// Not is `!e`, casting to bool first.
func (e *Expr) Not() *Expr { return e.CastTo(BoolType()).unop(UnNot) }

// ObjectSize is `__CPROVER_OBJECT_SIZE(e)`.
func (e *Expr) ObjectSize() *Expr { return e.unop(UnObjectSize) }

// PointerObject is `__CPROVER_POINTER_OBJECT(e)`.
func (e *Expr) PointerObject() *Expr { return e.unop(UnPointerObject) }

// PointerOffset is `__CPROVER_POINTER_OFFSET(e)`, casting to void* first.
func (e *Expr) PointerOffset() *Expr { return e.CastTo(VoidPointer()).unop(UnPointerOffset) }

// Popcount is `__builtin_popcount(e)`.
func (e *Expr) Popcount() *Expr { return e.unop(UnPopcount) }

// Cttz is `__builtin_cttz(e)`; zero input is UB unless allowZero.
func (e *Expr) Cttz(allowZero bool) *Expr {
	out := e.unop(UnCountTrailingZeros)
	out.AllowZero = allowZero
	return out
}

// Ctlz is `__builtin_ctlz(e)`; zero input is UB unless allowZero.
func (e *Expr) Ctlz(allowZero bool) *Expr {
	out := e.unop(UnCountLeadingZeros)
	out.AllowZero = allowZero
	return out
}

///////////////////////////////////////////////////////////////////////////
// Compound expressions
///////////////////////////////////////////////////////////////////////////

// IsNegative is `e < 0`.
func (e *Expr) IsNegative() *Expr {
	if !e.Typ.IsNumeric() {
		panic("ir: sign test on a non-numeric value")
	}
	return e.Lt(Zero(e.Typ))
}

// IsNonNegative is `e >= 0`.
func (e *Expr) IsNonNegative() *Expr {
	if !e.Typ.IsNumeric() {
		panic("ir: sign test on a non-numeric value")
	}
	return e.Ge(Zero(e.Typ))
}

// IsZero is `e == 0`.
func (e *Expr) IsZero() *Expr {
	if !e.Typ.IsNumeric() && !e.Typ.IsPointer() {
		panic("ir: zero test on a non-numeric, non-pointer value")
	}
	return e.Eq(Zero(e.Typ))
}

// IsNonnull is `e != NULL`.
func (e *Expr) IsNonnull() *Expr {
	if !e.Typ.IsPointer() {
		panic("ir: null test on a non-pointer value")
	}
	return e.Neq(Null(e.Typ))
}

// AddOverflow pairs `e + o` with its overflow flag.
func (e *Expr) AddOverflow(o *Expr) ArithmeticOverflowResult {
	return ArithmeticOverflowResult{Result: e.Plus(o), Overflowed: e.AddOverflowP(o)}
}

// SubOverflow pairs `e - o` with its overflow flag.
func (e *Expr) SubOverflow(o *Expr) ArithmeticOverflowResult {
	return ArithmeticOverflowResult{Result: e.Minus(o), Overflowed: e.SubOverflowP(o)}
}

// MulOverflow pairs `e * o` with its overflow flag.
func (e *Expr) MulOverflow(o *Expr) ArithmeticOverflowResult {
	return ArithmeticOverflowResult{Result: e.Mul(o), Overflowed: e.MulOverflowP(o)}
}

// AddOverflowResult is the checker's single add-with-overflow operation
// returning an overflow_result struct.
func (e *Expr) AddOverflowResult(o *Expr, strs *intern.Interner) *Expr {
	return e.Binop(BinOverflowResultPlus, o, strs)
}

// SubOverflowResult is the subtract-with-overflow form.
func (e *Expr) SubOverflowResult(o *Expr, strs *intern.Interner) *Expr {
	return e.Binop(BinOverflowResultMinus, o, strs)
}

// MulOverflowResult is the multiply-with-overflow form.
func (e *Expr) MulOverflowResult(o *Expr, strs *intern.Interner) *Expr {
	return e.Binop(BinOverflowResultMult, o, strs)
}

// ArrayToPtr is `&e[0]`, converting arrays into pointers.
func (e *Expr) ArrayToPtr() *Expr {
	if !e.Typ.IsArrayLike() {
		panic("ir: array decay on a non-array")
	}
	return e.IndexArray(Zero(SSizeT())).AddressOf()
}

// Index is `e[i]` over either a pointer or an array.
func (e *Expr) Index(idx *Expr) *Expr {
	if !idx.Typ.IsInteger() {
		panic("ir: index must be an integer")
	}
	switch {
	case e.Typ.IsPointer():
		return e.IndexPtr(idx)
	case e.Typ.IsArrayLike():
		return e.IndexArray(idx)
	default:
		panic("ir: value is not indexable")
	}
}

// IndexPtr is `e[i]` over a pointer, i.e. `*(e + i)`.
func (e *Expr) IndexPtr(idx *Expr) *Expr {
	if !e.Typ.IsPointer() {
		panic("ir: pointer indexing of a non-pointer")
	}
	return e.Plus(idx).Dereference()
}

// ReinterpretCast reinterprets the bits of e as type t via `*(T*)&e`.
// Unlike TransmuteTo this works on differently sized types, but requires
// that e is addressable.
func (e *Expr) ReinterpretCast(t *Type) *Expr {
	if !e.CanTakeAddressOf() {
		panic("ir: can't take the address for a reinterpret cast")
	}
	return e.AddressOf().CastTo(t.ToPointer()).Dereference()
}

// SameObject is `__CPROVER_same_object(e, o)`.
func (e *Expr) SameObject(o *Expr) *Expr {
	return e.PointerObject().Eq(o.PointerObject())
}

// SaturatingAdd is addition that saturates at the type bounds.
func (e *Expr) SaturatingAdd(o *Expr, mm *MachineModel) *Expr {
	if !e.Typ.IsInteger() || !e.Typ.Equal(o.Typ) {
		panic("ir: saturating add needs equal integer types")
	}
	typ := e.Typ
	res := e.AddOverflow(o)
	// Negative + negative is the only way down; saturate toward the sign of e.
	saturating := e.IsNegative().Ternary(MinIntExpr(typ, mm), MaxIntExpr(typ, mm))
	return res.Overflowed.Ternary(saturating, res.Result)
}

// SaturatingSub is subtraction that saturates at the type bounds.
func (e *Expr) SaturatingSub(o *Expr, mm *MachineModel) *Expr {
	if !e.Typ.IsInteger() || !e.Typ.Equal(o.Typ) {
		panic("ir: saturating sub needs equal integer types")
	}
	typ := e.Typ
	res := e.SubOverflow(o)
	saturating := o.IsNegative().Ternary(MaxIntExpr(typ, mm), MinIntExpr(typ, mm))
	return res.Overflowed.Ternary(saturating, res.Result)
}

// RawStringConstant is `"s"` as a char array; wrap with ArrayToPtr to use
// it as a pointer.
func RawStringConstant(s intern.StringID, strs *intern.Interner) *Expr {
	n, err := safecast.Conv[uint64](len(strs.MustLookup(s)))
	if err != nil {
		panic(fmt.Errorf("string constant length: %w", err))
	}
	out := newExpr(ExprStringConstant, CChar().ArrayOf(n+1))
	out.Name = s
	return out
}

// StringConstant is `"s"` decayed to a pointer to its first element.
func StringConstant(s intern.StringID, strs *intern.Interner) *Expr {
	return RawStringConstant(s, strs).ArrayToPtr()
}

///////////////////////////////////////////////////////////////////////////
// Type-directed constants
///////////////////////////////////////////////////////////////////////////

// MaxIntExpr is the largest value of an integer type on machine mm.
func MaxIntExpr(t *Type, mm *MachineModel) *Expr {
	if !t.IsInteger() {
		panic("ir: max of a non-integer type")
	}
	width, _ := t.NativeWidth(mm)
	return IntConstant(MaxInt(width, t.IsSigned(mm)), t)
}

// MinIntExpr is the smallest value of an integer type on machine mm.
func MinIntExpr(t *Type, mm *MachineModel) *Expr {
	if !t.IsInteger() {
		panic("ir: min of a non-integer type")
	}
	width, _ := t.NativeWidth(mm)
	return IntConstant(MinInt(width, t.IsSigned(mm)), t)
}

// NondetOf is an arbitrary value of type t.
func NondetOf(t *Type) *Expr { return Nondet(t) }

// Null is `(t)NULL` for a pointer type t.
func Null(t *Type) *Expr {
	if !t.IsPointer() {
		panic("ir: null of a non-pointer type")
	}
	return Zero(t)
}

// One is the unit value of a numeric or C bool type.
func One(t *Type) *Expr {
	switch {
	case t.IsInteger():
		return IntConstantInt(1, t)
	case t.IsCBool():
		return CTrue()
	case t.IsFloat():
		return FloatConstant(1.0)
	case t.IsDouble():
		return DoubleConstant(1.0)
	default:
		panic(fmt.Sprintf("ir: no one value for type %v", t.Kind))
	}
}

// Zero is the zero value of a numeric, C bool or pointer type.
func Zero(t *Type) *Expr {
	switch {
	case t.IsInteger():
		return IntConstantInt(0, t)
	case t.IsCBool():
		return CFalse()
	case t.IsFloat():
		return FloatConstant(0.0)
	case t.IsDouble():
		return DoubleConstant(0.0)
	case t.IsPointer():
		return PointerConstant(0, t)
	default:
		panic(fmt.Sprintf("ir: no zero value for type %v", t.Kind))
	}
}

///////////////////////////////////////////////////////////////////////////
// Conversions to statements
///////////////////////////////////////////////////////////////////////////

// AsStmt is the expression statement `e;`.
func (e *Expr) AsStmt(loc Location) *Stmt {
	return ExpressionStmt(e, loc)
}

// Assign is `e = rhs;`.
func (e *Expr) Assign(rhs *Expr, loc Location) *Stmt {
	return AssignStmt(e, rhs, loc)
}

// Havoc is `e = nondet;`, marking e as holding an arbitrary value.
func (e *Expr) Havoc(loc Location) *Stmt {
	return HavocStmt(e, loc)
}

// IfThenElse is `if (e) { t } else { f }`; f may be nil.
func (e *Expr) IfThenElse(t *Stmt, f *Stmt, loc Location) *Stmt {
	return IfStmt(e, t, f, loc)
}

// Ret is `return e;`.
func (e *Expr) Ret(loc Location) *Stmt {
	return ReturnStmt(e, loc)
}

// Switch is `switch (e) { cases; default }`; dflt may be nil.
func (e *Expr) Switch(cases []SwitchCase, dflt *Stmt, loc Location) *Stmt {
	return SwitchStmt(e, cases, dflt, loc)
}

// Case is `case e: { body }`.
func (e *Expr) Case(body *Stmt) SwitchCase {
	return SwitchCase{Value: e, Body: body}
}

// StructFieldExprs maps the non-padding field names of a struct value to
// field value expressions. For a struct literal the values are taken
// directly; otherwise member accesses are built.
func (e *Expr) StructFieldExprs(st *SymbolTable) map[intern.StringID]*Expr {
	if !e.Typ.IsStructTag() {
		panic("ir: field map over a non-struct value")
	}
	fields, err := st.LookupComponents(e.Typ)
	if err != nil {
		panic(err)
	}
	exprs := make(map[intern.StringID]*Expr, len(fields))
	if values, ok := e.StructExprValues(); ok {
		if len(fields) != len(values) {
			panic("ir: struct value arity mismatch")
		}
		for i, f := range fields {
			if f.Padding {
				continue
			}
			exprs[f.Name] = values[i]
		}
		return exprs
	}
	for _, f := range fields {
		if f.Padding {
			continue
		}
		exprs[f.Name] = e.Member(f.Name, st)
	}
	return exprs
}
