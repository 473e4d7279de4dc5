package ir

import (
	"fmt"
	"sort"
	"strings"

	"gotoc/internal/intern"
)

// TypeKind discriminates the Type variants. The names follow the ids the
// downstream checker uses on the wire.
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	// TypeArray is `typ x[size]`, e.g. `unsigned int x[3]`.
	TypeArray
	// TypeBool is the checker's single-bit boolean, `__CPROVER_bool`.
	TypeBool
	// TypeCBitField is `typ x : width`.
	TypeCBitField
	// TypeCInteger covers the machine dependent integers: bool, char, int,
	// size_t, ssize_t.
	TypeCInteger
	// TypeCode is a function type `return_type x(parameters)`.
	TypeCode
	// TypeConstructor is `__attribute__(constructor)`, only valid as a
	// function return type.
	TypeConstructor
	TypeDouble
	// TypeEmpty is `void`.
	TypeEmpty
	// TypeFlexibleArray is `typ x[]`, only valid as the last struct member.
	TypeFlexibleArray
	TypeFloat
	// TypeIncompleteStruct is a forward declared `struct x;`.
	TypeIncompleteStruct
	// TypeIncompleteUnion is a forward declared `union x;`.
	TypeIncompleteUnion
	// TypeInfiniteArray is `typ x[__CPROVER_infinity()]`.
	TypeInfiniteArray
	TypePointer
	// TypeSignedBV is `int<width>_t`.
	TypeSignedBV
	TypeStruct
	// TypeStructTag is a reference into the symbol table; the tag is the name
	// of the struct symbol.
	TypeStructTag
	TypeUnion
	// TypeUnionTag is a reference into the symbol table; the tag is the name
	// of the union symbol.
	TypeUnionTag
	// TypeUnsignedBV is `uint<width>_t`.
	TypeUnsignedBV
	// TypeVariadicCode is `return_type x(parameters, ...)`.
	TypeVariadicCode
	// TypeVector is a packed SIMD vector of Size elements.
	TypeVector
)

// CIntKind enumerates the machine dependent integer types.
type CIntKind uint8

const (
	CIntBool CIntKind = iota
	CIntChar
	CIntInt
	CIntSizeT
	CIntSSizeT
)

// Type is a goto-program type. The zero value is invalid; build types with
// the constructors below. Types are treated as immutable values: methods
// never mutate the receiver.
type Type struct {
	Kind TypeKind
	// Elem is the element type for Array, CBitField, FlexibleArray,
	// InfiniteArray, Pointer and Vector.
	Elem *Type
	// Size is the element count for Array and Vector.
	Size uint64
	// Width is the bit width for CBitField, SignedBV and UnsignedBV.
	Width uint64
	// CInt selects the machine integer for CInteger.
	CInt CIntKind
	// Tag names struct/union variants (including the tag references).
	Tag intern.StringID
	// Components lists the fields and padding of Struct and Union.
	Components []DatatypeComponent
	// Parameters and Ret describe Code and VariadicCode.
	Parameters []Parameter
	Ret        *Type
}

// DatatypeComponent is one member of a struct or union layout: either a real
// field or compiler-inserted padding.
type DatatypeComponent struct {
	Name    intern.StringID
	Typ     *Type // nil for padding
	Bits    uint64
	Padding bool
}

// Field builds a named struct/union member.
func Field(name intern.StringID, typ *Type) DatatypeComponent {
	return DatatypeComponent{Name: name, Typ: typ}
}

// PaddingComponent builds a `__CPROVER_bitvector[bits] $pad<n>` member.
func PaddingComponent(name intern.StringID, bits uint64) DatatypeComponent {
	return DatatypeComponent{Name: name, Bits: bits, Padding: true}
}

// FieldTyp returns the member's declared type, or nil for padding.
func (c DatatypeComponent) FieldTyp() *Type {
	return c.Typ
}

// ComponentTyp returns the type a component occupies in the layout: the field
// type for fields, an unsigned bitvector for padding.
func (c DatatypeComponent) ComponentTyp() *Type {
	if c.Padding {
		return UnsignedInt(c.Bits)
	}
	return c.Typ
}

func (c DatatypeComponent) equal(o DatatypeComponent) bool {
	if c.Padding != o.Padding || c.Name != o.Name {
		return false
	}
	if c.Padding {
		return c.Bits == o.Bits
	}
	return c.Typ.Equal(o.Typ)
}

// Parameter is a formal function parameter. Identifier is the unique symbol
// name (qualified by function, module, etc); BaseName is the local name
// within the function. Both may be NoString for unnamed parameters.
type Parameter struct {
	Typ        *Type
	Identifier intern.StringID
	BaseName   intern.StringID
}

// Equal ignores the names: parameters are equal whenever their types are.
func (p Parameter) Equal(o Parameter) bool {
	return p.Typ.Equal(o.Typ)
}

///////////////////////////////////////////////////////////////////////////
// Getters
///////////////////////////////////////////////////////////////////////////

// Equal is deep structural equality, with parameter names ignored.
func (t *Type) Equal(o *Type) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil || t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TypeBool, TypeConstructor, TypeDouble, TypeEmpty, TypeFloat:
		return true
	case TypeCInteger:
		return t.CInt == o.CInt
	case TypeSignedBV, TypeUnsignedBV:
		return t.Width == o.Width
	case TypeArray, TypeVector:
		return t.Size == o.Size && t.Elem.Equal(o.Elem)
	case TypeCBitField:
		return t.Width == o.Width && t.Elem.Equal(o.Elem)
	case TypeFlexibleArray, TypeInfiniteArray, TypePointer:
		return t.Elem.Equal(o.Elem)
	case TypeIncompleteStruct, TypeIncompleteUnion, TypeStructTag, TypeUnionTag:
		return t.Tag == o.Tag
	case TypeStruct, TypeUnion:
		if t.Tag != o.Tag || len(t.Components) != len(o.Components) {
			return false
		}
		for i := range t.Components {
			if !t.Components[i].equal(o.Components[i]) {
				return false
			}
		}
		return true
	case TypeCode, TypeVariadicCode:
		if len(t.Parameters) != len(o.Parameters) || !t.Ret.Equal(o.Ret) {
			return false
		}
		for i := range t.Parameters {
			if !t.Parameters[i].Equal(o.Parameters[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// AggrTag returns the StructTag or UnionTag naming this aggregate, or nil if
// the type is not an aggregate.
func (t *Type) AggrTag(strs *intern.Interner) *Type {
	switch t.Kind {
	case TypeIncompleteStruct, TypeStruct:
		return StructTag(strs.MustLookup(t.Tag), strs)
	case TypeIncompleteUnion, TypeUnion:
		return UnionTag(strs.MustLookup(t.Tag), strs)
	case TypeStructTag, TypeUnionTag:
		return t
	default:
		return nil
	}
}

// BaseType returns the element type of pointers, arrays, vectors and
// bitfields, or nil.
func (t *Type) BaseType() *Type {
	switch t.Kind {
	case TypeArray, TypeCBitField, TypeFlexibleArray, TypePointer, TypeInfiniteArray, TypeVector:
		return t.Elem
	default:
		return nil
	}
}

// ComponentsOf returns the layout members of a Struct or Union, or nil.
func (t *Type) ComponentsOf() []DatatypeComponent {
	switch t.Kind {
	case TypeStruct, TypeUnion:
		return t.Components
	default:
		return nil
	}
}

// NativeWidth is the bit width of the integer or pointer type on machine mm.
// Returns (0, false) for types without a width.
func (t *Type) NativeWidth(mm *MachineModel) (uint64, bool) {
	switch t.Kind {
	case TypePointer:
		return mm.PointerWidth, true
	case TypeCInteger:
		switch t.CInt {
		case CIntBool:
			return mm.BoolWidth, true
		case CIntChar:
			return mm.CharWidth, true
		case CIntInt:
			return mm.IntWidth, true
		case CIntSizeT, CIntSSizeT:
			return mm.PointerWidth, true
		}
	case TypeSignedBV, TypeUnsignedBV:
		return t.Width, true
	}
	return 0, false
}

// ParametersOf returns the formal parameters of a function type, or nil.
func (t *Type) ParametersOf() []Parameter {
	switch t.Kind {
	case TypeCode, TypeVariadicCode:
		return t.Parameters
	default:
		return nil
	}
}

// ReturnType returns the return type of a function type, or nil.
func (t *Type) ReturnType() *Type {
	switch t.Kind {
	case TypeCode, TypeVariadicCode:
		return t.Ret
	default:
		return nil
	}
}

// Sizeof is the size in bytes on the table's machine model.
func (t *Type) Sizeof(st *SymbolTable) uint64 {
	bits := t.SizeofInBits(st)
	charWidth := st.MachineModel().CharWidth
	if bits%charWidth != 0 {
		panic(fmt.Sprintf("ir: sizeof of %v is %d bits, not byte aligned", t.Kind, bits))
	}
	return bits / charWidth
}

// SizeofExpr is the size in bytes as a size_t constant.
func (t *Type) SizeofExpr(st *SymbolTable) *Expr {
	return IntConstantUint(t.Sizeof(st), SizeT())
}

// SizeofInBits is the size of the type in bits on the table's machine model.
// Panics for types that have no size (incomplete aggregates, infinite
// arrays, constructor and variadic function types).
func (t *Type) SizeofInBits(st *SymbolTable) uint64 {
	switch t.Kind {
	case TypeArray:
		return t.Elem.SizeofInBits(st) * t.Size
	case TypeCInteger:
		w, _ := t.NativeWidth(st.MachineModel())
		return w
	// Function definitions have no size of their own; only pointers to
	// them do.
	case TypeCode:
		return 0
	case TypeDouble:
		return st.MachineModel().DoubleWidth
	case TypeEmpty:
		return 0
	case TypeFlexibleArray:
		return 0
	case TypeFloat:
		return st.MachineModel().FloatWidth
	case TypePointer:
		return st.MachineModel().PointerWidth
	case TypeSignedBV, TypeUnsignedBV:
		return t.Width
	case TypeStruct:
		var sum uint64
		for _, c := range t.Components {
			sum += c.ComponentTyp().SizeofInBits(st)
		}
		return sum
	case TypeStructTag, TypeUnionTag:
		return st.MustLookup(t.Tag).Typ.SizeofInBits(st)
	case TypeUnion:
		var max uint64
		for _, c := range t.Components {
			if s := c.ComponentTyp().SizeofInBits(st); s > max {
				max = s
			}
		}
		return max
	case TypeVector:
		return t.Elem.SizeofInBits(st) * t.Size
	default:
		panic(fmt.Sprintf("ir: %v has no sizeof", t.Kind))
	}
}

// TagOf returns the tag of any struct/union variant, or (NoString, false).
func (t *Type) TagOf() (intern.StringID, bool) {
	switch t.Kind {
	case TypeIncompleteStruct, TypeIncompleteUnion, TypeStruct, TypeStructTag, TypeUnion, TypeUnionTag:
		return t.Tag, true
	default:
		return intern.NoString, false
	}
}

// TypeName returns the symbol-table name of an aggregate: `tag-foo` for a
// `struct foo` or `union foo`, the tag itself for tag references.
func (t *Type) TypeName(strs *intern.Interner) (intern.StringID, bool) {
	switch t.Kind {
	case TypeIncompleteStruct, TypeIncompleteUnion, TypeStruct, TypeUnion:
		return AggrTagName(strs.MustLookup(t.Tag), strs), true
	case TypeStructTag, TypeUnionTag:
		return t.Tag, true
	default:
		return intern.NoString, false
	}
}

// WidthOf is the declared width of a bitvector or bitfield type.
func (t *Type) WidthOf() (uint64, bool) {
	switch t.Kind {
	case TypeCBitField, TypeSignedBV, TypeUnsignedBV:
		return t.Width, true
	default:
		return 0, false
	}
}

///////////////////////////////////////////////////////////////////////////
// Predicates
///////////////////////////////////////////////////////////////////////////

func (t *Type) IsArray() bool { return t.Kind == TypeArray }

func (t *Type) IsArrayLike() bool {
	switch t.Kind {
	case TypeArray, TypeFlexibleArray, TypeVector:
		return true
	}
	return false
}

func (t *Type) IsBool() bool   { return t.Kind == TypeBool }
func (t *Type) IsCBool() bool  { return t.Kind == TypeCInteger && t.CInt == CIntBool }
func (t *Type) IsCSizeT() bool { return t.Kind == TypeCInteger && t.CInt == CIntSizeT }

func (t *Type) IsCSSizeT() bool { return t.Kind == TypeCInteger && t.CInt == CIntSSizeT }
func (t *Type) IsCode() bool    { return t.Kind == TypeCode }
func (t *Type) IsDouble() bool  { return t.Kind == TypeDouble }
func (t *Type) IsEmpty() bool   { return t.Kind == TypeEmpty }

// IsEqualOnMachine reports whether two types have the same concrete
// representation on machine mm: same bit width and signedness.
func (t *Type) IsEqualOnMachine(o *Type, mm *MachineModel) bool {
	if t.Equal(o) {
		return true
	}
	tw, tok := t.NativeWidth(mm)
	ow, ook := o.NativeWidth(mm)
	return tok == ook && tw == ow && t.IsSigned(mm) == o.IsSigned(mm)
}

func (t *Type) IsFlexibleArray() bool { return t.Kind == TypeFlexibleArray }
func (t *Type) IsFloat() bool         { return t.Kind == TypeFloat }

func (t *Type) IsFloatingPoint() bool {
	return t.Kind == TypeDouble || t.Kind == TypeFloat
}

func (t *Type) IsCInteger() bool { return t.Kind == TypeCInteger }

// IsInteger reports whether the type is an integer with finite width.
func (t *Type) IsInteger() bool {
	switch t.Kind {
	case TypeCInteger, TypeSignedBV, TypeUnsignedBV:
		return true
	}
	return false
}

func (t *Type) IsLvalue() bool {
	switch t.Kind {
	case TypeBool, TypeCBitField, TypeCInteger, TypeDouble, TypeFloat,
		TypePointer, TypeSignedBV, TypeStruct, TypeStructTag, TypeUnion,
		TypeUnionTag, TypeUnsignedBV, TypeVector:
		return true
	}
	return false
}

func (t *Type) IsNumeric() bool {
	return t.IsFloatingPoint() || t.IsInteger()
}

func (t *Type) IsPointer() bool { return t.Kind == TypePointer }

// IsPointerWidth reports whether this is a size_t, ssize_t, or pointer.
func (t *Type) IsPointerWidth() bool {
	switch t.Kind {
	case TypePointer:
		return true
	case TypeCInteger:
		return t.CInt == CIntSizeT || t.CInt == CIntSSizeT
	}
	return false
}

func (t *Type) IsSigned(mm *MachineModel) bool {
	switch t.Kind {
	case TypeSignedBV:
		return true
	case TypeCInteger:
		switch t.CInt {
		case CIntInt, CIntSSizeT:
			return true
		case CIntChar:
			return !mm.CharIsUnsigned
		}
	}
	return false
}

func (t *Type) IsStruct() bool    { return t.Kind == TypeStruct }
func (t *Type) IsStructTag() bool { return t.Kind == TypeStructTag }

func (t *Type) IsStructLike() bool {
	switch t.Kind {
	case TypeIncompleteStruct, TypeStruct, TypeStructTag:
		return true
	}
	return false
}

func (t *Type) IsUnion() bool    { return t.Kind == TypeUnion }
func (t *Type) IsUnionTag() bool { return t.Kind == TypeUnionTag }

func (t *Type) IsUnsigned(mm *MachineModel) bool {
	switch t.Kind {
	case TypeUnsignedBV:
		return true
	case TypeCInteger:
		switch t.CInt {
		case CIntBool, CIntSizeT:
			return true
		case CIntChar:
			return mm.CharIsUnsigned
		}
	}
	return false
}

func (t *Type) IsVariadicCode() bool { return t.Kind == TypeVariadicCode }
func (t *Type) IsVector() bool       { return t.Kind == TypeVector }

// IsTransparentType reports whether the type is a single-field wrapper over
// a base type, following tags through the symbol table.
func (t *Type) IsTransparentType(st *SymbolTable) bool {
	switch t.Kind {
	case TypeStructTag, TypeUnionTag:
		return st.MustLookup(t.Tag).Typ.IsTransparentType(st)
	case TypeStruct, TypeUnion:
		_, ok := t.UnwrapTransparentType(st)
		return ok
	}
	return false
}

// UnwrapTransparentType peels single-field wrappers down to the underlying
// base type.
func (t *Type) UnwrapTransparentType(st *SymbolTable) (*Type, bool) {
	switch t.Kind {
	case TypeBool, TypeCBitField, TypeCInteger, TypeDouble, TypeEmpty,
		TypeFloat, TypePointer, TypeSignedBV, TypeUnsignedBV:
		return t, true
	case TypeStructTag, TypeUnionTag:
		return st.MustLookup(t.Tag).Typ.UnwrapTransparentType(st)
	case TypeStruct, TypeUnion:
		if len(t.Components) != 1 || t.Components[0].Padding {
			return nil, false
		}
		return t.Components[0].Typ.UnwrapTransparentType(st)
	}
	return nil, false
}

// Completes reports whether t is a definition completing the forward
// declaration old: same tag, incomplete struct to struct or incomplete
// union to union.
func (t *Type) Completes(old *Type) bool {
	switch {
	case old.Kind == TypeIncompleteStruct && t.Kind == TypeStruct:
		return old.Tag == t.Tag
	case old.Kind == TypeIncompleteUnion && t.Kind == TypeUnion:
		return old.Tag == t.Tag
	}
	return false
}

///////////////////////////////////////////////////////////////////////////
// Constructors
///////////////////////////////////////////////////////////////////////////

// AggrTagPrefix prefixes the symbol-table names of aggregate types.
const AggrTagPrefix = "tag-"

// AggrTagName interns `tag-<name>`, the symbol-table name of an aggregate.
func AggrTagName(name string, strs *intern.Interner) intern.StringID {
	return strs.Intern(AggrTagPrefix + name)
}

// ArrayOf is `t[size]`.
func (t *Type) ArrayOf(size uint64) *Type {
	return &Type{Kind: TypeArray, Elem: t, Size: size}
}

// AsBitfield is `t x : width`. The base type must be an integer at least
// width bits wide.
func (t *Type) AsBitfield(width uint64) *Type {
	if width == 0 || !t.IsInteger() {
		panic("ir: bitfield requires a positive width over an integer type")
	}
	if w, _ := t.WidthOf(); t.Kind != TypeCInteger && w < width {
		panic(fmt.Sprintf("ir: bitfield width %d exceeds base width %d", width, w))
	}
	return &Type{Kind: TypeCBitField, Elem: t, Width: width}
}

// AsParameter wraps the type as a formal parameter. Either name may be
// NoString for unnamed parameters.
func (t *Type) AsParameter(identifier, baseName intern.StringID) Parameter {
	if !t.IsLvalue() {
		panic(fmt.Sprintf("ir: parameter type must be an lvalue, got %v", t.Kind))
	}
	return Parameter{Typ: t, Identifier: identifier, BaseName: baseName}
}

func BoolType() *Type { return &Type{Kind: TypeBool} }
func CBool() *Type    { return &Type{Kind: TypeCInteger, CInt: CIntBool} }
func CChar() *Type    { return &Type{Kind: TypeCInteger, CInt: CIntChar} }
func CInt() *Type     { return &Type{Kind: TypeCInteger, CInt: CIntInt} }
func SizeT() *Type    { return &Type{Kind: TypeCInteger, CInt: CIntSizeT} }
func SSizeT() *Type   { return &Type{Kind: TypeCInteger, CInt: CIntSSizeT} }

// Code is the function type `ret (params..)`.
func Code(parameters []Parameter, returnType *Type) *Type {
	return &Type{Kind: TypeCode, Parameters: parameters, Ret: returnType}
}

// CodeWithUnnamedParameters is `int foo(int, char, double)`.
func CodeWithUnnamedParameters(paramTypes []*Type, returnType *Type) *Type {
	params := make([]Parameter, len(paramTypes))
	for i, pt := range paramTypes {
		params[i] = pt.AsParameter(intern.NoString, intern.NoString)
	}
	return Code(params, returnType)
}

func ConstructorType() *Type { return &Type{Kind: TypeConstructor} }
func Double() *Type          { return &Type{Kind: TypeDouble} }
func Empty() *Type           { return &Type{Kind: TypeEmpty} }

// EmptyStruct is `struct tag {};`.
func EmptyStruct(tag intern.StringID) *Type {
	return &Type{Kind: TypeStruct, Tag: tag}
}

// EmptyUnion is `union tag {};`.
func EmptyUnion(tag intern.StringID) *Type {
	return &Type{Kind: TypeUnion, Tag: tag}
}

func (t *Type) FlexibleArrayOf() *Type {
	return &Type{Kind: TypeFlexibleArray, Elem: t}
}

func Float() *Type { return &Type{Kind: TypeFloat} }

// IncompleteStruct is a forward declared `struct tag;`.
func IncompleteStruct(tag intern.StringID) *Type {
	return &Type{Kind: TypeIncompleteStruct, Tag: tag}
}

// IncompleteUnion is a forward declared `union tag;`.
func IncompleteUnion(tag intern.StringID) *Type {
	return &Type{Kind: TypeIncompleteUnion, Tag: tag}
}

func (t *Type) InfiniteArrayOf() *Type {
	return &Type{Kind: TypeInfiniteArray, Elem: t}
}

// ToPointer is `t*`.
func (t *Type) ToPointer() *Type {
	return &Type{Kind: TypePointer, Elem: t}
}

func SignedInt(width uint64) *Type {
	if width == 0 {
		panic("ir: signed bitvector needs a positive width")
	}
	return &Type{Kind: TypeSignedBV, Width: width}
}

func UnsignedInt(width uint64) *Type {
	if width == 0 {
		panic("ir: unsigned bitvector needs a positive width")
	}
	return &Type{Kind: TypeUnsignedBV, Width: width}
}

// StructTag is a reference to `struct name`; the `tag-` prefix is added.
func StructTag(name string, strs *intern.Interner) *Type {
	return &Type{Kind: TypeStructTag, Tag: AggrTagName(name, strs)}
}

// StructTagRaw is a struct reference whose name already carries any prefix.
func StructTagRaw(name intern.StringID) *Type {
	return &Type{Kind: TypeStructTag, Tag: name}
}

// UnionTag is a reference to `union name`; the `tag-` prefix is added.
func UnionTag(name string, strs *intern.Interner) *Type {
	return &Type{Kind: TypeUnionTag, Tag: AggrTagName(name, strs)}
}

// UnionTagRaw is a union reference whose name already carries any prefix.
func UnionTagRaw(name intern.StringID) *Type {
	return &Type{Kind: TypeUnionTag, Tag: name}
}

// ComponentsAreUnique reports whether no two components share a name.
func ComponentsAreUnique(components []DatatypeComponent) bool {
	seen := make(map[intern.StringID]struct{}, len(components))
	for _, c := range components {
		if _, dup := seen[c.Name]; dup {
			return false
		}
		seen[c.Name] = struct{}{}
	}
	return true
}

// StructType is `struct tag { c1; c2; ... }`.
func StructType(tag intern.StringID, components []DatatypeComponent) *Type {
	if !ComponentsAreUnique(components) {
		panic("ir: struct components contain duplicate names")
	}
	return &Type{Kind: TypeStruct, Tag: tag, Components: components}
}

// UnionType is `union tag { c1; c2; ... }`.
func UnionType(tag intern.StringID, components []DatatypeComponent) *Type {
	if !ComponentsAreUnique(components) {
		panic("ir: union components contain duplicate names")
	}
	return &Type{Kind: TypeUnion, Tag: tag, Components: components}
}

// VariadicCode is the function type `ret (params.., ...)`.
func VariadicCode(parameters []Parameter, returnType *Type) *Type {
	return &Type{Kind: TypeVariadicCode, Parameters: parameters, Ret: returnType}
}

// VariadicCodeWithUnnamedParameters is `int foo(int, char, ...)`.
func VariadicCodeWithUnnamedParameters(paramTypes []*Type, returnType *Type) *Type {
	params := make([]Parameter, len(paramTypes))
	for i, pt := range paramTypes {
		params[i] = Parameter{Typ: pt}
	}
	return VariadicCode(params, returnType)
}

// Vector is a packed SIMD vector of size numeric elements.
func Vector(typ *Type, size uint64) *Type {
	if !typ.IsNumeric() {
		panic("ir: vector element type must be numeric")
	}
	return &Type{Kind: TypeVector, Elem: typ, Size: size}
}

// VoidPointer is `void *`.
func VoidPointer() *Type {
	return Empty().ToPointer()
}

///////////////////////////////////////////////////////////////////////////
// Field maps and identifiers
///////////////////////////////////////////////////////////////////////////

// StructFieldTypes maps field names to field types for a struct tag,
// skipping padding. Entries come back sorted by resolved field name.
func (t *Type) StructFieldTypes(st *SymbolTable) []DatatypeComponent {
	if !t.IsStructTag() {
		panic("ir: StructFieldTypes requires a struct tag")
	}
	fields, err := st.LookupComponents(t)
	if err != nil {
		panic(err)
	}
	out := make([]DatatypeComponent, 0, len(fields))
	for _, f := range fields {
		if f.Padding {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		return st.Strings.MustLookup(out[i].Name) < st.Strings.MustLookup(out[j].Name)
	})
	return out
}

// LooksLikeUniquePointer reports whether an aggregate's tag name is
// consistent with a known box/unique-pointer shape. This is best-effort
// substring matching on the tag and deliberately degrades to false on
// anything unrecognized; callers must treat it as advisory only.
func (t *Type) LooksLikeUniquePointer(strs *intern.Interner) bool {
	tag, ok := t.TagOf()
	if !ok {
		return false
	}
	name := strs.MustLookup(tag)
	return strings.Contains(name, "Box<") || strings.Contains(name, "Unique<")
}

func (k CIntKind) mangled() string {
	switch k {
	case CIntBool:
		return "Bool"
	case CIntChar:
		return "Char"
	case CIntInt:
		return "Int"
	case CIntSizeT:
		return "SizeT"
	case CIntSSizeT:
		return "SSizeT"
	default:
		return "Invalid"
	}
}

// ToIdentifier renders a string that uniquely identifies the type while also
// being a valid variable or function name.
func (t *Type) ToIdentifier(strs *intern.Interner) string {
	switch t.Kind {
	case TypeArray:
		return fmt.Sprintf("array_of_%d_%s", t.Size, t.Elem.ToIdentifier(strs))
	case TypeBool:
		return "bool"
	case TypeCBitField:
		return fmt.Sprintf("cbitfield_of_%d_%s", t.Width, t.Elem.ToIdentifier(strs))
	case TypeCInteger:
		return "c_int_" + t.CInt.mangled()
	case TypeCode, TypeVariadicCode:
		parts := make([]string, len(t.Parameters))
		for i, p := range t.Parameters {
			parts[i] = p.Typ.ToIdentifier(strs)
		}
		prefix := "code_from_"
		if t.Kind == TypeVariadicCode {
			prefix = "variadic_code_from_"
		}
		return prefix + strings.Join(parts, "_") + "_to_" + t.Ret.ToIdentifier(strs)
	case TypeConstructor:
		return "constructor"
	case TypeDouble:
		return "double"
	case TypeEmpty:
		return "empty"
	case TypeFlexibleArray:
		return "flexarray_of_" + t.Elem.ToIdentifier(strs)
	case TypeFloat:
		return "float"
	case TypeIncompleteStruct, TypeIncompleteUnion:
		return strs.MustLookup(t.Tag)
	case TypeInfiniteArray:
		return "infinite_array_of_" + t.Elem.ToIdentifier(strs)
	case TypePointer:
		return "pointer_to_" + t.Elem.ToIdentifier(strs)
	case TypeSignedBV:
		return fmt.Sprintf("signed_bv_%d", t.Width)
	case TypeStruct:
		return "struct_" + strs.MustLookup(t.Tag)
	case TypeStructTag:
		return "struct_tag_" + strs.MustLookup(t.Tag)
	case TypeUnion:
		return "union_" + strs.MustLookup(t.Tag)
	case TypeUnionTag:
		return "union_tag_" + strs.MustLookup(t.Tag)
	case TypeUnsignedBV:
		return fmt.Sprintf("unsigned_bv_%d", t.Width)
	case TypeVector:
		return fmt.Sprintf("vec_of_%d_%s", t.Size, t.Elem.ToIdentifier(strs))
	default:
		panic(fmt.Sprintf("ir: no identifier for type kind %d", t.Kind))
	}
}
