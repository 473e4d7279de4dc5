package irep

import (
	"math/big"

	"gotoc/internal/ir"
)

// ID is one identifier of the checker's irep vocabulary. The constants
// below are the exact wire strings; freeform ids (numbers, bit patterns,
// arbitrary symbol names) are built by the From* constructors.
type ID string

const (
	IDNil         ID = "nil"
	IDEmptyString ID = ""
	ID0           ID = "0"
	ID1           ID = "1"

	IDAddressOf               ID = "address_of"
	IDAnd                     ID = "and"
	IDArguments               ID = "arguments"
	IDArray                   ID = "array"
	IDArrayOf                 ID = "array_of"
	IDAshr                    ID = "ashr"
	IDAssert                  ID = "assert"
	IDAssign                  ID = "assign"
	IDAssume                  ID = "assume"
	IDAtomicBegin             ID = "atomic_begin"
	IDAtomicEnd               ID = "atomic_end"
	IDBitand                  ID = "bitand"
	IDBitnand                 ID = "bitnand"
	IDBitnot                  ID = "bitnot"
	IDBitor                   ID = "bitor"
	IDBitReverse              ID = "bitreverse"
	IDBitsPerByte             ID = "bits_per_byte"
	IDBitxor                  ID = "bitxor"
	IDBlock                   ID = "block"
	IDBool                    ID = "bool"
	IDBreak                   ID = "break"
	IDBswap                   ID = "bswap"
	IDByteExtractBigEndian    ID = "byte_extract_big_endian"
	IDByteExtractLittleEndian ID = "byte_extract_little_endian"
	IDCBaseName               ID = "#base_name"
	IDCBitField               ID = "c_bit_field"
	IDCBool                   ID = "c_bool"
	IDCBoundsCheck            ID = "#bounds_check"
	IDCCSizeofType            ID = "#c_sizeof_type"
	IDCCType                  ID = "#c_type"
	IDCIdentifier             ID = "#identifier"
	IDCIsPadding              ID = "#is_padding"
	IDCLvalue                 ID = "#lvalue"
	IDCode                    ID = "code"
	IDColumn                  ID = "column"
	IDComment                 ID = "comment"
	IDComponentName           ID = "component_name"
	IDComponents              ID = "components"
	IDConstant                ID = "constant"
	IDConstructor             ID = "constructor"
	IDContinue                ID = "continue"
	IDCountLeadingZeros       ID = "count_leading_zeros"
	IDCountTrailingZeros      ID = "count_trailing_zeros"
	IDCSourceLocation         ID = "#source_location"
	IDDead                    ID = "dead"
	IDDecl                    ID = "decl"
	IDDefault                 ID = "default"
	IDDereference             ID = "dereference"
	IDDestination             ID = "destination"
	IDDiv                     ID = "div"
	IDDouble                  ID = "double"
	IDEllipsis                ID = "ellipsis"
	IDEmpty                   ID = "empty"
	IDEmptyUnion              ID = "empty_union"
	IDEqual                   ID = "="
	IDExpression              ID = "expression"
	IDF                       ID = "f"
	IDFalse                   ID = "false"
	IDFile                    ID = "file"
	IDFloat                   ID = "float"
	IDFloatbv                 ID = "floatbv"
	IDFor                     ID = "for"
	IDFunction                ID = "function"
	IDFunctionCall            ID = "function_call"
	IDGe                      ID = ">="
	IDGoto                    ID = "goto"
	IDGt                      ID = ">"
	IDIdentifier              ID = "identifier"
	IDIeeeFloatEqual          ID = "ieee_float_equal"
	IDIeeeFloatNotequal       ID = "ieee_float_notequal"
	IDIf                      ID = "if"
	IDIfthenelse              ID = "ifthenelse"
	IDImplies                 ID = "=>"
	IDIncomplete              ID = "incomplete"
	IDIndex                   ID = "index"
	IDInfinity                ID = "infinity"
	IDIsDynamicObject         ID = "is_dynamic_object"
	IDIsFinite                ID = "isfinite"
	IDLabel                   ID = "label"
	IDLe                      ID = "<="
	IDLine                    ID = "line"
	IDLshr                    ID = "lshr"
	IDLt                      ID = "<"
	IDMember                  ID = "member"
	IDMinus                   ID = "-"
	IDMod                     ID = "mod"
	IDMode                    ID = "mode"
	IDModule                  ID = "module"
	IDMult                    ID = "*"
	IDName                    ID = "name"
	IDNondet                  ID = "nondet"
	IDNot                     ID = "not"
	IDNotequal                ID = "notequal"
	IDNull                    ID = "NULL"
	IDObjectSize              ID = "object_size"
	IDOr                      ID = "or"
	IDOverflowMinus           ID = "overflow-"
	IDOverflowMult            ID = "overflow*"
	IDOverflowPlus            ID = "overflow+"
	IDOverflowResultMinus     ID = "overflow_result-"
	IDOverflowResultMult      ID = "overflow_result*"
	IDOverflowResultPlus      ID = "overflow_result+"
	IDParameter               ID = "parameter"
	IDParameters              ID = "parameters"
	IDPlus                    ID = "+"
	IDPointer                 ID = "pointer"
	IDPointerObject           ID = "pointer_object"
	IDPointerOffset           ID = "pointer_offset"
	IDPopcount                ID = "popcount"
	IDPostdecrement           ID = "postdecrement"
	IDPostincrement           ID = "postincrement"
	IDPredecrement            ID = "predecrement"
	IDPreincrement            ID = "preincrement"
	IDPrettyName              ID = "pretty_name"
	IDPropertyClass           ID = "property_class"
	IDROk                     ID = "r_ok"
	IDReturn                  ID = "return"
	IDReturnType              ID = "return_type"
	IDRol                     ID = "rol"
	IDRor                     ID = "ror"
	IDShl                     ID = "shl"
	IDSignedChar              ID = "signed_char"
	IDSignedInt               ID = "signed_int"
	IDSignedLongInt           ID = "signed_long_int"
	IDSideEffect              ID = "side_effect"
	IDSignedbv                ID = "signedbv"
	IDSize                    ID = "size"
	IDSkip                    ID = "skip"
	IDStatement               ID = "statement"
	IDStatementExpression     ID = "statement_expression"
	IDStringConstant          ID = "string_constant"
	IDStruct                  ID = "struct"
	IDStructTag               ID = "struct_tag"
	IDSwitch                  ID = "switch"
	IDSwitchCase              ID = "switch_case"
	IDSymbol                  ID = "symbol"
	IDTag                     ID = "tag"
	IDTrue                    ID = "true"
	IDType                    ID = "type"
	IDTypecast                ID = "typecast"
	IDUnaryMinus              ID = "unary-"
	IDUnion                   ID = "union"
	IDUnionTag                ID = "union_tag"
	IDUnsignedbv              ID = "unsignedbv"
	IDUnsignedChar            ID = "unsigned_char"
	IDUnsignedLongInt         ID = "unsigned_long_int"
	IDValue                   ID = "value"
	IDVector                  ID = "vector"
	IDVectorEqual             ID = "vector-=="
	IDVectorGe                ID = "vector->="
	IDVectorGt                ID = "vector->"
	IDVectorLe                ID = "vector-<="
	IDVectorLt                ID = "vector-<"
	IDVectorNotequal          ID = "vector-!="
	IDWhile                   ID = "while"
	IDWidth                   ID = "width"
	IDXor                     ID = "xor"
)

// FromString wraps an arbitrary identifier (symbol names, file names) as an
// irep id.
func FromString(s string) ID { return ID(s) }

// FromInt renders an integer in the decimal form the checker expects.
func FromInt(i *big.Int) ID { return ID(i.Text(10)) }

// FromUint is FromInt for machine integers.
func FromUint(i uint64) ID { return FromInt(new(big.Int).SetUint64(i)) }

// FromBitPattern renders an integer constant as the two's complement hex
// pattern of its width.
func FromBitPattern(i *big.Int, width uint64, signed bool) ID {
	return ID(ir.BitPattern(i, width, signed))
}

func binopID(op ir.BinaryOperator) ID {
	switch op {
	case ir.BinAnd:
		return IDAnd
	case ir.BinAshr:
		return IDAshr
	case ir.BinBitand:
		return IDBitand
	case ir.BinBitnand:
		return IDBitnand
	case ir.BinBitor:
		return IDBitor
	case ir.BinBitxor:
		return IDBitxor
	case ir.BinDiv:
		return IDDiv
	case ir.BinEqual:
		return IDEqual
	case ir.BinGe:
		return IDGe
	case ir.BinGt:
		return IDGt
	case ir.BinIeeeFloatEqual:
		return IDIeeeFloatEqual
	case ir.BinIeeeFloatNotequal:
		return IDIeeeFloatNotequal
	case ir.BinImplies:
		return IDImplies
	case ir.BinLe:
		return IDLe
	case ir.BinLshr:
		return IDLshr
	case ir.BinLt:
		return IDLt
	case ir.BinMinus:
		return IDMinus
	case ir.BinMod:
		return IDMod
	case ir.BinMult:
		return IDMult
	case ir.BinNotequal:
		return IDNotequal
	case ir.BinOr:
		return IDOr
	case ir.BinOverflowMinus:
		return IDOverflowMinus
	case ir.BinOverflowMult:
		return IDOverflowMult
	case ir.BinOverflowPlus:
		return IDOverflowPlus
	case ir.BinOverflowResultMinus:
		return IDOverflowResultMinus
	case ir.BinOverflowResultMult:
		return IDOverflowResultMult
	case ir.BinOverflowResultPlus:
		return IDOverflowResultPlus
	case ir.BinPlus:
		return IDPlus
	case ir.BinROk:
		return IDROk
	case ir.BinRol:
		return IDRol
	case ir.BinRor:
		return IDRor
	case ir.BinShl:
		return IDShl
	case ir.BinVectorEqual:
		return IDVectorEqual
	case ir.BinVectorNotequal:
		return IDVectorNotequal
	case ir.BinVectorGe:
		return IDVectorGe
	case ir.BinVectorGt:
		return IDVectorGt
	case ir.BinVectorLe:
		return IDVectorLe
	case ir.BinVectorLt:
		return IDVectorLt
	case ir.BinXor:
		return IDXor
	default:
		panic("irep: unknown binary operator")
	}
}

func selfOpID(op ir.SelfOperator) ID {
	switch op {
	case ir.SelfPostdecrement:
		return IDPostdecrement
	case ir.SelfPostincrement:
		return IDPostincrement
	case ir.SelfPredecrement:
		return IDPredecrement
	case ir.SelfPreincrement:
		return IDPreincrement
	default:
		panic("irep: unknown self operator")
	}
}

func unopID(op ir.UnaryOperator) ID {
	switch op {
	case ir.UnBitnot:
		return IDBitnot
	case ir.UnBitReverse:
		return IDBitReverse
	case ir.UnBswap:
		return IDBswap
	case ir.UnCountLeadingZeros:
		return IDCountLeadingZeros
	case ir.UnCountTrailingZeros:
		return IDCountTrailingZeros
	case ir.UnIsDynamicObject:
		return IDIsDynamicObject
	case ir.UnIsFinite:
		return IDIsFinite
	case ir.UnNot:
		return IDNot
	case ir.UnObjectSize:
		return IDObjectSize
	case ir.UnPointerObject:
		return IDPointerObject
	case ir.UnPointerOffset:
		return IDPointerOffset
	case ir.UnPopcount:
		return IDPopcount
	case ir.UnUnaryMinus:
		return IDUnaryMinus
	default:
		panic("irep: unknown unary operator")
	}
}
