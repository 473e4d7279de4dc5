package ir

import (
	"math/big"
	"testing"

	"gotoc/internal/intern"
)

func TestCastToSameTypeIsIdentity(t *testing.T) {
	e := IntConstantInt(7, CInt())
	if got := e.CastTo(CInt()); got != e {
		t.Fatalf("cast to the same type should be the identity")
	}
}

func TestCastToBoolBecomesComparison(t *testing.T) {
	e := IntConstantInt(7, CInt()).CastTo(BoolType())
	if e.Kind != ExprBinOp || e.Op != BinNotequal {
		t.Fatalf("cast to bool should lower to != 0, got kind %d", e.Kind)
	}
	if !e.Typ.IsBool() {
		t.Fatalf("comparison type is %v", e.Typ.Kind)
	}
}

func TestPointerMinusPointerIsSigned(t *testing.T) {
	p := SymbolExpr(intern.NoString, CInt().ToPointer())
	q := SymbolExpr(intern.NoString, CInt().ToPointer())
	diff := p.Minus(q)
	if !diff.Typ.Equal(SSizeT()) {
		t.Fatalf("pointer difference type is %v", diff.Typ.Kind)
	}
}

func TestComparisonReturnsBool(t *testing.T) {
	a := IntConstantInt(1, CInt())
	b := IntConstantInt(2, CInt())
	if !a.Lt(b).Typ.IsBool() {
		t.Fatalf("comparison should have bool type")
	}
}

func TestBinopTypeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("adding int to double must panic")
		}
	}()
	IntConstantInt(1, CInt()).Plus(DoubleConstant(1.0))
}

func TestAddressOfRequiresPlace(t *testing.T) {
	sym := SymbolExpr(intern.NoString, CInt())
	if got := sym.AddressOf(); !got.Typ.Equal(CInt().ToPointer()) {
		t.Fatalf("address-of type is %v", got.Typ)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("address of a constant must panic")
		}
	}()
	IntConstantInt(1, CInt()).AddressOf()
}

func TestIndexDecaysThroughPointers(t *testing.T) {
	strs := intern.NewInterner()
	arr := SymbolExpr(strs.Intern("buf"), CChar().ArrayOf(16))
	idx := IntConstantInt(3, SizeT())
	if got := arr.Index(idx); !got.Typ.Equal(CChar()) {
		t.Fatalf("array index type is %v", got.Typ.Kind)
	}
	ptr := SymbolExpr(strs.Intern("p"), CChar().ToPointer())
	e := ptr.Index(idx)
	if e.Kind != ExprDereference {
		t.Fatalf("pointer indexing should lower to *(p + i)")
	}
}

func TestStructExprFillsPaddingWithNondet(t *testing.T) {
	strs := intern.NewInterner()
	st := testTable(strs)
	name := strs.Intern("Padded")
	st.MustInsert(StructSymbol(name, name, []DatatypeComponent{
		Field(strs.Intern("a"), UnsignedInt(8)),
		PaddingComponent(strs.Intern("$pad0"), 24),
		Field(strs.Intern("b"), UnsignedInt(32)),
	}, strs))

	tag := StructTag("Padded", strs)
	e := StructExpr(tag, map[intern.StringID]*Expr{
		strs.Intern("a"): IntConstantInt(1, UnsignedInt(8)),
		strs.Intern("b"): IntConstantInt(2, UnsignedInt(32)),
	}, st)
	values, ok := e.StructExprValues()
	if !ok || len(values) != 3 {
		t.Fatalf("expected 3 component values, got %d", len(values))
	}
	if values[1].Kind != ExprNondet {
		t.Fatalf("padding slot should be nondet, got kind %d", values[1].Kind)
	}
	if !values[1].Typ.Equal(UnsignedInt(24)) {
		t.Fatalf("padding type is %v", values[1].Typ)
	}
}

func TestStructExprMissingFieldPanics(t *testing.T) {
	strs := intern.NewInterner()
	st := testTable(strs)
	name := strs.Intern("Pair")
	st.MustInsert(StructSymbol(name, name, []DatatypeComponent{
		Field(strs.Intern("a"), UnsignedInt(8)),
		Field(strs.Intern("b"), UnsignedInt(8)),
	}, strs))
	defer func() {
		if recover() == nil {
			t.Fatalf("missing field must panic")
		}
	}()
	StructExpr(StructTag("Pair", strs), map[intern.StringID]*Expr{
		strs.Intern("a"): IntConstantInt(1, UnsignedInt(8)),
	}, st)
}

func TestMemberResolvesFieldType(t *testing.T) {
	strs := intern.NewInterner()
	st := testTable(strs)
	name := strs.Intern("Point")
	st.MustInsert(StructSymbol(name, name, []DatatypeComponent{
		Field(strs.Intern("x"), Double()),
	}, strs))
	v := SymbolExpr(strs.Intern("p"), StructTag("Point", strs))
	m := v.Member(strs.Intern("x"), st)
	if !m.Typ.IsDouble() {
		t.Fatalf("member type is %v", m.Typ.Kind)
	}
}

func TestOverflowResultStructType(t *testing.T) {
	strs := intern.NewInterner()
	r := IntConstantInt(1, SignedInt(32)).AddOverflowResult(IntConstantInt(2, SignedInt(32)), strs)
	tag, ok := r.Typ.TagOf()
	if !ok {
		t.Fatalf("overflow result should be a struct tag")
	}
	if got := strs.MustLookup(tag); got != "tag-overflow_result_signed_bv_32" {
		t.Fatalf("overflow struct tag is %q", got)
	}
}

func TestLogicalOpsCastOperands(t *testing.T) {
	a := IntConstantInt(1, CInt())
	b := CBoolConstant(true)
	e := a.And(b)
	if !e.Typ.IsBool() {
		t.Fatalf("and should produce a bool")
	}
	if !e.Lhs.Typ.IsBool() || !e.Rhs.Typ.IsBool() {
		t.Fatalf("operands should be cast to bool first")
	}
}

func TestStringConstantDecays(t *testing.T) {
	strs := intern.NewInterner()
	s := StringConstant(strs.Intern("hello"), strs)
	if !s.Typ.Equal(CChar().ToPointer()) {
		t.Fatalf("string constant type is %v", s.Typ)
	}
	raw := RawStringConstant(strs.Intern("hello"), strs)
	if raw.Typ.Size != 6 {
		t.Fatalf("raw string array length %d, want 6 (trailing NUL)", raw.Typ.Size)
	}
}

func TestTernaryCastsCondition(t *testing.T) {
	c := IntConstantInt(1, CInt())
	e := c.Ternary(IntConstantInt(1, CInt()), IntConstantInt(2, CInt()))
	if !e.Cond.Typ.IsBool() {
		t.Fatalf("ternary condition should be cast to bool")
	}
}

func TestIntConstantCopiesValue(t *testing.T) {
	v := big.NewInt(41)
	e := IntConstant(v, CInt())
	v.Add(v, big.NewInt(1))
	got, _ := e.IntConstantValue()
	if got.Int64() != 41 {
		t.Fatalf("constant aliased its input: %v", got)
	}
}

func TestSideEffectPropagates(t *testing.T) {
	strs := intern.NewInterner()
	pure := IntConstantInt(1, CInt()).Plus(IntConstantInt(2, CInt()))
	if pure.IsSideEffect() {
		t.Fatalf("constant arithmetic has no side effects")
	}
	eff := SymbolExpr(strs.Intern("x"), CInt()).Postincr().Plus(IntConstantInt(1, CInt()))
	if !eff.IsSideEffect() {
		t.Fatalf("x++ inside an addition is a side effect")
	}
}

func TestSaturatingAddShape(t *testing.T) {
	mm := MachineX8664()
	a := SymbolExpr(intern.NoString, SignedInt(8))
	b := SymbolExpr(intern.NoString, SignedInt(8))
	e := a.SaturatingAdd(b, mm)
	if e.Kind != ExprIf {
		t.Fatalf("saturating add should select on the overflow flag")
	}
	if !e.Typ.Equal(SignedInt(8)) {
		t.Fatalf("saturating add type is %v", e.Typ)
	}
}
