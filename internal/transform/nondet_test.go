package transform

import (
	"testing"

	"gotoc/internal/intern"
	"gotoc/internal/ir"
)

func TestNondetRequestsShareOneGenerator(t *testing.T) {
	strs := intern.NewInterner()
	st := newTable(strs)
	typ := ir.UnsignedInt(32)
	a := strs.Intern("a")
	b := strs.Intern("b")
	st.MustInsert(ir.StaticVariable(a, a, typ, ir.NoLocation()).WithValue(ir.Nondet(typ)))
	st.MustInsert(ir.StaticVariable(b, b, typ, ir.NoLocation()).WithValue(ir.Nondet(typ)))

	out := MaterializeNondet(st)

	generator := strs.Intern("non_det_unsigned_bv_32")
	fn := out.MustLookup(generator)
	if fn.Value != ir.SymbolValueStmt {
		t.Fatalf("generator has no body")
	}
	if !out.Contains(strs.Intern("non_det_unsigned_bv_32_ret")) {
		t.Fatalf("generator return variable missing")
	}

	for _, name := range []intern.StringID{a, b} {
		sym := out.MustLookup(name)
		call := sym.ValueExpr
		if call.Kind != ir.ExprFunctionCall {
			t.Fatalf("%q value is kind %d, want a call", strs.MustLookup(name), call.Kind)
		}
		if call.Fn.Name != generator {
			t.Fatalf("%q calls %q", strs.MustLookup(name), strs.MustLookup(call.Fn.Name))
		}
	}
}

func TestNondetGeneratorBodyShape(t *testing.T) {
	strs := intern.NewInterner()
	st := newTable(strs)
	v := strs.Intern("v")
	st.MustInsert(ir.StaticVariable(v, v, ir.CBool(), ir.NoLocation()).WithValue(ir.Nondet(ir.CBool())))

	out := MaterializeNondet(st)
	fn := out.MustLookup(strs.Intern("non_det_c_int_Bool"))
	body := fn.ValueStmt
	if body.Kind != ir.StmtBlock || len(body.Body) != 2 {
		t.Fatalf("generator body should be {decl; return}")
	}
	if body.Body[0].Kind != ir.StmtDecl || body.Body[0].Rhs != nil {
		t.Fatalf("generator local must stay uninitialized")
	}
	if body.Body[1].Kind != ir.StmtReturn {
		t.Fatalf("generator must return its local")
	}
}

func TestPoisonGetsItsOwnGenerator(t *testing.T) {
	strs := intern.NewInterner()
	st := newTable(strs)
	v := strs.Intern("v")
	typ := ir.UnsignedInt(8)
	st.MustInsert(ir.StaticVariable(v, v, typ, ir.NoLocation()).WithValue(ir.Poison(typ)))

	out := MaterializeNondet(st)
	if !out.Contains(strs.Intern("poison_unsigned_bv_8")) {
		t.Fatalf("poison generator missing")
	}
	if out.Contains(strs.Intern("non_det_unsigned_bv_8")) {
		t.Fatalf("poison request must not create a nondet generator")
	}
}

func TestNondetSkipsPaddingValues(t *testing.T) {
	strs := intern.NewInterner()
	st := newTable(strs)
	name := strs.Intern("Padded")
	st.MustInsert(ir.StructSymbol(name, name, []ir.DatatypeComponent{
		ir.Field(strs.Intern("a"), ir.UnsignedInt(8)),
		ir.PaddingComponent(strs.Intern("$pad0"), 24),
		ir.Field(strs.Intern("b"), ir.UnsignedInt(32)),
	}, strs))

	tag := ir.StructTag("Padded", strs)
	value := ir.StructExpr(tag, map[intern.StringID]*ir.Expr{
		strs.Intern("a"): ir.Nondet(ir.UnsignedInt(8)),
		strs.Intern("b"): ir.IntConstantUint(7, ir.UnsignedInt(32)),
	}, st)
	v := strs.Intern("v")
	st.MustInsert(ir.StaticVariable(v, v, tag, ir.NoLocation()).WithValue(value))

	out := MaterializeNondet(st)
	values, ok := out.MustLookup(v).ValueExpr.StructExprValues()
	if !ok || len(values) != 3 {
		t.Fatalf("struct value lost its components")
	}
	if values[0].Kind != ir.ExprFunctionCall {
		t.Fatalf("field nondet was not rewritten")
	}
	if values[1].Kind != ir.ExprNondet {
		t.Fatalf("padding value must pass through untouched, got kind %d", values[1].Kind)
	}
	// Only the field's type got a generator.
	if out.Contains(strs.Intern("non_det_unsigned_bv_24")) {
		t.Fatalf("padding nondet leaked into the generator set")
	}
}

func TestIdentityIsNoOp(t *testing.T) {
	strs := intern.NewInterner()
	st := newTable(strs)
	name := strs.Intern("Point")
	st.MustInsert(ir.StructSymbol(name, name, []ir.DatatypeComponent{
		ir.Field(strs.Intern("x"), ir.Double()),
		ir.Field(strs.Intern("y"), ir.Double()),
	}, strs))
	fnName := strs.Intern("get_x")
	p := strs.Intern("p")
	param := ir.StructTag("Point", strs).ToPointer().AsParameter(p, p)
	body := ir.Block([]*ir.Stmt{
		ir.ReturnStmt(
			ir.SymbolExpr(p, param.Typ).Dereference().Member(strs.Intern("x"), st),
			ir.NoLocation(),
		),
	}, ir.NoLocation())
	st.MustInsert(ir.Function(fnName, ir.Code([]ir.Parameter{param}, ir.Double()), body, fnName, ir.NoLocation()))

	out := RunIdentity(st)
	if out.Len() != st.Len() {
		t.Fatalf("identity changed symbol count: %d vs %d", out.Len(), st.Len())
	}
	fn := out.MustLookup(fnName)
	if !fn.Typ.Equal(st.MustLookup(fnName).Typ) {
		t.Fatalf("identity changed a function type")
	}
	ret := fn.ValueStmt.Body[0]
	if ret.Lhs.Kind != ir.ExprMember || !ret.Lhs.Typ.IsDouble() {
		t.Fatalf("identity changed the body shape")
	}
}
