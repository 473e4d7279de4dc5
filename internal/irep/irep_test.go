package irep

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gotoc/internal/intern"
	"gotoc/internal/ir"
)

func newLowerer() (*Lowerer, *intern.Interner) {
	strs := intern.NewInterner()
	return NewLowerer(ir.MachineX8664(), strs), strs
}

func mustJSON(t *testing.T, i *Irep) string {
	t.Helper()
	b, err := i.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestLeafJSONOmitsEmptyChildren(t *testing.T) {
	got := mustJSON(t, JustID(IDBool))
	if got != `{"id":"bool"}` {
		t.Fatalf("leaf serialized as %s", got)
	}
}

func TestNamedSubKeepsInsertionOrder(t *testing.T) {
	node := JustID(IDSignedbv).
		WithNamedSub(IDWidth, JustUintID(32)).
		WithNamedSub(IDCCType, JustID(IDSignedInt))
	got := mustJSON(t, node)
	want := `{"id":"signedbv","namedSub":{"width":{"id":"32"},"#c_type":{"id":"signed_int"}}}`
	if got != want {
		t.Fatalf("got %s\nwant %s", got, want)
	}
}

func TestWithNamedSubSkipsNil(t *testing.T) {
	node := JustID(IDCode).WithNamedSub(IDReturnType, nil)
	if len(node.Named) != 0 {
		t.Fatalf("nil value was recorded")
	}
}

func TestIntConstantLowersToBitPattern(t *testing.T) {
	l, _ := newLowerer()
	got := l.LowerExpr(ir.IntConstantInt(-2, ir.SignedInt(32)))
	value, ok := got.Lookup(IDValue)
	if !ok || value.ID != "FFFFFFFE" {
		t.Fatalf("value lowered to %+v", value)
	}
	typ, ok := got.Lookup(IDType)
	if !ok || typ.ID != IDSignedbv {
		t.Fatalf("type lowered to %+v", typ)
	}
}

func TestCIntLowersWithNativeWidth(t *testing.T) {
	l, _ := newLowerer()
	got := l.LowerExpr(ir.IntConstantInt(-1, ir.CInt()))
	value, _ := got.Lookup(IDValue)
	if value.ID != "FFFFFFFF" {
		t.Fatalf("c_int constant lowered to %q", value.ID)
	}
	typ, _ := got.Lookup(IDType)
	if typ.ID != IDSignedbv {
		t.Fatalf("c_int type lowered to %q", typ.ID)
	}
	width, _ := typ.Lookup(IDWidth)
	if width.ID != "32" {
		t.Fatalf("c_int width lowered to %q", width.ID)
	}
	// The C-level kind leaves no annotation; machine integers are plain
	// bitvectors on the wire.
	if _, ok := typ.Lookup(IDCCType); ok {
		t.Fatalf("c_int type carries a #c_type annotation")
	}
}

func TestMemberNamedSubOrder(t *testing.T) {
	l, strs := newLowerer()
	st := ir.NewSymbolTable(ir.MachineX8664(), strs)
	sym := ir.StructSymbol(strs.Intern("Pair"), strs.Intern("Pair"), []ir.DatatypeComponent{
		ir.Field(strs.Intern("a"), ir.UnsignedInt(8)),
	}, strs)
	if err := st.Insert(sym); err != nil {
		t.Fatalf("insert: %v", err)
	}
	base := ir.SymbolExpr(strs.Intern("p"), ir.StructTag("Pair", strs))
	got := l.exprValueIrep(base.Member(strs.Intern("a"), st))

	if len(got.Named) != 2 {
		t.Fatalf("member has %d namedSubs", len(got.Named))
	}
	// #lvalue is inserted before component_name; the serializer preserves
	// insertion order, so swapping them changes the wire bytes.
	if got.Named[0].Key != IDCLvalue || got.Named[1].Key != IDComponentName {
		t.Fatalf("namedSub order is %q, %q", got.Named[0].Key, got.Named[1].Key)
	}
}

func TestNullPointerLowersToNULL(t *testing.T) {
	l, _ := newLowerer()
	got := l.LowerExpr(ir.Null(ir.VoidPointer()))
	value, _ := got.Lookup(IDValue)
	if value.ID != IDNull {
		t.Fatalf("null lowered to %q", value.ID)
	}
	typ, _ := got.Lookup(IDType)
	if typ.ID != IDPointer {
		t.Fatalf("null type lowered to %q", typ.ID)
	}
	width, _ := typ.Lookup(IDWidth)
	if width.ID != "64" {
		t.Fatalf("pointer width lowered to %q", width.ID)
	}
}

func TestAssertCarriesPropertyOnLocation(t *testing.T) {
	l, strs := newLowerer()
	loc := ir.NewLocation(strs.Intern("lib.rs"), strs.Intern("main"), 7, 3, 7, 20)
	s := ir.AssertStmt(ir.BoolFalse(), strs.Intern("assertion"), strs.Intern("index out of bounds"), loc)

	got := l.LowerStmt(s)
	stmt, _ := got.Lookup(IDStatement)
	if stmt.ID != IDAssert {
		t.Fatalf("lowered as %q", stmt.ID)
	}
	srcLoc, ok := got.Lookup(IDCSourceLocation)
	if !ok {
		t.Fatalf("assert has no source location")
	}
	comment, _ := srcLoc.Lookup(IDComment)
	class, _ := srcLoc.Lookup(IDPropertyClass)
	if comment.ID != "index out of bounds" || class.ID != "assertion" {
		t.Fatalf("property annotation lowered to %q / %q", comment.ID, class.ID)
	}
}

func TestDeinitLowersToNondetAssign(t *testing.T) {
	l, strs := newLowerer()
	place := ir.SymbolExpr(strs.Intern("x"), ir.UnsignedInt(8))
	got := l.LowerStmt(ir.HavocStmt(place, ir.NoLocation()))

	stmt, _ := got.Lookup(IDStatement)
	if stmt.ID != IDAssign {
		t.Fatalf("deinit lowered as %q", stmt.ID)
	}
	if len(got.Sub) != 2 {
		t.Fatalf("deinit assign has %d operands", len(got.Sub))
	}
	rhs := got.Sub[1]
	if rhs.ID != IDSideEffect {
		t.Fatalf("deinit rhs is %q", rhs.ID)
	}
	effect, _ := rhs.Lookup(IDStatement)
	if effect.ID != IDNondet {
		t.Fatalf("deinit rhs effect is %q", effect.ID)
	}
	comment, ok := got.Lookup(IDComment)
	if !ok || comment.ID != "deinit" {
		t.Fatalf("deinit comment lowered to %+v", comment)
	}
}

func TestSwitchDefaultArm(t *testing.T) {
	l, _ := newLowerer()
	control := ir.IntConstantInt(1, ir.CInt())
	s := ir.SwitchStmt(control,
		[]ir.SwitchCase{ir.IntConstantInt(0, ir.CInt()).Case(ir.Skip(ir.NoLocation()))},
		ir.Skip(ir.NoLocation()), ir.NoLocation())

	got := l.LowerStmt(s)
	arms := got.Sub[1]
	if len(arms.Sub) != 2 {
		t.Fatalf("switch lowered %d arms", len(arms.Sub))
	}
	dflt := arms.Sub[1]
	if marker, ok := dflt.Lookup(IDDefault); !ok || marker.ID != ID1 {
		t.Fatalf("default arm is not marked")
	}
	if !dflt.Sub[0].IsNil() {
		t.Fatalf("default arm carries a case value")
	}
}

func TestAtomicBlockBrackets(t *testing.T) {
	l, _ := newLowerer()
	got := l.LowerStmt(ir.AtomicBlock([]*ir.Stmt{ir.Skip(ir.NoLocation())}, ir.NoLocation()))
	stmt, _ := got.Lookup(IDStatement)
	if stmt.ID != IDBlock || len(got.Sub) != 3 {
		t.Fatalf("atomic block lowered as %q with %d statements", stmt.ID, len(got.Sub))
	}
	begin, _ := got.Sub[0].Lookup(IDStatement)
	end, _ := got.Sub[2].Lookup(IDStatement)
	if begin.ID != IDAtomicBegin || end.ID != IDAtomicEnd {
		t.Fatalf("atomic markers lowered as %q / %q", begin.ID, end.ID)
	}
}

func TestVariadicCodeCarriesEllipsis(t *testing.T) {
	l, _ := newLowerer()
	typ := ir.VariadicCodeWithUnnamedParameters([]*ir.Type{ir.CInt()}, ir.CInt())
	got := l.LowerType(typ)
	params, ok := got.Lookup(IDParameters)
	if !ok || len(params.Sub) != 2 {
		t.Fatalf("variadic parameters lowered to %+v", params)
	}
	if params.Sub[1].ID != IDEllipsis {
		t.Fatalf("trailing parameter is %q", params.Sub[1].ID)
	}
}

func TestStructTypeComponents(t *testing.T) {
	l, strs := newLowerer()
	typ := ir.StructType(strs.Intern("Pair"), []ir.DatatypeComponent{
		ir.Field(strs.Intern("a"), ir.UnsignedInt(8)),
		ir.PaddingComponent(strs.Intern("$pad0"), 24),
	})
	got := l.LowerType(typ)
	comps, _ := got.Lookup(IDComponents)
	if len(comps.Sub) != 2 {
		t.Fatalf("struct lowered %d components", len(comps.Sub))
	}
	if _, ok := comps.Sub[0].Lookup(IDCIsPadding); ok {
		t.Fatalf("field marked as padding")
	}
	if marker, ok := comps.Sub[1].Lookup(IDCIsPadding); !ok || marker.ID != ID1 {
		t.Fatalf("padding not marked")
	}
}

func TestSymbolJSONKeyOrder(t *testing.T) {
	l, strs := newLowerer()
	name := strs.Intern("x")
	sym := l.LowerSymbol(ir.StaticVariable(name, name, ir.CInt(), ir.NoLocation()))
	b, err := sym.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(b)
	keys := []string{
		`"type"`, `"value"`, `"location"`, `"name"`, `"module"`, `"baseName"`,
		`"prettyName"`, `"mode"`, `"isType"`, `"isMacro"`, `"isExported"`,
		`"isInput"`, `"isOutput"`, `"isStateVar"`, `"isProperty"`,
		`"isStaticLifetime"`, `"isThreadLocal"`, `"isLvalue"`, `"isFileLocal"`,
		`"isExtern"`, `"isVolatile"`, `"isParameter"`, `"isAuxiliary"`, `"isWeak"`,
	}
	last := -1
	for _, key := range keys {
		idx := strings.Index(got, key)
		if idx < 0 {
			t.Fatalf("key %s missing from %s", key, got)
		}
		if idx < last {
			t.Fatalf("key %s out of order in %s", key, got)
		}
		last = idx
	}
	if !strings.Contains(got, `"isStaticLifetime":true`) {
		t.Fatalf("static lifetime flag lost: %s", got)
	}
}

func TestSymbolTableJSONIsNameSorted(t *testing.T) {
	strs := intern.NewInterner()
	st := ir.NewSymbolTable(ir.MachineX8664(), strs)
	for _, name := range []string{"zeta", "alpha"} {
		id := strs.Intern(name)
		st.MustInsert(ir.StaticVariable(id, id, ir.CInt(), ir.NoLocation()))
	}
	b, err := LowerSymbolTable(st).MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(b)
	if !strings.HasPrefix(got, `{"symbolTable":{`) {
		t.Fatalf("missing symbolTable wrapper: %s", got)
	}
	if strings.Index(got, `"alpha"`) > strings.Index(got, `"zeta"`) {
		t.Fatalf("symbols not name-sorted: %s", got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	l, strs := newLowerer()
	loc := ir.NewLocation(strs.Intern("main.rs"), strs.Intern("f"), 3, 1, 3, 9)
	expr := ir.SymbolExpr(strs.Intern("x"), ir.CInt()).
		Plus(ir.IntConstantInt(1, ir.CInt())).
		WithLocation(loc)
	orig := l.LowerExpr(expr)

	b, err := orig.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := ParseIrep(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !back.Equal(orig) {
		t.Fatalf("round trip changed the tree")
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := ParseIrep(strings.NewReader(`{"id":"bool","extra":1}`))
	if !errors.Is(err, ErrMalformedJSON) {
		t.Fatalf("got %v, want malformed json", err)
	}
}

func TestTypeFromIrepInvertsScalars(t *testing.T) {
	l, strs := newLowerer()
	mm := ir.MachineX8664()
	for _, typ := range []*ir.Type{
		ir.BoolType(), ir.Empty(), ir.CBool(),
		ir.SignedInt(128), ir.UnsignedInt(16),
		ir.Float(), ir.Double(),
		ir.UnsignedInt(32).ToPointer(), ir.UnsignedInt(8).ArrayOf(4),
		ir.StructTag("List", strs),
	} {
		back, err := TypeFromIrep(l.LowerType(typ), mm, strs)
		if err != nil {
			t.Fatalf("inverse of %v: %v", typ.Kind, err)
		}
		if !back.Equal(typ) {
			t.Fatalf("inverse of %v came back as %v", typ.Kind, back.Kind)
		}
	}
}

// Machine integers lower to plain bitvectors, so the inverse recovers only
// width and signedness.
func TestTypeFromIrepWidensMachineIntegers(t *testing.T) {
	l, strs := newLowerer()
	mm := ir.MachineX8664()
	cases := []struct {
		typ  *ir.Type
		want *ir.Type
	}{
		{ir.CInt(), ir.SignedInt(32)},
		{ir.CChar(), ir.SignedInt(8)},
		{ir.SizeT(), ir.UnsignedInt(64)},
		{ir.SSizeT(), ir.SignedInt(64)},
	}
	for _, c := range cases {
		back, err := TypeFromIrep(l.LowerType(c.typ), mm, strs)
		if err != nil {
			t.Fatalf("inverse of %v: %v", c.typ.CInt, err)
		}
		if !back.Equal(c.want) {
			t.Fatalf("inverse of %v came back as %v, want %v", c.typ.CInt, back.Kind, c.want.Kind)
		}
	}
}

func TestTypeFromIrepFailsFast(t *testing.T) {
	l, strs := newLowerer()
	typ := ir.StructType(strs.Intern("S"), []ir.DatatypeComponent{
		ir.Field(strs.Intern("a"), ir.CInt()),
	})
	_, err := TypeFromIrep(l.LowerType(typ), ir.MachineX8664(), strs)
	if !errors.Is(err, ErrUnsupportedIrep) {
		t.Fatalf("got %v, want unsupported irep", err)
	}
}
