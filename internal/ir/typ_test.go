package ir

import (
	"testing"

	"gotoc/internal/intern"
)

func testTable(strs *intern.Interner) *SymbolTable {
	return NewSymbolTable(MachineX8664(), strs)
}

func TestTypeEqualIgnoresParameterNames(t *testing.T) {
	strs := intern.NewInterner()
	a := Code([]Parameter{
		CInt().AsParameter(strs.Intern("x"), strs.Intern("x")),
	}, Empty())
	b := Code([]Parameter{
		CInt().AsParameter(strs.Intern("y"), intern.NoString),
	}, Empty())
	if !a.Equal(b) {
		t.Fatalf("parameter names should not affect type equality")
	}
}

func TestCompletesMatchesTags(t *testing.T) {
	strs := intern.NewInterner()
	name := strs.Intern("Pair")
	complete := StructType(name, []DatatypeComponent{
		Field(strs.Intern("a"), CInt()),
	})
	if !complete.Completes(IncompleteStruct(name)) {
		t.Fatalf("complete struct should complete its forward declaration")
	}
	if complete.Completes(IncompleteStruct(strs.Intern("Other"))) {
		t.Fatalf("completion across different tags")
	}
	if complete.Completes(IncompleteUnion(name)) {
		t.Fatalf("struct completing a union")
	}
}

func TestSizeofInBits(t *testing.T) {
	strs := intern.NewInterner()
	st := testTable(strs)
	name := strs.Intern("Pair")
	sym := StructSymbol(name, name, []DatatypeComponent{
		Field(strs.Intern("lo"), UnsignedInt(32)),
		PaddingComponent(strs.Intern("$pad0"), 32),
		Field(strs.Intern("hi"), UnsignedInt(64)),
	}, strs)
	if err := st.Insert(sym); err != nil {
		t.Fatalf("insert: %v", err)
	}

	tag := StructTag("Pair", strs)
	if got := tag.SizeofInBits(st); got != 128 {
		t.Fatalf("struct size = %d, want 128", got)
	}
	if got := UnsignedInt(64).ArrayOf(4).SizeofInBits(st); got != 256 {
		t.Fatalf("array size = %d, want 256", got)
	}
	if got := Empty().SizeofInBits(st); got != 0 {
		t.Fatalf("empty size = %d, want 0", got)
	}

	uname := strs.Intern("Either")
	usym := UnionSymbol(uname, uname, []DatatypeComponent{
		Field(strs.Intern("small"), UnsignedInt(8)),
		Field(strs.Intern("big"), UnsignedInt(64)),
	}, strs)
	if err := st.Insert(usym); err != nil {
		t.Fatalf("insert union: %v", err)
	}
	if got := UnionTag("Either", strs).SizeofInBits(st); got != 64 {
		t.Fatalf("union size = %d, want 64 (largest member)", got)
	}
}

func TestStructFieldTypesSkipsPaddingAndSorts(t *testing.T) {
	strs := intern.NewInterner()
	st := testTable(strs)
	name := strs.Intern("Pair")
	sym := StructSymbol(name, name, []DatatypeComponent{
		Field(strs.Intern("z"), UnsignedInt(32)),
		PaddingComponent(strs.Intern("$pad0"), 32),
		Field(strs.Intern("a"), UnsignedInt(64)),
	}, strs)
	if err := st.Insert(sym); err != nil {
		t.Fatalf("insert: %v", err)
	}

	fields := StructTag("Pair", strs).StructFieldTypes(st)
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2 (padding skipped)", len(fields))
	}
	if strs.MustLookup(fields[0].Name) != "a" || strs.MustLookup(fields[1].Name) != "z" {
		t.Fatalf("fields not sorted by name: %q, %q",
			strs.MustLookup(fields[0].Name), strs.MustLookup(fields[1].Name))
	}
}

func TestNativeWidth(t *testing.T) {
	mm := MachineX8664()
	cases := []struct {
		typ   *Type
		width uint64
	}{
		{SizeT(), 64},
		{SSizeT(), 64},
		{CInt(), 32},
		{CChar(), 8},
		{CBool(), 8},
		{VoidPointer(), 64},
		{SignedInt(128), 128},
	}
	for _, c := range cases {
		got, ok := c.typ.NativeWidth(mm)
		if !ok || got != c.width {
			t.Fatalf("width of %v = %d, %v; want %d", c.typ.Kind, got, ok, c.width)
		}
	}
	if _, ok := Empty().NativeWidth(mm); ok {
		t.Fatalf("empty type has no native width")
	}
	// The checker's single-bit bool is not a machine integer; only the
	// C-level bool carries a machine width.
	if _, ok := BoolType().NativeWidth(mm); ok {
		t.Fatalf("plain bool has no native width")
	}
}

func TestSignednessFollowsMachine(t *testing.T) {
	x86 := MachineX8664()
	arm := MachineAarch64()
	if CChar().IsUnsigned(x86) {
		t.Fatalf("char is signed on x86_64")
	}
	if !CChar().IsUnsigned(arm) {
		t.Fatalf("char is unsigned on aarch64")
	}
	if !SizeT().IsUnsigned(x86) || SSizeT().IsUnsigned(x86) {
		t.Fatalf("size_t/ssize_t signedness wrong")
	}
}

func TestTransparentTypeUnwraps(t *testing.T) {
	strs := intern.NewInterner()
	st := testTable(strs)
	name := strs.Intern("Wrapper")
	sym := StructSymbol(name, name, []DatatypeComponent{
		Field(strs.Intern("inner"), UnsignedInt(32)),
	}, strs)
	if err := st.Insert(sym); err != nil {
		t.Fatalf("insert: %v", err)
	}
	tag := StructTag("Wrapper", strs)
	if !tag.IsTransparentType(st) {
		t.Fatalf("single-field struct should be transparent")
	}
	inner, ok := tag.UnwrapTransparentType(st)
	if !ok || !inner.Equal(UnsignedInt(32)) {
		t.Fatalf("unwrap gave %v, %v", inner, ok)
	}
}

func TestToIdentifierMangling(t *testing.T) {
	strs := intern.NewInterner()
	cases := []struct {
		typ  *Type
		want string
	}{
		{BoolType(), "bool"},
		{CBool(), "c_int_Bool"},
		{CChar(), "c_int_Char"},
		{CInt(), "c_int_Int"},
		{SizeT(), "c_int_SizeT"},
		{SSizeT(), "c_int_SSizeT"},
		{Double(), "double"},
		{Float(), "float"},
		{Empty(), "empty"},
		{SignedInt(32), "signed_bv_32"},
		{UnsignedInt(8), "unsigned_bv_8"},
		{UnsignedInt(16).ArrayOf(4), "array_of_4_unsigned_bv_16"},
		{CInt().ToPointer(), "pointer_to_c_int_Int"},
		{CInt().InfiniteArrayOf(), "infinite_array_of_c_int_Int"},
		{CInt().FlexibleArrayOf(), "flexarray_of_c_int_Int"},
		{StructTag("Pair", strs), "struct_tag_tag-Pair"},
		{UnionTag("Either", strs), "union_tag_tag-Either"},
		{Vector(UnsignedInt(8), 16), "vec_of_16_unsigned_bv_8"},
		{CodeWithUnnamedParameters([]*Type{CInt(), CBool()}, Empty()), "code_from_c_int_Int_c_int_Bool_to_empty"},
		{VariadicCodeWithUnnamedParameters([]*Type{CInt()}, CInt()), "variadic_code_from_c_int_Int_to_c_int_Int"},
	}
	for _, c := range cases {
		if got := c.typ.ToIdentifier(strs); got != c.want {
			t.Fatalf("identifier = %q, want %q", got, c.want)
		}
	}
}

func TestDuplicateComponentsPanic(t *testing.T) {
	strs := intern.NewInterner()
	defer func() {
		if recover() == nil {
			t.Fatalf("duplicate component names must panic")
		}
	}()
	StructType(strs.Intern("Bad"), []DatatypeComponent{
		Field(strs.Intern("x"), CInt()),
		Field(strs.Intern("x"), CBool()),
	})
}
