package ir

import (
	"errors"
	"testing"

	"gotoc/internal/intern"
)

func TestInsertRejectsDuplicates(t *testing.T) {
	strs := intern.NewInterner()
	st := testTable(strs)
	name := strs.Intern("x")
	if err := st.Insert(Variable(name, name, CInt(), NoLocation())); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := st.Insert(Variable(name, name, CBool(), NoLocation()))
	if !errors.Is(err, ErrDuplicateSymbol) {
		t.Fatalf("second insert: %v", err)
	}
}

func TestInsertCompletesIncompleteStruct(t *testing.T) {
	strs := intern.NewInterner()
	st := testTable(strs)
	name := strs.Intern("List")
	if err := st.Insert(IncompleteStructSymbol(name, strs)); err != nil {
		t.Fatalf("forward declaration: %v", err)
	}
	// A self-referential struct needs the forward declaration first.
	complete := StructSymbol(name, name, []DatatypeComponent{
		Field(strs.Intern("next"), StructTag("List", strs).ToPointer()),
	}, strs)
	if err := st.Insert(complete); err != nil {
		t.Fatalf("completing insert: %v", err)
	}
	sym := st.MustLookup(AggrTagName("List", strs))
	if sym.Typ.Kind != TypeStruct {
		t.Fatalf("table still holds the incomplete type")
	}
	// Completing twice is a duplicate again.
	if err := st.Insert(complete); !errors.Is(err, ErrDuplicateSymbol) {
		t.Fatalf("re-completion: %v", err)
	}
}

func TestLookupComponentsFollowsTags(t *testing.T) {
	strs := intern.NewInterner()
	st := testTable(strs)
	name := strs.Intern("Point")
	st.MustInsert(StructSymbol(name, name, []DatatypeComponent{
		Field(strs.Intern("x"), Double()),
		Field(strs.Intern("y"), Double()),
	}, strs))
	comps, err := st.LookupComponents(StructTag("Point", strs))
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(comps) != 2 {
		t.Fatalf("got %d components", len(comps))
	}
}

func TestLookupUnresolvedTag(t *testing.T) {
	strs := intern.NewInterner()
	st := testTable(strs)
	_, err := st.LookupComponents(StructTag("Ghost", strs))
	if !errors.Is(err, ErrUnresolvedTag) {
		t.Fatalf("lookup of missing tag: %v", err)
	}
	_, err = st.LookupFieldType(StructTag("Ghost", strs), strs.Intern("f"))
	if !errors.Is(err, ErrUnresolvedTag) {
		t.Fatalf("field lookup of missing tag: %v", err)
	}
}

func TestIterIsSortedByName(t *testing.T) {
	strs := intern.NewInterner()
	st := testTable(strs)
	for _, n := range []string{"zeta", "alpha", "mid"} {
		id := strs.Intern(n)
		st.MustInsert(Variable(id, id, CInt(), NoLocation()))
	}
	var order []string
	st.Iter(func(s *Symbol) {
		order = append(order, strs.MustLookup(s.Name))
	})
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("iteration order %v, want %v", order, want)
		}
	}
}

func TestEnsureBuiltinIsIdempotent(t *testing.T) {
	strs := intern.NewInterner()
	st := testTable(strs)
	name := strs.Intern("__CPROVER_assume")
	a := st.EnsureBuiltin(name, []*Type{BoolType()}, Empty())
	b := st.EnsureBuiltin(name, []*Type{BoolType()}, Empty())
	if a != b {
		t.Fatalf("re-declaration created a second symbol")
	}
}

func TestUpdateWithDefinition(t *testing.T) {
	strs := intern.NewInterner()
	st := testTable(strs)
	name := strs.Intern("f")
	st.MustInsert(Function(name, CodeWithUnnamedParameters(nil, Empty()), nil, name, NoLocation()))
	st.UpdateWithDefinition(name, Block(nil, NoLocation()))
	sym := st.MustLookup(name)
	if sym.Value != SymbolValueStmt || sym.ValueStmt == nil {
		t.Fatalf("definition was not attached")
	}
}
