package ir

import (
	"testing"

	"gotoc/internal/intern"
)

func TestAssignRejectsMismatchedTypes(t *testing.T) {
	strs := intern.NewInterner()
	lhs := SymbolExpr(strs.Intern("x"), CInt())
	defer func() {
		if recover() == nil {
			t.Fatalf("mismatched assignment must panic")
		}
	}()
	AssignStmt(lhs, DoubleConstant(1.0), NoLocation())
}

func TestAssertUpgradesLocation(t *testing.T) {
	strs := intern.NewInterner()
	loc := NewLocation(strs.Intern("main.rs"), strs.Intern("main"), 3, 1, 3, 9)
	s := AssertStmt(BoolTrue(), strs.Intern("assertion"), strs.Intern("index in bounds"), loc)
	if s.Loc.Kind != LocationProperty {
		t.Fatalf("assert location kind is %d", s.Loc.Kind)
	}
	if s.Loc.Comment != strs.Intern("index in bounds") {
		t.Fatalf("property comment not carried")
	}
}

func TestAssertWithoutPositionFallsBack(t *testing.T) {
	strs := intern.NewInterner()
	s := AssertStmt(BoolFalse(), strs.Intern("assertion"), strs.Intern("unreachable"), NoLocation())
	if s.Loc.Kind != LocationPropertyUnknown {
		t.Fatalf("positionless assert should use the unknown-position variant, got %d", s.Loc.Kind)
	}
}

func TestIfCastsCondition(t *testing.T) {
	s := IfStmt(IntConstantInt(1, CInt()), Skip(NoLocation()), nil, NoLocation())
	if !s.Cond.Typ.IsBool() {
		t.Fatalf("if condition should be cast to bool")
	}
}

func TestSwitchCaseTypeMustMatchControl(t *testing.T) {
	control := SymbolExpr(intern.NoString, CInt())
	defer func() {
		if recover() == nil {
			t.Fatalf("mismatched case type must panic")
		}
	}()
	SwitchStmt(control, []SwitchCase{
		IntConstantInt(1, SignedInt(64)).Case(Skip(NoLocation())),
	}, nil, NoLocation())
}

func TestFunctionCallStmtChecksResultPlace(t *testing.T) {
	strs := intern.NewInterner()
	fn := SymbolExpr(strs.Intern("f"), CodeWithUnnamedParameters([]*Type{CInt()}, CBool()))
	lhs := SymbolExpr(strs.Intern("ok"), CBool())
	s := FunctionCallStmt(lhs, fn, []*Expr{IntConstantInt(1, CInt())}, NoLocation())
	if s.Kind != StmtFunctionCall {
		t.Fatalf("unexpected kind %d", s.Kind)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("mismatched result place must panic")
		}
	}()
	FunctionCallStmt(SymbolExpr(strs.Intern("n"), CInt()), fn, []*Expr{IntConstantInt(1, CInt())}, NoLocation())
}

func TestVariadicCallAcceptsExtras(t *testing.T) {
	strs := intern.NewInterner()
	fn := SymbolExpr(strs.Intern("printf"), VariadicCodeWithUnnamedParameters([]*Type{CChar().ToPointer()}, CInt()))
	args := []*Expr{
		StringConstant(strs.Intern("%d"), strs),
		IntConstantInt(42, CInt()),
	}
	if !TypecheckCall(fn, args) {
		t.Fatalf("variadic call should accept extra arguments")
	}
	if TypecheckCall(fn, nil) {
		t.Fatalf("variadic call still needs its named arguments")
	}
}

func TestHavocKeepsPlace(t *testing.T) {
	strs := intern.NewInterner()
	place := SymbolExpr(strs.Intern("x"), CInt())
	s := place.Havoc(NoLocation())
	if s.Kind != StmtDeinit || s.Lhs != place {
		t.Fatalf("havoc should wrap the place")
	}
}
