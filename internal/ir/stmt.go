package ir

import (
	"fmt"

	"gotoc/internal/intern"
)

// StmtKind discriminates the statement variants.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	// StmtAssign is `lhs = rhs;`.
	StmtAssign
	// StmtAssert is `assert(cond);` with a property class and description.
	StmtAssert
	// StmtAssume is `__CPROVER_assume(cond);`.
	StmtAssume
	// StmtAtomicBlock executes its body atomically.
	StmtAtomicBlock
	// StmtBlock is `{ s1; s2; ... }`.
	StmtBlock
	StmtBreak
	StmtContinue
	// StmtDead marks the end of a variable's lifetime.
	StmtDead
	// StmtDecl is `typ name = value;` with an optional initializer.
	StmtDecl
	// StmtDeinit scrubs a place back to an arbitrary value.
	StmtDeinit
	// StmtExpression evaluates an expression for its side effects.
	StmtExpression
	// StmtFor is `for (init; cond; update) { body }`.
	StmtFor
	// StmtFunctionCall is `lhs = function(arguments);` with an optional lhs.
	StmtFunctionCall
	// StmtGoto jumps to a label within the same function.
	StmtGoto
	// StmtIfThenElse is `if (cond) { then } else { else }`.
	StmtIfThenElse
	// StmtLabel names its body as a goto target.
	StmtLabel
	// StmtReturn is `return e;` with an optional value.
	StmtReturn
	StmtSkip
	// StmtSwitch is `switch (control) { cases; default }`.
	StmtSwitch
	// StmtWhile is `while (cond) { body }`.
	StmtWhile
)

// SwitchCase is one `case value: body` arm.
type SwitchCase struct {
	Value *Expr
	Body  *Stmt
}

// Stmt is a statement: an action with no return value. Every statement has
// a location; pass NoLocation() when none is known.
type Stmt struct {
	Kind StmtKind
	Loc  Location

	// Lhs/Rhs carry Assign; Lhs alone carries Dead, Decl, Deinit and the
	// optional result place of FunctionCall.
	Lhs *Expr
	Rhs *Expr
	// Cond carries Assert, Assume, For, IfThenElse and the Switch control.
	Cond *Expr
	// Then/Else carry IfThenElse (Else may be nil); Then alone is the body
	// of For and Label and the Switch default.
	Then *Stmt
	Else *Stmt
	// Body carries Block and AtomicBlock.
	Body []*Stmt
	// Init/Update carry For.
	Init   *Stmt
	Update *Stmt
	// Fn/Args carry FunctionCall.
	Fn   *Expr
	Args []*Expr
	// Label is the Goto destination or the Label name; Msg and
	// PropertyClass annotate Assert.
	Label         intern.StringID
	Msg           intern.StringID
	PropertyClass intern.StringID

	Cases []SwitchCase
}

func newStmt(kind StmtKind, loc Location) *Stmt {
	return &Stmt{Kind: kind, Loc: loc}
}

// Expression returns the expression of an expression statement.
func (s *Stmt) Expression() (*Expr, bool) {
	if s.Kind == StmtExpression {
		return s.Lhs, true
	}
	return nil, false
}

// WithLocation replaces the statement's location.
func (s *Stmt) WithLocation(loc Location) *Stmt {
	s.Loc = loc
	return s
}

// AssignStmt is `lhs = rhs;`.
func AssignStmt(lhs, rhs *Expr, loc Location) *Stmt {
	if !lhs.Typ.Equal(rhs.Typ) {
		panic(fmt.Sprintf("ir: assignment between mismatched types %v and %v", lhs.Typ.Kind, rhs.Typ.Kind))
	}
	s := newStmt(StmtAssign, loc)
	s.Lhs = lhs
	s.Rhs = rhs
	return s
}

// AssertStmt is a check of cond, reported under propertyClass with msg. The
// property annotation lands on the statement's location.
func AssertStmt(cond *Expr, propertyClass, msg intern.StringID, loc Location) *Stmt {
	if !cond.Typ.IsBool() {
		panic("ir: assert condition must be a bool")
	}
	s := newStmt(StmtAssert, loc.WithProperty(msg, propertyClass))
	s.Cond = cond
	s.Msg = msg
	s.PropertyClass = propertyClass
	return s
}

// AssertFalseStmt is an unconditional failure.
func AssertFalseStmt(propertyClass, msg intern.StringID, loc Location) *Stmt {
	return AssertStmt(BoolFalse(), propertyClass, msg, loc)
}

// AssertSanityCheck guards internal invariants of generated code.
func AssertSanityCheck(cond *Expr, msg intern.StringID, strs *intern.Interner, loc Location) *Stmt {
	return AssertStmt(cond, strs.Intern("sanity_check"), msg, loc)
}

// AssumeStmt constrains all executions to those satisfying cond.
func AssumeStmt(cond *Expr, loc Location) *Stmt {
	if !cond.Typ.IsBool() {
		panic("ir: assume condition must be a bool")
	}
	s := newStmt(StmtAssume, loc)
	s.Cond = cond
	return s
}

// AtomicBlock executes stmts as one indivisible step.
func AtomicBlock(stmts []*Stmt, loc Location) *Stmt {
	s := newStmt(StmtAtomicBlock, loc)
	s.Body = stmts
	return s
}

// Block is `{ s1; s2; ... }`.
func Block(stmts []*Stmt, loc Location) *Stmt {
	s := newStmt(StmtBlock, loc)
	s.Body = stmts
	return s
}

func BreakStmt(loc Location) *Stmt    { return newStmt(StmtBreak, loc) }
func ContinueStmt(loc Location) *Stmt { return newStmt(StmtContinue, loc) }

// DeadStmt ends the lifetime of the declared variable.
func DeadStmt(symbol *Expr, loc Location) *Stmt {
	if !symbol.IsSymbol() {
		panic("ir: dead statement needs a symbol")
	}
	s := newStmt(StmtDead, loc)
	s.Lhs = symbol
	return s
}

// Decl is `typ name = value;`; value may be nil.
func Decl(lhs *Expr, value *Expr, loc Location) *Stmt {
	if !lhs.IsSymbol() {
		panic("ir: declaration needs a symbol")
	}
	if value != nil && !lhs.Typ.Equal(value.Typ) {
		panic("ir: declaration initializer type mismatch")
	}
	s := newStmt(StmtDecl, loc)
	s.Lhs = lhs
	s.Rhs = value
	return s
}

// HavocStmt scrubs the place back to an arbitrary value of its type.
func HavocStmt(place *Expr, loc Location) *Stmt {
	s := newStmt(StmtDeinit, loc)
	s.Lhs = place
	return s
}

// ExpressionStmt is `e;`.
func ExpressionStmt(e *Expr, loc Location) *Stmt {
	s := newStmt(StmtExpression, loc)
	s.Lhs = e
	return s
}

// ForLoop is `for (init; cond; update) { body }`.
func ForLoop(init *Stmt, cond *Expr, update *Stmt, body *Stmt, loc Location) *Stmt {
	if !cond.Typ.IsBool() {
		panic("ir: loop condition must be a bool")
	}
	s := newStmt(StmtFor, loc)
	s.Init = init
	s.Cond = cond
	s.Update = update
	s.Then = body
	return s
}

// FunctionCallStmt is `lhs = function(arguments);`; lhs may be nil when the
// result is discarded.
func FunctionCallStmt(lhs *Expr, function *Expr, arguments []*Expr, loc Location) *Stmt {
	if !TypecheckCall(function, arguments) {
		panic("ir: function call does not type check")
	}
	if lhs != nil && !lhs.Typ.Equal(function.Typ.ReturnType()) {
		panic("ir: call result assigned to a mismatched place")
	}
	s := newStmt(StmtFunctionCall, loc)
	s.Lhs = lhs
	s.Fn = function
	s.Args = arguments
	return s
}

// GotoStmt jumps to the named label in the same function body.
func GotoStmt(label intern.StringID, loc Location) *Stmt {
	if label == intern.NoString {
		panic("ir: goto needs a label")
	}
	s := newStmt(StmtGoto, loc)
	s.Label = label
	return s
}

// IfStmt is `if (i) { t } else { e }`; e may be nil.
func IfStmt(i *Expr, t *Stmt, e *Stmt, loc Location) *Stmt {
	s := newStmt(StmtIfThenElse, loc)
	s.Cond = i.CastTo(BoolType())
	s.Then = t
	s.Else = e
	return s
}

// LabelStmt names body as a goto target.
func LabelStmt(label intern.StringID, body *Stmt, loc Location) *Stmt {
	if label == intern.NoString {
		panic("ir: label must not be empty")
	}
	s := newStmt(StmtLabel, loc)
	s.Label = label
	s.Then = body
	return s
}

// ReturnStmt is `return e;`; e may be nil.
func ReturnStmt(e *Expr, loc Location) *Stmt {
	s := newStmt(StmtReturn, loc)
	s.Lhs = e
	return s
}

func Skip(loc Location) *Stmt { return newStmt(StmtSkip, loc) }

// WhileLoop is `while (cond) { body }`.
func WhileLoop(cond *Expr, body *Stmt, loc Location) *Stmt {
	if !cond.Typ.IsBool() {
		panic("ir: loop condition must be a bool")
	}
	s := newStmt(StmtWhile, loc)
	s.Cond = cond
	s.Then = body
	return s
}

// WithLabel wraps the statement as a goto target.
func (s *Stmt) WithLabel(label intern.StringID) *Stmt {
	return LabelStmt(label, s, s.Loc)
}

// SwitchStmt is `switch (control) { cases; default }`; dflt may be nil.
func SwitchStmt(control *Expr, cases []SwitchCase, dflt *Stmt, loc Location) *Stmt {
	for _, c := range cases {
		if !c.Value.Typ.Equal(control.Typ) {
			panic("ir: switch case type does not match the control expression")
		}
	}
	s := newStmt(StmtSwitch, loc)
	s.Cond = control
	s.Cases = cases
	s.Then = dflt
	return s
}
