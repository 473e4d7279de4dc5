// Package transform rewrites whole symbol tables. Each pass consumes its
// predecessor's table and produces a fresh one; passes never mutate their
// input.
package transform

import (
	"fmt"

	"gotoc/internal/intern"
	"gotoc/internal/ir"
)

// Transformer is a structural-recursion rewrite over a symbol table. Base
// implements every method as "rewrite children, rebuild the node"; a pass
// embeds Base and overrides only the methods whose behavior it changes.
//
// Run drives the traversal: Preprocess, then every symbol of the input
// table (valueless symbols first, so type definitions exist before the
// expressions referencing them), then Postprocess. Postprocess is where a
// pass materializes symbols it accumulated in side tables during the walk.
type Transformer interface {
	// SymbolTable is the output table under construction.
	SymbolTable() *ir.SymbolTable

	Preprocess()
	Postprocess()

	TransformType(*ir.Type) *ir.Type
	TransformParameter(ir.Parameter) ir.Parameter
	TransformComponent(ir.DatatypeComponent) ir.DatatypeComponent
	TransformExpr(*ir.Expr) *ir.Expr
	TransformStmt(*ir.Stmt) *ir.Stmt
	TransformSymbol(*ir.Symbol) *ir.Symbol

	// TransformName rewrites one identifier occurrence: symbol names, tags,
	// field names and labels all pass through here.
	TransformName(intern.StringID) intern.StringID

	// TransformNondet and TransformPoison replace the placeholder
	// expressions for arbitrary and invalid values.
	TransformNondet(typ *ir.Type) *ir.Expr
	TransformPoison(typ *ir.Type) *ir.Expr

	// TransformStructExpr rebuilds a struct literal from its padded
	// component values.
	TransformStructExpr(typ *ir.Type, values []*ir.Expr) *ir.Expr
}

// Run applies the pass to every symbol of orig and returns the pass's
// output table.
func Run(t Transformer, orig *ir.SymbolTable) *ir.SymbolTable {
	t.Preprocess()

	added := make(map[intern.StringID]bool)
	for _, name := range t.SymbolTable().SortedNames() {
		// Output tables may come pre-seeded; leave those entries alone.
		added[name] = true
	}

	// Expr and stmt symbols may reference type symbols (struct tags), so
	// valueless symbols go in first.
	orig.Iter(func(sym *ir.Symbol) {
		if sym.Value == ir.SymbolValueNone && !added[sym.Name] {
			t.SymbolTable().MustInsert(t.TransformSymbol(sym))
			added[sym.Name] = true
		}
	})
	orig.Iter(func(sym *ir.Symbol) {
		if !added[sym.Name] {
			t.SymbolTable().MustInsert(t.TransformSymbol(sym))
		}
	})

	t.Postprocess()
	return t.SymbolTable()
}

// Base is the default structural recursion. The self pointer lets an
// embedding pass's overrides win inside the recursion; call Bind with the
// outermost value before use.
type Base struct {
	self Transformer
	dst  *ir.SymbolTable
}

func NewBase(dst *ir.SymbolTable) Base {
	return Base{dst: dst}
}

// Bind fixes the dynamic receiver for recursive calls.
func (b *Base) Bind(self Transformer) { b.self = self }

func (b *Base) SymbolTable() *ir.SymbolTable { return b.dst }

func (b *Base) Preprocess()  {}
func (b *Base) Postprocess() {}

func (b *Base) TransformName(id intern.StringID) intern.StringID { return id }

func (b *Base) transformOptionalName(id intern.StringID) intern.StringID {
	if id == intern.NoString {
		return id
	}
	return b.self.TransformName(id)
}

func (b *Base) TransformType(t *ir.Type) *ir.Type {
	switch t.Kind {
	case ir.TypeArray:
		return b.self.TransformType(t.Elem).ArrayOf(t.Size)
	case ir.TypeBool:
		return ir.BoolType()
	case ir.TypeCBitField:
		return b.self.TransformType(t.Elem).AsBitfield(t.Width)
	case ir.TypeCInteger:
		return &ir.Type{Kind: ir.TypeCInteger, CInt: t.CInt}
	case ir.TypeCode, ir.TypeVariadicCode:
		parameters := make([]ir.Parameter, len(t.Parameters))
		for i, p := range t.Parameters {
			parameters[i] = b.self.TransformParameter(p)
		}
		ret := b.self.TransformType(t.Ret)
		if t.Kind == ir.TypeVariadicCode {
			return ir.VariadicCode(parameters, ret)
		}
		return ir.Code(parameters, ret)
	case ir.TypeConstructor:
		return ir.ConstructorType()
	case ir.TypeDouble:
		return ir.Double()
	case ir.TypeEmpty:
		return ir.Empty()
	case ir.TypeFlexibleArray:
		return b.self.TransformType(t.Elem).FlexibleArrayOf()
	case ir.TypeFloat:
		return ir.Float()
	case ir.TypeIncompleteStruct:
		return ir.IncompleteStruct(b.self.TransformName(t.Tag))
	case ir.TypeIncompleteUnion:
		return ir.IncompleteUnion(b.self.TransformName(t.Tag))
	case ir.TypeInfiniteArray:
		return b.self.TransformType(t.Elem).InfiniteArrayOf()
	case ir.TypePointer:
		return b.self.TransformType(t.Elem).ToPointer()
	case ir.TypeSignedBV:
		return ir.SignedInt(t.Width)
	case ir.TypeStruct:
		return ir.StructType(b.self.TransformName(t.Tag), b.transformComponents(t.Components))
	case ir.TypeStructTag:
		return ir.StructTagRaw(b.self.TransformName(t.Tag))
	case ir.TypeUnion:
		return ir.UnionType(b.self.TransformName(t.Tag), b.transformComponents(t.Components))
	case ir.TypeUnionTag:
		return ir.UnionTagRaw(b.self.TransformName(t.Tag))
	case ir.TypeUnsignedBV:
		return ir.UnsignedInt(t.Width)
	case ir.TypeVector:
		return ir.Vector(b.self.TransformType(t.Elem), t.Size)
	default:
		panic(fmt.Sprintf("transform: unknown type kind %d", t.Kind))
	}
}

func (b *Base) transformComponents(components []ir.DatatypeComponent) []ir.DatatypeComponent {
	out := make([]ir.DatatypeComponent, len(components))
	for i, c := range components {
		out[i] = b.self.TransformComponent(c)
	}
	return out
}

func (b *Base) TransformComponent(c ir.DatatypeComponent) ir.DatatypeComponent {
	if c.Padding {
		return ir.PaddingComponent(b.self.TransformName(c.Name), c.Bits)
	}
	return ir.Field(b.self.TransformName(c.Name), b.self.TransformType(c.Typ))
}

func (b *Base) TransformParameter(p ir.Parameter) ir.Parameter {
	return b.self.TransformType(p.Typ).AsParameter(
		b.transformOptionalName(p.Identifier),
		b.transformOptionalName(p.BaseName),
	)
}

func (b *Base) transformExprs(exprs []*ir.Expr) []*ir.Expr {
	out := make([]*ir.Expr, len(exprs))
	for i, e := range exprs {
		out[i] = b.self.TransformExpr(e)
	}
	return out
}

func (b *Base) transformStmts(stmts []*ir.Stmt) []*ir.Stmt {
	out := make([]*ir.Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = b.self.TransformStmt(s)
	}
	return out
}

func (b *Base) TransformExpr(e *ir.Expr) *ir.Expr {
	var out *ir.Expr
	switch e.Kind {
	case ir.ExprAddressOf:
		out = b.self.TransformExpr(e.Sub).AddressOf()
	case ir.ExprArray:
		out = ir.ArrayExpr(b.self.TransformType(e.Typ), b.transformExprs(e.Elems))
	case ir.ExprArrayOf:
		typ := b.self.TransformType(e.Typ)
		if !typ.IsArray() {
			panic("transform: array-of literal lost its array type")
		}
		out = b.self.TransformExpr(e.Sub).ArrayConstant(typ.Size)
	case ir.ExprAssign:
		// The front end only produces assignment statements.
		panic("transform: assignment expressions are never constructed")
	case ir.ExprBinOp:
		lhs := b.self.TransformExpr(e.Lhs)
		rhs := b.self.TransformExpr(e.Rhs)
		out = lhs.Binop(e.Op, rhs, b.dst.Strings)
	case ir.ExprBoolConstant:
		out = ir.BoolConstant(e.BoolVal)
	case ir.ExprByteExtract:
		out = b.self.TransformExpr(e.Sub).TransmuteTo(b.self.TransformType(e.Typ), b.self.SymbolTable())
	case ir.ExprCBoolConstant:
		out = ir.CBoolConstant(e.BoolVal)
	case ir.ExprDereference:
		out = b.self.TransformExpr(e.Sub).Dereference()
	case ir.ExprDoubleConstant:
		out = ir.DoubleConstant(e.DoubleVal)
	case ir.ExprEmptyUnion:
		out = ir.EmptyUnionExpr(b.self.TransformType(e.Typ), b.self.SymbolTable())
	case ir.ExprFloatConstant:
		out = ir.FloatConstant(e.FloatVal)
	case ir.ExprFunctionCall:
		out = b.self.TransformExpr(e.Fn).Call(b.transformExprs(e.Args))
	case ir.ExprIf:
		out = b.self.TransformExpr(e.Cond).Ternary(b.self.TransformExpr(e.Then), b.self.TransformExpr(e.Else))
	case ir.ExprIndex:
		out = b.self.TransformExpr(e.Lhs).Index(b.self.TransformExpr(e.Rhs))
	case ir.ExprIntConstant:
		out = ir.IntConstant(e.IntVal, b.self.TransformType(e.Typ))
	case ir.ExprMember:
		out = b.self.TransformExpr(e.Lhs).Member(b.self.TransformName(e.Name), b.self.SymbolTable())
	case ir.ExprNondet:
		out = b.self.TransformNondet(e.Typ)
	case ir.ExprPoison:
		out = b.self.TransformPoison(e.Typ)
	case ir.ExprPointerConstant:
		out = ir.PointerConstant(e.PtrVal, b.self.TransformType(e.Typ))
	case ir.ExprSelfOp:
		sub := b.self.TransformExpr(e.Sub)
		switch e.SelfOp {
		case ir.SelfPostdecrement:
			out = sub.Postdecr()
		case ir.SelfPostincrement:
			out = sub.Postincr()
		case ir.SelfPredecrement:
			out = sub.Predecr()
		case ir.SelfPreincrement:
			out = sub.Preincr()
		}
	case ir.ExprStatementExpression:
		out = ir.StatementExpression(b.transformStmts(e.Stmts), b.self.TransformType(e.Typ))
	case ir.ExprStringConstant:
		out = ir.RawStringConstant(e.Name, b.dst.Strings)
	case ir.ExprStruct:
		out = b.self.TransformStructExpr(e.Typ, e.Elems)
	case ir.ExprSymbol:
		out = ir.SymbolExpr(b.self.TransformName(e.Name), b.self.TransformType(e.Typ))
	case ir.ExprTypecast:
		out = b.self.TransformExpr(e.Sub).CastTo(b.self.TransformType(e.Typ))
	case ir.ExprUnion:
		out = ir.UnionExpr(
			b.self.TransformType(e.Typ),
			b.self.TransformName(e.Name),
			b.self.TransformExpr(e.Sub),
			b.self.SymbolTable(),
		)
	case ir.ExprUnOp:
		sub := b.self.TransformExpr(e.Sub)
		switch e.UnOp {
		case ir.UnBitnot:
			out = sub.Bitnot()
		case ir.UnBitReverse:
			out = sub.Bitreverse()
		case ir.UnBswap:
			out = sub.Bswap()
		case ir.UnIsDynamicObject:
			out = sub.DynamicObject()
		case ir.UnIsFinite:
			out = sub.IsFinite()
		case ir.UnNot:
			out = sub.Not()
		case ir.UnObjectSize:
			out = sub.ObjectSize()
		case ir.UnPointerObject:
			out = sub.PointerObject()
		case ir.UnPointerOffset:
			out = sub.PointerOffset()
		case ir.UnPopcount:
			out = sub.Popcount()
		case ir.UnCountTrailingZeros:
			out = sub.Cttz(e.AllowZero)
		case ir.UnCountLeadingZeros:
			out = sub.Ctlz(e.AllowZero)
		case ir.UnUnaryMinus:
			out = sub.Neg()
		}
	case ir.ExprVector:
		out = ir.VectorExpr(b.self.TransformType(e.Typ), b.transformExprs(e.Elems))
	default:
		panic(fmt.Sprintf("transform: unknown expr kind %d", e.Kind))
	}
	out = out.WithLocation(e.Loc)
	if e.SizeOfAnnot != nil {
		out = out.WithSizeOfAnnotation(b.self.TransformType(e.SizeOfAnnot))
	}
	return out
}

func (b *Base) TransformNondet(typ *ir.Type) *ir.Expr {
	return ir.Nondet(b.self.TransformType(typ))
}

func (b *Base) TransformPoison(typ *ir.Type) *ir.Expr {
	return ir.Poison(b.self.TransformType(typ))
}

func (b *Base) TransformStructExpr(typ *ir.Type, values []*ir.Expr) *ir.Expr {
	transformed := b.self.TransformType(typ)
	if !transformed.IsStructTag() {
		panic("transform: struct literal lost its tag type")
	}
	return ir.StructExprFromPaddedValues(transformed, b.transformExprs(values), b.self.SymbolTable())
}

func (b *Base) transformOptionalExpr(e *ir.Expr) *ir.Expr {
	if e == nil {
		return nil
	}
	return b.self.TransformExpr(e)
}

func (b *Base) transformOptionalStmt(s *ir.Stmt) *ir.Stmt {
	if s == nil {
		return nil
	}
	return b.self.TransformStmt(s)
}

func (b *Base) TransformStmt(s *ir.Stmt) *ir.Stmt {
	var out *ir.Stmt
	none := ir.NoLocation()
	switch s.Kind {
	case ir.StmtAssign:
		out = ir.AssignStmt(b.self.TransformExpr(s.Lhs), b.self.TransformExpr(s.Rhs), none)
	case ir.StmtAssert:
		out = ir.AssertStmt(b.self.TransformExpr(s.Cond), s.PropertyClass, s.Msg, none)
	case ir.StmtAssume:
		out = ir.AssumeStmt(b.self.TransformExpr(s.Cond), none)
	case ir.StmtAtomicBlock:
		out = ir.AtomicBlock(b.transformStmts(s.Body), none)
	case ir.StmtBlock:
		out = ir.Block(b.transformStmts(s.Body), none)
	case ir.StmtBreak:
		out = ir.BreakStmt(none)
	case ir.StmtContinue:
		out = ir.ContinueStmt(none)
	case ir.StmtDead:
		out = ir.DeadStmt(b.self.TransformExpr(s.Lhs), none)
	case ir.StmtDecl:
		out = ir.Decl(b.self.TransformExpr(s.Lhs), b.transformOptionalExpr(s.Rhs), none)
	case ir.StmtDeinit:
		out = ir.HavocStmt(b.self.TransformExpr(s.Lhs), none)
	case ir.StmtExpression:
		out = b.self.TransformExpr(s.Lhs).AsStmt(none)
	case ir.StmtFor:
		out = ir.ForLoop(
			b.self.TransformStmt(s.Init),
			b.self.TransformExpr(s.Cond),
			b.self.TransformStmt(s.Update),
			b.self.TransformStmt(s.Then),
			none,
		)
	case ir.StmtFunctionCall:
		out = ir.FunctionCallStmt(
			b.transformOptionalExpr(s.Lhs),
			b.self.TransformExpr(s.Fn),
			b.transformExprs(s.Args),
			none,
		)
	case ir.StmtGoto:
		out = ir.GotoStmt(b.self.TransformName(s.Label), none)
	case ir.StmtIfThenElse:
		out = ir.IfStmt(b.self.TransformExpr(s.Cond), b.self.TransformStmt(s.Then), b.transformOptionalStmt(s.Else), none)
	case ir.StmtLabel:
		out = b.self.TransformStmt(s.Then).WithLabel(b.self.TransformName(s.Label))
	case ir.StmtReturn:
		out = ir.ReturnStmt(b.transformOptionalExpr(s.Lhs), none)
	case ir.StmtSkip:
		out = ir.Skip(none)
	case ir.StmtSwitch:
		cases := make([]ir.SwitchCase, len(s.Cases))
		for i, c := range s.Cases {
			cases[i] = ir.SwitchCase{
				Value: b.self.TransformExpr(c.Value),
				Body:  b.self.TransformStmt(c.Body),
			}
		}
		out = ir.SwitchStmt(b.self.TransformExpr(s.Cond), cases, b.transformOptionalStmt(s.Then), none)
	case ir.StmtWhile:
		out = ir.WhileLoop(b.self.TransformExpr(s.Cond), b.self.TransformStmt(s.Then), none)
	default:
		panic(fmt.Sprintf("transform: unknown stmt kind %d", s.Kind))
	}
	return out.WithLocation(s.Loc)
}

func (b *Base) TransformSymbol(sym *ir.Symbol) *ir.Symbol {
	out := *sym
	out.Typ = b.self.TransformType(sym.Typ)
	switch sym.Value {
	case ir.SymbolValueExpr:
		out.ValueExpr = b.self.TransformExpr(sym.ValueExpr)
	case ir.SymbolValueStmt:
		out.ValueStmt = b.self.TransformStmt(sym.ValueStmt)
	}
	out.Name = b.self.TransformName(sym.Name)
	out.BaseName = b.transformOptionalName(sym.BaseName)
	out.PrettyName = b.transformOptionalName(sym.PrettyName)
	return &out
}
