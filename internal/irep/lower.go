package irep

import (
	"fmt"
	"math/big"

	"gotoc/internal/intern"
	"gotoc/internal/ir"
)

// Lowerer translates the typed representation into exchange trees. Widths
// and endianness come from the machine model; identifiers resolve through
// the interner the table was built with.
type Lowerer struct {
	mm   *ir.MachineModel
	strs *intern.Interner
}

func NewLowerer(mm *ir.MachineModel, strs *intern.Interner) *Lowerer {
	return &Lowerer{mm: mm, strs: strs}
}

// Symbol is the flat wire form of one symbol table entry.
type Symbol struct {
	Typ      *Irep
	Value    *Irep
	Location *Irep

	Name       string
	Module     string
	BaseName   string
	PrettyName string
	Mode       string

	IsType           bool
	IsMacro          bool
	IsExported       bool
	IsInput          bool
	IsOutput         bool
	IsStateVar       bool
	IsProperty       bool
	IsStaticLifetime bool
	IsThreadLocal    bool
	IsLvalue         bool
	IsFileLocal      bool
	IsExtern         bool
	IsVolatile       bool
	IsParameter      bool
	IsAuxiliary      bool
	IsWeak           bool
}

// SymbolTable is the wire form of a whole program, name-sorted so its
// serialization is deterministic.
type SymbolTable struct {
	Symbols []Symbol
}

// LowerSymbolTable lowers every symbol of st, sorted by name.
func LowerSymbolTable(st *ir.SymbolTable) *SymbolTable {
	l := NewLowerer(st.MachineModel(), st.Strings)
	out := &SymbolTable{Symbols: make([]Symbol, 0, st.Len())}
	st.Iter(func(sym *ir.Symbol) {
		out.Symbols = append(out.Symbols, l.LowerSymbol(sym))
	})
	return out
}

func (l *Lowerer) LowerSymbol(sym *ir.Symbol) Symbol {
	value := Nil()
	switch sym.Value {
	case ir.SymbolValueExpr:
		value = l.LowerExpr(sym.ValueExpr)
	case ir.SymbolValueStmt:
		value = l.LowerStmt(sym.ValueStmt)
	}
	return Symbol{
		Typ:      l.LowerType(sym.Typ),
		Value:    value,
		Location: l.LowerLocation(sym.Location),

		Name:       l.strs.MustLookup(sym.Name),
		Module:     l.strs.MustLookup(sym.Module),
		BaseName:   l.strs.MustLookup(sym.BaseName),
		PrettyName: l.strs.MustLookup(sym.PrettyName),
		Mode:       sym.Mode,

		IsType:           sym.IsType,
		IsMacro:          sym.IsMacro,
		IsExported:       sym.IsExported,
		IsInput:          sym.IsInput,
		IsOutput:         sym.IsOutput,
		IsStateVar:       sym.IsStateVar,
		IsProperty:       sym.IsProperty,
		IsStaticLifetime: sym.IsStaticLifetime,
		IsThreadLocal:    sym.IsThreadLocal,
		IsLvalue:         sym.IsLvalue,
		IsFileLocal:      sym.IsFileLocal,
		IsExtern:         sym.IsExtern,
		IsVolatile:       sym.IsVolatile,
		IsParameter:      sym.IsParameter,
		IsAuxiliary:      sym.IsAuxiliary,
		IsWeak:           sym.IsWeak,
	}
}

///////////////////////////////////////////////////////////////////////////
// Locations
///////////////////////////////////////////////////////////////////////////

// LowerLocation renders a source location; unknown locations lower to nil.
func (l *Lowerer) LowerLocation(loc ir.Location) *Irep {
	switch loc.Kind {
	case ir.LocationNone:
		return Nil()
	case ir.LocationBuiltin:
		out := JustNamedSub(nil).
			WithNamedSub(IDFunction, JustStringID(l.strs.MustLookup(loc.Function)))
		if loc.StartLine != 0 {
			out = out.WithNamedSub(IDLine, JustUintID(loc.StartLine))
		}
		return out
	case ir.LocationLoc:
		return l.positionIrep(loc)
	case ir.LocationProperty:
		return l.positionIrep(loc).
			WithNamedSub(IDComment, JustStringID(l.strs.MustLookup(loc.Comment))).
			WithNamedSub(IDPropertyClass, JustStringID(l.strs.MustLookup(loc.PropertyClass)))
	case ir.LocationPropertyUnknown:
		return JustNamedSub(nil).
			WithNamedSub(IDComment, JustStringID(l.strs.MustLookup(loc.Comment))).
			WithNamedSub(IDPropertyClass, JustStringID(l.strs.MustLookup(loc.PropertyClass)))
	default:
		panic(fmt.Sprintf("irep: unknown location kind %d", loc.Kind))
	}
}

func (l *Lowerer) positionIrep(loc ir.Location) *Irep {
	out := JustNamedSub(nil).
		WithNamedSub(IDFile, JustStringID(l.strs.MustLookup(loc.File)))
	if loc.Function != intern.NoString {
		out = out.WithNamedSub(IDFunction, JustStringID(l.strs.MustLookup(loc.Function)))
	}
	if loc.StartLine != 0 {
		out = out.WithNamedSub(IDLine, JustUintID(loc.StartLine))
	}
	if loc.StartCol != 0 {
		out = out.WithNamedSub(IDColumn, JustUintID(loc.StartCol))
	}
	return out
}

///////////////////////////////////////////////////////////////////////////
// Types
///////////////////////////////////////////////////////////////////////////

func (l *Lowerer) LowerType(t *ir.Type) *Irep {
	switch t.Kind {
	case ir.TypeArray:
		return (&Irep{ID: IDArray, Sub: []*Irep{l.LowerType(t.Elem)}}).
			WithNamedSub(IDSize, l.LowerExpr(ir.IntConstantUint(t.Size, ir.SizeT())))
	case ir.TypeBool:
		return JustID(IDBool)
	case ir.TypeCBitField:
		return (&Irep{ID: IDCBitField, Sub: []*Irep{l.LowerType(t.Elem)}}).
			WithNamedSub(IDWidth, JustUintID(t.Width))
	case ir.TypeCInteger:
		return l.cIntegerIrep(t.CInt)
	case ir.TypeCode:
		return l.codeIrep(t, false)
	case ir.TypeConstructor:
		return JustID(IDConstructor)
	case ir.TypeDouble:
		return JustID(IDFloatbv).
			WithNamedSub(IDF, JustUintID(52)).
			WithNamedSub(IDWidth, JustUintID(l.mm.DoubleWidth)).
			WithNamedSub(IDCCType, JustID(IDDouble))
	case ir.TypeEmpty:
		return JustID(IDEmpty)
	case ir.TypeFlexibleArray:
		return (&Irep{ID: IDArray, Sub: []*Irep{l.LowerType(t.Elem)}}).
			WithNamedSub(IDSize, Nil())
	case ir.TypeFloat:
		return JustID(IDFloatbv).
			WithNamedSub(IDF, JustUintID(23)).
			WithNamedSub(IDWidth, JustUintID(l.mm.FloatWidth)).
			WithNamedSub(IDCCType, JustID(IDFloat))
	case ir.TypeIncompleteStruct:
		return JustID(IDStruct).
			WithNamedSub(IDTag, JustStringID(l.strs.MustLookup(t.Tag))).
			WithNamedSub(IDIncomplete, One())
	case ir.TypeIncompleteUnion:
		return JustID(IDUnion).
			WithNamedSub(IDTag, JustStringID(l.strs.MustLookup(t.Tag))).
			WithNamedSub(IDIncomplete, One())
	case ir.TypeInfiniteArray:
		return (&Irep{ID: IDArray, Sub: []*Irep{l.LowerType(t.Elem)}}).
			WithNamedSub(IDSize, JustID(IDInfinity))
	case ir.TypePointer:
		return (&Irep{ID: IDPointer, Sub: []*Irep{l.LowerType(t.Elem)}}).
			WithNamedSub(IDWidth, JustUintID(l.mm.PointerWidth))
	case ir.TypeSignedBV:
		return JustID(IDSignedbv).WithNamedSub(IDWidth, JustUintID(t.Width))
	case ir.TypeStruct:
		return JustID(IDStruct).
			WithNamedSub(IDTag, JustStringID(l.strs.MustLookup(t.Tag))).
			WithNamedSub(IDComponents, l.componentsIrep(t.Components))
	case ir.TypeStructTag:
		return JustID(IDStructTag).
			WithNamedSub(IDIdentifier, JustStringID(l.strs.MustLookup(t.Tag)))
	case ir.TypeUnion:
		return JustID(IDUnion).
			WithNamedSub(IDTag, JustStringID(l.strs.MustLookup(t.Tag))).
			WithNamedSub(IDComponents, l.componentsIrep(t.Components))
	case ir.TypeUnionTag:
		return JustID(IDUnionTag).
			WithNamedSub(IDIdentifier, JustStringID(l.strs.MustLookup(t.Tag)))
	case ir.TypeUnsignedBV:
		return JustID(IDUnsignedbv).WithNamedSub(IDWidth, JustUintID(t.Width))
	case ir.TypeVariadicCode:
		return l.codeIrep(t, true)
	case ir.TypeVector:
		return (&Irep{ID: IDVector, Sub: []*Irep{l.LowerType(t.Elem)}}).
			WithNamedSub(IDSize, l.LowerExpr(ir.IntConstantUint(t.Size, ir.SizeT())))
	default:
		panic(fmt.Sprintf("irep: cannot lower type kind %d", t.Kind))
	}
}

func (l *Lowerer) cIntegerIrep(kind ir.CIntKind) *Irep {
	switch kind {
	case ir.CIntBool:
		return JustID(IDCBool).WithNamedSub(IDWidth, JustUintID(l.mm.BoolWidth))
	case ir.CIntChar:
		if l.mm.CharIsUnsigned {
			return JustID(IDUnsignedbv).WithNamedSub(IDWidth, JustUintID(l.mm.CharWidth))
		}
		return JustID(IDSignedbv).WithNamedSub(IDWidth, JustUintID(l.mm.CharWidth))
	case ir.CIntInt:
		return JustID(IDSignedbv).WithNamedSub(IDWidth, JustUintID(l.mm.IntWidth))
	case ir.CIntSizeT:
		return JustID(IDUnsignedbv).WithNamedSub(IDWidth, JustUintID(l.mm.PointerWidth))
	case ir.CIntSSizeT:
		return JustID(IDSignedbv).WithNamedSub(IDWidth, JustUintID(l.mm.PointerWidth))
	default:
		panic("irep: unknown machine integer kind")
	}
}

func (l *Lowerer) codeIrep(t *ir.Type, variadic bool) *Irep {
	params := make([]*Irep, 0, len(t.Parameters)+1)
	for _, p := range t.Parameters {
		params = append(params, l.parameterIrep(p))
	}
	if variadic {
		params = append(params, JustID(IDEllipsis))
	}
	return JustID(IDCode).
		WithNamedSub(IDParameters, JustSub(params)).
		WithNamedSub(IDReturnType, l.LowerType(t.Ret))
}

func (l *Lowerer) parameterIrep(p ir.Parameter) *Irep {
	out := JustID(IDParameter)
	if p.Identifier != intern.NoString {
		out = out.WithNamedSub(IDCIdentifier, JustStringID(l.strs.MustLookup(p.Identifier)))
	}
	if p.BaseName != intern.NoString {
		out = out.WithNamedSub(IDCBaseName, JustStringID(l.strs.MustLookup(p.BaseName)))
	}
	return out.WithType(l.LowerType(p.Typ))
}

func (l *Lowerer) componentsIrep(components []ir.DatatypeComponent) *Irep {
	subs := make([]*Irep, 0, len(components))
	for _, c := range components {
		comp := JustNamedSub(nil).
			WithNamedSub(IDName, JustStringID(l.strs.MustLookup(c.Name))).
			WithType(l.LowerType(c.ComponentTyp()))
		if c.Padding {
			comp = comp.WithNamedSub(IDCIsPadding, One())
		}
		subs = append(subs, comp)
	}
	return JustSub(subs)
}

///////////////////////////////////////////////////////////////////////////
// Expressions
///////////////////////////////////////////////////////////////////////////

func (l *Lowerer) LowerExpr(e *ir.Expr) *Irep {
	out := l.exprValueIrep(e)
	if e.SizeOfAnnot != nil {
		out = out.WithNamedSub(IDCCSizeofType, l.LowerType(e.SizeOfAnnot))
	}
	return out.WithLocation(l.LowerLocation(e.Loc)).WithType(l.LowerType(e.Typ))
}

func (l *Lowerer) lowerExprs(es []*ir.Expr) []*Irep {
	out := make([]*Irep, len(es))
	for i, e := range es {
		out[i] = l.LowerExpr(e)
	}
	return out
}

func (l *Lowerer) exprValueIrep(e *ir.Expr) *Irep {
	switch e.Kind {
	case ir.ExprAddressOf:
		return &Irep{ID: IDAddressOf, Sub: []*Irep{l.LowerExpr(e.Sub)}}
	case ir.ExprArray:
		return &Irep{ID: IDArray, Sub: l.lowerExprs(e.Elems)}
	case ir.ExprArrayOf:
		return &Irep{ID: IDArrayOf, Sub: []*Irep{l.LowerExpr(e.Sub)}}
	case ir.ExprAssign:
		return sideEffectIrep(IDAssign, []*Irep{l.LowerExpr(e.Lhs), l.LowerExpr(e.Rhs)})
	case ir.ExprBinOp:
		return &Irep{ID: binopID(e.Op), Sub: []*Irep{l.LowerExpr(e.Lhs), l.LowerExpr(e.Rhs)}}
	case ir.ExprBoolConstant:
		value := JustID(IDFalse)
		if e.BoolVal {
			value = JustID(IDTrue)
		}
		return JustID(IDConstant).WithNamedSub(IDValue, value)
	case ir.ExprByteExtract:
		id := IDByteExtractLittleEndian
		if l.mm.IsBigEndian {
			id = IDByteExtractBigEndian
		}
		offset := ir.IntConstantUint(e.Offset, ir.SSizeT())
		return &Irep{ID: id, Sub: []*Irep{l.LowerExpr(e.Sub), l.LowerExpr(offset)}}
	case ir.ExprCBoolConstant:
		bit := big.NewInt(0)
		if e.BoolVal {
			bit = big.NewInt(1)
		}
		return JustID(IDConstant).
			WithNamedSub(IDValue, JustBitPatternID(bit, l.mm.BoolWidth, false))
	case ir.ExprDereference:
		return &Irep{ID: IDDereference, Sub: []*Irep{l.LowerExpr(e.Sub)}}
	case ir.ExprDoubleConstant:
		bits := new(big.Int).SetUint64(ir.ToBits64(e.DoubleVal))
		return JustID(IDConstant).
			WithNamedSub(IDValue, JustBitPatternID(bits, l.mm.DoubleWidth, false))
	case ir.ExprEmptyUnion:
		return JustID(IDEmptyUnion)
	case ir.ExprFloatConstant:
		bits := new(big.Int).SetUint64(uint64(ir.ToBits32(e.FloatVal)))
		return JustID(IDConstant).
			WithNamedSub(IDValue, JustBitPatternID(bits, l.mm.FloatWidth, false))
	case ir.ExprFunctionCall:
		return sideEffectIrep(IDFunctionCall,
			[]*Irep{l.LowerExpr(e.Fn), l.argumentsIrep(e.Args)})
	case ir.ExprIf:
		return &Irep{ID: IDIf, Sub: []*Irep{
			l.LowerExpr(e.Cond), l.LowerExpr(e.Then), l.LowerExpr(e.Else),
		}}
	case ir.ExprIndex:
		return &Irep{ID: IDIndex, Sub: []*Irep{l.LowerExpr(e.Lhs), l.LowerExpr(e.Rhs)}}
	case ir.ExprIntConstant:
		width, ok := e.Typ.NativeWidth(l.mm)
		if !ok {
			w, bitfield := e.Typ.WidthOf()
			if !bitfield {
				panic("irep: integer constant of a widthless type")
			}
			width = w
		}
		return JustID(IDConstant).
			WithNamedSub(IDValue, JustBitPatternID(e.IntVal, width, e.Typ.IsSigned(l.mm)))
	case ir.ExprMember:
		return (&Irep{ID: IDMember, Sub: []*Irep{l.LowerExpr(e.Lhs)}}).
			WithNamedSub(IDCLvalue, One()).
			WithNamedSub(IDComponentName, JustStringID(l.strs.MustLookup(e.Name)))
	case ir.ExprNondet, ir.ExprPoison:
		return sideEffectIrep(IDNondet, nil)
	case ir.ExprPointerConstant:
		if e.PtrVal == 0 {
			return JustID(IDConstant).WithNamedSub(IDValue, JustID(IDNull))
		}
		bits := new(big.Int).SetUint64(e.PtrVal)
		return JustID(IDConstant).
			WithNamedSub(IDValue, JustBitPatternID(bits, l.mm.PointerWidth, false))
	case ir.ExprSelfOp:
		return sideEffectIrep(selfOpID(e.SelfOp), []*Irep{l.LowerExpr(e.Sub)})
	case ir.ExprStatementExpression:
		block := l.LowerStmt(ir.Block(e.Stmts, e.Loc))
		return sideEffectIrep(IDStatementExpression, []*Irep{block})
	case ir.ExprStringConstant:
		return JustID(IDStringConstant).
			WithNamedSub(IDValue, JustStringID(l.strs.MustLookup(e.Name)))
	case ir.ExprStruct:
		return &Irep{ID: IDStruct, Sub: l.lowerExprs(e.Elems)}
	case ir.ExprSymbol:
		return JustID(IDSymbol).
			WithNamedSub(IDIdentifier, JustStringID(l.strs.MustLookup(e.Name)))
	case ir.ExprTypecast:
		return &Irep{ID: IDTypecast, Sub: []*Irep{l.LowerExpr(e.Sub)}}
	case ir.ExprUnion:
		return (&Irep{ID: IDUnion, Sub: []*Irep{l.LowerExpr(e.Sub)}}).
			WithNamedSub(IDComponentName, JustStringID(l.strs.MustLookup(e.Name)))
	case ir.ExprUnOp:
		return l.unopIrep(e)
	case ir.ExprVector:
		return &Irep{ID: IDVector, Sub: l.lowerExprs(e.Elems)}
	default:
		panic(fmt.Sprintf("irep: cannot lower expr kind %d", e.Kind))
	}
}

func (l *Lowerer) unopIrep(e *ir.Expr) *Irep {
	out := &Irep{ID: unopID(e.UnOp), Sub: []*Irep{l.LowerExpr(e.Sub)}}
	switch e.UnOp {
	case ir.UnBswap, ir.UnBitReverse:
		out = out.WithNamedSub(IDBitsPerByte, JustUintID(8))
	case ir.UnCountLeadingZeros, ir.UnCountTrailingZeros:
		// The checker's bounds check rejects zero inputs; disable it when
		// the operation is defined on zero.
		check := One()
		if e.AllowZero {
			check = Zero()
		}
		out = out.WithNamedSub(IDCBoundsCheck, check)
	}
	return out
}

func (l *Lowerer) argumentsIrep(args []*ir.Expr) *Irep {
	return &Irep{ID: IDArguments, Sub: l.lowerExprs(args)}
}

func sideEffectIrep(kind ID, ops []*Irep) *Irep {
	return (&Irep{ID: IDSideEffect, Sub: ops}).
		WithNamedSub(IDStatement, JustID(kind))
}

///////////////////////////////////////////////////////////////////////////
// Statements
///////////////////////////////////////////////////////////////////////////

func (l *Lowerer) LowerStmt(s *ir.Stmt) *Irep {
	return l.stmtBodyIrep(s).WithLocation(l.LowerLocation(s.Loc))
}

func (l *Lowerer) lowerStmts(ss []*ir.Stmt) []*Irep {
	out := make([]*Irep, len(ss))
	for i, s := range ss {
		out[i] = l.LowerStmt(s)
	}
	return out
}

func (l *Lowerer) stmtBodyIrep(s *ir.Stmt) *Irep {
	switch s.Kind {
	case ir.StmtAssign:
		return codeIrep(IDAssign, []*Irep{l.LowerExpr(s.Lhs), l.LowerExpr(s.Rhs)})
	case ir.StmtAssert:
		// The failure description and property class ride on the source
		// location, which LowerStmt attaches.
		return codeIrep(IDAssert, []*Irep{l.LowerExpr(s.Cond)})
	case ir.StmtAssume:
		return codeIrep(IDAssume, []*Irep{l.LowerExpr(s.Cond)})
	case ir.StmtAtomicBlock:
		body := make([]*Irep, 0, len(s.Body)+2)
		body = append(body, codeIrep(IDAtomicBegin, nil))
		body = append(body, l.lowerStmts(s.Body)...)
		body = append(body, codeIrep(IDAtomicEnd, nil))
		return codeIrep(IDBlock, body)
	case ir.StmtBlock:
		return codeIrep(IDBlock, l.lowerStmts(s.Body))
	case ir.StmtBreak:
		return codeIrep(IDBreak, nil)
	case ir.StmtContinue:
		return codeIrep(IDContinue, nil)
	case ir.StmtDead:
		return codeIrep(IDDead, []*Irep{l.LowerExpr(s.Lhs)})
	case ir.StmtDecl:
		ops := []*Irep{l.LowerExpr(s.Lhs)}
		if s.Rhs != nil {
			ops = append(ops, l.LowerExpr(s.Rhs))
		}
		return codeIrep(IDDecl, ops)
	case ir.StmtDeinit:
		// Scrubbing a place is an assignment from a fresh arbitrary value.
		nondet := sideEffectIrep(IDNondet, nil).WithType(l.LowerType(s.Lhs.Typ))
		return codeIrep(IDAssign, []*Irep{l.LowerExpr(s.Lhs), nondet}).
			WithComment(JustStringID("deinit"))
	case ir.StmtExpression:
		return codeIrep(IDExpression, []*Irep{l.LowerExpr(s.Lhs)})
	case ir.StmtFor:
		return codeIrep(IDFor, []*Irep{
			l.LowerStmt(s.Init), l.LowerExpr(s.Cond), l.LowerStmt(s.Update), l.LowerStmt(s.Then),
		})
	case ir.StmtFunctionCall:
		lhs := Nil()
		if s.Lhs != nil {
			lhs = l.LowerExpr(s.Lhs)
		}
		return codeIrep(IDFunctionCall, []*Irep{lhs, l.LowerExpr(s.Fn), l.argumentsIrep(s.Args)})
	case ir.StmtGoto:
		return codeIrep(IDGoto, nil).
			WithNamedSub(IDDestination, JustStringID(l.strs.MustLookup(s.Label)))
	case ir.StmtIfThenElse:
		els := Nil()
		if s.Else != nil {
			els = l.LowerStmt(s.Else)
		}
		return codeIrep(IDIfthenelse, []*Irep{l.LowerExpr(s.Cond), l.LowerStmt(s.Then), els})
	case ir.StmtLabel:
		return codeIrep(IDLabel, []*Irep{l.LowerStmt(s.Then)}).
			WithNamedSub(IDLabel, JustStringID(l.strs.MustLookup(s.Label)))
	case ir.StmtReturn:
		var ops []*Irep
		if s.Lhs != nil {
			ops = []*Irep{l.LowerExpr(s.Lhs)}
		}
		return codeIrep(IDReturn, ops)
	case ir.StmtSkip:
		return codeIrep(IDSkip, nil)
	case ir.StmtSwitch:
		arms := make([]*Irep, 0, len(s.Cases)+1)
		for _, c := range s.Cases {
			arms = append(arms, codeIrep(IDSwitchCase, []*Irep{l.LowerExpr(c.Value), l.LowerStmt(c.Body)}))
		}
		if s.Then != nil {
			arms = append(arms, switchDefaultIrep(l.LowerStmt(s.Then)))
		}
		return codeIrep(IDSwitch, []*Irep{l.LowerExpr(s.Cond), codeIrep(IDBlock, arms)})
	case ir.StmtWhile:
		return codeIrep(IDWhile, []*Irep{l.LowerExpr(s.Cond), l.LowerStmt(s.Then)})
	default:
		panic(fmt.Sprintf("irep: cannot lower stmt kind %d", s.Kind))
	}
}

func codeIrep(statement ID, ops []*Irep) *Irep {
	return (&Irep{ID: IDCode, Sub: ops}).
		WithNamedSub(IDStatement, JustID(statement))
}

func switchDefaultIrep(body *Irep) *Irep {
	return codeIrep(IDSwitchCase, []*Irep{Nil(), body}).
		WithNamedSub(IDDefault, One())
}
