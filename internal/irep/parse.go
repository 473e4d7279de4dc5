package irep

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"

	"gotoc/internal/intern"
	"gotoc/internal/ir"
)

// ErrUnsupportedIrep marks a tree the partial inverse cannot absorb. The
// inverse covers only what reconciliation needs; anything else fails fast
// instead of guessing.
var ErrUnsupportedIrep = errors.New("unsupported irep")

// ErrMalformedJSON marks input that is not a valid tree at all.
var ErrMalformedJSON = errors.New("malformed irep json")

// ParseIrep reads one tree from JSON, preserving keyed-child order.
func ParseIrep(r io.Reader) (*Irep, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	out, err := parseIrepValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformedJSON)
	}
	return out, nil
}

func expectDelim(dec *json.Decoder, want rune) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if d, ok := tok.(json.Delim); !ok || rune(d) != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrMalformedJSON, want, tok)
	}
	return nil
}

func parseIrepValue(dec *json.Decoder) (*Irep, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	out := &Irep{}
	sawID := false
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: non-string key", ErrMalformedJSON)
		}
		switch key {
		case "id":
			id, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
			}
			s, ok := id.(string)
			if !ok {
				return nil, fmt.Errorf("%w: id must be a string", ErrMalformedJSON)
			}
			out.ID = ID(s)
			sawID = true
		case "sub":
			if err := expectDelim(dec, '['); err != nil {
				return nil, err
			}
			for dec.More() {
				child, err := parseIrepValue(dec)
				if err != nil {
					return nil, err
				}
				out.Sub = append(out.Sub, child)
			}
			if err := expectDelim(dec, ']'); err != nil {
				return nil, err
			}
		case "namedSub":
			if err := expectDelim(dec, '{'); err != nil {
				return nil, err
			}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
				}
				name, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("%w: non-string namedSub key", ErrMalformedJSON)
				}
				child, err := parseIrepValue(dec)
				if err != nil {
					return nil, err
				}
				out.Named = append(out.Named, NamedSub{Key: ID(name), Value: child})
			}
			if err := expectDelim(dec, '}'); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: unknown key %q", ErrMalformedJSON, key)
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if !sawID {
		return nil, fmt.Errorf("%w: node without an id", ErrMalformedJSON)
	}
	return out, nil
}

// ParseSymbolTable reads a whole symbol-table document back into its wire
// form, preserving keyed-child order inside every tree.
func ParseSymbolTable(r io.Reader) (*SymbolTable, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if key, ok := tok.(string); !ok || key != "symbolTable" {
		return nil, fmt.Errorf("%w: expected symbolTable, got %v", ErrMalformedJSON, tok)
	}
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	out := &SymbolTable{}
	for dec.More() {
		nameTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
		name, ok := nameTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: non-string symbol name", ErrMalformedJSON)
		}
		sym, err := parseSymbolValue(dec)
		if err != nil {
			return nil, fmt.Errorf("symbol %q: %w", name, err)
		}
		out.Symbols = append(out.Symbols, sym)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformedJSON)
	}
	return out, nil
}

func parseSymbolValue(dec *json.Decoder) (Symbol, error) {
	var sym Symbol
	if err := expectDelim(dec, '{'); err != nil {
		return sym, err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return sym, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
		key, ok := tok.(string)
		if !ok {
			return sym, fmt.Errorf("%w: non-string key", ErrMalformedJSON)
		}
		switch key {
		case "type", "value", "location":
			tree, err := parseIrepValue(dec)
			if err != nil {
				return sym, err
			}
			switch key {
			case "type":
				sym.Typ = tree
			case "value":
				sym.Value = tree
			case "location":
				sym.Location = tree
			}
		case "name", "module", "baseName", "prettyName", "mode":
			valTok, err := dec.Token()
			if err != nil {
				return sym, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
			}
			s, ok := valTok.(string)
			if !ok {
				return sym, fmt.Errorf("%w: %s must be a string", ErrMalformedJSON, key)
			}
			switch key {
			case "name":
				sym.Name = s
			case "module":
				sym.Module = s
			case "baseName":
				sym.BaseName = s
			case "prettyName":
				sym.PrettyName = s
			case "mode":
				sym.Mode = s
			}
		default:
			flag, ok := symbolFlag(&sym, key)
			if !ok {
				return sym, fmt.Errorf("%w: unknown key %q", ErrMalformedJSON, key)
			}
			valTok, err := dec.Token()
			if err != nil {
				return sym, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
			}
			b, ok := valTok.(bool)
			if !ok {
				return sym, fmt.Errorf("%w: %s must be a bool", ErrMalformedJSON, key)
			}
			*flag = b
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return sym, err
	}
	if sym.Typ == nil || sym.Value == nil || sym.Location == nil {
		return sym, fmt.Errorf("%w: symbol missing type, value or location", ErrMalformedJSON)
	}
	return sym, nil
}

func symbolFlag(sym *Symbol, key string) (*bool, bool) {
	switch key {
	case "isType":
		return &sym.IsType, true
	case "isMacro":
		return &sym.IsMacro, true
	case "isExported":
		return &sym.IsExported, true
	case "isInput":
		return &sym.IsInput, true
	case "isOutput":
		return &sym.IsOutput, true
	case "isStateVar":
		return &sym.IsStateVar, true
	case "isProperty":
		return &sym.IsProperty, true
	case "isStaticLifetime":
		return &sym.IsStaticLifetime, true
	case "isThreadLocal":
		return &sym.IsThreadLocal, true
	case "isLvalue":
		return &sym.IsLvalue, true
	case "isFileLocal":
		return &sym.IsFileLocal, true
	case "isExtern":
		return &sym.IsExtern, true
	case "isVolatile":
		return &sym.IsVolatile, true
	case "isParameter":
		return &sym.IsParameter, true
	case "isAuxiliary":
		return &sym.IsAuxiliary, true
	case "isWeak":
		return &sym.IsWeak, true
	default:
		return nil, false
	}
}

///////////////////////////////////////////////////////////////////////////
// Type reconciliation
///////////////////////////////////////////////////////////////////////////

func namedUint(i *Irep, key ID) (uint64, error) {
	node, ok := i.Lookup(key)
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", ErrUnsupportedIrep, key)
	}
	v, err := strconv.ParseUint(string(node.ID), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a decimal integer", ErrUnsupportedIrep, key)
	}
	return v, nil
}

// TypeFromIrep reabsorbs a lowered type back into the typed representation.
// This is a partial inverse: it covers the scalar, pointer, array and tag
// shapes that appear when reconciling checker-produced fragments against
// the table, and fails with ErrUnsupportedIrep on everything else.
func TypeFromIrep(i *Irep, mm *ir.MachineModel, strs *intern.Interner) (*ir.Type, error) {
	switch i.ID {
	case IDBool:
		return ir.BoolType(), nil
	case IDEmpty:
		return ir.Empty(), nil
	case IDCBool:
		return ir.CBool(), nil
	case IDSignedbv:
		// Machine integers lower to plain bitvectors, so the inverse can
		// only recover a width; the C-level kind is gone.
		width, err := namedUint(i, IDWidth)
		if err != nil {
			return nil, err
		}
		return ir.SignedInt(width), nil
	case IDUnsignedbv:
		width, err := namedUint(i, IDWidth)
		if err != nil {
			return nil, err
		}
		return ir.UnsignedInt(width), nil
	case IDFloatbv:
		width, err := namedUint(i, IDWidth)
		if err != nil {
			return nil, err
		}
		switch width {
		case mm.FloatWidth:
			return ir.Float(), nil
		case mm.DoubleWidth:
			return ir.Double(), nil
		}
		return nil, fmt.Errorf("%w: floatbv of width %d", ErrUnsupportedIrep, width)
	case IDPointer:
		if len(i.Sub) != 1 {
			return nil, fmt.Errorf("%w: pointer without an element type", ErrUnsupportedIrep)
		}
		elem, err := TypeFromIrep(i.Sub[0], mm, strs)
		if err != nil {
			return nil, err
		}
		return elem.ToPointer(), nil
	case IDArray:
		if len(i.Sub) != 1 {
			return nil, fmt.Errorf("%w: array without an element type", ErrUnsupportedIrep)
		}
		elem, err := TypeFromIrep(i.Sub[0], mm, strs)
		if err != nil {
			return nil, err
		}
		size, ok := i.Lookup(IDSize)
		if !ok {
			return nil, fmt.Errorf("%w: array without a size", ErrUnsupportedIrep)
		}
		if size.ID == IDInfinity {
			return elem.InfiniteArrayOf(), nil
		}
		if size.IsNil() {
			return elem.FlexibleArrayOf(), nil
		}
		n, err := constantUint(size, mm)
		if err != nil {
			return nil, err
		}
		return elem.ArrayOf(n), nil
	case IDStructTag:
		tag, ok := i.Lookup(IDIdentifier)
		if !ok {
			return nil, fmt.Errorf("%w: struct tag without an identifier", ErrUnsupportedIrep)
		}
		return ir.StructTagRaw(strs.Intern(string(tag.ID))), nil
	case IDUnionTag:
		tag, ok := i.Lookup(IDIdentifier)
		if !ok {
			return nil, fmt.Errorf("%w: union tag without an identifier", ErrUnsupportedIrep)
		}
		return ir.UnionTagRaw(strs.Intern(string(tag.ID))), nil
	default:
		return nil, fmt.Errorf("%w: type id %q", ErrUnsupportedIrep, i.ID)
	}
}

// constantUint reads the value of a lowered unsigned integer constant.
func constantUint(i *Irep, mm *ir.MachineModel) (uint64, error) {
	if i.ID != IDConstant {
		return 0, fmt.Errorf("%w: expected a constant, got %q", ErrUnsupportedIrep, i.ID)
	}
	value, ok := i.Lookup(IDValue)
	if !ok {
		return 0, fmt.Errorf("%w: constant without a value", ErrUnsupportedIrep)
	}
	bits, ok := new(big.Int).SetString(string(value.ID), 16)
	if !ok {
		return 0, fmt.Errorf("%w: constant value %q is not hex", ErrUnsupportedIrep, value.ID)
	}
	if !bits.IsUint64() {
		return 0, fmt.Errorf("%w: constant does not fit in 64 bits", ErrUnsupportedIrep)
	}
	return bits.Uint64(), nil
}
