package transform

import (
	"strconv"
	"strings"

	"gotoc/internal/intern"
	"gotoc/internal/ir"
)

// NameTransformer rewrites every identifier in the table into a form that
// is legal as a C identifier, for the source re-emission mode. The mapping
// is functional (one input always maps to the same output within a run) and
// injective (two distinct inputs never collide), which the memo and
// used-name sets enforce.
type NameTransformer struct {
	Base
	mapped map[string]string
	used   map[string]bool
}

// LegalizeNames rewrites all identifiers of orig into legal C identifiers.
func LegalizeNames(orig *ir.SymbolTable) *ir.SymbolTable {
	t := &NameTransformer{
		Base:   NewBase(ir.NewSymbolTable(orig.MachineModel(), orig.Strings)),
		mapped: make(map[string]string),
		used:   make(map[string]bool),
	}
	t.Bind(t)
	return Run(t, orig)
}

// Renamed C keywords that show up as field or variable names.
var reservedNames = map[string]string{
	"case":    "case_",
	"default": "_default",
}

func legalChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') || ch == '_' || ch == '$'
}

func fixName(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, ch := range name {
		if legalChar(ch) {
			sb.WriteRune(ch)
		} else {
			sb.WriteByte('_')
		}
	}
	out := sb.String()
	if out != "" && out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	if replacement, ok := reservedNames[out]; ok {
		return replacement
	}
	return out
}

func (t *NameTransformer) TransformName(id intern.StringID) intern.StringID {
	strs := t.SymbolTable().Strings
	orig := strs.MustLookup(id)
	if orig == "" {
		panic("transform: empty identifier")
	}
	if result, ok := t.mapped[orig]; ok {
		return strs.Intern(result)
	}

	// The aggregate tag marker is meaningful to the checker; keep it
	// verbatim and legalize only the remainder.
	prefix := ""
	name := orig
	if rest, ok := strings.CutPrefix(orig, ir.AggrTagPrefix); ok {
		prefix = ir.AggrTagPrefix
		name = rest
	}

	result := prefix + fixName(name)
	if t.used[result] {
		for i := 0; ; i++ {
			candidate := result + "_" + strconv.Itoa(i)
			if !t.used[candidate] {
				result = candidate
				break
			}
		}
	}

	t.used[result] = true
	t.mapped[orig] = result
	return strs.Intern(result)
}
