package transform

import "gotoc/internal/ir"

// Identity rebuilds every symbol without changing it. It exists to exercise
// the default recursion: running it must be a no-op on any well-formed
// table.
type Identity struct {
	Base
}

// RunIdentity copies orig through the default structural recursion.
func RunIdentity(orig *ir.SymbolTable) *ir.SymbolTable {
	t := &Identity{Base: NewBase(ir.NewSymbolTable(orig.MachineModel(), orig.Strings))}
	t.Bind(t)
	return Run(t, orig)
}
