// Package driver sequences the rewrite passes and the export step, and runs
// multi-file operations in parallel.
package driver

import (
	"fmt"
	"io"

	"gotoc/internal/ir"
	"gotoc/internal/irep"
	"gotoc/internal/transform"
)

// Pass is one whole-table rewrite. Passes never mutate their input; they
// build a fresh table sharing the input's interner.
type Pass struct {
	Name string
	Run  func(*ir.SymbolTable) *ir.SymbolTable
}

// EmissionPasses is the pipeline that legalizes a table for source
// re-emission: names first, so the generator functions the nondet pass
// synthesizes are built over already-legal type identifiers.
func EmissionPasses() []Pass {
	return []Pass{
		{Name: "legalize-names", Run: transform.LegalizeNames},
		{Name: "materialize-nondet", Run: transform.MaterializeNondet},
	}
}

// RunPasses applies passes in order.
func RunPasses(st *ir.SymbolTable, passes []Pass) *ir.SymbolTable {
	for _, p := range passes {
		st = p.Run(st)
	}
	return st
}

// ExportBytes lowers the table and serializes it in the checker's wire form.
func ExportBytes(st *ir.SymbolTable) []byte {
	doc, err := irep.LowerSymbolTable(st).MarshalJSON()
	if err != nil {
		// The ordered writer only fails on unmarshalable strings, which
		// cannot happen.
		panic(fmt.Errorf("export: %w", err))
	}
	return doc
}

// Export lowers the table and writes the document to w.
func Export(st *ir.SymbolTable, w io.Writer) error {
	_, err := w.Write(ExportBytes(st))
	return err
}

// ExportCached returns the cached document for key when the cache holds one
// for this table's target, lowering and storing otherwise. A cache write
// failure is returned alongside the freshly computed document.
func ExportCached(cache *irep.ExportCache, key irep.Digest, st *ir.SymbolTable) ([]byte, error) {
	arch := st.MachineModel().Architecture
	if doc, ok, err := cache.Get(key, arch); err != nil {
		return nil, fmt.Errorf("export cache read: %w", err)
	} else if ok {
		return doc, nil
	}
	doc := ExportBytes(st)
	if err := cache.Put(key, arch, doc); err != nil {
		return doc, fmt.Errorf("export cache write: %w", err)
	}
	return doc, nil
}
