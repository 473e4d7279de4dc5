package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotoc/internal/intern"
	"gotoc/internal/ir"
	"gotoc/internal/irep"
)

func sampleTable(strs *intern.Interner) *ir.SymbolTable {
	st := ir.NewSymbolTable(ir.MachineX8664(), strs)
	bad := strs.Intern("my!global")
	st.MustInsert(ir.StaticVariable(bad, bad, ir.UnsignedInt(32), ir.NoLocation()).
		WithValue(ir.Nondet(ir.UnsignedInt(32))))
	return st
}

func TestEmissionPipelineLegalizesAndMaterializes(t *testing.T) {
	strs := intern.NewInterner()
	out := RunPasses(sampleTable(strs), EmissionPasses())

	if out.Contains(strs.Intern("my!global")) {
		t.Fatalf("illegal name survived the pipeline")
	}
	if !out.Contains(strs.Intern("my_global")) {
		t.Fatalf("legalized name missing")
	}
	if !out.Contains(strs.Intern("non_det_unsigned_bv_32")) {
		t.Fatalf("nondet generator missing")
	}
	sym := out.MustLookup(strs.Intern("my_global"))
	if sym.ValueExpr.Kind != ir.ExprFunctionCall {
		t.Fatalf("nondet initializer was not rewritten to a generator call")
	}
}

func TestExportProducesWireDocument(t *testing.T) {
	strs := intern.NewInterner()
	var buf bytes.Buffer
	if err := Export(sampleTable(strs), &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	got := buf.String()
	if !strings.HasPrefix(got, `{"symbolTable":{`) {
		t.Fatalf("unexpected document shape: %s", got)
	}
	if !strings.Contains(got, `"my!global"`) {
		t.Fatalf("symbol missing from document: %s", got)
	}
}

func TestExportCachedHitsOnSecondRun(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := irep.OpenExportCache("gotoc-test")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	strs := intern.NewInterner()
	st := sampleTable(strs)
	key := irep.DigestOf([]byte("sample-input"))

	first, err := ExportCached(cache, key, st)
	if err != nil {
		t.Fatalf("first export: %v", err)
	}
	second, err := ExportCached(cache, key, st)
	if err != nil {
		t.Fatalf("second export: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("cache returned a different document")
	}

	// A different target must not reuse the cached document.
	other := ir.NewSymbolTable(ir.MachineAarch64(), strs)
	if _, err := ExportCached(cache, key, other); err != nil {
		t.Fatalf("cross-target export: %v", err)
	}
}

func TestCheckFilesRoundTrip(t *testing.T) {
	strs := intern.NewInterner()
	doc := ExportBytes(RunPasses(sampleTable(strs), EmissionPasses()))
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	if err := os.WriteFile(good, doc, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"symbolTable":`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	results, err := CheckFiles(context.Background(), ir.MachineX8664(), []string{good, bad}, 2)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if results[0].Err != nil {
		t.Fatalf("valid document rejected: %v", results[0].Err)
	}
	if results[0].Symbols == 0 {
		t.Fatalf("no symbols counted")
	}
	if results[0].ReconciledTypes == 0 {
		t.Fatalf("no types reconciled")
	}
	if results[1].Err == nil {
		t.Fatalf("truncated document accepted")
	}
}
