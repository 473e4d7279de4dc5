package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"gotoc/internal/intern"
	"gotoc/internal/ir"
	"gotoc/internal/irep"
)

// CheckResult is the outcome of validating one symbol-table document.
type CheckResult struct {
	Path string
	// Symbols is the number of entries in the document.
	Symbols int
	// ReconciledTypes counts the symbol types the partial inverse could
	// absorb back into the typed representation.
	ReconciledTypes int
	Err             error
}

// CheckFiles validates documents in parallel: each file must parse, survive
// a serialize/reparse round trip unchanged, and report how much of it the
// type inverse covers. Individual file failures land in the result, not the
// returned error; only cancellation aborts the run.
func CheckFiles(ctx context.Context, mm *ir.MachineModel, paths []string, jobs int) ([]CheckResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]CheckResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// Each worker owns its interner; tags never cross goroutines.
			symbols, reconciled, err := checkFile(path, mm, intern.NewInterner())
			results[i] = CheckResult{Path: path, Symbols: symbols, ReconciledTypes: reconciled, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func checkFile(path string, mm *ir.MachineModel, strs *intern.Interner) (symbols, reconciled int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}
	table, err := irep.ParseSymbolTable(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}

	// The writer is deterministic, so serialize/reparse/serialize must be a
	// fixed point; anything else means the parser dropped information.
	first, err := table.MarshalJSON()
	if err != nil {
		return 0, 0, err
	}
	back, err := irep.ParseSymbolTable(bytes.NewReader(first))
	if err != nil {
		return 0, 0, fmt.Errorf("reparse: %w", err)
	}
	second, err := back.MarshalJSON()
	if err != nil {
		return 0, 0, err
	}
	if !bytes.Equal(first, second) {
		return 0, 0, errors.New("document does not round-trip")
	}

	for i := range table.Symbols {
		if _, err := irep.TypeFromIrep(table.Symbols[i].Typ, mm, strs); err == nil {
			reconciled++
		} else if !errors.Is(err, irep.ErrUnsupportedIrep) {
			return 0, 0, err
		}
	}
	return len(table.Symbols), reconciled, nil
}
