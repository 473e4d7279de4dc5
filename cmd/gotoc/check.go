package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gotoc/internal/driver"
)

var checkJobs int

func init() {
	checkCmd.Flags().IntVar(&checkJobs, "jobs", 0, "number of files to check in parallel (0 = GOMAXPROCS)")
	checkCmd.Flags().StringVar(&machineTarget, "target", "x86_64", "built-in target preset (x86_64|aarch64)")
	checkCmd.Flags().StringVar(&machineConfig, "config", "", "TOML file with a [machine] table, overrides --target")
}

var checkCmd = &cobra.Command{
	Use:   "check <file.json>...",
	Short: "Validate exported symbol-table documents",
	Long:  `check parses each document, re-serializes it, and verifies the round trip is byte-identical; it also reports how many symbol types the typed representation can absorb back`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mm, err := resolveMachine()
		if err != nil {
			return err
		}
		configureColor(cmd)

		results, err := driver.CheckFiles(cmd.Context(), mm, args, checkJobs)
		if err != nil {
			return err
		}

		passTag := color.New(color.FgGreen, color.Bold).Sprint("ok")
		failTag := color.New(color.FgRed, color.Bold).Sprint("FAIL")
		out := cmd.OutOrStdout()
		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				fmt.Fprintf(out, "%s %s: %v\n", failTag, r.Path, r.Err)
				continue
			}
			fmt.Fprintf(out, "%s %s: %d symbols, %d types reconciled\n", passTag, r.Path, r.Symbols, r.ReconciledTypes)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d documents failed", failed, len(results))
		}
		return nil
	},
}

// configureColor honors the global --color flag; "auto" colors only when
// stdout is a terminal.
func configureColor(cmd *cobra.Command) {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}
