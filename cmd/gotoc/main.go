package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gotoc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "gotoc",
	Short: "Typed goto-program backend toolchain",
	Long:  `gotoc lowers typed symbol tables to the bounded model checker's wire format and validates exported documents`,
}

func main() {
	rootCmd.Version = version.Number

	rootCmd.AddCommand(machineCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
