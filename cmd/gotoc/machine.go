package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gotoc/internal/ir"
)

var (
	machineTarget string
	machineConfig string
)

func init() {
	machineCmd.Flags().StringVar(&machineTarget, "target", "x86_64", "built-in target preset (x86_64|aarch64)")
	machineCmd.Flags().StringVar(&machineConfig, "config", "", "TOML file with a [machine] table, overrides --target")
}

var machineCmd = &cobra.Command{
	Use:   "machine",
	Short: "Print the resolved verification target",
	RunE: func(cmd *cobra.Command, args []string) error {
		mm, err := resolveMachine()
		if err != nil {
			return err
		}
		printMachine(cmd.OutOrStdout(), mm)
		return nil
	},
}

func resolveMachine() (*ir.MachineModel, error) {
	if machineConfig != "" {
		return ir.LoadMachineModel(machineConfig)
	}
	return ir.MachinePreset(machineTarget)
}

func printMachine(out io.Writer, mm *ir.MachineModel) {
	fmt.Fprintf(out, "architecture:        %s\n", mm.Architecture)
	fmt.Fprintf(out, "endianness:          %s\n", endianness(mm))
	fmt.Fprintf(out, "bool width:          %d\n", mm.BoolWidth)
	fmt.Fprintf(out, "char width:          %d (unsigned: %v)\n", mm.CharWidth, mm.CharIsUnsigned)
	fmt.Fprintf(out, "short int width:     %d\n", mm.ShortIntWidth)
	fmt.Fprintf(out, "int width:           %d\n", mm.IntWidth)
	fmt.Fprintf(out, "long int width:      %d\n", mm.LongIntWidth)
	fmt.Fprintf(out, "long long int width: %d\n", mm.LongLongIntWidth)
	fmt.Fprintf(out, "float width:         %d\n", mm.FloatWidth)
	fmt.Fprintf(out, "double width:        %d\n", mm.DoubleWidth)
	fmt.Fprintf(out, "long double width:   %d\n", mm.LongDoubleWidth)
	fmt.Fprintf(out, "pointer width:       %d\n", mm.PointerWidth)
	fmt.Fprintf(out, "wchar_t width:       %d (unsigned: %v)\n", mm.WcharTWidth, mm.WcharTIsUnsigned)
	fmt.Fprintf(out, "word size:           %d\n", mm.WordSize)
	fmt.Fprintf(out, "NULL is zero:        %v\n", mm.NullIsZero)
}

func endianness(mm *ir.MachineModel) string {
	if mm.IsBigEndian {
		return "big"
	}
	return "little"
}
