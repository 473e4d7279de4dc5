package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"gotoc/internal/version"
)

var (
	versionAsJSON  bool
	versionVerbose bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionAsJSON, "json", false, "machine-readable output")
	versionCmd.Flags().BoolVar(&versionVerbose, "verbose", false, "include commit and build date")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the gotoc build identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if versionAsJSON {
			payload := struct {
				Version string `json:"version"`
				Commit  string `json:"commit,omitempty"`
				Date    string `json:"date,omitempty"`
			}{version.Number, version.Commit, version.Date}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		}

		configureColor(cmd)
		fmt.Fprintf(out, "gotoc %s\n", version.Colored())
		if versionVerbose {
			fmt.Fprintf(out, "commit: %s\n", orUnknown(version.Commit))
			fmt.Fprintf(out, "built:  %s\n", orUnknown(version.Date))
		}
		return nil
	},
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
