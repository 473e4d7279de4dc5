// Package version records the build identity of the gotoc binary.
package version

import (
	"strings"

	"github.com/fatih/color"
)

// Overridden at build time via -ldflags.
var (
	// Number is the semantic version of the toolchain.
	Number = "0.1.0-dev"

	// Commit and Date identify the build when the build script provides
	// them; empty otherwise.
	Commit = ""
	Date   = ""
)

var fieldColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored renders Number with the major/minor/patch fields highlighted.
// Honors color.NoColor, so plain output falls out of terminal detection.
func Colored() string {
	rest := ""
	base := Number
	if i := strings.IndexAny(base, "-+"); i >= 0 {
		base, rest = base[:i], base[i:]
	}
	fields := strings.Split(base, ".")
	if len(fields) != 3 {
		return Number
	}
	for i, f := range fields {
		fields[i] = fieldColors[i].Sprint(f)
	}
	return strings.Join(fields, ".") + rest
}
