package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColoredPreservesTheNumber(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = orig }()

	if got := Colored(); got != Number {
		t.Errorf("Colored() = %q, want %q without color", got, Number)
	}
}

func TestColoredLeavesOddShapesAlone(t *testing.T) {
	origNumber := Number
	origNoColor := color.NoColor
	color.NoColor = true
	defer func() {
		Number = origNumber
		color.NoColor = origNoColor
	}()

	// Simulate build-time ldflags with a non-semver value.
	Number = "snapshot"
	if got := Colored(); got != "snapshot" {
		t.Errorf("Colored() = %q, want %q", got, "snapshot")
	}
}
